package submit

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/twoloonies/loonies/internal/model"
)

// Header is the CSV header for exported submission entries.
const Header = "category,field,label,amount,monthly_amount,pay_period,origin"

const (
	numFields    = 7
	colCategory  = 0
	colField     = 1
	colLabel     = 2
	colAmount    = 3
	colMonthly   = 4
	colPayPeriod = 5
	colOrigin    = 6
)

// WriteRecords writes entries as CSV (including header).
func WriteRecords(w io.Writer, records []model.EntryRecord) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, r := range records {
		if err := cw.Write(MarshalRecord(r)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadRecords reads an exported entries CSV.
func ReadRecords(r io.Reader) ([]model.EntryRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading entries CSV: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	// Skip header row.
	var records []model.EntryRecord
	for i, row := range rows[1:] {
		rec, err := UnmarshalRecord(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// MarshalRecord converts an EntryRecord to a CSV row.
func MarshalRecord(r model.EntryRecord) []string {
	row := make([]string, numFields)
	row[colCategory] = string(r.Category)
	row[colField] = r.Field
	row[colLabel] = r.Label
	row[colAmount] = r.Amount.String()
	row[colMonthly] = r.MonthlyAmount.StringFixed(2)
	row[colPayPeriod] = string(r.PayPeriod)
	row[colOrigin] = string(r.Origin)
	return row
}

// UnmarshalRecord converts a CSV row to an EntryRecord.
func UnmarshalRecord(row []string) (model.EntryRecord, error) {
	if len(row) != numFields {
		return model.EntryRecord{}, fmt.Errorf("expected %d fields, got %d", numFields, len(row))
	}

	cat, err := model.ParseCategory(row[colCategory])
	if err != nil {
		return model.EntryRecord{}, err
	}
	amount, err := decimal.NewFromString(row[colAmount])
	if err != nil {
		return model.EntryRecord{}, fmt.Errorf("parsing amount %q: %w", row[colAmount], err)
	}
	monthly, err := decimal.NewFromString(row[colMonthly])
	if err != nil {
		return model.EntryRecord{}, fmt.Errorf("parsing monthly amount %q: %w", row[colMonthly], err)
	}

	return model.EntryRecord{
		Category:      cat,
		Field:         row[colField],
		Label:         row[colLabel],
		Amount:        amount,
		MonthlyAmount: monthly,
		PayPeriod:     model.PayPeriod(row[colPayPeriod]),
		Origin:        model.Origin(row[colOrigin]),
	}, nil
}
