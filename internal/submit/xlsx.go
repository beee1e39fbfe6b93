package submit

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/twoloonies/loonies/internal/model"
)

const (
	entriesSheet = "Entries"
	totalsSheet  = "Totals"
)

// WriteWorkbook renders doc as an Excel workbook: one row per entry on the
// Entries sheet, the monthly totals on the Totals sheet.
func WriteWorkbook(w io.Writer, doc model.Submission) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", entriesSheet); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	header := strings.Split(Header, ",")
	if err := f.SetSheetRow(entriesSheet, "A1", &header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, r := range doc.Entries {
		row := []any{
			string(r.Category),
			r.Field,
			r.Label,
			r.Amount.InexactFloat64(),
			r.MonthlyAmount.InexactFloat64(),
			string(r.PayPeriod),
			string(r.Origin),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(entriesSheet, cell, &row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}

	if _, err := f.NewSheet(totalsSheet); err != nil {
		return fmt.Errorf("adding totals sheet: %w", err)
	}
	totals := [][]any{
		{"income", doc.Totals.Income.InexactFloat64()},
		{"expenses", doc.Totals.Expenses.InexactFloat64()},
		{"net", doc.Totals.Net.InexactFloat64()},
		{"submitted_at", doc.SubmittedAt.UTC().Format(model.TimestampFormat)},
	}
	for i, row := range totals {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(totalsSheet, cell, &row); err != nil {
			return fmt.Errorf("writing totals: %w", err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}
