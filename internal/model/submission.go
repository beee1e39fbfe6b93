package model

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// SubmissionVersion is the schema version stamped on every Submission.
const SubmissionVersion = 1

// TimestampFormat is ISO-8601 with millisecond precision, always rendered in UTC.
const TimestampFormat = "2006-01-02T15:04:05.000Z07:00"

// EntryRecord is one positive-valued field in a Submission.
type EntryRecord struct {
	Category      Category
	Field         string
	Label         string
	Amount        decimal.Decimal // raw amount as entered
	MonthlyAmount decimal.Decimal // normalized to a monthly basis
	PayPeriod     PayPeriod
	Origin        Origin
}

// Totals are the aggregate monthly figures.
type Totals struct {
	Income   decimal.Decimal
	Expenses decimal.Decimal
	Net      decimal.Decimal
}

// Submission is the immutable export produced when the user finalizes their entries.
type Submission struct {
	Version     int
	Entries     []EntryRecord
	Totals      Totals
	SubmittedAt time.Time
}

type entryRecordJSON struct {
	Category      Category    `json:"category"`
	Field         string      `json:"field"`
	Label         string      `json:"label"`
	Amount        json.Number `json:"amount"`
	MonthlyAmount json.Number `json:"monthlyAmount"`
	IsBiweekly    bool        `json:"isBiweekly"`
	IsCustom      bool        `json:"isCustom"`
}

type totalsJSON struct {
	Income   json.Number `json:"income"`
	Expenses json.Number `json:"expenses"`
	Net      json.Number `json:"net"`
}

type submissionJSON struct {
	Version     int               `json:"version"`
	Entries     []entryRecordJSON `json:"entries"`
	Totals      totalsJSON        `json:"totals"`
	SubmittedAt string            `json:"submittedAt"`
}

// MarshalJSON encodes amounts as JSON numbers, not quoted decimal strings.
func (r EntryRecord) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.wire())
}

func (r EntryRecord) wire() entryRecordJSON {
	return entryRecordJSON{
		Category:      r.Category,
		Field:         r.Field,
		Label:         r.Label,
		Amount:        json.Number(r.Amount.String()),
		MonthlyAmount: json.Number(r.MonthlyAmount.String()),
		IsBiweekly:    r.PayPeriod == PayPeriodBiweekly,
		IsCustom:      r.Origin == OriginCustom,
	}
}

// MarshalJSON encodes the document in its published shape.
func (s Submission) MarshalJSON() ([]byte, error) {
	entries := make([]entryRecordJSON, len(s.Entries))
	for i, e := range s.Entries {
		entries[i] = e.wire()
	}
	return json.Marshal(submissionJSON{
		Version: s.Version,
		Entries: entries,
		Totals: totalsJSON{
			Income:   json.Number(s.Totals.Income.StringFixed(2)),
			Expenses: json.Number(s.Totals.Expenses.StringFixed(2)),
			Net:      json.Number(s.Totals.Net.StringFixed(2)),
		},
		SubmittedAt: s.SubmittedAt.UTC().Format(TimestampFormat),
	})
}
