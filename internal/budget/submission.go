package budget

import (
	"github.com/twoloonies/loonies/internal/model"
)

// BuildSubmission produces the export document for the current entries:
// fixed income, custom income, fixed expense, then custom expense fields,
// keeping only those with a positive value. It never modifies the engine.
func (e *Engine) BuildSubmission() (model.Submission, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	var entries []model.EntryRecord
	for _, cat := range model.Categories {
		for _, f := range e.fieldsLocked(cat) {
			raw := e.values[f.Key]
			amount := ParseAmount(raw)
			if !amount.IsPositive() {
				continue
			}
			entries = append(entries, model.EntryRecord{
				Category:      cat,
				Field:         f.Key,
				Label:         f.Label,
				Amount:        amount,
				MonthlyAmount: MonthlyEquivalent(f, raw),
				PayPeriod:     f.PayPeriod,
				Origin:        f.Origin,
			})
		}
	}
	if len(entries) == 0 {
		return model.Submission{}, ErrNoEntries
	}

	return model.Submission{
		Version:     model.SubmissionVersion,
		Entries:     entries,
		Totals:      e.totalsLocked(),
		SubmittedAt: e.now(),
	}, nil
}
