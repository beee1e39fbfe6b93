package budget

import (
	"github.com/shopspring/decimal"

	"github.com/twoloonies/loonies/internal/model"
)

// Summary is the monthly overview shown next to the entry bubbles.
type Summary struct {
	model.Totals
	ExpenseRatio decimal.Decimal // expenses as a percentage of income
	SavingsRate  decimal.Decimal // net as a percentage of income
}

// TotalIncome sums the monthly equivalents of all income fields.
func (e *Engine) TotalIncome() decimal.Decimal {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.totalLocked(model.CategoryIncome)
}

// TotalExpenses sums the monthly equivalents of all expense fields.
func (e *Engine) TotalExpenses() decimal.Decimal {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.totalLocked(model.CategoryExpense)
}

// Net is income minus expenses. It may be negative.
func (e *Engine) Net() decimal.Decimal {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.totalsLocked().Net
}

// Totals returns income, expenses and net together.
func (e *Engine) Totals() model.Totals {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.totalsLocked()
}

// Summary returns the totals with expense and savings ratios.
func (e *Engine) Summary() Summary {
	e.mu.Lock()
	defer e.mu.Unlock()
	t := e.totalsLocked()
	return Summary{
		Totals:       t,
		ExpenseRatio: percentOf(t.Expenses, t.Income),
		SavingsRate:  percentOf(t.Net, t.Income),
	}
}

// HasAnyEntries reports whether any field holds a value greater than zero.
func (e *Engine) HasAnyEntries() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, raw := range e.values {
		if ParseAmount(raw).IsPositive() {
			return true
		}
	}
	return false
}

// totalLocked sums per-field monthly equivalents, each already rounded, so the
// total matches the figures shown on the individual fields.
func (e *Engine) totalLocked(cat model.Category) decimal.Decimal {
	total := decimal.Zero
	for _, f := range e.fieldsLocked(cat) {
		total = total.Add(MonthlyEquivalent(f, e.values[f.Key]))
	}
	return total
}

func (e *Engine) totalsLocked() model.Totals {
	income := e.totalLocked(model.CategoryIncome)
	expenses := e.totalLocked(model.CategoryExpense)
	return model.Totals{
		Income:   income,
		Expenses: expenses,
		Net:      income.Sub(expenses),
	}
}
