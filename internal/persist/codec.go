package persist

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/twoloonies/loonies/internal/budget"
	"github.com/twoloonies/loonies/internal/fields"
	"github.com/twoloonies/loonies/internal/model"
)

// record is the stored JSON document.
type record struct {
	IncomeData      map[string]string `json:"incomeData"`
	ExpenseData     map[string]string `json:"expenseData"`
	CustomFields    customFields      `json:"customFields"`
	CustomFieldData map[string]string `json:"customFieldData"`
	LastSaved       string            `json:"lastSaved,omitempty"`
}

type customFields struct {
	Income  []customField `json:"income"`
	Expense []customField `json:"expense"`
}

type customField struct {
	Key        string `json:"key"`
	Label      string `json:"label"`
	IsCustom   bool   `json:"isCustom"`
	IsBiweekly bool   `json:"isBiweekly"`
}

// Encode renders a snapshot in the stored JSON format. Every fixed field is
// written, with "" for unset ones.
func Encode(s budget.Snapshot, registry *fields.Registry) ([]byte, error) {
	rec := record{
		IncomeData:      fixedValues(s, registry, model.CategoryIncome),
		ExpenseData:     fixedValues(s, registry, model.CategoryExpense),
		CustomFields:    customFields{Income: []customField{}, Expense: []customField{}},
		CustomFieldData: make(map[string]string),
	}
	if !s.SavedAt.IsZero() {
		rec.LastSaved = s.SavedAt.UTC().Format(model.TimestampFormat)
	}

	for _, cat := range model.Categories {
		for _, def := range s.Custom[cat] {
			cf := customField{Key: def.Key, Label: def.Label, IsCustom: true}
			if cat == model.CategoryIncome {
				rec.CustomFields.Income = append(rec.CustomFields.Income, cf)
			} else {
				rec.CustomFields.Expense = append(rec.CustomFields.Expense, cf)
			}
			if v := s.Values[def.Key]; v != "" {
				rec.CustomFieldData[def.Key] = v
			}
		}
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("marshaling snapshot: %w", err)
	}
	return data, nil
}

// Decode parses the stored JSON format. Missing sections decode as empty.
// Whether the result honours the field invariants is left to the engine,
// which prunes anything it cannot use.
func Decode(data []byte) (budget.Snapshot, error) {
	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return budget.Snapshot{}, fmt.Errorf("parsing snapshot: %w", err)
	}

	s := budget.EmptySnapshot()
	for _, m := range []map[string]string{rec.IncomeData, rec.ExpenseData, rec.CustomFieldData} {
		for k, v := range m {
			if v != "" {
				s.Values[k] = v
			}
		}
	}
	s.Custom[model.CategoryIncome] = definitions(model.CategoryIncome, rec.CustomFields.Income)
	s.Custom[model.CategoryExpense] = definitions(model.CategoryExpense, rec.CustomFields.Expense)

	if rec.LastSaved != "" {
		ts, err := time.Parse(time.RFC3339Nano, rec.LastSaved)
		if err != nil {
			return budget.Snapshot{}, fmt.Errorf("parsing lastSaved %q: %w", rec.LastSaved, err)
		}
		s.SavedAt = ts
	}
	return s, nil
}

func fixedValues(s budget.Snapshot, registry *fields.Registry, cat model.Category) map[string]string {
	out := make(map[string]string)
	for _, def := range registry.Fixed(cat) {
		out[def.Key] = s.Values[def.Key]
	}
	return out
}

func definitions(cat model.Category, in []customField) []model.FieldDefinition {
	var out []model.FieldDefinition
	for _, cf := range in {
		out = append(out, model.FieldDefinition{
			Key:       cf.Key,
			Label:     cf.Label,
			Category:  cat,
			PayPeriod: model.PayPeriodMonthly,
			Origin:    model.OriginCustom,
		})
	}
	return out
}
