package budget

import (
	"time"

	"github.com/twoloonies/loonies/internal/model"
)

// Snapshot is the full persisted state: every non-empty field value plus the
// custom field definitions of each category.
type Snapshot struct {
	Values  map[string]string
	Custom  map[model.Category][]model.FieldDefinition
	SavedAt time.Time
}

// EmptySnapshot returns the initial state.
func EmptySnapshot() Snapshot {
	return Snapshot{
		Values: make(map[string]string),
		Custom: map[model.Category][]model.FieldDefinition{
			model.CategoryIncome:  nil,
			model.CategoryExpense: nil,
		},
	}
}

// Clone returns a deep copy.
func (s Snapshot) Clone() Snapshot {
	out := EmptySnapshot()
	out.SavedAt = s.SavedAt
	for k, v := range s.Values {
		out.Values[k] = v
	}
	for cat, defs := range s.Custom {
		out.Custom[cat] = append([]model.FieldDefinition(nil), defs...)
	}
	return out
}
