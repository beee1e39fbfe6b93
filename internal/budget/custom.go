package budget

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/twoloonies/loonies/internal/fields"
	"github.com/twoloonies/loonies/internal/keygen"
	"github.com/twoloonies/loonies/internal/model"
)

// AddCustomField creates a user-defined monthly field in cat. An empty
// initialAmount means none was supplied; a positive one seeds the new field.
//
// Checks run in order: category, empty name, amount, then case-insensitive
// label uniqueness against both fixed and custom fields of the same category.
func (e *Engine) AddCustomField(cat model.Category, name, initialAmount string) (model.FieldDefinition, error) {
	if !cat.Valid() {
		return model.FieldDefinition{}, fmt.Errorf("%w: %q", ErrUnknownCategory, cat)
	}

	label := strings.TrimSpace(name)
	if label == "" {
		return model.FieldDefinition{}, ErrEmptyName
	}

	amount := decimal.Zero
	if initialAmount != "" {
		v, err := ParseNonNegative(initialAmount)
		if err != nil {
			return model.FieldDefinition{}, err
		}
		amount = v
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.labelTakenLocked(cat, label) {
		return model.FieldDefinition{}, fmt.Errorf("%w: %q", ErrDuplicateName, label)
	}

	key := keygen.Unique(e.keys, e.knownLocked)
	def := customDefinition(cat, key, label)
	e.custom[cat] = append(e.custom[cat], def)
	if amount.IsPositive() {
		e.values[key] = amount.String()
	}

	e.log.WithFields(logrus.Fields{"category": cat, "key": key, "label": label}).Info("custom field added")
	e.save()
	return def, nil
}

// RemoveCustomField deletes a custom field and its value. Unknown keys are ignored.
func (e *Engine) RemoveCustomField(cat model.Category, key string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	defs := e.custom[cat]
	for i, d := range defs {
		if d.Key != key {
			continue
		}
		e.custom[cat] = append(defs[:i:i], defs[i+1:]...)
		delete(e.values, key)
		e.log.WithFields(logrus.Fields{"category": cat, "key": key}).Info("custom field removed")
		e.save()
		return
	}
}

// CustomFields returns the custom fields of cat in creation order.
func (e *Engine) CustomFields(cat model.Category) []model.FieldDefinition {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]model.FieldDefinition(nil), e.custom[cat]...)
}

func (e *Engine) labelTakenLocked(cat model.Category, label string) bool {
	if e.registry.HasLabel(cat, label) {
		return true
	}
	for _, d := range e.custom[cat] {
		if fields.SameLabel(d.Label, label) {
			return true
		}
	}
	return false
}
