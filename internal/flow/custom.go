package flow

import (
	"errors"

	"github.com/twoloonies/loonies/internal/budget"
	"github.com/twoloonies/loonies/internal/model"
)

// FieldAdder creates custom fields.
type FieldAdder interface {
	AddCustomField(cat model.Category, name, initialAmount string) (model.FieldDefinition, error)
}

// CustomFieldModal collects the name and optional amount of a new field.
type CustomFieldModal struct {
	open     bool
	category model.Category
	name     string
	amount   string
	message  string
}

// IsOpen reports whether the modal is showing.
func (m *CustomFieldModal) IsOpen() bool { return m.open }

// Category returns the category the field will be added to.
func (m *CustomFieldModal) Category() model.Category { return m.category }

// Message returns the inline error shown under the form, if any.
func (m *CustomFieldModal) Message() string { return m.message }

// Open shows an empty form for cat.
func (m *CustomFieldModal) Open(cat model.Category) {
	m.reset()
	m.open = true
	m.category = cat
}

// SetName updates the name and clears any error message.
func (m *CustomFieldModal) SetName(s string) {
	m.name = s
	m.message = ""
}

// SetAmount updates the amount and clears any error message.
func (m *CustomFieldModal) SetAmount(s string) {
	m.amount = s
	m.message = ""
}

// Submit asks adder to create the field. On failure the modal stays open with
// a message describing the problem; on success it closes.
func (m *CustomFieldModal) Submit(adder FieldAdder) (model.FieldDefinition, error) {
	if !m.open {
		return model.FieldDefinition{}, ErrNotOpen
	}
	def, err := adder.AddCustomField(m.category, m.name, m.amount)
	if err != nil {
		m.message = Message(err)
		return model.FieldDefinition{}, err
	}
	m.reset()
	return def, nil
}

// Cancel closes the modal and discards the form.
func (m *CustomFieldModal) Cancel() {
	m.reset()
}

func (m *CustomFieldModal) reset() {
	*m = CustomFieldModal{}
}

// Message turns an engine error into the text shown to the user.
func Message(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, budget.ErrEmptyName):
		return "Field name cannot be empty"
	case errors.Is(err, budget.ErrInvalidAmount):
		return "Amount must be a valid number greater than or equal to 0"
	case errors.Is(err, budget.ErrDuplicateName):
		return "A field with this name already exists"
	case errors.Is(err, budget.ErrNoEntries):
		return "No entries to submit"
	default:
		return err.Error()
	}
}
