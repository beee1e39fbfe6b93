package budget

import "errors"

var (
	// ErrEmptyName is returned when a custom field name is blank after trimming.
	ErrEmptyName = errors.New("field name cannot be empty")
	// ErrInvalidAmount is returned for amounts that do not parse to a number >= 0.
	ErrInvalidAmount = errors.New("amount must be a valid number greater than or equal to 0")
	// ErrDuplicateName is returned when a custom field label is already used in its category.
	ErrDuplicateName = errors.New("a field with this name already exists")
	// ErrNoEntries is returned when a submission is attempted with no positive values.
	ErrNoEntries = errors.New("no entries to submit")
	// ErrUnknownCategory is returned for categories other than income and expense.
	ErrUnknownCategory = errors.New("unknown category")
	// ErrUnknownField is returned when a key matches no fixed or custom field.
	ErrUnknownField = errors.New("unknown field")
)
