package flow

import (
	"errors"

	"github.com/twoloonies/loonies/internal/budget"
	"github.com/twoloonies/loonies/internal/model"
)

// EditState is the state of the amount entry modal.
type EditState int

const (
	EditClosed EditState = iota
	EditOpenForAdd
	EditOpenForEdit
)

func (s EditState) String() string {
	switch s {
	case EditOpenForAdd:
		return "open-for-add"
	case EditOpenForEdit:
		return "open-for-edit"
	default:
		return "closed"
	}
}

// ErrNotOpen is returned when acting on a closed modal.
var ErrNotOpen = errors.New("modal is not open")

// ValueSetter commits a field value.
type ValueSetter interface {
	SetValue(key, raw string) error
}

// EditModal edits the amount of one field.
type EditModal struct {
	state EditState
	field model.FieldDefinition
	draft string
}

// State returns the current state.
func (m *EditModal) State() EditState { return m.state }

// Field returns the field being edited.
func (m *EditModal) Field() model.FieldDefinition { return m.field }

// Draft returns the text typed so far.
func (m *EditModal) Draft() string { return m.draft }

// Open starts editing field. A field that already holds a positive value opens
// for edit with that value as the draft; anything else opens for add.
func (m *EditModal) Open(field model.FieldDefinition, current string) {
	m.field = field
	if budget.ParseAmount(current).IsPositive() {
		m.state = EditOpenForEdit
		m.draft = current
		return
	}
	m.state = EditOpenForAdd
	m.draft = ""
}

// SetDraft replaces the typed text.
func (m *EditModal) SetDraft(s string) {
	if m.state != EditClosed {
		m.draft = s
	}
}

// CanConfirm reports whether the draft may be committed.
func (m *EditModal) CanConfirm() bool {
	if m.state == EditClosed {
		return false
	}
	_, err := budget.ParseNonNegative(m.draft)
	return err == nil
}

// Confirm commits the draft as the field's value and closes the modal. added
// is true when the field was empty before. Invalid drafts leave the modal open.
func (m *EditModal) Confirm(setter ValueSetter) (added bool, err error) {
	if m.state == EditClosed {
		return false, ErrNotOpen
	}
	v, err := budget.ParseNonNegative(m.draft)
	if err != nil {
		return false, err
	}
	if err := setter.SetValue(m.field.Key, v.String()); err != nil {
		return false, err
	}
	added = m.state == EditOpenForAdd
	m.Cancel()
	return added, nil
}

// Cancel closes the modal without committing.
func (m *EditModal) Cancel() {
	m.state = EditClosed
	m.field = model.FieldDefinition{}
	m.draft = ""
}
