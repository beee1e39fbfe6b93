package budget

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/twoloonies/loonies/internal/model"
)

// SetValue stores the raw input for a field. Any string is accepted; the empty
// string unsets the field. Parsing happens when totals are computed.
func (e *Engine) SetValue(key, raw string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.knownLocked(key) {
		return fmt.Errorf("%w: %q", ErrUnknownField, key)
	}
	if raw == "" {
		delete(e.values, key)
	} else {
		e.values[key] = raw
	}
	e.log.WithFields(logrus.Fields{"key": key, "value": raw}).Debug("value set")
	e.save()
	return nil
}

// Unset clears the value of a field.
func (e *Engine) Unset(key string) error {
	return e.SetValue(key, "")
}

// Value returns the raw input for a field, or false when it is unset.
func (e *Engine) Value(key string) (string, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	v, ok := e.values[key]
	return v, ok && v != ""
}

// Field returns the fixed or custom definition with the given key.
func (e *Engine) Field(key string) (model.FieldDefinition, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.fieldLocked(key)
}

// Fields returns the fixed fields of cat followed by its custom fields.
func (e *Engine) Fields(cat model.Category) []model.FieldDefinition {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.fieldsLocked(cat)
}

// ClearAll returns the engine to its initial state and removes the persisted
// record entirely.
func (e *Engine) ClearAll() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.reset()
	e.log.Info("cleared all entries")
	if e.persister == nil {
		return
	}
	if err := e.persister.Clear(); err != nil {
		e.log.WithError(err).Error("clearing saved state")
	}
}
