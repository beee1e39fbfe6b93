package fields

import (
	"strings"

	"github.com/twoloonies/loonies/internal/model"
)

// Registry provides read-only lookup over the fixed field definitions.
type Registry struct {
	defs  []model.FieldDefinition
	byKey map[string]model.FieldDefinition
}

// NewRegistry creates a Registry from a slice of definitions. Later duplicates
// of a key are ignored.
func NewRegistry(defs []model.FieldDefinition) *Registry {
	r := &Registry{byKey: make(map[string]model.FieldDefinition, len(defs))}
	for _, d := range defs {
		if _, dup := r.byKey[d.Key]; dup {
			continue
		}
		r.defs = append(r.defs, d)
		r.byKey[d.Key] = d
	}
	return r
}

// Default returns a Registry holding the built-in fields.
func Default() *Registry {
	return NewRegistry(DefaultDefinitions())
}

// All returns every fixed definition, income first.
func (r *Registry) All() []model.FieldDefinition {
	out := make([]model.FieldDefinition, len(r.defs))
	copy(out, r.defs)
	return out
}

// Fixed returns the fixed definitions of one category in display order.
func (r *Registry) Fixed(cat model.Category) []model.FieldDefinition {
	var result []model.FieldDefinition
	for _, d := range r.defs {
		if d.Category == cat {
			result = append(result, d)
		}
	}
	return result
}

// Get returns a fixed definition by key.
func (r *Registry) Get(key string) (model.FieldDefinition, bool) {
	d, ok := r.byKey[key]
	return d, ok
}

// IsFixed reports whether key belongs to a fixed field.
func (r *Registry) IsFixed(key string) bool {
	_, ok := r.byKey[key]
	return ok
}

// HasLabel reports whether a fixed field in cat is labelled name, ignoring
// case and surrounding whitespace.
func (r *Registry) HasLabel(cat model.Category, name string) bool {
	for _, d := range r.defs {
		if d.Category == cat && SameLabel(d.Label, name) {
			return true
		}
	}
	return false
}

// SameLabel compares two labels the way field names are compared for uniqueness.
func SameLabel(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
