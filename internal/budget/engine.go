package budget

import (
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/twoloonies/loonies/internal/fields"
	"github.com/twoloonies/loonies/internal/keygen"
	"github.com/twoloonies/loonies/internal/logging"
	"github.com/twoloonies/loonies/internal/model"
)

// Persister stores and restores the engine state. Implementations report
// failures through their return values; the Engine logs them and carries on.
type Persister interface {
	Save(Snapshot) error
	Load() (Snapshot, bool)
	Clear() error
}

// Engine holds the current monthly snapshot: field values, custom field
// definitions, and everything derived from them. All methods are safe for
// concurrent use; each one runs to completion under a single lock.
type Engine struct {
	mu        sync.Mutex
	registry  *fields.Registry
	values    map[string]string
	custom    map[model.Category][]model.FieldDefinition
	keys      keygen.Generator
	persister Persister
	now       func() time.Time
	log       logrus.FieldLogger
}

// Option configures an Engine.
type Option func(*Engine)

// WithRegistry replaces the built-in fixed fields.
func WithRegistry(r *fields.Registry) Option {
	return func(e *Engine) { e.registry = r }
}

// WithPersister enables load-on-start and save-after-every-mutation.
func WithPersister(p Persister) Option {
	return func(e *Engine) { e.persister = p }
}

// WithKeyGenerator sets the source of custom field keys.
func WithKeyGenerator(g keygen.Generator) Option {
	return func(e *Engine) { e.keys = g }
}

// WithClock sets the time source used for submission and save timestamps.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithLogger sets the logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(e *Engine) { e.log = l }
}

// New creates an Engine. If a Persister is configured, previously saved state
// is loaded once here; anything missing or unusable falls back to the initial
// state.
func New(opts ...Option) *Engine {
	e := &Engine{
		registry: fields.Default(),
		keys:     keygen.UUID{},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.log == nil {
		e.log = logging.Discard()
	}
	e.log = e.log.WithField("component", "engine")
	e.reset()

	if e.persister != nil {
		if snap, ok := e.persister.Load(); ok && e.restore(snap) {
			e.log.Info("rewriting saved state without pruned entries")
			e.save()
		}
	}
	return e
}

// Registry returns the fixed field registry the engine was built with.
func (e *Engine) Registry() *fields.Registry {
	return e.registry
}

// Snapshot returns a copy of the current state stamped with the current time.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

func (e *Engine) snapshotLocked() Snapshot {
	s := Snapshot{
		Values:  make(map[string]string, len(e.values)),
		Custom:  make(map[model.Category][]model.FieldDefinition, len(e.custom)),
		SavedAt: e.now(),
	}
	for k, v := range e.values {
		s.Values[k] = v
	}
	for _, cat := range model.Categories {
		s.Custom[cat] = append([]model.FieldDefinition(nil), e.custom[cat]...)
	}
	return s
}

func (e *Engine) reset() {
	e.values = make(map[string]string)
	e.custom = map[model.Category][]model.FieldDefinition{
		model.CategoryIncome:  nil,
		model.CategoryExpense: nil,
	}
}

// restore adopts a loaded snapshot, dropping anything that would break the
// field invariants: blank or duplicate labels, keys that are empty, reused or
// shadow a fixed field, and values whose field no longer exists. It reports
// whether anything was dropped.
func (e *Engine) restore(s Snapshot) (pruned bool) {
	seen := make(map[string]bool)
	for _, cat := range model.Categories {
		for _, def := range s.Custom[cat] {
			label := strings.TrimSpace(def.Label)
			switch {
			case def.Key == "" || label == "":
				e.log.WithField("key", def.Key).Warn("dropping incomplete custom field")
				pruned = true
				continue
			case seen[def.Key] || e.registry.IsFixed(def.Key):
				e.log.WithField("key", def.Key).Warn("dropping custom field with conflicting key")
				pruned = true
				continue
			case e.labelTakenLocked(cat, label):
				e.log.WithFields(logrus.Fields{"key": def.Key, "label": label}).Warn("dropping custom field with duplicate label")
				pruned = true
				continue
			}
			seen[def.Key] = true
			e.custom[cat] = append(e.custom[cat], customDefinition(cat, def.Key, label))
		}
	}

	for key, raw := range s.Values {
		if raw == "" {
			continue
		}
		if !e.knownLocked(key) {
			e.log.WithField("key", key).Warn("dropping value for unknown field")
			pruned = true
			continue
		}
		e.values[key] = raw
	}
	return pruned
}

// save persists the current state. Failures are logged, never returned: the
// in-memory state stays authoritative for the rest of the session.
func (e *Engine) save() {
	if e.persister == nil {
		return
	}
	if err := e.persister.Save(e.snapshotLocked()); err != nil {
		e.log.WithError(err).Error("saving state")
	}
}

func (e *Engine) knownLocked(key string) bool {
	if e.registry.IsFixed(key) {
		return true
	}
	_, _, ok := e.findCustomLocked(key)
	return ok
}

func (e *Engine) fieldLocked(key string) (model.FieldDefinition, bool) {
	if d, ok := e.registry.Get(key); ok {
		return d, true
	}
	if cat, i, ok := e.findCustomLocked(key); ok {
		return e.custom[cat][i], true
	}
	return model.FieldDefinition{}, false
}

func (e *Engine) findCustomLocked(key string) (model.Category, int, bool) {
	for _, cat := range model.Categories {
		for i, d := range e.custom[cat] {
			if d.Key == key {
				return cat, i, true
			}
		}
	}
	return "", 0, false
}

// fieldsLocked returns the fixed fields of cat followed by its custom fields.
func (e *Engine) fieldsLocked(cat model.Category) []model.FieldDefinition {
	out := e.registry.Fixed(cat)
	return append(out, e.custom[cat]...)
}

func customDefinition(cat model.Category, key, label string) model.FieldDefinition {
	return model.FieldDefinition{
		Key:       key,
		Label:     label,
		Category:  cat,
		PayPeriod: model.PayPeriodMonthly,
		Origin:    model.OriginCustom,
	}
}
