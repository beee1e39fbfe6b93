package persist

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/twoloonies/loonies/internal/budget"
	"github.com/twoloonies/loonies/internal/config"
	"github.com/twoloonies/loonies/internal/fields"
	"github.com/twoloonies/loonies/internal/logging"
	"github.com/twoloonies/loonies/internal/storage"
)

const defaultTimeout = 5 * time.Second

// ReadError reports a stored snapshot that could not be read or parsed.
type ReadError struct {
	Key string
	Err error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("reading snapshot %s: %v", e.Key, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// WriteError reports a snapshot that could not be written or removed.
type WriteError struct {
	Key string
	Err error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("writing snapshot %s: %v", e.Key, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// Adapter saves engine snapshots into one key of a storage.Store.
type Adapter struct {
	store    storage.Store
	registry *fields.Registry
	key      string
	timeout  time.Duration
	log      logrus.FieldLogger
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithKey sets the storage key the snapshot lives under.
func WithKey(key string) Option {
	return func(a *Adapter) { a.key = key }
}

// WithTimeout bounds each storage call.
func WithTimeout(d time.Duration) Option {
	return func(a *Adapter) { a.timeout = d }
}

// WithLogger sets the logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(a *Adapter) { a.log = l }
}

// NewAdapter creates an Adapter over store.
func NewAdapter(store storage.Store, registry *fields.Registry, opts ...Option) *Adapter {
	a := &Adapter{
		store:    store,
		registry: registry,
		key:      config.DefaultStorageKey,
		timeout:  defaultTimeout,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.log == nil {
		a.log = logging.Discard()
	}
	a.log = a.log.WithFields(logrus.Fields{"component": "persist", "key": a.key})
	return a
}

// Save writes the snapshot, replacing whatever was stored.
func (a *Adapter) Save(s budget.Snapshot) error {
	data, err := Encode(s, a.registry)
	if err != nil {
		return &WriteError{Key: a.key, Err: err}
	}
	ctx, cancel := a.context()
	defer cancel()
	if err := a.store.Set(ctx, a.key, string(data)); err != nil {
		return &WriteError{Key: a.key, Err: err}
	}
	a.log.WithField("bytes", len(data)).Debug("snapshot saved")
	return nil
}

// Read returns the stored snapshot. A missing record is reported as
// budget.EmptySnapshot with no error; anything unreadable is a *ReadError.
func (a *Adapter) Read() (budget.Snapshot, bool, error) {
	ctx, cancel := a.context()
	defer cancel()
	raw, ok, err := a.store.Get(ctx, a.key)
	if err != nil {
		return budget.Snapshot{}, false, &ReadError{Key: a.key, Err: err}
	}
	if !ok {
		return budget.EmptySnapshot(), false, nil
	}
	s, err := Decode([]byte(raw))
	if err != nil {
		return budget.Snapshot{}, false, &ReadError{Key: a.key, Err: err}
	}
	return s, true, nil
}

// Load returns the stored snapshot, or false when there is none or it cannot
// be used. Failures are logged and treated as "no saved state".
func (a *Adapter) Load() (budget.Snapshot, bool) {
	s, ok, err := a.Read()
	if err != nil {
		a.log.WithError(err).Warn("ignoring unreadable saved state")
		return budget.Snapshot{}, false
	}
	if ok {
		a.log.WithField("last_saved", s.SavedAt).Debug("snapshot loaded")
	}
	return s, ok
}

// Clear removes the stored record.
func (a *Adapter) Clear() error {
	ctx, cancel := a.context()
	defer cancel()
	if err := a.store.Remove(ctx, a.key); err != nil {
		return &WriteError{Key: a.key, Err: err}
	}
	a.log.Debug("snapshot removed")
	return nil
}

func (a *Adapter) context() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), a.timeout)
}
