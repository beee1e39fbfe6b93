package budget

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/twoloonies/loonies/internal/keygen"
)

var fixedNow = time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)

// memPersister keeps the last saved snapshot in memory.
type memPersister struct {
	saved    *Snapshot
	saves    int
	clears   int
	saveErr  error
	clearErr error
}

func (p *memPersister) Save(s Snapshot) error {
	p.saves++
	if p.saveErr != nil {
		return p.saveErr
	}
	c := s.Clone()
	p.saved = &c
	return nil
}

func (p *memPersister) Load() (Snapshot, bool) {
	if p.saved == nil {
		return Snapshot{}, false
	}
	return p.saved.Clone(), true
}

func (p *memPersister) Clear() error {
	p.clears++
	if p.clearErr != nil {
		return p.clearErr
	}
	p.saved = nil
	return nil
}

var errDiskFull = errors.New("disk full")

func newTestEngine(opts ...Option) *Engine {
	base := []Option{
		WithKeyGenerator(keygen.NewSequence(1)),
		WithClock(func() time.Time { return fixedNow }),
	}
	return New(append(base, opts...)...)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDec(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), append([]any{"want %s, got %s", want, got.String()}, msgAndArgs...)...)
}
