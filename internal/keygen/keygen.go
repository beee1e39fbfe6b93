package keygen

import (
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Prefix starts every generated custom field key.
const Prefix = "custom_"

// Generator produces candidate keys for custom fields.
type Generator interface {
	Next() string
}

// UUID generates keys like "custom_5f0c...". Collisions are effectively impossible.
type UUID struct{}

// Next returns a fresh random key.
func (UUID) Next() string {
	return Prefix + uuid.NewString()
}

// Sequence generates "custom_1", "custom_2", ... It is deterministic and meant
// for tests and reproducible fixtures.
type Sequence struct {
	mu   sync.Mutex
	next int
}

// NewSequence returns a Sequence whose first key ends in start.
func NewSequence(start int) *Sequence {
	return &Sequence{next: start}
}

// Next returns the next key in the sequence.
func (s *Sequence) Next() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := FormatKey(s.next)
	s.next++
	return key
}

// FormatKey returns a sequence key like "custom_7".
func FormatKey(n int) string {
	return fmt.Sprintf("%s%d", Prefix, n)
}

// IsCustomKey reports whether key has the custom field prefix.
func IsCustomKey(key string) bool {
	return strings.HasPrefix(key, Prefix) && len(key) > len(Prefix)
}

// Unique calls gen until it returns a key for which taken reports false.
func Unique(gen Generator, taken func(string) bool) string {
	for {
		key := gen.Next()
		if key != "" && !taken(key) {
			return key
		}
	}
}
