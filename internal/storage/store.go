package storage

import (
	"context"
	"errors"
)

// Store is a durable string-keyed slot: the local key-value storage the
// persistence adapter writes the snapshot into.
type Store interface {
	// Get returns the value for key, or false when nothing is stored.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	// Remove deletes key. Removing a missing key is not an error.
	Remove(ctx context.Context, key string) error
	Close() error
}

// ErrEmptyKey is returned for operations on the empty key.
var ErrEmptyKey = errors.New("storage: empty key")
