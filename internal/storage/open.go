package storage

import (
	"fmt"

	"github.com/twoloonies/loonies/internal/config"
)

// Open returns the Store selected by cfg.
func Open(cfg config.StorageConfig) (Store, error) {
	switch cfg.Backend {
	case config.BackendMemory:
		return NewMemory(), nil
	case config.BackendFile:
		return NewFile(cfg.Path)
	case config.BackendSQLite:
		return NewSQLite(cfg.Path)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
