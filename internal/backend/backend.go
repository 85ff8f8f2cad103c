// Package backend opens the record store named by configuration.
package backend

import (
	"fmt"

	"arthika/internal/config"
	"arthika/internal/store"
)

// Type names a record store implementation.
type Type string

const (
	Memory Type = "memory"
	SQLite Type = "sqlite"
)

// String implements fmt.Stringer
func (t Type) String() string {
	return string(t)
}

// IsValid returns true if the backend type is valid
func (t Type) IsValid() bool {
	switch t {
	case Memory, SQLite:
		return true
	default:
		return false
	}
}

// Open returns the configured record store together with its cleanup
// function. The cleanup is always non-nil.
func Open(cfg *config.Config) (store.RecordStore, func() error, error) {
	switch Type(cfg.DataBackend) {
	case SQLite:
		s, err := store.NewSQLiteStore(cfg.SQLiteDBPath)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite store at %s: %w", cfg.SQLiteDBPath, err)
		}
		return s, s.Close, nil
	case Memory:
		return store.NewMemoryStore(), func() error { return nil }, nil
	default:
		return nil, nil, fmt.Errorf("unknown data backend %q", cfg.DataBackend)
	}
}
