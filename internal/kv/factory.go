package kv

import (
	"fmt"
	"log/slog"
)

// Backend identifies a Store implementation.
type Backend string

const (
	MemoryBackend Backend = "memory"
	SQLiteBackend Backend = "sqlite"
)

func (b Backend) IsValid() bool {
	return b == MemoryBackend || b == SQLiteBackend
}

// Open creates the Store for the configured backend.
func Open(backend Backend, dbPath string, logger *slog.Logger) (Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	switch backend {
	case SQLiteBackend:
		store, err := NewSQLiteStore(dbPath)
		if err != nil {
			return nil, fmt.Errorf("initialize sqlite store: %w", err)
		}
		logger.Info("Initialized SQLite store", "db_path", dbPath)
		return store, nil
	case MemoryBackend:
		logger.Info("Initialized memory store")
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", backend)
	}
}
