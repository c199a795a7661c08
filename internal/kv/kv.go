// Package kv provides the durable key-value store backing application state.
// Two string-keyed entries hold everything the tracker persists; the store
// knows nothing about their contents.
package kv

import "context"

// Store is the port for outbound persistence adapters.
type Store interface {
	// Get returns the value for key. The bool reports whether the key
	// exists, distinguishing an absent key from an empty value.
	Get(ctx context.Context, key string) (string, bool, error)
	// Set writes the value for key, replacing any previous value.
	Set(ctx context.Context, key, value string) error
	// Delete removes the key entirely. Deleting an absent key is a no-op.
	Delete(ctx context.Context, key string) error
	Close() error
}
