package shared

import (
	"context"
	"time"
)

// IdempotencyStore remembers keys that were already processed so that a
// repeated submission can be detected and rejected.
type IdempotencyStore interface {
	// MarkProcessed marks a key as processed with a TTL
	// Returns true if the key was newly marked, false if it was already processed
	MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// IsProcessed checks if a key has already been processed
	IsProcessed(ctx context.Context, key string) (bool, error)

	// Release forgets a key so the work it guarded can be tried again
	Release(ctx context.Context, key string) error

	// Close closes the store and releases resources
	Close() error
}
