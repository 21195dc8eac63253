// Package interfaces defines the contracts between the core services and the
// infrastructure layer. Services depend on these interfaces only, so cache,
// logging and transport implementations can be swapped without touching the
// annotation logic.
package interfaces

import (
	"context"
	"time"
)

// Cache stores opaque byte snapshots under string keys. The content service
// keys extracted bookmark content by bookmark id and version, e.g.
// "content:bm-1". Implementations may be in-memory, Redis or SQLite.
type Cache interface {
	// Get retrieves the value stored under key.
	// Returns an error if the key is absent or expired.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key for the duration of ttl.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes the value stored under key.
	// Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}
