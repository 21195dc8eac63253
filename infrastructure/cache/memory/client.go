// ABOUTME: In-memory cache implementation using go-cache
// ABOUTME: Provides TTL-based expiration for single-process deployments

package memory

import (
	"context"
	"errors"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryCache implements the Cache interface using an in-process store
type MemoryCache struct {
	store *gocache.Cache
}

// NewMemoryCache creates a new in-memory cache. Entries set without an
// explicit TTL use defaultExpiration; expired entries are purged twice per
// expiration interval.
func NewMemoryCache(defaultExpiration time.Duration) *MemoryCache {
	if defaultExpiration <= 0 {
		defaultExpiration = time.Hour
	}
	return &MemoryCache{
		store: gocache.New(defaultExpiration, defaultExpiration/2),
	}
}

// Get retrieves a value from the cache
func (c *MemoryCache) Get(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, errors.New("key cannot be empty")
	}

	val, found := c.store.Get(key)
	if !found {
		return nil, errors.New("key not found")
	}

	data, ok := val.([]byte)
	if !ok {
		return nil, errors.New("cached value has unexpected type")
	}
	return data, nil
}

// Set stores a value in the cache with the given TTL
func (c *MemoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if key == "" {
		return errors.New("key cannot be empty")
	}

	if ttl <= 0 {
		ttl = gocache.DefaultExpiration
	}
	c.store.Set(key, value, ttl)
	return nil
}

// Delete removes a key from the cache. Deleting a missing key is not an error.
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	if key == "" {
		return errors.New("key cannot be empty")
	}

	c.store.Delete(key)
	return nil
}
