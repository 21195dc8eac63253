// Package infrastructure provides concrete implementations of the interfaces
// defined in the core package. These implementations handle external concerns
// such as caching, HTTP communication, logging, and persistence.
//
// The infrastructure package is organized by technical concern:
//
// - cache/memory: In-memory cache implementation with TTL support
// - cache/redis: Redis-based cache implementation
// - cache/sqlite: SQLite-backed cache for single-node persistence
// - http/standard: Standard library HTTP client with retry logic
// - logger/logrus: Structured logger implementation on logrus
// - storage/sqlite: SQLite-backed highlight storage
//
// # Design Philosophy
//
// Infrastructure components are designed to be:
// - Pluggable: Easy to swap implementations
// - Configurable: Accept configuration objects
// - Testable: Include both unit and integration tests
// - Production-ready: Include retries, timeouts, and error handling
//
// # Cache Implementations
//
// Memory Cache Example:
//
//	cache := memory.NewMemoryCache(5 * time.Minute)
//	err := cache.Set(ctx, "key", []byte("value"), 1*time.Hour)
//	value, err := cache.Get(ctx, "key")
//
// Redis Cache Example:
//
//	config := &redis.Config{
//	    Address:  "localhost:6379",
//	    Password: "",
//	    DB:       0,
//	}
//	cache, err := redis.NewRedisCache(config)
//
// # HTTP Client
//
// The HTTP client includes automatic retry logic for transient failures:
//
//	client := standard.NewStandardHTTPClient(30 * time.Second)
//	resp, err := client.Get(ctx, "https://example.com")
//	if err != nil {
//	    // Handle error
//	}
//	defer resp.Body().Close()
//
// # Highlight Storage
//
// The SQLite storage persists highlights across restarts:
//
//	store, err := sqlite.NewHighlightStorage("highlights.db")
//	if err != nil {
//	    // Handle error
//	}
//	defer store.Close()
//
package infrastructure
