// ABOUTME: Configuration management for the application with environment variable support
// ABOUTME: Defines configuration structures for server, cache, storage and rate limiting

package config

import (
	"errors"
	"os"
	"strconv"
)

// Config holds all application configuration
type Config struct {
	// Server contains HTTP server configuration
	Server ServerConfig

	// Cache contains cache configuration
	Cache CacheConfig

	// Storage contains highlight persistence configuration
	Storage StorageConfig

	// Content contains bookmark content fetching configuration
	Content ContentConfig

	// RateLimit contains per-IP rate limiting configuration
	RateLimit RateLimitConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	// Port is the HTTP server port
	Port string
}

// CacheConfig holds cache backend configuration
type CacheConfig struct {
	// Type specifies the cache backend (memory/redis/sqlite)
	Type string

	// Redis contains Redis-specific configuration
	Redis RedisConfig

	// Memory contains in-memory cache configuration
	Memory MemoryConfig

	// SQLite contains SQLite cache configuration
	SQLite SQLiteConfig
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	// Address is the Redis server address
	Address string

	// Password is the Redis authentication password
	Password string

	// DB is the Redis database number
	DB int
}

// MemoryConfig holds in-memory cache configuration
type MemoryConfig struct {
	// DefaultExpiration is the default TTL for cache entries in seconds
	DefaultExpiration int
}

// SQLiteConfig holds SQLite cache configuration
type SQLiteConfig struct {
	// Path is the cache database file path
	Path string
}

// StorageConfig holds highlight persistence configuration
type StorageConfig struct {
	// Path is the highlight database file path
	Path string
}

// ContentConfig holds bookmark content fetching configuration
type ContentConfig struct {
	// FetchTimeout is the HTTP timeout for content fetches in seconds
	FetchTimeout int
}

// RateLimitConfig holds per-IP rate limiting configuration
type RateLimitConfig struct {
	// Requests is the number of requests allowed per window (0 disables limiting)
	Requests int

	// WindowSeconds is the rate limit window in seconds
	WindowSeconds int
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port: getEnvOrDefault("PORT", "8000"),
		},
		Cache: CacheConfig{
			Type: getEnvOrDefault("CACHE_TYPE", "memory"),
			Redis: RedisConfig{
				Address:  getEnvOrDefault("REDIS_ADDRESS", "localhost:6379"),
				Password: getEnvOrDefault("REDIS_PASSWORD", ""),
				DB:       getEnvAsIntOrDefault("REDIS_DB", 0),
			},
			Memory: MemoryConfig{
				DefaultExpiration: getEnvAsIntOrDefault("MEMORY_CACHE_EXPIRATION", 3600),
			},
			SQLite: SQLiteConfig{
				Path: getEnvOrDefault("CACHE_SQLITE_PATH", "cache.db"),
			},
		},
		Storage: StorageConfig{
			Path: getEnvOrDefault("HIGHLIGHTS_DB_PATH", "highlights.db"),
		},
		Content: ContentConfig{
			FetchTimeout: getEnvAsIntOrDefault("CONTENT_FETCH_TIMEOUT", 30),
		},
		RateLimit: RateLimitConfig{
			Requests:      getEnvAsIntOrDefault("RATE_LIMIT_REQUESTS", 100),
			WindowSeconds: getEnvAsIntOrDefault("RATE_LIMIT_WINDOW", 60),
		},
	}

	return cfg, nil
}

// getEnvOrDefault returns the environment variable value or a default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsIntOrDefault returns the environment variable as int or a default
func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return errors.New("port cannot be empty")
	}

	switch c.Cache.Type {
	case "memory", "redis", "sqlite":
	default:
		return errors.New("cache type must be 'memory', 'redis' or 'sqlite'")
	}

	if c.Cache.Type == "redis" && c.Cache.Redis.Address == "" {
		return errors.New("redis address cannot be empty when using redis cache")
	}

	if c.Cache.Type == "sqlite" && c.Cache.SQLite.Path == "" {
		return errors.New("sqlite cache path cannot be empty when using sqlite cache")
	}

	if c.Storage.Path == "" {
		return errors.New("highlight storage path cannot be empty")
	}

	if c.Content.FetchTimeout < 1 {
		return errors.New("content fetch timeout must be at least 1 second")
	}

	if c.RateLimit.Requests < 0 {
		return errors.New("rate limit requests cannot be negative")
	}

	if c.RateLimit.Requests > 0 && c.RateLimit.WindowSeconds < 1 {
		return errors.New("rate limit window must be at least 1 second")
	}

	return nil
}
