// ABOUTME: Redis-backed cache for content snapshots shared across instances
// ABOUTME: Thin wrapper over go-redis with TTL semantics matching the Cache contract

package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/samling-jackyjyo/hoarder-sub003/pkg/config"
)

// connectTimeout bounds the startup ping
const connectTimeout = 5 * time.Second

// RedisCache implements interfaces.Cache on a Redis server
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache connects to the configured Redis server and verifies the
// connection before returning.
func NewRedisCache(cfg config.RedisConfig) (*RedisCache, error) {
	if cfg.Address == "" {
		return nil, errors.New("redis address cannot be empty")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis at %s: %w", cfg.Address, err)
	}

	return &RedisCache{client: client}, nil
}

// Get returns the value stored under key
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, errors.New("key not found")
	}
	if err != nil {
		return nil, err
	}
	return val, nil
}

// Set stores value under key. A zero ttl stores without expiration.
func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.client.Set(ctx, key, value, ttl).Err()
}

// Delete removes key. Deleting an absent key is not an error.
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, key).Err()
}

// Close closes the Redis connection
func (c *RedisCache) Close() error {
	return c.client.Close()
}
