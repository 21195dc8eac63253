// ABOUTME: SQLite-backed cache for extracted bookmark content
// ABOUTME: Persists snapshots across restarts so recrawls are spared

package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// cleanupInterval controls how often expired rows are purged
const cleanupInterval = 5 * time.Minute

// Client implements interfaces.Cache on a local SQLite file. Values are
// opaque byte snapshots; expiry is stored as a unix millisecond timestamp
// alongside each row and checked on read.
type Client struct {
	db   *sql.DB
	path string
}

// NewSQLiteCache opens (or creates) the cache database at path
func NewSQLiteCache(path string) (*Client, error) {
	if path == "" {
		path = "cache.db"
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open cache database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("connect to cache database: %w", err)
	}

	c := &Client{db: db, path: path}
	if err := c.initSchema(); err != nil {
		return nil, fmt.Errorf("initialize cache schema: %w", err)
	}

	go c.cleanupLoop()
	return c, nil
}

func (c *Client) initSchema() error {
	_, err := c.db.Exec(`
		CREATE TABLE IF NOT EXISTS cache (
			key    TEXT PRIMARY KEY,
			value  BLOB NOT NULL,
			expiry INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_cache_expiry ON cache(expiry);
	`)
	return err
}

// Get returns the value stored under key, or an error if the key is absent
// or its row has expired.
func (c *Client) Get(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, errors.New("key cannot be empty")
	}

	var value []byte
	err := c.db.QueryRowContext(ctx,
		"SELECT value FROM cache WHERE key = ? AND expiry > ?",
		key, time.Now().UnixMilli(),
	).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, errors.New("key not found or expired")
	}
	if err != nil {
		return nil, fmt.Errorf("read cache row: %w", err)
	}
	return value, nil
}

// Set stores value under key for the duration of ttl
func (c *Client) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if key == "" {
		return errors.New("key cannot be empty")
	}

	_, err := c.db.ExecContext(ctx,
		"INSERT OR REPLACE INTO cache (key, value, expiry) VALUES (?, ?, ?)",
		key, value, time.Now().Add(ttl).UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("write cache row: %w", err)
	}
	return nil
}

// Delete removes the row stored under key, if any
func (c *Client) Delete(ctx context.Context, key string) error {
	if key == "" {
		return errors.New("key cannot be empty")
	}
	if _, err := c.db.ExecContext(ctx, "DELETE FROM cache WHERE key = ?", key); err != nil {
		return fmt.Errorf("delete cache row: %w", err)
	}
	return nil
}

// Clear drops every cached row
func (c *Client) Clear(ctx context.Context) error {
	if _, err := c.db.ExecContext(ctx, "DELETE FROM cache"); err != nil {
		return fmt.Errorf("clear cache: %w", err)
	}
	return nil
}

func (c *Client) cleanupLoop() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()
	for range ticker.C {
		_, _ = c.db.Exec("DELETE FROM cache WHERE expiry <= ?", time.Now().UnixMilli())
	}
}

// Close closes the underlying database
func (c *Client) Close() error {
	return c.db.Close()
}
