package sqlite

import (
	"context"
	"testing"
	"time"
)

func newTestCache(t *testing.T) *Client {
	t.Helper()
	c, err := NewSQLiteCache(":memory:")
	if err != nil {
		t.Fatalf("NewSQLiteCache returned error: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func TestSQLiteCache_SetAndGet(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}

	got, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if string(got) != "value" {
		t.Errorf("Get = %q, want %q", got, "value")
	}
}

func TestSQLiteCache_Get_NonExistentKey(t *testing.T) {
	c := newTestCache(t)

	if _, err := c.Get(context.Background(), "missing"); err == nil {
		t.Error("Get should return error for missing key")
	}
}

func TestSQLiteCache_ExpiredKeyNotReturned(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	// Negative TTL produces an already-expired row.
	if err := c.Set(ctx, "key", []byte("value"), -time.Second); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	if _, err := c.Get(ctx, "key"); err == nil {
		t.Error("Get should return error for expired key")
	}
}

func TestSQLiteCache_Delete(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete returned error: %v", err)
	}
	if _, err := c.Get(ctx, "key"); err == nil {
		t.Error("Get should return error after delete")
	}
}

func TestSQLiteCache_Clear(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	for _, key := range []string{"a", "b", "c"} {
		if err := c.Set(ctx, key, []byte("v"), time.Hour); err != nil {
			t.Fatalf("Set returned error: %v", err)
		}
	}
	if err := c.Clear(ctx); err != nil {
		t.Fatalf("Clear returned error: %v", err)
	}
	for _, key := range []string{"a", "b", "c"} {
		if _, err := c.Get(ctx, key); err == nil {
			t.Errorf("Get(%q) should fail after Clear", key)
		}
	}
}

func TestSQLiteCache_EmptyKeyRejected(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	if _, err := c.Get(ctx, ""); err == nil {
		t.Error("Get with empty key should fail")
	}
	if err := c.Set(ctx, "", []byte("v"), time.Hour); err == nil {
		t.Error("Set with empty key should fail")
	}
	if err := c.Delete(ctx, ""); err == nil {
		t.Error("Delete with empty key should fail")
	}
}
