package content

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	coreerrors "github.com/samling-jackyjyo/hoarder-sub003/core/errors"
	"github.com/samling-jackyjyo/hoarder-sub003/core/interfaces"
)

type nopLogger struct{}

func (nopLogger) Debug(string, map[string]interface{}) {}
func (nopLogger) Info(string, map[string]interface{})  {}
func (nopLogger) Warn(string, map[string]interface{})  {}
func (nopLogger) Error(string, map[string]interface{}) {}

// mockResponse implements interfaces.Response
type mockResponse struct {
	status int
	body   []byte
}

func (r *mockResponse) StatusCode() int      { return r.status }
func (r *mockResponse) Body() io.ReadCloser  { return io.NopCloser(bytes.NewReader(r.body)) }
func (r *mockResponse) Header(string) string { return "" }

// mockHTTPClient implements interfaces.HTTPClient
type mockHTTPClient struct {
	mu       sync.Mutex
	requests int
	getFunc  func(ctx context.Context, url string) (interfaces.Response, error)
}

func (c *mockHTTPClient) Get(ctx context.Context, url string) (interfaces.Response, error) {
	c.mu.Lock()
	c.requests++
	c.mu.Unlock()
	return c.getFunc(ctx, url)
}

func (c *mockHTTPClient) Post(ctx context.Context, url string, body io.Reader) (interfaces.Response, error) {
	return nil, errors.New("not implemented")
}

// mapCache is a minimal in-memory Cache for tests
type mapCache struct {
	mu    sync.Mutex
	items map[string][]byte
}

func newMapCache() *mapCache { return &mapCache{items: make(map[string][]byte)} }

func (c *mapCache) Get(ctx context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if v, ok := c.items[key]; ok {
		return v, nil
	}
	return nil, errors.New("key not found")
}

func (c *mapCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = value
	return nil
}

func (c *mapCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
	return nil
}

const testPage = `<!DOCTYPE html>
<html>
<head>
<title>Offset Algebra for Fun and Profit</title>
<meta property="og:site_name" content="Example Engineering">
</head>
<body>
<article>
<h1>Offset Algebra for Fun and Profit</h1>
<p>Text offsets are a deceptively simple coordinate space. This paragraph
exists to give the readability extractor enough content to consider the
page an article worth keeping, which requires a reasonable amount of text
in connected paragraphs.</p>
<p>A second paragraph with more prose keeps the extractor happy and gives
the content hash something stable to chew on across test runs.</p>
</article>
</body>
</html>`

func newTestService(client *mockHTTPClient, cache interfaces.Cache) *Service {
	return NewService(interfaces.Dependencies{
		Cache:      cache,
		HTTPClient: client,
		Logger:     nopLogger{},
	})
}

func TestGet_ExtractsContentAndVersion(t *testing.T) {
	client := &mockHTTPClient{
		getFunc: func(ctx context.Context, url string) (interfaces.Response, error) {
			return &mockResponse{status: 200, body: []byte(testPage)}, nil
		},
	}
	svc := newTestService(client, nil)

	content, err := svc.Get(context.Background(), "bm-1", "https://example.com/article")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}

	if content.Version == "" {
		t.Error("content version should be derived from extracted HTML")
	}
	if content.HTML == "" {
		t.Error("extracted HTML should not be empty")
	}
	if content.Title != "Offset Algebra for Fun and Profit" {
		t.Errorf("Title = %q", content.Title)
	}
	if content.BookmarkID != "bm-1" {
		t.Errorf("BookmarkID = %q, want bm-1", content.BookmarkID)
	}
}

func TestGet_VersionStableAcrossFetches(t *testing.T) {
	client := &mockHTTPClient{
		getFunc: func(ctx context.Context, url string) (interfaces.Response, error) {
			return &mockResponse{status: 200, body: []byte(testPage)}, nil
		},
	}
	svc := newTestService(client, nil)

	first, err := svc.Get(context.Background(), "bm-1", "https://example.com/article")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	second, err := svc.Get(context.Background(), "bm-1", "https://example.com/article")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if first.Version != second.Version {
		t.Errorf("version changed for identical content: %q vs %q", first.Version, second.Version)
	}
}

func TestGet_ServesFromCache(t *testing.T) {
	client := &mockHTTPClient{
		getFunc: func(ctx context.Context, url string) (interfaces.Response, error) {
			return &mockResponse{status: 200, body: []byte(testPage)}, nil
		},
	}
	svc := newTestService(client, newMapCache())

	if _, err := svc.Get(context.Background(), "bm-1", "https://example.com/article"); err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if _, err := svc.Get(context.Background(), "bm-1", "https://example.com/article"); err != nil {
		t.Fatalf("Get returned error: %v", err)
	}

	client.mu.Lock()
	defer client.mu.Unlock()
	if client.requests != 1 {
		t.Errorf("made %d HTTP requests, want 1 (second hit served from cache)", client.requests)
	}
}

func TestGet_RejectsInvalidURL(t *testing.T) {
	svc := newTestService(&mockHTTPClient{}, nil)

	_, err := svc.Get(context.Background(), "bm-1", "not a url")
	if !coreerrors.IsValidation(err) {
		t.Errorf("error = %v, want ValidationError", err)
	}
}

func TestGet_UpstreamErrorSurfaced(t *testing.T) {
	client := &mockHTTPClient{
		getFunc: func(ctx context.Context, url string) (interfaces.Response, error) {
			return &mockResponse{status: 404, body: nil}, nil
		},
	}
	svc := newTestService(client, nil)

	_, err := svc.Get(context.Background(), "bm-1", "https://example.com/gone")
	if !coreerrors.IsExternalAPI(err) {
		t.Errorf("error = %v, want ExternalAPIError", err)
	}
}
