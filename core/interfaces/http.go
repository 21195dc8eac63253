package interfaces

import (
	"context"
	"io"
)

// HTTPClient fetches remote pages for content extraction. The abstraction
// keeps the content service testable without the network.
type HTTPClient interface {
	// Get performs an HTTP GET request against url.
	Get(ctx context.Context, url string) (Response, error)

	// Post performs an HTTP POST request against url with the given body.
	Post(ctx context.Context, url string, body io.Reader) (Response, error)
}

// Response is the minimal view of an HTTP response the content service needs.
type Response interface {
	// StatusCode returns the HTTP status code.
	StatusCode() int

	// Body returns the response body. The caller closes it.
	Body() io.ReadCloser

	// Header returns the value of the named header, case-insensitively.
	// Absent headers yield an empty string.
	Header(key string) string
}
