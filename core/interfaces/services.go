// ABOUTME: Service interfaces for the core business logic
// ABOUTME: Defines contracts for services used throughout the application

package interfaces

import (
	"context"

	"github.com/samling-jackyjyo/hoarder-sub003/core/domain"
)

// ContentSource supplies a bookmark's cached, sanitized content snapshot.
// Implementations fetch and extract readable article markup and derive a
// content-version identifier for it.
type ContentSource interface {
	// Get returns the current content snapshot for a bookmark URL.
	// The returned content carries the version highlights anchor to.
	Get(ctx context.Context, bookmarkID string, url string) (*domain.BookmarkContent, error)
}
