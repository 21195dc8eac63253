// ABOUTME: Storage interfaces for persisting domain entities
// ABOUTME: Defines contracts for data persistence operations

package interfaces

import (
	"context"

	"github.com/samling-jackyjyo/hoarder-sub003/core/domain"
)

// HighlightStorage defines the interface for highlight persistence.
// The reconciler is the sole caller.
type HighlightStorage interface {
	// List retrieves all highlights for a bookmark
	List(ctx context.Context, bookmarkID string) ([]domain.Highlight, error)

	// Create persists a new highlight
	Create(ctx context.Context, highlight *domain.Highlight) error

	// Update applies a patch to a stored highlight and returns the result.
	// Returns nil without error if the highlight does not exist.
	Update(ctx context.Context, highlightID string, patch domain.HighlightPatch) (*domain.Highlight, error)

	// Delete removes a highlight. Deleting an unknown id is not an error.
	Delete(ctx context.Context, highlightID string) error
}
