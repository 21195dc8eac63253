// ABOUTME: Highlight and content handlers for the Huma API
// ABOUTME: Provides HTTP endpoints for annotated rendering and highlight management

package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/samling-jackyjyo/hoarder-sub003/api/dto/mappers"
	"github.com/samling-jackyjyo/hoarder-sub003/api/dto/requests"
	"github.com/samling-jackyjyo/hoarder-sub003/api/dto/responses"
	"github.com/samling-jackyjyo/hoarder-sub003/core/domain"
	"github.com/samling-jackyjyo/hoarder-sub003/core/highlights"
)

// AnnotationService interface defines the methods needed from the annotation service
type AnnotationService interface {
	GetContent(ctx context.Context, bookmarkID, url string) (*domain.BookmarkContent, error)
	RenderAnnotated(ctx context.Context, bookmarkID, url string) (*highlights.AnnotatedView, error)
	CaptureSelection(ctx context.Context, bookmarkID, url string, anchor, focus highlights.SelectionPoint) (int, int, error)
	CreateHighlight(ctx context.Context, bookmarkID, url string, startOffset, endOffset int, color domain.Color, note, ownerID string) (*domain.Highlight, error)
	ListHighlights(ctx context.Context, bookmarkID, url string) ([]domain.Highlight, error)
	UpdateHighlight(ctx context.Context, highlightID string, patch domain.HighlightPatch) (*domain.Highlight, error)
	DeleteHighlight(ctx context.Context, highlightID string) error
}

// HighlightHandler handles highlight-related HTTP requests
type HighlightHandler struct {
	service AnnotationService
}

// NewHighlightHandler creates a new highlight handler
func NewHighlightHandler(service AnnotationService) *HighlightHandler {
	return &HighlightHandler{service: service}
}

// RegisterRoutes registers all highlight-related routes
func (h *HighlightHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "getBookmarkContent",
		Method:      http.MethodGet,
		Path:        "/bookmarks/{bookmarkId}/content",
		Summary:     "Get extracted bookmark content",
		Description: "Returns the extracted, versioned article content for a bookmark",
		Tags:        []string{"Content"},
	}, h.GetContent)

	huma.Register(api, huma.Operation{
		OperationID: "getAnnotatedContent",
		Method:      http.MethodGet,
		Path:        "/bookmarks/{bookmarkId}/annotated",
		Summary:     "Get content with highlight overlay",
		Description: "Returns the bookmark content with highlight markers composed into the HTML",
		Tags:        []string{"Content"},
	}, h.GetAnnotated)

	huma.Register(api, huma.Operation{
		OperationID: "listHighlights",
		Method:      http.MethodGet,
		Path:        "/bookmarks/{bookmarkId}/highlights",
		Summary:     "List highlights for a bookmark",
		Description: "Returns the bookmark's highlights ordered by start offset, creation time and id",
		Tags:        []string{"Highlights"},
	}, h.ListHighlights)

	huma.Register(api, huma.Operation{
		OperationID:   "createHighlight",
		Method:        http.MethodPost,
		Path:          "/bookmarks/{bookmarkId}/highlights",
		Summary:       "Create a highlight",
		Description:   "Creates a highlight over the bookmark's current content version",
		Tags:          []string{"Highlights"},
		DefaultStatus: http.StatusCreated,
	}, h.CreateHighlight)

	huma.Register(api, huma.Operation{
		OperationID: "captureSelection",
		Method:      http.MethodPost,
		Path:        "/bookmarks/{bookmarkId}/selection",
		Summary:     "Resolve a selection to canonical offsets",
		Description: "Translates segment-addressed selection endpoints into a canonical offset range",
		Tags:        []string{"Highlights"},
	}, h.CaptureSelection)

	huma.Register(api, huma.Operation{
		OperationID: "updateHighlight",
		Method:      http.MethodPatch,
		Path:        "/highlights/{highlightId}",
		Summary:     "Update a highlight",
		Description: "Updates a highlight's color or note; offsets are immutable",
		Tags:        []string{"Highlights"},
	}, h.UpdateHighlight)

	huma.Register(api, huma.Operation{
		OperationID:   "deleteHighlight",
		Method:        http.MethodDelete,
		Path:          "/highlights/{highlightId}",
		Summary:       "Delete a highlight",
		Description:   "Deletes a highlight; deleting an unknown id succeeds",
		Tags:          []string{"Highlights"},
		DefaultStatus: http.StatusNoContent,
	}, h.DeleteHighlight)
}

// GetContentInput defines the input for the GetContent operation
type GetContentInput struct {
	BookmarkID string `path:"bookmarkId" doc:"Bookmark identifier"`
	URL        string `query:"url" required:"true" format:"uri" doc:"Bookmark page URL"`
}

// GetContentOutput defines the output for the GetContent operation
type GetContentOutput struct {
	Body responses.BookmarkContentResponse
}

// GetContent handles GET /bookmarks/{bookmarkId}/content
func (h *HighlightHandler) GetContent(ctx context.Context, input *GetContentInput) (*GetContentOutput, error) {
	content, err := h.service.GetContent(ctx, input.BookmarkID, input.URL)
	if err != nil {
		return nil, toHumaError(err)
	}
	return &GetContentOutput{Body: *mappers.ToBookmarkContentResponse(content)}, nil
}

// GetAnnotatedInput defines the input for the GetAnnotated operation
type GetAnnotatedInput struct {
	BookmarkID string `path:"bookmarkId" doc:"Bookmark identifier"`
	URL        string `query:"url" required:"true" format:"uri" doc:"Bookmark page URL"`
}

// GetAnnotatedOutput defines the output for the GetAnnotated operation
type GetAnnotatedOutput struct {
	Body responses.AnnotatedContentResponse
}

// GetAnnotated handles GET /bookmarks/{bookmarkId}/annotated
func (h *HighlightHandler) GetAnnotated(ctx context.Context, input *GetAnnotatedInput) (*GetAnnotatedOutput, error) {
	view, err := h.service.RenderAnnotated(ctx, input.BookmarkID, input.URL)
	if err != nil {
		return nil, toHumaError(err)
	}
	return &GetAnnotatedOutput{Body: *mappers.ToAnnotatedContentResponse(view)}, nil
}

// ListHighlightsInput defines the input for the ListHighlights operation
type ListHighlightsInput struct {
	BookmarkID string `path:"bookmarkId" doc:"Bookmark identifier"`
	URL        string `query:"url" required:"true" format:"uri" doc:"Bookmark page URL"`
}

// ListHighlightsOutput defines the output for the ListHighlights operation
type ListHighlightsOutput struct {
	Body responses.HighlightListResponse
}

// ListHighlights handles GET /bookmarks/{bookmarkId}/highlights
func (h *HighlightHandler) ListHighlights(ctx context.Context, input *ListHighlightsInput) (*ListHighlightsOutput, error) {
	list, err := h.service.ListHighlights(ctx, input.BookmarkID, input.URL)
	if err != nil {
		return nil, toHumaError(err)
	}
	return &ListHighlightsOutput{Body: mappers.ToHighlightListResponse(list)}, nil
}

// CreateHighlightInput defines the input for the CreateHighlight operation
type CreateHighlightInput struct {
	BookmarkID string `path:"bookmarkId" doc:"Bookmark identifier"`
	URL        string `query:"url" required:"true" format:"uri" doc:"Bookmark page URL"`
	Body       requests.CreateHighlightRequest
}

// CreateHighlightOutput defines the output for the CreateHighlight operation
type CreateHighlightOutput struct {
	Body responses.HighlightResponse
}

// CreateHighlight handles POST /bookmarks/{bookmarkId}/highlights
func (h *HighlightHandler) CreateHighlight(ctx context.Context, input *CreateHighlightInput) (*CreateHighlightOutput, error) {
	created, err := h.service.CreateHighlight(ctx, input.BookmarkID, input.URL,
		input.Body.StartOffset, input.Body.EndOffset,
		domain.Color(input.Body.Color), input.Body.Note, input.Body.OwnerID)
	if err != nil {
		return nil, toHumaError(err)
	}
	return &CreateHighlightOutput{Body: *mappers.ToHighlightResponse(created)}, nil
}

// CaptureSelectionInput defines the input for the CaptureSelection operation
type CaptureSelectionInput struct {
	BookmarkID string `path:"bookmarkId" doc:"Bookmark identifier"`
	URL        string `query:"url" required:"true" format:"uri" doc:"Bookmark page URL"`
	Body       requests.CaptureSelectionRequest
}

// CaptureSelectionOutput defines the output for the CaptureSelection operation
type CaptureSelectionOutput struct {
	Body responses.SelectionResponse
}

// CaptureSelection handles POST /bookmarks/{bookmarkId}/selection
func (h *HighlightHandler) CaptureSelection(ctx context.Context, input *CaptureSelectionInput) (*CaptureSelectionOutput, error) {
	start, end, err := h.service.CaptureSelection(ctx, input.BookmarkID, input.URL,
		highlights.SelectionPoint{SegmentIndex: input.Body.Anchor.SegmentIndex, Offset: input.Body.Anchor.Offset},
		highlights.SelectionPoint{SegmentIndex: input.Body.Focus.SegmentIndex, Offset: input.Body.Focus.Offset})
	if err != nil {
		return nil, toHumaError(err)
	}
	return &CaptureSelectionOutput{Body: responses.SelectionResponse{StartOffset: start, EndOffset: end}}, nil
}

// UpdateHighlightInput defines the input for the UpdateHighlight operation
type UpdateHighlightInput struct {
	HighlightID string `path:"highlightId" doc:"Highlight identifier"`
	Body        requests.UpdateHighlightRequest
}

// UpdateHighlightOutput defines the output for the UpdateHighlight operation
type UpdateHighlightOutput struct {
	Body responses.HighlightResponse
}

// UpdateHighlight handles PATCH /highlights/{highlightId}
func (h *HighlightHandler) UpdateHighlight(ctx context.Context, input *UpdateHighlightInput) (*UpdateHighlightOutput, error) {
	patch := domain.HighlightPatch{Note: input.Body.Note}
	if input.Body.Color != nil {
		color := domain.Color(*input.Body.Color)
		patch.Color = &color
	}

	updated, err := h.service.UpdateHighlight(ctx, input.HighlightID, patch)
	if err != nil {
		return nil, toHumaError(err)
	}

	out := &UpdateHighlightOutput{}
	// Unknown ids are a no-op success; the body stays empty.
	if updated != nil {
		out.Body = *mappers.ToHighlightResponse(updated)
	}
	return out, nil
}

// DeleteHighlightInput defines the input for the DeleteHighlight operation
type DeleteHighlightInput struct {
	HighlightID string `path:"highlightId" doc:"Highlight identifier"`
}

// DeleteHighlightOutput defines the output for the DeleteHighlight operation
type DeleteHighlightOutput struct{}

// DeleteHighlight handles DELETE /highlights/{highlightId}
func (h *HighlightHandler) DeleteHighlight(ctx context.Context, input *DeleteHighlightInput) (*DeleteHighlightOutput, error) {
	if err := h.service.DeleteHighlight(ctx, input.HighlightID); err != nil {
		return nil, toHumaError(err)
	}
	return &DeleteHighlightOutput{}, nil
}
