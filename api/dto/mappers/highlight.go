// ABOUTME: Mappers for converting between domain models and API DTOs
// ABOUTME: Provides clean separation between business logic and API layer

package mappers

import (
	"github.com/samling-jackyjyo/hoarder-sub003/api/dto/responses"
	"github.com/samling-jackyjyo/hoarder-sub003/core/annotate"
	"github.com/samling-jackyjyo/hoarder-sub003/core/domain"
	"github.com/samling-jackyjyo/hoarder-sub003/core/highlights"
)

// ToHighlightResponse converts a domain Highlight to a HighlightResponse DTO
func ToHighlightResponse(h *domain.Highlight) *responses.HighlightResponse {
	if h == nil {
		return nil
	}

	return &responses.HighlightResponse{
		ID:             h.ID,
		BookmarkID:     h.BookmarkID,
		ContentVersion: h.ContentVersion,
		StartOffset:    h.StartOffset,
		EndOffset:      h.EndOffset,
		Color:          string(h.Color),
		Note:           h.Note,
		TextSnapshot:   h.TextSnapshot,
		OwnerID:        h.OwnerID,
		CreatedAt:      h.CreatedAt,
	}
}

// ToHighlightListResponse converts domain Highlights to a list response
func ToHighlightListResponse(list []domain.Highlight) responses.HighlightListResponse {
	out := responses.HighlightListResponse{
		Highlights: make([]responses.HighlightResponse, 0, len(list)),
		Total:      len(list),
	}
	for i := range list {
		if r := ToHighlightResponse(&list[i]); r != nil {
			out.Highlights = append(out.Highlights, *r)
		}
	}
	return out
}

// ToBookmarkContentResponse converts a domain BookmarkContent to its DTO
func ToBookmarkContentResponse(c *domain.BookmarkContent) *responses.BookmarkContentResponse {
	if c == nil {
		return nil
	}

	return &responses.BookmarkContentResponse{
		BookmarkID: c.BookmarkID,
		URL:        c.URL,
		Version:    c.Version,
		Title:      c.Title,
		SiteName:   c.SiteName,
		Favicon:    c.Favicon,
		HTML:       c.HTML,
		Markdown:   c.Markdown,
		FetchedAt:  c.FetchedAt,
	}
}

// ToOverlaySegmentResponses converts overlay segments to DTOs
func ToOverlaySegmentResponses(segments []annotate.OverlaySegment) []responses.OverlaySegmentResponse {
	out := make([]responses.OverlaySegmentResponse, 0, len(segments))
	for _, s := range segments {
		out = append(out, responses.OverlaySegmentResponse{
			Start:        s.Start,
			End:          s.End,
			HighlightIDs: s.HighlightIDs,
			Color:        string(s.Color),
		})
	}
	return out
}

// ToAnnotatedContentResponse converts an AnnotatedView to its DTO
func ToAnnotatedContentResponse(view *highlights.AnnotatedView) *responses.AnnotatedContentResponse {
	if view == nil {
		return nil
	}

	return &responses.AnnotatedContentResponse{
		BookmarkID:           view.BookmarkID,
		ContentVersion:       view.ContentVersion,
		Title:                view.Title,
		HTML:                 view.HTML,
		Segments:             ToOverlaySegmentResponses(view.Segments),
		StaleIDs:             view.StaleIDs,
		HighlightingDisabled: view.HighlightingDisabled,
	}
}
