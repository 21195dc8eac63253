// ABOUTME: Response DTOs for highlight and content API endpoints
// ABOUTME: Provides structured responses with JSON serialization

package responses

import "time"

// HighlightResponse represents a highlight in API responses
type HighlightResponse struct {
	ID             string    `json:"id" doc:"Unique identifier for the highlight"`
	BookmarkID     string    `json:"bookmarkId" doc:"Bookmark the highlight belongs to"`
	ContentVersion string    `json:"contentVersion" doc:"Content version the offsets were captured against"`
	StartOffset    int       `json:"startOffset" doc:"Inclusive start offset in UTF-16 code units"`
	EndOffset      int       `json:"endOffset" doc:"Exclusive end offset in UTF-16 code units"`
	Color          string    `json:"color" doc:"Highlight color"`
	Note           string    `json:"note,omitempty" doc:"Note attached to the highlight"`
	TextSnapshot   string    `json:"textSnapshot,omitempty" doc:"Text covered by the range at creation time"`
	OwnerID        string    `json:"ownerId,omitempty" doc:"Identifier of the highlight owner"`
	CreatedAt      time.Time `json:"createdAt" doc:"When the highlight was created"`
}

// HighlightListResponse represents the response for listing highlights
type HighlightListResponse struct {
	Highlights []HighlightResponse `json:"highlights" doc:"Highlights in canonical order"`
	Total      int                 `json:"total" doc:"Total number of highlights"`
}

// OverlaySegmentResponse represents one run of the overlay decomposition
type OverlaySegmentResponse struct {
	Start        int      `json:"start" doc:"Inclusive segment start offset"`
	End          int      `json:"end" doc:"Exclusive segment end offset"`
	HighlightIDs []string `json:"highlightIds,omitempty" doc:"Highlights covering this segment"`
	Color        string   `json:"color,omitempty" doc:"Winning color for this segment"`
}

// BookmarkContentResponse represents a bookmark's extracted content
type BookmarkContentResponse struct {
	BookmarkID string    `json:"bookmarkId" doc:"Bookmark identifier"`
	URL        string    `json:"url" doc:"Source page URL"`
	Version    string    `json:"version" doc:"Content version identifier"`
	Title      string    `json:"title,omitempty" doc:"Article title"`
	SiteName   string    `json:"siteName,omitempty" doc:"Site name"`
	Favicon    string    `json:"favicon,omitempty" doc:"Favicon URL"`
	HTML       string    `json:"html" doc:"Sanitized article HTML"`
	Markdown   string    `json:"markdown,omitempty" doc:"Markdown rendition of the article"`
	FetchedAt  time.Time `json:"fetchedAt" doc:"When the content was fetched"`
}

// AnnotatedContentResponse represents content rendered with highlight markers
type AnnotatedContentResponse struct {
	BookmarkID           string                   `json:"bookmarkId" doc:"Bookmark identifier"`
	ContentVersion       string                   `json:"contentVersion" doc:"Content version the overlay was composed against"`
	Title                string                   `json:"title,omitempty" doc:"Article title"`
	HTML                 string                   `json:"html" doc:"Article HTML with highlight markers"`
	Segments             []OverlaySegmentResponse `json:"segments,omitempty" doc:"Overlay decomposition of the text"`
	StaleIDs             []string                 `json:"staleIds,omitempty" doc:"Highlights whose ranges no longer fit the content"`
	HighlightingDisabled bool                     `json:"highlightingDisabled,omitempty" doc:"Set when content could not be parsed"`
}

// SelectionResponse represents a resolved selection range
type SelectionResponse struct {
	StartOffset int `json:"startOffset" doc:"Canonical inclusive start offset"`
	EndOffset   int `json:"endOffset" doc:"Canonical exclusive end offset"`
}
