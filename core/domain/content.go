// ABOUTME: Domain model for a bookmark's cached content snapshot
// ABOUTME: Content versions anchor highlight offsets to an immutable text space

package domain

import "time"

// BookmarkContent represents an immutable snapshot of a bookmark's extracted
// page content. Highlights are anchored to a specific Version's offset space;
// when content is refetched and changes, a new Version is derived.
type BookmarkContent struct {
	// BookmarkID identifies the bookmark the content belongs to
	BookmarkID string `json:"bookmarkId"`

	// URL is the page the content was extracted from
	URL string `json:"url"`

	// Version is the content-version identifier (hash of HTML)
	Version string `json:"version"`

	// Title is the extracted article title
	Title string `json:"title"`

	// SiteName is the publishing site's name, if detectable
	SiteName string `json:"siteName,omitempty"`

	// Favicon is the site's favicon URL, if detectable
	Favicon string `json:"favicon,omitempty"`

	// HTML is the sanitized, readable article markup
	HTML string `json:"html"`

	// Markdown is the markdown rendition of HTML
	Markdown string `json:"markdown,omitempty"`

	// FetchedAt is when the content was retrieved
	FetchedAt time.Time `json:"fetchedAt"`
}

// IsValid checks if the content has the minimum required fields
func (c *BookmarkContent) IsValid() bool {
	return c.BookmarkID != "" && c.Version != "" && c.HTML != ""
}
