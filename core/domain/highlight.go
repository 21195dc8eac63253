// ABOUTME: Highlight domain model anchored to a bookmark's canonical text offsets
// ABOUTME: Provides color enumeration and validation for highlight records

package domain

import (
	"time"

	coreerrors "github.com/samling-jackyjyo/hoarder-sub003/core/errors"
)

// Color is one of the closed set of highlight colors
type Color string

// The full set of supported highlight colors
const (
	ColorYellow Color = "yellow"
	ColorRed    Color = "red"
	ColorGreen  Color = "green"
	ColorBlue   Color = "blue"
	ColorPurple Color = "purple"
)

// MaxNoteLength is the maximum length of a highlight note in bytes
const MaxNoteLength = 2048

// Valid reports whether the color belongs to the supported set
func (c Color) Valid() bool {
	switch c {
	case ColorYellow, ColorRed, ColorGreen, ColorBlue, ColorPurple:
		return true
	}
	return false
}

// Highlight represents a persistent text highlight over a bookmark's cached
// content. Offsets are UTF-16 code units into the canonical text of the
// content version the highlight was created against.
type Highlight struct {
	// ID is the unique identifier (UUID) for the highlight
	ID string `json:"id"`

	// BookmarkID identifies the bookmark the highlight belongs to
	BookmarkID string `json:"bookmarkId"`

	// ContentVersion identifies the content snapshot the offsets are anchored to
	ContentVersion string `json:"contentVersion"`

	// StartOffset is the inclusive start of the highlighted range
	StartOffset int `json:"startOffset"`

	// EndOffset is the exclusive end of the highlighted range
	EndOffset int `json:"endOffset"`

	// Color is the highlight color
	Color Color `json:"color"`

	// Note is an optional annotation attached to the highlight
	Note string `json:"note,omitempty"`

	// TextSnapshot is the highlighted text captured at creation time
	TextSnapshot string `json:"textSnapshot,omitempty"`

	// OwnerID identifies the user who created the highlight
	OwnerID string `json:"ownerId,omitempty"`

	// CreatedAt is when the highlight was created
	CreatedAt time.Time `json:"createdAt"`
}

// Validate checks the highlight's range, color and note against policy
func (h *Highlight) Validate() error {
	if h.StartOffset >= h.EndOffset {
		return &coreerrors.EmptyRangeError{Start: h.StartOffset, End: h.EndOffset}
	}
	if h.StartOffset < 0 {
		return &coreerrors.OffsetOutOfRangeError{Start: h.StartOffset, End: h.EndOffset}
	}
	if !h.Color.Valid() {
		return &coreerrors.ValidationError{Field: "color", Message: "unknown highlight color: " + string(h.Color)}
	}
	if len(h.Note) > MaxNoteLength {
		return &coreerrors.ValidationError{Field: "note", Message: "note exceeds maximum length"}
	}
	return nil
}

// HighlightPatch describes a partial update to a highlight. Nil fields are
// left unchanged.
type HighlightPatch struct {
	Color *Color  `json:"color,omitempty"`
	Note  *string `json:"note,omitempty"`
}

// Validate checks the patch fields against policy
func (p *HighlightPatch) Validate() error {
	if p.Color != nil && !p.Color.Valid() {
		return &coreerrors.ValidationError{Field: "color", Message: "unknown highlight color: " + string(*p.Color)}
	}
	if p.Note != nil && len(*p.Note) > MaxNoteLength {
		return &coreerrors.ValidationError{Field: "note", Message: "note exceeds maximum length"}
	}
	return nil
}

// Apply returns a copy of the highlight with the patch applied
func (p *HighlightPatch) Apply(h Highlight) Highlight {
	if p.Color != nil {
		h.Color = *p.Color
	}
	if p.Note != nil {
		h.Note = *p.Note
	}
	return h
}
