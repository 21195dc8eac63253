// ABOUTME: Request DTOs for highlight-related API endpoints
// ABOUTME: Provides validation constraints for incoming highlight mutations

package requests

// CreateHighlightRequest represents the request body for creating a highlight
type CreateHighlightRequest struct {
	// StartOffset is the inclusive start of the range in UTF-16 code units
	StartOffset int `json:"startOffset" minimum:"0" doc:"Inclusive start offset in UTF-16 code units"`

	// EndOffset is the exclusive end of the range in UTF-16 code units
	EndOffset int `json:"endOffset" minimum:"1" doc:"Exclusive end offset in UTF-16 code units"`

	// Color is the highlight color
	Color string `json:"color" enum:"yellow,red,green,blue,purple" doc:"Highlight color"`

	// Note is an optional free-text annotation
	Note string `json:"note,omitempty" maxLength:"2048" doc:"Optional note attached to the highlight"`

	// OwnerID identifies the user creating the highlight
	OwnerID string `json:"ownerId,omitempty" doc:"Identifier of the highlight owner"`
}

// UpdateHighlightRequest represents the request body for patching a highlight.
// Absent fields are left unchanged; offsets are immutable.
type UpdateHighlightRequest struct {
	// Color is the new highlight color, if set
	Color *string `json:"color,omitempty" enum:"yellow,red,green,blue,purple" doc:"New highlight color"`

	// Note is the new note text, if set
	Note *string `json:"note,omitempty" maxLength:"2048" doc:"New note text"`
}

// SelectionPointRequest addresses one endpoint of a text selection
type SelectionPointRequest struct {
	// SegmentIndex is the index of the offset-map segment containing the endpoint
	SegmentIndex int `json:"segmentIndex" minimum:"0" doc:"Index of the offset-map segment"`

	// Offset is the UTF-16 offset local to the segment
	Offset int `json:"offset" minimum:"0" doc:"UTF-16 offset within the segment"`
}

// CaptureSelectionRequest represents the request body for resolving a
// user selection into canonical offsets
type CaptureSelectionRequest struct {
	// Anchor is where the selection started
	Anchor SelectionPointRequest `json:"anchor" doc:"Selection anchor point"`

	// Focus is where the selection ended
	Focus SelectionPointRequest `json:"focus" doc:"Selection focus point"`
}
