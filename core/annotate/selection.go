// ABOUTME: Selection capture translating tree positions into canonical offsets
// ABOUTME: Uses the inverse offset map and normalizes selection direction

package annotate

import "errors"

// ErrLeafNotMapped is returned when a selection endpoint references a leaf
// that is not part of the offset map's tree. Selections must be captured
// against the original tree, never against a transient overlay tree.
var ErrLeafNotMapped = errors.New("annotate: selection endpoint not present in offset map")

// Position is a tree position: a text leaf of the original tree plus a
// UTF-16 offset within it. Any environment able to report "anchor node +
// offset, focus node + offset" can supply these.
type Position struct {
	Leaf   *Node
	Offset int
}

// CaptureSelection converts a live selection's anchor and focus positions
// into a canonical [start, end) offset pair. The result is normalized so
// start <= end regardless of the direction the user dragged the selection.
func (m *OffsetMap) CaptureSelection(anchor, focus Position) (int, int, error) {
	start, err := m.canonicalOffset(anchor)
	if err != nil {
		return 0, 0, err
	}
	end, err := m.canonicalOffset(focus)
	if err != nil {
		return 0, 0, err
	}
	if start > end {
		start, end = end, start
	}
	return start, end, nil
}

// PositionAt builds a Position from a segment index and a local offset,
// allowing callers that cannot hold node references (e.g. an HTTP API) to
// address selection endpoints. Synthetic segments are valid anchors; their
// position maps to the synthetic characters they contribute.
func (m *OffsetMap) PositionAt(segmentIndex, offset int) (Position, error) {
	if segmentIndex < 0 || segmentIndex >= len(m.segments) {
		return Position{}, ErrLeafNotMapped
	}
	return Position{Leaf: m.segments[segmentIndex].Leaf, Offset: offset}, nil
}

func (m *OffsetMap) canonicalOffset(pos Position) (int, error) {
	if pos.Leaf == nil {
		return 0, ErrLeafNotMapped
	}
	i, ok := m.byLeaf[pos.Leaf]
	if !ok {
		// Synthetic segments are keyed by their anchoring element.
		i = -1
		for idx, seg := range m.segments {
			if seg.Leaf == pos.Leaf {
				i = idx
				break
			}
		}
		if i < 0 {
			return 0, ErrLeafNotMapped
		}
	}
	seg := m.segments[i]
	offset := pos.Offset
	if offset < 0 {
		offset = 0
	}
	if offset > seg.Length {
		offset = seg.Length
	}
	return seg.Start + offset, nil
}
