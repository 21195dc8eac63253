// ABOUTME: Range resolver mapping canonical offset ranges to tree positions
// ABOUTME: Binary-searches the offset map and walks contiguous segments

package annotate

import (
	"sort"
	"strings"

	coreerrors "github.com/samling-jackyjyo/hoarder-sub003/core/errors"
)

// LeafSpan is the intersection of an offset range with a single segment.
// Start and End are local UTF-16 offsets within the segment's text.
type LeafSpan struct {
	Leaf      *Node
	Start     int
	End       int
	Text      string
	Synthetic bool
}

// AlignRange widens [start, end) outward so neither boundary lands inside a
// surrogate pair. Snapping the range once up front keeps every later slice on
// the same rune boundaries; two cuts sharing a mid-pair offset would otherwise
// each widen over the pair on their own.
func (m *OffsetMap) AlignRange(start, end int) (int, int) {
	return m.alignDown(start), m.alignUp(end)
}

func (m *OffsetMap) alignDown(off int) int {
	seg := m.segmentContaining(off)
	if seg == nil || seg.Synthetic {
		return off
	}
	return seg.Start + utf16AlignDown(seg.Text, off-seg.Start)
}

func (m *OffsetMap) alignUp(off int) int {
	seg := m.segmentContaining(off)
	if seg == nil || seg.Synthetic {
		return off
	}
	local := off - seg.Start
	if aligned := utf16AlignDown(seg.Text, local); aligned < local {
		// Mid-pair: the next boundary is one unit past the trail unit.
		return seg.Start + aligned + 2
	}
	return off
}

// segmentContaining returns the segment with Start <= off < End, or nil.
func (m *OffsetMap) segmentContaining(off int) *Segment {
	if off < 0 || off >= m.total {
		return nil
	}
	i := sort.Search(len(m.segments), func(i int) bool {
		return m.segments[i].End() > off
	})
	if i >= len(m.segments) {
		return nil
	}
	return &m.segments[i]
}

// Resolve returns the ordered list of leaf-local spans covered by
// [start, end) in the canonical text.
//
// end beyond the total length is clamped. start outside [0, total) yields an
// OffsetOutOfRangeError. A degenerate range (start == end after clamping)
// resolves to an empty list; rejecting empty highlight ranges is the
// reconciler's concern, not the resolver's.
func (m *OffsetMap) Resolve(start, end int) ([]LeafSpan, error) {
	if start < 0 || start >= m.total {
		return nil, &coreerrors.OffsetOutOfRangeError{Start: start, End: end, TotalLength: m.total}
	}
	if end > m.total {
		end = m.total
	}
	if end <= start {
		return nil, nil
	}
	start, end = m.AlignRange(start, end)

	// First segment whose end exceeds start.
	i := sort.Search(len(m.segments), func(i int) bool {
		return m.segments[i].End() > start
	})

	var spans []LeafSpan
	for ; i < len(m.segments) && m.segments[i].Start < end; i++ {
		seg := m.segments[i]
		localStart := 0
		if start > seg.Start {
			localStart = start - seg.Start
		}
		localEnd := seg.Length
		if end < seg.End() {
			localEnd = end - seg.Start
		}
		spans = append(spans, LeafSpan{
			Leaf:      seg.Leaf,
			Start:     localStart,
			End:       localEnd,
			Text:      utf16Slice(seg.Text, localStart, localEnd),
			Synthetic: seg.Synthetic,
		})
	}
	return spans, nil
}

// SliceText returns the canonical text covered by [start, end), with both
// boundaries clamped to the valid range. Used to capture text snapshots at
// highlight creation time.
func (m *OffsetMap) SliceText(start, end int) string {
	if start < 0 {
		start = 0
	}
	if end > m.total {
		end = m.total
	}
	if end <= start || start >= m.total {
		return ""
	}
	spans, err := m.Resolve(start, end)
	if err != nil {
		return ""
	}
	var b strings.Builder
	for _, s := range spans {
		b.WriteString(s.Text)
	}
	return b.String()
}
