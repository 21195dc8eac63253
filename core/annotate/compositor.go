// ABOUTME: Highlight compositor producing an overlay tree from highlight sets
// ABOUTME: Sweep-line interval decomposition followed by leaf-splitting rebuild

package annotate

import (
	"sort"
	"strings"

	"github.com/samling-jackyjyo/hoarder-sub003/core/domain"
)

// MarkerTag is the element wrapped around highlighted text runs
const MarkerTag = "mark"

// Marker attribute names. All highlight ids active over a run are attached
// for interaction; the winning color drives the visual style.
const (
	MarkerClassAttr = "class"
	MarkerIDsAttr   = "data-highlight-ids"
	MarkerColorAttr = "data-highlight-color"
)

// OverlaySegment is a maximal run of canonical text with a constant set of
// active highlights. Segments partition [0, totalLength) exactly; runs not
// covered by any highlight carry an empty id set. Adjacent segments always
// differ in their active-id set.
type OverlaySegment struct {
	// Start and End delimit the run in canonical UTF-16 offsets
	Start int
	End   int

	// HighlightIDs are the active highlight ids, ascending
	HighlightIDs []string

	// Color is the winning color: latest createdAt, then highest id
	Color domain.Color
}

// Overlay is the compositor's output: a new tree with marker elements wrapped
// around highlighted runs, plus the decomposition that produced it. Overlays
// are ephemeral and recomputed on each render.
type Overlay struct {
	// Root is the overlay tree. Untouched subtrees are shared with the
	// source tree; elements are never split, only text leaves are.
	Root *Node

	// Segments is the interval decomposition of the highlight set
	Segments []OverlaySegment

	// StaleIDs lists highlights excluded because their range no longer
	// fits the current content version. They are flagged, not deleted.
	StaleIDs []string
}

// Compose renders a set of highlights onto the document tree.
//
// The output is deterministic: given the same tree, offset map and highlight
// set, the overlay tree serializes byte-identically regardless of the input
// ordering of highlights. Highlights whose range lies outside the canonical
// text are excluded and reported stale rather than failing the render.
func Compose(root *Node, m *OffsetMap, highlights []domain.Highlight) *Overlay {
	overlay := &Overlay{}

	active := make([]domain.Highlight, 0, len(highlights))
	for _, h := range highlights {
		if h.StartOffset >= h.EndOffset {
			// Zero-width records are rejected at creation; skip
			// defensively if one arrives from older data.
			continue
		}
		if h.StartOffset < 0 || h.EndOffset > m.TotalLength() {
			overlay.StaleIDs = append(overlay.StaleIDs, h.ID)
			continue
		}
		// Stored offsets may land inside a surrogate pair. Snap them
		// before decomposition so no run boundary splits a pair.
		h.StartOffset, h.EndOffset = m.AlignRange(h.StartOffset, h.EndOffset)
		active = append(active, h)
	}
	sort.Strings(overlay.StaleIDs)

	overlay.Segments = decompose(active, m.TotalLength())
	overlay.Root = rebuild(root, m, overlay.Segments)
	return overlay
}

// decompose partitions [0, total) into maximal runs of constant
// active-highlight-set membership (classic sweep line over interval boundary
// points). Runs covered by no highlight are emitted with an empty id set so
// the result is a true partition of the canonical text.
func decompose(highlights []domain.Highlight, total int) []OverlaySegment {
	if total == 0 {
		return nil
	}

	boundaries := make([]int, 0, len(highlights)*2+2)
	boundaries = append(boundaries, 0, total)
	for _, h := range highlights {
		boundaries = append(boundaries, h.StartOffset, h.EndOffset)
	}
	sort.Ints(boundaries)
	boundaries = dedupeInts(boundaries)

	var segments []OverlaySegment
	for i := 0; i+1 < len(boundaries); i++ {
		start, end := boundaries[i], boundaries[i+1]
		var ids []string
		var winner *domain.Highlight
		for j := range highlights {
			h := &highlights[j]
			if h.StartOffset <= start && h.EndOffset >= end {
				ids = append(ids, h.ID)
				if winner == nil || laterCreated(h, winner) {
					winner = h
				}
			}
		}
		sort.Strings(ids)
		seg := OverlaySegment{Start: start, End: end, HighlightIDs: ids}
		if winner != nil {
			seg.Color = winner.Color
		}
		segments = append(segments, seg)
	}

	// Merge adjacent runs with identical active sets so no spurious
	// boundary survives.
	merged := segments[:0]
	for _, seg := range segments {
		if len(merged) > 0 {
			last := &merged[len(merged)-1]
			if last.End == seg.Start && equalIDs(last.HighlightIDs, seg.HighlightIDs) {
				last.End = seg.End
				continue
			}
		}
		merged = append(merged, seg)
	}
	return merged
}

// laterCreated implements the color-precedence total order: latest createdAt
// wins, highlight id breaks ties.
func laterCreated(a, b *domain.Highlight) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.ID > b.ID
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func dedupeInts(sorted []int) []int {
	out := sorted[:0]
	for i, v := range sorted {
		if i == 0 || v != sorted[i-1] {
			out = append(out, v)
		}
	}
	return out
}

// leafRun is one marker-wrapped sub-run of a single text leaf
type leafRun struct {
	localStart int
	localEnd   int
	segment    *OverlaySegment
}

// rebuild produces the overlay tree. Only the paths down to touched text
// leaves are cloned; every untouched subtree is shared by pointer with the
// source tree. Elements are never split: a range crossing an element boundary
// simply yields separate marker-wrapped runs inside each affected leaf.
func rebuild(root *Node, m *OffsetMap, segments []OverlaySegment) *Node {
	if len(segments) == 0 {
		return root
	}

	runs := make(map[*Node][]leafRun)
	for i := range segments {
		seg := &segments[i]
		if len(seg.HighlightIDs) == 0 {
			continue
		}
		spans, err := m.Resolve(seg.Start, seg.End)
		if err != nil {
			continue
		}
		for _, span := range spans {
			if span.Synthetic {
				// Policy-injected characters have no markup to wrap.
				continue
			}
			runs[span.Leaf] = append(runs[span.Leaf], leafRun{
				localStart: span.Start,
				localEnd:   span.End,
				segment:    seg,
			})
		}
	}
	if len(runs) == 0 {
		return root
	}

	node, _ := rebuildNode(root, runs)
	return node
}

func rebuildNode(n *Node, runs map[*Node][]leafRun) (*Node, bool) {
	if n.Type == TextNode {
		leafRuns, ok := runs[n]
		if !ok {
			return n, false
		}
		return splitLeaf(n, leafRuns), true
	}

	changed := false
	children := make([]*Node, 0, len(n.Children))
	for _, c := range n.Children {
		if c.Type == TextNode {
			if leafRuns, ok := runs[c]; ok {
				children = append(children, splitLeaf(c, leafRuns).Children...)
				changed = true
				continue
			}
			children = append(children, c)
			continue
		}
		rebuilt, childChanged := rebuildNode(c, runs)
		children = append(children, rebuilt)
		changed = changed || childChanged
	}
	if !changed {
		return n, false
	}
	clone := &Node{Type: n.Type, Tag: n.Tag, Attrs: n.Attrs, Children: children}
	return clone, true
}

// splitLeaf splits a text leaf at run boundaries and wraps highlighted runs
// in marker elements. The result is a DocumentNode used purely as a node
// list; callers splice its children into the parent.
func splitLeaf(leaf *Node, leafRuns []leafRun) *Node {
	sort.Slice(leafRuns, func(i, j int) bool {
		return leafRuns[i].localStart < leafRuns[j].localStart
	})

	out := &Node{Type: DocumentNode}
	cursor := 0
	for _, run := range leafRuns {
		if run.localStart > cursor {
			out.Children = append(out.Children, &Node{
				Type: TextNode,
				Text: utf16Slice(leaf.Text, cursor, run.localStart),
			})
		}
		out.Children = append(out.Children, markerNode(
			utf16Slice(leaf.Text, run.localStart, run.localEnd),
			run.segment,
		))
		cursor = run.localEnd
	}
	if cursor < utf16Len(leaf.Text) {
		out.Children = append(out.Children, &Node{
			Type: TextNode,
			Text: utf16Slice(leaf.Text, cursor, utf16Len(leaf.Text)),
		})
	}
	return out
}

func markerNode(text string, seg *OverlaySegment) *Node {
	return &Node{
		Type: ElementNode,
		Tag:  MarkerTag,
		Attrs: []Attribute{
			{Key: MarkerClassAttr, Val: "highlight highlight-" + string(seg.Color)},
			{Key: MarkerIDsAttr, Val: strings.Join(seg.HighlightIDs, ",")},
			{Key: MarkerColorAttr, Val: string(seg.Color)},
		},
		Children: []*Node{{Type: TextNode, Text: text}},
	}
}
