// ABOUTME: Plain-text projector producing the canonical text and offset map
// ABOUTME: Walks the document tree depth-first in deterministic document order

package annotate

import "strings"

// Policy controls how non-text structure contributes to the canonical text.
// The same policy instance must be used for projection and selection capture;
// both read the single OffsetMap the projection produced, so consistency
// holds by construction.
type Policy struct {
	// BlockSeparator is injected between block-level siblings so offsets
	// line up with what a user visually selects. Empty disables injection.
	BlockSeparator string

	// LineBreak is the text contributed by a <br> element. Empty disables it.
	LineBreak string
}

// DefaultPolicy returns the standard projection policy
func DefaultPolicy() Policy {
	return Policy{BlockSeparator: "\n", LineBreak: "\n"}
}

// skippedElements contribute no characters to the projection
var skippedElements = map[string]bool{
	"script": true, "style": true, "head": true, "title": true,
	"noscript": true, "template": true, "iframe": true,
}

// blockElements delimit visual lines and trigger separator injection
var blockElements = map[string]bool{
	"address": true, "article": true, "aside": true, "blockquote": true,
	"div": true, "dl": true, "dd": true, "dt": true, "fieldset": true,
	"figcaption": true, "figure": true, "footer": true, "form": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"header": true, "hr": true, "li": true, "main": true, "nav": true,
	"ol": true, "p": true, "pre": true, "section": true, "table": true,
	"td": true, "th": true, "tr": true, "ul": true,
}

// Segment maps one contiguous run of canonical text to its source in the
// tree. Non-synthetic segments reference a text leaf; synthetic segments are
// policy-injected characters (block separators, line breaks) anchored to the
// element that produced them.
type Segment struct {
	// Leaf is the contributing text leaf, or the anchoring element for
	// synthetic segments
	Leaf *Node

	// Start is the segment's offset into the canonical text, in UTF-16 units
	Start int

	// Length is the segment's length in UTF-16 units
	Length int

	// Text is the projected text of the segment
	Text string

	// Synthetic marks policy-injected characters not backed by leaf text
	Synthetic bool
}

// End returns the exclusive end offset of the segment
func (s Segment) End() int {
	return s.Start + s.Length
}

// OffsetMap is the bidirectional index between canonical-text offsets and
// tree positions. Segments are contiguous, non-overlapping and cover
// [0, TotalLength) exactly once in document order. The map is immutable and
// safe for concurrent readers.
type OffsetMap struct {
	text     string
	segments []Segment
	total    int
	byLeaf   map[*Node]int
}

// Text returns the canonical plain-text projection
func (m *OffsetMap) Text() string {
	return m.text
}

// TotalLength returns the canonical text length in UTF-16 code units
func (m *OffsetMap) TotalLength() int {
	return m.total
}

// Segments returns the ordered offset map segments
func (m *OffsetMap) Segments() []Segment {
	return m.segments
}

// Project derives the canonical plain text and offset map for a document
// tree. Traversal is depth-first in document order, deterministic and free of
// side effects: projecting the same tree twice yields identical maps.
//
// Script/style-like elements contribute nothing. Whitespace inside text
// leaves is preserved verbatim; offsets must stay bit-exact against the
// rendered text. Block elements inject the policy separator between projected
// siblings, and <br> contributes the policy line break, both as synthetic
// segments anchored to their element.
func Project(root *Node, policy Policy) *OffsetMap {
	p := &projector{
		policy: policy,
		byLeaf: make(map[*Node]int),
	}
	p.walk(root)
	return &OffsetMap{
		text:     p.buf.String(),
		segments: p.segments,
		total:    p.total,
		byLeaf:   p.byLeaf,
	}
}

type projector struct {
	policy   Policy
	buf      strings.Builder
	segments []Segment
	total    int
	byLeaf   map[*Node]int

	// pendingSep defers separator emission until more content follows,
	// avoiding trailing separators and doubled boundaries between
	// adjacent blocks
	pendingSep *Node
}

func (p *projector) walk(n *Node) {
	switch n.Type {
	case DocumentNode:
		for _, c := range n.Children {
			p.walk(c)
		}
	case TextNode:
		if n.Text == "" {
			return
		}
		p.flushSeparator()
		length := utf16Len(n.Text)
		p.byLeaf[n] = len(p.segments)
		p.segments = append(p.segments, Segment{
			Leaf:   n,
			Start:  p.total,
			Length: length,
			Text:   n.Text,
		})
		p.buf.WriteString(n.Text)
		p.total += length
	case ElementNode:
		if skippedElements[n.Tag] {
			return
		}
		if n.Tag == "br" {
			if p.policy.LineBreak != "" {
				p.flushSeparator()
				p.emitSynthetic(n, p.policy.LineBreak)
			}
			return
		}
		block := blockElements[n.Tag]
		if block {
			p.markSeparator(n)
		}
		for _, c := range n.Children {
			p.walk(c)
		}
		if block {
			p.markSeparator(n)
		}
	}
}

// markSeparator requests a separator before the next projected content,
// anchored to the block element that caused it
func (p *projector) markSeparator(n *Node) {
	if p.total > 0 && p.policy.BlockSeparator != "" {
		p.pendingSep = n
	}
}

func (p *projector) flushSeparator() {
	if p.pendingSep == nil {
		return
	}
	anchor := p.pendingSep
	p.pendingSep = nil
	p.emitSynthetic(anchor, p.policy.BlockSeparator)
}

func (p *projector) emitSynthetic(anchor *Node, text string) {
	length := utf16Len(text)
	p.segments = append(p.segments, Segment{
		Leaf:      anchor,
		Start:     p.total,
		Length:    length,
		Text:      text,
		Synthetic: true,
	})
	p.buf.WriteString(text)
	p.total += length
}
