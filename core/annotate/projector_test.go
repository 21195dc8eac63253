package annotate

import "testing"

func mustParse(t *testing.T, src string) *Node {
	t.Helper()
	root, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse(%q) returned error: %v", src, err)
	}
	return root
}

func TestProject_SingleParagraph(t *testing.T) {
	root := mustParse(t, "<p>Hello world</p>")
	m := Project(root, DefaultPolicy())

	if m.Text() != "Hello world" {
		t.Errorf("Text() = %q, want %q", m.Text(), "Hello world")
	}
	if m.TotalLength() != 11 {
		t.Errorf("TotalLength() = %d, want 11", m.TotalLength())
	}
	if len(m.Segments()) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(m.Segments()))
	}
	seg := m.Segments()[0]
	if seg.Start != 0 || seg.Length != 11 || seg.Synthetic {
		t.Errorf("unexpected segment: %+v", seg)
	}
}

func TestProject_BlockSeparatorBetweenParagraphs(t *testing.T) {
	root := mustParse(t, "<p>Hello</p><p>World</p>")
	m := Project(root, DefaultPolicy())

	if m.Text() != "Hello\nWorld" {
		t.Errorf("Text() = %q, want %q", m.Text(), "Hello\nWorld")
	}

	segs := m.Segments()
	if len(segs) != 3 {
		t.Fatalf("expected 3 segments, got %d", len(segs))
	}
	if !segs[1].Synthetic || segs[1].Text != "\n" {
		t.Errorf("middle segment should be a synthetic separator, got %+v", segs[1])
	}
	if segs[2].Start != 6 {
		t.Errorf("second paragraph starts at %d, want 6", segs[2].Start)
	}
}

func TestProject_NoTrailingOrLeadingSeparator(t *testing.T) {
	root := mustParse(t, "<p>only</p>")
	m := Project(root, DefaultPolicy())

	if m.Text() != "only" {
		t.Errorf("Text() = %q, want %q", m.Text(), "only")
	}
}

func TestProject_InlineTagsDoNotSplitOffsets(t *testing.T) {
	root := mustParse(t, "<p>The <b>quick</b> fox</p>")
	m := Project(root, DefaultPolicy())

	if m.Text() != "The quick fox" {
		t.Errorf("Text() = %q, want %q", m.Text(), "The quick fox")
	}
	if len(m.Segments()) != 3 {
		t.Errorf("expected 3 segments, got %d", len(m.Segments()))
	}
}

func TestProject_SkipsNonVisibleElements(t *testing.T) {
	root := mustParse(t, "<p>visible</p><script>var x = 1;</script><style>p{}</style>")
	m := Project(root, DefaultPolicy())

	if m.Text() != "visible" {
		t.Errorf("Text() = %q, want %q", m.Text(), "visible")
	}
}

func TestProject_PreservesWhitespaceVerbatim(t *testing.T) {
	root := mustParse(t, "<p>a  b\tc</p>")
	m := Project(root, DefaultPolicy())

	if m.Text() != "a  b\tc" {
		t.Errorf("Text() = %q, whitespace must not be collapsed", m.Text())
	}
}

func TestProject_LineBreakContributesNewline(t *testing.T) {
	root := mustParse(t, "<p>one<br>two</p>")
	m := Project(root, DefaultPolicy())

	if m.Text() != "one\ntwo" {
		t.Errorf("Text() = %q, want %q", m.Text(), "one\ntwo")
	}
	segs := m.Segments()
	if len(segs) != 3 || !segs[1].Synthetic {
		t.Errorf("expected synthetic <br> segment, got %+v", segs)
	}
}

func TestProject_UTF16CodeUnitLengths(t *testing.T) {
	// U+1F600 is a surrogate pair: two UTF-16 code units.
	root := mustParse(t, "<p>\U0001F600x</p>")
	m := Project(root, DefaultPolicy())

	if m.TotalLength() != 3 {
		t.Errorf("TotalLength() = %d, want 3", m.TotalLength())
	}
}

func TestProject_SegmentsCoverCanonicalTextExactly(t *testing.T) {
	root := mustParse(t, "<div><p>The <b>quick</b> fox</p><p>jumps \U0001F600</p><ul><li>a</li><li>b</li></ul></div>")
	m := Project(root, DefaultPolicy())

	offset := 0
	for i, seg := range m.Segments() {
		if seg.Start != offset {
			t.Errorf("segment %d starts at %d, want %d", i, seg.Start, offset)
		}
		if seg.Length <= 0 {
			t.Errorf("segment %d has non-positive length %d", i, seg.Length)
		}
		offset = seg.End()
	}
	if offset != m.TotalLength() {
		t.Errorf("segments cover %d units, want %d", offset, m.TotalLength())
	}
}

func TestProject_RoundTripRecoversAllLeaves(t *testing.T) {
	root := mustParse(t, "<p>The <b>quick</b> fox</p><p>jumps over</p>")
	m := Project(root, DefaultPolicy())

	spans, err := m.Resolve(0, m.TotalLength())
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if len(spans) != len(m.Segments()) {
		t.Fatalf("resolved %d spans, want %d", len(spans), len(m.Segments()))
	}
	for i, span := range spans {
		seg := m.Segments()[i]
		if span.Leaf != seg.Leaf {
			t.Errorf("span %d references wrong leaf", i)
		}
		if span.Start != 0 || span.End != seg.Length {
			t.Errorf("span %d = [%d,%d), want [0,%d)", i, span.Start, span.End, seg.Length)
		}
	}
}

func TestProject_Repeatable(t *testing.T) {
	root := mustParse(t, "<p>alpha</p><p>beta</p>")

	first := Project(root, DefaultPolicy())
	second := Project(root, DefaultPolicy())

	if first.Text() != second.Text() {
		t.Errorf("projection not repeatable: %q vs %q", first.Text(), second.Text())
	}
	if len(first.Segments()) != len(second.Segments()) {
		t.Fatalf("segment counts differ: %d vs %d", len(first.Segments()), len(second.Segments()))
	}
	for i := range first.Segments() {
		a, b := first.Segments()[i], second.Segments()[i]
		if a.Leaf != b.Leaf || a.Start != b.Start || a.Length != b.Length {
			t.Errorf("segment %d differs between projections", i)
		}
	}
}

func TestProject_OpaqueFallback(t *testing.T) {
	root := Opaque("raw content that could not be parsed")
	m := Project(root, DefaultPolicy())

	if m.Text() != "raw content that could not be parsed" {
		t.Errorf("Text() = %q", m.Text())
	}
	if len(m.Segments()) != 1 {
		t.Errorf("opaque content should project as a single segment, got %d", len(m.Segments()))
	}
}
