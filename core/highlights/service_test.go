package highlights

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/samling-jackyjyo/hoarder-sub003/core/domain"
)

// mockContentSource serves a configurable content snapshot
type mockContentSource struct {
	mu      sync.Mutex
	content domain.BookmarkContent
}

func (m *mockContentSource) Get(ctx context.Context, bookmarkID, url string) (*domain.BookmarkContent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := m.content
	return &c, nil
}

func (m *mockContentSource) set(version, html string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.content = domain.BookmarkContent{
		BookmarkID: "bm-1",
		URL:        "https://example.com/article",
		Version:    version,
		Title:      "Test Article",
		HTML:       html,
		FetchedAt:  time.Now(),
	}
}

// memStorage is an in-memory HighlightStorage used for service tests
type memStorage struct {
	mu      sync.Mutex
	records map[string]domain.Highlight
}

func newMemStorage() *memStorage {
	return &memStorage{records: make(map[string]domain.Highlight)}
}

func (s *memStorage) List(ctx context.Context, bookmarkID string) ([]domain.Highlight, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Highlight
	for _, h := range s.records {
		if h.BookmarkID == bookmarkID {
			out = append(out, h)
		}
	}
	return out, nil
}

func (s *memStorage) Create(ctx context.Context, h *domain.Highlight) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[h.ID] = *h
	return nil
}

func (s *memStorage) Update(ctx context.Context, id string, patch domain.HighlightPatch) (*domain.Highlight, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	h, ok := s.records[id]
	if !ok {
		return nil, nil
	}
	h = patch.Apply(h)
	s.records[id] = h
	return &h, nil
}

func (s *memStorage) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, id)
	return nil
}

func newTestService(html string) (*Service, *mockContentSource, *memStorage) {
	source := &mockContentSource{}
	source.set("v1", html)
	storage := newMemStorage()
	return NewService(source, storage, nopLogger{}), source, storage
}

func TestService_CreateAndRenderOverlappingHighlights(t *testing.T) {
	svc, _, _ := newTestService("<p>The quick fox</p>")
	ctx := context.Background()

	a, err := svc.CreateHighlight(ctx, "bm-1", "https://example.com/article", 0, 9, domain.ColorYellow, "", "")
	if err != nil {
		t.Fatalf("CreateHighlight returned error: %v", err)
	}
	b, err := svc.CreateHighlight(ctx, "bm-1", "https://example.com/article", 4, 13, domain.ColorBlue, "", "")
	if err != nil {
		t.Fatalf("CreateHighlight returned error: %v", err)
	}

	view, err := svc.RenderAnnotated(ctx, "bm-1", "https://example.com/article")
	if err != nil {
		t.Fatalf("RenderAnnotated returned error: %v", err)
	}

	active := activeViewSegments(view)
	if len(active) != 3 {
		t.Fatalf("expected 3 active segments, got %d", len(active))
	}
	if active[1].Start != 4 || active[1].End != 9 || len(active[1].HighlightIDs) != 2 {
		t.Errorf("overlap segment = %+v", active[1])
	}
	if !strings.Contains(view.HTML, "<mark") {
		t.Errorf("rendered HTML missing markers: %s", view.HTML)
	}
	_ = a
	_ = b
}

func activeViewSegments(view *AnnotatedView) []struct {
	Start, End   int
	HighlightIDs []string
} {
	var out []struct {
		Start, End   int
		HighlightIDs []string
	}
	for _, s := range view.Segments {
		if len(s.HighlightIDs) > 0 {
			out = append(out, struct {
				Start, End   int
				HighlightIDs []string
			}{s.Start, s.End, s.HighlightIDs})
		}
	}
	return out
}

func TestService_StaleHighlightSurvivesContentChange(t *testing.T) {
	svc, source, _ := newTestService("<p>The quick fox</p>")
	ctx := context.Background()
	url := "https://example.com/article"

	h, err := svc.CreateHighlight(ctx, "bm-1", url, 4, 9, domain.ColorYellow, "", "")
	if err != nil {
		t.Fatalf("CreateHighlight returned error: %v", err)
	}
	svc.Flush()

	// Content was recrawled and shrank; the stored range no longer fits.
	source.set("v2", "<p>tiny</p>")

	view, err := svc.RenderAnnotated(ctx, "bm-1", url)
	if err != nil {
		t.Fatalf("RenderAnnotated returned error: %v", err)
	}
	if view.ContentVersion != "v2" {
		t.Errorf("ContentVersion = %q, want v2", view.ContentVersion)
	}
	if len(view.StaleIDs) != 1 || view.StaleIDs[0] != h.ID {
		t.Errorf("StaleIDs = %v, want [%s]", view.StaleIDs, h.ID)
	}
	if strings.Contains(view.HTML, "<mark") {
		t.Errorf("stale highlight must not render: %s", view.HTML)
	}

	// Flagged but not deleted: still retrievable.
	listed, err := svc.ListHighlights(ctx, "bm-1", url)
	if err != nil {
		t.Fatalf("ListHighlights returned error: %v", err)
	}
	if len(listed) != 1 || listed[0].ID != h.ID {
		t.Errorf("ListHighlights = %+v, want the stale highlight retained", listed)
	}
}

func TestService_CaptureSelectionBySegmentIndex(t *testing.T) {
	svc, _, _ := newTestService("<p>The <b>quick</b> fox</p>")
	ctx := context.Background()
	url := "https://example.com/article"

	// Segment 1 is "quick" (canonical [4,9)), segment 2 is " fox".
	start, end, err := svc.CaptureSelection(ctx, "bm-1", url,
		SelectionPoint{SegmentIndex: 1, Offset: 1},
		SelectionPoint{SegmentIndex: 2, Offset: 0},
	)
	if err != nil {
		t.Fatalf("CaptureSelection returned error: %v", err)
	}
	if start != 5 || end != 9 {
		t.Errorf("CaptureSelection = (%d,%d), want (5,9)", start, end)
	}
}

func TestService_UpdateAndDeleteByHighlightID(t *testing.T) {
	svc, _, storage := newTestService("<p>The quick fox</p>")
	ctx := context.Background()
	url := "https://example.com/article"

	h, err := svc.CreateHighlight(ctx, "bm-1", url, 0, 3, domain.ColorYellow, "", "")
	if err != nil {
		t.Fatalf("CreateHighlight returned error: %v", err)
	}
	svc.Flush()

	color := domain.ColorPurple
	updated, err := svc.UpdateHighlight(ctx, h.ID, domain.HighlightPatch{Color: &color})
	if err != nil {
		t.Fatalf("UpdateHighlight returned error: %v", err)
	}
	if updated == nil || updated.Color != domain.ColorPurple {
		t.Errorf("UpdateHighlight = %+v, want purple", updated)
	}
	svc.Flush()

	storage.mu.Lock()
	if storage.records[h.ID].Color != domain.ColorPurple {
		t.Errorf("stored color = %s, want purple", storage.records[h.ID].Color)
	}
	storage.mu.Unlock()

	if err := svc.DeleteHighlight(ctx, h.ID); err != nil {
		t.Fatalf("DeleteHighlight returned error: %v", err)
	}
	svc.Flush()

	listed, err := svc.ListHighlights(ctx, "bm-1", url)
	if err != nil {
		t.Fatalf("ListHighlights returned error: %v", err)
	}
	if len(listed) != 0 {
		t.Errorf("ListHighlights = %+v, want empty", listed)
	}
}

func TestService_DeleteUnknownIDIsNoOp(t *testing.T) {
	svc, _, _ := newTestService("<p>text</p>")
	if err := svc.DeleteHighlight(context.Background(), "missing"); err != nil {
		t.Errorf("DeleteHighlight of unknown id should succeed, got %v", err)
	}
}
