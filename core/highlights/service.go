// ABOUTME: Annotation service gluing content snapshots, the overlay engine and persistence
// ABOUTME: Maintains one reconciler per bookmark content version and renders overlays

package highlights

import (
	"context"
	"sync"

	"github.com/samling-jackyjyo/hoarder-sub003/core/annotate"
	"github.com/samling-jackyjyo/hoarder-sub003/core/domain"
	coreerrors "github.com/samling-jackyjyo/hoarder-sub003/core/errors"
	"github.com/samling-jackyjyo/hoarder-sub003/core/interfaces"
)

// AnnotatedView is the render-ready composition of a bookmark's content and
// its highlight set. It is derived output, recomputed per render.
type AnnotatedView struct {
	BookmarkID     string                    `json:"bookmarkId"`
	ContentVersion string                    `json:"contentVersion"`
	Title          string                    `json:"title,omitempty"`
	HTML           string                    `json:"html"`
	Segments       []annotate.OverlaySegment `json:"segments"`
	StaleIDs       []string                  `json:"staleIds,omitempty"`

	// HighlightingDisabled is set when content could not be parsed and the
	// document is rendered as opaque text without overlays.
	HighlightingDisabled bool `json:"highlightingDisabled,omitempty"`
}

// SelectionPoint addresses a selection endpoint for callers that cannot hold
// tree node references: the index of an offset-map segment plus a local
// UTF-16 offset within it.
type SelectionPoint struct {
	SegmentIndex int `json:"segmentIndex"`
	Offset       int `json:"offset"`
}

// session is the per-bookmark engine state for one content version. The tree
// and offset map are immutable and shared read-only across renders.
type session struct {
	content    *domain.BookmarkContent
	tree       *annotate.Node
	offsets    *annotate.OffsetMap
	reconciler *Reconciler
	parseErr   error
}

// Service coordinates the highlight engine for all bookmarks
type Service struct {
	content interfaces.ContentSource
	storage interfaces.HighlightStorage
	logger  interfaces.Logger

	mu       sync.Mutex
	sessions map[string]*session
}

// NewService creates a new annotation service
func NewService(content interfaces.ContentSource, storage interfaces.HighlightStorage, logger interfaces.Logger) *Service {
	return &Service{
		content:  content,
		storage:  storage,
		logger:   logger,
		sessions: make(map[string]*session),
	}
}

// session returns the engine state for a bookmark, building it when absent
// or when the content version changed since the last render. Replacing a
// session closes the old reconciler so in-flight responses against the stale
// version are discarded.
func (s *Service) session(ctx context.Context, bookmarkID, url string) (*session, error) {
	content, err := s.content.Get(ctx, bookmarkID, url)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	existing := s.sessions[bookmarkID]
	s.mu.Unlock()
	if existing != nil && existing.content.Version == content.Version {
		return existing, nil
	}

	tree, parseErr := annotate.ParseOrOpaque(content.HTML)
	if parseErr != nil {
		s.logger.Warn("Content parse failed, highlighting disabled", map[string]interface{}{
			"bookmark": bookmarkID,
			"error":    parseErr.Error(),
		})
	}
	offsets := annotate.Project(tree, annotate.DefaultPolicy())

	rec := NewReconciler(bookmarkID, content.Version, offsets, s.storage, s.logger)
	if err := rec.Load(ctx); err != nil {
		return nil, err
	}

	sess := &session{
		content:    content,
		tree:       tree,
		offsets:    offsets,
		reconciler: rec,
		parseErr:   parseErr,
	}

	s.mu.Lock()
	if old := s.sessions[bookmarkID]; old != nil {
		old.reconciler.Close()
	}
	s.sessions[bookmarkID] = sess
	s.mu.Unlock()

	return sess, nil
}

// GetContent returns the bookmark's cached content snapshot
func (s *Service) GetContent(ctx context.Context, bookmarkID, url string) (*domain.BookmarkContent, error) {
	sess, err := s.session(ctx, bookmarkID, url)
	if err != nil {
		return nil, err
	}
	return sess.content, nil
}

// RenderAnnotated composes the bookmark's highlight set over its content
// tree. Stale highlights are excluded from the overlay but remain listed;
// no highlight error fails the render.
func (s *Service) RenderAnnotated(ctx context.Context, bookmarkID, url string) (*AnnotatedView, error) {
	sess, err := s.session(ctx, bookmarkID, url)
	if err != nil {
		return nil, err
	}

	view := &AnnotatedView{
		BookmarkID:     bookmarkID,
		ContentVersion: sess.content.Version,
		Title:          sess.content.Title,
	}
	if sess.parseErr != nil {
		view.HighlightingDisabled = true
		view.HTML = sess.tree.HTML()
		return view, nil
	}

	overlay := annotate.Compose(sess.tree, sess.offsets, sess.reconciler.List())
	view.HTML = overlay.Root.HTML()
	view.Segments = overlay.Segments
	view.StaleIDs = overlay.StaleIDs
	return view, nil
}

// CaptureSelection translates a user selection, addressed by segment index
// and local offset, into canonical [start, end) offsets.
func (s *Service) CaptureSelection(ctx context.Context, bookmarkID, url string, anchor, focus SelectionPoint) (int, int, error) {
	sess, err := s.session(ctx, bookmarkID, url)
	if err != nil {
		return 0, 0, err
	}
	if sess.parseErr != nil {
		return 0, 0, sess.parseErr
	}

	anchorPos, err := sess.offsets.PositionAt(anchor.SegmentIndex, anchor.Offset)
	if err != nil {
		return 0, 0, &coreerrors.ValidationError{Field: "anchor", Message: err.Error()}
	}
	focusPos, err := sess.offsets.PositionAt(focus.SegmentIndex, focus.Offset)
	if err != nil {
		return 0, 0, &coreerrors.ValidationError{Field: "focus", Message: err.Error()}
	}
	return sess.offsets.CaptureSelection(anchorPos, focusPos)
}

// CreateHighlight creates a highlight over the bookmark's current content
// version.
func (s *Service) CreateHighlight(ctx context.Context, bookmarkID, url string, startOffset, endOffset int, color domain.Color, note, ownerID string) (*domain.Highlight, error) {
	sess, err := s.session(ctx, bookmarkID, url)
	if err != nil {
		return nil, err
	}
	if sess.parseErr != nil {
		return nil, sess.parseErr
	}
	return sess.reconciler.Create(ctx, startOffset, endOffset, color, note, ownerID)
}

// ListHighlights returns the bookmark's highlights in canonical order
func (s *Service) ListHighlights(ctx context.Context, bookmarkID, url string) ([]domain.Highlight, error) {
	sess, err := s.session(ctx, bookmarkID, url)
	if err != nil {
		return nil, err
	}
	return sess.reconciler.List(), nil
}

// UpdateHighlight patches a highlight by id. When the highlight belongs to a
// live session its reconciler applies the mutation optimistically; otherwise
// the patch goes straight to storage. Unknown ids are a no-op success.
func (s *Service) UpdateHighlight(ctx context.Context, highlightID string, patch domain.HighlightPatch) (*domain.Highlight, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	if rec := s.reconcilerFor(highlightID); rec != nil {
		return rec.Update(ctx, highlightID, patch)
	}
	return s.storage.Update(ctx, highlightID, patch)
}

// DeleteHighlight removes a highlight by id. Unknown ids are a no-op success.
func (s *Service) DeleteHighlight(ctx context.Context, highlightID string) error {
	if rec := s.reconcilerFor(highlightID); rec != nil {
		return rec.Delete(ctx, highlightID)
	}
	return s.storage.Delete(ctx, highlightID)
}

// Flush waits for all sessions' in-flight persistence calls, used on
// graceful shutdown and in tests.
func (s *Service) Flush() {
	s.mu.Lock()
	recs := make([]*Reconciler, 0, len(s.sessions))
	for _, sess := range s.sessions {
		recs = append(recs, sess.reconciler)
	}
	s.mu.Unlock()

	for _, rec := range recs {
		rec.Flush()
	}
}

// reconcilerFor finds the live reconciler holding a highlight id, if any
func (s *Service) reconcilerFor(highlightID string) *Reconciler {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sess := range s.sessions {
		sess.reconciler.mu.Lock()
		_, ok := sess.reconciler.records[highlightID]
		sess.reconciler.mu.Unlock()
		if ok {
			return sess.reconciler
		}
	}
	return nil
}
