// ABOUTME: Highlight reconciler owning the authoritative highlight set per bookmark
// ABOUTME: Applies optimistic local mutations and reconciles with confirmed server state

package highlights

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/samling-jackyjyo/hoarder-sub003/core/annotate"
	"github.com/samling-jackyjyo/hoarder-sub003/core/domain"
	coreerrors "github.com/samling-jackyjyo/hoarder-sub003/core/errors"
	"github.com/samling-jackyjyo/hoarder-sub003/core/interfaces"
)

// persistTimeout bounds each asynchronous persistence call
const persistTimeout = 30 * time.Second

// MutationError reports a failed persistence call whose optimistic local
// mutation has been rolled back.
type MutationError struct {
	Op          string
	HighlightID string
	Err         error
}

// Reconciler owns the authoritative in-memory highlight set for one bookmark
// and content version. Mutations apply optimistically to local state and are
// confirmed or rolled back against the persistence collaborator
// asynchronously; local state is authoritative for rendering until a response
// arrives.
//
// Mutations against a single highlight id are serialized in submission order.
// Mutations against different ids are unordered relative to each other.
// Responses are tagged with the content version they were issued against and
// discarded once the reconciler has been closed (e.g. the user navigated
// away or the content was refetched).
type Reconciler struct {
	bookmarkID string
	version    string
	offsets    *annotate.OffsetMap
	storage    interfaces.HighlightStorage
	logger     interfaces.Logger

	mu      sync.Mutex
	records map[string]domain.Highlight
	lastOp  map[string]chan struct{}
	closed  bool

	pending sync.WaitGroup
	errs    chan MutationError
}

// NewReconciler creates a reconciler bound to a bookmark's content version.
// The offset map is used to validate highlight ranges and capture text
// snapshots at creation time.
func NewReconciler(bookmarkID, version string, offsets *annotate.OffsetMap, storage interfaces.HighlightStorage, logger interfaces.Logger) *Reconciler {
	return &Reconciler{
		bookmarkID: bookmarkID,
		version:    version,
		offsets:    offsets,
		storage:    storage,
		logger:     logger,
		records:    make(map[string]domain.Highlight),
		lastOp:     make(map[string]chan struct{}),
		errs:       make(chan MutationError, 32),
	}
}

// Load seeds the local set from confirmed server state. Highlights created
// against older content versions are kept; the compositor flags them stale
// instead of dropping them, so they can be recovered if content reverts.
func (r *Reconciler) Load(ctx context.Context) error {
	stored, err := r.storage.List(ctx, r.bookmarkID)
	if err != nil {
		return coreerrors.WrapError(err, "failed to load highlights")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, h := range stored {
		r.records[h.ID] = h
	}
	return nil
}

// Version returns the content version this reconciler is bound to
func (r *Reconciler) Version() string {
	return r.version
}

// Create validates and creates a new highlight. The range is checked against
// the offset map before committing: empty ranges are rejected with
// EmptyRangeError and out-of-bounds ranges with OffsetOutOfRangeError.
func (r *Reconciler) Create(ctx context.Context, startOffset, endOffset int, color domain.Color, note, ownerID string) (*domain.Highlight, error) {
	if startOffset >= endOffset {
		return nil, &coreerrors.EmptyRangeError{Start: startOffset, End: endOffset}
	}
	if endOffset > r.offsets.TotalLength() {
		return nil, &coreerrors.OffsetOutOfRangeError{
			Start: startOffset, End: endOffset, TotalLength: r.offsets.TotalLength(),
		}
	}
	if _, err := r.offsets.Resolve(startOffset, endOffset); err != nil {
		return nil, err
	}
	// Persist pair-aligned offsets so the snapshot and every later render
	// agree on the range boundaries.
	startOffset, endOffset = r.offsets.AlignRange(startOffset, endOffset)

	h := domain.Highlight{
		ID:             uuid.New().String(),
		BookmarkID:     r.bookmarkID,
		ContentVersion: r.version,
		StartOffset:    startOffset,
		EndOffset:      endOffset,
		Color:          color,
		Note:           note,
		TextSnapshot:   r.offsets.SliceText(startOffset, endOffset),
		OwnerID:        ownerID,
		CreatedAt:      time.Now().UTC(),
	}
	if err := h.Validate(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil, &coreerrors.NotFoundError{Resource: "bookmark session", ID: r.bookmarkID}
	}
	r.records[h.ID] = h
	r.mu.Unlock()

	created := h
	r.submit(h.ID, "create",
		func(ctx context.Context) error {
			return r.storage.Create(ctx, &created)
		},
		func() {
			delete(r.records, created.ID)
		},
	)
	return &h, nil
}

// Update applies a patch to a highlight. Updating an id unknown to the
// reconciler (already deleted elsewhere) is a no-op success, tolerating
// concurrent multi-session edits.
func (r *Reconciler) Update(ctx context.Context, id string, patch domain.HighlightPatch) (*domain.Highlight, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	prev, ok := r.records[id]
	if !ok || r.closed {
		r.mu.Unlock()
		return nil, nil
	}
	updated := patch.Apply(prev)
	r.records[id] = updated
	r.mu.Unlock()

	r.submit(id, "update",
		func(ctx context.Context) error {
			_, err := r.storage.Update(ctx, id, patch)
			return err
		},
		func() {
			r.records[id] = prev
		},
	)
	return &updated, nil
}

// Delete removes a highlight. Deleting an unknown id is a no-op success.
func (r *Reconciler) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	prev, ok := r.records[id]
	if !ok || r.closed {
		r.mu.Unlock()
		return nil
	}
	delete(r.records, id)
	r.mu.Unlock()

	r.submit(id, "delete",
		func(ctx context.Context) error {
			return r.storage.Delete(ctx, id)
		},
		func() {
			r.records[id] = prev
		},
	)
	return nil
}

// List returns the highlight set ordered by startOffset ascending, createdAt
// ascending, then id. This ordering feeds the compositor's canonical
// ordering rules.
func (r *Reconciler) List() []domain.Highlight {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]domain.Highlight, 0, len(r.records))
	for _, h := range r.records {
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].StartOffset != out[j].StartOffset {
			return out[i].StartOffset < out[j].StartOffset
		}
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Errors exposes failed, rolled-back mutations for user-visible feedback
func (r *Reconciler) Errors() <-chan MutationError {
	return r.errs
}

// Flush blocks until all in-flight persistence calls have completed
func (r *Reconciler) Flush() {
	r.pending.Wait()
}

// Close marks the reconciler's context as no longer current. In-flight
// responses arriving after Close are discarded rather than applied to a
// session that no longer exists.
func (r *Reconciler) Close() {
	r.mu.Lock()
	r.closed = true
	r.mu.Unlock()
}

// submit chains an asynchronous persistence call behind the previous
// in-flight mutation for the same highlight id, guaranteeing per-id
// submission-order serialization. The caller must have already applied the
// optimistic local mutation; rollback runs under the reconciler lock if the
// call fails while this context is still current.
func (r *Reconciler) submit(id, op string, exec func(context.Context) error, rollback func()) {
	version := r.version

	r.mu.Lock()
	prev := r.lastOp[id]
	done := make(chan struct{})
	r.lastOp[id] = done
	r.pending.Add(1)
	r.mu.Unlock()

	go func() {
		defer r.pending.Done()
		defer close(done)

		if prev != nil {
			<-prev
		}

		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()

		err := exec(ctx)
		if err == nil {
			return
		}

		r.mu.Lock()
		discard := r.closed || r.version != version
		if !discard {
			rollback()
		}
		r.mu.Unlock()

		if discard {
			r.logger.Debug("Discarding stale persistence response", map[string]interface{}{
				"op":        op,
				"highlight": id,
				"version":   version,
			})
			return
		}

		r.logger.Error("Highlight persistence failed, rolled back", map[string]interface{}{
			"op":        op,
			"highlight": id,
			"bookmark":  r.bookmarkID,
			"error":     err.Error(),
		})
		select {
		case r.errs <- MutationError{Op: op, HighlightID: id, Err: err}:
		default:
		}
	}()
}
