// ABOUTME: SQLite-backed highlight storage implementation
// ABOUTME: Persists highlights per bookmark with patch updates and tolerant deletes

package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/samling-jackyjyo/hoarder-sub003/core/domain"
)

// HighlightStorage implements the HighlightStorage interface using SQLite
type HighlightStorage struct {
	db *sql.DB
}

// NewHighlightStorage opens (and if needed creates) the highlight database
// at the given path. Use ":memory:" for an ephemeral store in tests.
func NewHighlightStorage(path string) (*HighlightStorage, error) {
	if path == "" {
		path = "highlights.db"
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to SQLite database: %w", err)
	}

	s := &HighlightStorage{db: db}
	if err := s.initSchema(); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return s, nil
}

// initSchema creates the highlights table if it doesn't exist
func (s *HighlightStorage) initSchema() error {
	query := `
		CREATE TABLE IF NOT EXISTS highlights (
			id TEXT PRIMARY KEY,
			bookmark_id TEXT NOT NULL,
			content_version TEXT NOT NULL,
			start_offset INTEGER NOT NULL,
			end_offset INTEGER NOT NULL,
			color TEXT NOT NULL,
			note TEXT NOT NULL DEFAULT '',
			text_snapshot TEXT NOT NULL DEFAULT '',
			owner_id TEXT NOT NULL DEFAULT '',
			created_at INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_highlights_bookmark ON highlights(bookmark_id);
	`

	_, err := s.db.Exec(query)
	return err
}

// List returns all highlights stored for a bookmark
func (s *HighlightStorage) List(ctx context.Context, bookmarkID string) ([]domain.Highlight, error) {
	query := `
		SELECT id, bookmark_id, content_version, start_offset, end_offset,
		       color, note, text_snapshot, owner_id, created_at
		FROM highlights
		WHERE bookmark_id = ?
		ORDER BY start_offset, created_at, id
	`

	rows, err := s.db.QueryContext(ctx, query, bookmarkID)
	if err != nil {
		return nil, fmt.Errorf("failed to list highlights: %w", err)
	}
	defer rows.Close()

	var out []domain.Highlight
	for rows.Next() {
		var h domain.Highlight
		var createdAt int64
		if err := rows.Scan(&h.ID, &h.BookmarkID, &h.ContentVersion, &h.StartOffset, &h.EndOffset,
			&h.Color, &h.Note, &h.TextSnapshot, &h.OwnerID, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan highlight: %w", err)
		}
		h.CreatedAt = time.UnixMilli(createdAt).UTC()
		out = append(out, h)
	}
	return out, rows.Err()
}

// Create stores a new highlight
func (s *HighlightStorage) Create(ctx context.Context, h *domain.Highlight) error {
	query := `
		INSERT INTO highlights (id, bookmark_id, content_version, start_offset, end_offset,
			color, note, text_snapshot, owner_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query, h.ID, h.BookmarkID, h.ContentVersion,
		h.StartOffset, h.EndOffset, string(h.Color), h.Note, h.TextSnapshot,
		h.OwnerID, h.CreatedAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to create highlight: %w", err)
	}
	return nil
}

// Update applies a patch to a stored highlight and returns the updated row.
// An unknown id returns (nil, nil); offsets are never modified.
func (s *HighlightStorage) Update(ctx context.Context, id string, patch domain.HighlightPatch) (*domain.Highlight, error) {
	current, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, nil
	}

	updated := patch.Apply(*current)

	query := "UPDATE highlights SET color = ?, note = ? WHERE id = ?"
	if _, err := s.db.ExecContext(ctx, query, string(updated.Color), updated.Note, id); err != nil {
		return nil, fmt.Errorf("failed to update highlight: %w", err)
	}
	return &updated, nil
}

// Delete removes a highlight. Deleting an unknown id is not an error.
func (s *HighlightStorage) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM highlights WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete highlight: %w", err)
	}
	return nil
}

// get fetches a single highlight by id, nil when absent
func (s *HighlightStorage) get(ctx context.Context, id string) (*domain.Highlight, error) {
	query := `
		SELECT id, bookmark_id, content_version, start_offset, end_offset,
		       color, note, text_snapshot, owner_id, created_at
		FROM highlights
		WHERE id = ?
	`

	var h domain.Highlight
	var createdAt int64
	err := s.db.QueryRowContext(ctx, query, id).Scan(&h.ID, &h.BookmarkID, &h.ContentVersion,
		&h.StartOffset, &h.EndOffset, &h.Color, &h.Note, &h.TextSnapshot, &h.OwnerID, &createdAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get highlight: %w", err)
	}
	h.CreatedAt = time.UnixMilli(createdAt).UTC()
	return &h, nil
}

// Close closes the database connection
func (s *HighlightStorage) Close() error {
	return s.db.Close()
}
