package db

import (
	"context"
	"fmt"
	"time"
)

// Generation statuses.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// timeLayout is fixed-width UTC so created_at sorts and compares as text.
const timeLayout = "2006-01-02T15:04:05.000000Z"

// DefaultListLimit is used by ListRecent when limit is not positive.
const DefaultListLimit = 20

// GenerationRecord represents a row of the generation_history table.
type GenerationRecord struct {
	ID           int64     // Auto-incremented primary key
	RunID        string    // Build run the icon belongs to
	IconName     string    // File name of the icon
	Path         string    // Output path
	Width        int       // Icon width in pixels
	Height       int       // Icon height in pixels
	ByteSize     int       // Encoded PNG size
	SHA256       string    // Hex digest of the written file; empty on error
	Status       string    // StatusSuccess or StatusError
	ErrorMessage string    // Error text when Status is StatusError
	DurationMS   int64     // Render + encode + write time
	CreatedAt    time.Time // When the record was written
}

// Repository reads and writes generation records.
type Repository struct {
	db  *Database
	now func() time.Time
}

// NewRepository creates a Repository over db.
func NewRepository(db *Database) *Repository {
	return &Repository{db: db, now: time.Now}
}

// InsertGeneration stores rec and returns its ID. A zero CreatedAt is
// replaced by the current time.
func (r *Repository) InsertGeneration(ctx context.Context, rec GenerationRecord) (int64, error) {
	if r.db == nil {
		return 0, fmt.Errorf("database connection is nil")
	}
	if rec.Status != StatusSuccess && rec.Status != StatusError {
		return 0, fmt.Errorf("invalid status %q", rec.Status)
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = r.now()
	}

	result, err := r.db.ExecContext(ctx, `
		INSERT INTO generation_history (
			run_id, icon_name, path, width, height, byte_size,
			sha256, status, error_message, duration_ms, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.RunID, rec.IconName, rec.Path, rec.Width, rec.Height, rec.ByteSize,
		rec.SHA256, rec.Status, rec.ErrorMessage, rec.DurationMS,
		rec.CreatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert generation record: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert id: %w", err)
	}
	return id, nil
}

const selectColumns = `
	SELECT id, run_id, icon_name, path, width, height, byte_size,
	       sha256, status, error_message, duration_ms, created_at
	FROM generation_history`

// ListRecent returns the newest records first.
func (r *Repository) ListRecent(ctx context.Context, limit int) ([]GenerationRecord, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	return r.query(ctx, selectColumns+` ORDER BY id DESC LIMIT ?`, limit)
}

// ListByRunID returns the records of one run in insertion order.
func (r *Repository) ListByRunID(ctx context.Context, runID string) ([]GenerationRecord, error) {
	return r.query(ctx, selectColumns+` WHERE run_id = ? ORDER BY id ASC`, runID)
}

// CountGenerations returns the number of stored records.
func (r *Repository) CountGenerations(ctx context.Context) (int64, error) {
	if r.db == nil {
		return 0, fmt.Errorf("database connection is nil")
	}
	row, err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM generation_history`)
	if err != nil {
		return 0, err
	}
	var count int64
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count generation records: %w", err)
	}
	return count, nil
}

func (r *Repository) query(ctx context.Context, query string, args ...any) ([]GenerationRecord, error) {
	if r.db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query generation history: %w", err)
	}
	defer rows.Close()

	var records []GenerationRecord
	for rows.Next() {
		var rec GenerationRecord
		var createdAt string
		err := rows.Scan(
			&rec.ID,
			&rec.RunID,
			&rec.IconName,
			&rec.Path,
			&rec.Width,
			&rec.Height,
			&rec.ByteSize,
			&rec.SHA256,
			&rec.Status,
			&rec.ErrorMessage,
			&rec.DurationMS,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan generation history row: %w", err)
		}
		rec.CreatedAt, err = time.Parse(timeLayout, createdAt)
		if err != nil {
			return nil, fmt.Errorf("invalid created_at %q: %w", createdAt, err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating generation history rows: %w", err)
	}
	return records, nil
}
