package db

import (
	"context"
	"fmt"
	"time"
)

// CleanupResult contains statistics about a cleanup operation.
type CleanupResult struct {
	// Deleted is the number of generation records removed
	Deleted int64
	// Cutoff is the creation time below which records were removed
	Cutoff time.Time
	// Duration is how long the cleanup took
	Duration time.Duration
}

// Cleanup deletes generation records older than retentionDays.
// retentionDays of 0 keeps everything.
//
// Example:
//
//	result, err := repo.Cleanup(ctx, 90)
//	if err != nil {
//	    log.Printf("Cleanup failed: %v", err)
//	}
func (r *Repository) Cleanup(ctx context.Context, retentionDays int) (CleanupResult, error) {
	start := time.Now()
	result := CleanupResult{}

	if retentionDays < 0 {
		return result, fmt.Errorf("retentionDays must be non-negative, got %d", retentionDays)
	}
	if retentionDays == 0 {
		return result, nil
	}
	if r.db == nil {
		return result, fmt.Errorf("database connection is nil")
	}

	result.Cutoff = r.now().UTC().AddDate(0, 0, -retentionDays)
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM generation_history WHERE created_at < ?`,
		result.Cutoff.Format(timeLayout))
	if err != nil {
		return result, fmt.Errorf("failed to delete old generation records: %w", err)
	}
	result.Deleted, err = res.RowsAffected()
	if err != nil {
		return result, fmt.Errorf("failed to count deleted records: %w", err)
	}
	result.Duration = time.Since(start)
	return result, nil
}
