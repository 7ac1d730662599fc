package db

import (
	"context"

	"pwa_icons/iconset"
)

// Recorder stores iconset build results in the ledger.
// It implements iconset.Recorder.
type Recorder struct {
	repo *Repository
}

// NewRecorder returns a Recorder writing through repo.
func NewRecorder(repo *Repository) *Recorder {
	return &Recorder{repo: repo}
}

// Record inserts one result.
func (r *Recorder) Record(ctx context.Context, runID string, res iconset.Result) error {
	_, err := r.repo.InsertGeneration(ctx, RecordFromResult(runID, res))
	return err
}

// RecordFromResult converts a build result into a ledger row.
func RecordFromResult(runID string, res iconset.Result) GenerationRecord {
	rec := GenerationRecord{
		RunID:      runID,
		IconName:   res.Spec.Name,
		Path:       res.Path,
		Width:      res.Spec.Width,
		Height:     res.Spec.Height,
		ByteSize:   res.Bytes,
		SHA256:     res.SHA256,
		Status:     StatusSuccess,
		DurationMS: res.Duration.Milliseconds(),
	}
	if res.Err != nil {
		rec.Status = StatusError
		rec.ErrorMessage = res.Err.Error()
	}
	return rec
}

var _ iconset.Recorder = (*Recorder)(nil)
