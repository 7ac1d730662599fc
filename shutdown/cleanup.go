package shutdown

import (
	"context"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"pwa_icons/logging"
	"pwa_icons/pngenc"
)

// CleanupTempFiles returns a step removing atomic-write temporaries that an
// interrupted run left in dir. Finished icons are never touched. Errors are
// logged, not returned, so the remaining steps still run.
//
//	registry.Register("temp-files", shutdown.PriorityTempFiles, shutdown.CleanupTempFiles(logger, cfg.OutputDir))
func CleanupTempFiles(logger *logging.Logger, dir string) Func {
	return func(ctx context.Context) error {
		removeTempFiles(ctx, logger, dir)
		return nil
	}
}

// removeTempFiles returns the number of files removed.
func removeTempFiles(ctx context.Context, logger *logging.Logger, dir string) int {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("failed to list output directory", zap.String("directory", dir), zap.Error(err))
		}
		return 0
	}

	removed := 0
	for _, e := range entries {
		if ctx.Err() != nil {
			logger.Warn("temp file cleanup interrupted", zap.Int("removed", removed))
			return removed
		}
		if e.IsDir() || !pngenc.IsTempFile(e.Name()) {
			continue
		}
		path := filepath.Join(dir, e.Name())
		if err := os.Remove(path); err != nil {
			logger.Warn("failed to remove temporary file", zap.String("file", e.Name()), zap.Error(err))
			continue
		}
		removed++
		logger.Debug("removed temporary file", zap.String("file", e.Name()))
	}
	if removed > 0 {
		logger.Info("temp file cleanup complete", zap.Int("removed", removed))
	}
	return removed
}
