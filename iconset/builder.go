package iconset

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"pwa_icons/core"
	"pwa_icons/logging"
	"pwa_icons/pngenc"
)

// Recorder persists build results. Implementations must be safe to call
// from the goroutine running Build.
type Recorder interface {
	Record(ctx context.Context, runID string, result Result) error
}

// BuilderConfig holds configuration for a Builder.
type BuilderConfig struct {
	// OutputDir receives the icon files. It must exist.
	OutputDir string

	// CompressionLevel is the zlib level passed to pngenc.NewEncoder.
	CompressionLevel int

	// Concurrency bounds how many icons are rendered at once.
	// Default: 1 (sequential)
	Concurrency int
}

// DefaultBuilderConfig returns sequential generation into the default
// output directory at the default compression level.
func DefaultBuilderConfig() BuilderConfig {
	return BuilderConfig{
		OutputDir:        core.DefaultOutputDir,
		CompressionLevel: pngenc.DefaultCompression,
		Concurrency:      1,
	}
}

// Builder renders icon sets.
//
// Thread-Safety:
//   - Builder is safe for concurrent use
//   - Each icon is rendered into its own raster; the encoder pools zlib writers
type Builder struct {
	encoder  *pngenc.Encoder
	logger   *logging.Logger
	recorder Recorder
	config   BuilderConfig
}

// NewBuilder creates a Builder. recorder may be nil.
func NewBuilder(logger *logging.Logger, recorder Recorder, config BuilderConfig) (*Builder, error) {
	if logger == nil {
		return nil, fmt.Errorf("iconset: logger cannot be nil")
	}
	if config.OutputDir == "" {
		config.OutputDir = core.DefaultOutputDir
	}
	if config.Concurrency < 1 {
		config.Concurrency = 1
	}
	encoder, err := pngenc.NewEncoder(config.CompressionLevel)
	if err != nil {
		return nil, fmt.Errorf("iconset: %w", err)
	}
	return &Builder{
		encoder:  encoder,
		logger:   logger.Named("iconset"),
		recorder: recorder,
		config:   config,
	}, nil
}

// Result is the outcome of one icon.
type Result struct {
	Spec     Spec
	Path     string
	Bytes    int
	SHA256   string
	Duration time.Duration
	Err      error
}

// OK reports whether the icon was written.
func (r Result) OK() bool {
	return r.Err == nil
}

// Run is the outcome of one Build call. Results follow the order of the
// specs passed to Build.
type Run struct {
	ID       string
	Started  time.Time
	Duration time.Duration
	Results  []Result
}

// Failed returns the number of icons that were not written.
func (r *Run) Failed() int {
	n := 0
	for _, res := range r.Results {
		if !res.OK() {
			n++
		}
	}
	return n
}

// Succeeded returns the results of the icons that were written.
func (r *Run) Succeeded() []Result {
	out := make([]Result, 0, len(r.Results))
	for _, res := range r.Results {
		if res.OK() {
			out = append(out, res)
		}
	}
	return out
}

// Build renders every spec into the output directory. Invalid specs are
// rejected as a whole with a *core.ConfigError before anything is written.
// A failing icon does not stop the others; its error is kept in its
// Result. Once ctx is done no further icons are started and the remaining
// results carry ctx.Err().
func (b *Builder) Build(ctx context.Context, specs []Spec) (*Run, error) {
	if err := ValidateSpecs(specs); err != nil {
		return nil, err
	}

	run := &Run{
		ID:      uuid.NewString(),
		Started: time.Now(),
		Results: make([]Result, len(specs)),
	}
	log := b.logger.With(zap.String("run_id", run.ID))
	log.Info("building icon set",
		zap.Int("icons", len(specs)),
		zap.Int("concurrency", b.config.Concurrency),
		zap.Int("compression_level", b.encoder.Level()))

	if b.config.Concurrency == 1 {
		for i, spec := range specs {
			if err := ctx.Err(); err != nil {
				run.Results[i] = b.skipped(spec, err)
				continue
			}
			run.Results[i] = b.buildOne(spec)
		}
	} else {
		b.buildConcurrent(ctx, specs, run.Results)
	}
	run.Duration = time.Since(run.Started)

	for _, res := range run.Results {
		b.logResult(log, res)
	}
	b.record(ctx, log, run)

	log.Info("icon set finished",
		zap.Int("written", len(run.Results)-run.Failed()),
		zap.Int("failed", run.Failed()),
		zap.Duration("duration", run.Duration))
	return run, nil
}

func (b *Builder) buildConcurrent(ctx context.Context, specs []Spec, results []Result) {
	sem := make(chan struct{}, b.config.Concurrency)
	var wg sync.WaitGroup

	for i, spec := range specs {
		if err := ctx.Err(); err != nil {
			results[i] = b.skipped(spec, err)
			continue
		}
		select {
		case sem <- struct{}{}:
		case <-ctx.Done():
			results[i] = b.skipped(spec, ctx.Err())
			continue
		}

		wg.Add(1)
		go func(i int, spec Spec) {
			defer wg.Done()
			defer func() { <-sem }()
			results[i] = b.buildOne(spec)
		}(i, spec)
	}
	wg.Wait()
}

func (b *Builder) buildOne(spec Spec) Result {
	start := time.Now()
	res := Result{Spec: spec, Path: core.OutputFilePath(b.config.OutputDir, spec.Name)}

	data, err := b.encode(spec)
	if err == nil {
		err = pngenc.WriteFile(res.Path, data)
	}
	if err != nil {
		res.Err = fmt.Errorf("iconset: %s: %w", spec.Name, err)
	} else {
		res.Bytes = len(data)
		res.SHA256 = core.ComputeSHA256FromBytes(data)
	}
	res.Duration = time.Since(start)
	return res
}

func (b *Builder) encode(spec Spec) ([]byte, error) {
	r, err := Render(spec)
	if err != nil {
		return nil, err
	}
	return b.encoder.Encode(r)
}

func (b *Builder) skipped(spec Spec, err error) Result {
	return Result{
		Spec: spec,
		Path: core.OutputFilePath(b.config.OutputDir, spec.Name),
		Err:  fmt.Errorf("iconset: %s: not started: %w", spec.Name, err),
	}
}

func (b *Builder) logResult(log *logging.Logger, res Result) {
	event := logging.IconEvent{
		Name:     res.Spec.Name,
		Path:     res.Path,
		Width:    res.Spec.Width,
		Height:   res.Spec.Height,
		Bytes:    res.Bytes,
		SHA256:   res.SHA256,
		Duration: res.Duration,
	}
	if res.OK() {
		log.Info("icon written", logging.IconFields(event))
		return
	}
	log.Error("icon failed", logging.IconFields(event), zap.Error(res.Err))
}

// record hands every result to the recorder. Ledger failures are logged
// and do not change the results.
func (b *Builder) record(ctx context.Context, log *logging.Logger, run *Run) {
	if b.recorder == nil {
		return
	}
	ctx = context.WithoutCancel(ctx)
	for _, res := range run.Results {
		if err := b.recorder.Record(ctx, run.ID, res); err != nil {
			log.Warn("failed to record icon result",
				zap.String("name", res.Spec.Name),
				zap.Error(err))
		}
	}
}
