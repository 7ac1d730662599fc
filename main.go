package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"pwa_icons/core"
	"pwa_icons/db"
	"pwa_icons/iconset"
	"pwa_icons/logging"
	"pwa_icons/pngenc"
	"pwa_icons/shutdown"
)

const usage = `Usage:
  pwa_icons [generate]        build the icon set into ICONS_OUTPUT_DIR
  pwa_icons verify FILE...    check PNG files written by pwa_icons
  pwa_icons history [N|RUN]   show the newest N ledger records, or one run
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes one command and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) (code int) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(stderr, "Warning: failed to read .env: %v\n", err)
	}

	command := "generate"
	if len(args) > 0 {
		command, args = args[0], args[1:]
	}

	var query historyQuery
	switch command {
	case "generate":
		if len(args) != 0 {
			fmt.Fprint(stderr, usage)
			return core.ExitCodeUsage
		}
	case "verify":
		if len(args) == 0 {
			fmt.Fprint(stderr, usage)
			return core.ExitCodeUsage
		}
	case "history":
		var ok bool
		if query, ok = parseHistoryArgs(args); !ok {
			fmt.Fprint(stderr, usage)
			return core.ExitCodeUsage
		}
	case "help", "-h", "--help":
		fmt.Fprint(stdout, usage)
		return core.ExitCodeSuccess
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n%s", command, usage)
		return core.ExitCodeUsage
	}

	report := newReporter(stdout)

	config, err := core.LoadConfig()
	if err != nil {
		report.configError(err)
		return core.ExitCodeError
	}

	logger, err := newLogger(config, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to initialize logger: %v\n", err)
		return core.ExitCodeError
	}

	registry := shutdown.NewRegistry()
	registry.Register("logger", shutdown.PriorityLogger, func(context.Context) error {
		logger.Sync()
		return nil
	})
	defer func() {
		logger.Debug("Running cleanup", zap.Strings("steps", registry.Names()))
		if err := registry.Shutdown(context.Background()); err != nil {
			fmt.Fprintf(stderr, "Cleanup failed: %v\n", err)
		}
	}()
	defer func() {
		logger.Debug("Exiting", zap.String("command", command), zap.String("status", core.ExitCodeName(code)))
	}()

	switch command {
	case "verify":
		return verify(args, report, logger)
	case "history":
		return history(context.Background(), config, query, report, logger, registry)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	watchCtx, stopWatch := context.WithCancel(context.Background())
	defer stopWatch()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigs)
	counter := shutdown.NewSignalCounter(2, func() {
		logger.Sync()
		os.Exit(core.ExitCodeError)
	})
	go shutdown.Watch(watchCtx, sigs, cancel, counter, logger)

	code = generate(ctx, config, report, logger, registry)
	if n := counter.Count(); n > 0 {
		logger.Warn("Build interrupted", zap.Int("signals", n))
		report.note("interrupted, icons not started were skipped")
		code = core.ExitCodeError
	}
	return code
}

func newLogger(config *core.Config, console io.Writer) (*logging.Logger, error) {
	cfg := logging.Config{
		Development: config.DevMode,
		FilePath:    config.LogFile,
		Console:     zapcore.AddSync(console),
	}
	if config.LogLevel != "" {
		defaultLevel := zapcore.InfoLevel
		if config.DevMode {
			defaultLevel = zapcore.DebugLevel
		}
		level := logging.ParseLogLevelString(config.LogLevel, defaultLevel)
		cfg.Level = &level
	}
	return logging.NewLogger(cfg)
}

// generate builds the configured icon set. It returns ExitCodeError when
// any icon, the manifest or the setup fails.
func generate(ctx context.Context, config *core.Config, report *reporter, logger *logging.Logger, registry *shutdown.Registry) int {
	logger.Info("Configuration loaded",
		zap.String("output_dir", config.OutputDir),
		zap.String("spec_file", config.SpecFile),
		zap.Int("compression_level", config.CompressionLevel),
		zap.Int("concurrency", config.Concurrency),
		zap.String("manifest", config.ManifestFile),
		zap.String("manifest_src", config.ManifestSrc),
		zap.String("ledger", config.LedgerPath),
		zap.Bool("dev_mode", config.DevMode),
	)

	outputDir, err := core.EnsureOutputDirectory(config.OutputDir)
	if err != nil {
		logger.Error("Output directory unusable", zap.Error(err))
		report.configError(err)
		return core.ExitCodeError
	}
	registry.Register("temp-files", shutdown.PriorityTempFiles, shutdown.CleanupTempFiles(logger, outputDir))

	specs := iconset.DefaultSpecs()
	if config.SpecFile != "" {
		specs, err = iconset.LoadSpecs(config.SpecFile)
		if err != nil {
			logger.Error("Failed to load icon set", zap.String("code", core.GetErrorCode(err)), zap.Error(err))
			report.configError(err)
			return core.ExitCodeError
		}
	}

	var recorder iconset.Recorder
	var repo *db.Repository
	if config.LedgerEnabled() {
		ledger, err := openLedger(ctx, config.LedgerPath, logger, registry)
		if err != nil {
			report.failure("ledger", err)
			return core.ExitCodeError
		}
		repo = db.NewRepository(ledger)
		recorder = db.NewRecorder(repo)
	}

	builderConfig := iconset.DefaultBuilderConfig()
	builderConfig.OutputDir = outputDir
	builderConfig.CompressionLevel = config.CompressionLevel
	builderConfig.Concurrency = config.Concurrency
	builder, err := iconset.NewBuilder(logger, recorder, builderConfig)
	if err != nil {
		logger.Error("Failed to create builder", zap.Error(err))
		report.failure("builder", err)
		return core.ExitCodeError
	}

	report.header(fmt.Sprintf("Generating %d icons into %s", len(specs), outputDir))
	run, err := builder.Build(ctx, specs)
	if err != nil {
		logger.Error("Icon set rejected", zap.String("code", core.GetErrorCode(err)), zap.Error(err))
		report.configError(err)
		return core.ExitCodeError
	}
	for _, res := range run.Results {
		report.icon(res)
	}
	logger.Infow("Build complete",
		"run_id", run.ID,
		"written", len(run.Succeeded()),
		"failed", run.Failed(),
		"duration", run.Duration)

	exitCode := core.ExitCodeSuccess
	if run.Failed() > 0 {
		exitCode = core.ExitCodeError
	}

	if config.ManifestEnabled() {
		if err := iconset.WriteManifest(config.ManifestFile, config.ManifestSrc, run); err != nil {
			logger.Error("Failed to write manifest", zap.String("path", config.ManifestFile), zap.Error(err))
			report.failure(config.ManifestFile, err)
			exitCode = core.ExitCodeError
		} else {
			logger.Info("Manifest written", zap.String("path", config.ManifestFile))
			report.note("manifest " + config.ManifestFile)
		}
	}

	if repo != nil && config.LedgerRetentionDays > 0 {
		result, err := repo.Cleanup(context.WithoutCancel(ctx), config.LedgerRetentionDays)
		if err != nil {
			logger.Warn("Ledger cleanup failed", zap.Error(err))
		} else if result.Deleted > 0 {
			logger.Info("Ledger cleanup complete",
				zap.Int64("deleted", result.Deleted),
				zap.Time("cutoff", result.Cutoff))
		}
	}

	report.summary(run)
	return exitCode
}

// verify inspects each file and reports its header.
func verify(paths []string, report *reporter, logger *logging.Logger) int {
	report.header(fmt.Sprintf("Verifying %d files", len(paths)))

	exitCode := core.ExitCodeSuccess
	for _, path := range paths {
		data, err := os.ReadFile(path)
		var rep *pngenc.Report
		if err == nil {
			rep, err = pngenc.Inspect(data)
		}
		if err != nil {
			logger.Error("Verification failed", zap.String("path", path), zap.Error(err))
			exitCode = core.ExitCodeError
		} else {
			sum, hashErr := core.ComputeSHA256(path)
			if hashErr != nil {
				logger.Warn("Checksum failed", zap.String("path", path), zap.Error(hashErr))
			}
			logger.Info("Verified",
				zap.String("path", path),
				zap.String("header", rep.Header.String()),
				zap.String("sha256", sum))
		}
		report.verified(path, rep, err)
	}
	return exitCode
}

// openLedger opens and migrates the ledger at path and registers its close.
func openLedger(ctx context.Context, path string, logger *logging.Logger, registry *shutdown.Registry) (*db.Database, error) {
	ledger, err := db.Open(path)
	if err != nil {
		logger.Error("Failed to open ledger", zap.String("path", path), zap.Error(err))
		return nil, err
	}
	registry.Register("ledger", shutdown.PriorityResources, func(context.Context) error {
		return ledger.Close()
	})
	if err := ledger.Ping(ctx); err != nil {
		logger.Error("Ledger unreachable", zap.String("path", path), zap.Error(err))
		return nil, err
	}

	version, dirty, err := db.MigrationVersionFromPath(ledger.Path())
	switch {
	case err != nil:
		logger.Warn("Failed to read ledger schema version", zap.Error(err))
	case dirty || version != db.SchemaVersion:
		logger.Warn("Unexpected ledger schema",
			zap.Uint("version", version),
			zap.Bool("dirty", dirty),
			zap.Int("want", db.SchemaVersion))
	default:
		logger.Debug("Ledger ready", zap.String("path", path), zap.Uint("schema_version", version))
	}
	return ledger, nil
}

// historyQuery selects ledger records: the newest Limit records, or all
// records of RunID when it is set.
type historyQuery struct {
	Limit int
	RunID string
}

func parseHistoryArgs(args []string) (historyQuery, bool) {
	if len(args) > 1 {
		return historyQuery{}, false
	}
	if len(args) == 0 {
		return historyQuery{Limit: db.DefaultListLimit}, true
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		if _, err := uuid.Parse(args[0]); err != nil {
			return historyQuery{}, false
		}
		return historyQuery{RunID: args[0]}, true
	}
	if n <= 0 {
		return historyQuery{}, false
	}
	return historyQuery{Limit: n}, true
}

// history prints ledger records, newest first, or one run in build order.
func history(ctx context.Context, config *core.Config, query historyQuery, report *reporter, logger *logging.Logger, registry *shutdown.Registry) int {
	if !config.LedgerEnabled() {
		report.configError(core.ErrLedgerNotConfigured())
		return core.ExitCodeError
	}
	ledger, err := openLedger(ctx, config.LedgerPath, logger, registry)
	if err != nil {
		report.failure("ledger", err)
		return core.ExitCodeError
	}
	repo := db.NewRepository(ledger)

	var records []db.GenerationRecord
	if query.RunID != "" {
		report.header("Run " + query.RunID)
		records, err = repo.ListByRunID(ctx, query.RunID)
	} else {
		report.header(fmt.Sprintf("Last %d icons", query.Limit))
		records, err = repo.ListRecent(ctx, query.Limit)
	}
	if err != nil {
		logger.Error("Failed to read ledger", zap.Error(err))
		report.failure("ledger", err)
		return core.ExitCodeError
	}
	total, err := repo.CountGenerations(ctx)
	if err != nil {
		logger.Error("Failed to count ledger records", zap.Error(err))
		report.failure("ledger", err)
		return core.ExitCodeError
	}

	for _, rec := range records {
		report.record(rec)
	}
	report.historySummary(len(records), total)
	return core.ExitCodeSuccess
}
