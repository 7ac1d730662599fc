// Package logging wraps zap with the console + rotating file setup used by
// the icon generator.
package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config describes how to build a Logger.
type Config struct {
	// Development selects colored console output and debug level by default.
	Development bool

	// Level overrides the default level when non-nil.
	Level *zapcore.Level

	// FilePath is the JSON log file. Empty disables file output.
	FilePath string

	// File controls rotation of FilePath.
	File FileWriterConfig

	// Console receives console output. Defaults to stdout.
	Console zapcore.WriteSyncer
}

// Logger wraps zap.Logger and its sugared variant.
//
// Example:
//
//	logger, err := logging.NewLogger(logging.Config{FilePath: "pwa_icons.log"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer logger.Sync()
//
//	logger.Info("icon written", zap.String("path", "public/icons/icon-192.png"))
type Logger struct {
	zap   *zap.Logger
	sugar *zap.SugaredLogger
}

// NewLogger builds a Logger from cfg.
func NewLogger(cfg Config) (*Logger, error) {
	level := zapcore.InfoLevel
	if cfg.Development {
		level = zapcore.DebugLevel
	}
	if cfg.Level != nil {
		level = *cfg.Level
	}

	console := cfg.Console
	if console == nil {
		console = zapcore.Lock(os.Stdout)
	}

	var file zapcore.WriteSyncer
	if cfg.FilePath != "" {
		fileCfg := cfg.File
		if fileCfg == (FileWriterConfig{}) {
			fileCfg = DefaultFileWriterConfig()
		}
		file = NewFileWriter(cfg.FilePath, fileCfg)
	}

	core := NewMultiCore(level, console, file, cfg.Development)
	return FromZap(zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))), nil
}

// NewNop returns a Logger that discards everything.
func NewNop() *Logger {
	return FromZap(zap.NewNop())
}

// FromZap wraps an existing zap.Logger, e.g. one built with zaptest.
func FromZap(z *zap.Logger) *Logger {
	return &Logger{zap: z, sugar: z.Sugar()}
}

// Sync flushes buffered entries. Call it before exiting.
func (l *Logger) Sync() error {
	if l == nil || l.zap == nil {
		return nil
	}
	return l.zap.Sync()
}

func (l *Logger) Debug(msg string, fields ...zap.Field) { l.zap.Debug(msg, fields...) }
func (l *Logger) Info(msg string, fields ...zap.Field)  { l.zap.Info(msg, fields...) }
func (l *Logger) Warn(msg string, fields ...zap.Field)  { l.zap.Warn(msg, fields...) }
func (l *Logger) Error(msg string, fields ...zap.Field) { l.zap.Error(msg, fields...) }

// Infow logs with loosely-typed key-value pairs.
func (l *Logger) Infow(msg string, keysAndValues ...interface{}) {
	l.sugar.Infow(msg, keysAndValues...)
}

// With returns a child logger that adds fields to every entry.
func (l *Logger) With(fields ...zap.Field) *Logger {
	return FromZap(l.zap.With(fields...))
}

// Named returns a child logger with a sub-name, e.g. "iconset".
func (l *Logger) Named(name string) *Logger {
	return FromZap(l.zap.Named(name))
}
