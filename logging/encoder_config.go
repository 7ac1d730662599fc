package logging

import (
	"time"

	"go.uber.org/zap/zapcore"
)

// Standard field names for structured logging output.
const (
	FieldTimestamp  = "timestamp"
	FieldLevel      = "level"
	FieldLogger     = "logger"
	FieldMessage    = "message"
	FieldCaller     = "caller"
	FieldStacktrace = "stacktrace"
)

// NewEncoderConfig returns the JSON encoder config used for the log file:
// ISO8601 timestamps, lowercase levels, short caller paths.
func NewEncoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:       FieldTimestamp,
		LevelKey:      FieldLevel,
		NameKey:       FieldLogger,
		CallerKey:     FieldCaller,
		MessageKey:    FieldMessage,
		StacktraceKey: FieldStacktrace,
		LineEnding:    zapcore.DefaultLineEnding,

		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.MillisDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
}

// NewConsoleEncoderConfig returns the human-readable config used on the
// terminal in development mode.
func NewConsoleEncoderConfig() zapcore.EncoderConfig {
	cfg := NewEncoderConfig()
	cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncodeTime = shortTimeEncoder
	cfg.EncodeDuration = zapcore.StringDurationEncoder
	return cfg
}

// shortTimeEncoder formats timestamps as 15:04:05.000.
func shortTimeEncoder(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.Format("15:04:05.000"))
}
