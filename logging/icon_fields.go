package logging

import (
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// IconEvent describes one generated icon for structured logs.
// Implements zapcore.ObjectMarshaler.
type IconEvent struct {
	Name     string
	Path     string
	Width    int
	Height   int
	Bytes    int
	SHA256   string
	Duration time.Duration
}

// MarshalLogObject encodes the event; duration is reported in milliseconds.
func (e IconEvent) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("name", e.Name)
	enc.AddString("path", e.Path)
	enc.AddInt("width", e.Width)
	enc.AddInt("height", e.Height)
	enc.AddInt("bytes", e.Bytes)
	if e.SHA256 != "" {
		enc.AddString("sha256", e.SHA256)
	}
	enc.AddInt64("duration_ms", e.Duration.Milliseconds())
	return nil
}

// IconFields wraps an IconEvent as a single "icon" field.
//
//	logger.Info("icon written", logging.IconFields(event))
func IconFields(e IconEvent) zap.Field {
	return zap.Object("icon", e)
}
