package logging

import (
	"go.uber.org/zap/zapcore"
)

// NewMultiCore tees log entries to the console and to a file. The file
// always receives JSON. The console gets colored text in development mode
// and JSON otherwise. A nil fileWriter produces a console-only core.
func NewMultiCore(level zapcore.LevelEnabler, consoleWriter, fileWriter zapcore.WriteSyncer, isDev bool) zapcore.Core {
	var consoleEncoder zapcore.Encoder
	if isDev {
		consoleEncoder = zapcore.NewConsoleEncoder(NewConsoleEncoderConfig())
	} else {
		consoleEncoder = zapcore.NewJSONEncoder(NewEncoderConfig())
	}
	consoleCore := zapcore.NewCore(consoleEncoder, consoleWriter, level)

	if fileWriter == nil {
		return consoleCore
	}

	fileCore := zapcore.NewCore(zapcore.NewJSONEncoder(NewEncoderConfig()), fileWriter, level)
	return zapcore.NewTee(consoleCore, fileCore)
}
