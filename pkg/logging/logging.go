// Package logging builds the zap loggers used by the almanac commands.
package logging

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level maps the verbosity flags to a zap level. Quiet wins over verbose.
func Level(verbose, quiet bool) zapcore.Level {
	switch {
	case quiet:
		return zapcore.ErrorLevel
	case verbose:
		return zapcore.DebugLevel
	default:
		return zapcore.WarnLevel
	}
}

// New returns a console logger writing to w at the level selected by
// verbose and quiet.
func New(w io.Writer, verbose, quiet bool) *zap.Logger {
	encoderCfg := zap.NewDevelopmentEncoderConfig()
	encoderCfg.TimeKey = ""
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderCfg),
		zapcore.AddSync(w),
		zap.NewAtomicLevelAt(Level(verbose, quiet)),
	)
	return zap.New(core)
}
