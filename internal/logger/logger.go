// Package logger wraps zap initialization for the server.
package logger

import (
	"strings"

	"go.uber.org/zap"
)

// Logger carries the shared zap instance.
type Logger struct {
	Log *zap.Logger
}

// New returns an uninitialized Logger with a no-op zap instance so callers
// can log before Init runs.
func New() *Logger {
	return &Logger{Log: zap.NewNop()}
}

// Init builds the production logger at the given level ("Debug", "Info",
// "Warn", "Error").
func (l *Logger) Init(level string) error {
	lvl, err := zap.ParseAtomicLevel(strings.ToLower(level))
	if err != nil {
		return err
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = lvl

	zl, err := cfg.Build()
	if err != nil {
		return err
	}
	l.Log = zl
	return nil
}
