// Package debug provides the opt-in file logger. A TUI owns the
// terminal, so diagnostics go to a file or nowhere.
package debug

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a debug-level logger appending to the given file. An empty
// path yields a no-op logger.
func New(path string) (*zap.Logger, error) {
	if path == "" {
		return zap.NewNop(), nil
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("debug log: %w", err)
	}
	return logger, nil
}
