// ABOUTME: Logger construction
// ABOUTME: Builds a zap logger writing to the log file, and to stdout when the TUI is off
package logging

import (
	"fmt"

	"go.uber.org/zap"
)

// Options selects the logger's level and sinks
type Options struct {
	Level string
	File  string
	// Stdout also writes to standard output; the TUI owns the terminal otherwise
	Stdout bool
}

// New creates and configures a zap logger
func New(opts Options) (*zap.Logger, error) {
	var zapConfig zap.Config
	switch opts.Level {
	case "debug":
		zapConfig = zap.NewDevelopmentConfig()
	case "warn":
		zapConfig = zap.NewProductionConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		zapConfig = zap.NewProductionConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	default:
		zapConfig = zap.NewProductionConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}

	zapConfig.OutputPaths = nil
	if opts.File != "" {
		zapConfig.OutputPaths = append(zapConfig.OutputPaths, opts.File)
	}
	if opts.Stdout {
		zapConfig.OutputPaths = append(zapConfig.OutputPaths, "stdout")
	}
	zapConfig.ErrorOutputPaths = zapConfig.OutputPaths
	if len(zapConfig.OutputPaths) == 0 {
		return zap.NewNop(), nil
	}

	logger, err := zapConfig.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to create zap logger: %w", err)
	}
	return logger, nil
}
