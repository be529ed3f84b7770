package core

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"
)

// PrepareLogger replaces the global logger with a development logger writing to
// stderr. Levels are colored only when stderr is a terminal.
func PrepareLogger(verbose bool) error {
	config := zap.NewDevelopmentConfig()
	config.OutputPaths = []string{"stderr"}

	if term.IsTerminal(int(os.Stderr.Fd())) {
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		config.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	}

	if verbose {
		config.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	} else {
		config.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}

	logger, err := config.Build()
	if err != nil {
		return fmt.Errorf("failed to produce a logger: %w", err)
	}

	zap.ReplaceGlobals(logger)

	return nil
}
