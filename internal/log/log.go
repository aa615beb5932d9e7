package log

import (
	"sync/atomic"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

var defaultLogger atomic.Pointer[zap.Logger]

func init() {
	defaultLogger.Store(zap.NewNop())
}

func Get() *zap.Logger {
	return defaultLogger.Load()
}

// Set replaces the process logger. Warnings and errors go to path
// ("stderr" when empty); verbose enables debug output.
func Set(path string, verbose bool) error {
	if path == "" {
		path = "stderr"
	}

	level := zap.InfoLevel
	if verbose {
		level = zap.DebugLevel
	}

	cfg := zap.Config{
		Level:            zap.NewAtomicLevelAt(level),
		Development:      verbose,
		Encoding:         "console",
		EncoderConfig:    zap.NewDevelopmentEncoderConfig(),
		OutputPaths:      []string{path},
		ErrorOutputPaths: []string{"stderr"},
	}

	logger, err := cfg.Build()
	if err != nil {
		return errors.Wrap(err, "failed to build logger")
	}
	defaultLogger.Store(logger)
	return nil
}

// Replace installs logger and returns a function restoring the previous one.
func Replace(logger *zap.Logger) func() {
	prev := defaultLogger.Swap(logger)
	return func() { defaultLogger.Store(prev) }
}

func Flush() {
	_ = Get().Sync()
}
