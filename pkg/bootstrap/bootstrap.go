package bootstrap

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/abgdnv/sweetshop/pkg/config"
	"github.com/abgdnv/sweetshop/pkg/logger"
)

// NewLogger creates a new slog.Logger writing to the configured file or to stderr.
// The returned close function releases the log file and must be called on exit.
func NewLogger(cfg config.LogConfig) (*slog.Logger, func() error, error) {
	out, closeFn, err := openLogOutput(cfg.File)
	if err != nil {
		return nil, nil, err
	}
	return newLogger(out, cfg.Level, cfg.Format), closeFn, nil
}

func newLogger(out io.Writer, level, format string) *slog.Logger {
	logLevel := toLevel(level)
	loggerOpts := &slog.HandlerOptions{
		AddSource: logLevel == slog.LevelDebug,
		Level:     logLevel,
	}
	var logHandler slog.Handler
	if format == "text" {
		logHandler = slog.NewTextHandler(out, loggerOpts)
	} else {
		logHandler = slog.NewJSONHandler(out, loggerOpts)
	}
	return slog.New(logger.NewContextHandler(logHandler))
}

// openLogOutput opens path for appending. Stdout is reserved for the shell, so the
// only stream accepted in place of a file is stderr.
func openLogOutput(path string) (io.Writer, func() error, error) {
	if path == config.LogStderr {
		return os.Stderr, func() error { return nil }, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file %q: %w", path, err)
	}
	return f, f.Close, nil
}

// toLevel converts a string representation of a log level to slog.Level.
func toLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
