package logger

import (
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// NewStructuredLogger creates a JSON logger writing to w at the given level.
// The module name and version are attached to every record, and source
// locations are added at debug level.
func NewStructuredLogger(w io.Writer, module, version, level string) *slog.Logger {
	lev := ParseLogLevel(level)
	addSource := lev <= slog.LevelDebug

	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:     lev,
		AddSource: addSource,
	})).With("module", module, "version", version)
}

// NewLogLogger creates a standard library log.Logger backed by slog, for
// packages such as net/http that only accept *log.Logger.
func NewLogLogger(level slog.Level, withSource bool) *log.Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level:     level,
		AddSource: withSource,
	})

	return slog.NewLogLogger(handler, level)
}

// SetDefaultLoggerWithLevel sets a stderr logger with the given level as the
// slog default.
func SetDefaultLoggerWithLevel(module, version, level string) {
	slog.SetDefault(NewStructuredLogger(os.Stderr, module, version, level))
}

// SetDefaultLoggerWithFile sets a logger writing to stderr and, when file is
// not empty, appending to file as well. The returned closer releases the
// file and must be called on exit.
func SetDefaultLoggerWithFile(module, version, level, file string) (io.Closer, error) {
	if file == "" {
		SetDefaultLoggerWithLevel(module, version, level)
		return nopCloser{}, nil
	}

	if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	slog.SetDefault(NewStructuredLogger(io.MultiWriter(os.Stderr, f), module, version, level))

	return f, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// ParseLogLevel converts a level name into a slog.Level. Unrecognized
// names map to slog.LevelInfo.
func ParseLogLevel(level string) slog.Level {
	var lev slog.Level

	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		lev = slog.LevelDebug
	case "warn", "warning":
		lev = slog.LevelWarn
	case "error":
		lev = slog.LevelError
	default:
		lev = slog.LevelInfo
	}

	return lev
}
