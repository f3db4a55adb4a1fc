package mmapcell

import (
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with mmapcell-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelWarn,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.DiscardHandler),
	}
}

// WithPath adds a path field to the logger.
func (l *Logger) WithPath(path string) *Logger {
	if path == "" {
		return &Logger{Logger: l.Logger.With("backing", BackingAnonymous.String())}
	}
	return &Logger{
		Logger: l.Logger.With("path", path),
	}
}

// LogOpen logs a cell construction. Failures are returned to the caller,
// so they are only reported at debug level.
func (l *Logger) LogOpen(typeName string, size int, err error) {
	if err != nil {
		l.Debug("open failed",
			"type", typeName,
			"size", size,
			"error", err,
		)
	} else {
		l.Debug("open completed",
			"type", typeName,
			"size", size,
		)
	}
}

// LogResize logs a change of the backing file length. Shrinking a non-empty
// file discards bytes and is reported as a warning.
func (l *Logger) LogResize(from, to int64) {
	if from > to {
		l.Warn("backing file truncated",
			"from", from,
			"to", to,
		)
	} else {
		l.Debug("backing file extended",
			"from", from,
			"to", to,
		)
	}
}

// LogFlush logs a flush operation.
func (l *Logger) LogFlush(async bool, err error) {
	if err != nil {
		l.Error("flush failed",
			"async", async,
			"error", err,
		)
	} else {
		l.Debug("flush completed",
			"async", async,
		)
	}
}

// LogClose logs a teardown. Teardown errors have no other observer, so they
// are reported as warnings.
func (l *Logger) LogClose(err error) {
	if err != nil {
		l.Warn("close failed",
			"error", err,
		)
	} else {
		l.Debug("close completed")
	}
}
