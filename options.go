package mmapcell

import (
	"log/slog"
	"os"

	"github.com/hupe1980/mmapcell/internal/fs"
)

// DefaultFileMode is the permission used when NewNamed creates a file.
const DefaultFileMode os.FileMode = 0o600

type options struct {
	fs               fs.FileSystem
	fileMode         os.FileMode
	flushOnClose     bool
	strictLayout     bool
	metricsCollector MetricsCollector
	logger           *Logger
}

// Option configures cell construction.
type Option func(*options)

// WithFlushOnClose controls whether Close synchronously flushes a
// file-backed cell before unmapping it. Enabled by default.
//
// Disabling it does not lose writes that are still in the page cache; the
// kernel writes them back eventually. It only removes the durability
// guarantee against an OS crash right after Close.
func WithFlushOnClose(enabled bool) Option {
	return func(o *options) {
		o.flushOnClose = enabled
	}
}

// WithFileMode sets the permission bits used when NewNamed creates the
// backing file. Existing files keep their mode.
func WithFileMode(mode os.FileMode) Option {
	return func(o *options) {
		o.fileMode = mode
	}
}

// WithStrictLayout additionally requires the record type to have the same
// layout on every architecture: no int, uint or uintptr fields and no
// implicit padding. Use explicit `_ [N]byte` fields to pad.
func WithStrictLayout() Option {
	return func(o *options) {
		o.strictLayout = true
	}
}

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &mmapcell.BasicMetricsCollector{}
//	cell, _ := mmapcell.NewNamed[Header]("header.bin", mmapcell.WithMetricsCollector(metrics))
//	// ... use cell ...
//	stats := metrics.GetStats()
//	fmt.Printf("Flushes: %d, Avg latency: %dns\n", stats.FlushCount, stats.FlushAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := mmapcell.NewJSONLogger(slog.LevelDebug)
//	cell, _ := mmapcell.NewNamed[Header]("header.bin", mmapcell.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

func withFileSystem(fsys fs.FileSystem) Option {
	return func(o *options) {
		o.fs = fsys
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		fs:               fs.Default,
		fileMode:         DefaultFileMode,
		flushOnClose:     true,
		metricsCollector: NoopMetricsCollector{},
		logger:           NewLogger(nil),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
