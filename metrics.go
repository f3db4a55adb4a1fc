package mmapcell

import (
	"sync/atomic"
	"time"
)

// Backing identifies what a cell's mapping is backed by.
type Backing int

const (
	// BackingFile is a named file mapped shared.
	BackingFile Backing = iota
	// BackingAnonymous is process-private anonymous memory.
	BackingAnonymous
)

func (b Backing) String() string {
	switch b {
	case BackingFile:
		return "file"
	case BackingAnonymous:
		return "anonymous"
	default:
		return "unknown"
	}
}

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Example Prometheus integration:
//
//	type PrometheusCollector struct {
//	    flushHistogram prometheus.Histogram
//	}
//
//	func (p *PrometheusCollector) RecordFlush(duration time.Duration, err error) {
//	    p.flushHistogram.Observe(duration.Seconds())
//	}
type MetricsCollector interface {
	// RecordOpen is called after each construction attempt.
	// duration is the total time taken, err is nil if successful.
	RecordOpen(backing Backing, duration time.Duration, err error)

	// RecordFlush is called after each explicit or close-time flush.
	RecordFlush(duration time.Duration, err error)

	// RecordClose is called after each teardown.
	RecordClose(duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordOpen(Backing, time.Duration, error) {}
func (NoopMetricsCollector) RecordFlush(time.Duration, error)         {}
func (NoopMetricsCollector) RecordClose(time.Duration, error)         {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	OpenFileCount      atomic.Int64
	OpenAnonymousCount atomic.Int64
	OpenErrors         atomic.Int64
	FlushCount         atomic.Int64
	FlushErrors        atomic.Int64
	FlushTotalNanos    atomic.Int64
	CloseCount         atomic.Int64
	CloseErrors        atomic.Int64
}

// RecordOpen implements MetricsCollector.
func (b *BasicMetricsCollector) RecordOpen(backing Backing, duration time.Duration, err error) {
	if err != nil {
		b.OpenErrors.Add(1)
		return
	}
	if backing == BackingAnonymous {
		b.OpenAnonymousCount.Add(1)
	} else {
		b.OpenFileCount.Add(1)
	}
}

// RecordFlush implements MetricsCollector.
func (b *BasicMetricsCollector) RecordFlush(duration time.Duration, err error) {
	b.FlushCount.Add(1)
	b.FlushTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.FlushErrors.Add(1)
	}
}

// RecordClose implements MetricsCollector.
func (b *BasicMetricsCollector) RecordClose(duration time.Duration, err error) {
	b.CloseCount.Add(1)
	if err != nil {
		b.CloseErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		OpenFileCount:      b.OpenFileCount.Load(),
		OpenAnonymousCount: b.OpenAnonymousCount.Load(),
		OpenErrors:         b.OpenErrors.Load(),
		FlushCount:         b.FlushCount.Load(),
		FlushErrors:        b.FlushErrors.Load(),
		FlushAvgNanos:      b.getAvgFlushNanos(),
		CloseCount:         b.CloseCount.Load(),
		CloseErrors:        b.CloseErrors.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgFlushNanos() int64 {
	count := b.FlushCount.Load()
	if count == 0 {
		return 0
	}
	return b.FlushTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	OpenFileCount      int64
	OpenAnonymousCount int64
	OpenErrors         int64
	FlushCount         int64
	FlushErrors        int64
	FlushAvgNanos      int64
	CloseCount         int64
	CloseErrors        int64
}
