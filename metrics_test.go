package mmapcell

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBasicMetricsCollector(t *testing.T) {
	m := &BasicMetricsCollector{}
	boom := errors.New("boom")

	m.RecordOpen(BackingFile, time.Millisecond, nil)
	m.RecordOpen(BackingAnonymous, time.Millisecond, nil)
	m.RecordOpen(BackingFile, time.Millisecond, boom)
	m.RecordFlush(2*time.Millisecond, nil)
	m.RecordFlush(4*time.Millisecond, boom)
	m.RecordClose(time.Millisecond, nil)

	stats := m.GetStats()
	assert.Equal(t, int64(1), stats.OpenFileCount)
	assert.Equal(t, int64(1), stats.OpenAnonymousCount)
	assert.Equal(t, int64(1), stats.OpenErrors)
	assert.Equal(t, int64(2), stats.FlushCount)
	assert.Equal(t, int64(1), stats.FlushErrors)
	assert.Equal(t, (3 * time.Millisecond).Nanoseconds(), stats.FlushAvgNanos)
	assert.Equal(t, int64(1), stats.CloseCount)
	assert.Equal(t, int64(0), stats.CloseErrors)
}

func TestBackingString(t *testing.T) {
	assert.Equal(t, "file", BackingFile.String())
	assert.Equal(t, "anonymous", BackingAnonymous.String())
	assert.Equal(t, "unknown", Backing(9).String())
}

func TestNilOptionsFallBack(t *testing.T) {
	o := applyOptions([]Option{nil, WithLogger(nil), WithMetricsCollector(nil)})
	assert.NotNil(t, o.logger)
	assert.Equal(t, NoopMetricsCollector{}, o.metricsCollector)
	assert.True(t, o.flushOnClose)
	assert.Equal(t, DefaultFileMode, o.fileMode)
}
