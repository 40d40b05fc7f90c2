package ndimage

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems; the
// observability package provides a Prometheus implementation.
type MetricsCollector interface {
	// RecordForge is called after each forge attempt.
	// bytes is the requested data block size, err is nil if successful.
	RecordForge(bytes int, duration time.Duration, err error)

	// RecordRelease is called when a data block is released.
	RecordRelease(bytes int)

	// RecordView is called after each view is created. kind names the
	// operation, e.g. "mirror" or "subview".
	RecordView(kind string)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordForge(int, time.Duration, error) {}
func (NoopMetricsCollector) RecordRelease(int)                     {}
func (NoopMetricsCollector) RecordView(string)                     {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	ForgeCount      atomic.Int64
	ForgeErrors     atomic.Int64
	ForgeBytes      atomic.Int64
	ForgeTotalNanos atomic.Int64
	ReleaseCount    atomic.Int64
	ReleaseBytes    atomic.Int64
	ViewCount       atomic.Int64
}

// RecordForge implements MetricsCollector.
func (b *BasicMetricsCollector) RecordForge(bytes int, duration time.Duration, err error) {
	b.ForgeCount.Add(1)
	b.ForgeTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.ForgeErrors.Add(1)
		return
	}
	b.ForgeBytes.Add(int64(bytes))
}

// RecordRelease implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRelease(bytes int) {
	b.ReleaseCount.Add(1)
	b.ReleaseBytes.Add(int64(bytes))
}

// RecordView implements MetricsCollector.
func (b *BasicMetricsCollector) RecordView(string) {
	b.ViewCount.Add(1)
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	forges := b.ForgeCount.Load()
	var avg int64
	if forges > 0 {
		avg = b.ForgeTotalNanos.Load() / forges
	}
	return BasicMetricsStats{
		ForgeCount:    forges,
		ForgeErrors:   b.ForgeErrors.Load(),
		ForgeAvgNanos: avg,
		ReleaseCount:  b.ReleaseCount.Load(),
		LiveBlocks:    forges - b.ForgeErrors.Load() - b.ReleaseCount.Load(),
		LiveBytes:     b.ForgeBytes.Load() - b.ReleaseBytes.Load(),
		ViewCount:     b.ViewCount.Load(),
	}
}

// BasicMetricsStats is a point-in-time snapshot of BasicMetricsCollector.
type BasicMetricsStats struct {
	ForgeCount    int64
	ForgeErrors   int64
	ForgeAvgNanos int64
	ReleaseCount  int64
	LiveBlocks    int64
	LiveBytes     int64
	ViewCount     int64
}
