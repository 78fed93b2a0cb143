package sonarscan

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems; the
// promcollector package provides a Prometheus implementation.
type MetricsCollector interface {
	// RecordFind is called after each pattern search.
	// scanned is the number of haystack bytes searched.
	RecordFind(scanned, matches int, duration time.Duration)

	// RecordScan is called after each multi-range scan.
	// err is non-nil when the scan stopped early.
	RecordScan(ranges, records int, duration time.Duration, err error)

	// RecordCachedRead is called after each cached read.
	RecordCachedRead(size int, duration time.Duration, err error)

	// RecordTransform is called after each coordinate transform.
	RecordTransform(points int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordFind(int, int, time.Duration)         {}
func (NoopMetricsCollector) RecordScan(int, int, time.Duration, error)  {}
func (NoopMetricsCollector) RecordCachedRead(int, time.Duration, error) {}
func (NoopMetricsCollector) RecordTransform(int, time.Duration, error)  {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	FindCount        atomic.Int64
	FindBytes        atomic.Int64
	FindMatches      atomic.Int64
	FindTotalNanos   atomic.Int64
	ScanCount        atomic.Int64
	ScanRanges       atomic.Int64
	ScanRecords      atomic.Int64
	ScanErrors       atomic.Int64
	ScanTotalNanos   atomic.Int64
	CachedReadCount  atomic.Int64
	CachedReadErrors atomic.Int64
	TransformCount   atomic.Int64
	TransformPoints  atomic.Int64
	TransformErrors  atomic.Int64
}

// RecordFind implements MetricsCollector.
func (b *BasicMetricsCollector) RecordFind(scanned, matches int, duration time.Duration) {
	b.FindCount.Add(1)
	b.FindBytes.Add(int64(scanned))
	b.FindMatches.Add(int64(matches))
	b.FindTotalNanos.Add(duration.Nanoseconds())
}

// RecordScan implements MetricsCollector.
func (b *BasicMetricsCollector) RecordScan(ranges, records int, duration time.Duration, err error) {
	b.ScanCount.Add(1)
	b.ScanRanges.Add(int64(ranges))
	b.ScanRecords.Add(int64(records))
	b.ScanTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.ScanErrors.Add(1)
	}
}

// RecordCachedRead implements MetricsCollector.
func (b *BasicMetricsCollector) RecordCachedRead(size int, duration time.Duration, err error) {
	b.CachedReadCount.Add(1)
	if err != nil {
		b.CachedReadErrors.Add(1)
	}
}

// RecordTransform implements MetricsCollector.
func (b *BasicMetricsCollector) RecordTransform(points int, duration time.Duration, err error) {
	b.TransformCount.Add(1)
	b.TransformPoints.Add(int64(points))
	if err != nil {
		b.TransformErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		FindCount:        b.FindCount.Load(),
		FindBytes:        b.FindBytes.Load(),
		FindMatches:      b.FindMatches.Load(),
		FindAvgNanos:     avg(b.FindTotalNanos.Load(), b.FindCount.Load()),
		ScanCount:        b.ScanCount.Load(),
		ScanRanges:       b.ScanRanges.Load(),
		ScanRecords:      b.ScanRecords.Load(),
		ScanErrors:       b.ScanErrors.Load(),
		ScanAvgNanos:     avg(b.ScanTotalNanos.Load(), b.ScanCount.Load()),
		CachedReadCount:  b.CachedReadCount.Load(),
		CachedReadErrors: b.CachedReadErrors.Load(),
		TransformCount:   b.TransformCount.Load(),
		TransformPoints:  b.TransformPoints.Load(),
		TransformErrors:  b.TransformErrors.Load(),
	}
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	FindCount        int64
	FindBytes        int64
	FindMatches      int64
	FindAvgNanos     int64
	ScanCount        int64
	ScanRanges       int64
	ScanRecords      int64
	ScanErrors       int64
	ScanAvgNanos     int64
	CachedReadCount  int64
	CachedReadErrors int64
	TransformCount   int64
	TransformPoints  int64
	TransformErrors  int64
}
