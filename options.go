package sonarscan

import (
	"log/slog"

	"github.com/hupe1980/sonarscan/internal/mmap"
	"github.com/hupe1980/sonarscan/record"
)

// AccessPattern hints how a mapped capture will be read.
type AccessPattern = mmap.AccessPattern

const (
	AccessDefault    = mmap.AccessDefault
	AccessSequential = mmap.AccessSequential
	AccessRandom     = mmap.AccessRandom
	AccessWillNeed   = mmap.AccessWillNeed
)

type options struct {
	workers          int
	alignment        int
	policy           record.Policy
	cacheCapacity    int
	cacheMemoryLimit int64
	strategy         string
	access           AccessPattern
	metricsCollector MetricsCollector
	logger           *Logger
}

// Option configures Open behavior.
type Option func(*options)

func applyOptions(opts []Option) options {
	o := options{
		policy:           record.DefaultPolicy,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithWorkers sets the number of ranges scanned concurrently.
// Values <= 0 select runtime.GOMAXPROCS(0).
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithAlignment sets the stride, relative to each range start, at which
// record decoding is attempted. Defaults to 4.
func WithAlignment(n int) Option {
	return func(o *options) {
		o.alignment = n
	}
}

// WithDecoderPolicy replaces the record admission gate.
//
// Example accepting only the first four channels:
//
//	s, _ := sonarscan.Open(path, sonarscan.WithDecoderPolicy(record.Policy{
//	    MaxChannelID:   3,
//	    MaxSampleCount: record.MaxSampleCount,
//	}))
func WithDecoderPolicy(p record.Policy) Option {
	return func(o *options) {
		o.policy = p
	}
}

// WithCacheCapacity sets the maximum number of cached small reads.
// Defaults to 10,000.
func WithCacheCapacity(n int) Option {
	return func(o *options) {
		o.cacheCapacity = n
	}
}

// WithCacheMemoryLimit caps the cache's memory budget in bytes. Each entry
// is accounted at 64 bytes. 0 means no limit beyond the capacity.
func WithCacheMemoryLimit(bytes int64) Option {
	return func(o *options) {
		o.cacheMemoryLimit = bytes
	}
}

// WithSearchStrategy forces the pattern search strategy: "scalar",
// "lanes-16", "lanes-32", "lanes-64" or an ISA name such as "avx2".
// The default follows CPU detection and the SONARSCAN_SIMD variable.
func WithSearchStrategy(name string) Option {
	return func(o *options) {
		o.strategy = name
	}
}

// WithAccessPattern advises the kernel how the capture will be read.
func WithAccessPattern(p AccessPattern) Option {
	return func(o *options) {
		o.access = p
	}
}

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &sonarscan.BasicMetricsCollector{}
//	s, _ := sonarscan.Open(path, sonarscan.WithMetricsCollector(metrics))
//	// ... use s ...
//	stats := metrics.GetStats()
//	fmt.Printf("Scans: %d, records: %d\n", stats.ScanCount, stats.ScanRecords)
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
