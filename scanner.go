package sonarscan

import (
	"context"
	"sync"
	"time"

	"github.com/hupe1980/sonarscan/capture"
	"github.com/hupe1980/sonarscan/geo"
	"github.com/hupe1980/sonarscan/internal/cache"
	"github.com/hupe1980/sonarscan/internal/mmap"
	"github.com/hupe1980/sonarscan/internal/pattern"
	"github.com/hupe1980/sonarscan/internal/resource"
	"github.com/hupe1980/sonarscan/internal/scan"
	"github.com/hupe1980/sonarscan/record"
)

// Range is a half-open byte range [Start, End) of a capture.
type Range = scan.Range

// Scanner searches and decodes one memory-mapped capture.
type Scanner struct {
	mu     sync.RWMutex // write-locked only by Close
	closed bool

	m        *mmap.Mapping
	finder   pattern.Finder
	dispatch *scan.Dispatcher
	cache    *cache.ReadCache
	decoder  record.Decoder

	logger  *Logger
	metrics MetricsCollector
}

// Open maps the capture at path read-only.
func Open(path string, opts ...Option) (*Scanner, error) {
	o := applyOptions(opts)
	ctx := context.Background()

	finder, err := pattern.ParseFinder(o.strategy)
	if err != nil {
		return nil, err
	}

	m, err := mmap.Open(path)
	if err != nil {
		o.logger.LogOpen(ctx, path, 0, err)
		return nil, &OpenError{Path: path, cause: err}
	}

	if o.access != AccessDefault {
		if err := m.Advise(o.access); err != nil {
			o.logger.WarnContext(ctx, "madvise failed", "path", path, "pattern", o.access.String(), "error", err)
		}
	}

	var rc *resource.Controller
	if o.cacheMemoryLimit > 0 {
		rc = resource.NewController(resource.Config{MemoryLimitBytes: o.cacheMemoryLimit})
	}

	dec := record.NewDecoder(o.policy)
	s := &Scanner{
		m:        m,
		finder:   finder,
		dispatch: scan.NewDispatcher(o.workers, scan.NewChunk(dec, o.alignment)),
		cache:    cache.NewReadCache(o.cacheCapacity, rc),
		decoder:  dec,
		logger:   o.logger.WithPath(path),
		metrics:  o.metricsCollector,
	}
	o.logger.LogOpen(ctx, path, m.Len(), nil)
	return s, nil
}

// OpenCapture spools the named capture from store through sp and maps the
// local copy.
func OpenCapture(ctx context.Context, sp *capture.Spooler, store capture.Store, name string, opts ...Option) (*Scanner, error) {
	o := applyOptions(opts)

	path, err := sp.Fetch(ctx, store, name)
	o.logger.LogFetch(ctx, name, path, err)
	if err != nil {
		return nil, &OpenError{Path: name, cause: err}
	}
	return Open(path, opts...)
}

// Path returns the mapped file's path.
func (s *Scanner) Path() string {
	return s.m.Path()
}

// Len returns the capture size in bytes. It is 0 after Close.
func (s *Scanner) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return 0
	}
	return s.m.Len()
}

// Policy returns the record admission gate in use.
func (s *Scanner) Policy() record.Policy {
	return s.decoder.Policy()
}

// DecodeAt decodes the record starting at offset. It reports false if
// fewer than record.Size bytes remain or the gate rejects the window.
func (s *Scanner) DecodeAt(offset int) (record.Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed || offset < 0 {
		return record.Record{}, false
	}

	window, err := s.m.Slice(offset, offset+record.Size)
	if err != nil {
		return record.Record{}, false
	}
	return s.decoder.TryDecode(window, uint64(offset))
}

// Find returns the absolute offsets of every occurrence of needle that lies
// entirely inside [start, end), in ascending order. end is clamped to Len.
// An empty needle yields no matches.
func (s *Scanner) Find(needle []byte, start, end int) ([]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, ErrClosed
	}

	t0 := time.Now()
	haystack, err := s.m.Slice(start, end)
	if err != nil {
		err = translateError(err)
		s.logger.LogFind(context.Background(), len(needle), 0, 0, err)
		return nil, err
	}

	offsets := s.finder.AppendFind(nil, haystack, needle, start)

	s.metrics.RecordFind(len(haystack), len(offsets), time.Since(t0))
	s.logger.LogFind(context.Background(), len(needle), len(haystack), len(offsets), nil)
	return offsets, nil
}

// ScanRanges decodes the records starting inside each range and returns
// one slice per range, in the order of ranges. Invalid ranges produce an
// empty slice. Records may extend past their range's end: each range is
// decoded from a window running up to record.Size-1 bytes beyond End, so
// results differ from decoding the bytes [Start, End) alone. Ranges are
// scanned independently, so neighbouring ranges may report records that
// overlap; use ScanAll for a whole-file view.
//
// ctx is checked before each range starts. If it is done, ranges not yet
// started stay empty and the context error is returned with the partial
// result.
func (s *Scanner) ScanRanges(ctx context.Context, ranges []Range) ([][]record.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, ErrClosed
	}
	return s.scanRanges(ctx, ranges)
}

func (s *Scanner) scanRanges(ctx context.Context, ranges []Range) ([][]record.Record, error) {
	t0 := time.Now()
	results, err := s.dispatch.ScanMany(ctx, s.m.Bytes(), ranges)

	var n int
	for _, rs := range results {
		n += len(rs)
	}
	s.metrics.RecordScan(len(ranges), n, time.Since(t0), err)
	s.logger.LogScan(ctx, len(ranges), n, err)
	return results, err
}

// SplitRanges cuts the capture into consecutive ranges of chunkSize bytes.
func (s *Scanner) SplitRanges(chunkSize int) ([]Range, error) {
	if chunkSize <= 0 {
		return nil, ErrInvalidChunkSize
	}
	return scan.Split(s.Len(), chunkSize), nil
}

// ScanAll scans the whole capture in chunks of chunkSize bytes and returns
// the records in file order. A record crossing a chunk boundary is reported
// once; the next chunk resumes after it, as a single sequential scan would.
func (s *Scanner) ScanAll(ctx context.Context, chunkSize int) ([]record.Record, error) {
	if chunkSize <= 0 {
		return nil, ErrInvalidChunkSize
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, ErrClosed
	}

	data := s.m.Bytes()
	ranges := scan.Split(len(data), chunkSize)
	results, err := s.scanRanges(ctx, ranges)
	return s.dispatch.Stitch(data, ranges, results), err
}

// ReadCached returns size bytes at offset. Reads of at most 64 bytes are
// served from a bounded cache after the first access. The returned slice
// is owned by the caller.
func (s *Scanner) ReadCached(offset, size int) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, ErrClosed
	}

	t0 := time.Now()
	b, err := s.cache.GetOrRead(s.m, offset, size)
	err = translateError(err)
	s.metrics.RecordCachedRead(size, time.Since(t0), err)
	return b, err
}

// Transform shifts navigation fixes by a body-frame offset of (dx, dy)
// metres rotated by heading radians. See geo.RotateAndOffset.
func (s *Scanner) Transform(lats, lons []float64, heading, dx, dy float64) ([]float64, []float64, error) {
	t0 := time.Now()
	outLat, outLon, err := geo.RotateAndOffset(lats, lons, heading, dx, dy)
	err = translateError(err)
	s.metrics.RecordTransform(len(lats), time.Since(t0), err)
	return outLat, outLon, err
}

// Close unmaps the capture and drops cached reads. It waits for running
// calls to finish. Calling Close more than once is a no-op.
func (s *Scanner) Close() error {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	s.cache.Clear()

	err := s.m.Close()
	s.logger.Debug("capture closed", "error", err)
	return err
}
