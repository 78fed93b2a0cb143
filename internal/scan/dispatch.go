package scan

import (
	"context"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/sonarscan/record"
)

// Range is a half-open byte range [Start, End) of the scanned data.
type Range struct {
	Start int
	End   int
}

// Resolve clamps r to a buffer of length n. ok is false when r selects
// nothing: Start < 0, Start >= n or Start >= End.
func (r Range) Resolve(n int) (start, end int, ok bool) {
	if r.Start < 0 || r.Start >= n || r.Start >= r.End {
		return 0, 0, false
	}
	return r.Start, min(r.End, n), true
}

// Split cuts [0, n) into consecutive ranges of at most size bytes.
func Split(n, size int) []Range {
	if n <= 0 || size <= 0 {
		return nil
	}
	out := make([]Range, 0, (n+size-1)/size)
	for start := 0; start < n; start += size {
		out = append(out, Range{Start: start, End: min(start+size, n)})
	}
	return out
}

// Dispatcher scans many ranges of one buffer concurrently.
type Dispatcher struct {
	workers int
	chunk   Chunk
}

// NewDispatcher returns a dispatcher running at most workers scans at once.
// workers <= 0 selects runtime.GOMAXPROCS(0).
func NewDispatcher(workers int, chunk Chunk) *Dispatcher {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Dispatcher{workers: workers, chunk: chunk}
}

// Workers returns the pool size.
func (d *Dispatcher) Workers() int {
	return d.workers
}

// ScanMany returns one record slice per range, in the order of ranges.
// Invalid ranges yield an empty slot without affecting the others.
//
// ctx is only consulted before a range starts; a scan already running is
// never interrupted. If any range was skipped because ctx was done, its slot
// stays empty and ctx.Err() is returned alongside the partial results.
func (d *Dispatcher) ScanMany(ctx context.Context, data []byte, ranges []Range) ([][]record.Record, error) {
	results := make([][]record.Record, len(ranges))

	var skipped atomic.Bool
	g := new(errgroup.Group)
	g.SetLimit(d.workers)

	for i, r := range ranges {
		if ctx.Err() != nil {
			skipped.Store(true)
			break
		}
		g.Go(func() error {
			if ctx.Err() != nil {
				skipped.Store(true)
				return nil
			}
			results[i] = d.scanRange(data, r)
			return nil
		})
	}
	_ = g.Wait()

	if skipped.Load() {
		return results, ctx.Err()
	}
	return results, nil
}

func (d *Dispatcher) scanRange(data []byte, r Range) []record.Record {
	start, end, ok := r.Resolve(len(data))
	if !ok {
		return nil
	}
	// Let records that begin before end run past it.
	windowEnd := min(end+record.Size-1, len(data))
	return d.chunk.ScanLimit(data[start:windowEnd], uint64(start), end-start)
}
