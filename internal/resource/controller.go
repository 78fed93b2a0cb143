package resource

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// Config sets the process wide limits. Zero values mean unlimited, except
// MaxConcurrentFetches which falls back to 1.
type Config struct {
	MemoryLimitBytes     int64
	MaxConcurrentFetches int64
	IOLimitBytesPerSec   int64
}

// Controller hands out cache memory, fetch slots and spool bandwidth.
// A nil *Controller grants everything.
type Controller struct {
	limit   int64
	mem     *semaphore.Weighted
	used    atomic.Int64
	fetches *semaphore.Weighted
	io      *rate.Limiter
}

func NewController(cfg Config) *Controller {
	c := &Controller{
		limit:   cfg.MemoryLimitBytes,
		fetches: semaphore.NewWeighted(max(cfg.MaxConcurrentFetches, 1)),
	}
	if cfg.MemoryLimitBytes > 0 {
		c.mem = semaphore.NewWeighted(cfg.MemoryLimitBytes)
	}
	if cfg.IOLimitBytesPerSec > 0 {
		c.io = rate.NewLimiter(rate.Limit(cfg.IOLimitBytesPerSec), int(cfg.IOLimitBytesPerSec))
	}
	return c
}

// TryAcquireMemory reserves n bytes of cache memory without blocking.
func (c *Controller) TryAcquireMemory(n int64) bool {
	if c == nil || n <= 0 {
		return true
	}
	if c.mem != nil && !c.mem.TryAcquire(n) {
		return false
	}
	c.used.Add(n)
	return true
}

// ReleaseMemory returns n bytes reserved by TryAcquireMemory.
func (c *Controller) ReleaseMemory(n int64) {
	if c == nil || n <= 0 {
		return
	}
	if c.mem != nil {
		c.mem.Release(n)
	}
	c.used.Add(-n)
}

// MemoryUsage reports the bytes currently reserved.
func (c *Controller) MemoryUsage() int64 {
	if c == nil {
		return 0
	}
	return c.used.Load()
}

// MemoryLimit reports the configured limit, 0 when unlimited.
func (c *Controller) MemoryLimit() int64 {
	if c == nil {
		return 0
	}
	return c.limit
}

// AcquireFetch blocks until a fetch slot is free or ctx is done.
func (c *Controller) AcquireFetch(ctx context.Context) error {
	if c == nil {
		return nil
	}
	return c.fetches.Acquire(ctx, 1)
}

func (c *Controller) ReleaseFetch() {
	if c == nil {
		return
	}
	c.fetches.Release(1)
}

// waitIO blocks until up to n bytes of bandwidth are available and returns
// how many were granted. Grants never exceed the limiter burst.
func (c *Controller) waitIO(ctx context.Context, n int) (int, error) {
	if c == nil || c.io == nil {
		return n, nil
	}
	n = min(n, c.io.Burst())
	if err := c.io.WaitN(ctx, n); err != nil {
		return 0, err
	}
	return n, nil
}
