package cache

import (
	"errors"
	"sync"
	"sync/atomic"

	"github.com/hupe1980/sonarscan/internal/resource"
)

const (
	// MaxEntrySize is the largest read that is cached.
	MaxEntrySize = 64

	// DefaultCapacity is the default maximum number of entries.
	DefaultCapacity = 10_000

	// offsets at or above this bound do not fit in a key.
	maxKeyOffset = 1 << 56
)

// ErrOutOfBounds is returned for reads outside the source.
var ErrOutOfBounds = errors.New("cache: read out of bounds")

// Source is the byte range provider behind a ReadCache.
type Source interface {
	Len() int
	Slice(start, end int) ([]byte, error)
}

type entry struct {
	n   uint8
	buf [MaxEntrySize]byte
}

// ReadCache caches small reads from a Source.
type ReadCache struct {
	mu       sync.RWMutex
	entries  map[uint64]*entry
	capacity int
	rc       *resource.Controller

	hits   atomic.Int64
	misses atomic.Int64
}

// NewReadCache creates a cache holding at most capacity entries.
// capacity <= 0 selects DefaultCapacity. If rc is not nil, every entry is
// accounted against its memory budget and inserts stop when the budget is
// exhausted.
func NewReadCache(capacity int, rc *resource.Controller) *ReadCache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &ReadCache{
		entries:  make(map[uint64]*entry),
		capacity: capacity,
		rc:       rc,
	}
}

func key(offset, size int) uint64 {
	return uint64(offset)<<8 | uint64(size)
}

// GetOrRead returns size bytes at offset. Cached reads are served without
// touching src. The returned slice is always a private copy.
func (c *ReadCache) GetOrRead(src Source, offset, size int) ([]byte, error) {
	if offset < 0 || size < 0 || offset > src.Len()-size {
		return nil, ErrOutOfBounds
	}

	cacheable := size <= MaxEntrySize && uint64(offset) < maxKeyOffset
	k := key(offset, size)

	if cacheable {
		c.mu.RLock()
		e, ok := c.entries[k]
		if ok {
			out := make([]byte, e.n)
			copy(out, e.buf[:e.n])
			c.mu.RUnlock()
			c.hits.Add(1)
			return out, nil
		}
		c.mu.RUnlock()
	}
	c.misses.Add(1)

	b, err := src.Slice(offset, offset+size)
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(b))
	copy(out, b)

	if cacheable && len(out) == size {
		c.insert(k, out)
	}
	return out, nil
}

func (c *ReadCache) insert(k uint64, b []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[k]; ok || len(c.entries) >= c.capacity {
		return
	}
	if !c.rc.TryAcquireMemory(MaxEntrySize) {
		return
	}
	e := &entry{n: uint8(len(b))}
	copy(e.buf[:], b)
	c.entries[k] = e
}

// Len returns the number of cached entries.
func (c *ReadCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Capacity returns the maximum number of entries.
func (c *ReadCache) Capacity() int {
	return c.capacity
}

// Stats returns hit and miss counts.
func (c *ReadCache) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

// Clear drops every entry. Counters are kept.
func (c *ReadCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.rc.ReleaseMemory(int64(len(c.entries)) * MaxEntrySize)
	c.entries = make(map[uint64]*entry)
}
