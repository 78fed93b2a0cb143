package sonarscan

import "github.com/hupe1980/sonarscan/internal/simd"

// Stats is a point-in-time summary of a Scanner.
type Stats struct {
	CacheEntries  int
	CacheCapacity int
	CacheHits     int64
	CacheMisses   int64

	FileSize     int
	FileSizeMB   float64
	MemoryMapped bool

	ISA       string
	LaneWidth int
	Strategy  string
	Workers   int
}

// Stats returns cache, file and search engine figures.
func (s *Scanner) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	hits, misses := s.cache.Stats()
	st := Stats{
		CacheEntries:  s.cache.Len(),
		CacheCapacity: s.cache.Capacity(),
		CacheHits:     hits,
		CacheMisses:   misses,
		MemoryMapped:  !s.closed,
		ISA:           simd.ActiveISA().String(),
		LaneWidth:     s.finder.LaneWidth(),
		Strategy:      s.finder.Name(),
		Workers:       s.dispatch.Workers(),
	}
	if !s.closed {
		st.FileSize = s.m.Len()
		st.FileSizeMB = float64(st.FileSize) / (1024 * 1024)
	}
	return st
}
