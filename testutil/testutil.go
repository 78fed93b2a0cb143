package testutil

import (
	"encoding/binary"
	"math/rand/v2"
	"sync"
)

// RNG is a seeded, goroutine-safe source for reproducible fixtures.
type RNG struct {
	mu  sync.Mutex
	src *rand.ChaCha8
	r   *rand.Rand
}

// NewRNG returns a generator whose whole output is fixed by seed.
func NewRNG(seed uint64) *RNG {
	var key [32]byte
	binary.LittleEndian.PutUint64(key[:], seed)
	src := rand.NewChaCha8(key)
	return &RNG{src: src, r: rand.New(src)}
}

// Intn returns a value in [0, n).
func (g *RNG) Intn(n int) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.r.IntN(n)
}

// FillBytes overwrites dst with random bytes.
func (g *RNG) FillBytes(dst []byte) {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, _ = g.src.Read(dst)
}

// FillCoordinates fills lats from [-80, 80) and lons from [-180, 180).
func (g *RNG) FillCoordinates(lats, lons []float64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for i := range lats {
		lats[i] = g.r.Float64()*160 - 80
	}
	for i := range lons {
		lons[i] = g.r.Float64()*360 - 180
	}
}
