package pattern

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/sonarscan/internal/simd"
	"github.com/hupe1980/sonarscan/testutil"
)

func allFinders() []Finder {
	return []Finder{Scalar(), Lanes(16), Lanes(32), Lanes(64)}
}

// naive is the reference: every offset where the needle matches.
func naive(haystack, needle []byte) []int {
	var out []int
	if len(needle) == 0 {
		return out
	}
	for i := 0; i+len(needle) <= len(haystack); i++ {
		if bytes.Equal(haystack[i:i+len(needle)], needle) {
			out = append(out, i)
		}
	}
	return out
}

func TestFind_Basic(t *testing.T) {
	haystack := []byte("abcabcabxabc--abc")
	for _, f := range allFinders() {
		t.Run(f.Name(), func(t *testing.T) {
			got := f.AppendFind(nil, haystack, []byte("abc"), 0)
			assert.Equal(t, []int{0, 3, 9, 14}, got)
		})
	}
}

func TestFind_EmptyAndOversizedNeedle(t *testing.T) {
	haystack := bytes.Repeat([]byte{0xAA}, 100)
	for _, f := range allFinders() {
		t.Run(f.Name(), func(t *testing.T) {
			assert.Empty(t, f.AppendFind(nil, haystack, nil, 0))
			assert.Empty(t, f.AppendFind(nil, haystack, []byte{}, 0))
			assert.Empty(t, f.AppendFind(nil, haystack, make([]byte, 101), 0))
			assert.Empty(t, f.AppendFind(nil, nil, []byte{1}, 0))
		})
	}
	assert.Empty(t, Find(haystack, nil))
}

func TestFind_OverlappingMatches(t *testing.T) {
	haystack := bytes.Repeat([]byte{0x55}, 70)
	want := naive(haystack, []byte{0x55, 0x55})
	require.Len(t, want, 69)
	for _, f := range allFinders() {
		assert.Equal(t, want, f.AppendFind(nil, haystack, []byte{0x55, 0x55}, 0), f.Name())
	}
}

func TestFind_MatchStraddlesLaneBoundary(t *testing.T) {
	needle := []byte{0xDE, 0xAD, 0xBE, 0xEF}
	for _, f := range allFinders() {
		t.Run(f.Name(), func(t *testing.T) {
			for _, at := range []int{0, 13, 14, 15, 30, 31, 62, 63, 124, 125} {
				haystack := make([]byte, 129)
				copy(haystack[at:], needle)
				assert.Equal(t, []int{at}, f.AppendFind(nil, haystack, needle, 0), "at=%d", at)
			}
		})
	}
}

func TestFind_MatchInTail(t *testing.T) {
	needle := []byte{0x01, 0x02}
	haystack := make([]byte, 16+7)
	copy(haystack[20:], needle)
	for _, f := range allFinders() {
		assert.Equal(t, []int{20}, f.AppendFind(nil, haystack, needle, 0), f.Name())
	}
}

func TestFind_AbsoluteOffsets(t *testing.T) {
	haystack := []byte("xxMAGICxxxxMAGIC")
	for _, f := range allFinders() {
		got := f.AppendFind([]int{-1}, haystack, []byte("MAGIC"), 1000)
		assert.Equal(t, []int{-1, 1002, 1011}, got, f.Name())
	}
}

func TestFind_SingleByteNeedleEveryValue(t *testing.T) {
	haystack := make([]byte, 256*3)
	for i := range haystack {
		haystack[i] = byte(i)
	}
	for v := 0; v < 256; v++ {
		want := []int{v, v + 256, v + 512}
		for _, f := range allFinders() {
			assert.Equal(t, want, f.AppendFind(nil, haystack, []byte{byte(v)}, 0), "%s v=%d", f.Name(), v)
		}
	}
}

// The lane strategies must agree with the scalar path bit-for-bit.
func TestFind_StrategiesAgree(t *testing.T) {
	rng := testutil.NewRNG(4711)
	for iter := 0; iter < 300; iter++ {
		size := rng.Intn(600)
		haystack := make([]byte, size)
		// Small alphabet so first-byte candidates and partial matches are frequent.
		for i := range haystack {
			haystack[i] = byte(rng.Intn(4))
		}
		needle := make([]byte, 1+rng.Intn(6))
		for i := range needle {
			needle[i] = byte(rng.Intn(4))
		}

		want := naive(haystack, needle)
		scalar := Scalar().AppendFind(nil, haystack, needle, 0)
		require.Equal(t, want, scalar)

		for _, f := range allFinders()[1:] {
			require.Equal(t, scalar, f.AppendFind(nil, haystack, needle, 0), "%s size=%d needle=%v", f.Name(), size, needle)
		}
	}
}

func TestFind_StrictlyAscending(t *testing.T) {
	rng := testutil.NewRNG(42)
	haystack := make([]byte, 4096)
	for i := range haystack {
		haystack[i] = byte(rng.Intn(3))
	}
	needle := []byte{1, 2}
	for _, f := range allFinders() {
		got := f.AppendFind(nil, haystack, needle, 0)
		for i := 1; i < len(got); i++ {
			require.Less(t, got[i-1], got[i], f.Name())
		}
		for _, o := range got {
			require.Equal(t, needle, haystack[o:o+len(needle)])
		}
	}
}

func TestLaneMask(t *testing.T) {
	lane := make([]byte, 64)
	lane[0], lane[7], lane[8], lane[33], lane[63] = 9, 9, 9, 9, 9
	lane[1] = 0x89 // same low bits, different high bit
	mask := laneMask(lane, uint64(9)*ones)
	assert.Equal(t, uint64(1)<<0|1<<7|1<<8|1<<33|1<<63, mask)

	assert.Equal(t, uint64(0), laneMask(make([]byte, 16), uint64(1)*ones))
	assert.Equal(t, uint64(0xFFFF), laneMask(make([]byte, 16), 0))
}

func TestZeroBytes_NoFalsePositives(t *testing.T) {
	// 0x0100 contains a zero byte followed by 0x01, which trips the
	// borrow-based zero detector.
	x := uint64(0x0100)
	assert.Equal(t, uint64(0x8080808080800080), zeroBytes(x))
}

func TestParseFinder(t *testing.T) {
	for name, width := range map[string]int{
		"scalar": 0, "generic": 0, "lanes-16": 16, "sse2": 16, "neon": 16,
		"lanes-32": 32, "avx2": 32, "lanes-64": 64, "avx512": 64,
	} {
		f, err := ParseFinder(name)
		require.NoError(t, err, name)
		assert.Equal(t, width, f.LaneWidth(), name)
	}

	f, err := ParseFinder("")
	require.NoError(t, err)
	assert.Equal(t, Default(), f)

	_, err = ParseFinder("quantum")
	assert.Error(t, err)
}

func TestDefault_MatchesActiveISA(t *testing.T) {
	assert.Equal(t, simd.ActiveISA().LaneWidth(), Default().LaneWidth())
	assert.Equal(t, ForISA(simd.Generic), Scalar())
	assert.Panics(t, func() { Lanes(24) })
}
