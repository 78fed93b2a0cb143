package simd

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestISA_StringRoundTrip(t *testing.T) {
	for _, isa := range []ISA{Generic, SSE2, NEON, AVX2, AVX512} {
		got, ok := ParseISA(isa.String())
		assert.True(t, ok, isa.String())
		assert.Equal(t, isa, got)
	}

	_, ok := ParseISA("mmx")
	assert.False(t, ok)
	assert.Equal(t, "unknown", ISA(99).String())
}

func TestISA_LaneWidth(t *testing.T) {
	assert.Equal(t, 0, Generic.LaneWidth())
	assert.Equal(t, 16, SSE2.LaneWidth())
	assert.Equal(t, 16, NEON.LaneWidth())
	assert.Equal(t, 32, AVX2.LaneWidth())
	assert.Equal(t, 64, AVX512.LaneWidth())
}

func TestActiveISA_IsAvailable(t *testing.T) {
	assert.True(t, IsAvailable(ActiveISA()))
	assert.True(t, IsAvailable(Generic))

	if runtime.GOARCH != "amd64" && runtime.GOARCH != "arm64" && !IsOverridden() {
		assert.Equal(t, Generic, ActiveISA())
	}
}

func TestChoose(t *testing.T) {
	x86 := features{sse2: true, avx2: true}
	arm := features{asimd: true}

	tests := []struct {
		name     string
		f        features
		override string
		want     ISA
		forced   bool
	}{
		{"WidestX86", x86, "", AVX2, false},
		{"AllX86", features{sse2: true, avx2: true, avx512bw: true}, "", AVX512, false},
		{"ARM", arm, "", NEON, false},
		{"NoLanes", features{}, "", Generic, false},
		{"ForceNarrower", x86, "sse2", SSE2, true},
		{"ForceGeneric", x86, "GENERIC", Generic, true},
		{"ForceScalarAlias", arm, "scalar", Generic, true},
		{"UnavailableIgnored", x86, "avx512", AVX2, false},
		{"WrongArchIgnored", arm, "avx2", NEON, false},
		{"GarbageIgnored", x86, "mmx", AVX2, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, forced := choose(tt.f, tt.override)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.forced, forced)
		})
	}
}
