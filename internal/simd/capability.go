package simd

import (
	"os"
	"strings"
)

// EnvOverride names the environment variable that forces an ISA.
const EnvOverride = "SONARSCAN_SIMD"

// ISA represents a SIMD instruction set architecture.
type ISA uint8

const (
	// Generic represents pure Go scalar scanning (no lanes).
	Generic ISA = iota
	// SSE2 represents x86-64 SSE2 (128-bit lanes).
	SSE2
	// NEON represents ARM64 NEON (128-bit lanes, ASIMD).
	NEON
	// AVX2 represents x86-64 AVX2 (256-bit lanes).
	AVX2
	// AVX512 represents x86-64 AVX-512 with byte/word support (512-bit lanes).
	AVX512

	numISA
)

// features is the set of CPU flags relevant to lane scanning.
type features struct {
	sse2, asimd, avx2, avx512bw bool
}

type isaInfo struct {
	name  string
	width int
	has   func(features) bool
}

var isas = [numISA]isaInfo{
	Generic: {"generic", 0, func(features) bool { return true }},
	SSE2:    {"sse2", 16, func(f features) bool { return f.sse2 }},
	NEON:    {"neon", 16, func(f features) bool { return f.asimd }},
	AVX2:    {"avx2", 32, func(f features) bool { return f.avx2 }},
	AVX512:  {"avx512", 64, func(f features) bool { return f.avx512bw }},
}

// preference lists ISAs from widest to narrowest.
var preference = []ISA{AVX512, AVX2, SSE2, NEON}

// String returns the string representation of an ISA.
func (i ISA) String() string {
	if i >= numISA {
		return "unknown"
	}
	return isas[i].name
}

// LaneWidth returns the number of bytes compared per step, or 0 for Generic.
func (i ISA) LaneWidth() int {
	if i >= numISA {
		return 0
	}
	return isas[i].width
}

// ParseISA parses a string into an ISA value. "scalar" is accepted as an
// alias for Generic.
func ParseISA(s string) (ISA, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "scalar" {
		return Generic, true
	}
	for i, info := range isas {
		if info.name == s {
			return ISA(i), true
		}
	}
	return Generic, false
}

var (
	cpuFeatures features
	activeISA   ISA
	hasOverride bool
)

func init() {
	cpuFeatures = detect()
	activeISA, hasOverride = choose(cpuFeatures, os.Getenv(EnvOverride))
}

// choose picks the widest available ISA unless override names an available
// one.
func choose(f features, override string) (ISA, bool) {
	if override != "" {
		if isa, ok := ParseISA(override); ok && isas[isa].has(f) {
			return isa, true
		}
	}
	for _, isa := range preference {
		if isas[isa].has(f) {
			return isa, false
		}
	}
	return Generic, false
}

// IsAvailable reports whether an ISA is supported on this CPU.
func IsAvailable(isa ISA) bool {
	return isa < numISA && isas[isa].has(cpuFeatures)
}

// ActiveISA returns the currently active ISA.
func ActiveISA() ISA {
	return activeISA
}

// IsOverridden returns true if SONARSCAN_SIMD selected the active ISA.
func IsOverridden() bool {
	return hasOverride
}
