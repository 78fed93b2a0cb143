// Package simd detects the wide-lane capability of the host CPU.
//
// The pattern search engine compares the first needle byte against a whole
// lane of haystack bytes per step. This package decides how wide that lane
// may be on the running machine:
//
//   - x86-64: AVX-512BW (64 bytes), AVX2 (32 bytes), SSE2 (16 bytes)
//   - ARM64: NEON/ASIMD (16 bytes)
//   - everything else: Generic, meaning no lanes and a pure scalar scan
//
// Detection runs once at package init through golang.org/x/sys/cpu. Set
// SONARSCAN_SIMD=generic|sse2|neon|avx2|avx512 to force a narrower (or the
// same) instruction set; unavailable choices are ignored.
package simd
