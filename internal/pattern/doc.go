// Package pattern finds every occurrence of a byte sequence in a byte range.
//
// Two interchangeable strategies implement Finder:
//
//   - Scalar: checks the first needle byte at every position and verifies
//     the rest with a direct comparison.
//   - Lanes: broadcasts the first needle byte across a lane of 16, 32 or 64
//     bytes, derives a candidate bitmask for the whole lane in a handful of
//     word operations, and verifies only the candidates. Bytes that do not
//     fill a lane fall back to the scalar routine.
//
// Default selects the strategy from the CPU capability detected by
// internal/simd. Lane width changes throughput only; both strategies return
// the same offsets in the same order for every input.
package pattern
