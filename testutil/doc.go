// Package testutil provides testing utilities for sonarscan.
//
// This package is intended for use in tests and benchmarks only.
//
// # Random Data
//
//	rng := testutil.NewRNG(seed)
//	buf := make([]byte, 1<<20)
//	rng.FillBytes(buf)
//
// # Capture Fixtures
//
//	fx := testutil.NewFixture(1 << 16)
//	for i, ofs := range rng.Layout(fx.Len(), 100) {
//	    fx.Place(testutil.SampleRecord(ofs, uint32(i)))
//	}
//	path := fx.WriteFile(t, "line.bin")
package testutil
