package testutil

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/hupe1980/sonarscan/record"
)

// Filler is the byte used between records. Its channel field reads as
// 0xFFFFFFFF, which no decoder policy admits.
const Filler = 0xFF

// SampleRecord returns a plausible record at ofs. Its field values are
// chosen so that no misaligned read inside the record passes the default
// gate, which keeps scans over fixtures exact.
func SampleRecord(ofs int, seq uint32) record.Record {
	return record.Record{
		Offset:      uint64(ofs),
		ChannelID:   seq % (record.MaxChannelID + 1),
		Sequence:    1000 + seq,
		TimestampMS: 1_700_000_000_000 + uint64(seq)*100,
		Latitude:    59.9,
		Longitude:   10.7,
		DepthM:      14.3,
		SampleCount: 1024,
		SonarOffset: 1<<40 | 0x12345,
		SonarSize:   4096,
		BeamAngle:   30,
		Pitch:       -1.25,
		Roll:        0.5,
		Heave:       0.12,
		TxOffset:    0.3,
		RxOffset:    -0.3,
		ColorID:     300,
	}
}

// Layout returns up to n ascending record offsets inside a capture of size
// bytes. Offsets are 4-aligned, start at 64 or later and leave at least 4
// filler bytes between records.
func (r *RNG) Layout(size, n int) []int {
	var out []int
	ofs := 64
	for len(out) < n {
		ofs += 4 * (1 + r.Intn(32))
		if ofs+record.Size > size {
			break
		}
		out = append(out, ofs)
		ofs += record.Size
	}
	return out
}

// Fixture builds a synthetic capture in memory.
type Fixture struct {
	data    []byte
	records []record.Record
}

// NewFixture returns a capture of size filler bytes.
func NewFixture(size int) *Fixture {
	return &Fixture{data: bytes.Repeat([]byte{Filler}, size)}
}

// Len returns the capture size.
func (f *Fixture) Len() int {
	return len(f.data)
}

// Place encodes r at r.Offset.
func (f *Fixture) Place(r record.Record) *Fixture {
	buf := record.Encode(r)
	copy(f.data[r.Offset:], buf[:])
	f.records = append(f.records, r)
	return f
}

// PutBytes copies b to ofs, e.g. to plant a search pattern.
func (f *Fixture) PutBytes(ofs int, b []byte) *Fixture {
	copy(f.data[ofs:], b)
	return f
}

// Bytes returns the capture content.
func (f *Fixture) Bytes() []byte {
	return f.data
}

// Records returns the placed records in placement order.
func (f *Fixture) Records() []record.Record {
	return f.records
}

// WriteFile writes the capture into a test temp dir and returns its path.
func (f *Fixture) WriteFile(tb testing.TB, name string) string {
	tb.Helper()
	path := filepath.Join(tb.TempDir(), name)
	if err := os.WriteFile(path, f.data, 0o644); err != nil {
		tb.Fatalf("write fixture: %v", err)
	}
	return path
}
