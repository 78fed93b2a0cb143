package scan

import (
	"bytes"
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/sonarscan/record"
)

// rec builds a record whose own bytes never pass the default gate when read
// from a misaligned start, so fixtures decode exactly the embedded records.
func rec(ofs int, seq uint32) record.Record {
	return record.Record{
		Offset:      uint64(ofs),
		ChannelID:   2,
		Sequence:    1000 + seq,
		TimestampMS: 1_700_000_000_000 + uint64(seq),
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

// capture returns n bytes of 0xFF filler with the given records embedded at
// their Offset.
func capture(n int, recs ...record.Record) []byte {
	data := bytes.Repeat([]byte{0xFF}, n)
	for _, r := range recs {
		buf := record.Encode(r)
		copy(data[r.Offset:], buf[:])
	}
	return data
}

func TestChunk_Scan(t *testing.T) {
	want := []record.Record{rec(0, 1), rec(88, 2), rec(200, 3)}
	data := capture(400, want...)

	got := Chunk{Decoder: record.DefaultDecoder}.Scan(data, 0)
	assert.Equal(t, want, got)
}

func TestChunk_Scan_Base(t *testing.T) {
	r := rec(8, 1)
	data := capture(128, r)

	got := NewChunk(record.DefaultDecoder, 4).Scan(data, 10_000)
	require.Len(t, got, 1)
	assert.Equal(t, uint64(10_008), got[0].Offset)
}

func TestChunk_Scan_SkipsUnaligned(t *testing.T) {
	data := capture(256, rec(6, 1))

	assert.Empty(t, NewChunk(record.DefaultDecoder, 4).Scan(data, 0))
	assert.Len(t, NewChunk(record.DefaultDecoder, 2).Scan(data, 0), 1)
	assert.Len(t, NewChunk(record.DefaultDecoder, 1).Scan(data, 0), 1)
}

func TestChunk_Scan_ShortWindow(t *testing.T) {
	buf := record.Encode(rec(0, 1))
	assert.Empty(t, Chunk{}.Scan(buf[:record.Size-1], 0))
	assert.Len(t, Chunk{}.Scan(buf[:], 0), 1)
	assert.Empty(t, Chunk{}.Scan(nil, 0))
}

func TestChunk_ScanLimit(t *testing.T) {
	data := capture(400, rec(40, 1), rec(200, 2))

	got := Chunk{}.ScanLimit(data, 0, 100)
	require.Len(t, got, 1)
	assert.Equal(t, uint64(40), got[0].Offset)

	// A record starting exactly at limit belongs to the next range.
	assert.Len(t, Chunk{}.ScanLimit(data, 0, 200), 1)
	assert.Len(t, Chunk{}.ScanLimit(data, 0, 201), 2)
}

func TestRange_Resolve(t *testing.T) {
	tests := []struct {
		name       string
		r          Range
		start, end int
		ok         bool
	}{
		{"Inside", Range{10, 20}, 10, 20, true},
		{"ClampEnd", Range{90, 500}, 90, 100, true},
		{"NegativeStart", Range{-1, 20}, 0, 0, false},
		{"StartAtLen", Range{100, 120}, 0, 0, false},
		{"Empty", Range{30, 30}, 0, 0, false},
		{"Reversed", Range{40, 30}, 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end, ok := tt.r.Resolve(100)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.start, start)
			assert.Equal(t, tt.end, end)
		})
	}
}

func TestSplit(t *testing.T) {
	assert.Equal(t, []Range{{0, 40}, {40, 80}, {80, 100}}, Split(100, 40))
	assert.Equal(t, []Range{{0, 10}}, Split(10, 64))
	assert.Nil(t, Split(0, 10))
	assert.Nil(t, Split(10, 0))
}

func TestDispatcher_InputOrder(t *testing.T) {
	r := rec(532, 7)
	data := capture(1024, r)

	d := NewDispatcher(4, NewChunk(record.DefaultDecoder, 4))
	got, err := d.ScanMany(context.Background(), data, []Range{{100, 200}, {0, 100}, {500, 600}})
	require.NoError(t, err)

	require.Len(t, got, 3)
	assert.Empty(t, got[0])
	assert.Empty(t, got[1])
	assert.Equal(t, []record.Record{r}, got[2])
}

func TestDispatcher_InvalidRangesAreIsolated(t *testing.T) {
	data := capture(512, rec(0, 1), rec(256, 2))

	d := NewDispatcher(2, Chunk{})
	got, err := d.ScanMany(context.Background(), data, []Range{
		{-5, 10}, {0, 128}, {600, 700}, {200, 100}, {256, 10_000},
	})
	require.NoError(t, err)
	require.Len(t, got, 5)

	assert.Empty(t, got[0])
	assert.Len(t, got[1], 1)
	assert.Empty(t, got[2])
	assert.Empty(t, got[3])
	require.Len(t, got[4], 1)
	assert.Equal(t, uint64(256), got[4][0].Offset)
}

func TestDispatcher_RecordStraddlingRangeEnd(t *testing.T) {
	r := rec(96, 1)
	data := capture(400, r)

	got, err := NewDispatcher(1, Chunk{}).ScanMany(context.Background(), data, []Range{{0, 100}})
	require.NoError(t, err)
	assert.Equal(t, [][]record.Record{{r}}, got)
}

func TestDispatcher_RecordStartingAtRangeEnd(t *testing.T) {
	data := capture(1024, rec(600, 1))

	got, err := NewDispatcher(1, Chunk{}).ScanMany(context.Background(), data, []Range{{500, 600}, {600, 700}})
	require.NoError(t, err)
	assert.Empty(t, got[0])
	assert.Len(t, got[1], 1)
}

func TestDispatcher_MatchesSequentialScan(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	var recs []record.Record
	for ofs := 64; ofs+record.Size <= 1<<16; {
		ofs += 4 * (1 + rng.Intn(64))
		if ofs+record.Size > 1<<16 {
			break
		}
		recs = append(recs, rec(ofs, uint32(len(recs))))
		ofs += record.Size
	}
	data := capture(1<<16, recs...)

	ranges := Split(len(data), 4096)
	parallel, err := NewDispatcher(8, Chunk{}).ScanMany(context.Background(), data, ranges)
	require.NoError(t, err)

	var flat []record.Record
	for i, rs := range parallel {
		for _, r := range rs {
			assert.GreaterOrEqual(t, int(r.Offset), ranges[i].Start)
			assert.Less(t, int(r.Offset), ranges[i].End)
		}
		flat = append(flat, rs...)
	}
	assert.Equal(t, recs, flat)
	assert.Equal(t, recs, Chunk{}.Scan(data, 0))
}

func TestDispatcher_CanceledContext(t *testing.T) {
	data := capture(1024, rec(0, 1))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got, err := NewDispatcher(2, Chunk{}).ScanMany(ctx, data, []Range{{0, 512}, {512, 1024}})
	require.ErrorIs(t, err, context.Canceled)
	require.Len(t, got, 2)
	assert.Empty(t, got[0])
	assert.Empty(t, got[1])
}

func TestNewDispatcher_DefaultWorkers(t *testing.T) {
	assert.Positive(t, NewDispatcher(0, Chunk{}).Workers())
	assert.Equal(t, 3, NewDispatcher(3, Chunk{}).Workers())
}

// zeroHeavy lays one record with mostly zero fields at ofs over 0xFF bytes.
// Its interior passes the gate when read from inside the record.
func zeroHeavy(n, ofs int) []byte {
	data := bytes.Repeat([]byte{0xFF}, n)
	buf := record.Encode(record.Record{Offset: uint64(ofs)})
	copy(data[ofs:], buf[:])
	return data
}

func TestDispatcher_StitchRecordAcrossBoundary(t *testing.T) {
	data := zeroHeavy(8192, 4088)
	chunk := NewChunk(record.DefaultDecoder, 0)
	d := NewDispatcher(2, chunk)

	ranges := Split(len(data), 4096)
	results, err := d.ScanMany(context.Background(), data, ranges)
	require.NoError(t, err)
	require.NotEmpty(t, results[1], "the second range decodes the record interior")

	got := d.Stitch(data, ranges, results)
	assert.Equal(t, chunk.Scan(data, 0), got)
	require.Len(t, got, 1)
}

func TestDispatcher_StitchMatchesSequentialScan(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	chunk := NewChunk(record.DefaultDecoder, 0)
	d := NewDispatcher(4, chunk)

	for iter := 0; iter < 50; iter++ {
		data := bytes.Repeat([]byte{0xFF}, 1<<14)
		for ofs := 4 * rng.Intn(64); ofs+record.Size <= len(data); ofs += 4 * (1 + rng.Intn(80)) {
			buf := record.Encode(record.Record{Offset: uint64(ofs), Sequence: uint32(rng.Intn(4))})
			copy(data[ofs:], buf[:])
			ofs += record.Size
		}
		want := chunk.Scan(data, 0)

		for _, size := range []int{256, 1000, 4096} {
			ranges := Split(len(data), size)
			results, err := d.ScanMany(context.Background(), data, ranges)
			require.NoError(t, err)
			got := d.Stitch(data, ranges, results)
			require.Equal(t, want, got, "iter=%d size=%d", iter, size)

			for i := 1; i < len(got); i++ {
				require.GreaterOrEqual(t, got[i].Offset, got[i-1].End())
			}
		}
	}
}
