package sonarscan_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hupe1980/sonarscan"
	"github.com/hupe1980/sonarscan/record"
)

func writeCapture(dir string) (string, error) {
	data := make([]byte, 4096)
	for i := range data {
		data[i] = 0xFF
	}
	buf := record.Encode(record.Record{
		Offset:      1024,
		ChannelID:   3,
		Sequence:    1001,
		TimestampMS: 1_700_000_000_000,
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
	})
	copy(data[1024:], buf[:])
	copy(data[3000:], "SYNC")

	path := filepath.Join(dir, "line-01.bin")
	return path, os.WriteFile(path, data, 0o644)
}

func Example() {
	dir, err := os.MkdirTemp("", "sonarscan-example")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(dir)

	path, err := writeCapture(dir)
	if err != nil {
		panic(err)
	}

	s, err := sonarscan.Open(path, sonarscan.WithWorkers(2))
	if err != nil {
		panic(err)
	}
	defer s.Close()

	offsets, err := s.Find([]byte("SYNC"), 0, s.Len())
	if err != nil {
		panic(err)
	}
	fmt.Println("sync markers:", offsets)

	recs, err := s.ScanAll(context.Background(), 1024)
	if err != nil {
		panic(err)
	}
	for _, r := range recs {
		fmt.Printf("record at %d: channel=%d seq=%d depth=%.1fm\n", r.Offset, r.ChannelID, r.Sequence, r.DepthM)
	}

	// Output:
	// sync markers: [3000]
	// record at 1024: channel=3 seq=1001 depth=14.3m
}

func ExampleScanner_ScanRanges() {
	dir, err := os.MkdirTemp("", "sonarscan-example")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(dir)

	path, err := writeCapture(dir)
	if err != nil {
		panic(err)
	}

	s, err := sonarscan.Open(path)
	if err != nil {
		panic(err)
	}
	defer s.Close()

	results, err := s.ScanRanges(context.Background(), []sonarscan.Range{
		{Start: 2048, End: 4096},
		{Start: 0, End: 1024},
		{Start: 1000, End: 1100},
	})
	if err != nil {
		panic(err)
	}
	for i, rs := range results {
		fmt.Printf("range %d: %d record(s)\n", i, len(rs))
	}

	// Output:
	// range 0: 0 record(s)
	// range 1: 0 record(s)
	// range 2: 1 record(s)
}

func ExampleScanner_Transform() {
	dir, err := os.MkdirTemp("", "sonarscan-example")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(dir)

	path, err := writeCapture(dir)
	if err != nil {
		panic(err)
	}

	s, err := sonarscan.Open(path)
	if err != nil {
		panic(err)
	}
	defer s.Close()

	lats, lons, err := s.Transform([]float64{0}, []float64{0}, 0, 1113.2, 0)
	if err != nil {
		panic(err)
	}
	fmt.Printf("%.4f %.4f\n", lats[0], lons[0])

	// Output:
	// 0.0000 0.0100
}
