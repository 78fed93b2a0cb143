package promcollector

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/hupe1980/sonarscan"
	"github.com/hupe1980/sonarscan/testutil"
	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := New(reg)

	c.RecordFind(1024, 3, time.Millisecond)
	c.RecordFind(512, 1, time.Millisecond)
	c.RecordScan(4, 10, time.Millisecond, nil)
	c.RecordScan(2, 0, time.Millisecond, context.Canceled)
	c.RecordCachedRead(16, time.Microsecond, nil)
	c.RecordCachedRead(16, time.Microsecond, errors.New("boom"))
	c.RecordTransform(100, time.Millisecond, nil)

	assert.InDelta(t, 1536, promtest.ToFloat64(c.bytes.WithLabelValues("find")), 0)
	assert.InDelta(t, 16, promtest.ToFloat64(c.bytes.WithLabelValues("read")), 0)
	assert.InDelta(t, 4, promtest.ToFloat64(c.matches), 0)
	assert.InDelta(t, 6, promtest.ToFloat64(c.ranges), 0)
	assert.InDelta(t, 10, promtest.ToFloat64(c.records), 0)
	assert.InDelta(t, 100, promtest.ToFloat64(c.points), 0)

	// find/success, scan/success, scan/error, read/success, read/error, transform/success
	assert.Equal(t, 6, promtest.CollectAndCount(c.opLatency))

	expected := `
# HELP sonarscan_scan_ranges_total Byte ranges submitted for record scanning
# TYPE sonarscan_scan_ranges_total counter
sonarscan_scan_ranges_total 6
`
	require.NoError(t, promtest.GatherAndCompare(reg, strings.NewReader(expected), "sonarscan_scan_ranges_total"))
}

func TestCollector_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(reg)
	assert.Panics(t, func() { New(reg) })
}

func TestCollector_WithScanner(t *testing.T) {
	f := testutil.NewFixture(4096).Place(testutil.SampleRecord(1024, 5))

	reg := prometheus.NewRegistry()
	c := New(reg)

	s, err := sonarscan.Open(f.WriteFile(t, "c.bin"), sonarscan.WithMetricsCollector(c))
	require.NoError(t, err)
	defer s.Close()

	recs, err := s.ScanAll(context.Background(), 1024)
	require.NoError(t, err)
	require.Len(t, recs, 1)

	assert.InDelta(t, 4, promtest.ToFloat64(c.ranges), 0)
	assert.InDelta(t, 1, promtest.ToFloat64(c.records), 0)
}
