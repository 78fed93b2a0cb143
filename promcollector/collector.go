package promcollector

import (
	"time"

	"github.com/hupe1980/sonarscan"
	"github.com/prometheus/client_golang/prometheus"
)

var _ sonarscan.MetricsCollector = (*Collector)(nil)

// Collector implements sonarscan.MetricsCollector with Prometheus metrics.
type Collector struct {
	opLatency *prometheus.HistogramVec
	bytes     *prometheus.CounterVec
	matches   prometheus.Counter
	ranges    prometheus.Counter
	records   prometheus.Counter
	points    prometheus.Counter
}

// New creates a Collector and registers its metrics with reg.
// A nil reg registers with prometheus.DefaultRegisterer.
func New(reg prometheus.Registerer) *Collector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	c := &Collector{
		opLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "sonarscan_operation_latency_seconds",
			Help:    "Latency of scanner operations",
			Buckets: prometheus.DefBuckets,
		}, []string{"op", "status"}),
		bytes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sonarscan_bytes_total",
			Help: "Bytes searched or read",
		}, []string{"op"}),
		matches: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sonarscan_find_matches_total",
			Help: "Pattern matches returned by Find",
		}),
		ranges: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sonarscan_scan_ranges_total",
			Help: "Byte ranges submitted for record scanning",
		}),
		records: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sonarscan_records_decoded_total",
			Help: "Records decoded by range scans",
		}),
		points: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sonarscan_transform_points_total",
			Help: "Navigation points transformed",
		}),
	}

	reg.MustRegister(c.opLatency, c.bytes, c.matches, c.ranges, c.records, c.points)
	return c
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

// RecordFind implements sonarscan.MetricsCollector.
func (c *Collector) RecordFind(scanned, matches int, d time.Duration) {
	c.opLatency.WithLabelValues("find", "success").Observe(d.Seconds())
	c.bytes.WithLabelValues("find").Add(float64(scanned))
	c.matches.Add(float64(matches))
}

// RecordScan implements sonarscan.MetricsCollector.
func (c *Collector) RecordScan(ranges, records int, d time.Duration, err error) {
	c.opLatency.WithLabelValues("scan", status(err)).Observe(d.Seconds())
	c.ranges.Add(float64(ranges))
	c.records.Add(float64(records))
}

// RecordCachedRead implements sonarscan.MetricsCollector.
func (c *Collector) RecordCachedRead(size int, d time.Duration, err error) {
	c.opLatency.WithLabelValues("read", status(err)).Observe(d.Seconds())
	if err == nil {
		c.bytes.WithLabelValues("read").Add(float64(size))
	}
}

// RecordTransform implements sonarscan.MetricsCollector.
func (c *Collector) RecordTransform(points int, d time.Duration, err error) {
	c.opLatency.WithLabelValues("transform", status(err)).Observe(d.Seconds())
	if err == nil {
		c.points.Add(float64(points))
	}
}
