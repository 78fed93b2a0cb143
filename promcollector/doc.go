// Package promcollector exports sonarscan metrics to Prometheus.
//
//	reg := prometheus.NewRegistry()
//	s, err := sonarscan.Open(path,
//	    sonarscan.WithMetricsCollector(promcollector.New(reg)))
package promcollector
