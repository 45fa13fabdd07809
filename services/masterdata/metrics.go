package masterdata

import (
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeOK       = "ok"
	outcomeError    = "error"
	outcomeCanceled = "canceled"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "itrack_admin",
		Subsystem: "master_data",
		Name:      "requests_total",
		Help:      "Master Data Service calls broken down by endpoint and outcome (ok, error, canceled or HTTP status).",
	}, []string{"method", "endpoint", "outcome"})

	requestLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "itrack_admin",
		Subsystem: "master_data",
		Name:      "request_duration_seconds",
		Help:      "Latency of Master Data Service calls.",
		Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 15},
	}, []string{"method", "endpoint"})
)

func observe(method, path, outcome string, start time.Time) {
	endpoint := endpointLabel(path)
	requestsTotal.WithLabelValues(method, endpoint, outcome).Inc()
	requestLatency.WithLabelValues(method, endpoint).Observe(time.Since(start).Seconds())
}

// endpointLabel collapses per-region paths so label cardinality stays bounded
func endpointLabel(path string) string {
	if strings.HasPrefix(path, regionsPath+"/") {
		return regionsPath + "/{id}"
	}
	return path
}
