// Package metrics provides Prometheus metrics collection for the medicine API.
// HTTP metrics:
//   - http_request_total: Counter with method, path, and status labels
//   - http_request_duration_seconds: Histogram with method and path labels
//   - http_request_in_flight: Gauge for concurrent requests
//
// Domain metrics:
//   - upstream_requests_total: Counter with source, operation and outcome labels
//   - medicine_lookups_total: Counter with the source that answered a lookup
//   - medicine_records_total: Gauge of records held in the store
//
// All metrics are automatically registered with the Prometheus default registry
// during package initialization.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Upstream call outcomes
const (
	OutcomeOK       = "ok"
	OutcomeEmpty    = "empty"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)

var (
	HTTPRequestTotals = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_request_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path"},
	)

	HTTPRequestInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_request_in_flight",
			Help: "Current in-flight requests",
		},
	)

	RateLimiterBucketsTotal = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "rate_limiter_buckets_total",
			Help: "Total number of rate limiter buckets (clients seen since the last prune)",
		},
	)

	UpstreamRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "upstream_requests_total",
			Help: "Calls to FDA, RxNav and Gemini by outcome",
		},
		[]string{"source", "operation", "outcome"},
	)

	MedicineLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "medicine_lookups_total",
			Help: "Resolved medicine lookups by answering source",
		},
		[]string{"source"},
	)

	MedicineRecords = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "medicine_records_total",
			Help: "Records held in the medicine store",
		},
	)
)

func init() {
	prometheus.MustRegister(HTTPRequestTotals)
	prometheus.MustRegister(HTTPRequestDuration)
	prometheus.MustRegister(HTTPRequestInFlight)
	prometheus.MustRegister(RateLimiterBucketsTotal)
	prometheus.MustRegister(UpstreamRequests)
	prometheus.MustRegister(MedicineLookups)
	prometheus.MustRegister(MedicineRecords)
}

// Handler exposes the default registry
func Handler() http.Handler {
	return promhttp.Handler()
}
