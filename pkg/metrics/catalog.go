package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// CatalogAPIMetrics records calls made against the remote catalog API.
type CatalogAPIMetrics struct {
	duration *prometheus.HistogramVec
	requests *prometheus.CounterVec
}

// NewCatalogAPIMetrics registers the catalog API metrics on the provided registerer.
func NewCatalogAPIMetrics(reg prometheus.Registerer) *CatalogAPIMetrics {
	if reg == nil {
		return &CatalogAPIMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "catalog_api_request_duration_seconds",
		Help:    "Duration of remote catalog API calls in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_api_requests_total",
		Help: "Remote catalog API calls by outcome.",
	}, []string{"operation", "outcome"})
	reg.MustRegister(duration, requests)
	return &CatalogAPIMetrics{
		duration: duration,
		requests: requests,
	}
}

// Observe records the duration and outcome of a single call.
func (c *CatalogAPIMetrics) Observe(operation string, duration time.Duration, err error) {
	if c == nil || c.duration == nil {
		return
	}
	op := normalizeLabel(operation)
	c.duration.WithLabelValues(op).Observe(duration.Seconds())
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeFailure
	}
	c.requests.WithLabelValues(op, outcome).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
