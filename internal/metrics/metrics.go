// Package metrics exposes the gateway's Prometheus collectors.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for goodfirst
type Metrics struct {
	// Inbound
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	IssuesReturned      prometheus.Histogram

	// Upstream
	UpstreamRequestsTotal      *prometheus.CounterVec
	UpstreamRateLimitRemaining prometheus.Gauge
	EnrichmentFailures         *prometheus.CounterVec
}

var (
	metricsOnce   sync.Once
	sharedMetrics *Metrics
)

// NewMetrics creates and registers all Prometheus metrics. Collectors are
// registered once per process; later calls return the same instance.
func NewMetrics() *Metrics {
	metricsOnce.Do(func() {
		sharedMetrics = &Metrics{
			HTTPRequestsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "goodfirst_http_requests_total",
					Help: "Total number of HTTP requests served",
				},
				[]string{"method", "path", "status"},
			),
			HTTPRequestDuration: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "goodfirst_http_request_duration_seconds",
					Help:    "HTTP request duration in seconds",
					Buckets: prometheus.DefBuckets,
				},
				[]string{"method", "path"},
			),
			IssuesReturned: promauto.NewHistogram(
				prometheus.HistogramOpts{
					Name:    "goodfirst_issues_returned",
					Help:    "Number of issues returned per search after filtering",
					Buckets: prometheus.LinearBuckets(0, 10, 11), // 0 to 100
				},
			),
			UpstreamRequestsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "goodfirst_upstream_requests_total",
					Help: "Total number of GitHub API requests by status class",
				},
				[]string{"status"},
			),
			UpstreamRateLimitRemaining: promauto.NewGauge(
				prometheus.GaugeOpts{
					Name: "goodfirst_upstream_rate_limit_remaining",
					Help: "Remaining GitHub API requests as of the last response",
				},
			),
			EnrichmentFailures: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "goodfirst_enrichment_failures_total",
					Help: "Swallowed repository and owner lookup failures",
				},
				[]string{"kind"},
			),
		}
	})
	return sharedMetrics
}

// Helper methods for recording metrics. All of them are safe on a nil
// receiver so callers that run without metrics need no guards.

// RecordHTTPRequest records an inbound request
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration float64) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

// RecordUpstreamResponse records one GitHub API response
func (m *Metrics) RecordUpstreamResponse(status string, rateLimitRemaining int) {
	if m == nil {
		return
	}
	m.UpstreamRequestsTotal.WithLabelValues(status).Inc()
	if rateLimitRemaining >= 0 {
		m.UpstreamRateLimitRemaining.Set(float64(rateLimitRemaining))
	}
}

// RecordEnrichmentFailure counts a lookup whose failure was swallowed.
// kind is "repository" or "owner".
func (m *Metrics) RecordEnrichmentFailure(kind string) {
	if m == nil {
		return
	}
	m.EnrichmentFailures.WithLabelValues(kind).Inc()
}

// RecordIssuesReturned observes the size of a search response
func (m *Metrics) RecordIssuesReturned(n int) {
	if m == nil {
		return
	}
	m.IssuesReturned.Observe(float64(n))
}
