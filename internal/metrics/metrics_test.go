package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func TestNewMetricsIsShared(t *testing.T) {
	if NewMetrics() != NewMetrics() {
		t.Error("expected NewMetrics to return the same instance")
	}
}

func TestMetricsExposition(t *testing.T) {
	m := NewMetrics()
	m.RecordHTTPRequest("GET", "/github/issues", "200", 0.25)
	m.RecordUpstreamResponse("2xx", 4321)
	m.RecordEnrichmentFailure("repository")
	m.RecordIssuesReturned(7)

	rec := httptest.NewRecorder()
	promhttp.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	if err != nil {
		t.Fatal(err)
	}
	out := string(body)

	wants := []string{
		`goodfirst_http_requests_total{method="GET",path="/github/issues",status="200"}`,
		`goodfirst_upstream_requests_total{status="2xx"}`,
		`goodfirst_upstream_rate_limit_remaining 4321`,
		`goodfirst_enrichment_failures_total{kind="repository"}`,
		`goodfirst_issues_returned_count`,
	}
	for _, want := range wants {
		if !strings.Contains(out, want) {
			t.Errorf("exposition missing %q", want)
		}
	}
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.RecordHTTPRequest("GET", "/github/issues", "200", 0.1)
	m.RecordUpstreamResponse("2xx", 10)
	m.RecordEnrichmentFailure("owner")
	m.RecordIssuesReturned(3)
}
