// Package service aggregates good-first-issue searches: it builds the query,
// runs the search, enriches the results and applies the threshold filters.
package service

import (
	"context"
	"time"

	"github.com/spiffcs/goodfirst/internal/constants"
	"github.com/spiffcs/goodfirst/internal/ghclient"
	"github.com/spiffcs/goodfirst/internal/log"
	"github.com/spiffcs/goodfirst/internal/maintenance"
	"github.com/spiffcs/goodfirst/internal/metrics"
	"github.com/spiffcs/goodfirst/internal/model"
	"github.com/spiffcs/goodfirst/internal/telemetry"
	"go.opentelemetry.io/otel/attribute"
)

// ProgressFunc is called as enrichment lookups complete.
type ProgressFunc func(completed, total int)

// IssueAggregator runs the search, enrich and filter pipeline. It holds no
// per-request state and is safe for concurrent use.
type IssueAggregator struct {
	fetcher    ghclient.GitHubFetcher
	heuristics *maintenance.Heuristics
	workers    int
	now        func() time.Time
	metrics    *metrics.Metrics
	onProgress ProgressFunc
}

// Option configures an IssueAggregator
type Option func(*IssueAggregator)

// WithWorkers caps concurrent lookups per enrichment batch. Zero or less
// means unlimited.
func WithWorkers(n int) Option {
	return func(a *IssueAggregator) {
		a.workers = n
	}
}

// WithClock overrides the time source used for activity checks.
func WithClock(now func() time.Time) Option {
	return func(a *IssueAggregator) {
		a.now = now
	}
}

// WithMetrics records enrichment failures and result sizes into m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(a *IssueAggregator) {
		a.metrics = m
	}
}

// WithProgress registers a callback for enrichment progress.
func WithProgress(fn ProgressFunc) Option {
	return func(a *IssueAggregator) {
		a.onProgress = fn
	}
}

// New creates an IssueAggregator backed by fetcher.
func New(fetcher ghclient.GitHubFetcher, heuristics *maintenance.Heuristics, opts ...Option) *IssueAggregator {
	a := &IssueAggregator{
		fetcher:    fetcher,
		heuristics: heuristics,
		workers:    constants.DefaultEnrichWorkers,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// GoodFirstIssues searches for open good first issues matching filters,
// enriches them with repository and owner data, and drops those failing a
// threshold. A failed search aborts the request with an *UpstreamError;
// failed enrichment lookups do not.
func (a *IssueAggregator) GoodFirstIssues(ctx context.Context, filters model.SearchFilters) ([]model.Issue, error) {
	ctx, span := telemetry.Tracer().Start(ctx, "IssueAggregator.GoodFirstIssues")
	defer span.End()

	query := ghclient.BuildSearchQuery(filters)
	span.SetAttributes(attribute.String("github.query", query))

	issues, err := a.fetcher.SearchGoodFirstIssues(ctx, query)
	if err != nil {
		span.RecordError(err)
		return nil, newUpstreamError(err)
	}

	window := filters.ActivityWindowDays(a.heuristics.Weights.DefaultActiveWindowDays)
	result := a.Enrich(ctx, issues, window)
	if filters.HasThresholds() {
		result = maintenance.Filter(result, filters)
	}

	span.SetAttributes(
		attribute.Int("issues.found", len(issues)),
		attribute.Int("issues.returned", len(result)),
	)
	a.metrics.RecordIssuesReturned(len(result))
	log.Debug("search served", "query", query, "found", len(issues), "returned", len(result))

	return result, nil
}

func (a *IssueAggregator) reportProgress(completed, total int) {
	if a.onProgress != nil {
		a.onProgress(completed, total)
	}
}
