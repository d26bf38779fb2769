package service

import (
	"context"
	"sync/atomic"

	"github.com/spiffcs/goodfirst/internal/log"
	"github.com/spiffcs/goodfirst/internal/model"
	"github.com/spiffcs/goodfirst/internal/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"
)

// repoResult is the outcome of one repository lookup.
type repoResult struct {
	meta model.RepositoryMeta
	ok   bool
}

// Enrich attaches repository and owner data plus a maintenance score to each
// issue, scoring activity against windowDays. Repositories are looked up
// once each and owners once each, concurrently. An issue whose repository
// lookup failed is returned unchanged. Output order matches input order.
func (a *IssueAggregator) Enrich(ctx context.Context, issues []model.Issue, windowDays float64) []model.Issue {
	ctx, span := telemetry.Tracer().Start(ctx, "IssueAggregator.Enrich")
	defer span.End()

	repoURLs := uniqueRepositories(issues)
	repos := a.fetchRepositories(ctx, repoURLs)

	owners := uniqueOwners(repoURLs, repos)
	followers := a.fetchFollowers(ctx, owners)

	span.SetAttributes(
		attribute.Int("enrich.repositories", len(repoURLs)),
		attribute.Int("enrich.owners", len(owners)),
	)

	now := a.now()
	result := make([]model.Issue, len(issues))
	for i, issue := range issues {
		meta, ok := repos[issue.Repository]
		if !ok {
			result[i] = issue
			continue
		}
		// Missing owners score zero followers
		result[i] = a.heuristics.Apply(issue, meta, followers[meta.OwnerLogin], now, windowDays)
	}

	return result
}

// fetchRepositories looks up every repository concurrently. Failed lookups
// are logged and left out of the returned map.
func (a *IssueAggregator) fetchRepositories(ctx context.Context, urls []string) map[string]model.RepositoryMeta {
	results := make([]repoResult, len(urls))
	var completed int32

	g, gctx := errgroup.WithContext(ctx)
	if a.workers > 0 {
		g.SetLimit(a.workers)
	}

	for i, u := range urls {
		g.Go(func() error {
			defer func() {
				a.reportProgress(int(atomic.AddInt32(&completed, 1)), len(urls))
			}()

			meta, err := a.fetcher.Repository(gctx, u)
			if err != nil {
				log.Debug("repository lookup failed", "repository", u, "error", err)
				a.metrics.RecordEnrichmentFailure("repository")
				return nil
			}
			results[i] = repoResult{meta: meta, ok: true}
			return nil
		})
	}
	_ = g.Wait() // goroutines never return errors

	repos := make(map[string]model.RepositoryMeta, len(urls))
	for i, u := range urls {
		if results[i].ok {
			repos[u] = results[i].meta
		}
	}
	return repos
}

// fetchFollowers looks up every owner's follower count concurrently. Failed
// lookups count as zero followers.
func (a *IssueAggregator) fetchFollowers(ctx context.Context, logins []string) map[string]int {
	counts := make([]int, len(logins))

	g, gctx := errgroup.WithContext(ctx)
	if a.workers > 0 {
		g.SetLimit(a.workers)
	}

	for i, login := range logins {
		g.Go(func() error {
			n, err := a.fetcher.Followers(gctx, login)
			if err != nil {
				log.Debug("owner lookup failed", "owner", login, "error", err)
				a.metrics.RecordEnrichmentFailure("owner")
				return nil
			}
			counts[i] = n
			return nil
		})
	}
	_ = g.Wait()

	followers := make(map[string]int, len(logins))
	for i, login := range logins {
		followers[login] = counts[i]
	}
	return followers
}

// uniqueRepositories returns each referenced repository URL once, in order
// of first appearance. Issues without a repository URL are skipped.
func uniqueRepositories(issues []model.Issue) []string {
	seen := make(map[string]bool, len(issues))
	var urls []string
	for _, issue := range issues {
		if issue.Repository == "" || seen[issue.Repository] {
			continue
		}
		seen[issue.Repository] = true
		urls = append(urls, issue.Repository)
	}
	return urls
}

// uniqueOwners returns the distinct owner logins of the fetched
// repositories, following the order of urls.
func uniqueOwners(urls []string, repos map[string]model.RepositoryMeta) []string {
	seen := make(map[string]bool)
	var logins []string
	for _, u := range urls {
		meta, ok := repos[u]
		if !ok || meta.OwnerLogin == "" || seen[meta.OwnerLogin] {
			continue
		}
		seen[meta.OwnerLogin] = true
		logins = append(logins, meta.OwnerLogin)
	}
	return logins
}
