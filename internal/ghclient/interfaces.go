// Package ghclient provides GitHub API client functionality.
package ghclient

import (
	"context"

	"github.com/spiffcs/goodfirst/internal/model"
)

// GitHubFetcher defines the upstream operations the issue aggregator needs.
// Nothing behind it caches; every call goes to the API.
type GitHubFetcher interface {
	// Search
	SearchGoodFirstIssues(ctx context.Context, query string) ([]model.Issue, error)

	// Enrichment
	Repository(ctx context.Context, repoURL string) (model.RepositoryMeta, error)
	Followers(ctx context.Context, login string) (int, error)
}

// Ensure Client implements GitHubFetcher interface.
var _ GitHubFetcher = (*Client)(nil)
