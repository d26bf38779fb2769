package ghclient

import (
	"context"
	"fmt"

	gh "github.com/google/go-github/v69/github"
	"github.com/spiffcs/goodfirst/internal/log"
	"github.com/spiffcs/goodfirst/internal/model"
)

// SearchGoodFirstIssues runs a single issue search and returns the first
// page of results in upstream order. Results are not paginated.
func (c *Client) SearchGoodFirstIssues(ctx context.Context, query string) ([]model.Issue, error) {
	log.Debug("searching issues", "query", query)

	result, _, err := c.client.Search.Issues(upstreamContext(ctx), query, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to search issues: %w", err)
	}

	issues := make([]model.Issue, 0, len(result.Issues))
	for _, issue := range result.Issues {
		issues = append(issues, issueToModel(issue))
	}

	log.Debug("search complete", "total", result.GetTotal(), "returned", len(issues))

	return issues, nil
}

// issueToModel converts a GitHub search result issue to a model.Issue.
func issueToModel(issue *gh.Issue) model.Issue {
	labels := make([]string, 0, len(issue.Labels))
	for _, label := range issue.Labels {
		labels = append(labels, label.GetName())
	}

	return model.Issue{
		Title:      issue.GetTitle(),
		URL:        issue.GetHTMLURL(),
		Repository: issue.GetRepositoryURL(),
		CreatedAt:  issue.GetCreatedAt().Time,
		Labels:     labels,
	}
}
