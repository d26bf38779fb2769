package ghclient

import (
	"context"
	"fmt"
	"net/http"

	gh "github.com/google/go-github/v69/github"
	"github.com/spiffcs/goodfirst/internal/model"
)

// Repository fetches repository metadata from its API URL, as found in the
// repository_url field of a search result.
func (c *Client) Repository(ctx context.Context, repoURL string) (model.RepositoryMeta, error) {
	req, err := c.client.NewRequest(http.MethodGet, repoURL, nil)
	if err != nil {
		return model.RepositoryMeta{}, fmt.Errorf("failed to build repository request: %w", err)
	}

	var repo gh.Repository
	if _, err := c.client.Do(upstreamContext(ctx), req, &repo); err != nil {
		return model.RepositoryMeta{}, fmt.Errorf("failed to get repository %s: %w", repoURL, err)
	}

	return repositoryToMeta(&repo), nil
}

// Followers returns the follower count of a user or organization.
func (c *Client) Followers(ctx context.Context, login string) (int, error) {
	user, _, err := c.client.Users.Get(upstreamContext(ctx), login)
	if err != nil {
		return 0, fmt.Errorf("failed to get user %s: %w", login, err)
	}
	return user.GetFollowers(), nil
}

// repositoryToMeta keeps the fields used for scoring. Missing counts read
// as zero and a missing archived flag as false.
func repositoryToMeta(repo *gh.Repository) model.RepositoryMeta {
	meta := model.RepositoryMeta{
		FullName:   repo.GetFullName(),
		Stars:      repo.GetStargazersCount(),
		Forks:      repo.GetForksCount(),
		Archived:   repo.GetArchived(),
		OwnerLogin: repo.GetOwner().GetLogin(),
	}
	if repo.PushedAt != nil {
		pushed := repo.PushedAt.Time
		meta.PushedAt = &pushed
	}
	return meta
}
