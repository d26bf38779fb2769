// Package model defines the issue records served by the gateway.
package model

import "time"

// Issue is a normalized good-first-issue search result.
//
// The repository and owner fields are only populated once the issue has
// been enriched; an issue whose repository metadata could not be fetched
// keeps its base shape and serializes without them.
type Issue struct {
	Title      string    `json:"title"`
	URL        string    `json:"url"`
	Repository string    `json:"repository"` // repository API URL
	CreatedAt  time.Time `json:"created_at"`
	Labels     []string  `json:"labels"`

	// Enriched data (populated by the aggregator)
	RepositoryFullName string       `json:"repository_full_name,omitempty"`
	RepositoryStars    *int         `json:"repository_stars,omitempty"`
	RepositoryForks    *int         `json:"repository_forks,omitempty"`
	RepositoryPushedAt string       `json:"repository_pushed_at,omitempty"`
	RepositoryArchived *bool        `json:"repository_archived,omitempty"`
	OwnerLogin         string       `json:"owner_login,omitempty"`
	OwnerFollowers     *int         `json:"owner_followers,omitempty"`
	Maintenance        *Maintenance `json:"maintenance,omitempty"`
}

// Maintenance is the heuristic health summary attached to an enriched issue.
type Maintenance struct {
	ActiveRecently bool     `json:"activeRecently"`
	Score          int      `json:"score"` // 0-100
	Notes          []string `json:"notes"`
}

// IsEnriched returns true if repository metadata was merged into the issue.
func (i *Issue) IsEnriched() bool {
	return i.Maintenance != nil
}

// Stars returns the repository star count, or 0 when unknown.
func (i *Issue) Stars() int {
	return valueOrZero(i.RepositoryStars)
}

// Forks returns the repository fork count, or 0 when unknown.
func (i *Issue) Forks() int {
	return valueOrZero(i.RepositoryForks)
}

// Followers returns the repository owner's follower count, or 0 when unknown.
func (i *Issue) Followers() int {
	return valueOrZero(i.OwnerFollowers)
}

// ActiveRecently reports whether the issue's repository was pushed to
// within the activity window. Unenriched issues are never active.
func (i *Issue) ActiveRecently() bool {
	return i.Maintenance != nil && i.Maintenance.ActiveRecently
}

func valueOrZero(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}
