package model

import "time"

// RepositoryMeta is the subset of repository data used for enrichment.
// It is fetched fresh for every request and never stored.
type RepositoryMeta struct {
	FullName   string
	Stars      int
	Forks      int
	PushedAt   *time.Time
	Archived   bool
	OwnerLogin string
}
