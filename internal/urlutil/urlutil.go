// Package urlutil provides URL parsing utilities.
package urlutil

import (
	"net/url"
	"strings"
)

// RepositoryFullName extracts "owner/repo" from a repository API URL such as
// https://api.github.com/repos/owner/repo. Enterprise roots with a path
// prefix (/api/v3/repos/...) work too.
func RepositoryFullName(apiURL string) (string, bool) {
	u, err := url.Parse(apiURL)
	if err != nil {
		return "", false
	}

	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	for i := 0; i+2 < len(parts); i++ {
		if parts[i] != "repos" {
			continue
		}
		owner, repo := parts[i+1], parts[i+2]
		if owner == "" || repo == "" {
			return "", false
		}
		return owner + "/" + repo, true
	}

	return "", false
}
