package ghclient

import (
	"strings"

	"github.com/spiffcs/goodfirst/internal/constants"
	"github.com/spiffcs/goodfirst/internal/model"
)

// BuildSearchQuery builds the issue search query for the given filters.
// The type, label and state clauses are always present; language and topic
// follow in that order when set. Only the search qualifiers are handled
// here; thresholds are applied after enrichment.
func BuildSearchQuery(filters model.SearchFilters) string {
	clauses := []string{
		"is:issue",
		`label:"` + constants.GoodFirstIssueLabel + `"`,
		"state:open",
	}

	if filters.Language != "" {
		clauses = append(clauses, "language:"+filters.Language)
	}

	if filters.Topic != "" {
		clauses = append(clauses, "topic:"+quoteIfSpaced(filters.Topic))
	}

	return strings.Join(clauses, " ")
}

// quoteIfSpaced wraps multi-word values so the search parser reads them as
// one token.
func quoteIfSpaced(v string) string {
	if strings.Contains(v, " ") {
		return `"` + v + `"`
	}
	return v
}
