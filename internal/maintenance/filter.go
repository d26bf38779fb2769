package maintenance

import "github.com/spiffcs/goodfirst/internal/model"

// Filter returns the issues that satisfy every threshold present in
// filters, preserving order. Issues without enrichment count as zero stars,
// forks and followers, and as inactive.
func Filter(issues []model.Issue, filters model.SearchFilters) []model.Issue {
	result := make([]model.Issue, 0, len(issues))
	for _, issue := range issues {
		if Matches(&issue, filters) {
			result = append(result, issue)
		}
	}
	return result
}

// Matches reports whether a single issue passes the filters.
func Matches(issue *model.Issue, filters model.SearchFilters) bool {
	if filters.MinStars != nil && float64(issue.Stars()) < *filters.MinStars {
		return false
	}
	if filters.MinForks != nil && float64(issue.Forks()) < *filters.MinForks {
		return false
	}
	if filters.MinOwnerFollowers != nil && float64(issue.Followers()) < *filters.MinOwnerFollowers {
		return false
	}
	if filters.ActiveWithinDays != nil && !issue.ActiveRecently() {
		return false
	}
	return true
}
