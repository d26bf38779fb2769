package model

// SearchFilters holds the optional inputs of a good-first-issue search.
// Empty strings and nil thresholds mean "no constraint". Thresholds are
// real numbers, so 49.5 stars or half a day are valid limits.
type SearchFilters struct {
	Language string
	Topic    string

	MinStars          *float64
	MinForks          *float64
	MinOwnerFollowers *float64

	// ActiveWithinDays both sets the scoring window and, when present,
	// restricts results to recently active repositories.
	ActiveWithinDays *float64
}

// ActivityWindowDays returns the window used to decide whether a repository
// counts as recently active, falling back to defaultDays when unset.
func (f SearchFilters) ActivityWindowDays(defaultDays int) float64 {
	if f.ActiveWithinDays != nil {
		return *f.ActiveWithinDays
	}
	return float64(defaultDays)
}

// HasThresholds returns true if any numeric or activity filter is present.
func (f SearchFilters) HasThresholds() bool {
	return f.MinStars != nil || f.MinForks != nil ||
		f.MinOwnerFollowers != nil || f.ActiveWithinDays != nil
}

// Float returns a pointer to v. Handy for building filters in code and tests.
func Float(v float64) *float64 {
	return &v
}
