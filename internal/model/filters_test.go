package model

import "testing"

func TestSearchFiltersHasThresholds(t *testing.T) {
	tests := []struct {
		name    string
		filters SearchFilters
		want    bool
	}{
		{"empty", SearchFilters{}, false},
		{"qualifiers only", SearchFilters{Language: "go", Topic: "cli"}, false},
		{"zero stars counts", SearchFilters{MinStars: Float(0)}, true},
		{"fractional forks", SearchFilters{MinForks: Float(1.5)}, true},
		{"followers", SearchFilters{MinOwnerFollowers: Float(10)}, true},
		{"activity window", SearchFilters{ActiveWithinDays: Float(0.5)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filters.HasThresholds(); got != tt.want {
				t.Errorf("HasThresholds() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSearchFiltersActivityWindowDays(t *testing.T) {
	if got := (SearchFilters{}).ActivityWindowDays(180); got != 180 {
		t.Errorf("ActivityWindowDays() = %v, want default 180", got)
	}
	if got := (SearchFilters{ActiveWithinDays: Float(0.5)}).ActivityWindowDays(180); got != 0.5 {
		t.Errorf("ActivityWindowDays() = %v, want 0.5", got)
	}
}
