package maintenance

import (
	"testing"

	"github.com/spiffcs/goodfirst/internal/model"
)

func enriched(title string, stars, forks, followers int, active bool) model.Issue {
	return model.Issue{
		Title:           title,
		RepositoryStars: &stars,
		RepositoryForks: &forks,
		OwnerFollowers:  &followers,
		Maintenance:     &model.Maintenance{ActiveRecently: active, Notes: []string{}},
	}
}

func titles(issues []model.Issue) []string {
	out := make([]string, 0, len(issues))
	for _, i := range issues {
		out = append(out, i.Title)
	}
	return out
}

func TestFilter(t *testing.T) {
	issues := []model.Issue{
		enriched("big", 500, 40, 900, true),
		{Title: "bare"},
		enriched("small", 5, 1, 2, false),
		enriched("mid", 50, 10, 50, true),
	}

	tests := []struct {
		name    string
		filters model.SearchFilters
		want    []string
	}{
		{
			name: "no filters keeps everything",
			want: []string{"big", "bare", "small", "mid"},
		},
		{
			name:    "min stars is inclusive",
			filters: model.SearchFilters{MinStars: model.Float(50)},
			want:    []string{"big", "mid"},
		},
		{
			name:    "min forks",
			filters: model.SearchFilters{MinForks: model.Float(11)},
			want:    []string{"big"},
		},
		{
			name:    "min owner followers",
			filters: model.SearchFilters{MinOwnerFollowers: model.Float(3)},
			want:    []string{"big", "mid"},
		},
		{
			name:    "active within days keeps active only",
			filters: model.SearchFilters{ActiveWithinDays: model.Float(30)},
			want:    []string{"big", "mid"},
		},
		{
			name:    "fractional stars compare exactly",
			filters: model.SearchFilters{MinStars: model.Float(49.5)},
			want:    []string{"big", "mid"},
		},
		{
			name:    "fractional stars above a count",
			filters: model.SearchFilters{MinStars: model.Float(50.5)},
			want:    []string{"big"},
		},
		{
			name:    "fractional forks",
			filters: model.SearchFilters{MinForks: model.Float(1.5)},
			want:    []string{"big", "mid"},
		},
		{
			name:    "zero threshold keeps unenriched",
			filters: model.SearchFilters{MinStars: model.Float(0)},
			want:    []string{"big", "bare", "small", "mid"},
		},
		{
			name: "all thresholds",
			filters: model.SearchFilters{
				MinStars:          model.Float(50),
				MinForks:          model.Float(10),
				MinOwnerFollowers: model.Float(50),
				ActiveWithinDays:  model.Float(30),
			},
			want: []string{"big", "mid"},
		},
		{
			name:    "language and topic do not filter",
			filters: model.SearchFilters{Language: "go", Topic: "cli"},
			want:    []string{"big", "bare", "small", "mid"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := titles(Filter(issues, tt.filters))
			if len(got) != len(tt.want) {
				t.Fatalf("Filter() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("Filter() = %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestFilterEmpty(t *testing.T) {
	got := Filter(nil, model.SearchFilters{MinStars: model.Float(1)})
	if got == nil || len(got) != 0 {
		t.Errorf("Filter(nil) = %#v, want empty non-nil slice", got)
	}
}

func TestMatchesUnenrichedWithActivityFilter(t *testing.T) {
	issue := model.Issue{Title: "bare"}
	if Matches(&issue, model.SearchFilters{ActiveWithinDays: model.Float(365)}) {
		t.Error("unenriched issue should fail the activity filter")
	}
}
