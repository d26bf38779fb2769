// Package maintenance scores repository health and filters enriched issues.
package maintenance

import (
	"time"

	"github.com/spiffcs/goodfirst/config"
	"github.com/spiffcs/goodfirst/internal/constants"
	"github.com/spiffcs/goodfirst/internal/model"
)

const msPerDay = float64(24 * time.Hour / time.Millisecond)

// Heuristics implements rule-based maintenance scoring
type Heuristics struct {
	Weights config.MaintenanceWeights
}

// NewHeuristics creates a new maintenance scorer with the given weights
func NewHeuristics(weights config.MaintenanceWeights) *Heuristics {
	return &Heuristics{
		Weights: weights,
	}
}

// IsActive reports whether pushedAt falls within windowDays of now. The
// boundary is inclusive and compared at millisecond precision. Fractional
// windows are allowed; a NaN window matches nothing.
func IsActive(pushedAt *time.Time, now time.Time, windowDays float64) bool {
	if pushedAt == nil {
		return false
	}

	elapsed := now.UnixMilli() - pushedAt.UnixMilli()
	return float64(elapsed) <= windowDays*msPerDay
}

// Score calculates the maintenance summary for a repository. It depends only
// on its arguments, so rescoring the same inputs yields the same result.
func (h *Heuristics) Score(meta model.RepositoryMeta, followers int, now time.Time, windowDays float64) model.Maintenance {
	w := h.Weights
	active := IsActive(meta.PushedAt, now, windowDays)

	score := 0
	notes := []string{}

	if active {
		score += w.ActiveBonus
		notes = append(notes, constants.NoteRecentlyUpdated)
	}
	if meta.Stars >= w.PopularStarsThreshold {
		score += w.PopularBonus
		notes = append(notes, constants.NotePopular)
	}
	if meta.Forks >= w.ForksThreshold {
		score += w.ForksBonus
		notes = append(notes, constants.NoteCommunityForks)
	}
	if followers >= w.FollowersThreshold {
		score += w.FollowersBonus
		notes = append(notes, constants.NoteOwnerHasFollowers)
	}
	// Archived repositories lose the bonus and get a note instead
	if !meta.Archived {
		score += w.NotArchivedBonus
	} else {
		notes = append(notes, constants.NoteArchived)
	}

	return model.Maintenance{
		ActiveRecently: active,
		Score:          max(min(score, w.MaxScore), 0),
		Notes:          notes,
	}
}

// Apply returns a copy of issue carrying the repository and owner data
// along with its maintenance score.
func (h *Heuristics) Apply(issue model.Issue, meta model.RepositoryMeta, followers int, now time.Time, windowDays float64) model.Issue {
	m := h.Score(meta, followers, now, windowDays)

	stars, forks, archived := meta.Stars, meta.Forks, meta.Archived

	issue.RepositoryFullName = meta.FullName
	issue.RepositoryStars = &stars
	issue.RepositoryForks = &forks
	issue.RepositoryArchived = &archived
	issue.OwnerLogin = meta.OwnerLogin
	issue.OwnerFollowers = &followers
	issue.Maintenance = &m

	issue.RepositoryPushedAt = ""
	if meta.PushedAt != nil {
		issue.RepositoryPushedAt = meta.PushedAt.UTC().Format(constants.PushedAtLayout)
	}

	return issue
}
