// Package constants provides a centralized location for the configuration
// values and magic numbers used throughout goodfirst.
package constants

import "time"

// GitHub API constants
const (
	// DefaultAPIURL is the GitHub REST API base URL. It must end in a slash.
	DefaultAPIURL = "https://api.github.com/"

	// MediaTypeGitHubJSON is the Accept header sent with every upstream call.
	MediaTypeGitHubJSON = "application/vnd.github+json"

	// GoodFirstIssueLabel is the label every search is restricted to.
	GoodFirstIssueLabel = "good first issue"

	// DefaultSearchErrorMessage is returned to callers when a failed search
	// carries no upstream message.
	DefaultSearchErrorMessage = "An error occurred while fetching issues"
)

// Rate limiting constants
const (
	// RateLimitLowWatermark is the threshold below which rate limit
	// warnings are logged.
	RateLimitLowWatermark = 100
)

// Enrichment constants
const (
	// DefaultActivityWindowDays is the activity window used for scoring
	// when a request does not supply activeWithinDays.
	DefaultActivityWindowDays = 180

	// DefaultEnrichWorkers caps concurrent repository and owner lookups
	// within a single request.
	DefaultEnrichWorkers = 20
)

// Server constants
const (
	// DefaultListenAddr is the address the gateway listens on.
	DefaultListenAddr = ":3000"

	// DefaultReadTimeout bounds reading an inbound request.
	DefaultReadTimeout = 15 * time.Second

	// DefaultWriteTimeout bounds a full request, upstream fan-out included.
	DefaultWriteTimeout = 60 * time.Second

	// DefaultIdleTimeout bounds keep-alive connections.
	DefaultIdleTimeout = 120 * time.Second

	// ShutdownTimeout is how long in-flight requests get on SIGINT/SIGTERM.
	ShutdownTimeout = 10 * time.Second

	// DefaultServiceName identifies the gateway in traces.
	DefaultServiceName = "goodfirst"

	// LogThrottlePercent spaces CLI progress lines by this many percent.
	LogThrottlePercent = 10
)

// Maintenance note constants
const (
	NoteRecentlyUpdated   = "recently updated"
	NotePopular           = "popular (stars)"
	NoteCommunityForks    = "community forks"
	NoteOwnerHasFollowers = "owner has followers"
	NoteArchived          = "archived"
)

// PushedAtLayout renders repository push times as ISO-8601 UTC with
// millisecond precision.
const PushedAtLayout = "2006-01-02T15:04:05.000Z"
