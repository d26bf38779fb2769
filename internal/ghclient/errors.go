package ghclient

import (
	"errors"

	gh "github.com/google/go-github/v69/github"
)

// ErrMissingToken is returned when no GitHub token was provided.
var ErrMissingToken = errors.New("GitHub token not provided. Set the GITHUB_TOKEN environment variable")

// UpstreamMessage returns the message GitHub put in an error response body,
// or "" when err carries none (network failures, decoding errors).
func UpstreamMessage(err error) string {
	var rateErr *gh.RateLimitError
	if errors.As(err, &rateErr) {
		return rateErr.Message
	}

	var abuseErr *gh.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		return abuseErr.Message
	}

	var respErr *gh.ErrorResponse
	if errors.As(err, &respErr) {
		return respErr.Message
	}

	return ""
}
