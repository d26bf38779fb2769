package service

import (
	"github.com/spiffcs/goodfirst/internal/constants"
	"github.com/spiffcs/goodfirst/internal/ghclient"
)

// UpstreamError reports a failed issue search. Message is what callers see:
// GitHub's own error message when it sent one, otherwise a generic one.
type UpstreamError struct {
	Message string
	Err     error
}

func (e *UpstreamError) Error() string {
	return "issue search failed: " + e.Err.Error()
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

func newUpstreamError(err error) *UpstreamError {
	msg := ghclient.UpstreamMessage(err)
	if msg == "" {
		msg = constants.DefaultSearchErrorMessage
	}
	return &UpstreamError{Message: msg, Err: err}
}
