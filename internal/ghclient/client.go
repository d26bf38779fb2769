package ghclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	gh "github.com/google/go-github/v69/github"
	"github.com/spiffcs/goodfirst/internal/constants"
	"github.com/spiffcs/goodfirst/internal/log"
	"github.com/spiffcs/goodfirst/internal/metrics"
	"golang.org/x/oauth2"
)

// rateLimitTransport wraps an http.RoundTripper to observe GitHub rate limits.
// It never blocks or retries; it only reports what the headers say.
type rateLimitTransport struct {
	base    http.RoundTripper
	metrics *metrics.Metrics
}

func (t *rateLimitTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.base.RoundTrip(req)
	if err != nil {
		t.metrics.RecordUpstreamResponse("error", -1)
		return resp, err
	}

	remaining, resetAt := parseRateLimitHeaders(resp)
	t.metrics.RecordUpstreamResponse(statusClass(resp.StatusCode), remaining)

	if remaining >= 0 && remaining <= constants.RateLimitLowWatermark {
		log.Debug("rate limit low", "remaining", remaining, "resets_at", resetAt.Format(time.RFC3339))
	}

	return resp, nil
}

// parseRateLimitHeaders extracts rate limit info from response headers.
// remaining is -1 when the header is absent.
func parseRateLimitHeaders(resp *http.Response) (remaining int, resetAt time.Time) {
	remaining = -1

	if remainingStr := resp.Header.Get("X-RateLimit-Remaining"); remainingStr != "" {
		if rem, err := strconv.Atoi(remainingStr); err == nil {
			remaining = rem
		}
	}

	if resetStr := resp.Header.Get("X-RateLimit-Reset"); resetStr != "" {
		if resetTime, err := strconv.ParseInt(resetStr, 10, 64); err == nil {
			resetAt = time.Unix(resetTime, 0)
		}
	}

	return remaining, resetAt
}

func statusClass(code int) string {
	return fmt.Sprintf("%dxx", code/100)
}

// acceptTransport pins the Accept header of every upstream request.
type acceptTransport struct {
	base      http.RoundTripper
	mediaType string
}

func (t *acceptTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// RoundTrippers must not modify the caller's request
	r := req.Clone(req.Context())
	r.Header.Set("Accept", t.mediaType)
	return t.base.RoundTrip(r)
}

// Client wraps the GitHub API client
type Client struct {
	client *gh.Client
}

type clientOptions struct {
	baseURL   string
	transport http.RoundTripper
	metrics   *metrics.Metrics
}

// Option configures a Client
type Option func(*clientOptions)

// WithBaseURL points the client at a different REST API root, e.g. a
// GitHub Enterprise server or a test server.
func WithBaseURL(u string) Option {
	return func(o *clientOptions) {
		o.baseURL = u
	}
}

// WithTransport sets the innermost transport used for upstream calls.
func WithTransport(rt http.RoundTripper) Option {
	return func(o *clientOptions) {
		o.transport = rt
	}
}

// WithMetrics records upstream responses into m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(o *clientOptions) {
		o.metrics = m
	}
}

// NewClient creates a new GitHub client authenticating with a bearer token.
func NewClient(ctx context.Context, token string, opts ...Option) (*Client, error) {
	if token == "" {
		return nil, ErrMissingToken
	}

	o := clientOptions{transport: http.DefaultTransport}
	for _, opt := range opts {
		opt(&o)
	}

	base := &http.Client{
		Transport: &rateLimitTransport{
			base: &acceptTransport{
				base:      o.transport,
				mediaType: constants.MediaTypeGitHubJSON,
			},
			metrics: o.metrics,
		},
	}
	ctx = context.WithValue(ctx, oauth2.HTTPClient, base)

	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	client := gh.NewClient(oauth2.NewClient(ctx, ts))

	if o.baseURL != "" {
		u, err := parseBaseURL(o.baseURL)
		if err != nil {
			return nil, err
		}
		client.BaseURL = u
	}

	return &Client{client: client}, nil
}

// parseBaseURL parses an API root, adding the trailing slash go-github
// requires for relative path resolution.
func parseBaseURL(raw string) (*url.URL, error) {
	if !strings.HasSuffix(raw, "/") {
		raw += "/"
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid GitHub API URL %q: %w", raw, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid GitHub API URL %q: scheme and host are required", raw)
	}
	return u, nil
}

// upstreamContext turns off go-github's local rate limit check, which would
// otherwise answer later calls from state left behind by an earlier 403.
// Every call goes upstream and reports GitHub's own error.
func upstreamContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, gh.BypassRateLimitCheck, true)
}

// RateLimits fetches the current GitHub API rate limit status.
func (c *Client) RateLimits(ctx context.Context) (*gh.RateLimits, error) {
	limits, _, err := c.client.RateLimit.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get rate limits: %w", err)
	}
	return limits, nil
}
