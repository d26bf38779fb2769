package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/spiffcs/goodfirst/internal/model"
	"github.com/spiffcs/goodfirst/internal/service"
)

// stubService records the filters it was called with
type stubService struct {
	issues []model.Issue
	err    error
	got    model.SearchFilters
}

func (s *stubService) GoodFirstIssues(_ context.Context, filters model.SearchFilters) ([]model.Issue, error) {
	s.got = filters
	return s.issues, s.err
}

func serve(t *testing.T, svc IssueService, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	New(svc, nil).Routes().ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func TestHandleIssues(t *testing.T) {
	stars := 60
	svc := &stubService{issues: []model.Issue{
		{
			Title:           "Fix typo",
			URL:             "https://github.com/octo/hello/issues/1",
			Repository:      "https://api.github.com/repos/octo/hello",
			CreatedAt:       time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
			Labels:          []string{"good first issue"},
			RepositoryStars: &stars,
			Maintenance:     &model.Maintenance{Score: 30, Notes: []string{}},
		},
		{
			Title:      "Unenriched",
			URL:        "https://github.com/octo/world/issues/2",
			Repository: "https://api.github.com/repos/octo/world",
			Labels:     []string{},
		},
	}}

	rec := serve(t, svc, http.MethodGet, "/github/issues?language=go&topic=good+first&minStars=50")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	if rec.Header().Get(HeaderRequestID) == "" {
		t.Error("expected a generated request ID")
	}

	if svc.got.Language != "go" || svc.got.Topic != "good first" {
		t.Errorf("filters = %+v", svc.got)
	}
	if svc.got.MinStars == nil || *svc.got.MinStars != 50 {
		t.Errorf("MinStars = %v, want 50", svc.got.MinStars)
	}

	var body []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(body) != 2 {
		t.Fatalf("got %d issues, want 2", len(body))
	}
	if body[0]["created_at"] != "2024-01-02T03:04:05Z" {
		t.Errorf("created_at = %v", body[0]["created_at"])
	}
	if body[0]["repository_stars"] != float64(60) {
		t.Errorf("repository_stars = %v", body[0]["repository_stars"])
	}
	m, ok := body[0]["maintenance"].(map[string]any)
	if !ok || m["score"] != float64(30) || m["activeRecently"] != false {
		t.Errorf("maintenance = %v", body[0]["maintenance"])
	}

	// Unenriched issues keep the base shape
	for _, key := range []string{"repository_stars", "repository_full_name", "owner_followers", "maintenance", "repository_archived"} {
		if _, present := body[1][key]; present {
			t.Errorf("unenriched issue has %q", key)
		}
	}
}

func TestHandleIssuesEmptyResult(t *testing.T) {
	rec := serve(t, &stubService{issues: []model.Issue{}}, http.MethodGet, "/github/issues")

	if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
		t.Errorf("body = %q, want []", got)
	}
}

func TestHandleIssuesErrors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantMsg string
	}{
		{
			name:    "upstream message",
			err:     &service.UpstreamError{Message: "Bad credentials", Err: errors.New("401")},
			wantMsg: "Bad credentials",
		},
		{
			name:    "unexpected error",
			err:     errors.New("boom"),
			wantMsg: "An error occurred while fetching issues",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, &stubService{err: tt.err}, http.MethodGet, "/github/issues")

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
			var body errorBody
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid JSON: %v", err)
			}
			if body.StatusCode != 400 || body.Message != tt.wantMsg {
				t.Errorf("body = %+v, want message %q", body, tt.wantMsg)
			}
		})
	}
}

func TestHandleIssuesMethodNotAllowed(t *testing.T) {
	svc := &stubService{}
	rec := serve(t, svc, http.MethodPost, "/github/issues")

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
	if rec.Header().Get("Allow") != http.MethodGet {
		t.Errorf("Allow = %q", rec.Header().Get("Allow"))
	}
}

func TestHealth(t *testing.T) {
	rec := serve(t, &stubService{}, http.MethodGet, "/healthz")

	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"status":"ok"`) {
		t.Errorf("health = %d %q", rec.Code, rec.Body.String())
	}
}

func TestMetricsEndpoint(t *testing.T) {
	rec := serve(t, &stubService{}, http.MethodGet, "/metrics")

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestRequestIDPassthrough(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(HeaderRequestID, "abc-123")
	rec := httptest.NewRecorder()

	New(&stubService{}, nil).Routes().ServeHTTP(rec, req)

	if got := rec.Header().Get(HeaderRequestID); got != "abc-123" {
		t.Errorf("request ID = %q, want abc-123", got)
	}
}

func TestParseFilters(t *testing.T) {
	tests := []struct {
		name  string
		query string
		check func(t *testing.T, f model.SearchFilters)
	}{
		{
			name:  "empty",
			query: "",
			check: func(t *testing.T, f model.SearchFilters) {
				if f.HasThresholds() || f.Language != "" || f.Topic != "" {
					t.Errorf("expected no filters, got %+v", f)
				}
			},
		},
		{
			name:  "all numeric",
			query: "minStars=50&minForks=10&minOwnerFollowers=50&activeWithinDays=30",
			check: func(t *testing.T, f model.SearchFilters) {
				if *f.MinStars != 50 || *f.MinForks != 10 || *f.MinOwnerFollowers != 50 || *f.ActiveWithinDays != 30 {
					t.Errorf("unexpected filters %+v", f)
				}
			},
		},
		{
			name:  "non-numeric is absent",
			query: "minStars=lots&minForks=NaN&minOwnerFollowers=Inf&activeWithinDays=12days",
			check: func(t *testing.T, f model.SearchFilters) {
				if f.HasThresholds() {
					t.Errorf("expected absent thresholds, got %+v", f)
				}
			},
		},
		{
			name:  "fractional values are kept",
			query: "minStars=49.5&minForks=1.5&activeWithinDays=0.5",
			check: func(t *testing.T, f model.SearchFilters) {
				if f.MinStars == nil || *f.MinStars != 49.5 {
					t.Errorf("MinStars = %v, want 49.5", f.MinStars)
				}
				if f.MinForks == nil || *f.MinForks != 1.5 {
					t.Errorf("MinForks = %v, want 1.5", f.MinForks)
				}
				if f.ActiveWithinDays == nil || *f.ActiveWithinDays != 0.5 {
					t.Errorf("ActiveWithinDays = %v, want 0.5", f.ActiveWithinDays)
				}
			},
		},
		{
			name:  "exponent notation",
			query: "minStars=1e2",
			check: func(t *testing.T, f model.SearchFilters) {
				if f.MinStars == nil || *f.MinStars != 100 {
					t.Errorf("MinStars = %v, want 100", f.MinStars)
				}
			},
		},
		{
			name:  "empty value counts as zero",
			query: "activeWithinDays=&minStars=%20%20",
			check: func(t *testing.T, f model.SearchFilters) {
				if f.ActiveWithinDays == nil || *f.ActiveWithinDays != 0 {
					t.Errorf("ActiveWithinDays = %v, want 0", f.ActiveWithinDays)
				}
				if f.MinStars == nil || *f.MinStars != 0 {
					t.Errorf("MinStars = %v, want 0", f.MinStars)
				}
				if f.MinForks != nil {
					t.Errorf("MinForks = %v, want absent", f.MinForks)
				}
			},
		},
		{
			name:  "whitespace is trimmed",
			query: "minStars=+12+",
			check: func(t *testing.T, f model.SearchFilters) {
				if f.MinStars == nil || *f.MinStars != 12 {
					t.Errorf("MinStars = %v, want 12", f.MinStars)
				}
			},
		},
		{
			name:  "zero is a present filter",
			query: "activeWithinDays=0",
			check: func(t *testing.T, f model.SearchFilters) {
				if f.ActiveWithinDays == nil || *f.ActiveWithinDays != 0 {
					t.Errorf("ActiveWithinDays = %v, want 0", f.ActiveWithinDays)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := url.ParseQuery(tt.query)
			if err != nil {
				t.Fatal(err)
			}
			tt.check(t, ParseFilters(q))
		})
	}
}

func TestRouteLabel(t *testing.T) {
	tests := map[string]string{
		"/github/issues": "/github/issues",
		"/healthz":       "/healthz",
		"/metrics":       "/metrics",
		"/random/path":   "other",
	}
	for path, want := range tests {
		if got := routeLabel(path); got != want {
			t.Errorf("routeLabel(%q) = %q, want %q", path, got, want)
		}
	}
}
