// Package server exposes the issue aggregator over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spiffcs/goodfirst/internal/constants"
	"github.com/spiffcs/goodfirst/internal/log"
	"github.com/spiffcs/goodfirst/internal/metrics"
	"github.com/spiffcs/goodfirst/internal/model"
	"github.com/spiffcs/goodfirst/internal/service"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Route paths
const (
	PathIssues  = "/github/issues"
	PathHealth  = "/healthz"
	PathMetrics = "/metrics"
)

// IssueService finds good first issues for a set of filters.
type IssueService interface {
	GoodFirstIssues(ctx context.Context, filters model.SearchFilters) ([]model.Issue, error)
}

// Ensure the aggregator satisfies IssueService.
var _ IssueService = (*service.IssueAggregator)(nil)

// Server represents the HTTP gateway
type Server struct {
	issues  IssueService
	metrics *metrics.Metrics
}

// New creates a new gateway server. m may be nil.
func New(issues IssueService, m *metrics.Metrics) *Server {
	return &Server{
		issues:  issues,
		metrics: m,
	}
}

// Routes configures HTTP routes and middleware
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc(PathIssues, s.handleIssues)
	mux.HandleFunc(PathHealth, s.handleHealth)
	mux.Handle(PathMetrics, promhttp.Handler())

	// Apply middleware, innermost first
	handler := s.loggingMiddleware(mux)
	handler = requestIDMiddleware(handler)

	return otelhttp.NewHandler(handler, "goodfirst-http",
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return r.Method + " " + routeLabel(r.URL.Path)
		}),
	)
}

// handleIssues handles GET /github/issues
func (s *Server) handleIssues(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		respondError(w, http.StatusMethodNotAllowed, http.StatusText(http.StatusMethodNotAllowed))
		return
	}

	filters := ParseFilters(r.URL.Query())

	issues, err := s.issues.GoodFirstIssues(r.Context(), filters)
	if err != nil {
		msg := constants.DefaultSearchErrorMessage
		var upstream *service.UpstreamError
		if errors.As(err, &upstream) {
			msg = upstream.Message
		}
		log.Info("issue search failed", "error", err, "request_id", RequestID(r.Context()))
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	respondJSON(w, http.StatusOK, issues)
}

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		respondError(w, http.StatusMethodNotAllowed, http.StatusText(http.StatusMethodNotAllowed))
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// errorBody is the JSON shape of every error response
type errorBody struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Debug("failed to write response", "error", err)
	}
}

// respondError writes an error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, errorBody{StatusCode: status, Message: message})
}
