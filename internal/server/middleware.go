package server

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/spiffcs/goodfirst/internal/log"
)

// HeaderRequestID carries the request ID in both directions
const HeaderRequestID = "X-Request-ID"

type requestIDKey struct{}

// RequestID returns the ID assigned to the request carried by ctx, or "".
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// requestIDMiddleware reuses the caller's X-Request-ID or assigns a new one,
// and echoes it on the response.
func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(HeaderRequestID, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id)))
	})
}

// statusRecorder captures the status code written by a handler
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	if r.status == 0 {
		r.status = code
	}
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	return r.ResponseWriter.Write(b)
}

func (r *statusRecorder) Status() int {
	if r.status == 0 {
		return http.StatusOK
	}
	return r.status
}

// loggingMiddleware logs and records every request
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}

		next.ServeHTTP(rec, r)

		elapsed := time.Since(start)
		route := routeLabel(r.URL.Path)
		s.metrics.RecordHTTPRequest(r.Method, route, strconv.Itoa(rec.Status()), elapsed.Seconds())

		log.Info("request served",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.Status(),
			"duration", elapsed.Round(time.Microsecond).String(),
			"request_id", RequestID(r.Context()),
		)
	})
}

// routeLabel maps a request path to a bounded set of metric labels.
func routeLabel(path string) string {
	switch path {
	case PathIssues, PathHealth, PathMetrics:
		return path
	default:
		return "other"
	}
}
