package metrics

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Middleware records request counts and latencies. Requests are labelled by
// their chi route pattern so usernames never become label values.
func (r *Recorder) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if req.URL.Path == "/metrics" {
			next.ServeHTTP(w, req)
			return
		}

		start := time.Now()
		sr := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(sr, req)

		duration := time.Since(start).Seconds()
		route := routePattern(req)
		statusStr := strconv.Itoa(sr.status)

		r.httpRequests.WithLabelValues(req.Method, route, statusStr).Inc()
		r.httpDuration.WithLabelValues(req.Method, route).Observe(duration)

		slog.Default().Debug("request metrics updated",
			"method", req.Method,
			"route", route,
			"status", sr.status,
			"duration_seconds", duration,
		)
	})
}

func routePattern(req *http.Request) string {
	if rctx := chi.RouteContext(req.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return "unmatched"
}
