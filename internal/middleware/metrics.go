package middleware

import (
	"net/http"
	"time"

	"dev-grove/internal/utils"

	"github.com/go-chi/chi/v5"
)

// statusRecorder captures the response status written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(status int) {
	sr.status = status
	sr.ResponseWriter.WriteHeader(status)
}

// Metrics records request counts, error counts and per-route latency
// into the shared collector.
func Metrics(mc *utils.MetricsCollector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			mc.IncrementRequests()

			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(recorder, r)

			if recorder.status >= 400 {
				mc.IncrementErrors()
			}

			// The route pattern is only resolved after the router has run.
			operation := r.Method + " " + r.URL.Path
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				operation = r.Method + " " + rctx.RoutePattern()
			}
			mc.AddOperationLatency(operation, time.Since(start))
		})
	}
}
