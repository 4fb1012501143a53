package middleware

import (
	"net/http"
	"strconv"
	"time"

	"conferenceplanner/internal/metrics"
)

// Metrics records request count and latency. Labels stay low-cardinality:
// method and status only, never the raw path.
func Metrics(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := &responseWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(wrapped, r)
			m.ObserveRequest(r.Method, strconv.Itoa(wrapped.status), time.Since(start))
		})
	}
}
