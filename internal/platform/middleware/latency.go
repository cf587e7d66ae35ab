package middleware

import (
	"net/http"
	"strconv"
	"time"

	"workbench/internal/platform/metrics"
)

// Latency records per-request duration into the shared histogram.
func Latency(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)
			m.RequestDuration.WithLabelValues(
				r.Method,
				r.URL.Path,
				strconv.Itoa(rec.status),
			).Observe(float64(time.Since(start).Milliseconds()))
		})
	}
}
