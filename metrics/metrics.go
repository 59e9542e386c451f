// Copyright (c) 2026 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// AssignmentsTotal counts assignment operations by outcome
	// (ok, user_not_found, bill_not_found, limit_exceeded, invalid_stage,
	// already_assigned, conflict, error).
	AssignmentsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "billdesk_assignments_total",
			Help: "Assignment operations by outcome",
		},
		[]string{"outcome"},
	)

	// AssignmentRetries counts transaction attempts beyond the first.
	AssignmentRetries = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "billdesk_assignment_retries_total",
			Help: "Assignment transaction retries after a lost race",
		},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "billdesk_http_request_duration_seconds",
			Help:    "HTTP request duration by method, path pattern, and status",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)

// statusRecorder captures the response status code for metrics.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// WithMetrics records request duration and status for a handler.
// pattern should be the route pattern, not the raw path, to bound cardinality.
func WithMetrics(pattern string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next(rec, r)

		requestDuration.WithLabelValues(
			r.Method,
			pattern,
			strconv.Itoa(rec.status),
		).Observe(time.Since(start).Seconds())
	}
}

// Handler exposes the prometheus registry, mounted at GET /metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}
