package httpapi

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/Caseyio/federal-bid-prediction/internal/form"
)

// Outcome labels for bidpredict_http_requests_total. Requests that never
// ask for an estimate (options, health, the blank form) are outcomeNone.
const (
	outcomeNone     = "none"
	outcomeEstimate = "estimate"
	outcomeRejected = "rejected"
	outcomeFailed   = "failed"
)

var (
	requestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bidpredict",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by route pattern, status and estimate outcome",
		},
		[]string{"route", "method", "status", "outcome"},
	)

	requestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "bidpredict",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Time to answer an HTTP request",
			Buckets:   []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"route", "method"},
	)

	inflight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "bidpredict",
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Requests currently being served",
		},
	)

	rejectionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bidpredict",
			Subsystem: "http",
			Name:      "rejections_total",
			Help:      "Estimate requests refused, by reason: media_type, body, form or the offending field",
		},
		[]string{"reason"},
	)
)

func init() {
	prometheus.MustRegister(requestsTotal, requestDuration, inflight, rejectionsTotal)
}

type outcomeKey struct{}

// outcomeSlot is installed by MetricsMiddleware; handlers fill it in.
type outcomeSlot struct{ v string }

// setOutcome records how an estimate request ended. No-op outside
// MetricsMiddleware.
func setOutcome(r *http.Request, outcome string) {
	if s, ok := r.Context().Value(outcomeKey{}).(*outcomeSlot); ok {
		s.v = outcome
	}
}

// reject counts a refused estimate request and marks its outcome.
func reject(r *http.Request, reason string) {
	if reason == "" {
		reason = "unspecified"
	}
	rejectionsTotal.WithLabelValues(reason).Inc()
	setOutcome(r, outcomeRejected)
}

// recordResult marks the outcome of a Service.Predict call. Invalid input
// is counted under the name of the field that failed.
func recordResult(r *http.Request, err error) {
	switch {
	case err == nil:
		setOutcome(r, outcomeEstimate)
	case form.IsInvalidInput(err):
		reject(r, form.InvalidField(err))
	default:
		setOutcome(r, outcomeFailed)
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

// MetricsMiddleware instruments requests for Prometheus. Installed with
// Router.Use, the route pattern is read after routing has filled it in.
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		inflight.Inc()
		defer inflight.Dec()

		slot := &outcomeSlot{v: outcomeNone}
		r = r.WithContext(context.WithValue(r.Context(), outcomeKey{}, slot))
		sr := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(sr, r)

		route := routePattern(r)
		requestsTotal.WithLabelValues(route, r.Method, strconv.Itoa(sr.status), slot.v).Inc()
		requestDuration.WithLabelValues(route, r.Method).Observe(time.Since(start).Seconds())
	})
}

// routePattern returns the chi route pattern, or "unmatched" for requests
// no route claimed, so raw paths never become label values.
func routePattern(r *http.Request) string {
	if rc := chi.RouteContext(r.Context()); rc != nil {
		if p := rc.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}
