package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/dennisdiepolder/monti/calldash/internal/types"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the dashboard's Prometheus collectors.
// All methods are safe to call on a nil *Metrics.
type Metrics struct {
	rendersTotal          prometheus.Counter
	renderDuration        prometheus.Histogram
	fetchFailuresTotal    *prometheus.CounterVec
	recordingJoinFailures prometheus.Counter
	recordsRendered       *prometheus.GaugeVec
	agentsByStatus        *prometheus.GaugeVec
	httpRequestsTotal     *prometheus.CounterVec
	httpRequestDuration   *prometheus.HistogramVec

	gatherer prometheus.Gatherer
}

// New creates the collectors and registers them with reg.
// A nil reg uses a fresh registry.
func New(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	m := &Metrics{
		rendersTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "calldash",
			Subsystem: "dashboard",
			Name:      "renders_total",
			Help:      "Total dashboard renders",
		}),
		renderDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "calldash",
			Subsystem: "dashboard",
			Name:      "render_duration_seconds",
			Help:      "Time spent building one dashboard, including telephony calls",
			Buckets:   prometheus.DefBuckets,
		}),
		fetchFailuresTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "calldash",
			Subsystem: "dashboard",
			Name:      "fetch_failures_total",
			Help:      "Collaborator failures that degraded a render to an empty list",
		}, []string{"source"}),
		recordingJoinFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "calldash",
			Subsystem: "dashboard",
			Name:      "recording_join_failures_total",
			Help:      "Recordings dropped because their parent call could not be resolved",
		}),
		recordsRendered: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "calldash",
			Subsystem: "dashboard",
			Name:      "records",
			Help:      "Rows in the most recent render",
		}, []string{"kind"}),
		agentsByStatus: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "calldash",
			Subsystem: "agents",
			Name:      "by_status",
			Help:      "Agents per normalized status in the most recent render",
		}, []string{"status"}),
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "calldash",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by route and status",
		}, []string{"route", "status"}),
		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "calldash",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by route",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		gatherer: reg,
	}

	reg.MustRegister(
		m.rendersTotal,
		m.renderDuration,
		m.fetchFailuresTotal,
		m.recordingJoinFailures,
		m.recordsRendered,
		m.agentsByStatus,
		m.httpRequestsTotal,
		m.httpRequestDuration,
	)
	return m
}

// RecordRender records a completed render
func (m *Metrics) RecordRender(duration time.Duration, calls, recordings, agents int) {
	if m == nil {
		return
	}
	m.rendersTotal.Inc()
	m.renderDuration.Observe(duration.Seconds())
	m.recordsRendered.WithLabelValues("calls").Set(float64(calls))
	m.recordsRendered.WithLabelValues("recordings").Set(float64(recordings))
	m.recordsRendered.WithLabelValues("agents").Set(float64(agents))
}

// RecordFetchFailure counts a collaborator failure for source
func (m *Metrics) RecordFetchFailure(source string) {
	if m == nil {
		return
	}
	m.fetchFailuresTotal.WithLabelValues(source).Inc()
}

// RecordJoinFailures counts recordings dropped from a render
func (m *Metrics) RecordJoinFailures(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.recordingJoinFailures.Add(float64(n))
}

// UpdateAgentStats replaces the per-status agent gauges
func (m *Metrics) UpdateAgentStats(tally types.StatusTally) {
	if m == nil {
		return
	}
	m.agentsByStatus.Reset()
	for status, count := range tally {
		m.agentsByStatus.WithLabelValues(string(status)).Set(float64(count))
	}
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(route string, statusCode int, duration time.Duration) {
	if m == nil {
		return
	}
	m.httpRequestsTotal.WithLabelValues(route, strconv.Itoa(statusCode)).Inc()
	m.httpRequestDuration.WithLabelValues(route).Observe(duration.Seconds())
}

// UnmatchedRoute is the route label for requests that matched no chi route
const UnmatchedRoute = "unmatched"

// Middleware records request counts and latency per chi route pattern
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := UnmatchedRoute
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.RecordHTTPRequest(route, status, time.Since(start))
	})
}

// Handler returns an HTTP handler for the /metrics endpoint
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
