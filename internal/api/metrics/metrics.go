// Package metrics defines the Prometheus metrics exported by the API. It is
// the single source of truth for metric names, labels and help strings.
//
// Metrics live on their own registry rather than the global default so that
// every server instance, including the ones built by tests, starts clean.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Auth attempt labels.
const (
	ActionLogin    = "login"
	ActionRegister = "register"

	ResultSuccess  = "success"
	ResultFailure  = "failure"
	ResultRejected = "rejected"
)

// Metrics holds every collector exported at /metrics.
type Metrics struct {
	registry *prometheus.Registry

	// RequestsTotal counts served requests.
	// Labels:
	//   - method: HTTP method
	//   - route: chi route pattern (e.g. "/api/posts/{id}"), never the raw path
	//   - status: response status code
	RequestsTotal *prometheus.CounterVec

	// RequestDuration measures handler latency per route.
	RequestDuration *prometheus.HistogramVec

	// AuthAttemptsTotal counts register and login attempts.
	// Labels:
	//   - action: "login" or "register"
	//   - result: "success", "failure" (bad credentials or conflict) or
	//     "rejected" (invalid payload)
	AuthAttemptsTotal *prometheus.CounterVec

	// PostsPublishedTotal counts draft to published transitions.
	PostsPublishedTotal prometheus.Counter
}

// New creates the collectors on a fresh registry, together with the Go
// runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests, by method, route and status.",
			},
			[]string{"method", "route", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests, by method and route.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		AuthAttemptsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "auth_attempts_total",
				Help: "Total number of register and login attempts, by action and result.",
			},
			[]string{"action", "result"},
		),
		PostsPublishedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "posts_published_total",
				Help: "Total number of posts moved from draft to published.",
			},
		),
	}
}

// ObserveRequest records one served request.
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	m.RequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.RequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// AuthAttempt records the outcome of a register or login call.
func (m *Metrics) AuthAttempt(action, result string) {
	m.AuthAttemptsTotal.WithLabelValues(action, result).Inc()
}

// PostPublished records a publication. It matches the post service's
// publish hook signature.
func (m *Metrics) PostPublished() {
	m.PostsPublishedTotal.Inc()
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
