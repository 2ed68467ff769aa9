// Package metric provides Prometheus metrics for dialauth.
package metric

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds all application metrics.
type Registry struct {
	registry *prometheus.Registry

	// Request metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// Token metrics
	TokensIssued  prometheus.Counter
	TokensRenewed prometheus.Counter
	TokensRevoked prometheus.Counter

	// Authorization gate outcomes, labeled allowed="true"/"false".
	AuthDecisions *prometheus.CounterVec

	// User metrics
	UsersCreated prometheus.Counter
	UsersDeleted prometheus.Counter
}

// NewRegistry creates the application metric registry with all collectors
// registered, including the Go runtime and process collectors.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	r := &Registry{
		registry: reg,
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dialauth_requests_total",
			Help: "Total HTTP requests by route, method, and status code.",
		}, []string{"route", "method", "status"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "dialauth_request_duration_seconds",
			Help:    "HTTP request latency by route and method.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method"}),
		TokensIssued: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dialauth_tokens_issued_total",
			Help: "Session tokens issued through login.",
		}),
		TokensRenewed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dialauth_tokens_renewed_total",
			Help: "Session token renewals.",
		}),
		TokensRevoked: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dialauth_tokens_revoked_total",
			Help: "Session tokens revoked through logout.",
		}),
		AuthDecisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dialauth_auth_decisions_total",
			Help: "Authorization gate outcomes.",
		}, []string{"allowed"}),
		UsersCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dialauth_users_created_total",
			Help: "User accounts registered.",
		}),
		UsersDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dialauth_users_deleted_total",
			Help: "User accounts deleted.",
		}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.RequestsTotal,
		r.RequestDuration,
		r.TokensIssued,
		r.TokensRenewed,
		r.TokensRevoked,
		r.AuthDecisions,
		r.UsersCreated,
		r.UsersDeleted,
	)

	return r
}

// Registerer exposes the underlying registerer so subsystems (e.g. the
// Badger engine) can attach their own collectors.
func (r *Registry) Registerer() prometheus.Registerer {
	return r.registry
}

// Handler returns the /metrics HTTP handler.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// ObserveRequest records one completed HTTP request.
func (r *Registry) ObserveRequest(route, method string, status int, elapsed time.Duration) {
	r.RequestsTotal.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	r.RequestDuration.WithLabelValues(route, method).Observe(elapsed.Seconds())
}

// RecordAuthDecision records one authorization gate outcome.
func (r *Registry) RecordAuthDecision(allowed bool) {
	r.AuthDecisions.WithLabelValues(strconv.FormatBool(allowed)).Inc()
}
