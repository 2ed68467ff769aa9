// Package httpserver provides the HTTP/HTTPS server for dialauth.
package httpserver

import (
	"net/http"

	"github.com/yndnr/dialauth/internal/core/service"
	"github.com/yndnr/dialauth/internal/server/httpserver/handler"
	"github.com/yndnr/dialauth/internal/telemetry/logger"
	"github.com/yndnr/dialauth/internal/telemetry/metric"
)

// RouterConfig holds configuration for the HTTP router.
type RouterConfig struct {
	// UserService handles account operations.
	UserService *service.UserService

	// TokenAuthority handles token operations.
	TokenAuthority *service.TokenAuthority

	// Metrics receives request observations and domain counters.
	Metrics *metric.Registry

	// Logger for request logging.
	Logger logger.Logger

	// GlobalRateLimit is the per-IP request budget in requests per
	// second. Zero disables it.
	GlobalRateLimit int

	// LoginRateLimit is the per-IP login budget in requests per minute.
	// Zero disables it.
	LoginRateLimit int

	// EnableAudit enables per-request audit logging.
	EnableAudit bool
}

// NewRouter creates the HTTP handler pipeline with all routes and
// middleware.
func NewRouter(cfg *RouterConfig) http.Handler {
	log := cfg.Logger
	if log == nil {
		log = logger.Default()
	}
	if cfg.Metrics == nil {
		cfg.Metrics = metric.NewRegistry()
	}

	h := handler.New(cfg.UserService, cfg.TokenAuthority, cfg.Metrics, log)

	// Order: Recover -> RequestID -> Metrics -> RateLimit ->
	// LoginRateLimit -> Audit -> Handler.
	middlewares := []Middleware{
		Recover(log),
		RequestID(),
		Metrics(cfg.Metrics),
	}
	if cfg.GlobalRateLimit > 0 {
		middlewares = append(middlewares, RateLimit(cfg.GlobalRateLimit))
	}
	if cfg.LoginRateLimit > 0 {
		middlewares = append(middlewares, LoginRateLimit(cfg.LoginRateLimit))
	}
	if cfg.EnableAudit {
		middlewares = append(middlewares, Audit(log))
	}

	mainHandler := Chain(h, middlewares...)

	mux := http.NewServeMux()

	// Metrics exposition sits outside the resource handler and skips
	// rate limiting so scrapes never compete with clients.
	mux.Handle("/metrics", Chain(cfg.Metrics.Handler(), Recover(log), RequestID()))

	mux.Handle("/", mainHandler)

	return mux
}

// DefaultRouterConfig returns default router configuration.
func DefaultRouterConfig() *RouterConfig {
	return &RouterConfig{
		GlobalRateLimit: 100,
		LoginRateLimit:  10,
		EnableAudit:     true,
	}
}
