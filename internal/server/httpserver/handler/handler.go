// Package handler provides HTTP request handlers for dialauth.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/yndnr/dialauth/internal/core/domain"
	"github.com/yndnr/dialauth/internal/core/service"
	"github.com/yndnr/dialauth/internal/telemetry/logger"
	"github.com/yndnr/dialauth/internal/telemetry/metric"
)

// Handler is the main HTTP handler that routes requests to the resource
// handlers.
type Handler struct {
	users     *service.UserService
	authority *service.TokenAuthority
	metrics   *metric.Registry
	log       logger.Logger
	mux       *http.ServeMux
}

// New creates a new Handler with the given services.
func New(users *service.UserService, authority *service.TokenAuthority, metrics *metric.Registry, log logger.Logger) *Handler {
	if log == nil {
		log = logger.Default()
	}
	h := &Handler{
		users:     users,
		authority: authority,
		metrics:   metrics,
		log:       log,
		mux:       http.NewServeMux(),
	}

	h.registerRoutes()
	return h
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

// registerRoutes registers all HTTP routes. Resource paths register
// without a method so the resource handlers own verb dispatch and can
// answer 405 themselves.
func (h *Handler) registerRoutes() {
	h.mux.HandleFunc("/ping", h.handlePing)
	h.mux.HandleFunc("/health", h.handleHealth)
	h.mux.HandleFunc("/users", h.handleUsers)
	h.mux.HandleFunc("/tokens", h.handleTokens)

	// Everything else is an unknown route.
	h.mux.HandleFunc("/", h.handleNotFound)
}

// handleNotFound answers unknown routes with a JSON 404.
func (h *Handler) handleNotFound(w http.ResponseWriter, r *http.Request) {
	h.writeError(w, r, http.StatusNotFound, domain.ErrRouteNotFound.Code, domain.ErrRouteNotFound.Message, nil)
}

// writeJSON writes a JSON response with the standard envelope format.
func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	requestID := getRequestID(r)
	response := NewResponse(requestID, data)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.log.Error("failed to encode response", "error", err)
	}
}

// writeError writes an error response with the standard envelope format.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, status int, code, message string, details any) {
	requestID := getRequestID(r)
	response := NewErrorResponse(requestID, code, message, details)

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Error-Code", code)
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(response)
}

// methodNotAllowed rejects a verb outside the resource's closed set.
func (h *Handler) methodNotAllowed(w http.ResponseWriter, r *http.Request, allowed string) {
	w.Header().Set("Allow", allowed)
	h.writeError(w, r, http.StatusMethodNotAllowed, domain.ErrMethodNotAllowed.Code, domain.ErrMethodNotAllowed.Message, nil)
}

// getRequestID extracts the request ID set by the middleware.
func getRequestID(r *http.Request) string {
	if reqID := logger.RequestIDFromContext(r.Context()); reqID != "" {
		return reqID
	}
	return r.Header.Get("X-Request-ID")
}

// handleServiceError converts service errors to HTTP responses. Every
// collaborator failure crosses this boundary as a domain error; anything
// else is an internal fault.
func (h *Handler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var derr *domain.DomainError
	if errors.As(err, &derr) {
		if derr.Code == domain.ErrTokenForbidden.Code {
			h.metrics.RecordAuthDecision(false)
		}
		status := domain.HTTPStatus(derr.Code)

		// Storage faults carry internals; log them and report a generic
		// failure instead.
		if status >= 500 {
			h.log.Error("request failed", "code", derr.Code, "error", err)
			h.writeError(w, r, status, derr.Code, "internal server error", nil)
			return
		}

		var details any
		if derr.Details != "" {
			details = derr.Details
		}
		h.writeError(w, r, status, derr.Code, derr.Message, details)
		return
	}

	h.log.Error("internal error", "error", err)
	h.writeError(w, r, http.StatusInternalServerError, domain.ErrInternal.Code, "internal server error", nil)
}
