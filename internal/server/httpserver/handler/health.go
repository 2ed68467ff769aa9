// Package handler provides HTTP request handlers for dialauth.
package handler

import (
	"net/http"

	"github.com/yndnr/dialauth/internal/infra/buildinfo"
)

// handlePing handles GET /ping. Liveness only, no body beyond the
// envelope.
func (h *Handler) handlePing(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.methodNotAllowed(w, r, "GET")
		return
	}
	h.writeJSON(w, r, http.StatusOK, nil)
}

// handleHealth handles GET /health with build information.
func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.methodNotAllowed(w, r, "GET")
		return
	}
	h.writeJSON(w, r, http.StatusOK, map[string]any{
		"status": "ok",
		"build":  buildinfo.Get(),
	})
}
