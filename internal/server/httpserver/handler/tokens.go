// Package handler provides HTTP request handlers for dialauth.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/yndnr/dialauth/internal/core/domain"
	"github.com/yndnr/dialauth/internal/core/service"
)

// handleTokens dispatches /tokens requests over the closed verb set.
func (h *Handler) handleTokens(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.login(w, r)
	case http.MethodGet:
		h.lookupToken(w, r)
	case http.MethodPut:
		h.renewToken(w, r)
	case http.MethodDelete:
		h.revokeToken(w, r)
	default:
		h.methodNotAllowed(w, r, "POST, GET, PUT, DELETE")
	}
}

// login handles POST /tokens. Returns the full token record.
func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, http.StatusBadRequest, domain.ErrBadRequest.Code, "invalid request body", nil)
		return
	}

	resp, err := h.authority.Issue(r.Context(), &service.IssueTokenRequest{
		Phone:    req.Phone,
		Password: req.Password,
	})
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.metrics.TokensIssued.Inc()
	h.writeJSON(w, r, http.StatusOK, tokenToResponse(resp.Token))
}

// lookupToken handles GET /tokens?id=...
func (h *Handler) lookupToken(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		h.writeError(w, r, http.StatusBadRequest, domain.ErrMissingArgument.Code, "id is required", nil)
		return
	}

	tok, err := h.authority.Get(r.Context(), &service.GetTokenRequest{ID: id})
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, tokenToResponse(tok))
}

// renewToken handles PUT /tokens. The body must carry extend=true; a
// renewal of an unknown token is the caller's error, not a routing miss.
func (h *Handler) renewToken(w http.ResponseWriter, r *http.Request) {
	var req RenewTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, http.StatusBadRequest, domain.ErrBadRequest.Code, "invalid request body", nil)
		return
	}
	if req.ID == "" || !req.Extend {
		h.writeError(w, r, http.StatusBadRequest, domain.ErrMissingArgument.Code, "id and extend=true are required", nil)
		return
	}

	resp, err := h.authority.Renew(r.Context(), &service.RenewTokenRequest{ID: req.ID})
	if err != nil {
		if errors.Is(err, domain.ErrTokenNotFound) {
			err = domain.ErrTokenMissing
		}
		h.handleServiceError(w, r, err)
		return
	}

	h.metrics.TokensRenewed.Inc()
	h.writeJSON(w, r, http.StatusOK, tokenToResponse(resp.Token))
}

// revokeToken handles DELETE /tokens?id=...
func (h *Handler) revokeToken(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		h.writeError(w, r, http.StatusBadRequest, domain.ErrMissingArgument.Code, "id is required", nil)
		return
	}

	if err := h.authority.Revoke(r.Context(), &service.RevokeTokenRequest{ID: id}); err != nil {
		if errors.Is(err, domain.ErrTokenNotFound) {
			err = domain.ErrTokenMissing
		}
		h.handleServiceError(w, r, err)
		return
	}

	h.metrics.TokensRevoked.Inc()
	h.writeJSON(w, r, http.StatusOK, nil)
}

// tokenToResponse converts a domain.Token to a TokenResponse.
func tokenToResponse(t *domain.Token) TokenResponse {
	return TokenResponse{
		Phone:   t.Phone,
		ID:      t.ID,
		Expires: t.Expires,
	}
}
