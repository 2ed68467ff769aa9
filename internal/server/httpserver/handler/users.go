// Package handler provides HTTP request handlers for dialauth.
package handler

import (
	"encoding/json"
	"net/http"

	"github.com/yndnr/dialauth/internal/core/domain"
	"github.com/yndnr/dialauth/internal/core/service"
)

// handleUsers dispatches /users requests over the closed verb set.
func (h *Handler) handleUsers(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.createUser(w, r)
	case http.MethodGet:
		h.getUser(w, r)
	case http.MethodPut:
		h.updateUser(w, r)
	case http.MethodDelete:
		h.deleteUser(w, r)
	default:
		h.methodNotAllowed(w, r, "POST, GET, PUT, DELETE")
	}
}

// createUser handles POST /users. Registration requires no token.
func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, http.StatusBadRequest, domain.ErrBadRequest.Code, "invalid request body", nil)
		return
	}

	_, err := h.users.Create(r.Context(), &service.CreateUserRequest{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Phone:        req.Phone,
		Password:     req.Password,
		TOSAgreement: req.TOSAgreement,
	})
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.metrics.UsersCreated.Inc()
	h.writeJSON(w, r, http.StatusOK, nil)
}

// getUser handles GET /users?phone=...
func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	phone := r.URL.Query().Get("phone")
	if phone == "" {
		h.writeError(w, r, http.StatusBadRequest, domain.ErrMissingArgument.Code, "phone is required", nil)
		return
	}

	user, err := h.users.Get(r.Context(), &service.GetUserRequest{
		Phone: phone,
		Token: r.Header.Get(TokenHeader),
	})
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.metrics.RecordAuthDecision(true)
	h.writeJSON(w, r, http.StatusOK, userToResponse(user))
}

// updateUser handles PUT /users.
func (h *Handler) updateUser(w http.ResponseWriter, r *http.Request) {
	var req UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, http.StatusBadRequest, domain.ErrBadRequest.Code, "invalid request body", nil)
		return
	}

	resp, err := h.users.Update(r.Context(), &service.UpdateUserRequest{
		Phone:     req.Phone,
		Token:     r.Header.Get(TokenHeader),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  req.Password,
	})
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.metrics.RecordAuthDecision(true)
	h.writeJSON(w, r, http.StatusOK, userToResponse(resp.User))
}

// deleteUser handles DELETE /users?phone=...
func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	phone := r.URL.Query().Get("phone")
	if phone == "" {
		h.writeError(w, r, http.StatusBadRequest, domain.ErrMissingArgument.Code, "phone is required", nil)
		return
	}

	err := h.users.Delete(r.Context(), &service.DeleteUserRequest{
		Phone: phone,
		Token: r.Header.Get(TokenHeader),
	})
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.metrics.RecordAuthDecision(true)
	h.metrics.UsersDeleted.Inc()
	h.writeJSON(w, r, http.StatusOK, nil)
}

// userToResponse converts a domain.User to a UserResponse.
func userToResponse(u *domain.User) UserResponse {
	return UserResponse{
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Phone:        u.Phone,
		TOSAgreement: u.TOSAgreement,
	}
}
