// Package handler provides HTTP request handlers for dialauth.
package handler

import "time"

// TokenHeader is the request header carrying the session token ID.
const TokenHeader = "token"

// Response is the standard API response envelope.
// All JSON responses use this format (except /metrics which uses
// Prometheus format).
type Response struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id"`
	Timestamp int64  `json:"timestamp"`
	Data      any    `json:"data,omitempty"`
	Details   any    `json:"details,omitempty"`
}

// NewResponse creates a success response.
func NewResponse(requestID string, data any) *Response {
	return &Response{
		Code:      "OK",
		Message:   "Success",
		RequestID: requestID,
		Timestamp: time.Now().UnixMilli(),
		Data:      data,
	}
}

// NewErrorResponse creates an error response.
func NewErrorResponse(requestID, code, message string, details any) *Response {
	return &Response{
		Code:      code,
		Message:   message,
		RequestID: requestID,
		Timestamp: time.Now().UnixMilli(),
		Details:   details,
	}
}

// CreateUserRequest is the request body for POST /users.
type CreateUserRequest struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Phone        string `json:"phone"`
	Password     string `json:"password"`
	TOSAgreement bool   `json:"tosAgreement"`
}

// UpdateUserRequest is the request body for PUT /users. Phone selects
// the account; at least one of the other fields must be present.
type UpdateUserRequest struct {
	Phone     string `json:"phone"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Password  string `json:"password,omitempty"`
}

// UserResponse represents a user account in API responses. The password
// digest never appears here.
type UserResponse struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Phone        string `json:"phone"`
	TOSAgreement bool   `json:"tosAgreement"`
}

// LoginRequest is the request body for POST /tokens.
type LoginRequest struct {
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// RenewTokenRequest is the request body for PUT /tokens. Extend must be
// true for the renewal to proceed.
type RenewTokenRequest struct {
	ID     string `json:"id"`
	Extend bool   `json:"extend"`
}

// TokenResponse represents a session token in API responses. Expires is
// a Unix millisecond timestamp.
type TokenResponse struct {
	Phone   string `json:"phone"`
	ID      string `json:"id"`
	Expires int64  `json:"expires"`
}
