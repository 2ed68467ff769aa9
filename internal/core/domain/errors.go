// Package domain defines the core domain models for dialauth.
package domain

import (
	"errors"
	"fmt"
	"strings"
)

// DomainError represents a business domain error with a structured error code.
// Codes follow the format DA-<AREA>-<NNNN>; the numeric suffix encodes the
// HTTP status class the error maps to at the edge.
type DomainError struct {
	Code    string // Error code (e.g., "DA-USER-4040")
	Message string // Human-readable message
	Details string // Optional additional details
	Cause   error  // Underlying error (if any)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap() support.
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is() support for error comparison.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new DomainError with the given code and message.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WithDetails returns a copy of the error with additional details.
func (e *DomainError) WithDetails(details string) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
		Cause:   e.Cause,
	}
}

// WithCause returns a copy of the error wrapping the given cause.
func (e *DomainError) WithCause(cause error) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
		Cause:   cause,
	}
}

// IsDomainError checks if an error is a DomainError with the given code.
// If code is empty, it only checks if the error is a DomainError.
func IsDomainError(err error, code string) bool {
	var de *DomainError
	if errors.As(err, &de) {
		if code == "" {
			return true
		}
		return de.Code == code
	}
	return false
}

// GetErrorCode extracts the error code from an error if it's a DomainError.
func GetErrorCode(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

// ============================================================================
// User Errors (USER)
// ============================================================================

var (
	// ErrUserValidation indicates user data validation failed.
	ErrUserValidation = NewDomainError("DA-USER-4001", "user validation failed")

	// ErrUserExists indicates a user record already occupies the phone key.
	// Reported to the caller as their fault (400), not as a conflict.
	ErrUserExists = NewDomainError("DA-USER-4002", "a user with that phone number already exists")

	// ErrUserMissing indicates the target user of an update or delete does
	// not exist. Deliberately a 400-class code, not 404; see DESIGN.md.
	ErrUserMissing = NewDomainError("DA-USER-4003", "the specified user does not exist")

	// ErrNothingToUpdate indicates an update request carried no updatable field.
	ErrNothingToUpdate = NewDomainError("DA-USER-4004", "missing fields to update")

	// ErrUserNotFound indicates the requested user was not found at a read endpoint.
	ErrUserNotFound = NewDomainError("DA-USER-4040", "user not found")
)

// ============================================================================
// Token Errors (TOKN)
// ============================================================================

var (
	// ErrTokenValidation indicates the token id format is invalid.
	ErrTokenValidation = NewDomainError("DA-TOKN-4000", "malformed token id")

	// ErrTokenMissing indicates the target token of a renew or delete does
	// not exist (400-class, mirroring ErrUserMissing).
	ErrTokenMissing = NewDomainError("DA-TOKN-4001", "the specified token does not exist")

	// ErrTokenExpired indicates the token has expired and cannot be extended.
	ErrTokenExpired = NewDomainError("DA-TOKN-4002", "the token has already expired and cannot be extended")

	// ErrTokenNotFound indicates the requested token was not found.
	ErrTokenNotFound = NewDomainError("DA-TOKN-4040", "token not found")
)

// ============================================================================
// Authorization Errors (AUTH)
// ============================================================================

var (
	// ErrPasswordMismatch indicates the supplied password does not match the
	// stored digest.
	ErrPasswordMismatch = NewDomainError("DA-AUTH-4001", "password did not match the specified user's stored password")

	// ErrTokenForbidden indicates the token header is missing, malformed, or
	// fails the authorization gate for the target phone. The single code
	// covers all those cases so responses cannot be used as an existence
	// oracle for token ids.
	ErrTokenForbidden = NewDomainError("DA-AUTH-4030", "missing required token in header, or token is invalid")
)

// ============================================================================
// Argument Errors (ARG)
// ============================================================================

var (
	// ErrInvalidArgument indicates an invalid argument.
	ErrInvalidArgument = NewDomainError("DA-ARG-1001", "invalid argument")

	// ErrMissingArgument indicates a required argument is missing.
	ErrMissingArgument = NewDomainError("DA-ARG-1002", "missing required argument")
)

// ============================================================================
// System Errors (SYS)
// ============================================================================

var (
	// ErrBadRequest indicates a malformed request.
	ErrBadRequest = NewDomainError("DA-SYS-4000", "bad request")

	// ErrRouteNotFound indicates the requested route does not exist.
	ErrRouteNotFound = NewDomainError("DA-SYS-4040", "not found")

	// ErrMethodNotAllowed indicates a verb outside the closed set of a resource.
	ErrMethodNotAllowed = NewDomainError("DA-SYS-4050", "method not allowed")

	// ErrRateLimited indicates too many requests.
	ErrRateLimited = NewDomainError("DA-SYS-4290", "too many requests")

	// ErrInternal indicates an internal server error.
	ErrInternal = NewDomainError("DA-SYS-5000", "internal server error")

	// ErrStorage indicates a storage layer error.
	ErrStorage = NewDomainError("DA-SYS-5001", "storage error")
)

// HTTPStatus maps an error code to its HTTP status.
// The mapping is suffix-driven so new codes inherit sane behavior.
func HTTPStatus(code string) int {
	switch {
	case strings.HasSuffix(code, "-4040"), strings.HasSuffix(code, "-4041"):
		return 404
	case strings.HasSuffix(code, "-4050"):
		return 405
	case strings.HasSuffix(code, "-4030"), strings.HasSuffix(code, "-4031"):
		return 403
	case strings.HasSuffix(code, "-4290"):
		return 429
	case strings.HasPrefix(code, "DA-ARG-"):
		return 400
	case strings.HasPrefix(code, "DA-SYS-5"):
		return 500
	case strings.Contains(code, "-40"):
		return 400
	default:
		return 500
	}
}
