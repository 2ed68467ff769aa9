// Package domain defines the core domain models for dialauth.
package domain

import "strings"

// PhoneLength is the exact length of a phone identifier.
//
// Phones are treated as opaque unique identifiers; they are length-checked
// but never parsed numerically.
const PhoneLength = 10

// User represents a user account keyed by phone number.
//
// Exactly one record exists per phone. The password digest is persisted but
// must never be transmitted back to a caller; use Redacted() before building
// a response.
type User struct {
	// FirstName is the user's first name (non-empty).
	FirstName string `json:"firstName"`

	// LastName is the user's last name (non-empty).
	LastName string `json:"lastName"`

	// Phone is the record key, duplicated into the record.
	Phone string `json:"phone"`

	// HashedPassword is the digest produced by the credential hasher.
	// Omitted from JSON when empty so redacted copies serialize cleanly.
	HashedPassword string `json:"hashedPassword,omitempty"`

	// TOSAgreement records acceptance of the terms of service.
	// Must be true for the record to be created.
	TOSAgreement bool `json:"tosAgreement"`
}

// ValidPhone reports whether phone is a well-formed phone identifier.
func ValidPhone(phone string) bool {
	return len(strings.TrimSpace(phone)) == PhoneLength
}

// Validate validates the user fields against constraints.
// Returns a DomainError with code DA-USER-4001 if validation fails.
func (u *User) Validate() error {
	var violations []string

	if strings.TrimSpace(u.FirstName) == "" {
		violations = append(violations, "firstName is required")
	}
	if strings.TrimSpace(u.LastName) == "" {
		violations = append(violations, "lastName is required")
	}
	if !ValidPhone(u.Phone) {
		violations = append(violations, "phone must be exactly 10 characters")
	}
	if u.HashedPassword == "" {
		violations = append(violations, "hashedPassword is required")
	}
	if !u.TOSAgreement {
		violations = append(violations, "tosAgreement must be accepted")
	}

	if len(violations) > 0 {
		return ErrUserValidation.WithDetails(strings.Join(violations, "; "))
	}
	return nil
}

// Redacted returns a copy of the user with the password digest stripped.
func (u *User) Redacted() *User {
	clone := *u
	clone.HashedPassword = ""
	return &clone
}

// Clone returns a deep copy of the user.
func (u *User) Clone() *User {
	clone := *u
	return &clone
}
