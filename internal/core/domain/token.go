// Package domain defines the core domain models for dialauth.
package domain

import "time"

// Token constants.
const (
	// TokenIDLength is the default length of a token id, drawn from the
	// alphanumeric alphabet in pkg/token.
	TokenIDLength = 20

	// TokenTTL is the default validity window granted on issue and renew.
	TokenTTL = time.Hour
)

// Token represents a session token proving control of a user identity.
//
// A token is valid iff the current time is before Expires AND its Phone
// matches the phone being authorized. Expiry is checked lazily at validation
// time; expired records are never swept in the background.
type Token struct {
	// ID is the record key, duplicated into the record.
	ID string `json:"id"`

	// Phone is a non-owning back-reference to the user this token
	// authenticates. Validity is established by value comparison, not by
	// referential integrity in the store.
	Phone string `json:"phone"`

	// Expires is the absolute expiry instant (Unix milliseconds).
	Expires int64 `json:"expires"`
}

// NewToken creates a token for phone expiring ttl from now.
func NewToken(id, phone string, ttl time.Duration) *Token {
	return &Token{
		ID:      id,
		Phone:   phone,
		Expires: time.Now().Add(ttl).UnixMilli(),
	}
}

// IsExpired returns true if the token's expiry instant has passed.
func (t *Token) IsExpired() bool {
	return time.Now().UnixMilli() >= t.Expires
}

// Extend moves the expiry instant to ttl from now.
// Callers must check IsExpired first; Extend itself does not.
func (t *Token) Extend(ttl time.Duration) {
	t.Expires = time.Now().Add(ttl).UnixMilli()
}

// IsValidFor reports whether the token currently authorizes phone.
func (t *Token) IsValidFor(phone string) bool {
	return t.Phone == phone && !t.IsExpired()
}

// TTLDuration returns the remaining time-to-live as a duration.
// Returns 0 if expired.
func (t *Token) TTLDuration() time.Duration {
	remaining := t.Expires - time.Now().UnixMilli()
	if remaining < 0 {
		return 0
	}
	return time.Duration(remaining) * time.Millisecond
}

// Clone returns a deep copy of the token.
func (t *Token) Clone() *Token {
	clone := *t
	return &clone
}
