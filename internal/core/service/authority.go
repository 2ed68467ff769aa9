// Package service provides the domain services for dialauth.
package service

import (
	"context"
	"errors"

	"github.com/yndnr/dialauth/internal/core/domain"
	"github.com/yndnr/dialauth/pkg/token"
)

// TokenRepository defines the storage interface for token operations.
type TokenRepository interface {
	// Create creates a new token record.
	Create(ctx context.Context, token *domain.Token) error

	// Get retrieves a token by ID.
	Get(ctx context.Context, id string) (*domain.Token, error)

	// Update overwrites an existing token record.
	Update(ctx context.Context, token *domain.Token) error

	// Delete deletes a token by ID.
	Delete(ctx context.Context, id string) error
}

// TokenAuthority owns the session token lifecycle: issuing on login,
// lookup, renewal, revocation, and the authorization gate used by every
// protected operation.
type TokenAuthority struct {
	tokens TokenRepository
	users  UserRepository
	hasher CredentialHasher
	length int
}

// NewTokenAuthority creates a TokenAuthority. A non-positive length falls
// back to the default token ID length.
func NewTokenAuthority(tokens TokenRepository, users UserRepository, hasher CredentialHasher, length int) *TokenAuthority {
	if length <= 0 {
		length = token.DefaultLength
	}
	return &TokenAuthority{
		tokens: tokens,
		users:  users,
		hasher: hasher,
		length: length,
	}
}

// ============================================================================
// Issue (login)
// ============================================================================

// IssueTokenRequest contains the credentials presented on login.
type IssueTokenRequest struct {
	Phone    string
	Password string
}

// IssueTokenResponse contains the freshly issued token.
type IssueTokenResponse struct {
	Token *domain.Token
}

// Issue verifies the presented credentials and creates a fresh token for
// the account. An unknown account and a wrong password both report as
// client errors.
func (a *TokenAuthority) Issue(ctx context.Context, req *IssueTokenRequest) (*IssueTokenResponse, error) {
	// 1. Validate input shape
	if !domain.ValidPhone(req.Phone) {
		return nil, domain.ErrTokenValidation.WithDetails("phone must be exactly 10 characters")
	}
	if req.Password == "" {
		return nil, domain.ErrMissingArgument.WithDetails("password is required")
	}

	// 2. Load the account
	user, err := a.users.Get(ctx, req.Phone)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserMissing.WithDetails("could not find user")
		}
		return nil, err
	}

	// 3. Verify the password against the stored digest
	if !a.hasher.Compare(req.Password, user.HashedPassword) {
		return nil, domain.ErrPasswordMismatch
	}

	// 4. Generate the token ID and persist the record
	id, err := token.GenerateWithLength(a.length)
	if err != nil {
		return nil, domain.ErrInternal.WithCause(err)
	}

	tok := domain.NewToken(id, user.Phone, domain.TokenTTL)
	if err := a.tokens.Create(ctx, tok); err != nil {
		return nil, err
	}

	return &IssueTokenResponse{Token: tok}, nil
}

// ============================================================================
// Lookup
// ============================================================================

// GetTokenRequest contains parameters for token retrieval.
type GetTokenRequest struct {
	ID string
}

// Get retrieves a token record by ID. Expired tokens are still returned;
// expiry only gates authorization, not visibility.
func (a *TokenAuthority) Get(ctx context.Context, req *GetTokenRequest) (*domain.Token, error) {
	if req.ID == "" {
		return nil, domain.ErrMissingArgument.WithDetails("token id is required")
	}
	if !token.Valid(req.ID, a.length) {
		return nil, domain.ErrTokenValidation.WithDetails("token id is malformed")
	}
	return a.tokens.Get(ctx, req.ID)
}

// ============================================================================
// Renew
// ============================================================================

// RenewTokenRequest contains parameters for token renewal.
type RenewTokenRequest struct {
	ID string
}

// RenewTokenResponse contains the token with its extended expiry.
type RenewTokenResponse struct {
	Token *domain.Token
}

// Renew pushes the token expiry a full TTL past now. Only an unexpired
// token can be renewed; a lapsed one must be reissued through login.
func (a *TokenAuthority) Renew(ctx context.Context, req *RenewTokenRequest) (*RenewTokenResponse, error) {
	if req.ID == "" {
		return nil, domain.ErrMissingArgument.WithDetails("token id is required")
	}
	if !token.Valid(req.ID, a.length) {
		return nil, domain.ErrTokenValidation.WithDetails("token id is malformed")
	}

	tok, err := a.tokens.Get(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	if tok.IsExpired() {
		return nil, domain.ErrTokenExpired
	}

	tok.Extend(domain.TokenTTL)
	if err := a.tokens.Update(ctx, tok); err != nil {
		return nil, err
	}

	return &RenewTokenResponse{Token: tok}, nil
}

// ============================================================================
// Revoke (logout)
// ============================================================================

// RevokeTokenRequest contains parameters for token revocation.
type RevokeTokenRequest struct {
	ID string
}

// Revoke deletes the token record. Revoking an unknown token fails with
// ErrTokenNotFound.
func (a *TokenAuthority) Revoke(ctx context.Context, req *RevokeTokenRequest) error {
	if req.ID == "" {
		return domain.ErrMissingArgument.WithDetails("token id is required")
	}
	if !token.Valid(req.ID, a.length) {
		return domain.ErrTokenValidation.WithDetails("token id is malformed")
	}
	return a.tokens.Delete(ctx, req.ID)
}

// ============================================================================
// Authorization gate
// ============================================================================

// IsValidFor reports whether the token identified by id currently
// authorizes operations on the account identified by phone. Every failure
// mode collapses into false: malformed ID, unknown token, expired token,
// phone mismatch, even storage faults. Callers never learn which.
func (a *TokenAuthority) IsValidFor(ctx context.Context, id, phone string) bool {
	if id == "" || !token.Valid(id, a.length) {
		return false
	}
	if !domain.ValidPhone(phone) {
		return false
	}

	tok, err := a.tokens.Get(ctx, id)
	if err != nil {
		return false
	}
	return tok.IsValidFor(phone)
}
