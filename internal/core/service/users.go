// Package service provides the domain services for dialauth.
package service

import (
	"context"
	"errors"
	"strings"

	"github.com/yndnr/dialauth/internal/core/domain"
)

// UserRepository defines the storage interface for user operations.
type UserRepository interface {
	// Create creates a new user record.
	Create(ctx context.Context, user *domain.User) error

	// Get retrieves a user by phone.
	Get(ctx context.Context, phone string) (*domain.User, error)

	// Update overwrites an existing user record.
	Update(ctx context.Context, user *domain.User) error

	// Delete deletes a user by phone.
	Delete(ctx context.Context, phone string) error
}

// UserService handles the user account lifecycle. All operations except
// Create require a valid token for the target account, checked through the
// token authority.
type UserService struct {
	repo      UserRepository
	authority *TokenAuthority
	hasher    CredentialHasher
}

// NewUserService creates a UserService.
func NewUserService(repo UserRepository, authority *TokenAuthority, hasher CredentialHasher) *UserService {
	return &UserService{
		repo:      repo,
		authority: authority,
		hasher:    hasher,
	}
}

// ============================================================================
// Create
// ============================================================================

// CreateUserRequest contains the fields for account registration.
type CreateUserRequest struct {
	FirstName    string
	LastName     string
	Phone        string
	Password     string
	TOSAgreement bool
}

// CreateUserResponse contains the stored account, digest redacted.
type CreateUserResponse struct {
	User *domain.User
}

// Create registers a new account. Registration is the only user operation
// open to unauthenticated callers.
func (s *UserService) Create(ctx context.Context, req *CreateUserRequest) (*CreateUserResponse, error) {
	// 1. Build the account with the password replaced by its digest
	user := &domain.User{
		FirstName:      strings.TrimSpace(req.FirstName),
		LastName:       strings.TrimSpace(req.LastName),
		Phone:          strings.TrimSpace(req.Phone),
		TOSAgreement:   req.TOSAgreement,
		HashedPassword: s.hasher.Hash(req.Password),
	}
	if req.Password == "" {
		return nil, domain.ErrUserValidation.WithDetails("password is required")
	}

	// 2. Validate field constraints
	if err := user.Validate(); err != nil {
		return nil, err
	}

	// 3. Persist; the phone key makes duplicates a create conflict
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return &CreateUserResponse{User: user.Redacted()}, nil
}

// ============================================================================
// Get
// ============================================================================

// GetUserRequest contains parameters for account retrieval.
type GetUserRequest struct {
	Phone string
	Token string
}

// Get retrieves an account. Requires a token valid for that account; the
// digest never appears in the result.
func (s *UserService) Get(ctx context.Context, req *GetUserRequest) (*domain.User, error) {
	if !domain.ValidPhone(req.Phone) {
		return nil, domain.ErrUserValidation.WithDetails("phone must be exactly 10 characters")
	}
	if !s.authority.IsValidFor(ctx, req.Token, req.Phone) {
		return nil, domain.ErrTokenForbidden
	}

	user, err := s.repo.Get(ctx, req.Phone)
	if err != nil {
		return nil, err
	}
	return user.Redacted(), nil
}

// ============================================================================
// Update
// ============================================================================

// UpdateUserRequest carries the fields to change. Empty strings leave the
// stored value untouched; Phone selects the account and never changes.
type UpdateUserRequest struct {
	Phone        string
	Token        string
	FirstName    string
	LastName     string
	Password     string
	TOSAgreement *bool
}

// UpdateUserResponse contains the updated account, digest redacted.
type UpdateUserResponse struct {
	User *domain.User
}

// Update applies a partial update to an existing account. At least one
// updatable field must be supplied.
func (s *UserService) Update(ctx context.Context, req *UpdateUserRequest) (*UpdateUserResponse, error) {
	// 1. Validate the selector and that there is something to change
	if !domain.ValidPhone(req.Phone) {
		return nil, domain.ErrUserValidation.WithDetails("phone must be exactly 10 characters")
	}
	if req.FirstName == "" && req.LastName == "" && req.Password == "" && req.TOSAgreement == nil {
		return nil, domain.ErrNothingToUpdate
	}

	// 2. Authorization gate
	if !s.authority.IsValidFor(ctx, req.Token, req.Phone) {
		return nil, domain.ErrTokenForbidden
	}

	// 3. Load the current record. A vanished account is a caller error
	// here, not a routing miss.
	user, err := s.repo.Get(ctx, req.Phone)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserMissing
		}
		return nil, err
	}

	// 4. Merge the provided fields
	if req.FirstName != "" {
		user.FirstName = strings.TrimSpace(req.FirstName)
	}
	if req.LastName != "" {
		user.LastName = strings.TrimSpace(req.LastName)
	}
	if req.Password != "" {
		user.HashedPassword = s.hasher.Hash(req.Password)
	}
	if req.TOSAgreement != nil {
		user.TOSAgreement = *req.TOSAgreement
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	// 5. Persist
	if err := s.repo.Update(ctx, user); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserMissing
		}
		return nil, err
	}

	return &UpdateUserResponse{User: user.Redacted()}, nil
}

// ============================================================================
// Delete
// ============================================================================

// DeleteUserRequest contains parameters for account deletion.
type DeleteUserRequest struct {
	Phone string
	Token string
}

// Delete removes an account. Tokens previously issued for it are left in
// place and lapse on their own expiry.
func (s *UserService) Delete(ctx context.Context, req *DeleteUserRequest) error {
	if !domain.ValidPhone(req.Phone) {
		return domain.ErrUserValidation.WithDetails("phone must be exactly 10 characters")
	}
	if !s.authority.IsValidFor(ctx, req.Token, req.Phone) {
		return domain.ErrTokenForbidden
	}

	if err := s.repo.Delete(ctx, req.Phone); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrUserMissing
		}
		return err
	}
	return nil
}
