// Package service provides the domain services for dialauth.
//
// UserService owns the user account lifecycle, TokenAuthority owns session
// token issuance and verification. Both depend on repository interfaces
// declared in this package and satisfied by internal/storage.
package service
