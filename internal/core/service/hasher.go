// Package service provides the domain services for dialauth.
package service

import (
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/argon2"
)

// CredentialHasher produces and compares password digests.
type CredentialHasher interface {
	// Hash computes the digest of a plaintext password.
	Hash(password string) string

	// Compare reports whether the plaintext password matches the digest.
	// The comparison is constant-time.
	Compare(password, digest string) bool
}

// Argon2id parameters. Fixed for the deployment so digests stay comparable
// across restarts.
const (
	argonTime    = 2
	argonMemory  = 16 * 1024
	argonThreads = 2
	argonKeyLen  = 32
)

// Argon2Hasher derives deterministic Argon2id digests keyed by a
// deployment-wide hashing secret. The secret acts as the salt, so equal
// passwords yield equal digests within one deployment and nothing portable
// across deployments.
type Argon2Hasher struct {
	salt []byte
}

// NewArgon2Hasher creates a hasher keyed by the deployment hashing secret.
func NewArgon2Hasher(secret string) (*Argon2Hasher, error) {
	if len(secret) < 8 {
		return nil, fmt.Errorf("hashing secret must be at least 8 characters")
	}
	return &Argon2Hasher{salt: []byte(secret)}, nil
}

// Hash computes the hex-encoded Argon2id digest of password.
func (h *Argon2Hasher) Hash(password string) string {
	key := argon2.IDKey([]byte(password), h.salt, argonTime, argonMemory, argonThreads, argonKeyLen)
	return hex.EncodeToString(key)
}

// Compare recomputes the digest and compares it in constant time.
func (h *Argon2Hasher) Compare(password, digest string) bool {
	computed := h.Hash(password)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(digest)) == 1
}
