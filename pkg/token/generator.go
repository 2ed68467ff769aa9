// Package token provides session token id generation.
package token

import (
	"crypto/rand"
	"errors"
)

// Alphabet is the character set token ids are drawn from.
const Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// DefaultLength is the default token id length in characters.
const DefaultLength = 20

// rejection threshold: 248 is the largest multiple of len(Alphabet) that
// fits in a byte, so bytes >= 248 are re-drawn to keep the draw uniform.
const maxByte = 248

// Generate generates a token id of DefaultLength characters.
func Generate() (string, error) {
	return GenerateWithLength(DefaultLength)
}

// GenerateWithLength generates a token id with the specified character length.
func GenerateWithLength(length int) (string, error) {
	if length <= 0 {
		return "", errors.New("token: length must be positive")
	}

	out := make([]byte, 0, length)
	buf := make([]byte, length)
	for len(out) < length {
		if _, err := rand.Read(buf); err != nil {
			return "", err
		}
		for _, b := range buf {
			if b >= maxByte {
				continue
			}
			out = append(out, Alphabet[int(b)%len(Alphabet)])
			if len(out) == length {
				break
			}
		}
	}
	return string(out), nil
}

// Valid reports whether id has the given length and stays within Alphabet.
func Valid(id string, length int) bool {
	if len(id) != length {
		return false
	}
	for i := 0; i < len(id); i++ {
		c := id[i]
		switch {
		case c >= 'A' && c <= 'Z':
		case c >= 'a' && c <= 'z':
		case c >= '0' && c <= '9':
		default:
			return false
		}
	}
	return true
}
