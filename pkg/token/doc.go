// Package token provides session token id generation.
//
// Token ids are fixed-length strings drawn uniformly from an alphanumeric
// alphabet using crypto/rand. At the default length of 20 characters the
// id space is 62^20, making collisions negligible.
package token
