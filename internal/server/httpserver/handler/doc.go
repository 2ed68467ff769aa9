// Package handler provides HTTP request handlers for dialauth.
//
// This package implements the HTTP API endpoints for user accounts and
// session tokens. Each resource has a single handler that dispatches on
// the request method over a closed verb set; anything else is rejected
// with 405.
package handler
