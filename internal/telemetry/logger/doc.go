// Package logger provides structured logging for dialauth.
//
// It wraps the standard library log/slog to provide structured JSON
// logging with automatic redaction of credentials and session tokens.
//
// Features:
//   - JSON structured logging (default)
//   - Automatic redaction of password, digest, and token fields
//   - Context-aware logging with request ID propagation
//   - Runtime log level adjustment
package logger
