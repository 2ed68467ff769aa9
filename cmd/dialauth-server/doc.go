// Package main provides the entry point for dialauth-server.
//
// The server exposes the phone-keyed account and token REST API:
//
//   - /users for account registration, lookup, update, and deletion
//   - /tokens for login, lookup, renewal, and revocation
//   - /ping and /health for liveness, /metrics for Prometheus scrapes
//
// Usage:
//
//	dialauth-server [flags]
//	dialauth-server --config /path/to/config.yaml
//
// Configuration comes from the YAML file, overridden by DIALAUTH_*
// environment variables. The server loads configuration, opens the
// configured record store, and serves HTTP until SIGINT or SIGTERM.
package main
