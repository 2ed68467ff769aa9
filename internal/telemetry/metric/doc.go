// Package metric provides Prometheus metrics for dialauth.
//
// It holds the application metric registry and the /metrics HTTP handler:
//
//   - Request counters and latency histograms per route and method
//   - Token lifecycle counters (issued, renewed, revoked)
//   - Authorization gate outcomes
//   - User account lifecycle counters
//
// Metrics are exposed at /metrics in Prometheus format.
package metric
