// Package http provides the HTTP API implementation.
//
// The HTTP server exposes endpoints for:
//   - Health checks and readiness probes
//   - JSON echo
//   - Aggregated health of sibling services (health-check binary)
//   - Prometheus metrics
package http
