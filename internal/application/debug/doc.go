// Package debug implements the behavior behind the debug service endpoints.
//
// The service is stateless: health and echo responses are built per request
// from constants and the request body. The only shared state is the
// readiness flag, flipped once when shutdown begins.
package debug
