// Package metrics provides metrics collector implementations.
//
// Implementations:
//   - prometheus: client_golang vectors registered on a caller-owned registry
package metrics
