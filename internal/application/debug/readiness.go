package debug

import "sync/atomic"

// ReadinessResponse is the body of a successful readiness probe
type ReadinessResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// Readiness tracks whether the service should still receive traffic
type Readiness struct {
	shuttingDown atomic.Bool
}

// NewReadiness returns a tracker in the ready state
func NewReadiness() *Readiness {
	return &Readiness{}
}

// Ready reports whether shutdown has not yet begun
func (r *Readiness) Ready() bool {
	return !r.shuttingDown.Load()
}

// MarkShuttingDown flips the tracker to not-ready. It is safe to call more than once.
func (r *Readiness) MarkShuttingDown() {
	r.shuttingDown.Store(true)
}

// Response returns the readiness body for a ready service
func (r *Readiness) Response() ReadinessResponse {
	return ReadinessResponse{
		Status:  "ready",
		Service: ServiceID,
	}
}
