package debug

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"unicode/utf8"
)

// ServiceID identifies this implementation in every response envelope
const ServiceID = "golang"

// StatusHealthy is the only status reported by the health check
const StatusHealthy = "healthy"

// MaxBodyBytes bounds an echo payload on every transport
const MaxBodyBytes = 1 << 20

// ErrMalformedRequest is returned when a request body is not a single JSON value
var ErrMalformedRequest = errors.New("malformed request")

// HealthResponse is the body of the health check
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// EchoResponse wraps an echoed JSON value
type EchoResponse struct {
	Service string          `json:"service"`
	Echo    json.RawMessage `json:"echo"`
}

// Health returns the static health status
func Health() HealthResponse {
	return HealthResponse{
		Status:  StatusHealthy,
		Service: ServiceID,
	}
}

// Echo validates body as exactly one JSON value and wraps it unchanged.
// The value is kept as raw JSON so numbers never lose precision.
func Echo(body []byte) (EchoResponse, error) {
	// Compact does not check UTF-8 inside strings
	if !utf8.Valid(body) {
		return EchoResponse{}, fmt.Errorf("%w: invalid UTF-8", ErrMalformedRequest)
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, body); err != nil {
		return EchoResponse{}, fmt.Errorf("%w: %v", ErrMalformedRequest, err)
	}
	if buf.Len() == 0 {
		return EchoResponse{}, fmt.Errorf("%w: empty body", ErrMalformedRequest)
	}

	return EchoResponse{
		Service: ServiceID,
		Echo:    json.RawMessage(buf.Bytes()),
	}, nil
}
