package commitment

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput marks a malformed address, slot or block argument.
	ErrInvalidInput = errors.New("invalid input")

	// ErrMismatch marks a cross-check where the endpoints disagreed.
	ErrMismatch = errors.New("cross-check mismatch")
)

func invalidInput(field, value, reason string) error {
	return fmt.Errorf("%w: %s %q: %s", ErrInvalidInput, field, value, reason)
}

// ConnectionError reports an endpoint that could not be reached or did not
// answer before the request timeout.
type ConnectionError struct {
	Endpoint string // configured endpoint name
	Host     string // URL host only; paths often carry API keys
	Err      error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connection to %s (%s) failed: %v", e.Endpoint, e.Host, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// RPCError reports an endpoint that answered but rejected the request or
// returned data that could not be decoded.
type RPCError struct {
	Endpoint string
	Method   string
	Code     int // JSON-RPC error code, 0 when the failure was not a JSON-RPC error object
	Message  string
}

func (e *RPCError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("%s: %s failed: RPC error %d: %s", e.Endpoint, e.Method, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s failed: %s", e.Endpoint, e.Method, e.Message)
}
