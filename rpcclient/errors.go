package rpcclient

import (
	"errors"
	"fmt"
)

var (
	// ErrNoEndpoints is returned if a client or strategy is constructed without any endpoint URLs.
	ErrNoEndpoints = errors.New("no endpoints provided")

	// ErrUnknownStrategy is returned if an unrecognized strategy type is requested.
	ErrUnknownStrategy = errors.New("unknown strategy type")
)

// TransportError is returned by Transport.Call when the endpoint answers with
// a non-OK HTTP status code.
type TransportError struct {
	StatusCode int
	Body       string
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("HTTP error response: %d / %s", e.StatusCode, e.Body)
}
