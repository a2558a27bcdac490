package liam

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration indicates required client configuration (API key,
	// credential source) is missing or unusable. Raised at construction.
	ErrConfiguration = errors.New("invalid client configuration")

	// ErrAuthentication indicates the private key is missing, malformed,
	// or unparsable. Raised once at construction, never mid-call.
	ErrAuthentication = errors.New("authentication failed")
)

// APIError is returned when the API answers with HTTP status >= 400, or
// with a body that is not valid JSON. Network-level failures are not
// wrapped into APIError; they propagate from the underlying transport.
type APIError struct {
	// StatusCode is the HTTP status of the response.
	StatusCode int
	// Message is the server's error message, when one was provided.
	Message string
	// Body is the parsed error body for caller inspection. Nil when the
	// response was not valid JSON.
	Body map[string]any
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("liam: API error (status %d)", e.StatusCode)
	}
	return fmt.Sprintf("liam: API error (status %d): %s", e.StatusCode, e.Message)
}
