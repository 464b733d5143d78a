package api

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidBaseURL is returned by NewClient when the base URL is not an
	// absolute http or https URL.
	ErrInvalidBaseURL = errors.New("invalid base URL: expected http(s)://host[:port]")

	// ErrInvalidProxy is returned by NewClient when the proxy address cannot be used.
	ErrInvalidProxy = errors.New("invalid proxy: expected host:port or socks5://[user:pass@]host:port")

	// ErrEmptyProjectID is returned when a project-scoped call gets an empty id.
	// The request is not sent.
	ErrEmptyProjectID = errors.New("empty project id")
)

// TransportError describes a failed backend call.
//
// StatusCode is 0 when no response was received (connection refused, DNS
// failure, cancelled context). Otherwise it is the HTTP status, and Body is
// the raw response body. A 2xx status with a non-nil Err means the body
// could not be decoded or failed validation.
type TransportError struct {
	// Op names the failed operation, e.g. "create project".
	Op string

	// Method and URL identify the request.
	Method string
	URL    string

	// StatusCode is the HTTP status, or 0 if there was no response.
	StatusCode int

	// Body is the raw response body.
	Body string

	// Message is the backend's error text from a {"error": "..."} body, if any.
	Message string

	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	switch {
	case e.StatusCode == 0:
		return fmt.Sprintf("%s: %s %s: %v", e.Op, e.Method, e.URL, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s: status %d: invalid response body: %v", e.Op, e.StatusCode, e.Err)
	case e.Message != "":
		return fmt.Sprintf("%s: status %d: %s", e.Op, e.StatusCode, e.Message)
	default:
		return fmt.Sprintf("%s: status %d: %s", e.Op, e.StatusCode, truncate(e.Body, 200))
	}
}

// Unwrap returns the underlying cause.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsTransportError reports whether err is or wraps a *TransportError and returns it.
func IsTransportError(err error) (*TransportError, bool) {
	var te *TransportError
	if errors.As(err, &te) {
		return te, true
	}
	return nil, false
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
