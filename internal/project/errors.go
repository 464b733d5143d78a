package project

import (
	"errors"
	"fmt"
)

// ValidationError reports client-detected bad input.
// A request that fails validation never reaches the backend.
type ValidationError struct {
	// Field is the name of the rejected input, e.g. "domain".
	Field string

	// Reason describes what is wrong with it.
	Reason string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// IsValidationError reports whether err is or wraps a *ValidationError and returns it.
func IsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
