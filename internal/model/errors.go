package model

import "errors"

// ErrMalformed is returned by the Validate methods when a decoded resource
// lacks a field the client relies on. Callers wrap it with the offending field.
var ErrMalformed = errors.New("malformed resource")
