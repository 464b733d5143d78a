package controller

import "errors"

// ErrAlreadyRunning is returned by Run when the event loop is already running
// or has run before.
var ErrAlreadyRunning = errors.New("controller already running")
