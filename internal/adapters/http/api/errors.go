package api

import "errors"

// Sentinel kinds for API errors.
var (
	ErrMethodNotAllowed = errors.New("method not allowed")
	ErrEncode           = errors.New("encode response failed")
	ErrPanic            = errors.New("handler panicked")
)
