package config

import "errors"

// Error kinds returned by Load and Validate; match them with errors.Is.
var (
	// ErrInvalidConfig marks a loaded config whose values fail validation.
	ErrInvalidConfig = errors.New("invalid config")
	// ErrLoadConfig marks a file, parse or env provider failure.
	ErrLoadConfig = errors.New("load config failed")
)
