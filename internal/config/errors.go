// Package config provides configuration types and defaults for vidmeta.
package config

import "errors"

// Sentinel errors for configuration validation.
var (
	// ErrInvalidBackend indicates an unknown probe backend name was provided.
	ErrInvalidBackend = errors.New("invalid probe backend")

	// ErrInvalidTimeout indicates a negative probe timeout.
	ErrInvalidTimeout = errors.New("probe timeout must not be negative")

	// ErrInvalidDuration indicates a duration setting that could not be parsed.
	ErrInvalidDuration = errors.New("invalid duration")

	// ErrInvalidLogLevel indicates an unknown log level name.
	ErrInvalidLogLevel = errors.New("invalid log level")

	// ErrEmptyPath indicates a required path setting was empty.
	ErrEmptyPath = errors.New("path must not be empty")
)
