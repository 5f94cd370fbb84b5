package domain

import "errors"

// Sentinel errors shared by every repository adapter and service.
var (
	// ErrNotFound is returned when a patch, delete or status update targets an id that does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput is returned when a request is invalid (e.g. unknown status, status regression).
	ErrInvalidInput = errors.New("invalid input")
	// ErrMissingConfig is returned when a backend is selected without the configuration it requires.
	ErrMissingConfig = errors.New("missing configuration")
	// ErrUnsupportedVersion is returned when persisted data carries a schema version newer than this build understands.
	ErrUnsupportedVersion = errors.New("unsupported schema version")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
)
