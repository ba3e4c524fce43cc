package usecase

import "errors"

// Sentinel errors shared by the services; the HTTP layer maps them onto
// response statuses.
var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrDependencyUnavailable = errors.New("required dependency unavailable")
)
