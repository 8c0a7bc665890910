package domain

import "errors"

// Domain errors (no external dependencies). Handlers map these to HTTP
// statuses; use cases return them untouched so callers can errors.Is on them.
var (
	ErrNotFound           = errors.New("resource not found")
	ErrConflict           = errors.New("conflicts with existing state")
	ErrInvalidState       = errors.New("operation not valid for current state")
	ErrValidation         = errors.New("invalid input")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("access denied")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already registered")
)
