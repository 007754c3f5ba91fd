package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrWrongState            = errors.New("operation not valid in current state")
	ErrAnotherGameActive     = errors.New("another game is already active")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
