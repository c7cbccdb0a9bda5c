package client

import "errors"

var (
	ErrUnavailable    = errors.New("server unavailable")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrInvalidSession = errors.New("invalid session")
	ErrAlreadyExists  = errors.New("already exists")
	ErrNotFound       = errors.New("not found")
	ErrConflict       = errors.New("credentials changed concurrently")
	ErrInvalidRequest = errors.New("invalid request")
	ErrNotLoggedIn    = errors.New("not logged in")
)
