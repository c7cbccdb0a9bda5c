// Package common defines shared constants, sentinel errors and small helpers
// used across the client and server. Callers should use errors.Is to match
// the sentinel values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")
	ErrVersionConflict = errors.New("version conflict")

	// Service-level errors.
	ErrorInternal = errors.New("internal error")

	// ErrorValidation marks malformed, missing or undersized client input.
	// Messages wrapping it are safe to report verbatim.
	ErrorValidation = errors.New("validation error")

	// ErrorUnauthorized covers every failed proof of knowledge: bad SRP proof,
	// bad second-factor proof, wrong current password, envelope tag mismatch.
	// It must always be reported with a generic message.
	ErrorUnauthorized = errors.New("unauthorized")

	// ErrorInvalidSession is returned for unknown, expired or foreign
	// protocol sessions. Expired and never-existing sessions are not told apart.
	ErrorInvalidSession = errors.New("invalid session")

	// ErrorForbidden is returned for authenticated callers acting outside
	// of their own account.
	ErrorForbidden = errors.New("forbidden")

	// Token errors.
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
