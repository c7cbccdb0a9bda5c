// Package models holds the server-side persistence types.
package models

import "time"

// User is the credential record of an account. Salt, Verifier and
// WrappedMasterKey are always replaced together.
type User struct {
	ID               string
	UserName         string
	Email            string
	Salt             []byte
	Verifier         []byte
	WrappedMasterKey string
	IsActive         bool
	IsLocked         bool
	CreatedAt        time.Time
}

// CanLogin reports whether the account may start an authentication exchange.
func (u *User) CanLogin() bool {
	return u.IsActive && !u.IsLocked
}

// Credentials is the triple rotated by a password change.
type Credentials struct {
	Salt             []byte
	Verifier         []byte
	WrappedMasterKey string
}
