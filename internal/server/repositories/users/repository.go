// Package users stores account credential records.
package users

import (
	"context"

	"github.com/dmitrijs2005/zkauth/internal/server/models"
)

// Repository is the credential store keyed by username.
type Repository interface {
	// Create inserts a new account. A taken username or email yields
	// common.ErrorAlreadyExists.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// GetUserByLogin returns common.ErrorNotFound for unknown usernames.
	GetUserByLogin(ctx context.Context, login string) (*models.User, error)

	// ReplaceCredentials atomically swaps salt, verifier and envelope, but only
	// if the stored verifier still equals prevVerifier. Otherwise nothing is
	// written and common.ErrVersionConflict is returned.
	ReplaceCredentials(ctx context.Context, userID string, prevVerifier []byte, c models.Credentials) error
}
