// Package events declares the audit trail of credential lifecycle changes.
package events

import (
	"context"

	"github.com/dmitrijs2005/zkauth/internal/server/models"
)

// Repository appends and lists credential events.
type Repository interface {
	// Append records kind for userID at the current time.
	Append(ctx context.Context, userID string, kind models.EventKind) error

	// List returns the events of userID, oldest first.
	List(ctx context.Context, userID string) ([]models.CredentialEvent, error)
}
