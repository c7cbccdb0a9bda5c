package events

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/zkauth/internal/server/models"
)

type InMemoryRepository struct {
	mu     sync.Mutex
	events []models.CredentialEvent
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{}
}

func (r *InMemoryRepository) Append(_ context.Context, userID string, kind models.EventKind) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, models.CredentialEvent{UserID: userID, Kind: kind, CreatedAt: time.Now().UTC()})
	return nil
}

func (r *InMemoryRepository) List(_ context.Context, userID string) ([]models.CredentialEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.CredentialEvent
	for _, e := range r.events {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}
