package templates

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/zkauth/internal/common"
)

type InMemoryRepository struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{data: make(map[string]string)}
}

func (r *InMemoryRepository) Put(_ context.Context, username, envelope string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[ObjectKey(username)] = envelope
	return nil
}

func (r *InMemoryRepository) Get(_ context.Context, username string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.data[ObjectKey(username)]
	if !ok {
		return "", common.ErrorNotFound
	}
	return v, nil
}
