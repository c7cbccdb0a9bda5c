package repomanager

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/zkauth/internal/server/repositories/events"
	"github.com/dmitrijs2005/zkauth/internal/server/repositories/users"
)

// InMemoryRepositoryManager keeps everything in process memory. WithTx
// serializes units of work but cannot roll back partial writes.
type InMemoryRepositoryManager struct {
	mu     sync.Mutex
	users  *users.InMemoryRepository
	events *events.InMemoryRepository
}

func NewInMemoryRepositoryManager() *InMemoryRepositoryManager {
	return &InMemoryRepositoryManager{
		users:  users.NewInMemoryRepository(),
		events: events.NewInMemoryRepository(),
	}
}

func (m *InMemoryRepositoryManager) RunMigrations(context.Context) error { return nil }

func (m *InMemoryRepositoryManager) Users() users.Repository { return m.users }

func (m *InMemoryRepositoryManager) Events() events.Repository { return m.events }

// UserStore exposes the concrete users repository for administrative helpers.
func (m *InMemoryRepositoryManager) UserStore() *users.InMemoryRepository { return m.users }

func (m *InMemoryRepositoryManager) WithTx(ctx context.Context, fn func(ctx context.Context, r Repos) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx, Repos{Users: m.users, Events: m.events})
}
