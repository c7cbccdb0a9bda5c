// Package repomanager wires the account repositories to a storage backend
// and exposes a transactional unit of work over them.
package repomanager

import (
	"context"

	"github.com/dmitrijs2005/zkauth/internal/server/repositories/events"
	"github.com/dmitrijs2005/zkauth/internal/server/repositories/users"
)

// Repos is the set of repositories bound to one unit of work.
type Repos struct {
	Users  users.Repository
	Events events.Repository
}

type RepositoryManager interface {
	RunMigrations(ctx context.Context) error
	Users() users.Repository
	Events() events.Repository
	// WithTx runs fn against repositories bound to a single transaction.
	// Any error from fn rolls the transaction back.
	WithTx(ctx context.Context, fn func(ctx context.Context, r Repos) error) error
}
