package users

import (
	"bytes"
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/zkauth/internal/common"
	"github.com/dmitrijs2005/zkauth/internal/server/models"
	"github.com/google/uuid"
)

// InMemoryRepository is a process-local Repository for development and tests.
type InMemoryRepository struct {
	mu     sync.RWMutex
	byName map[string]*models.User
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{byName: make(map[string]*models.User)}
}

func clone(u *models.User) *models.User {
	c := *u
	c.Salt = append([]byte(nil), u.Salt...)
	c.Verifier = append([]byte(nil), u.Verifier...)
	return &c
}

func (r *InMemoryRepository) Create(_ context.Context, user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byName[user.UserName]; ok {
		return nil, ErrUsernameTaken
	}
	for _, u := range r.byName {
		if u.Email == user.Email {
			return nil, ErrEmailTaken
		}
	}

	user.ID = uuid.NewString()
	user.CreatedAt = time.Now().UTC()
	r.byName[user.UserName] = clone(user)
	return user, nil
}

func (r *InMemoryRepository) GetUserByLogin(_ context.Context, login string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byName[login]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return clone(u), nil
}

func (r *InMemoryRepository) ReplaceCredentials(_ context.Context, userID string, prevVerifier []byte, c models.Credentials) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.byName {
		if u.ID != userID {
			continue
		}
		if !bytes.Equal(u.Verifier, prevVerifier) {
			return common.ErrVersionConflict
		}
		u.Salt = append([]byte(nil), c.Salt...)
		u.Verifier = append([]byte(nil), c.Verifier...)
		u.WrappedMasterKey = c.WrappedMasterKey
		return nil
	}
	return common.ErrorNotFound
}

// SetStatus flips the active/locked flags. Account administration lives
// outside this service; tests use it to simulate it.
func (r *InMemoryRepository) SetStatus(login string, active, locked bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byName[login]
	if !ok {
		return common.ErrorNotFound
	}
	u.IsActive, u.IsLocked = active, locked
	return nil
}
