package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/zkauth/internal/common"
	"github.com/dmitrijs2005/zkauth/internal/envelope"
	"github.com/dmitrijs2005/zkauth/internal/logging"
	"github.com/dmitrijs2005/zkauth/internal/server/models"
	"github.com/dmitrijs2005/zkauth/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/zkauth/internal/server/repositories/users"
	"github.com/dmitrijs2005/zkauth/internal/srp"
)

// DefaultMinPasswordLength applies when no explicit minimum is configured.
const DefaultMinPasswordLength = 8

// SessionInvalidator drops live protocol sessions of one account.
type SessionInvalidator interface {
	InvalidateUser(username string) int
}

// EnvelopeBundle is what a client needs to unlock its master key.
type EnvelopeBundle struct {
	Salt             []byte
	WrappedMasterKey string
}

// CredentialService owns the credential triple: registration, bundle
// retrieval and password change.
type CredentialService struct {
	params         *srp.Params
	repos          repomanager.RepositoryManager
	envelopes      *envelope.Manager
	minPasswordLen int
	invalidators   []SessionInvalidator
	log            logging.Logger
}

func NewCredentialService(p *srp.Params, repos repomanager.RepositoryManager, env *envelope.Manager, minPasswordLen int, log logging.Logger, invalidators ...SessionInvalidator) *CredentialService {
	if minPasswordLen <= 0 {
		minPasswordLen = DefaultMinPasswordLength
	}
	return &CredentialService{
		params:         p,
		repos:          repos,
		envelopes:      env,
		minPasswordLen: minPasswordLen,
		invalidators:   invalidators,
		log:            log,
	}
}

// Register creates the account: SRP salt and verifier, a fresh master key
// and its envelope under a key derived from password.
func (s *CredentialService) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	if strings.TrimSpace(username) == "" || strings.TrimSpace(email) == "" || password == "" {
		return nil, fmt.Errorf("%w: missing fields", common.ErrorValidation)
	}
	if len(password) < s.minPasswordLen {
		return nil, fmt.Errorf("%w: password must be at least %d characters", common.ErrorValidation, s.minPasswordLen)
	}

	_, err := s.repos.Users().GetUserByLogin(ctx, username)
	switch {
	case err == nil:
		return nil, users.ErrUsernameTaken
	case !errors.Is(err, common.ErrorNotFound):
		s.log.Error(ctx, "error loading user", "error", err)
		return nil, common.ErrorInternal
	}

	salt, verifier, err := s.params.CreateVerifier(username, password)
	if err != nil {
		return nil, common.ErrorInternal
	}

	masterKey, err := s.envelopes.GenerateMasterKey()
	if err != nil {
		return nil, common.ErrorInternal
	}
	defer common.WipeByteArray(masterKey)

	kek, err := s.envelopes.DeriveWrappingKey(ctx, password, salt)
	if err != nil {
		return nil, fmt.Errorf("error deriving wrapping key: %w", err)
	}
	defer common.WipeByteArray(kek)

	wrapped, err := s.envelopes.Wrap(kek, masterKey)
	if err != nil {
		return nil, common.ErrorInternal
	}

	user := &models.User{
		UserName:         username,
		Email:            email,
		Salt:             salt,
		Verifier:         verifier,
		WrappedMasterKey: wrapped,
		IsActive:         true,
	}

	err = s.repos.WithTx(ctx, func(ctx context.Context, r repomanager.Repos) error {
		created, err := r.Users.Create(ctx, user)
		if err != nil {
			return err
		}
		user = created
		return r.Events.Append(ctx, created.ID, models.EventRegistered)
	})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, err
		}
		s.log.Error(ctx, "error creating user", "error", err)
		return nil, common.ErrorInternal
	}

	s.log.Info(ctx, "user registered", logging.Username(username))
	return user, nil
}

// GetEnvelopeBundle returns the SRP salt and wrapped master key.
func (s *CredentialService) GetEnvelopeBundle(ctx context.Context, username string) (*EnvelopeBundle, error) {
	user, err := s.repos.Users().GetUserByLogin(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, fmt.Errorf("%w: user not found", common.ErrorNotFound)
		}
		return nil, common.ErrorInternal
	}
	return &EnvelopeBundle{Salt: user.Salt, WrappedMasterKey: user.WrappedMasterKey}, nil
}

// ChangePassword proves knowledge of oldPassword by unwrapping the stored
// envelope, then replaces salt, verifier and envelope in one conditional
// update. The master key itself is re-wrapped, never regenerated. Live
// sessions of the account are dropped afterwards.
func (s *CredentialService) ChangePassword(ctx context.Context, username, oldPassword, newPassword string) error {
	if strings.TrimSpace(username) == "" || oldPassword == "" {
		return fmt.Errorf("%w: missing fields", common.ErrorValidation)
	}
	if len(newPassword) < s.minPasswordLen {
		return fmt.Errorf("%w: new password must be at least %d characters", common.ErrorValidation, s.minPasswordLen)
	}

	user, err := s.repos.Users().GetUserByLogin(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorUnauthorized
		}
		return common.ErrorInternal
	}
	if !user.CanLogin() {
		return common.ErrorUnauthorized
	}

	oldKEK, err := s.envelopes.DeriveWrappingKey(ctx, oldPassword, user.Salt)
	if err != nil {
		return fmt.Errorf("error deriving wrapping key: %w", err)
	}
	defer common.WipeByteArray(oldKEK)

	masterKey, err := s.envelopes.Unwrap(oldKEK, user.WrappedMasterKey)
	if err != nil {
		s.log.Warn(ctx, "password change rejected", logging.Username(username))
		if errors.Is(err, common.ErrorUnauthorized) {
			return common.ErrorUnauthorized
		}
		return common.ErrorInternal
	}
	defer common.WipeByteArray(masterKey)

	salt, verifier, err := s.params.CreateVerifier(username, newPassword)
	if err != nil {
		return common.ErrorInternal
	}

	newKEK, err := s.envelopes.DeriveWrappingKey(ctx, newPassword, salt)
	if err != nil {
		return fmt.Errorf("error deriving wrapping key: %w", err)
	}
	defer common.WipeByteArray(newKEK)

	wrapped, err := s.envelopes.Wrap(newKEK, masterKey)
	if err != nil {
		return common.ErrorInternal
	}

	next := models.Credentials{Salt: salt, Verifier: verifier, WrappedMasterKey: wrapped}
	err = s.repos.WithTx(ctx, func(ctx context.Context, r repomanager.Repos) error {
		if err := r.Users.ReplaceCredentials(ctx, user.ID, user.Verifier, next); err != nil {
			return err
		}
		return r.Events.Append(ctx, user.ID, models.EventPasswordChanged)
	})
	if err != nil {
		if errors.Is(err, common.ErrVersionConflict) {
			return fmt.Errorf("%w: credentials changed concurrently", common.ErrVersionConflict)
		}
		s.log.Error(ctx, "error replacing credentials", "error", err)
		return common.ErrorInternal
	}

	dropped := 0
	for _, inv := range s.invalidators {
		dropped += inv.InvalidateUser(username)
	}

	s.log.Info(ctx, "password changed", logging.Username(username), "sessions_dropped", dropped)
	return nil
}
