package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/zkauth/internal/common"
	"github.com/dmitrijs2005/zkauth/internal/logging"
	"github.com/dmitrijs2005/zkauth/internal/server/models"
	"github.com/dmitrijs2005/zkauth/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/zkauth/internal/server/repositories/templates"
)

// MinTemplateEnvelopeLength is the shortest accepted template payload, in
// base64 characters.
const MinTemplateEnvelopeLength = 20

// TemplateService keeps the client-sealed biometric template of each
// account. Matching happens elsewhere.
type TemplateService struct {
	repos     repomanager.RepositoryManager
	templates templates.Repository
	log       logging.Logger
}

func NewTemplateService(repos repomanager.RepositoryManager, t templates.Repository, log logging.Logger) *TemplateService {
	return &TemplateService{repos: repos, templates: t, log: log}
}

func (s *TemplateService) activeUser(ctx context.Context, username string) (*models.User, error) {
	user, err := s.repos.Users().GetUserByLogin(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, fmt.Errorf("%w: invalid user", common.ErrorValidation)
		}
		return nil, common.ErrorInternal
	}
	if !user.CanLogin() {
		return nil, fmt.Errorf("%w: invalid user", common.ErrorValidation)
	}
	return user, nil
}

// Enroll stores envelope, replacing any earlier template.
func (s *TemplateService) Enroll(ctx context.Context, username, envelope string) error {
	if len(envelope) < MinTemplateEnvelopeLength {
		return fmt.Errorf("%w: invalid template payload", common.ErrorValidation)
	}
	if _, err := common.DecodeBase64Field(envelope, "template", 1); err != nil {
		return err
	}

	user, err := s.activeUser(ctx, username)
	if err != nil {
		return err
	}

	if err := s.templates.Put(ctx, username, envelope); err != nil {
		s.log.Error(ctx, "error storing template", "error", err)
		return common.ErrorInternal
	}
	if err := s.repos.Events().Append(ctx, user.ID, models.EventTemplateEnrolled); err != nil {
		s.log.Warn(ctx, "error recording template event", "error", err)
	}

	s.log.Info(ctx, "template enrolled", logging.Username(username))
	return nil
}

// Fetch returns the stored envelope or common.ErrorNotFound.
func (s *TemplateService) Fetch(ctx context.Context, username string) (string, error) {
	if _, err := s.activeUser(ctx, username); err != nil {
		return "", err
	}

	env, err := s.templates.Get(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", fmt.Errorf("%w: template not registered", common.ErrorNotFound)
		}
		s.log.Error(ctx, "error loading template", "error", err)
		return "", common.ErrorInternal
	}
	return env, nil
}
