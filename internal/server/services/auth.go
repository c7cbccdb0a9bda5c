package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/zkauth/internal/common"
	"github.com/dmitrijs2005/zkauth/internal/logging"
	"github.com/dmitrijs2005/zkauth/internal/server/auth"
	"github.com/dmitrijs2005/zkauth/internal/server/repositories/users"
)

// minPublicValueSize rejects client public values that cannot be a group
// element of the configured size before any modular arithmetic runs.
const minPublicValueSize = 32

type LoginStartResult struct {
	Salt         string
	ServerPublic string
	SessionID    string
}

type LoginVerifyResult struct {
	MFARequired  bool
	MFASessionID string
	Challenge    string
	ServerProof  string
}

type MFAResult struct {
	Authenticated bool
	AccessToken   string
}

type EnvelopeBundleResult struct {
	Salt             string
	WrappedMasterKey string
}

type ChangePasswordResult struct {
	Message      string
	ForceRelogin bool
}

// AuthService is the protocol-entry facade: it decodes and validates wire
// fields, then drives the login, second-factor, credential and template
// services. All binary fields are standard base64.
type AuthService struct {
	login       *LoginService
	mfa         *MFAService
	credentials *CredentialService
	templates   *TemplateService
	users       users.Repository

	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
	log                         logging.Logger
}

func NewAuthService(login *LoginService, mfa *MFAService, creds *CredentialService, tmpl *TemplateService, repo users.Repository, jwtSecret []byte, accessTTL time.Duration, log logging.Logger) *AuthService {
	return &AuthService{
		login:                       login,
		mfa:                         mfa,
		credentials:                 creds,
		templates:                   tmpl,
		users:                       repo,
		jwtSecret:                   jwtSecret,
		accessTokenValidityDuration: accessTTL,
		log:                         log,
	}
}

func requireField(value, field string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%w: missing %s", common.ErrorValidation, field)
	}
	return nil
}

func (s *AuthService) Register(ctx context.Context, username, email, password string) error {
	_, err := s.credentials.Register(ctx, username, email, password)
	return err
}

func (s *AuthService) LoginStart(ctx context.Context, username, clientPublicB64 string) (*LoginStartResult, error) {
	if err := requireField(username, "username"); err != nil {
		return nil, err
	}
	a, err := common.DecodeBase64Field(clientPublicB64, "A", minPublicValueSize)
	if err != nil {
		return nil, err
	}

	ch, err := s.login.Begin(ctx, username, a)
	if err != nil {
		return nil, err
	}
	return &LoginStartResult{
		Salt:         common.EncodeBase64(ch.Salt),
		ServerPublic: common.EncodeBase64(ch.ServerPublic),
		SessionID:    ch.SessionID,
	}, nil
}

// LoginVerify checks the SRP proof and immediately escalates to a second
// factor challenge bound to the new session key.
func (s *AuthService) LoginVerify(ctx context.Context, username, sessionID, clientProofB64 string) (*LoginVerifyResult, error) {
	if err := requireField(username, "username"); err != nil {
		return nil, err
	}
	if err := requireField(sessionID, "session_id"); err != nil {
		return nil, err
	}
	m, err := common.DecodeBase64Field(clientProofB64, "M", s.login.Params().Hash.Size())
	if err != nil {
		return nil, err
	}

	res, err := s.login.Verify(ctx, sessionID, username, m)
	if err != nil {
		return nil, err
	}
	defer common.WipeByteArray(res.SharedSecret)

	ch, err := s.mfa.IssueChallenge(ctx, username, res.SharedSecret)
	if err != nil {
		return nil, err
	}

	return &LoginVerifyResult{
		MFARequired:  true,
		MFASessionID: ch.SessionID,
		Challenge:    common.EncodeBase64(ch.Challenge),
		ServerProof:  common.EncodeBase64(res.ServerProof),
	}, nil
}

// CompleteMFA finishes the login and mints an access token.
func (s *AuthService) CompleteMFA(ctx context.Context, username, mfaSessionID, proofB64 string) (*MFAResult, error) {
	if err := requireField(username, "username"); err != nil {
		return nil, err
	}
	if err := requireField(mfaSessionID, "mfa_session_id"); err != nil {
		return nil, err
	}
	proof, err := common.DecodeBase64Field(proofB64, "proof", s.login.Params().Hash.Size())
	if err != nil {
		return nil, err
	}

	if err := s.mfa.CompleteChallenge(ctx, mfaSessionID, username, proof); err != nil {
		return nil, err
	}

	user, err := s.users.GetUserByLogin(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}

	token, err := auth.GenerateToken(user.ID, user.UserName, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, common.ErrorInternal
	}

	return &MFAResult{Authenticated: true, AccessToken: token}, nil
}

func (s *AuthService) GetEnvelopeBundle(ctx context.Context, username string) (*EnvelopeBundleResult, error) {
	if err := requireField(username, "username"); err != nil {
		return nil, err
	}
	b, err := s.credentials.GetEnvelopeBundle(ctx, username)
	if err != nil {
		return nil, err
	}
	return &EnvelopeBundleResult{Salt: common.EncodeBase64(b.Salt), WrappedMasterKey: b.WrappedMasterKey}, nil
}

func (s *AuthService) ChangePassword(ctx context.Context, username, oldPassword, newPassword string) (*ChangePasswordResult, error) {
	if err := s.credentials.ChangePassword(ctx, username, oldPassword, newPassword); err != nil {
		return nil, err
	}
	return &ChangePasswordResult{Message: "password changed successfully", ForceRelogin: true}, nil
}

// Authorize checks that an access token was issued for username.
func (s *AuthService) Authorize(token, username string) error {
	claims, err := auth.ParseToken(token, s.jwtSecret)
	if err != nil {
		return common.ErrorUnauthorized
	}
	if subtle.ConstantTimeCompare([]byte(claims.Username), []byte(username)) != 1 {
		return common.ErrorForbidden
	}
	return nil
}

func (s *AuthService) EnrollTemplate(ctx context.Context, token, username, envelope string) error {
	if err := requireField(username, "username"); err != nil {
		return err
	}
	if err := s.Authorize(token, username); err != nil {
		return err
	}
	return s.templates.Enroll(ctx, username, envelope)
}

func (s *AuthService) FetchTemplate(ctx context.Context, token, username string) (string, error) {
	if err := requireField(username, "username"); err != nil {
		return "", err
	}
	if err := s.Authorize(token, username); err != nil {
		return "", err
	}
	return s.templates.Fetch(ctx, username)
}
