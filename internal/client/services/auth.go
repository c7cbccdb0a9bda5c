// Package services contains application services for the zkauth client.
// AuthService runs the client half of every protocol: SRP-6a login with
// the second-factor proof, master key unlock from the envelope bundle,
// password change, and template envelopes sealed under the master key.
package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/zkauth/internal/client/client"
	"github.com/dmitrijs2005/zkauth/internal/common"
	"github.com/dmitrijs2005/zkauth/internal/envelope"
	"github.com/dmitrijs2005/zkauth/internal/mfa"
	"github.com/dmitrijs2005/zkauth/internal/srp"
)

// Session is the outcome of a completed login.
type Session struct {
	Username string
	// MasterKey is the unwrapped data encryption key. Callers wipe it on
	// logout.
	MasterKey []byte
}

// AuthService defines authentication operations for the CLI.
//
// All methods must honor context cancellation/timeouts.
type AuthService interface {
	Register(ctx context.Context, username, email string, password []byte) error
	Login(ctx context.Context, username string, password []byte) (*Session, error)
	ChangePassword(ctx context.Context, username string, oldPassword, newPassword []byte) error
	EnrollTemplate(ctx context.Context, s *Session, template []byte) error
	FetchTemplate(ctx context.Context, s *Session) ([]byte, error)
	Logout(ctx context.Context, s *Session)
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

type authService struct {
	client    client.Client
	params    *srp.Params
	envelopes *envelope.Manager
}

// NewAuthService constructs an AuthService bound to the given API client.
// params must match the server's group and hash.
func NewAuthService(c client.Client, params *srp.Params, env *envelope.Manager) AuthService {
	return &authService{client: c, params: params, envelopes: env}
}

func (a *authService) Register(ctx context.Context, username, email string, password []byte) error {
	return a.client.Register(ctx, username, email, string(password))
}

// Login proves knowledge of the password without sending it, checks the
// server's proof, answers the second-factor challenge with the shared key,
// and finally unwraps the master key locally.
func (a *authService) Login(ctx context.Context, username string, password []byte) (*Session, error) {
	c, err := srp.NewClient(a.params, username, string(password))
	if err != nil {
		return nil, err
	}

	challenge, err := a.client.LoginStart(ctx, username, c.PublicValue())
	if err != nil {
		return nil, fmt.Errorf("login start error: %w", err)
	}

	proof, err := c.ProcessChallenge(challenge.Salt, challenge.ServerPublic)
	if err != nil {
		return nil, fmt.Errorf("srp challenge error: %w", err)
	}

	verification, err := a.client.LoginVerify(ctx, username, challenge.SessionID, proof)
	if err != nil {
		return nil, fmt.Errorf("login verify error: %w", err)
	}

	// A server that cannot prove knowledge of the verifier is not trusted
	// with the second-factor answer.
	if err := c.VerifyServerProof(verification.ServerProof); err != nil {
		return nil, fmt.Errorf("server proof error: %w", client.ErrUnauthorized)
	}

	key := c.SessionKey()
	mfaProof := mfa.Proof(a.params.Hash, key, verification.Challenge)
	if err := a.client.CompleteMFA(ctx, username, verification.MFASessionID, mfaProof); err != nil {
		return nil, fmt.Errorf("second factor error: %w", err)
	}

	masterKey, err := a.unlock(ctx, username, password)
	if err != nil {
		a.client.Logout()
		return nil, err
	}

	return &Session{Username: username, MasterKey: masterKey}, nil
}

func (a *authService) unlock(ctx context.Context, username string, password []byte) ([]byte, error) {
	bundle, err := a.client.GetEnvelopeBundle(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("envelope bundle error: %w", err)
	}

	kek, err := a.envelopes.DeriveWrappingKey(ctx, string(password), bundle.Salt)
	if err != nil {
		return nil, err
	}
	defer common.WipeByteArray(kek)

	masterKey, err := a.envelopes.Unwrap(kek, bundle.WrappedMasterKey)
	if err != nil {
		return nil, fmt.Errorf("unwrap master key: %w", client.ErrUnauthorized)
	}
	return masterKey, nil
}

// ChangePassword drops the access token once the server accepts the change,
// since the server has revoked every session of the account. The caller still
// owns its Session and should pass it to Logout. A rejected change keeps the
// token.
func (a *authService) ChangePassword(ctx context.Context, username string, oldPassword, newPassword []byte) error {
	if err := a.client.ChangePassword(ctx, username, string(oldPassword), string(newPassword)); err != nil {
		return err
	}
	a.client.Logout()
	return nil
}

func (a *authService) EnrollTemplate(ctx context.Context, s *Session, template []byte) error {
	if s == nil || len(s.MasterKey) == 0 {
		return client.ErrNotLoggedIn
	}
	env, err := a.envelopes.WrapArbitrary(s.MasterKey, template)
	if err != nil {
		return err
	}
	return a.client.EnrollTemplate(ctx, s.Username, env)
}

func (a *authService) FetchTemplate(ctx context.Context, s *Session) ([]byte, error) {
	if s == nil || len(s.MasterKey) == 0 {
		return nil, client.ErrNotLoggedIn
	}
	env, err := a.client.FetchTemplate(ctx, s.Username)
	if err != nil {
		return nil, err
	}
	return a.envelopes.UnwrapArbitrary(s.MasterKey, env)
}

// Logout wipes the master key and drops the access token.
func (a *authService) Logout(_ context.Context, s *Session) {
	if s != nil {
		common.WipeByteArray(s.MasterKey)
		s.MasterKey = nil
	}
	a.client.Logout()
}

func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

func (a *authService) Close(ctx context.Context) error {
	return a.client.Close()
}
