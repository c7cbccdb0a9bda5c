package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/zkauth/internal/common"
	"github.com/dmitrijs2005/zkauth/internal/logging"
	"github.com/dmitrijs2005/zkauth/internal/server/repositories/users"
	"github.com/dmitrijs2005/zkauth/internal/sessions"
	"github.com/dmitrijs2005/zkauth/internal/srp"
)

// sessionIDSize is the number of random bytes behind every session id.
const sessionIDSize = 32

type srpSession struct {
	mu       sync.Mutex
	server   *srp.Server
	username string
	failures int
}

// LoginChallenge is the result of the first login step.
type LoginChallenge struct {
	Salt         []byte
	ServerPublic []byte
	SessionID    string
}

// LoginResult is the result of a successful second login step.
type LoginResult struct {
	Username     string
	SharedSecret []byte
	ServerProof  []byte
}

// LoginService runs the server side of SRP-6a. Protocol state lives in an
// in-memory session store between the two round trips.
type LoginService struct {
	params      *srp.Params
	users       users.Repository
	store       *sessions.Store[*srpSession]
	maxAttempts int
	log         logging.Logger

	decoySalt     []byte
	decoyVerifier []byte
}

// NewLoginService builds the service with its own session store. maxAttempts
// of 0 lets a session take proofs until it expires.
func NewLoginService(p *srp.Params, repo users.Repository, log logging.Logger, maxAttempts int, opts ...sessions.Option) (*LoginService, error) {
	decoyPassword, err := common.MakeRandHexString(16)
	if err != nil {
		return nil, err
	}
	salt, verifier, err := p.CreateVerifier("decoy", decoyPassword)
	if err != nil {
		return nil, fmt.Errorf("error creating decoy verifier: %w", err)
	}
	return &LoginService{
		params:        p,
		users:         repo,
		store:         sessions.New[*srpSession](opts...),
		maxAttempts:   maxAttempts,
		log:           log,
		decoySalt:     salt,
		decoyVerifier: verifier,
	}, nil
}

func (s *LoginService) collect(ctx context.Context) {
	if expired, evicted := s.store.Collect(); expired+evicted > 0 {
		s.log.Debug(ctx, "sessions reclaimed", logging.Reclaimed(logging.SessionSRP, expired, evicted)...)
	}
}

// Begin looks up the credential for username and answers the client's
// public value with a challenge. Unknown, inactive and locked accounts fail
// exactly like a malformed public value, after comparable work.
func (s *LoginService) Begin(ctx context.Context, username string, clientPublic []byte) (*LoginChallenge, error) {
	s.collect(ctx)

	user, err := s.users.GetUserByLogin(ctx, username)
	if err != nil && !errors.Is(err, common.ErrorNotFound) {
		s.log.Error(ctx, "error loading user", "error", err)
		return nil, common.ErrorInternal
	}

	if user == nil || !user.CanLogin() {
		// Same modular exponentiations as the real path.
		_, _ = srp.NewServer(s.params, username, s.decoySalt, s.decoyVerifier, clientPublic)
		s.log.Warn(ctx, "login rejected", logging.Username(username))
		return nil, common.ErrorUnauthorized
	}

	server, err := srp.NewServer(s.params, username, user.Salt, user.Verifier, clientPublic)
	if err != nil {
		s.log.Warn(ctx, "login rejected", logging.Username(username))
		if errors.Is(err, common.ErrorUnauthorized) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}

	id, err := common.MakeSessionID(sessionIDSize)
	if err != nil {
		return nil, common.ErrorInternal
	}
	s.store.Insert(id, &srpSession{server: server, username: username})

	s.log.Info(ctx, "login started", logging.Username(username))
	return &LoginChallenge{
		Salt:         append([]byte(nil), user.Salt...),
		ServerPublic: server.Challenge(),
		SessionID:    id,
	}, nil
}

// Verify checks the client proof for sessionID. A mismatch keeps the
// session for another attempt unless the attempt limit is reached.
func (s *LoginService) Verify(ctx context.Context, sessionID, username string, clientProof []byte) (*LoginResult, error) {
	s.collect(ctx)

	sess, ok := s.store.Get(sessionID)
	if !ok || sess.username != username {
		return nil, common.ErrorInvalidSession
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	hamk, err := sess.server.Verify(clientProof)
	if err != nil {
		if errors.Is(err, common.ErrorInvalidSession) {
			return nil, common.ErrorInvalidSession
		}
		sess.failures++
		if s.maxAttempts > 0 && sess.failures >= s.maxAttempts {
			s.store.Remove(sessionID)
			sess.server.Wipe()
		}
		s.log.Warn(ctx, "srp proof rejected", logging.Username(username), "failures", sess.failures)
		return nil, common.ErrorUnauthorized
	}

	key, _ := sess.server.SessionKey()
	s.store.Remove(sessionID)
	sess.server.Wipe()

	s.log.Info(ctx, "srp proof accepted", logging.Username(username))
	return &LoginResult{Username: username, SharedSecret: key, ServerProof: hamk}, nil
}

// InvalidateUser drops every pending exchange bound to username.
func (s *LoginService) InvalidateUser(username string) int {
	return s.store.RemoveIf(func(sess *srpSession) bool { return sess.username == username })
}

// Params exposes the shared group and hash.
func (s *LoginService) Params() *srp.Params { return s.params }

// Pending reports the number of live exchanges.
func (s *LoginService) Pending() int { return s.store.Len() }
