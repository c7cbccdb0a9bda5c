package services

import (
	"context"
	"crypto"
	"sync"

	"github.com/dmitrijs2005/zkauth/internal/common"
	"github.com/dmitrijs2005/zkauth/internal/logging"
	"github.com/dmitrijs2005/zkauth/internal/mfa"
	"github.com/dmitrijs2005/zkauth/internal/sessions"
)

type mfaSession struct {
	mu        sync.Mutex
	username  string
	key       []byte
	challenge []byte
	failures  int
	done      bool
}

func (m *mfaSession) wipe() {
	common.WipeByteArray(m.key)
	m.key = nil
}

// MFAChallenge is handed to the client right after the SRP proof is accepted.
type MFAChallenge struct {
	SessionID string
	Challenge []byte
}

// MFAService issues challenges bound to an SRP session key and checks the
// keyed-hash answers. The key never leaves this service.
type MFAService struct {
	hash        crypto.Hash
	store       *sessions.Store[*mfaSession]
	maxAttempts int
	log         logging.Logger
}

func NewMFAService(h crypto.Hash, log logging.Logger, maxAttempts int, opts ...sessions.Option) *MFAService {
	return &MFAService{
		hash:        h,
		store:       sessions.New[*mfaSession](opts...),
		maxAttempts: maxAttempts,
		log:         log,
	}
}

func (s *MFAService) collect(ctx context.Context) {
	if expired, evicted := s.store.Collect(); expired+evicted > 0 {
		s.log.Debug(ctx, "sessions reclaimed", logging.Reclaimed(logging.SessionMFA, expired, evicted)...)
	}
}

// IssueChallenge stores sharedSecret under a new session id. The caller must
// not reuse sharedSecret afterwards.
func (s *MFAService) IssueChallenge(ctx context.Context, username string, sharedSecret []byte) (*MFAChallenge, error) {
	s.collect(ctx)

	challenge, err := mfa.NewChallenge()
	if err != nil {
		return nil, common.ErrorInternal
	}
	id, err := common.MakeSessionID(sessionIDSize)
	if err != nil {
		return nil, common.ErrorInternal
	}

	s.store.Insert(id, &mfaSession{
		username:  username,
		key:       append([]byte(nil), sharedSecret...),
		challenge: challenge,
	})

	s.log.Info(ctx, "mfa challenge issued", logging.Username(username))
	return &MFAChallenge{SessionID: id, Challenge: append([]byte(nil), challenge...)}, nil
}

// CompleteChallenge verifies proof in constant time. On success the session
// is consumed; on mismatch it stays until expiry or the attempt limit.
func (s *MFAService) CompleteChallenge(ctx context.Context, sessionID, username string, proof []byte) error {
	s.collect(ctx)

	sess, ok := s.store.Get(sessionID)
	if !ok || sess.username != username {
		return common.ErrorInvalidSession
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.done {
		return common.ErrorInvalidSession
	}

	if !mfa.Verify(s.hash, sess.key, sess.challenge, proof) {
		sess.failures++
		if s.maxAttempts > 0 && sess.failures >= s.maxAttempts {
			sess.done = true
			s.store.Remove(sessionID)
			sess.wipe()
		}
		s.log.Warn(ctx, "mfa proof rejected", logging.Username(username), "failures", sess.failures)
		return common.ErrorUnauthorized
	}

	sess.done = true
	s.store.Remove(sessionID)
	sess.wipe()

	s.log.Info(ctx, "mfa completed", logging.Username(username))
	return nil
}

// InvalidateUser drops every pending challenge bound to username.
func (s *MFAService) InvalidateUser(username string) int {
	return s.store.RemoveIf(func(sess *mfaSession) bool { return sess.username == username })
}

// Pending reports the number of live challenges.
func (s *MFAService) Pending() int { return s.store.Len() }
