package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/zkauth/internal/common"
	"github.com/dmitrijs2005/zkauth/internal/envelope"
	"github.com/dmitrijs2005/zkauth/internal/logging"
	"github.com/dmitrijs2005/zkauth/internal/mfa"
	"github.com/dmitrijs2005/zkauth/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/zkauth/internal/server/repositories/templates"
	"github.com/dmitrijs2005/zkauth/internal/sessions"
	"github.com/dmitrijs2005/zkauth/internal/srp"
	"github.com/stretchr/testify/require"
)

var cheapArgon2 = envelope.Argon2Params{Time: 1, Memory: 1024, Threads: 1, KeyLen: 32}

const testSecret = "jwt-secret"

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type stack struct {
	clock     *fakeClock
	repos     *repomanager.InMemoryRepositoryManager
	envelopes *envelope.Manager
	login     *LoginService
	mfa       *MFAService
	creds     *CredentialService
	templates *TemplateService
	auth      *AuthService
}

type stackOptions struct {
	ttl         time.Duration
	capacity    int
	maxAttempts int
}

func newStack(t *testing.T, o stackOptions) *stack {
	t.Helper()
	if o.ttl == 0 {
		o.ttl = sessions.DefaultTTL
	}
	if o.capacity == 0 {
		o.capacity = sessions.DefaultCapacity
	}

	clk := &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	log := logging.Nop{}
	opts := []sessions.Option{sessions.WithTTL(o.ttl), sessions.WithCapacity(o.capacity), sessions.WithClock(clk.Now)}

	repos := repomanager.NewInMemoryRepositoryManager()
	env := envelope.NewManager(envelope.NewBoundedKDF(envelope.NewArgon2KDF(cheapArgon2), 2), envelope.NewAESGCM())

	login, err := NewLoginService(srp.Default, repos.Users(), log, o.maxAttempts, opts...)
	require.NoError(t, err)
	m := NewMFAService(srp.Default.Hash, log, o.maxAttempts, opts...)
	creds := NewCredentialService(srp.Default, repos, env, 8, log, login, m)
	tmpl := NewTemplateService(repos, templates.NewInMemoryRepository(), log)

	return &stack{
		clock:     clk,
		repos:     repos,
		envelopes: env,
		login:     login,
		mfa:       m,
		creds:     creds,
		templates: tmpl,
		auth:      NewAuthService(login, m, creds, tmpl, repos.Users(), []byte(testSecret), time.Hour, log),
	}
}

// clientLogin plays the client side of both login steps and returns the
// SRP client plus the second-step result.
func (s *stack) clientLogin(t *testing.T, username, password string) (*srp.Client, *LoginVerifyResult, error) {
	t.Helper()
	ctx := context.Background()

	c, err := srp.NewClient(srp.Default, username, password)
	require.NoError(t, err)

	start, err := s.auth.LoginStart(ctx, username, common.EncodeBase64(c.PublicValue()))
	if err != nil {
		return nil, nil, err
	}

	salt, err := common.DecodeBase64Field(start.Salt, "salt", 1)
	require.NoError(t, err)
	b, err := common.DecodeBase64Field(start.ServerPublic, "B", 1)
	require.NoError(t, err)

	m, err := c.ProcessChallenge(salt, b)
	require.NoError(t, err)

	res, err := s.auth.LoginVerify(ctx, username, start.SessionID, common.EncodeBase64(m))
	return c, res, err
}

func mfaProof(t *testing.T, c *srp.Client, challengeB64 string) string {
	t.Helper()
	ch, err := common.DecodeBase64Field(challengeB64, "challenge", mfa.ChallengeSize)
	require.NoError(t, err)
	return common.EncodeBase64(mfa.Proof(srp.Default.Hash, c.SessionKey(), ch))
}
