package srp

import (
	"crypto/sha1"
	"errors"
	"math/big"
	"testing"

	"github.com/dmitrijs2005/zkauth/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exchange(t *testing.T, p *Params, user, regPassword, loginPassword string) (*Server, *Client, []byte) {
	t.Helper()

	salt, verifier, err := p.CreateVerifier(user, regPassword)
	require.NoError(t, err)

	c, err := NewClient(p, user, loginPassword)
	require.NoError(t, err)

	s, err := NewServer(p, user, salt, verifier, c.PublicValue())
	require.NoError(t, err)

	m, err := c.ProcessChallenge(salt, s.Challenge())
	require.NoError(t, err)
	return s, c, m
}

func TestExchange_Succeeds(t *testing.T) {
	for _, p := range []*Params{RFC5054Group2048SHA1, RFC5054Group2048SHA256} {
		t.Run(p.Name, func(t *testing.T) {
			s, c, m := exchange(t, p, "alice", "Secr3t!23", "Secr3t!23")

			hamk, err := s.Verify(m)
			require.NoError(t, err)
			require.NoError(t, c.VerifyServerProof(hamk))

			key, ok := s.SessionKey()
			require.True(t, ok)
			assert.Equal(t, c.SessionKey(), key)
			assert.Len(t, key, p.Hash.Size())
		})
	}
}

func TestExchange_WrongPassword(t *testing.T) {
	s, _, m := exchange(t, Default, "alice", "Secr3t!23", "Secr3t!24")

	_, err := s.Verify(m)
	assert.ErrorIs(t, err, ErrProofMismatch)
	assert.True(t, errors.Is(err, common.ErrorUnauthorized))

	_, ok := s.SessionKey()
	assert.False(t, ok)
}

func TestServer_RetryAfterMismatch(t *testing.T) {
	s, _, m := exchange(t, Default, "alice", "pw", "pw")

	_, err := s.Verify([]byte("garbage"))
	require.Error(t, err)

	_, err = s.Verify(m)
	assert.NoError(t, err)
}

func TestServer_UsernameIsBoundIntoProof(t *testing.T) {
	p := Default
	salt, verifier, err := p.CreateVerifier("alice", "pw")
	require.NoError(t, err)

	c, err := NewClient(p, "mallory", "pw")
	require.NoError(t, err)
	s, err := NewServer(p, "alice", salt, verifier, c.PublicValue())
	require.NoError(t, err)

	m, err := c.ProcessChallenge(salt, s.Challenge())
	require.NoError(t, err)

	_, err = s.Verify(m)
	assert.ErrorIs(t, err, ErrProofMismatch)
}

func TestNewServer_RejectsZeroPublicValue(t *testing.T) {
	p := Default
	salt, verifier, err := p.CreateVerifier("alice", "pw")
	require.NoError(t, err)

	for _, A := range [][]byte{{0}, {}, p.N.Bytes(), new(big.Int).Mul(p.N, big.NewInt(2)).Bytes()} {
		_, err := NewServer(p, "alice", salt, verifier, A)
		assert.ErrorIs(t, err, ErrInvalidPublicValue)
	}
}

func TestClient_RejectsZeroServerValue(t *testing.T) {
	c, err := NewClient(Default, "alice", "pw")
	require.NoError(t, err)

	_, err = c.ProcessChallenge([]byte("salt"), Default.N.Bytes())
	assert.ErrorIs(t, err, ErrInvalidPublicValue)
}

func TestClient_VerifyServerProof(t *testing.T) {
	c, err := NewClient(Default, "alice", "pw")
	require.NoError(t, err)
	assert.Error(t, c.VerifyServerProof([]byte("x")))

	s, c, m := exchange(t, Default, "alice", "pw", "pw")
	_, err = s.Verify(m)
	require.NoError(t, err)
	assert.ErrorIs(t, c.VerifyServerProof([]byte("forged")), ErrProofMismatch)
}

func TestCreateVerifier_FreshSalt(t *testing.T) {
	s1, v1, err := Default.CreateVerifier("alice", "pw")
	require.NoError(t, err)
	s2, v2, err := Default.CreateVerifier("alice", "pw")
	require.NoError(t, err)

	assert.Len(t, s1, SaltSize)
	assert.NotEqual(t, s1, s2)
	assert.NotEqual(t, v1, v2)
	assert.Equal(t, v1, Default.ComputeVerifier("alice", "pw", s1))
}

func TestServer_Wipe(t *testing.T) {
	s, _, m := exchange(t, Default, "alice", "pw", "pw")
	s.Wipe()

	_, err := s.Verify(m)
	assert.ErrorIs(t, err, ErrExchangeCompleted, "a wiped exchange is over, not a bad proof")
	assert.ErrorIs(t, err, common.ErrorInvalidSession)
	assert.NotErrorIs(t, err, common.ErrorUnauthorized)
	_, ok := s.SessionKey()
	assert.False(t, ok)
}

func TestNewParams_Errors(t *testing.T) {
	_, err := NewParams("bad", "zz", 2, Default.Hash)
	assert.Error(t, err)
	assert.Panics(t, func() { MustNewParams("bad", "zz", 2, Default.Hash) })
}

func TestServer_SuccessIsFinal(t *testing.T) {
	s, _, m := exchange(t, Default, "alice", "pw", "pw")

	_, err := s.Verify(m)
	require.NoError(t, err)

	_, err = s.Verify(m)
	assert.ErrorIs(t, err, ErrExchangeCompleted)
	assert.ErrorIs(t, err, common.ErrorInvalidSession)
}

func TestParams_MultiplierIsUnpadded(t *testing.T) {
	h := sha1.New()
	h.Write(Default.N.Bytes())
	h.Write(Default.G.Bytes())
	want := new(big.Int).SetBytes(h.Sum(nil))
	assert.Zero(t, want.Cmp(Default.k), "k = H(N, g) with minimal-length g")

	padded := sha1.New()
	padded.Write(Default.N.Bytes())
	g := make([]byte, len(Default.N.Bytes()))
	Default.G.FillBytes(g)
	padded.Write(g)
	assert.NotZero(t, new(big.Int).SetBytes(padded.Sum(nil)).Cmp(Default.k))
}
