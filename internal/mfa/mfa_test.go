package mfa

import (
	"crypto"
	"crypto/hmac"
	"crypto/sha1"
	_ "crypto/sha256"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProof_MatchesHMACSHA1(t *testing.T) {
	key := []byte("session-key")
	challenge := []byte("challenge")

	mac := hmac.New(sha1.New, key)
	mac.Write(challenge)

	assert.Equal(t, mac.Sum(nil), Proof(crypto.SHA1, key, challenge))
}

func TestVerify(t *testing.T) {
	key := []byte("k")
	c, err := NewChallenge()
	require.NoError(t, err)
	require.Len(t, c, ChallengeSize)

	p := Proof(crypto.SHA256, key, c)
	assert.True(t, Verify(crypto.SHA256, key, c, p))
	assert.False(t, Verify(crypto.SHA1, key, c, p))
	assert.False(t, Verify(crypto.SHA256, []byte("other"), c, p))

	p[0] ^= 1
	assert.False(t, Verify(crypto.SHA256, key, c, p))
}

func TestNewChallenge_Fresh(t *testing.T) {
	a, _ := NewChallenge()
	b, _ := NewChallenge()
	assert.NotEqual(t, a, b)
}
