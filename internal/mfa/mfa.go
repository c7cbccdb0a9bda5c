// Package mfa holds the second-factor proof shared by server and client:
// an HMAC of a random challenge keyed with the SRP session key.
package mfa

import (
	"crypto"
	"crypto/hmac"
	"crypto/rand"
)

// ChallengeSize is the number of random bytes in every issued challenge.
const ChallengeSize = 32

// NewChallenge draws a fresh challenge from crypto/rand.
func NewChallenge() ([]byte, error) {
	c := make([]byte, ChallengeSize)
	if _, err := rand.Read(c); err != nil {
		return nil, err
	}
	return c, nil
}

// Proof returns HMAC-h(key, challenge). h must be the hash of the SRP
// parameters that produced key.
func Proof(h crypto.Hash, key, challenge []byte) []byte {
	mac := hmac.New(h.New, key)
	mac.Write(challenge)
	return mac.Sum(nil)
}

// Verify compares proof against the expected value in constant time.
func Verify(h crypto.Hash, key, challenge, proof []byte) bool {
	return hmac.Equal(Proof(h, key, challenge), proof)
}
