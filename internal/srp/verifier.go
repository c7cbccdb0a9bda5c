package srp

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"

	"github.com/dmitrijs2005/zkauth/internal/common"
)

// SaltSize is the length of freshly generated SRP salts.
const SaltSize = 16

// ephemeralSize is the length of the random private exponents a and b.
const ephemeralSize = 32

var (
	// ErrInvalidPublicValue is returned when a peer's public ephemeral value
	// is 0 mod N or yields u == 0.
	ErrInvalidPublicValue = fmt.Errorf("%w: invalid srp public value", common.ErrorUnauthorized)

	// ErrProofMismatch is returned when a proof does not match the expected value.
	ErrProofMismatch = fmt.Errorf("%w: srp proof mismatch", common.ErrorUnauthorized)

	// ErrExchangeCompleted is returned when a proof arrives for an exchange
	// that already succeeded or was wiped.
	ErrExchangeCompleted = fmt.Errorf("%w: srp exchange already completed", common.ErrorInvalidSession)
)

// CreateVerifier draws a random salt and computes v = g^x for the given
// credentials. It runs once at registration and on every password change.
func (p *Params) CreateVerifier(username, password string) (salt, verifier []byte, err error) {
	salt = make([]byte, SaltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, nil, fmt.Errorf("srp salt: %w", err)
	}
	return salt, p.ComputeVerifier(username, password, salt), nil
}

// ComputeVerifier returns v = g^x mod N for an existing salt.
func (p *Params) ComputeVerifier(username, password string, salt []byte) []byte {
	x := p.computeX(username, password, salt)
	return new(big.Int).Exp(p.G, x, p.N).Bytes()
}

func randomExponent(r io.Reader) (*big.Int, error) {
	buf := make([]byte, ephemeralSize)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, fmt.Errorf("srp ephemeral: %w", err)
	}
	buf[len(buf)-1] |= 1
	return new(big.Int).SetBytes(buf), nil
}
