package srp

import (
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"math/big"
)

// Client is the user side of the exchange. The server never needs it; the
// CLI and tests do.
type Client struct {
	params   *Params
	username string
	password string
	a        *big.Int
	A        *big.Int
	key      []byte
	hamk     []byte
}

func NewClient(p *Params, username, password string) (*Client, error) {
	a, err := randomExponent(rand.Reader)
	if err != nil {
		return nil, err
	}
	return &Client{
		params:   p,
		username: username,
		password: password,
		a:        a,
		A:        new(big.Int).Exp(p.G, a, p.N),
	}, nil
}

// PublicValue returns A.
func (c *Client) PublicValue() []byte { return c.A.Bytes() }

// ProcessChallenge computes the client proof M from the salt and server
// public value B.
func (c *Client) ProcessChallenge(salt, serverPublic []byte) ([]byte, error) {
	p := c.params
	B := new(big.Int).SetBytes(serverPublic)
	if p.isZeroModN(B) {
		return nil, ErrInvalidPublicValue
	}
	u := p.computeU(c.A, B)
	if u.Sign() == 0 {
		return nil, ErrInvalidPublicValue
	}
	x := p.computeX(c.username, c.password, salt)

	// S = (B - k*g^x)^(a + u*x) mod N
	base := new(big.Int).Exp(p.G, x, p.N)
	base.Mul(base, p.k)
	base.Sub(B, base)
	base.Mod(base, p.N)

	exp := new(big.Int).Mul(u, x)
	exp.Add(exp, c.a)

	S := new(big.Int).Exp(base, exp, p.N)
	c.key = p.hash(S.Bytes())

	m := p.computeM(c.username, salt, c.A, B, c.key)
	c.hamk = p.computeHAMK(c.A, m, c.key)
	return m, nil
}

// VerifyServerProof checks the server's proof M2.
func (c *Client) VerifyServerProof(proof []byte) error {
	if c.hamk == nil {
		return errors.New("srp: challenge not processed")
	}
	if subtle.ConstantTimeCompare(proof, c.hamk) != 1 {
		return ErrProofMismatch
	}
	return nil
}

// SessionKey returns K after ProcessChallenge.
func (c *Client) SessionKey() []byte { return c.key }
