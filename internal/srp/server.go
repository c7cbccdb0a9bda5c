package srp

import (
	"crypto/rand"
	"crypto/subtle"
	"math/big"
	"sync"
)

// Server holds the server side of one login attempt between the challenge
// and the client's proof. The private exponent b never leaves this value.
type Server struct {
	mu       sync.Mutex
	params   *Params
	username string
	b        *big.Int
	B        *big.Int
	key      []byte
	wantM    []byte
	hamk     []byte
	verified bool
}

// NewServer validates the client's public value A, draws the ephemeral key
// pair and precomputes the expected proofs.
func NewServer(p *Params, username string, salt, verifier, clientPublic []byte) (*Server, error) {
	A := new(big.Int).SetBytes(clientPublic)
	if p.isZeroModN(A) {
		return nil, ErrInvalidPublicValue
	}
	v := new(big.Int).SetBytes(verifier)

	var b, B *big.Int
	for {
		var err error
		if b, err = randomExponent(rand.Reader); err != nil {
			return nil, err
		}
		// B = (k*v + g^b) mod N
		B = new(big.Int).Mul(p.k, v)
		B.Add(B, new(big.Int).Exp(p.G, b, p.N))
		B.Mod(B, p.N)
		if B.Sign() != 0 {
			break
		}
	}

	u := p.computeU(A, B)
	if u.Sign() == 0 {
		return nil, ErrInvalidPublicValue
	}

	// S = (A * v^u)^b mod N
	S := new(big.Int).Exp(v, u, p.N)
	S.Mul(S, A)
	S.Mod(S, p.N)
	S.Exp(S, b, p.N)

	key := p.hash(S.Bytes())
	m := p.computeM(username, salt, A, B, key)

	return &Server{
		params:   p,
		username: username,
		b:        b,
		B:        B,
		key:      key,
		wantM:    m,
		hamk:     p.computeHAMK(A, m, key),
	}, nil
}

// Username is the account this exchange is bound to.
func (s *Server) Username() string { return s.username }

// Challenge returns the server public value B.
func (s *Server) Challenge() []byte { return s.B.Bytes() }

// Verify checks the client proof M in constant time and returns the server
// proof on success. A failed check leaves the state usable for another try;
// a successful one is final. Once wiped, the exchange reports
// ErrExchangeCompleted like a verified one.
func (s *Server) Verify(clientProof []byte) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.verified || s.wantM == nil {
		return nil, ErrExchangeCompleted
	}
	if subtle.ConstantTimeCompare(clientProof, s.wantM) != 1 {
		return nil, ErrProofMismatch
	}
	s.verified = true
	return append([]byte(nil), s.hamk...), nil
}

// SessionKey returns K once the client proof has been accepted.
func (s *Server) SessionKey() ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.verified {
		return nil, false
	}
	return append([]byte(nil), s.key...), true
}

// Wipe zeroes the private exponent and derived secrets.
func (s *Server) Wipe() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.b != nil {
		s.b.SetInt64(0)
	}
	for i := range s.key {
		s.key[i] = 0
	}
	s.key, s.wantM, s.hamk = nil, nil, nil
	s.verified = false
}
