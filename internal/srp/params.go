// Package srp implements SRP-6a (Secure Remote Password) verifier creation,
// the server side of the two-round login exchange, and a matching client.
//
// Conventions (minimal big-endian encodings, no padding):
//
//	k  = H(N, g)
//	x  = H(s, H(I ":" P))
//	v  = g^x
//	B  = k*v + g^b
//	u  = H(A, B)
//	S  = (A * v^u)^b            (server)
//	S  = (B - k*g^x)^(a + u*x)  (client)
//	K  = H(S)
//	M  = H(H(N) xor H(g), H(I), s, A, B, K)
//	M2 = H(A, M, K)
//
// Both sides must use the same Params value; a mismatch in the hash or the
// group makes every proof fail.
package srp

import (
	"crypto"
	_ "crypto/sha1"
	_ "crypto/sha256"
	"fmt"
	"math/big"
)

// Params is an immutable SRP group plus hash function.
type Params struct {
	Name string
	N    *big.Int
	G    *big.Int
	Hash crypto.Hash

	k   *big.Int
	hNg []byte // H(N) xor H(g)
}

const rfc5054N2048 = "AC6BDB41324A9A9BF166DE5E1389582FAF72B6651987EE07FC3192943DB56050" +
	"A37329CBB4A099ED8193E0757767A13DD52312AB4B03310DCD7F48A9DA04FD50" +
	"E8083969EDB767B0CF6095179A163AB3661A05FBD5FAAAE82918A9962F0B93B8" +
	"55F97993EC975EEAA80D740ADBF4FF747359D041D5C33EA71D281E446B14773B" +
	"CA97B43A23FB801676BD207A436C6481F1D2B9078717461A5B9D32E688F87748" +
	"544523B524B0D57D5EA77A2775D2ECFA032CFBDBF52FB3786160279004E57AE6" +
	"AF874E7303CE53299CCC041C7BC308D82A5698F3A8D0C38271AE35F8E9DBFBB6" +
	"94B5C803D89F7AE435DE236D525F54759B65E372FCD68EF20FA7111F9E4AFF73"

var (
	// RFC5054Group2048SHA1 is the 2048-bit RFC 5054 group with SHA-1. It is
	// what deployed browser clients speak and the server default.
	RFC5054Group2048SHA1 = MustNewParams("rfc5054-2048-sha1", rfc5054N2048, 2, crypto.SHA1)

	// RFC5054Group2048SHA256 is the same group with SHA-256.
	RFC5054Group2048SHA256 = MustNewParams("rfc5054-2048-sha256", rfc5054N2048, 2, crypto.SHA256)

	// Default is the process-wide configuration consumed by verifier creation,
	// login verification and the second-factor MAC.
	Default = RFC5054Group2048SHA1
)

// NewParams builds a Params value from a hex modulus and generator.
func NewParams(name, nHex string, g int64, h crypto.Hash) (*Params, error) {
	n, ok := new(big.Int).SetString(nHex, 16)
	if !ok {
		return nil, fmt.Errorf("srp: invalid modulus for %s", name)
	}
	if !h.Available() {
		return nil, fmt.Errorf("srp: hash %v not available", h)
	}
	p := &Params{Name: name, N: n, G: big.NewInt(g), Hash: h}
	p.k = p.hashInt(n.Bytes(), p.G.Bytes())

	hn := p.hash(n.Bytes())
	hg := p.hash(p.G.Bytes())
	p.hNg = make([]byte, len(hn))
	for i := range hn {
		p.hNg[i] = hn[i] ^ hg[i]
	}
	return p, nil
}

// MustNewParams is NewParams for package-level values.
func MustNewParams(name, nHex string, g int64, h crypto.Hash) *Params {
	p, err := NewParams(name, nHex, g, h)
	if err != nil {
		panic(err)
	}
	return p
}

func (p *Params) hash(parts ...[]byte) []byte {
	h := p.Hash.New()
	for _, b := range parts {
		h.Write(b)
	}
	return h.Sum(nil)
}

func (p *Params) hashInt(parts ...[]byte) *big.Int {
	return new(big.Int).SetBytes(p.hash(parts...))
}

// isZeroModN reports whether v ≡ 0 (mod N).
func (p *Params) isZeroModN(v *big.Int) bool {
	return new(big.Int).Mod(v, p.N).Sign() == 0
}

func (p *Params) computeX(username, password string, salt []byte) *big.Int {
	inner := p.hash([]byte(username + ":" + password))
	return p.hashInt(salt, inner)
}

func (p *Params) computeU(A, B *big.Int) *big.Int {
	return p.hashInt(A.Bytes(), B.Bytes())
}

func (p *Params) computeM(username string, salt []byte, A, B *big.Int, K []byte) []byte {
	return p.hash(p.hNg, p.hash([]byte(username)), salt, A.Bytes(), B.Bytes(), K)
}

func (p *Params) computeHAMK(A *big.Int, M, K []byte) []byte {
	return p.hash(A.Bytes(), M, K)
}
