package envelope

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"

	"github.com/dmitrijs2005/zkauth/internal/common"
)

// MasterKeySize is the length of the per-account data-encryption key.
const MasterKeySize = 32

// Manager generates master keys, derives wrapping keys and wraps/unwraps
// envelopes. It is safe for concurrent use.
type Manager struct {
	kdf  KDF
	aead AEAD
	rand io.Reader
}

func NewManager(kdf KDF, aead AEAD) *Manager {
	return &Manager{kdf: kdf, aead: aead, rand: rand.Reader}
}

// NewDefaultManager wires Argon2id with the default cost behind a KDF pool of
// the given size, and AES-256-GCM.
func NewDefaultManager(kdfConcurrency int64) *Manager {
	kdf := NewBoundedKDF(NewArgon2KDF(DefaultArgon2Params), kdfConcurrency)
	return NewManager(kdf, NewAESGCM())
}

// GenerateMasterKey returns MasterKeySize bytes from a CSPRNG.
func (m *Manager) GenerateMasterKey() ([]byte, error) {
	key := make([]byte, MasterKeySize)
	if _, err := io.ReadFull(m.rand, key); err != nil {
		return nil, fmt.Errorf("generate master key: %w", err)
	}
	return key, nil
}

// KDFSalt maps an account's SRP salt to the salt fed into the KDF, so the two
// salt roles never share raw bytes.
func KDFSalt(srpSalt []byte) []byte {
	sum := sha256.Sum256(srpSalt)
	return sum[:]
}

// DeriveWrappingKey derives the KEK for password and the account's SRP salt.
func (m *Manager) DeriveWrappingKey(ctx context.Context, password string, srpSalt []byte) ([]byte, error) {
	if len(srpSalt) == 0 {
		return nil, fmt.Errorf("%w: empty salt", common.ErrorValidation)
	}
	key, err := m.kdf.Derive(ctx, []byte(password), KDFSalt(srpSalt))
	if err != nil {
		return nil, fmt.Errorf("derive wrapping key: %w", err)
	}
	return key, nil
}

// Wrap seals masterKey under wrappingKey and returns the base64 envelope.
func (m *Manager) Wrap(wrappingKey, masterKey []byte) (string, error) {
	return m.seal(wrappingKey, masterKey)
}

// Unwrap opens an envelope produced by Wrap. A wrong wrapping key, hence a
// wrong password, surfaces as common.ErrorUnauthorized.
func (m *Manager) Unwrap(wrappingKey []byte, envelope string) ([]byte, error) {
	return m.open(wrappingKey, envelope)
}

// WrapArbitrary protects any secondary secret under an unwrapped master key.
func (m *Manager) WrapArbitrary(masterKey, plaintext []byte) (string, error) {
	return m.seal(masterKey, plaintext)
}

// UnwrapArbitrary reverses WrapArbitrary.
func (m *Manager) UnwrapArbitrary(masterKey []byte, envelope string) ([]byte, error) {
	return m.open(masterKey, envelope)
}

func (m *Manager) seal(key, plaintext []byte) (string, error) {
	blob, err := m.aead.Seal(key, plaintext)
	if err != nil {
		return "", fmt.Errorf("wrap: %w", err)
	}
	return base64.StdEncoding.EncodeToString(blob), nil
}

func (m *Manager) open(key []byte, envelope string) ([]byte, error) {
	blob, err := base64.StdEncoding.Strict().DecodeString(envelope)
	if err != nil {
		return nil, fmt.Errorf("%w: envelope is not valid base64", common.ErrorValidation)
	}
	return m.aead.Open(key, blob)
}
