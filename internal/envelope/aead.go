package envelope

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"
	"io"

	"github.com/dmitrijs2005/zkauth/internal/common"
)

const (
	// NonceSize is the GCM nonce length prepended to every envelope.
	NonceSize = 12
	// KeySize is the AES-256 key length.
	KeySize = 32
	tagSize = 16
)

// AEAD seals and opens self-contained blobs (nonce || ciphertext || tag).
type AEAD interface {
	Seal(key, plaintext []byte) ([]byte, error)
	Open(key, blob []byte) ([]byte, error)
}

// AESGCM is the AES-256-GCM AEAD. A fresh random nonce is drawn on every Seal.
type AESGCM struct {
	rand io.Reader
}

func NewAESGCM() *AESGCM {
	return &AESGCM{rand: rand.Reader}
}

func (a *AESGCM) gcm(key []byte) (cipher.AEAD, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("aes-gcm: key must be %d bytes, got %d", KeySize, len(key))
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

func (a *AESGCM) Seal(key, plaintext []byte) ([]byte, error) {
	g, err := a.gcm(key)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, NonceSize, NonceSize+len(plaintext)+tagSize)
	if _, err := io.ReadFull(a.rand, nonce); err != nil {
		return nil, fmt.Errorf("aes-gcm nonce: %w", err)
	}

	return g.Seal(nonce, nonce, plaintext, nil), nil
}

func (a *AESGCM) Open(key, blob []byte) ([]byte, error) {
	if len(blob) < NonceSize+tagSize {
		return nil, fmt.Errorf("%w: envelope too short", common.ErrorValidation)
	}
	g, err := a.gcm(key)
	if err != nil {
		return nil, err
	}

	plaintext, err := g.Open(nil, blob[:NonceSize], blob[NonceSize:], nil)
	if err != nil {
		// wrong key and tampered blob are indistinguishable here
		return nil, fmt.Errorf("%w: envelope authentication failed", common.ErrorUnauthorized)
	}
	return plaintext, nil
}
