package common

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"
)

// MakeRandHexString returns size random bytes encoded as hex.
func MakeRandHexString(size int) (string, error) {
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// MakeSessionID returns an unguessable URL-safe identifier built from size
// random bytes.
func MakeSessionID(size int) (string, error) {
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// GenerateRandByteArray returns size bytes from crypto/rand. It panics if the
// system random source fails, which is not recoverable anyway.
func GenerateRandByteArray(size int) []byte {
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		panic(fmt.Sprintf("crypto/rand failed: %v", err))
	}
	return b
}

// WipeByteArray overwrites b with zeros. Nil is a no-op.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// DecodeBase64Field strictly decodes a standard base64 field. Empty input and
// decoded values shorter than minLen are rejected with ErrorValidation.
func DecodeBase64Field(value, field string, minLen int) ([]byte, error) {
	if strings.TrimSpace(value) == "" {
		return nil, fmt.Errorf("%w: missing %s", ErrorValidation, field)
	}
	b, err := base64.StdEncoding.Strict().DecodeString(value)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid base64 for %s", ErrorValidation, field)
	}
	if len(b) < minLen {
		return nil, fmt.Errorf("%w: %s is too short", ErrorValidation, field)
	}
	return b, nil
}

// EncodeBase64 is the standard base64 encoding used for every binary field
// crossing the API boundary.
func EncodeBase64(b []byte) string {
	return base64.StdEncoding.EncodeToString(b)
}
