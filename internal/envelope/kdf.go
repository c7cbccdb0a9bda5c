package envelope

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/argon2"
	"golang.org/x/sync/semaphore"
)

// KDF derives a fixed-size key from a password and salt. Implementations must
// be deterministic.
type KDF interface {
	Derive(ctx context.Context, password, salt []byte) ([]byte, error)
}

// Argon2Params are the Argon2id cost parameters.
type Argon2Params struct {
	Time    uint32
	Memory  uint32 // KiB
	Threads uint8
	KeyLen  uint32
}

// DefaultArgon2Params must stay identical between registration, login and
// password change, otherwise existing envelopes can no longer be opened.
var DefaultArgon2Params = Argon2Params{
	Time:    3,
	Memory:  64 * 1024,
	Threads: 4,
	KeyLen:  32,
}

// Argon2KDF is the memory-hard KDF used for wrapping keys.
type Argon2KDF struct {
	params Argon2Params
}

func NewArgon2KDF(p Argon2Params) *Argon2KDF {
	return &Argon2KDF{params: p}
}

func (k *Argon2KDF) Derive(_ context.Context, password, salt []byte) ([]byte, error) {
	if len(salt) == 0 {
		return nil, errors.New("argon2: empty salt")
	}
	p := k.params
	return argon2.IDKey(password, salt, p.Time, p.Memory, p.Threads, p.KeyLen), nil
}

// BoundedKDF runs the wrapped KDF on at most n concurrent callers. Argon2 with
// the default parameters allocates 64 MiB per call, so unbounded fan-out from
// concurrent requests would exhaust memory and starve unrelated handlers.
type BoundedKDF struct {
	inner KDF
	sem   *semaphore.Weighted
}

func NewBoundedKDF(inner KDF, n int64) *BoundedKDF {
	if n < 1 {
		n = 1
	}
	return &BoundedKDF{inner: inner, sem: semaphore.NewWeighted(n)}
}

// Derive waits for a free slot, then runs the derivation to completion. Only
// the wait honours ctx; a started derivation is never interrupted.
func (b *BoundedKDF) Derive(ctx context.Context, password, salt []byte) ([]byte, error) {
	if err := b.sem.Acquire(ctx, 1); err != nil {
		return nil, fmt.Errorf("kdf slot: %w", err)
	}
	defer b.sem.Release(1)
	return b.inner.Derive(context.WithoutCancel(ctx), password, salt)
}
