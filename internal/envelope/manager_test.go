package envelope

import (
	"context"
	"encoding/base64"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dmitrijs2005/zkauth/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testArgon2Params = Argon2Params{Time: 1, Memory: 1024, Threads: 1, KeyLen: 32}

func newTestManager() *Manager {
	return NewManager(NewArgon2KDF(testArgon2Params), NewAESGCM())
}

func TestDefaultArgon2Params(t *testing.T) {
	assert.GreaterOrEqual(t, DefaultArgon2Params.Time, uint32(3))
	assert.GreaterOrEqual(t, DefaultArgon2Params.Memory, uint32(64*1024))
	assert.Equal(t, uint8(4), DefaultArgon2Params.Threads)
	assert.Equal(t, uint32(32), DefaultArgon2Params.KeyLen)
}

func TestDeriveWrappingKey_Deterministic(t *testing.T) {
	m := newTestManager()
	ctx := context.Background()
	salt := []byte("0123456789abcdef")

	k1, err := m.DeriveWrappingKey(ctx, "Secr3t!23", salt)
	require.NoError(t, err)
	k2, err := m.DeriveWrappingKey(ctx, "Secr3t!23", salt)
	require.NoError(t, err)
	k3, err := m.DeriveWrappingKey(ctx, "Secr3t!24", salt)
	require.NoError(t, err)
	k4, err := m.DeriveWrappingKey(ctx, "Secr3t!23", []byte("fedcba9876543210"))
	require.NoError(t, err)

	assert.Len(t, k1, 32)
	assert.Equal(t, k1, k2)
	assert.NotEqual(t, k1, k3)
	assert.NotEqual(t, k1, k4)
}

func TestDeriveWrappingKey_EmptySalt(t *testing.T) {
	_, err := newTestManager().DeriveWrappingKey(context.Background(), "pw", nil)
	assert.True(t, errors.Is(err, common.ErrorValidation))
}

func TestKDFSalt_DiffersFromSRPSalt(t *testing.T) {
	srpSalt := []byte("0123456789abcdef")
	s := KDFSalt(srpSalt)
	assert.Len(t, s, 32)
	assert.NotContains(t, string(s), string(srpSalt))
	assert.Equal(t, s, KDFSalt(srpSalt))
}

func TestWrapUnwrap_RoundTrip(t *testing.T) {
	m := newTestManager()
	ctx := context.Background()

	for _, pw := range []string{"a", "Secr3t!23", "пароль", "long password with spaces and symbols !@#$%^&*()"} {
		salt := common.GenerateRandByteArray(16)
		kek, err := m.DeriveWrappingKey(ctx, pw, salt)
		require.NoError(t, err)

		dek, err := m.GenerateMasterKey()
		require.NoError(t, err)
		require.Len(t, dek, MasterKeySize)

		env, err := m.Wrap(kek, dek)
		require.NoError(t, err)

		raw, err := base64.StdEncoding.DecodeString(env)
		require.NoError(t, err)
		assert.Len(t, raw, NonceSize+MasterKeySize+16)

		kek2, err := m.DeriveWrappingKey(ctx, pw, salt)
		require.NoError(t, err)
		got, err := m.Unwrap(kek2, env)
		require.NoError(t, err)
		assert.Equal(t, dek, got)
	}
}

func TestWrap_FreshNoncePerCall(t *testing.T) {
	m := newTestManager()
	kek := common.GenerateRandByteArray(32)
	dek := common.GenerateRandByteArray(32)

	seen := map[string]struct{}{}
	for i := 0; i < 50; i++ {
		env, err := m.Wrap(kek, dek)
		require.NoError(t, err)
		raw, _ := base64.StdEncoding.DecodeString(env)
		nonce := string(raw[:NonceSize])
		_, dup := seen[nonce]
		require.False(t, dup, "nonce reused")
		seen[nonce] = struct{}{}
	}
}

func TestUnwrap_TamperDetection(t *testing.T) {
	m := newTestManager()
	kek := common.GenerateRandByteArray(32)
	dek := common.GenerateRandByteArray(32)

	env, err := m.Wrap(kek, dek)
	require.NoError(t, err)
	raw, err := base64.StdEncoding.DecodeString(env)
	require.NoError(t, err)

	for i := 0; i < len(raw)*8; i++ {
		tampered := append([]byte(nil), raw...)
		tampered[i/8] ^= 1 << (i % 8)

		_, err := m.Unwrap(kek, base64.StdEncoding.EncodeToString(tampered))
		require.Error(t, err, "bit %d", i)
		require.True(t, errors.Is(err, common.ErrorUnauthorized), "bit %d: %v", i, err)
	}
}

func TestUnwrap_WrongPassword(t *testing.T) {
	m := newTestManager()
	ctx := context.Background()
	salt := common.GenerateRandByteArray(16)

	good, err := m.DeriveWrappingKey(ctx, "Secr3t!23", salt)
	require.NoError(t, err)
	bad, err := m.DeriveWrappingKey(ctx, "Secr3t!32", salt)
	require.NoError(t, err)

	env, err := m.Wrap(good, common.GenerateRandByteArray(32))
	require.NoError(t, err)

	_, err = m.Unwrap(bad, env)
	assert.True(t, errors.Is(err, common.ErrorUnauthorized))
}

func TestUnwrap_Malformed(t *testing.T) {
	m := newTestManager()
	kek := common.GenerateRandByteArray(32)

	_, err := m.Unwrap(kek, "not base64 !!")
	assert.True(t, errors.Is(err, common.ErrorValidation))

	_, err = m.Unwrap(kek, base64.StdEncoding.EncodeToString(make([]byte, NonceSize+15)))
	assert.True(t, errors.Is(err, common.ErrorValidation))
}

func TestWrapArbitrary_RoundTrip(t *testing.T) {
	m := newTestManager()
	dek := common.GenerateRandByteArray(32)
	template := []byte(`{"embedding":[0.12,0.98,-0.33]}`)

	env, err := m.WrapArbitrary(dek, template)
	require.NoError(t, err)

	got, err := m.UnwrapArbitrary(dek, env)
	require.NoError(t, err)
	assert.Equal(t, template, got)

	_, err = m.UnwrapArbitrary(common.GenerateRandByteArray(32), env)
	assert.True(t, errors.Is(err, common.ErrorUnauthorized))
}

func TestAESGCM_RejectsBadKeySize(t *testing.T) {
	_, err := NewAESGCM().Seal([]byte("short"), []byte("x"))
	assert.Error(t, err)
}

type slowKDF struct {
	inFlight atomic.Int32
	peak     atomic.Int32
}

func (s *slowKDF) Derive(ctx context.Context, password, salt []byte) ([]byte, error) {
	n := s.inFlight.Add(1)
	for {
		p := s.peak.Load()
		if n <= p || s.peak.CompareAndSwap(p, n) {
			break
		}
	}
	time.Sleep(5 * time.Millisecond)
	s.inFlight.Add(-1)
	return make([]byte, 32), nil
}

func TestBoundedKDF_LimitsConcurrency(t *testing.T) {
	inner := &slowKDF{}
	kdf := NewBoundedKDF(inner, 2)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := kdf.Derive(context.Background(), []byte("pw"), []byte("salt"))
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.LessOrEqual(t, inner.peak.Load(), int32(2))
}

func TestBoundedKDF_CancelledWhileWaiting(t *testing.T) {
	kdf := NewBoundedKDF(&slowKDF{}, 1)
	require.NoError(t, kdf.sem.Acquire(context.Background(), 1))
	defer kdf.sem.Release(1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := kdf.Derive(ctx, []byte("pw"), []byte("salt"))
	assert.ErrorIs(t, err, context.Canceled)
}
