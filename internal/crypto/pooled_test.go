package crypto

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-bank-registry/internal/logger"
	"github.com/MKhiriev/go-bank-registry/internal/workers"
)

// countingSubmitter runs tasks inline and counts them.
type countingSubmitter struct {
	calls int
	err   error
}

func (c *countingSubmitter) Submit(_ context.Context, fn func()) error {
	c.calls++
	if c.err != nil {
		return c.err
	}
	fn()
	return nil
}

func TestPooledHasher_RoutesThroughPool(t *testing.T) {
	sub := &countingSubmitter{}
	h := NewPooledHasher(NewPasswordHasher(testParams), sub)
	ctx := context.Background()

	encoded, err := h.Hash(ctx, "secret1")
	require.NoError(t, err)

	ok, err := h.Verify(ctx, "secret1", encoded)
	require.NoError(t, err)
	assert.True(t, ok)

	assert.Equal(t, 2, sub.calls)
}

func TestPooledHasher_SubmitError(t *testing.T) {
	sub := &countingSubmitter{err: context.Canceled}
	h := NewPooledHasher(NewPasswordHasher(testParams), sub)

	_, err := h.Hash(context.Background(), "secret1")
	require.ErrorIs(t, err, context.Canceled)

	ok, err := h.Verify(context.Background(), "secret1", "$argon2id$...")
	require.ErrorIs(t, err, context.Canceled)
	assert.False(t, ok)
}

func TestPooledHasher_PropagatesHasherError(t *testing.T) {
	h := NewPooledHasher(NewPasswordHasher(testParams), &countingSubmitter{})

	_, err := h.Verify(context.Background(), "secret1", "garbage")

	assert.True(t, errors.Is(err, ErrMalformedHash))
}

// TestPooledHasher_WithWorkerPool exercises the decorator on a real pool.
func TestPooledHasher_WithWorkerPool(t *testing.T) {
	pool := workers.NewPool("hash", 2, logger.Nop())
	pool.Run()
	defer pool.Stop()

	h := NewPooledHasher(NewPasswordHasher(testParams), pool)
	ctx := context.Background()

	encoded, err := h.Hash(ctx, "secret1")
	require.NoError(t, err)

	ok, err := h.Verify(ctx, "wrong", encoded)
	require.NoError(t, err)
	assert.False(t, ok)
}

var _ PasswordHasher = (*PooledHasher)(nil)
