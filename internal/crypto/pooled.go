package crypto

import (
	"context"
	"fmt"
)

// Submitter runs a function on a bounded set of goroutines and returns once
// it has completed. [workers.Pool] is the production implementation.
type Submitter interface {
	Submit(ctx context.Context, fn func()) error
}

// PooledHasher routes every call of the wrapped [PasswordHasher] through a
// [Submitter], so that the number of argon2 derivations in flight, and the
// memory they hold, stays bounded.
type PooledHasher struct {
	hasher PasswordHasher
	pool   Submitter
}

// NewPooledHasher decorates hasher with pool.
func NewPooledHasher(hasher PasswordHasher, pool Submitter) *PooledHasher {
	return &PooledHasher{hasher: hasher, pool: pool}
}

// Hash implements [PasswordHasher].
func (p *PooledHasher) Hash(ctx context.Context, plaintext string) (string, error) {
	var (
		encoded string
		err     error
	)

	if submitErr := p.pool.Submit(ctx, func() {
		encoded, err = p.hasher.Hash(ctx, plaintext)
	}); submitErr != nil {
		return "", fmt.Errorf("error scheduling password hashing: %w", submitErr)
	}

	return encoded, err
}

// Verify implements [PasswordHasher].
func (p *PooledHasher) Verify(ctx context.Context, plaintext, encoded string) (bool, error) {
	var (
		ok  bool
		err error
	)

	if submitErr := p.pool.Submit(ctx, func() {
		ok, err = p.hasher.Verify(ctx, plaintext, encoded)
	}); submitErr != nil {
		return false, fmt.Errorf("error scheduling password verification: %w", submitErr)
	}

	return ok, err
}
