package crypto

import "context"

//go:generate mockgen -source=interfaces.go -destination=../mock/password_hasher_mock.go -package=mock

// PasswordHasher turns plaintext passwords into self-describing encoded
// hashes and checks plaintexts against them.
//
// The encoded form carries the algorithm, its cost parameters, the salt and
// the digest, so a hash produced under older parameters keeps verifying
// after the configured parameters change.
type PasswordHasher interface {
	// Hash derives a new encoded hash of plaintext with a fresh random salt.
	// Two calls with the same plaintext never return the same string.
	Hash(ctx context.Context, plaintext string) (string, error)

	// Verify reports whether plaintext matches encoded. A mismatch is
	// (false, nil); an error means encoded could not be used at all
	// (see [ErrMalformedHash] and [ErrIncompatibleHash]).
	Verify(ctx context.Context, plaintext, encoded string) (bool, error)
}
