// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/argon2"

	"github.com/MKhiriev/go-bank-registry/internal/config"
)

const (
	argon2idName = "argon2id"

	saltLength = 16 // 128 bits
	keyLength  = 32 // 256 bits
)

// b64 is the unpadded standard alphabet mandated by the PHC string format.
var b64 = base64.RawStdEncoding

// argon2idHasher is the private implementation of [PasswordHasher].
type argon2idHasher struct {
	// Cost parameters applied to new hashes only. Verification always uses
	// the parameters embedded in the encoded hash.
	memory      uint32
	iterations  uint32
	parallelism uint8

	rand io.Reader
}

// NewPasswordHasher constructs an argon2id [PasswordHasher] that emits PHC
// strings of the form
//
//	$argon2id$v=19$m=<KiB>,t=<passes>,p=<lanes>$<salt>$<digest>
//
// with a 16-byte salt and a 32-byte digest.
func NewPasswordHasher(cfg config.Argon2) PasswordHasher {
	return &argon2idHasher{
		memory:      cfg.Memory,
		iterations:  cfg.Iterations,
		parallelism: cfg.Parallelism,
		rand:        rand.Reader,
	}
}

// Hash implements [PasswordHasher].
func (h *argon2idHasher) Hash(_ context.Context, plaintext string) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := io.ReadFull(h.rand, salt); err != nil {
		return "", fmt.Errorf("%w: %w", ErrGeneratingSalt, err)
	}

	p := phcParams{
		memory:      h.memory,
		iterations:  h.iterations,
		parallelism: h.parallelism,
	}
	key := argon2.IDKey([]byte(plaintext), salt, p.iterations, p.memory, p.parallelism, keyLength)

	return encodePHC(p, salt, key), nil
}

// Verify implements [PasswordHasher]. The digest is re-derived with the
// salt and parameters found in encoded and compared in constant time.
func (h *argon2idHasher) Verify(_ context.Context, plaintext, encoded string) (bool, error) {
	p, salt, key, err := decodePHC(encoded)
	if err != nil {
		return false, err
	}

	other := argon2.IDKey([]byte(plaintext), salt, p.iterations, p.memory, p.parallelism, uint32(len(key)))

	return subtle.ConstantTimeCompare(key, other) == 1, nil
}

type phcParams struct {
	memory      uint32
	iterations  uint32
	parallelism uint8
}

func encodePHC(p phcParams, salt, key []byte) string {
	return fmt.Sprintf("$%s$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2idName,
		argon2.Version,
		p.memory, p.iterations, p.parallelism,
		b64.EncodeToString(salt),
		b64.EncodeToString(key),
	)
}

func decodePHC(encoded string) (phcParams, []byte, []byte, error) {
	var p phcParams

	// "", algorithm, version, params, salt, digest
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" {
		return p, nil, nil, ErrMalformedHash
	}

	switch parts[1] {
	case argon2idName:
	case "":
		return p, nil, nil, ErrMalformedHash
	default:
		return p, nil, nil, fmt.Errorf("%w: algorithm %q", ErrIncompatibleHash, parts[1])
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return p, nil, nil, fmt.Errorf("%w: version: %w", ErrMalformedHash, err)
	}
	if version != argon2.Version {
		return p, nil, nil, fmt.Errorf("%w: version %d", ErrIncompatibleHash, version)
	}

	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.memory, &p.iterations, &p.parallelism); err != nil {
		return p, nil, nil, fmt.Errorf("%w: parameters: %w", ErrMalformedHash, err)
	}
	if p.iterations == 0 || p.parallelism == 0 || p.memory < 8*uint32(p.parallelism) {
		return p, nil, nil, fmt.Errorf("%w: parameters out of range", ErrMalformedHash)
	}

	salt, err := b64.DecodeString(parts[4])
	if err != nil || len(salt) == 0 {
		return p, nil, nil, fmt.Errorf("%w: salt", ErrMalformedHash)
	}

	key, err := b64.DecodeString(parts[5])
	if err != nil || len(key) == 0 {
		return p, nil, nil, fmt.Errorf("%w: digest", ErrMalformedHash)
	}

	return p, salt, key, nil
}
