package crypto

import "errors"

var (
	// ErrMalformedHash means the encoded hash does not follow the PHC
	// string layout or carries undecodable fields.
	ErrMalformedHash = errors.New("malformed password hash")
	// ErrIncompatibleHash means the encoded hash is well formed but was
	// produced by another algorithm or argon2 version.
	ErrIncompatibleHash = errors.New("incompatible password hash")
	// ErrGeneratingSalt wraps a failure of the system random source.
	ErrGeneratingSalt = errors.New("error generating salt")
)
