// Package password provides salted, self-describing password hashing.
//
// Two algorithms are supported:
//   - bcrypt:   $2a$<cost>$<salt+hash>
//   - argon2id: $argon2id$v=19$m=<KiB>,t=<iterations>,p=<threads>$<salt>$<hash>
//
// Every hash embeds its own salt and parameters, so verification needs nothing
// but the encoded string.
package password

import (
	"errors"
	"strings"
)

var (
	// ErrPasswordTooLong is returned by Hash when the input exceeds the algorithm's limit.
	ErrPasswordTooLong = errors.New("password: too long")

	// ErrMalformedHash is returned by Verify when the stored hash cannot be parsed.
	// A wrong password is never reported through this error.
	ErrMalformedHash = errors.New("password: malformed hash")
)

// Algo is implemented by each concrete hashing algorithm.
type Algo interface {
	// Hash returns an encoded hash with a fresh random salt.
	Hash(password string) (string, error)

	// Verify reports whether password matches encoded.
	// It returns (false, nil) on mismatch and ErrMalformedHash for unparsable input.
	Verify(password, encoded string) (bool, error)

	// MaxPasswordBytes is the longest accepted input, or 0 when unbounded.
	MaxPasswordBytes() int
}

// Hasher hashes with a primary algorithm and verifies any supported format.
type Hasher struct {
	bcrypt  *Bcrypt
	argon2  *Argon2
	primary Algo
}

// Hash hashes password with the configured algorithm.
func (h *Hasher) Hash(password string) (string, error) {
	return h.primary.Hash(password)
}

// Verify dispatches on the encoded hash prefix.
func (h *Hasher) Verify(password, encoded string) (bool, error) {
	switch {
	case strings.HasPrefix(encoded, argon2Prefix):
		return h.argon2.Verify(password, encoded)
	case strings.HasPrefix(encoded, "$2"):
		return h.bcrypt.Verify(password, encoded)
	default:
		return false, ErrMalformedHash
	}
}

// MaxPasswordBytes reports the input limit of the primary algorithm.
func (h *Hasher) MaxPasswordBytes() int {
	return h.primary.MaxPasswordBytes()
}
