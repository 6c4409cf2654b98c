package password

import "fmt"

// Algorithm names a supported password hashing algorithm.
type Algorithm string

const (
	AlgorithmBcrypt   Algorithm = "bcrypt"
	AlgorithmArgon2id Algorithm = "argon2id"
)

// Config selects the algorithm used for new hashes and its cost parameters.
// Raising a cost only affects hashes produced afterwards; existing hashes keep
// verifying because their parameters are embedded in the encoded string.
type Config struct {
	Algorithm     Algorithm `env:"PASSWORD_ALGORITHM" envDefault:"bcrypt"`
	BcryptCost    int       `env:"PASSWORD_BCRYPT_COST" envDefault:"12"`
	Argon2Time    uint32    `env:"PASSWORD_ARGON2_TIME" envDefault:"1"`
	Argon2Memory  uint32    `env:"PASSWORD_ARGON2_MEMORY_KIB" envDefault:"65536"`
	Argon2Threads uint8     `env:"PASSWORD_ARGON2_THREADS" envDefault:"4"`
}

// Validate checks the configuration.
func (c Config) Validate() error {
	switch c.Algorithm {
	case AlgorithmBcrypt:
		if c.BcryptCost < 4 || c.BcryptCost > 31 {
			return fmt.Errorf("bcrypt cost must be between 4 and 31 (got %d)", c.BcryptCost)
		}
	case AlgorithmArgon2id:
		if c.Argon2Time == 0 || c.Argon2Memory == 0 || c.Argon2Threads == 0 {
			return fmt.Errorf("argon2id time, memory and threads must be positive")
		}
	default:
		return fmt.Errorf("unsupported password algorithm %q (use bcrypt or argon2id)", c.Algorithm)
	}
	return nil
}

// New builds a Hasher that produces hashes with the configured algorithm and
// verifies hashes produced by either supported algorithm.
func New(cfg Config) (*Hasher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	bc := NewBcrypt(cfg.BcryptCost)
	a2 := NewArgon2(cfg.Argon2Time, cfg.Argon2Memory, cfg.Argon2Threads)

	h := &Hasher{bcrypt: bc, argon2: a2, primary: bc}
	if cfg.Algorithm == AlgorithmArgon2id {
		h.primary = a2
	}
	return h, nil
}
