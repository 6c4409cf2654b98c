// Package jwtmw issues and verifies HMAC-signed bearer tokens and provides the
// Gin middleware that guards protected routes.
package jwtmw

import (
	"errors"
	"fmt"
	"time"
)

const (
	// TokenTTL is the fixed lifetime of an issued token.
	TokenTTL = 2 * time.Hour

	// MinKeyBytes is the minimum HS256 key length (256 bits).
	MinKeyBytes = 32
)

// Config holds the signing key and the issuer/audience pair embedded in and
// checked against every token. The same Config must be given to the Issuer and
// the Verifier.
type Config struct {
	Key      string        `env:"JWT_KEY,required,notEmpty,unset"`
	Issuer   string        `env:"JWT_ISSUER" envDefault:"bookshelf-backend"`
	Audience string        `env:"JWT_AUDIENCE" envDefault:"bookshelf-clients"`
	Leeway   time.Duration `env:"JWT_CLOCK_SKEW" envDefault:"0s"`
}

// Validate checks that the configuration can produce verifiable tokens.
func (c Config) Validate() error {
	if c.Key == "" {
		return errors.New("jwt: key is required")
	}
	if len(c.Key) < MinKeyBytes {
		return fmt.Errorf("jwt: key must be at least %d bytes", MinKeyBytes)
	}
	if c.Issuer == "" {
		return errors.New("jwt: issuer is required")
	}
	if c.Audience == "" {
		return errors.New("jwt: audience is required")
	}
	if c.Leeway < 0 {
		return errors.New("jwt: clock skew must not be negative")
	}
	return nil
}

// Option customizes an Issuer or Verifier.
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock replaces time.Now. Tests use it to simulate clock advance.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
