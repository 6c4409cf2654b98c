package jwtmw

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const testKey = "test-secret-key-0123456789abcdef-0123"

var baseTime = time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC)

func testConfig() Config {
	return Config{
		Key:      testKey,
		Issuer:   "bookshelf-test",
		Audience: "bookshelf-test-clients",
	}
}

// fixedClock returns a clock frozen at t.
func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func newTestIssuer(t *testing.T, cfg Config, at time.Time) *Issuer {
	t.Helper()
	iss, err := NewIssuer(cfg, WithClock(fixedClock(at)))
	require.NoError(t, err)
	return iss
}

func newTestVerifier(t *testing.T, cfg Config, at time.Time) *Verifier {
	t.Helper()
	v, err := NewVerifier(cfg, WithClock(fixedClock(at)))
	require.NoError(t, err)
	return v
}

// signClaims signs arbitrary claims, bypassing the Issuer.
func signClaims(t *testing.T, method jwt.SigningMethod, key interface{}, claims jwt.Claims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return signed
}

// validRegisteredClaims mirrors what the Issuer produces for testConfig at baseTime.
func validRegisteredClaims(subject string) jwt.RegisteredClaims {
	return jwt.RegisteredClaims{
		Subject:   subject,
		Issuer:    "bookshelf-test",
		Audience:  jwt.ClaimStrings{"bookshelf-test-clients"},
		IssuedAt:  jwt.NewNumericDate(baseTime),
		ExpiresAt: jwt.NewNumericDate(baseTime.Add(TokenTTL)),
	}
}
