package jwtmw

import (
	"errors"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is the single outcome of every failed verification.
// The failing check is logged at debug level and never returned to callers.
var ErrInvalidToken = errors.New("invalid token")

// Verifier validates tokens produced by an Issuer with the same Config.
type Verifier struct {
	key    []byte
	parser *jwt.Parser
}

// NewVerifier validates cfg and returns a Verifier bound to it.
func NewVerifier(cfg Config, opts ...Option) (*Verifier, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	o := buildOptions(opts)
	return &Verifier{
		key: []byte(cfg.Key),
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithIssuer(cfg.Issuer),
			jwt.WithAudience(cfg.Audience),
			jwt.WithExpirationRequired(),
			jwt.WithIssuedAt(),
			jwt.WithLeeway(cfg.Leeway),
			jwt.WithTimeFunc(func() time.Time { return o.now().UTC() }),
		),
	}, nil
}

// Verify parses tokenStr and checks signature, issuer, audience and expiry.
func (v *Verifier) Verify(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := v.parser.ParseWithClaims(tokenStr, claims, v.keyFunc)
	if err != nil || !token.Valid {
		slog.Debug("token rejected", "reason", err)
		return nil, ErrInvalidToken
	}
	if claims.Subject == "" {
		slog.Debug("token rejected", "reason", "missing subject")
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (v *Verifier) keyFunc(t *jwt.Token) (interface{}, error) {
	// Only HMAC is accepted; WithValidMethods already pins HS256.
	if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, jwt.ErrSignatureInvalid
	}
	return v.key, nil
}
