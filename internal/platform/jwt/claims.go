package jwtmw

import "github.com/golang-jwt/jwt/v5"

// Claims is the payload of an issued token.
// The subject carries the username.
type Claims struct {
	jwt.RegisteredClaims
}

// Username returns the authenticated username.
func (c *Claims) Username() string {
	return c.Subject
}
