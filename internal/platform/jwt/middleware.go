package jwtmw

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"bookshelf_backend/internal/api"
)

// ContextClaims is the gin.Context key under which verified claims are stored.
const ContextClaims = "authClaims"

// TokenVerifier is the verification dependency of AuthRequired.
type TokenVerifier interface {
	Verify(tokenStr string) (*Claims, error)
}

type claimsKey struct{}

// AuthRequired returns a Gin middleware that admits only requests carrying a
// valid bearer token. Rejected requests never reach the next handler.
func AuthRequired(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Authorization ヘッダーから Bearer トークンを取得
		tokenStr, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			c.Header("WWW-Authenticate", "Bearer")
			c.AbortWithStatusJSON(http.StatusUnauthorized, api.ErrorResponse{Error: "missing bearer token"})
			return
		}

		// 2. 署名・issuer・audience・有効期限を検証
		claims, err := verifier.Verify(tokenStr)
		if err != nil {
			c.Header("WWW-Authenticate", `Bearer error="invalid_token"`)
			c.AbortWithStatusJSON(http.StatusUnauthorized, api.ErrorResponse{Error: "invalid token"})
			return
		}

		// 3. 検証済みクレームをコンテキストに格納
		c.Set(ContextClaims, claims)
		c.Request = c.Request.WithContext(WithClaims(c.Request.Context(), claims))
		c.Next()
	}
}

// bearerToken extracts the credentials of a "Bearer" Authorization header.
// The scheme is matched case-insensitively.
func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// WithClaims returns a copy of ctx carrying claims.
func WithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}

// ClaimsFromContext returns the claims stored by AuthRequired, if any.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(*Claims)
	return claims, ok && claims != nil
}

// ClaimsFrom returns the claims stored on a gin.Context by AuthRequired.
func ClaimsFrom(c *gin.Context) (*Claims, bool) {
	v, exists := c.Get(ContextClaims)
	if !exists {
		return nil, false
	}
	claims, ok := v.(*Claims)
	return claims, ok
}
