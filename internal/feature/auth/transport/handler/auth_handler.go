// Package handler はauthフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"bookshelf_backend/internal/api"
	"bookshelf_backend/internal/feature/auth/transport/http/dto"
	"bookshelf_backend/internal/feature/auth/usecase"
	"bookshelf_backend/internal/platform/validation"
)

// AuthUsecase は認証操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type AuthUsecase interface {
	// Register は指定されたユーザー名とパスワードで新規ユーザーを登録します。
	Register(ctx context.Context, username, password string) error
	// Login はユーザーを認証し、成功時にJWTトークンを返します。
	Login(ctx context.Context, username, password string) (string, error)
}

// Option configures an AuthHandler.
type Option func(*AuthHandler)

// WithUniformLoginErrors はログイン失敗時のメッセージを一つに統一します。
func WithUniformLoginErrors(enabled bool) Option {
	return func(h *AuthHandler) { h.uniformLoginErrors = enabled }
}

// AuthHandler は認証操作のHTTPリクエストを処理します。
type AuthHandler struct {
	auth               AuthUsecase
	uniformLoginErrors bool
}

// NewAuthHandler はAuthHandlerの新しいインスタンスを生成します。
func NewAuthHandler(auth AuthUsecase, opts ...Option) *AuthHandler {
	h := &AuthHandler{auth: auth}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Register はユーザー登録APIエンドポイントを処理します。
// - バリデーションエラー時は400を返却
// - ユーザー名重複時も400を返却
// - 成功時は200を返却
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("register validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: validation.Message(err)})
		return
	}

	err := h.auth.Register(c.Request.Context(), req.Username, req.Password)
	switch {
	case err == nil:
		slog.Info("user registered", "username", req.Username, "remote_addr", c.ClientIP())
		c.JSON(http.StatusOK, api.MessageResponse{Message: "User registered successfully"})
	case errors.Is(err, usecase.ErrUsernameTaken):
		slog.Warn("register conflict", "username", req.Username, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Username already exists"})
	case errors.Is(err, usecase.ErrInvalidUsername):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "username must be 1-100 printable characters"})
	case errors.Is(err, usecase.ErrInvalidPasswordInput):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "password must be between 1 and 72 bytes"})
	default:
		slog.Error("register failed", "error", err, "username", req.Username)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal server error"})
	}
}

// Login はユーザーログインAPIエンドポイントを処理します。
// - 認証失敗時は400を返却
// - 認証成功時はJWTトークン付きで200を返却
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("login validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: validation.Message(err)})
		return
	}

	token, err := h.auth.Login(c.Request.Context(), req.Username, req.Password)
	switch {
	case err == nil:
		slog.Info("user login successful", "username", req.Username, "remote_addr", c.ClientIP())
		c.JSON(http.StatusOK, api.TokenResponse{Token: token})
	case errors.Is(err, usecase.ErrUserNotFound), errors.Is(err, usecase.ErrInvalidPassword):
		slog.Warn("login failed", "error", err, "username", req.Username, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: h.loginFailureMessage(err)})
	default:
		slog.Error("login failed", "error", err, "username", req.Username)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal server error"})
	}
}

func (h *AuthHandler) loginFailureMessage(err error) string {
	switch {
	case h.uniformLoginErrors:
		return "Invalid username or password"
	case errors.Is(err, usecase.ErrUserNotFound):
		return "User not found"
	default:
		return "Invalid password"
	}
}
