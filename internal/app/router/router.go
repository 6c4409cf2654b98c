// Package router はgin.Engineを構築し、全ルートとミドルウェアを登録します。
package router

import (
	"log/slog"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"bookshelf_backend/internal/app/config"
	"bookshelf_backend/internal/app/di"
	jwtmw "bookshelf_backend/internal/platform/jwt"
	"bookshelf_backend/internal/platform/http/handler"
	"bookshelf_backend/internal/platform/http/middleware"
)

// NewRouter はミドルウェアとルートを設定したgin.Engineを返します。
// readiness は /readyz で疎通確認する依存先です。
func NewRouter(cfg config.HTTP, h *di.Handlers, readiness map[string]handler.Pinger, logger *slog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.RequestLogger(logger),
		cors.New(corsConfig(cfg.CORSOrigins)),
	)

	// 認証不要
	// 導通確認用
	r.GET("/healthz", handler.Health)
	r.HEAD("/healthz", handler.Health)
	r.OPTIONS("/healthz", handler.Health)
	r.GET("/readyz", handler.Ready(readiness, cfg.ReadyTimeout))

	authGroup := r.Group("/auth")
	{
		// 新規ユーザー登録
		authGroup.POST("/register", h.Auth.Register)
		// ログイン（JWT 発行）
		authGroup.POST("/login", h.Auth.Login)
	}

	// 認証必須のルート
	// → リクエストヘッダーに Bearer JWT が必要になる
	books := r.Group("/api/books")
	books.Use(jwtmw.AuthRequired(h.Verifier))
	{
		books.GET("", h.Books.List)
		books.GET("/:id", h.Books.Get)
		books.POST("", h.Books.Create)
		books.PUT("/:id", h.Books.Update)
		books.DELETE("/:id", h.Books.Delete)
	}

	return r
}

func corsConfig(origins []string) cors.Config {
	c := cors.DefaultConfig()
	if len(origins) == 0 {
		c.AllowOriginFunc = func(string) bool { return false }
	} else {
		c.AllowOrigins = origins
	}
	c.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", middleware.HeaderRequestID}
	c.ExposeHeaders = []string{"Location", middleware.HeaderRequestID}
	c.MaxAge = 12 * time.Hour
	return c
}
