// Package handler はプラットフォームレベルのエンドポイント用HTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
)

// Health はサービスヘルスチェック用の /healthz エンドポイントを処理します。
// 依存先には触れず、プロセスが応答できることだけを示します。
func Health(c *gin.Context) {
	// 明示的にキャッシュを防止
	c.Header("Cache-Control", "no-store")

	switch c.Request.Method {
	case http.MethodHead:
		c.Status(http.StatusOK)
	case http.MethodOptions:
		c.Status(http.StatusNoContent)
	default:
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

// Pinger is implemented by every dependency the readiness probe checks.
type Pinger interface {
	Ping(ctx context.Context) error
}

// ReadyResponse is the body of /readyz.
type ReadyResponse struct {
	Status string   `json:"status"`
	Failed []string `json:"failed,omitempty"`
}

// Ready returns the /readyz handler. Each named check is pinged with timeout;
// any failure yields 503 listing the failing components.
func Ready(checks map[string]Pinger, timeout time.Duration) gin.HandlerFunc {
	names := make([]string, 0, len(checks))
	for name := range checks {
		names = append(names, name)
	}
	sort.Strings(names)

	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-store")

		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()

		var failed []string
		for _, name := range names {
			if err := checks[name].Ping(ctx); err != nil {
				slog.Warn("readiness check failed", "component", name, "error", err)
				failed = append(failed, name)
			}
		}

		if len(failed) > 0 {
			c.JSON(http.StatusServiceUnavailable, ReadyResponse{Status: "unavailable", Failed: failed})
			return
		}
		c.JSON(http.StatusOK, ReadyResponse{Status: "ok"})
	}
}
