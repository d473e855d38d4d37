// Package handler はプラットフォームレベルのエンドポイント用HTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"

	"goal_backend/internal/platform/logutil"
)

const checkTimeout = 2 * time.Second

// Check はストアなど依存先への疎通確認です。
type Check func(ctx context.Context) error

// HealthHandler は /healthz を処理します。
type HealthHandler struct {
	checks map[string]Check
}

func NewHealthHandler(checks map[string]Check) *HealthHandler {
	return &HealthHandler{checks: checks}
}

// Health はサービスヘルスチェック用の /healthz エンドポイントを処理します。
// 依存先のいずれかが応答しない場合は503を返します。
func (h *HealthHandler) Health(c *gin.Context) {
	// 明示的にキャッシュを防止
	c.Header("Cache-Control", "no-store")

	if c.Request.Method == http.MethodOptions {
		c.Status(http.StatusNoContent)
		return
	}

	failed := h.run(c.Request.Context())
	status := http.StatusOK
	if len(failed) > 0 {
		status = http.StatusServiceUnavailable
	}

	if c.Request.Method == http.MethodHead {
		c.Status(status)
		return
	}
	if len(failed) > 0 {
		c.JSON(status, gin.H{"status": "unavailable", "failed": failed})
		return
	}
	c.JSON(status, gin.H{"status": "ok"})
}

func (h *HealthHandler) run(ctx context.Context) []string {
	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	logger := logutil.GetOrDefault(ctx)
	var failed []string
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			logger.Error().Err(err).Str("check", name).Msg("health check failed")
			failed = append(failed, name)
		}
	}
	sort.Strings(failed)
	return failed
}
