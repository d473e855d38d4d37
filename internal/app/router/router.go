package router

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"goal_backend/internal/app/di"
	"goal_backend/internal/config"
	"goal_backend/internal/platform/apperr"
	jwtmw "goal_backend/internal/platform/jwt"
	"goal_backend/internal/platform/logutil"
)

const (
	devRootMessage  = "please set to production"
	internalMessage = "Internal Server Error"
)

func NewRouter(cfg *config.Config, h *di.Handlers, logger zerolog.Logger) *gin.Engine {
	r := gin.New()
	// ClientIP honours X-Forwarded-For only from these peers.
	if err := r.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		logger.Error().Err(err).Strs("trusted_proxies", cfg.HTTP.TrustedProxies).Msg("invalid trusted proxies, trusting none")
	}

	r.Use(logutil.Middleware(logger))
	r.Use(apperr.Responder(cfg.IsProduction()))
	r.Use(gin.CustomRecoveryWithWriter(io.Discard, recovered))
	r.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", logutil.RequestIDHeader},
		ExposeHeaders:    []string{logutil.RequestIDHeader},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	// 導通確認用
	r.GET("/healthz", h.Health.Health)
	r.HEAD("/healthz", h.Health.Health)

	gate := jwtmw.AuthRequired(h.Tokens, h.Identities)

	api := r.Group("/api")

	users := api.Group("/users")
	{
		// 新規ユーザー登録とログイン（JWT 発行）はIPごとに制限
		users.POST("", h.AuthLimiter.Middleware(), h.Auth.Register)
		users.POST("/login", h.AuthLimiter.Middleware(), h.Auth.Login)
		users.GET("/me", gate, h.Auth.Me)
	}

	goals := api.Group("/goals")
	if !cfg.Features.GoalsAnonymous {
		goals.Use(gate)
	}
	{
		goals.GET("", h.Goals.List)
		goals.POST("", h.Goals.Create)
		goals.PUT("/:id", h.Goals.Update)
		goals.DELETE("/:id", h.Goals.Delete)
	}

	if cfg.Features.ItemsEnabled {
		items := api.Group("/items")
		items.GET("", h.Items.List)
		items.POST("", h.Items.Create)
		items.DELETE("/:id", h.Items.Delete)
	}

	if cfg.IsProduction() && cfg.HTTP.StaticDir != "" {
		r.NoRoute(spa(cfg.HTTP.StaticDir))
	} else {
		if !cfg.IsProduction() {
			r.GET("/", func(c *gin.Context) {
				c.String(http.StatusOK, devRootMessage)
			})
		}
		r.NoRoute(notFound)
	}

	return r
}

// recovered turns a handler panic into an internal error for the responder.
func recovered(c *gin.Context, rec any) {
	_ = c.Error(apperr.Internal(internalMessage, fmt.Errorf("panic: %v", rec)))
	c.Abort()
}

func notFound(c *gin.Context) {
	_ = c.Error(apperr.RouteNotFound(c.Request.URL.Path))
}

// spa serves the client build from dir. Unknown paths outside /api fall
// back to index.html so client side routing works.
func spa(dir string) gin.HandlerFunc {
	files := http.FileServer(http.Dir(dir))
	index := filepath.Join(dir, "index.html")

	return func(c *gin.Context) {
		p := c.Request.URL.Path
		if strings.HasPrefix(p, "/api/") || p == "/api" ||
			(c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead) {
			notFound(c)
			return
		}

		name := filepath.Join(dir, filepath.FromSlash(path.Clean("/"+p)))
		if fi, err := os.Stat(name); err == nil && !fi.IsDir() {
			files.ServeHTTP(c.Writer, c.Request)
			return
		}
		c.File(index)
	}
}
