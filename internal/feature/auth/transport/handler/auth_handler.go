// Package handler はauthフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"goal_backend/internal/feature/auth/domain/entity"
	"goal_backend/internal/feature/auth/transport/http/dto"
	"goal_backend/internal/feature/auth/usecase"
	"goal_backend/internal/platform/apperr"
	jwtmw "goal_backend/internal/platform/jwt"
	"goal_backend/internal/platform/logutil"
)

const msgInvalidBody = "Invalid request body"

// AuthUsecase は認証操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type AuthUsecase interface {
	Register(ctx context.Context, name, email, password string) (*usecase.AuthResult, error)
	Login(ctx context.Context, email, password string) (*usecase.AuthResult, error)
	Me(ctx context.Context, id string) (*entity.User, error)
}

// AuthHandler は認証操作のHTTPリクエストを処理します。
type AuthHandler struct {
	auth AuthUsecase
}

// NewAuthHandler はAuthHandlerの新しいインスタンスを生成します。
func NewAuthHandler(auth AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Register は POST /api/users を処理します。成功時は201とトークンを返します。
func (h *AuthHandler) Register(c *gin.Context) {
	ctx := c.Request.Context()
	logger := logutil.GetOrDefault(ctx)

	var req dto.RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperr.Validation(msgInvalidBody))
		return
	}

	res, err := h.auth.Register(ctx, req.Name, req.Email, req.Password)
	if err != nil {
		_ = c.Error(err)
		return
	}

	logger.Info().Str("user_id", res.User.ID).Str("remote_addr", c.ClientIP()).Msg("user registered")
	c.JSON(http.StatusCreated, dto.NewAuthRes(res.User, res.Token))
}

// Login は POST /api/users/login を処理します。
// 未登録メールとパスワード不一致は同じ400を返します。
func (h *AuthHandler) Login(c *gin.Context) {
	ctx := c.Request.Context()
	logger := logutil.GetOrDefault(ctx)

	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperr.Validation(msgInvalidBody))
		return
	}

	res, err := h.auth.Login(ctx, req.Email, req.Password)
	if err != nil {
		_ = c.Error(err)
		return
	}

	logger.Info().Str("user_id", res.User.ID).Str("remote_addr", c.ClientIP()).Msg("user login successful")
	c.JSON(http.StatusCreated, dto.NewAuthRes(res.User, res.Token))
}

// Me は GET /api/users/me を処理します。AuthRequiredの後段に置きます。
func (h *AuthHandler) Me(c *gin.Context) {
	ctx := c.Request.Context()

	id, ok := jwtmw.IdentityFrom(ctx)
	if !ok {
		_ = c.Error(apperr.Unauthorized(jwtmw.MsgNoToken))
		return
	}

	user, err := h.auth.Me(ctx, id.ID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserRes(user))
}
