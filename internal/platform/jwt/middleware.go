package jwtmw

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"goal_backend/internal/platform/apperr"
	"goal_backend/internal/platform/logutil"
)

const (
	MsgNoToken      = "Not authorized, no token"
	MsgInvalidToken = "Not authorized, invalid token"
)

// ErrUnknownSubject is returned by an IdentityResolver when the token
// subject does not exist anymore.
var ErrUnknownSubject = errors.New("jwtmw: unknown subject")

type IdentityResolver interface {
	ResolveIdentity(ctx context.Context, userID string) (Identity, error)
}

type TokenParser interface {
	ParseSubject(tokenStr string) (string, error)
}

// AuthRequired returns a Gin middleware function that validates bearer tokens
// and restricts access to authenticated users only. Failures are recorded
// with c.Error and left to the error responder.
func AuthRequired(tokens TokenParser, users IdentityResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			abort(c, apperr.Unauthorized(MsgNoToken))
			return
		}
		tokenStr := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
		if tokenStr == "" {
			abort(c, apperr.Unauthorized(MsgInvalidToken))
			return
		}

		ctx := c.Request.Context()
		logger := logutil.GetOrDefault(ctx)

		sub, err := tokens.ParseSubject(tokenStr)
		if err != nil {
			logger.Debug().Err(err).Msg("token rejected")
			abort(c, apperr.Unauthorized(MsgInvalidToken))
			return
		}

		id, err := users.ResolveIdentity(ctx, sub)
		if err != nil {
			if errors.Is(err, ErrUnknownSubject) {
				logger.Debug().Str("sub", sub).Msg("token subject not found")
				abort(c, apperr.Unauthorized(MsgInvalidToken))
				return
			}
			abort(c, apperr.Internal("failed to resolve token subject", err))
			return
		}

		c.Request = c.Request.WithContext(WithIdentity(ctx, id))
		c.Next()
	}
}

func abort(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}
