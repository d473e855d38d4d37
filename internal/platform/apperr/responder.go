package apperr

import (
	"errors"

	"github.com/gin-gonic/gin"

	"goal_backend/internal/platform/logutil"
)

const internalMessage = "Internal Server Error"

type Response struct {
	Message string  `json:"message"`
	Stack   *string `json:"stack"`
}

// Describe maps err to the status and body sent to the client.
func Describe(err error, production bool) (int, Response) {
	var e *Error
	if !errors.As(err, &e) {
		msg := err.Error()
		if production {
			msg = internalMessage
		}
		return KindInternal.Status(), Response{Message: msg, Stack: stackOf(err, "", production)}
	}

	msg := e.Message
	if e.Kind == KindInternal && production {
		msg = internalMessage
	}
	return e.Kind.Status(), Response{Message: msg, Stack: stackOf(err, e.stack, production)}
}

func stackOf(err error, stack string, production bool) *string {
	if production {
		return nil
	}
	s := err.Error()
	if stack != "" {
		s += "\n" + stack
	}
	return &s
}

// Responder writes the last error recorded on the context, unless a
// handler already wrote a response.
func Responder(production bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		status, body := Describe(err, production)

		logger := logutil.GetOrDefault(c.Request.Context())
		ev := logger.Warn()
		if status >= 500 {
			ev = logger.Error()
		}
		ev.Err(err).Str("kind", KindOf(err).String()).Int("status", status).Msg("request failed")

		c.JSON(status, body)
	}
}
