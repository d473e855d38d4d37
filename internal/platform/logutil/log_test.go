package logutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOrDefault(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	ctx := WithLogger(context.Background(), logger)
	got := GetOrDefault(ctx)
	got.Info().Msg("hello")

	assert.Contains(t, buf.String(), `"message":"hello"`)
}

func TestNew_ProductionLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(true, "", &buf)

	logger.Debug().Msg("hidden")
	logger.Info().Msg("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestNew_ExplicitLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(true, "warn", &buf)

	logger.Info().Msg("hidden")
	assert.Empty(t, buf.String())
}

func TestMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var buf bytes.Buffer
	r := gin.New()
	r.Use(Middleware(zerolog.New(&buf)))
	r.GET("/ping", func(c *gin.Context) {
		logger := GetOrDefault(c.Request.Context())
		logger.Info().Msg("inside")
		c.Status(http.StatusTeapot)
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, "req-1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "req-1", w.Header().Get(RequestIDHeader))

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)

	var inside, done map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &inside))
	require.NoError(t, json.Unmarshal(lines[1], &done))

	assert.Equal(t, "req-1", inside["request_id"])
	assert.Equal(t, "/ping", inside["path"])
	assert.Equal(t, "warn", done["level"])
	assert.Equal(t, float64(http.StatusTeapot), done["status"])
}
