package ratelimiter

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"goal_backend/internal/platform/apperr"
	"goal_backend/internal/platform/logutil"
)

// MsgTooManyRequests は上限超過時にクライアントへ返すメッセージです。
const MsgTooManyRequests = "Too many requests, please try again later"

// window はキーごとの固定ウィンドウの状態です。
type window struct {
	count     int
	lastReset time.Time
}

// RateLimiterは、キー（クライアントIP など）ごとにリクエストの頻度を制限します。
type RateLimiter struct {
	mu        sync.Mutex
	limit     int           // interval あたりの上限（0 以下なら無効）
	interval  time.Duration // どの単位でリセットするか
	windows   map[string]*window
	lastSweep time.Time // 期限切れウィンドウを最後に破棄した時刻
	now       func() time.Time
}

// NewRateLimiterは新しいRateLimiterのインスタンスを生成します。
func NewRateLimiter(limit int, interval time.Duration) *RateLimiter {
	if interval <= 0 {
		interval = time.Minute
	}
	return &RateLimiter{
		limit:    limit,
		interval: interval,
		windows:  make(map[string]*window),
		now:      time.Now,
	}
}

// Allowはkeyのリクエストが上限内であればtrueを返し、カウントを進めます。
func (rl *RateLimiter) Allow(key string) bool {
	if rl.limit <= 0 {
		return true
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	w, ok := rl.windows[key]
	// interval を過ぎたらカウントリセット
	if !ok || now.Sub(w.lastReset) >= rl.interval {
		rl.sweep(now)
		w = &window{lastReset: now}
		rl.windows[key] = w
	}

	if w.count >= rl.limit {
		return false
	}
	w.count++
	return true
}

// sweep は期限切れのウィンドウを破棄します。走査は interval に一度だけ行います。
// 呼び出し側でロック済みであること。
func (rl *RateLimiter) sweep(now time.Time) {
	if now.Sub(rl.lastSweep) < rl.interval {
		return
	}
	rl.lastSweep = now
	for k, w := range rl.windows {
		if now.Sub(w.lastReset) >= rl.interval {
			delete(rl.windows, k)
		}
	}
}

// Middlewareはクライアント IP ごとに制限する gin ミドルウェアを返します。
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if !rl.Allow(ip) {
			logger := logutil.GetOrDefault(c.Request.Context())
			logger.Warn().
				Str("client_ip", ip).
				Int("limit", rl.limit).
				Dur("interval", rl.interval).
				Msg("rate limit hit")
			_ = c.Error(apperr.TooManyRequests(MsgTooManyRequests))
			c.Abort()
			return
		}
		c.Next()
	}
}
