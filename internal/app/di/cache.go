package di

import (
	"context"

	"goal_backend/internal/config"
	"goal_backend/internal/platform/cache"
	"goal_backend/internal/platform/logutil"
	platformredis "goal_backend/internal/platform/redis"
)

// WithGoalCache wraps the goal repository with the Redis list cache.
// Without REDIS_ADDR, or when Redis is unreachable, the repository is used
// directly.
func WithGoalCache(ctx context.Context, s *Stores, cfg config.Redis) {
	logger := logutil.GetOrDefault(ctx)
	if cfg.Addr == "" {
		logger.Info().Msg("REDIS_ADDR not set, running without goal cache")
		return
	}

	rdb, err := platformredis.NewRedisClient(ctx, cfg)
	if err != nil {
		logger.Warn().Err(err).Msg("redis unavailable, running without goal cache")
		return
	}

	s.Goals = cache.NewCachingGoalRepository(rdb, cfg.CacheTTL, s.Goals, "goals")
	s.onClose(rdb.Close)
}
