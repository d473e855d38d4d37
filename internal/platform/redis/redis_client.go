package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"goal_backend/internal/config"
	"goal_backend/internal/platform/logutil"
)

// NewRedisClient connects to cfg.Addr and pings it. Callers treat an error
// as "run without cache".
func NewRedisClient(ctx context.Context, cfg config.Redis) (*redis.Client, error) {
	logger := logutil.GetOrDefault(ctx)

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// 接続確認
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		logger.Error().Err(err).Str("address", cfg.Addr).Msg("redis connection failed")
		return nil, fmt.Errorf("redis: ping %s: %w", cfg.Addr, err)
	}

	logger.Info().Str("address", cfg.Addr).Msg("redis connection successful")
	return rdb, nil
}
