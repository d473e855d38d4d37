// Package mongo connects to the document store.
package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"goal_backend/internal/config"
	"goal_backend/internal/platform/logutil"
)

// NewClient connects to cfg.URI and pings the primary within timeout.
func NewClient(ctx context.Context, cfg config.Mongo, timeout time.Duration) (*mongo.Client, error) {
	opts := options.Client().
		ApplyURI(cfg.URI).
		SetServerSelectionTimeout(timeout).
		SetAppName("goal_backend")

	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("mongo: connect: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo: ping: %w", err)
	}

	logger := logutil.GetOrDefault(ctx)
	logger.Info().Str("db", cfg.DBName).Msg("mongo connected")
	return client, nil
}
