// Package db opens the relational store and applies its schema.
package db

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"goal_backend/internal/config"
	"goal_backend/internal/platform/logutil"
)

const retryInterval = 3 * time.Second

// Opener opens a gorm connection for dsn.
type Opener func(dsn string) (*gorm.DB, error)

// NewOpener returns an Opener for the configured driver. Errors are
// translated to gorm's portable errors (gorm.ErrDuplicatedKey and friends).
func NewOpener(driver string) (Opener, error) {
	var dialect func(string) gorm.Dialector
	switch driver {
	case config.DriverPostgres:
		dialect = postgres.Open
	case config.DriverSQLite:
		dialect = sqlite.Open
	default:
		return nil, fmt.Errorf("db: unsupported driver %q", driver)
	}

	return func(dsn string) (*gorm.DB, error) {
		return gorm.Open(dialect(dsn), &gorm.Config{
			TranslateError: true,
			Logger:         newQueryLogger(),
		})
	}, nil
}

// Open connects to the relational store described by cfg, retrying until
// cfg.ConnectTimeout elapses.
func Open(ctx context.Context, cfg config.Database) (*gorm.DB, error) {
	opener, err := NewOpener(cfg.Driver)
	if err != nil {
		return nil, err
	}
	db, err := ConnectWithRetry(ctx, cfg.URL, cfg.ConnectTimeout, opener)
	if err != nil {
		return nil, err
	}

	if cfg.Driver == config.DriverSQLite {
		// sqlite allows a single writer
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("db: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
	}
	return db, nil
}

// ConnectWithRetry calls opener until it succeeds, timeout elapses or ctx
// is cancelled.
func ConnectWithRetry(ctx context.Context, dsn string, timeout time.Duration, opener Opener) (*gorm.DB, error) {
	logger := logutil.GetOrDefault(ctx)
	deadline := time.Now().Add(timeout)

	for {
		db, err := opener(dsn)
		if err == nil {
			return db, nil
		}

		remaining := time.Until(deadline)
		if remaining <= 0 {
			return nil, fmt.Errorf("db: connect failed after %s: %w", timeout, err)
		}
		logger.Warn().Err(err).Msg("db connect failed, retrying")

		wait := retryInterval
		if remaining < wait {
			wait = remaining
		}
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("db: connect cancelled: %w", ctx.Err())
		case <-time.After(wait):
		}
	}
}

// Ping checks the underlying connection.
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
