package db

import (
	"context"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
	"gorm.io/gorm"

	"goal_backend/internal/config"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Migrate brings the schema up to date. Postgres uses the embedded goose
// migrations, sqlite auto-migrates models.
func Migrate(ctx context.Context, db *gorm.DB, driver string, models ...any) error {
	switch driver {
	case config.DriverPostgres:
		sqlDB, err := db.DB()
		if err != nil {
			return fmt.Errorf("db: %w", err)
		}
		goose.SetBaseFS(migrations)
		if err := goose.SetDialect("postgres"); err != nil {
			return fmt.Errorf("db: goose dialect: %w", err)
		}
		if err := goose.UpContext(ctx, sqlDB, "migrations"); err != nil {
			return fmt.Errorf("db: goose up: %w", err)
		}
		return nil
	case config.DriverSQLite:
		if err := db.WithContext(ctx).AutoMigrate(models...); err != nil {
			return fmt.Errorf("db: auto migrate: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("db: unsupported driver %q", driver)
	}
}
