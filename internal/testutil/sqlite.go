// Package testutil holds helpers shared by package tests.
package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"goal_backend/internal/config"
	"goal_backend/internal/platform/db"
)

// NewSQLite opens a private in-memory sqlite database with models migrated.
// The pool is capped at one connection so every query sees the same database.
func NewSQLite(t testing.TB, models ...any) *gorm.DB {
	t.Helper()

	open, err := db.NewOpener(config.DriverSQLite)
	require.NoError(t, err)

	gdb, err := open(":memory:")
	require.NoError(t, err, "failed to initialize test database")

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if len(models) > 0 {
		require.NoError(t, gdb.AutoMigrate(models...), "failed to migrate tables")
	}
	return gdb
}
