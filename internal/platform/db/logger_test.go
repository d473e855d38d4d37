package db

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"goal_backend/internal/config"
	"goal_backend/internal/platform/logutil"
)

func openLoggedSQLite(t *testing.T) (*gorm.DB, context.Context, *bytes.Buffer) {
	t.Helper()

	open, err := NewOpener(config.DriverSQLite)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	gdb, err := open(":memory:")
	if err != nil {
		t.Fatalf("failed to open: %v", err)
	}
	sqlDB, _ := gdb.DB()
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := gdb.AutoMigrate(&widget{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}

	var buf bytes.Buffer
	ctx := logutil.WithLogger(context.Background(), zerolog.New(&buf))
	return gdb, ctx, &buf
}

// TestQueryLogger_RecordNotFoundIsSilent は存在しないレコードの検索がログに出ないことを検証します。
func TestQueryLogger_RecordNotFoundIsSilent(t *testing.T) {
	t.Parallel()
	gdb, ctx, buf := openLoggedSQLite(t)

	var w widget
	err := gdb.WithContext(ctx).Where("code = ?", "nobody@example.com").First(&w).Error
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("expected no log output, got %q", buf.String())
	}
}

// TestQueryLogger_ErrorsGoToContextLogger はクエリエラーがコンテキストのロガーにSQL抜きで出力されることを検証します。
func TestQueryLogger_ErrorsGoToContextLogger(t *testing.T) {
	t.Parallel()
	gdb, ctx, buf := openLoggedSQLite(t)

	_ = gdb.WithContext(ctx).Exec("SELECT * FROM missing_table WHERE code = ?", "secret@example.com").Error

	out := buf.String()
	if !strings.Contains(out, `"level":"error"`) || !strings.Contains(out, "gorm query") {
		t.Errorf("expected an error log line, got %q", out)
	}
	if strings.Contains(out, "secret@example.com") {
		t.Errorf("log line leaked query arguments: %q", out)
	}
}

// TestQueryLogger_Slow は閾値を超えたクエリが警告として出力されることを検証します。
func TestQueryLogger_Slow(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	ctx := logutil.WithLogger(context.Background(), zerolog.New(&buf))
	l := &queryLogger{level: gormlogger.Warn, slow: time.Millisecond}

	l.Trace(ctx, time.Now().Add(-time.Second), func() (string, int64) { return "SELECT 1", 1 }, nil)

	if !strings.Contains(buf.String(), `"level":"warn"`) {
		t.Errorf("expected a warn log line, got %q", buf.String())
	}
}

// TestQueryLogger_Silent はSilentモードで何も出力しないことを検証します。
func TestQueryLogger_Silent(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	ctx := logutil.WithLogger(context.Background(), zerolog.New(&buf))
	l := newQueryLogger().LogMode(gormlogger.Silent)

	l.Trace(ctx, time.Now().Add(-time.Second), func() (string, int64) { return "", 0 }, errors.New("boom"))
	l.Warn(ctx, "ignored %d", 1)

	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}
