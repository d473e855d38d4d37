package db

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"goal_backend/internal/platform/logutil"
)

const slowQueryThreshold = 200 * time.Millisecond

// queryLogger sends gorm logs to the request's zerolog logger.
// Missing records are expected results and are not logged.
type queryLogger struct {
	level gormlogger.LogLevel
	slow  time.Duration
}

var _ gormlogger.Interface = (*queryLogger)(nil)

func newQueryLogger() *queryLogger {
	return &queryLogger{level: gormlogger.Warn, slow: slowQueryThreshold}
}

func (l *queryLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	cp := *l
	cp.level = level
	return &cp
}

func (l *queryLogger) Info(ctx context.Context, msg string, args ...any) {
	if l.level >= gormlogger.Info {
		logger := logutil.GetOrDefault(ctx)
		logger.Info().Msgf(msg, args...)
	}
}

func (l *queryLogger) Warn(ctx context.Context, msg string, args ...any) {
	if l.level >= gormlogger.Warn {
		logger := logutil.GetOrDefault(ctx)
		logger.Warn().Msgf(msg, args...)
	}
}

func (l *queryLogger) Error(ctx context.Context, msg string, args ...any) {
	if l.level >= gormlogger.Error {
		logger := logutil.GetOrDefault(ctx)
		logger.Error().Msgf(msg, args...)
	}
}

// Trace logs failed and slow queries. The SQL text is left out of the
// log line since it may carry user input such as email addresses.
func (l *queryLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}
	elapsed := time.Since(begin)

	var ev *zerolog.Event
	logger := logutil.GetOrDefault(ctx)
	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound) && l.level >= gormlogger.Error:
		ev = logger.Error().Err(err)
	case l.slow > 0 && elapsed > l.slow && l.level >= gormlogger.Warn:
		ev = logger.Warn().Dur("threshold", l.slow)
	case l.level >= gormlogger.Info:
		ev = logger.Debug()
	default:
		return
	}

	_, rows := fc()
	ev.Dur("elapsed", elapsed).Int64("rows", rows).Msg("gorm query")
}
