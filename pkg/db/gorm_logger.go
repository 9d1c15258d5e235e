package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/smith3v/scripture-vocab/pkg/logger"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	defaultSlowThreshold = 200 * time.Millisecond
	defaultGormLogLevel  = gormlogger.Warn
)

// slogGormLogger sends gorm output through the package logger. Its own level
// is applied first, then the package level.
type slogGormLogger struct {
	level         gormlogger.LogLevel
	slowThreshold time.Duration
}

func newGormLogger(levelValue string) (gormlogger.Interface, error) {
	l := &slogGormLogger{level: defaultGormLogLevel, slowThreshold: defaultSlowThreshold}
	if strings.TrimSpace(levelValue) == "" {
		return l, nil
	}
	level, err := parseGormLogLevel(levelValue)
	l.level = level
	return l, err
}

func (l *slogGormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *l
	clone.level = level
	return &clone
}

func (l *slogGormLogger) Info(ctx context.Context, msg string, data ...any) {
	l.emit(ctx, gormlogger.Info, fmt.Sprintf(msg, data...))
}

func (l *slogGormLogger) Warn(ctx context.Context, msg string, data ...any) {
	l.emit(ctx, gormlogger.Warn, fmt.Sprintf(msg, data...))
}

func (l *slogGormLogger) Error(ctx context.Context, msg string, data ...any) {
	l.emit(ctx, gormlogger.Error, fmt.Sprintf(msg, data...))
}

func (l *slogGormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level == gormlogger.Silent {
		return
	}
	if err != nil && errors.Is(err, gorm.ErrRecordNotFound) {
		return
	}

	elapsed := time.Since(begin)
	level, msg := gormlogger.Info, "gorm query"
	switch {
	case err != nil:
		level, msg = gormlogger.Error, "gorm query error"
	case l.slowThreshold > 0 && elapsed > l.slowThreshold:
		level, msg = gormlogger.Warn, "gorm slow query"
	}
	if !l.enabled(level) {
		return
	}

	sql, rows := fc()
	attrs := []any{"elapsed", elapsed, "rows", rows, "sql", sql}
	if err != nil {
		attrs = append(attrs, "error", err)
	}
	if level == gormlogger.Warn {
		attrs = append(attrs, "threshold", l.slowThreshold)
	}
	l.emit(ctx, level, msg, attrs...)
}

func (l *slogGormLogger) emit(ctx context.Context, level gormlogger.LogLevel, msg string, attrs ...any) {
	if !l.enabled(level) {
		return
	}
	logger.Logger.Log(ctx, slogLevel(level), msg, attrs...)
}

func (l *slogGormLogger) enabled(level gormlogger.LogLevel) bool {
	if l.level == gormlogger.Silent || l.level < level {
		return false
	}
	switch level {
	case gormlogger.Error:
		return logger.Enabled(logger.ERROR)
	case gormlogger.Warn:
		return logger.Enabled(logger.WARN)
	case gormlogger.Info:
		return logger.Enabled(logger.INFO)
	default:
		return false
	}
}

func slogLevel(level gormlogger.LogLevel) slog.Level {
	switch level {
	case gormlogger.Error:
		return slog.LevelError
	case gormlogger.Warn:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}

func parseGormLogLevel(value string) (gormlogger.LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "silent":
		return gormlogger.Silent, nil
	case "error":
		return gormlogger.Error, nil
	case "warn", "warning":
		return gormlogger.Warn, nil
	case "info":
		return gormlogger.Info, nil
	default:
		return defaultGormLogLevel, fmt.Errorf("invalid gorm log level %q", value)
	}
}
