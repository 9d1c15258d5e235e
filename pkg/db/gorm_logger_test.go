package db

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/smith3v/scripture-vocab/pkg/logger"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	original := logger.Logger
	t.Cleanup(func() {
		logger.Logger = original
		logger.SetLogLevel(logger.INFO)
	})
	var buf bytes.Buffer
	logger.Logger = slog.New(slog.NewTextHandler(&buf, nil))
	return &buf
}

func TestGormLoggerTrace(t *testing.T) {
	buf := captureLogs(t)
	lg, err := newGormLogger("info")
	if err != nil {
		t.Fatalf("failed to create gorm logger: %v", err)
	}
	l := lg.(*slogGormLogger)
	ctx := context.Background()
	begin := time.Now().Add(-time.Millisecond)
	query := func() (string, int64) { return "SELECT * FROM vocab_words", 3 }

	logger.SetLogLevel(logger.INFO)
	l.slowThreshold = time.Nanosecond
	l.Trace(ctx, begin, query, nil)
	if !strings.Contains(buf.String(), "gorm slow query") || !strings.Contains(buf.String(), "threshold") {
		t.Fatalf("expected slow query warning, got: %s", buf.String())
	}

	buf.Reset()
	l.slowThreshold = time.Hour
	l.Trace(ctx, begin, query, nil)
	if !strings.Contains(buf.String(), "gorm query") || !strings.Contains(buf.String(), "vocab_words") {
		t.Fatalf("expected info query log, got: %s", buf.String())
	}

	buf.Reset()
	l.Trace(ctx, begin, query, gorm.ErrRecordNotFound)
	if buf.Len() != 0 {
		t.Fatalf("expected record-not-found to be ignored, got: %s", buf.String())
	}

	buf.Reset()
	logger.SetLogLevel(logger.ERROR)
	l.Trace(ctx, begin, query, nil)
	if buf.Len() != 0 {
		t.Fatalf("expected info query to be filtered, got: %s", buf.String())
	}
	l.Trace(ctx, begin, query, errors.New("boom"))
	if !strings.Contains(buf.String(), "gorm query error") || !strings.Contains(buf.String(), "boom") {
		t.Fatalf("expected error log, got: %s", buf.String())
	}
}

func TestGormLoggerSilent(t *testing.T) {
	buf := captureLogs(t)
	lg, _ := newGormLogger("info")
	silent := lg.LogMode(gormlogger.Silent)

	silent.Error(context.Background(), "failed %s", "query")
	silent.Trace(context.Background(), time.Now(), func() (string, int64) { return "SELECT 1", 1 }, errors.New("boom"))
	if buf.Len() != 0 {
		t.Fatalf("expected silent logger to drop output, got: %s", buf.String())
	}

	lg.Warn(context.Background(), "slow %d", 5)
	if !strings.Contains(buf.String(), "slow 5") {
		t.Fatalf("expected LogMode to leave the original untouched, got: %s", buf.String())
	}
}

func TestNewGormLoggerLevels(t *testing.T) {
	lg, err := newGormLogger("")
	if err != nil {
		t.Fatalf("unexpected error for default gorm logger: %v", err)
	}
	if l := lg.(*slogGormLogger); l.level != gormlogger.Warn {
		t.Fatalf("expected default gorm log level warn, got: %v", l.level)
	}

	lg, err = newGormLogger("nope")
	if err == nil {
		t.Fatalf("expected error for invalid gorm level")
	}
	if l := lg.(*slogGormLogger); l.level != gormlogger.Warn {
		t.Fatalf("expected warn for invalid input, got: %v", l.level)
	}

	lg, err = newGormLogger(" Error ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if l := lg.(*slogGormLogger); l.level != gormlogger.Error {
		t.Fatalf("expected error level, got: %v", l.level)
	}
}
