package db

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/smith3v/scripture-vocab/pkg/config"
	"github.com/smith3v/scripture-vocab/pkg/logger"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Export DB variable
var DB *gorm.DB

var ErrNotInitialized = errors.New("database not initialized")

const lookupBatchSize = 500

func InitDB(cfg config.Config) error {
	dialector, err := openDialector(cfg.Database)
	if err != nil {
		logger.Error("unsupported database configuration", "driver", cfg.Database.Driver, "error", err)
		return err
	}
	gormLogger, gormErr := newGormLogger(cfg.Logging.GormLevel)
	if gormErr != nil {
		logger.Error("invalid gorm log level", "value", cfg.Logging.GormLevel, "error", gormErr)
	}
	gdb, err := gorm.Open(dialector, &gorm.Config{Logger: gormLogger})
	if err != nil {
		logger.Error("failed to connect to database", "driver", dialector.Name(), "error", err)
		return err
	}
	if err := Migrate(gdb); err != nil {
		logger.Error("failed to auto-migrate database", "error", err)
		return err
	}
	DB = gdb
	logger.Info("database ready", "driver", dialector.Name())
	return nil
}

// Migrate creates or updates every table.
func Migrate(gdb *gorm.DB) error {
	if gdb == nil {
		return ErrNotInitialized
	}
	return gdb.AutoMigrate(Models()...)
}

func openDialector(cfg config.DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case "", "sqlite":
		path := cfg.Path
		if path == "" {
			path = config.DefaultSQLitePath
		}
		return sqlite.Open(path), nil
	case "postgres":
		return postgres.Open(postgresDSN(cfg)), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

func postgresDSN(cfg config.DatabaseConfig) string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s",
		cfg.Host, cfg.User, cfg.Password, cfg.DBName, cfg.Port, cfg.SSLMode)
}

// FindVocabWords loads the persisted states of ids. Ids without a row are
// absent from the result.
func FindVocabWords(ctx context.Context, ids []string) (map[string]VocabWord, error) {
	if DB == nil {
		return nil, ErrNotInitialized
	}
	out := make(map[string]VocabWord, len(ids))
	for chunk := range slices.Chunk(ids, lookupBatchSize) {
		var words []VocabWord
		if err := DB.WithContext(ctx).Where("id IN ?", chunk).Find(&words).Error; err != nil {
			return nil, err
		}
		for _, w := range words {
			out[w.ID] = w
		}
	}
	return out, nil
}

// EntriesBetween returns the entries created in [from, to) in creation order.
func EntriesBetween(ctx context.Context, from, to time.Time) ([]StudySessionEntry, error) {
	if DB == nil {
		return nil, ErrNotInitialized
	}
	var entries []StudySessionEntry
	err := DB.WithContext(ctx).
		Where("created_at >= ? AND created_at < ?", from, to).
		Order("created_at ASC, id ASC").
		Find(&entries).Error
	return entries, err
}

// SessionsBetween returns the sessions that ended in [from, to).
func SessionsBetween(ctx context.Context, from, to time.Time) ([]StudySession, error) {
	if DB == nil {
		return nil, ErrNotInitialized
	}
	var sessions []StudySession
	err := DB.WithContext(ctx).
		Where("ended_at >= ? AND ended_at < ?", from, to).
		Order("ended_at ASC").
		Find(&sessions).Error
	return sessions, err
}

// ListVocabWords returns every persisted word, optionally limited to one
// language, ordered by lemma.
func ListVocabWords(ctx context.Context, language string) ([]VocabWord, error) {
	if DB == nil {
		return nil, ErrNotInitialized
	}
	q := DB.WithContext(ctx).Order("lemma ASC, id ASC")
	if language != "" {
		q = q.Where("language = ?", language)
	}
	var words []VocabWord
	err := q.Find(&words).Error
	return words, err
}
