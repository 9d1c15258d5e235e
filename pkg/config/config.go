package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/smith3v/scripture-vocab/pkg/logger"
)

type Config struct {
	Database DatabaseConfig `json:"database"`
	Logging  LoggingConfig  `json:"logging"`
	Corpus   CorpusConfig   `json:"corpus"`
	Study    StudyConfig    `json:"study"`
}

type DatabaseConfig struct {
	Driver   string `json:"driver" validate:"oneof=sqlite postgres"`
	Path     string `json:"path" validate:"required_if=Driver sqlite"`
	Host     string `json:"host" validate:"required_if=Driver postgres"`
	User     string `json:"user"`
	Password string `json:"password"`
	DBName   string `json:"dbname" validate:"required_if=Driver postgres"`
	Port     int    `json:"port" validate:"gte=0,lt=65536"`
	SSLMode  string `json:"sslmode"`
}

type LoggingConfig struct {
	Level     string `json:"level" validate:"omitempty,oneof=debug info warn warning error"`
	File      string `json:"file"`
	GormLevel string `json:"gorm_level" validate:"omitempty,oneof=silent error warn info"`
}

// CorpusConfig names the corpus files, relative to Root.
type CorpusConfig struct {
	Root          string   `json:"root"`
	GreekText     string   `json:"greek_text"`
	GreekLexicon  string   `json:"greek_lexicon"`
	HebrewText    string   `json:"hebrew_text"`
	HebrewLexicon string   `json:"hebrew_lexicon"`
	Textbooks     []string `json:"textbooks" validate:"dive,required"`
}

// StudyConfig tunes study runs. NewWordsPerSession of 0 reviews due words only
// and -1 introduces every new word; unset means DefaultNewWordsPerSession.
type StudyConfig struct {
	NewWordsPerSession       *int `json:"new_words_per_session" validate:"omitnil,gte=-1"`
	SessionInactivityMinutes int  `json:"session_inactivity_minutes" validate:"gte=0"`
}

// NewWordsLimit is the cap on new words per run; negative means no cap.
func (s StudyConfig) NewWordsLimit() int {
	if s.NewWordsPerSession == nil {
		return DefaultNewWordsPerSession
	}
	return *s.NewWordsPerSession
}

const (
	DefaultDriver                   = "sqlite"
	DefaultSQLitePath               = "scripture-vocab.db"
	DefaultNewWordsPerSession       = 10
	DefaultSessionInactivityMinutes = 30
)

var AppConfig Config

var validate = validator.New()

func LoadConfig(filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		logger.Error("failed to open config file", "error", err)
		return err
	}
	defer file.Close()

	var cfg Config
	decoder := json.NewDecoder(file)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&cfg); err != nil {
		logger.Error("failed to decode config file", "error", err)
		return err
	}

	applyDefaults(&cfg)
	if err := Validate(cfg); err != nil {
		logger.Error("invalid config file", "path", filename, "error", err)
		return err
	}

	AppConfig = cfg
	return nil
}

// Validate checks the struct tags of cfg.
func Validate(cfg Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}
	return nil
}

func applyDefaults(cfg *Config) {
	if strings.TrimSpace(cfg.Database.Driver) == "" {
		cfg.Database.Driver = DefaultDriver
	}
	if cfg.Database.Driver == "sqlite" && strings.TrimSpace(cfg.Database.Path) == "" {
		cfg.Database.Path = DefaultSQLitePath
	}
	if cfg.Database.Driver == "postgres" {
		if cfg.Database.Port == 0 {
			cfg.Database.Port = 5432
		}
		if cfg.Database.SSLMode == "" {
			cfg.Database.SSLMode = "disable"
		}
	}
	if cfg.Study.NewWordsPerSession == nil {
		n := DefaultNewWordsPerSession
		cfg.Study.NewWordsPerSession = &n
	}
	if cfg.Study.SessionInactivityMinutes == 0 {
		cfg.Study.SessionInactivityMinutes = DefaultSessionInactivityMinutes
	}
}
