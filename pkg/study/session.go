package study

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/smith3v/scripture-vocab/pkg/corpus"
	"github.com/smith3v/scripture-vocab/pkg/db"
	"github.com/smith3v/scripture-vocab/pkg/logger"
	"github.com/smith3v/scripture-vocab/pkg/srs"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrSessionEnded = errors.New("study session already ended")
	ErrEmptyWordID  = errors.New("word id is empty")
)

// Session is one study run. Every answer is persisted as it is recorded; End
// writes the record that bundles them.
type Session struct {
	id       uuid.UUID
	listID   string
	corpus   *corpus.Corpus
	sourceID string

	mu             sync.Mutex
	startedAt      time.Time
	lastActivityAt time.Time
	entries        []db.StudySessionEntry
	ended          bool
}

// NewSession starts a run. The corpus glosses words studied for the first
// time; sourceID selects the lexicon, defaulting to the app source.
func NewSession(c *corpus.Corpus, sourceID string, now time.Time) *Session {
	if sourceID == "" {
		sourceID = corpus.AppSource
	}
	return &Session{
		id:             uuid.New(),
		corpus:         c,
		sourceID:       sourceID,
		startedAt:      now,
		lastActivityAt: now,
	}
}

func (s *Session) ID() uuid.UUID {
	return s.id
}

func (s *Session) StartedAt() time.Time {
	return s.startedAt
}

func (s *Session) LastActivityAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActivityAt
}

func (s *Session) Touch(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if now.After(s.lastActivityAt) {
		s.lastActivityAt = now
	}
}

// Entries returns the answers recorded so far.
func (s *Session) Entries() []db.StudySessionEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.entries)
}

func (s *Session) Ended() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ended
}

// RecordAnswer advances the word's schedule and appends an entry in a single
// transaction. A word without persisted state starts at index 0.
func (s *Session) RecordAnswer(ctx context.Context, wordID string, answer srs.Answer, now time.Time) (db.VocabWord, db.StudySessionEntry, error) {
	if wordID == "" {
		return db.VocabWord{}, db.StudySessionEntry{}, ErrEmptyWordID
	}
	if !answer.Valid() {
		return db.VocabWord{}, db.StudySessionEntry{}, fmt.Errorf("record answer for %s: invalid answer %q", wordID, answer)
	}
	if db.DB == nil {
		return db.VocabWord{}, db.StudySessionEntry{}, db.ErrNotInitialized
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ended {
		return db.VocabWord{}, db.StudySessionEntry{}, ErrSessionEnded
	}

	var (
		word  db.VocabWord
		entry db.StudySessionEntry
	)
	err := db.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var closed int64
		if err := tx.Model(&db.StudySession{}).Where("id = ?", s.id).Count(&closed).Error; err != nil {
			return err
		}
		if closed > 0 {
			return ErrSessionEnded
		}

		found := true
		if err := tx.Where("id = ?", wordID).Take(&word).Error; err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			found = false
			word = NewVocabWord(s.corpus, s.sourceID, wordID)
		}

		entry = srs.Apply(&word, answer, now)
		entry.SessionID = s.id

		if found {
			if err := tx.Save(&word).Error; err != nil {
				return err
			}
		} else if err := tx.Create(&word).Error; err != nil {
			return err
		}
		return tx.Create(&entry).Error
	})
	if errors.Is(err, ErrSessionEnded) {
		s.ended = true
		logger.Warn("answer for a closed session", "session_id", s.id, "word_id", wordID)
		return db.VocabWord{}, db.StudySessionEntry{}, ErrSessionEnded
	}
	if err != nil {
		logger.Error("failed to record answer", "session_id", s.id, "word_id", wordID, "error", err)
		return db.VocabWord{}, db.StudySessionEntry{}, fmt.Errorf("record answer for %s: %w", wordID, err)
	}

	s.entries = append(s.entries, entry)
	if now.After(s.lastActivityAt) {
		s.lastActivityAt = now
	}
	logger.Debug("recorded answer",
		"session_id", s.id,
		"word_id", wordID,
		"answer", answer,
		"prev_index", entry.PrevIntervalIndex,
		"next_index", entry.NextIntervalIndex,
	)
	return word, entry, nil
}

// End closes the run and writes its record. A run without answers is closed
// without writing anything.
func (s *Session) End(ctx context.Context, now time.Time, reason string) (db.StudySession, error) {
	if reason == "" {
		reason = db.EndedReasonFinished
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ended {
		return db.StudySession{}, ErrSessionEnded
	}

	record, err := db.BundleSession(s.id, s.listID, s.startedAt, now, s.entries, reason)
	if err != nil {
		return db.StudySession{}, err
	}
	if len(s.entries) > 0 {
		if db.DB == nil {
			return db.StudySession{}, db.ErrNotInitialized
		}
		result := db.DB.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&record)
		if result.Error != nil {
			logger.Error("failed to save study session", "session_id", s.id, "error", result.Error)
			return db.StudySession{}, result.Error
		}
		if result.RowsAffected == 0 {
			// Closed by the abandoned-run cleanup; its record stands.
			var stored db.StudySession
			if err := db.DB.WithContext(ctx).Where("id = ?", s.id).Take(&stored).Error; err != nil {
				return db.StudySession{}, err
			}
			record = stored
		}
	}

	s.ended = true
	logger.Info("study session ended",
		"session_id", s.id,
		"list_id", s.listID,
		"reason", reason,
		"entries", record.EntryCount,
		"correct", record.CorrectCount,
	)
	return record, nil
}

// NewVocabWord is the unstudied state of wordID, filled from the sourceID
// lexicon with the app lexicon as fallback.
func NewVocabWord(c *corpus.Corpus, sourceID, wordID string) db.VocabWord {
	word := db.VocabWord{
		ID:       wordID,
		Language: string(corpus.LanguageOfLemma(wordID)),
		SourceID: sourceID,
	}
	info := c.Resolve(sourceID, wordID)
	if info.IsZero() && sourceID != corpus.AppSource {
		info = c.Resolve(corpus.AppSource, wordID)
	}
	if !info.IsZero() {
		word.Lemma = info.Lemma
		word.Definition = info.Definition
		word.Language = string(info.Language)
		word.SourceID = info.SourceID
	}
	return word
}
