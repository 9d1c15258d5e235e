package db

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ErrImmutable is returned when a caller tries to change a study record after
// it was written.
var ErrImmutable = errors.New("study records are append-only")

const (
	EndedReasonFinished  = "finished"
	EndedReasonInactive  = "inactive"
	EndedReasonAbandoned = "abandoned"
)

// VocabWord is the persisted scheduling state of one lemma. ID is the lemma id.
type VocabWord struct {
	ID                   string `gorm:"primaryKey"`
	Lemma                string `gorm:"not null;default:''"`
	Definition           string `gorm:"not null;default:''"`
	CustomDefinition     *string
	Language             string    `gorm:"not null;default:'greek';index:idx_vocab_language_due"`
	CurrentIntervalIndex int       `gorm:"not null;default:0"`
	DueDate              time.Time `gorm:"index:idx_vocab_language_due"`
	SourceID             string    `gorm:"not null;default:'app'"`
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// Gloss prefers the learner's own definition.
func (w VocabWord) Gloss() string {
	if w.CustomDefinition != nil && *w.CustomDefinition != "" {
		return *w.CustomDefinition
	}
	return w.Definition
}

type StudySessionEntry struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	SessionID         uuid.UUID `gorm:"type:uuid;index;not null"`
	RelatedWordID     string    `gorm:"index;not null"`
	Answer            string    `gorm:"not null"`
	PrevIntervalIndex int       `gorm:"not null;default:0"`
	NextIntervalIndex int       `gorm:"not null;default:0"`
	StudiedText       string    `gorm:"not null;default:''"`
	StudiedGloss      string    `gorm:"not null;default:''"`
	CreatedAt         time.Time `gorm:"index"`
}

func (e *StudySessionEntry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

func (e *StudySessionEntry) BeforeUpdate(tx *gorm.DB) error {
	return ErrImmutable
}

func (e *StudySessionEntry) BeforeDelete(tx *gorm.DB) error {
	return ErrImmutable
}

// StudySession bundles the entries of one run. It is written once when the
// run ends.
type StudySession struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey"`
	ListID       string         `gorm:"index;not null;default:''"`
	StartedAt    time.Time      `gorm:"not null"`
	EndedAt      time.Time      `gorm:"not null;index"`
	EntryIDs     datatypes.JSON `gorm:"not null"`
	EntryCount   int            `gorm:"not null;default:0"`
	CorrectCount int            `gorm:"not null;default:0"`
	EndedReason  string         `gorm:"not null;default:'finished'"`
}

func (s *StudySession) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if len(s.EntryIDs) == 0 {
		s.EntryIDs = datatypes.JSON("[]")
	}
	return nil
}

func (s *StudySession) BeforeUpdate(tx *gorm.DB) error {
	return ErrImmutable
}

func (s *StudySession) BeforeDelete(tx *gorm.DB) error {
	return ErrImmutable
}

// EncodeEntryIDs is the stored form of StudySession.EntryIDs.
func EncodeEntryIDs(ids []uuid.UUID) (datatypes.JSON, error) {
	if ids == nil {
		ids = []uuid.UUID{}
	}
	raw, err := json.Marshal(ids)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}

// Entries decodes EntryIDs.
func (s StudySession) Entries() ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if len(s.EntryIDs) == 0 {
		return ids, nil
	}
	if err := json.Unmarshal(s.EntryIDs, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

// Models lists every table managed by Migrate.
func Models() []any {
	return []any{&VocabWord{}, &StudySessionEntry{}, &StudySession{}}
}
