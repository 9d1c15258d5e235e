package study

import (
	"context"
	"strings"

	"github.com/smith3v/scripture-vocab/pkg/corpus"
	"github.com/smith3v/scripture-vocab/pkg/db"
	"github.com/smith3v/scripture-vocab/pkg/logger"
	"gorm.io/gorm"
)

// SetCustomDefinition stores the learner's own gloss for wordID, creating an
// unstudied state from the sourceID lexicon when none exists. An empty
// definition clears the custom gloss. The schedule is never touched.
func SetCustomDefinition(ctx context.Context, c *corpus.Corpus, sourceID, wordID, definition string) (db.VocabWord, error) {
	if wordID == "" {
		return db.VocabWord{}, ErrEmptyWordID
	}
	if db.DB == nil {
		return db.VocabWord{}, db.ErrNotInitialized
	}

	var custom *string
	if d := strings.TrimSpace(definition); d != "" {
		custom = &d
	}

	var word db.VocabWord
	err := db.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&db.VocabWord{}).
			Where("id = ?", wordID).
			Update("custom_definition", custom)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected > 0 {
			return tx.Where("id = ?", wordID).Take(&word).Error
		}

		word = NewVocabWord(c, sourceID, wordID)
		word.CustomDefinition = custom
		return tx.Create(&word).Error
	})
	if err != nil {
		logger.Error("failed to set custom definition", "word_id", wordID, "error", err)
		return db.VocabWord{}, err
	}
	return word, nil
}
