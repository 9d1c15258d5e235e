package study

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/smith3v/scripture-vocab/pkg/db"
	"github.com/smith3v/scripture-vocab/pkg/internal/testutil"
)

func TestSetCustomDefinitionKeepsSchedule(t *testing.T) {
	testutil.SetupTestDB(t)
	ctx := context.Background()
	due := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	if err := db.DB.Create(&db.VocabWord{
		ID:                   testutil.LemmaGod,
		Lemma:                "θεός",
		Definition:           "God",
		Language:             "greek",
		CurrentIntervalIndex: 3,
		DueDate:              due,
	}).Error; err != nil {
		t.Fatalf("failed to seed word: %v", err)
	}

	word, err := SetCustomDefinition(ctx, testutil.NewTestCorpus(), "", testutil.LemmaGod, "  the one God ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if word.Gloss() != "the one God" {
		t.Fatalf("expected custom gloss, got %q", word.Gloss())
	}
	if word.CurrentIntervalIndex != 3 || !word.DueDate.Equal(due) {
		t.Fatalf("expected schedule unchanged, got index %d due %v", word.CurrentIntervalIndex, word.DueDate)
	}

	word, err = SetCustomDefinition(ctx, nil, "", testutil.LemmaGod, "")
	if err != nil {
		t.Fatalf("unexpected error clearing gloss: %v", err)
	}
	if word.CustomDefinition != nil || word.Gloss() != "God" {
		t.Fatalf("expected custom gloss cleared, got %+v", word)
	}
}

func TestSetCustomDefinitionCreatesUnstudiedWord(t *testing.T) {
	testutil.SetupTestDB(t)
	ctx := context.Background()

	word, err := SetCustomDefinition(ctx, testutil.NewTestCorpus(), "", testutil.LemmaWord, "utterance")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if word.Lemma != "λόγος" || word.Definition != "word" || word.Gloss() != "utterance" {
		t.Fatalf("expected word filled from the lexicon, got %+v", word)
	}

	q, err := DueAndNewQueues(ctx, []string{testutil.LemmaWord}, time.Now())
	if err != nil {
		t.Fatalf("DueAndNewQueues returned error: %v", err)
	}
	if len(q.New) != 1 || len(q.Due) != 0 {
		t.Fatalf("expected the word to stay new, got %+v", q)
	}
}

func TestSetCustomDefinitionRejectsEmptyID(t *testing.T) {
	if _, err := SetCustomDefinition(context.Background(), nil, "", "", "x"); !errors.Is(err, ErrEmptyWordID) {
		t.Fatalf("expected ErrEmptyWordID, got %v", err)
	}
}
