package srs

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/smith3v/scripture-vocab/pkg/db"
)

type Answer string

const (
	AnswerWrong Answer = "wrong"
	AnswerHard  Answer = "hard"
	AnswerGood  Answer = "good"
	AnswerEasy  Answer = "easy"
)

// Correct reports whether the word was recalled at all.
func (a Answer) Correct() bool {
	return a == AnswerHard || a == AnswerGood || a == AnswerEasy
}

func (a Answer) Valid() bool {
	return a == AnswerWrong || a.Correct()
}

func ParseAnswer(s string) (Answer, error) {
	a := Answer(strings.ToLower(strings.TrimSpace(s)))
	if !a.Valid() {
		return "", fmt.Errorf("invalid answer %q", s)
	}
	return a, nil
}

// LadderSize is the number of rungs. Rung 0 is the new state.
const LadderSize = 10

var ladder = [LadderSize]time.Duration{
	15 * time.Second,
	time.Minute,
	10 * time.Minute,
	time.Hour,
	8 * time.Hour,
	24 * time.Hour,
	3 * 24 * time.Hour,
	7 * 24 * time.Hour,
	30 * 24 * time.Hour,
	90 * 24 * time.Hour,
}

// Ladder returns a copy of the review intervals.
func Ladder() []time.Duration {
	return slices.Clone(ladder[:])
}

// Interval is the delay scheduled after landing on index.
func Interval(index int) time.Duration {
	return ladder[clampIndex(index)]
}

// NextIndex moves along the ladder. Wrong restarts at rung 1; hard steps down
// only while that stays above rung 0; good and easy climb one and two rungs
// up to the last rung. An unknown answer holds the current rung.
func NextIndex(current int, answer Answer) int {
	current = clampIndex(current)
	switch answer {
	case AnswerWrong:
		return 1
	case AnswerHard:
		if current-1 > 0 {
			return current - 1
		}
		return current
	case AnswerGood:
		return min(current+1, LadderSize-1)
	case AnswerEasy:
		return min(current+2, LadderSize-1)
	default:
		return current
	}
}

// Apply records answer on word and returns the entry describing the move.
// The entry has no session yet; the caller assigns SessionID.
func Apply(word *db.VocabWord, answer Answer, now time.Time) db.StudySessionEntry {
	prev := clampIndex(word.CurrentIntervalIndex)
	next := NextIndex(prev, answer)

	word.CurrentIntervalIndex = next
	word.DueDate = now.Add(ladder[next])

	return db.StudySessionEntry{
		ID:                uuid.New(),
		RelatedWordID:     word.ID,
		Answer:            string(answer),
		PrevIntervalIndex: prev,
		NextIntervalIndex: next,
		StudiedText:       word.Lemma,
		StudiedGloss:      word.Gloss(),
		CreatedAt:         now,
	}
}

// IsDue reports whether a word that has been studied is ready for review.
func IsDue(word db.VocabWord, now time.Time) bool {
	return word.CurrentIntervalIndex > 0 && !now.Before(word.DueDate)
}

func IsNew(word db.VocabWord) bool {
	return word.CurrentIntervalIndex <= 0
}

// Overdue is how long ago a due word became due.
func Overdue(word db.VocabWord, now time.Time) time.Duration {
	if !IsDue(word, now) {
		return 0
	}
	return now.Sub(word.DueDate)
}

func clampIndex(i int) int {
	if i < 0 {
		return 0
	}
	if i >= LadderSize {
		return LadderSize - 1
	}
	return i
}
