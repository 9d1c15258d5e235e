package study

import (
	"context"
	"time"

	"github.com/smith3v/scripture-vocab/pkg/db"
	"github.com/smith3v/scripture-vocab/pkg/srs"
)

type Stats struct {
	Entries       int                `json:"entries"`
	Answers       map[srs.Answer]int `json:"answers"`
	Correct       int                `json:"correct"`
	DistinctWords int                `json:"distinct_words"`
	Introduced    int                `json:"introduced"`
	Sessions      int                `json:"sessions"`
}

// Accuracy is the share of answers that were not wrong.
func (s Stats) Accuracy() float64 {
	if s.Entries == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Entries)
}

// Summarize counts answers. A word is introduced by its first answer from
// the new state.
func Summarize(entries []db.StudySessionEntry) Stats {
	stats := Stats{Answers: make(map[srs.Answer]int)}
	words := make(map[string]bool)
	introduced := make(map[string]bool)
	for _, e := range entries {
		answer := srs.Answer(e.Answer)
		stats.Entries++
		stats.Answers[answer]++
		if answer.Correct() {
			stats.Correct++
		}
		words[e.RelatedWordID] = true
		if e.PrevIntervalIndex == 0 {
			introduced[e.RelatedWordID] = true
		}
	}
	stats.DistinctWords = len(words)
	stats.Introduced = len(introduced)
	return stats
}

// LoadStats summarizes the entries created in [from, to) and counts the
// sessions that ended in it.
func LoadStats(ctx context.Context, from, to time.Time) (Stats, error) {
	entries, err := db.EntriesBetween(ctx, from, to)
	if err != nil {
		return Stats{}, err
	}
	sessions, err := db.SessionsBetween(ctx, from, to)
	if err != nil {
		return Stats{}, err
	}
	stats := Summarize(entries)
	stats.Sessions = len(sessions)
	return stats, nil
}
