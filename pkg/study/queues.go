package study

import (
	"cmp"
	"context"
	"slices"
	"time"

	"github.com/smith3v/scripture-vocab/pkg/db"
	"github.com/smith3v/scripture-vocab/pkg/srs"
)

// Queues splits a word list for study. Due holds reviewed words whose time
// has come, most overdue first. New holds words never studied, in list
// order. Words scheduled for later are in neither.
type Queues struct {
	Due []string `json:"due"`
	New []string `json:"new"`
}

// Ordered presents due words before new ones.
func (q Queues) Ordered() []string {
	out := make([]string, 0, len(q.Due)+len(q.New))
	out = append(out, q.Due...)
	return append(out, q.New...)
}

func (q Queues) Len() int {
	return len(q.Due) + len(q.New)
}

// LimitNew caps the number of new words. A negative n leaves q unchanged.
func (q Queues) LimitNew(n int) Queues {
	if n < 0 || len(q.New) <= n {
		return q
	}
	q.New = q.New[:n:n]
	return q
}

// Partition sorts ids into queues using their persisted states. An id with no
// state is new. Repeated ids are kept once.
func Partition(ids []string, states map[string]db.VocabWord, now time.Time) Queues {
	q := Queues{Due: []string{}, New: []string{}}
	seen := make(map[string]bool, len(ids))
	var due []db.VocabWord
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true

		word, ok := states[id]
		switch {
		case !ok || srs.IsNew(word):
			q.New = append(q.New, id)
		case srs.IsDue(word, now):
			word.ID = id
			due = append(due, word)
		}
	}

	slices.SortFunc(due, func(a, b db.VocabWord) int {
		return cmp.Or(cmp.Compare(srs.Overdue(b, now), srs.Overdue(a, now)), cmp.Compare(a.ID, b.ID))
	})
	for _, w := range due {
		q.Due = append(q.Due, w.ID)
	}
	return q
}

// DueAndNewQueues loads the states of ids and partitions them.
func DueAndNewQueues(ctx context.Context, ids []string, now time.Time) (Queues, error) {
	states, err := db.FindVocabWords(ctx, ids)
	if err != nil {
		return Queues{}, err
	}
	return Partition(ids, states, now), nil
}
