package vocab

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/smith3v/scripture-vocab/pkg/corpus"
	"github.com/smith3v/scripture-vocab/pkg/logger"
)

// ErrSuperseded is returned to a caller whose build was replaced by a newer
// request.
var ErrSuperseded = errors.New("vocab build superseded")

// UnionBuilder builds the union of the lists of several ranges.
type UnionBuilder interface {
	BuildUnion(ctx context.Context, ranges ...corpus.BibleRange) (corpus.WordSet, error)
}

// Coordinator runs one build at a time. A new request cancels the one in
// flight, and a request for the range set that produced the last result is
// answered without rebuilding.
type Coordinator struct {
	builder UnionBuilder

	mu      sync.Mutex
	seq     uint64
	cancel  context.CancelCauseFunc
	lastKey string
	last    corpus.WordSet
}

func NewCoordinator(builder UnionBuilder) *Coordinator {
	return &Coordinator{builder: builder}
}

func (c *Coordinator) Build(ctx context.Context, ranges ...corpus.BibleRange) (corpus.WordSet, error) {
	key := RangeSetKey(ranges)

	c.mu.Lock()
	if c.cancel != nil {
		c.cancel(ErrSuperseded)
		c.cancel = nil
	}
	c.seq++
	seq := c.seq
	if c.last != nil && c.lastKey == key {
		set := c.last.Union()
		c.mu.Unlock()
		logger.Debug("vocab build served from memo", "ranges", key)
		return set, nil
	}
	buildCtx, cancel := context.WithCancelCause(ctx)
	c.cancel = cancel
	c.mu.Unlock()

	set, err := c.builder.BuildUnion(buildCtx, ranges...)

	c.mu.Lock()
	defer c.mu.Unlock()
	if seq != c.seq {
		cancel(ErrSuperseded)
		logger.Debug("vocab build superseded", "ranges", key)
		return nil, ErrSuperseded
	}
	c.cancel = nil
	cancel(nil)
	if err != nil {
		return nil, err
	}
	c.lastKey, c.last = key, set
	return set.Union(), nil
}

// Invalidate drops the memoized result.
func (c *Coordinator) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastKey, c.last = "", nil
}

// RangeSetKey identifies a set of ranges independent of order and duplicates.
func RangeSetKey(ranges []corpus.BibleRange) string {
	normalized := make([]corpus.BibleRange, 0, len(ranges))
	for _, r := range ranges {
		normalized = append(normalized, r.Normalize())
	}
	slices.SortFunc(normalized, func(a, b corpus.BibleRange) int {
		return cmp.Or(
			cmp.Compare(a.BookStart, b.BookStart),
			cmp.Compare(a.ChapterStart, b.ChapterStart),
			cmp.Compare(a.BookEnd, b.BookEnd),
			cmp.Compare(a.ChapterEnd, b.ChapterEnd),
			cmp.Compare(a.MinOccurrences, b.MinOccurrences),
		)
	})
	normalized = slices.Compact(normalized)

	parts := make([]string, 0, len(normalized))
	for _, r := range normalized {
		parts = append(parts, fmt.Sprintf("%d.%d-%d.%d/%d", r.BookStart, r.ChapterStart, r.BookEnd, r.ChapterEnd, r.MinOccurrences))
	}
	return strings.Join(parts, ";")
}
