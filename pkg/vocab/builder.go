package vocab

import (
	"context"
	"time"

	"github.com/smith3v/scripture-vocab/pkg/corpus"
	"github.com/smith3v/scripture-vocab/pkg/logger"
	"github.com/smith3v/scripture-vocab/pkg/morph"
	"golang.org/x/sync/errgroup"
)

// cancelCheckEvery bounds how many occurrences are scanned between context
// checks.
const cancelCheckEvery = 512

// Builder turns ranges of the corpus into word lists. It holds no mutable
// state and may be shared between goroutines.
type Builder struct {
	corpus *corpus.Corpus
	source string
}

type Option func(*Builder)

// WithSource selects the lexicon source used to gloss words. A textbook
// source limits lists to the words that textbook defines.
func WithSource(sourceID string) Option {
	return func(b *Builder) {
		if sourceID != "" {
			b.source = sourceID
		}
	}
}

func NewBuilder(c *corpus.Corpus, opts ...Option) *Builder {
	if c == nil {
		c = corpus.Empty()
	}
	b := &Builder{corpus: c, source: corpus.AppSource}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *Builder) Source() string {
	return b.source
}

// BuildVocabList returns every lemma occurring at least r.MinOccurrences
// times inside r. Each word carries all of its corpus occurrences, not only
// those inside the range. The only error is cancellation of ctx.
func (b *Builder) BuildVocabList(ctx context.Context, r corpus.BibleRange) (corpus.WordSet, error) {
	started := time.Now()
	r = r.Normalize()

	counts := make(map[string]int)
	var order []string
	n := 0
	for o := range b.corpus.OccurrencesInRange(r) {
		if n++; n%cancelCheckEvery == 0 && ctx.Err() != nil {
			return nil, context.Cause(ctx)
		}
		if counts[o.LemmaID] == 0 {
			order = append(order, o.LemmaID)
		}
		counts[o.LemmaID]++
	}
	if err := ctx.Err(); err != nil {
		return nil, context.Cause(ctx)
	}

	set := make(corpus.WordSet)
	for _, id := range order {
		if counts[id] < r.MinOccurrences {
			continue
		}
		set.Add(b.corpus.Resolve(b.source, id))
	}

	logger.Debug("built vocab list",
		"range", r.String(),
		"source", b.source,
		"scanned", n,
		"lemmas", len(order),
		"words", len(set),
		"elapsed", time.Since(started),
	)
	return set, nil
}

// ParsingQuery selects occurrences for parsing practice. An empty Language
// accepts the language of the range.
type ParsingQuery struct {
	Range    corpus.BibleRange `json:"range"`
	Language corpus.Language   `json:"language,omitempty"`
	Filter   morph.Filter      `json:"filter"`
}

// BuildParsingList returns the occurrences inside q.Range whose classified tag
// passes q.Filter, in canonical order.
func (b *Builder) BuildParsingList(ctx context.Context, q ParsingQuery) ([]corpus.WordOccurrence, error) {
	r := q.Range.Normalize()
	if q.Language != "" && q.Language != r.Language() {
		return []corpus.WordOccurrence{}, nil
	}

	out := []corpus.WordOccurrence{}
	n := 0
	for o := range b.corpus.OccurrencesInRange(r) {
		if n++; n%cancelCheckEvery == 0 && ctx.Err() != nil {
			return nil, context.Cause(ctx)
		}
		if q.Filter.Match(morph.ClassifyOccurrence(o, "")) {
			out = append(out, o)
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, context.Cause(ctx)
	}
	logger.Debug("built parsing list", "range", r.String(), "scanned", n, "matched", len(out))
	return out, nil
}

// BuildUnion scans ranges concurrently and unions the results by lemma id.
func (b *Builder) BuildUnion(ctx context.Context, ranges ...corpus.BibleRange) (corpus.WordSet, error) {
	results := make([]corpus.WordSet, len(ranges))
	g, gctx := errgroup.WithContext(ctx)
	for i, r := range ranges {
		g.Go(func() error {
			set, err := b.BuildVocabList(gctx, r)
			if err != nil {
				return err
			}
			results[i] = set
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		if cause := context.Cause(ctx); cause != nil {
			return nil, cause
		}
		return nil, err
	}
	return make(corpus.WordSet).Union(results...), nil
}
