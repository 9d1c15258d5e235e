package corpus

import (
	"cmp"
	"iter"
	"slices"
	"sort"
)

// Corpus is the read-only occurrence index and lexicon. It is never mutated
// after construction, so concurrent readers need no locking.
type Corpus struct {
	occurrences []WordOccurrence
	byLemma     map[string][]WordOccurrence
	lexicon     map[string]map[string]LexiconEntry
	languages   map[Language]bool
}

// NewCorpus indexes occurrences and entries. Occurrences are copied and put
// into canonical order; entries with a repeated (source, lemma) key keep the
// last value.
func NewCorpus(occurrences []WordOccurrence, entries []LexiconEntry) *Corpus {
	c := &Corpus{
		occurrences: slices.Clone(occurrences),
		byLemma:     make(map[string][]WordOccurrence),
		lexicon:     make(map[string]map[string]LexiconEntry),
		languages:   make(map[Language]bool),
	}
	slices.SortFunc(c.occurrences, compareOccurrence)
	c.occurrences = slices.CompactFunc(c.occurrences, func(a, b WordOccurrence) bool {
		return compareOccurrence(a, b) == 0
	})

	for _, o := range c.occurrences {
		c.byLemma[o.LemmaID] = append(c.byLemma[o.LemmaID], o)
		c.languages[o.Language()] = true
	}
	for _, e := range entries {
		bySource, ok := c.lexicon[e.SourceID]
		if !ok {
			bySource = make(map[string]LexiconEntry)
			c.lexicon[e.SourceID] = bySource
		}
		bySource[e.LemmaID] = e
	}
	return c
}

// Empty returns a corpus with no data.
func Empty() *Corpus {
	return NewCorpus(nil, nil)
}

// Len is the number of occurrences.
func (c *Corpus) Len() int {
	if c == nil {
		return 0
	}
	return len(c.occurrences)
}

// Loaded reports whether any text for lang is present.
func (c *Corpus) Loaded(lang Language) bool {
	if c == nil {
		return false
	}
	return c.languages[lang]
}

// OccurrencesInRange yields occurrences inside the normalized range in
// (book, chapter, verse, index) order.
func (c *Corpus) OccurrencesInRange(r BibleRange) iter.Seq[WordOccurrence] {
	return func(yield func(WordOccurrence) bool) {
		if c == nil || len(c.occurrences) == 0 {
			return
		}
		n := r.Normalize()
		start := sort.Search(len(c.occurrences), func(i int) bool {
			o := c.occurrences[i]
			return compareChapter(o.Book, o.Chapter, n.BookStart, n.ChapterStart) >= 0
		})
		for i := start; i < len(c.occurrences); i++ {
			o := c.occurrences[i]
			if compareChapter(o.Book, o.Chapter, n.BookEnd, n.ChapterEnd) > 0 {
				return
			}
			if !yield(o) {
				return
			}
		}
	}
}

// Occurrences returns every occurrence of lemmaID in canonical order. The
// returned slice must not be modified.
func (c *Corpus) Occurrences(lemmaID string) []WordOccurrence {
	if c == nil {
		return nil
	}
	return c.byLemma[lemmaID]
}

// LexiconEntry looks up an entry by lemma and source.
func (c *Corpus) LexiconEntry(lemmaID, sourceID string) (LexiconEntry, bool) {
	if c == nil {
		return LexiconEntry{}, false
	}
	e, ok := c.lexicon[sourceID][lemmaID]
	return e, ok
}

// Sources returns the lexicon source ids in ascending order.
func (c *Corpus) Sources() []string {
	if c == nil {
		return nil
	}
	out := make([]string, 0, len(c.lexicon))
	for id := range c.lexicon {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

// SourceEntries returns the entries of a source ordered by lemma id.
func (c *Corpus) SourceEntries(sourceID string) []LexiconEntry {
	if c == nil {
		return nil
	}
	bySource := c.lexicon[sourceID]
	out := make([]LexiconEntry, 0, len(bySource))
	for _, e := range bySource {
		out = append(out, e)
	}
	slices.SortFunc(out, func(a, b LexiconEntry) int {
		return cmp.Compare(a.LemmaID, b.LemmaID)
	})
	return out
}

// Resolve joins the requested source's entry with the lemma's occurrence
// data. Occurrence data always comes from the canonical text, so a textbook
// overlay borrows instances while supplying its own gloss. An unknown lemma,
// or a textbook that does not define it, yields an empty WordInfo. A lemma
// attested in the text but missing from the app lexicon still resolves, with
// an empty gloss.
func (c *Corpus) Resolve(sourceID, lemmaID string) WordInfo {
	if c == nil || lemmaID == "" {
		return WordInfo{}
	}
	if sourceID == "" {
		sourceID = AppSource
	}
	instances := c.Occurrences(lemmaID)
	entry, ok := c.LexiconEntry(lemmaID, sourceID)
	if !ok {
		if sourceID != AppSource || len(instances) == 0 {
			return WordInfo{}
		}
		entry = LexiconEntry{LemmaID: lemmaID, SourceID: AppSource}
	}

	lang := LanguageOfLemma(lemmaID)
	if len(instances) > 0 {
		lang = instances[0].Language()
	}
	return WordInfo{
		LexiconEntry: entry,
		Language:     lang,
		Instances:    instances,
	}
}
