package corpus

import (
	"slices"
	"strings"
)

// AppSource is the built-in lexicon. Other sources are textbook overlays.
const AppSource = "app"

// WordOccurrence is one attested word at a verse position.
type WordOccurrence struct {
	Book       int    `json:"book"`
	Chapter    int    `json:"chapter"`
	Verse      int    `json:"verse"`
	Index      int    `json:"index"`
	LemmaID    string `json:"lemma_id"`
	Surface    string `json:"surface"`
	RawSurface string `json:"raw_surface"`
	ParsingTag string `json:"parsing_tag"`
}

// Language is derived from the book.
func (o WordOccurrence) Language() Language {
	return LanguageOf(o.Book)
}

func compareOccurrence(a, b WordOccurrence) int {
	switch {
	case a.Book != b.Book:
		return a.Book - b.Book
	case a.Chapter != b.Chapter:
		return a.Chapter - b.Chapter
	case a.Verse != b.Verse:
		return a.Verse - b.Verse
	default:
		return a.Index - b.Index
	}
}

type LexiconEntry struct {
	LemmaID    string `json:"lemma_id"`
	SourceID   string `json:"source_id"`
	Lemma      string `json:"lemma"`
	Definition string `json:"definition"`
	Usage      string `json:"usage"`
	ChapterRef string `json:"chapter_ref,omitempty"`
}

// WordInfo is a lexicon entry joined with every corpus occurrence of its
// lemma. Identity is LemmaID.
type WordInfo struct {
	LexiconEntry
	Language  Language         `json:"language"`
	Instances []WordOccurrence `json:"instances"`
}

func (w WordInfo) IsZero() bool {
	return w.LemmaID == ""
}

// Frequency is the number of corpus-wide occurrences.
func (w WordInfo) Frequency() int {
	return len(w.Instances)
}

// WordSet holds WordInfo values deduplicated by lemma id.
type WordSet map[string]WordInfo

func NewWordSet(words ...WordInfo) WordSet {
	set := make(WordSet, len(words))
	for _, w := range words {
		set.Add(w)
	}
	return set
}

// Add keeps the first value seen for an id so instances are never merged twice.
func (s WordSet) Add(w WordInfo) {
	if w.IsZero() {
		return
	}
	if _, ok := s[w.LemmaID]; ok {
		return
	}
	s[w.LemmaID] = w
}

func (s WordSet) Contains(id string) bool {
	_, ok := s[id]
	return ok
}

// Union returns a new set with the members of s and every other set.
func (s WordSet) Union(others ...WordSet) WordSet {
	out := make(WordSet, len(s))
	for _, w := range s {
		out.Add(w)
	}
	for _, other := range others {
		for _, w := range other {
			out.Add(w)
		}
	}
	return out
}

// IsSubsetOf reports whether every id in s is also in other.
func (s WordSet) IsSubsetOf(other WordSet) bool {
	for id := range s {
		if !other.Contains(id) {
			return false
		}
	}
	return true
}

// IDs returns the member ids in ascending order.
func (s WordSet) IDs() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Sorted returns the members ordered by id.
func (s WordSet) Sorted() []WordInfo {
	out := make([]WordInfo, 0, len(s))
	for _, id := range s.IDs() {
		out = append(out, s[id])
	}
	return out
}

// ByFrequency returns the members ordered by descending corpus frequency,
// ties broken by id.
func (s WordSet) ByFrequency() []WordInfo {
	out := s.Sorted()
	slices.SortStableFunc(out, func(a, b WordInfo) int {
		return b.Frequency() - a.Frequency()
	})
	return out
}

// LanguageOfLemma infers the language from the id prefix: G for Greek, H for
// Hebrew, anything else is custom.
func LanguageOfLemma(id string) Language {
	switch {
	case strings.HasPrefix(id, "G"):
		return LanguageGreek
	case strings.HasPrefix(id, "H"):
		return LanguageHebrew
	default:
		return LanguageCustom
	}
}
