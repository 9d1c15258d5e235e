package morph

import (
	"strings"

	"github.com/smith3v/scripture-vocab/pkg/corpus"
)

// Hint narrows classification. An empty WordType is inferred from the tag. An
// empty Language classifies both the Greek and the Hebrew verbal facets.
type Hint struct {
	Language corpus.Language
	WordType WordType
}

// Parsable is the classified form of a parsing tag. Every facet holds all the
// values whose token occurs in the tag, so a tag reading "imperfect" carries
// both TenseImperfect and TensePerfect.
type Parsable struct {
	WordType  WordType
	Tenses    []Tense
	Voices    []Voice
	Moods     []Mood
	Stems     []Stem
	VerbTypes []VerbType
	Cases     []Case
	Genders   []Gender
	Numbers   []Number
	Persons   []Person
}

// Classify matches every known token against the lowercased tag.
func Classify(tag string, hint Hint) Parsable {
	tag = strings.ToLower(tag)

	p := Parsable{
		WordType: hint.WordType,
		Cases:    matchTokens(tag, Cases),
		Genders:  matchTokens(tag, Genders),
		Numbers:  matchTokens(tag, Numbers),
		Persons:  matchTokens(tag, Persons),
	}
	if p.WordType == "" {
		p.WordType = inferWordType(tag)
	}

	greek := hint.Language == "" || hint.Language == corpus.LanguageGreek
	hebrew := hint.Language == "" || hint.Language == corpus.LanguageHebrew
	if greek {
		p.Tenses = matchTokens(tag, Tenses)
		p.Voices = matchTokens(tag, Voices)
		p.Moods = matchTokens(tag, Moods)
	}
	if hebrew {
		p.Stems = matchTokens(tag, Stems)
		p.VerbTypes = matchTokens(tag, VerbTypes)
	}
	return p
}

// ClassifyOccurrence classifies an occurrence's tag using the language of its
// book.
func ClassifyOccurrence(o corpus.WordOccurrence, wordType WordType) Parsable {
	return Classify(o.ParsingTag, Hint{Language: o.Language(), WordType: wordType})
}

func inferWordType(tag string) WordType {
	switch {
	case strings.Contains(tag, string(WordTypeNoun)):
		return WordTypeNoun
	case strings.Contains(tag, string(WordTypeVerb)):
		return WordTypeVerb
	default:
		return WordTypeOther
	}
}

func matchTokens[T ~string](tag string, all []T) []T {
	var out []T
	for _, v := range all {
		if strings.Contains(tag, string(v)) {
			out = append(out, v)
		}
	}
	return out
}
