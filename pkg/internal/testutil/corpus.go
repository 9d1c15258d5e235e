package testutil

import (
	"fmt"

	"github.com/smith3v/scripture-vocab/pkg/corpus"
)

// Lemma ids used by NewTestCorpus.
const (
	LemmaBook      = "G976"  // Matthew 1:1 only
	LemmaBegetting = "G1080" // Matthew 1, 39 times
	LemmaJesus     = "G2424" // Matthew 1 and John
	LemmaGod       = "G2316" // John, 60 times
	LemmaWord      = "G3056" // John, 20 times
	LemmaLight     = "G5457" // John, 5 times
	LemmaSay       = "G3004" // Luke participles
	LemmaGlory     = "G1391" // Luke nouns
	LemmaBeginning = "H7225"
	LemmaCreate    = "H1254"
	LemmaElohim    = "H430"
	LemmaGlossOnly = "G9999" // textbook only
	TextbookSource = "mounce"
)

const (
	TagGenitiveParticiple   = "verb aorist active participle genitive masculine singular"
	TagNominativeParticiple = "verb present active participle nominative masculine singular"
	TagIndicative           = "verb aorist active indicative third singular"
	TagGenitiveNoun         = "noun genitive feminine singular"
)

type corpusBuilder struct {
	occurrences []corpus.WordOccurrence
	next        map[[3]int]int
}

func (b *corpusBuilder) add(book, chapter, verse int, lemmaID, surface, tag string) {
	key := [3]int{book, chapter, verse}
	b.occurrences = append(b.occurrences, corpus.WordOccurrence{
		Book:       book,
		Chapter:    chapter,
		Verse:      verse,
		Index:      b.next[key],
		LemmaID:    lemmaID,
		Surface:    surface,
		RawSurface: surface,
		ParsingTag: tag,
	})
	b.next[key]++
}

// NewTestCorpus builds a small deterministic corpus covering Matthew 1, Luke
// 1-3, John, and Genesis 1, with an app lexicon and one textbook overlay.
func NewTestCorpus() *corpus.Corpus {
	b := &corpusBuilder{next: make(map[[3]int]int)}

	b.add(40, 1, 1, LemmaBook, "Βίβλος", "noun nominative feminine singular")
	b.add(40, 1, 1, LemmaJesus, "Ἰησοῦ", "noun genitive masculine singular")
	for i := 0; i < 39; i++ {
		b.add(40, 1, 2+i%15, LemmaBegetting, "ἐγέννησεν", TagIndicative)
	}
	b.add(40, 1, 21, LemmaJesus, "Ἰησοῦν", "noun accusative masculine singular")
	b.add(40, 2, 1, LemmaJesus, "Ἰησοῦ", "noun genitive masculine singular")

	b.add(42, 1, 1, LemmaSay, "λέγοντος", TagGenitiveParticiple)
	b.add(42, 1, 2, LemmaSay, "λέγων", TagNominativeParticiple)
	b.add(42, 1, 3, LemmaSay, "εἶπεν", TagIndicative)
	b.add(42, 2, 9, LemmaGlory, "δόξα", TagGenitiveNoun)
	b.add(42, 2, 14, LemmaSay, "λεγόντων", "verb present active participle genitive masculine plural")
	b.add(42, 3, 4, LemmaSay, "λέγοντος", TagGenitiveParticiple)

	for i := 0; i < 60; i++ {
		b.add(43, 1+i%21, 1+i/21, LemmaGod, "θεός", "noun nominative masculine singular")
	}
	for i := 0; i < 20; i++ {
		b.add(43, 1+i%3, 10+i, LemmaWord, "λόγος", "noun nominative masculine singular")
	}
	for i := 0; i < 5; i++ {
		b.add(43, 1, 4+i, LemmaLight, "φῶς", "noun nominative neuter singular")
	}
	b.add(43, 20, 31, LemmaJesus, "Ἰησοῦς", "noun nominative masculine singular")

	b.add(1, 1, 1, LemmaBeginning, "בְּרֵאשִׁית", "noun feminine singular")
	b.add(1, 1, 1, LemmaCreate, "בָּרָא", "verb qal perfect third masculine singular")
	b.add(1, 1, 1, LemmaElohim, "אֱלֹהִים", "noun masculine plural")
	b.add(1, 1, 27, LemmaCreate, "וַיִּבְרָא", "verb qal wayyiqtol third masculine singular")

	var entries []corpus.LexiconEntry
	app := map[string][2]string{
		LemmaBook:      {"βίβλος", "book"},
		LemmaBegetting: {"γεννάω", "to beget"},
		LemmaJesus:     {"Ἰησοῦς", "Jesus"},
		LemmaGod:       {"θεός", "God"},
		LemmaWord:      {"λόγος", "word"},
		LemmaLight:     {"φῶς", "light"},
		LemmaSay:       {"λέγω", "to say"},
		LemmaGlory:     {"δόξα", "glory"},
		LemmaBeginning: {"רֵאשִׁית", "beginning"},
		LemmaCreate:    {"בָּרָא", "to create"},
		LemmaElohim:    {"אֱלֹהִים", "God"},
	}
	for id, v := range app {
		entries = append(entries, corpus.LexiconEntry{
			LemmaID:    id,
			SourceID:   corpus.AppSource,
			Lemma:      v[0],
			Definition: v[1],
		})
	}
	for i, id := range []string{LemmaWord, LemmaGod, LemmaSay, LemmaGlossOnly} {
		entries = append(entries, corpus.LexiconEntry{
			LemmaID:    id,
			SourceID:   TextbookSource,
			Lemma:      fmt.Sprintf("textbook %s", id),
			Definition: fmt.Sprintf("chapter %d gloss", i+2),
			ChapterRef: fmt.Sprint(i + 2),
		})
	}

	return corpus.NewCorpus(b.occurrences, entries)
}
