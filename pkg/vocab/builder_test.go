package vocab

import (
	"context"
	"errors"
	"reflect"
	"slices"
	"testing"

	"github.com/smith3v/scripture-vocab/pkg/corpus"
	"github.com/smith3v/scripture-vocab/pkg/internal/testutil"
	"github.com/smith3v/scripture-vocab/pkg/morph"
)

func TestBuildVocabListWholeChapter(t *testing.T) {
	b := NewBuilder(testutil.NewTestCorpus())
	matthew1 := corpus.Chapters(40, 1, 1, 0)

	set, err := b.BuildVocabList(context.Background(), matthew1)
	if err != nil {
		t.Fatalf("BuildVocabList returned error: %v", err)
	}
	want := []string{testutil.LemmaBegetting, testutil.LemmaBook, testutil.LemmaJesus}
	if !slices.Equal(set.IDs(), want) {
		t.Fatalf("expected %v, got %v", want, set.IDs())
	}

	jesus := set[testutil.LemmaJesus]
	if jesus.Frequency() != 4 {
		t.Fatalf("expected all 4 corpus occurrences of Jesus, got %d", jesus.Frequency())
	}
	if jesus.Definition != "Jesus" || jesus.Language != corpus.LanguageGreek {
		t.Fatalf("expected app gloss, got %+v", jesus.LexiconEntry)
	}

	again, err := b.BuildVocabList(context.Background(), matthew1)
	if err != nil {
		t.Fatalf("second build returned error: %v", err)
	}
	if !reflect.DeepEqual(set, again) {
		t.Fatal("expected identical output for identical input")
	}
}

func TestBuildVocabListThresholds(t *testing.T) {
	b := NewBuilder(testutil.NewTestCorpus())
	john := corpus.WholeBook(43, 0)

	var previous corpus.WordSet
	for _, min := range []int{0, 1, 5, 10, 20, 50, 61} {
		r := john
		r.MinOccurrences = min
		set, err := b.BuildVocabList(context.Background(), r)
		if err != nil {
			t.Fatalf("threshold %d: %v", min, err)
		}
		if previous != nil && !set.IsSubsetOf(previous) {
			t.Fatalf("threshold %d: expected %v to be a subset of %v", min, set.IDs(), previous.IDs())
		}
		previous = set
	}

	r := john
	r.MinOccurrences = 50
	fifty, _ := b.BuildVocabList(context.Background(), r)
	r.MinOccurrences = 10
	ten, _ := b.BuildVocabList(context.Background(), r)
	if !fifty.IsSubsetOf(ten) || len(fifty) >= len(ten) {
		t.Fatalf("expected strict subset, got %v and %v", fifty.IDs(), ten.IDs())
	}
	if !slices.Equal(fifty.IDs(), []string{testutil.LemmaGod}) {
		t.Fatalf("expected only God at 50, got %v", fifty.IDs())
	}

	r.MinOccurrences = 61
	if none, _ := b.BuildVocabList(context.Background(), r); len(none) != 0 {
		t.Fatalf("expected empty set above max frequency, got %v", none.IDs())
	}
}

func TestBuildVocabListEmptyRange(t *testing.T) {
	b := NewBuilder(testutil.NewTestCorpus())
	set, err := b.BuildVocabList(context.Background(), corpus.WholeBook(44, 0))
	if err != nil {
		t.Fatalf("expected no error for empty range, got %v", err)
	}
	if set == nil || len(set) != 0 {
		t.Fatalf("expected empty non-nil set, got %v", set)
	}

	set, err = NewBuilder(nil).BuildVocabList(context.Background(), corpus.WholeBook(40, 0))
	if err != nil || len(set) != 0 {
		t.Fatalf("expected empty set from empty corpus, got %v %v", set, err)
	}
}

func TestBuildVocabListCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewBuilder(testutil.NewTestCorpus()).BuildVocabList(ctx, corpus.WholeTestament(corpus.NewTestament, 0))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestBuildVocabListWithTextbookSource(t *testing.T) {
	b := NewBuilder(testutil.NewTestCorpus(), WithSource(testutil.TextbookSource))
	set, err := b.BuildVocabList(context.Background(), corpus.WholeBook(43, 0))
	if err != nil {
		t.Fatalf("BuildVocabList returned error: %v", err)
	}
	if !slices.Equal(set.IDs(), []string{testutil.LemmaGod, testutil.LemmaWord}) {
		t.Fatalf("expected only textbook words, got %v", set.IDs())
	}
	god := set[testutil.LemmaGod]
	if god.SourceID != testutil.TextbookSource || god.Frequency() != 60 {
		t.Fatalf("expected textbook gloss with app instances, got %+v", god.LexiconEntry)
	}
}

func TestBuildUnionMatchesCombinedScan(t *testing.T) {
	b := NewBuilder(testutil.NewTestCorpus())
	ctx := context.Background()

	r1 := corpus.Chapters(43, 1, 10, 0)
	r2 := corpus.Chapters(43, 11, 21, 0)
	union, err := b.BuildUnion(ctx, r1, r2)
	if err != nil {
		t.Fatalf("BuildUnion returned error: %v", err)
	}
	combined, err := b.BuildVocabList(ctx, corpus.WholeBook(43, 0))
	if err != nil {
		t.Fatalf("BuildVocabList returned error: %v", err)
	}
	if !reflect.DeepEqual(union, combined) {
		t.Fatalf("expected union %v to equal combined %v", union.IDs(), combined.IDs())
	}

	mixed, err := b.BuildUnion(ctx, corpus.Chapters(40, 1, 1, 0), corpus.Chapters(1, 1, 1, 0))
	if err != nil {
		t.Fatalf("BuildUnion returned error: %v", err)
	}
	if !mixed.Contains(testutil.LemmaCreate) || !mixed.Contains(testutil.LemmaBook) {
		t.Fatalf("expected greek and hebrew words, got %v", mixed.IDs())
	}
	if mixed[testutil.LemmaCreate].Frequency() != 2 {
		t.Fatalf("expected instances not to be double counted, got %d", mixed[testutil.LemmaCreate].Frequency())
	}

	if empty, err := b.BuildUnion(ctx); err != nil || len(empty) != 0 {
		t.Fatalf("expected empty union, got %v %v", empty, err)
	}
}

func TestBuildParsingListGenitiveParticiples(t *testing.T) {
	b := NewBuilder(testutil.NewTestCorpus())
	q := ParsingQuery{
		Range:    corpus.Chapters(42, 1, 2, 0),
		Language: corpus.LanguageGreek,
		Filter: morph.Filter{
			WordType: morph.WordTypeVerb,
			Moods:    []morph.Mood{morph.MoodParticiple},
			Cases:    []morph.Case{morph.CaseGenitive},
		},
	}

	got, err := b.BuildParsingList(context.Background(), q)
	if err != nil {
		t.Fatalf("BuildParsingList returned error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 occurrences, got %+v", got)
	}
	if got[0].Chapter != 1 || got[1].Chapter != 2 {
		t.Fatalf("expected canonical order, got %+v", got)
	}
	for _, o := range got {
		p := morph.ClassifyOccurrence(o, "")
		if !slices.Contains(p.Moods, morph.MoodParticiple) || !slices.Contains(p.Cases, morph.CaseGenitive) {
			t.Fatalf("unexpected occurrence %+v", o)
		}
	}

	q.Language = corpus.LanguageHebrew
	if none, err := b.BuildParsingList(context.Background(), q); err != nil || len(none) != 0 {
		t.Fatalf("expected no hebrew results in Luke, got %v %v", none, err)
	}
}

func TestBuildParsingListHebrewStem(t *testing.T) {
	b := NewBuilder(testutil.NewTestCorpus())
	got, err := b.BuildParsingList(context.Background(), ParsingQuery{
		Range:  corpus.WholeBook(1, 0),
		Filter: morph.Filter{Stems: []morph.Stem{morph.StemQal}, VerbTypes: []morph.VerbType{morph.VerbTypeWayyiqtol}},
	})
	if err != nil {
		t.Fatalf("BuildParsingList returned error: %v", err)
	}
	if len(got) != 1 || got[0].Verse != 27 {
		t.Fatalf("expected Genesis 1:27 wayyiqtol, got %+v", got)
	}
}

func TestPresetsAndTextbookChapters(t *testing.T) {
	b := NewBuilder(testutil.NewTestCorpus())
	ctx := context.Background()

	set, err := b.BuildPreset(ctx, "Greek-NT-50")
	if err != nil {
		t.Fatalf("BuildPreset returned error: %v", err)
	}
	if !slices.Equal(set.IDs(), []string{testutil.LemmaGod}) {
		t.Fatalf("expected God only, got %v", set.IDs())
	}
	if _, err := b.BuildPreset(ctx, "latin-vulgate"); !errors.Is(err, ErrUnknownPreset) {
		t.Fatalf("expected ErrUnknownPreset, got %v", err)
	}
	if p, ok := PresetByName("hebrew-ot-200"); !ok || p.Range().Testament() != corpus.OldTestament {
		t.Fatalf("expected hebrew preset over the old testament, got %+v", p)
	}

	through3, err := b.BuildTextbookChapters(ctx, testutil.TextbookSource, 3)
	if err != nil {
		t.Fatalf("BuildTextbookChapters returned error: %v", err)
	}
	if !slices.Equal(through3.IDs(), []string{testutil.LemmaGod, testutil.LemmaWord}) {
		t.Fatalf("expected chapters 2-3 words, got %v", through3.IDs())
	}
	all, _ := b.BuildTextbookChapters(ctx, testutil.TextbookSource, 0)
	if len(all) != 4 || !all.Contains(testutil.LemmaGlossOnly) {
		t.Fatalf("expected every textbook word, got %v", all.IDs())
	}
	if app, _ := b.BuildTextbookChapters(ctx, corpus.AppSource, 10); len(app) != 0 {
		t.Fatalf("expected no chapter words for the app source, got %v", app.IDs())
	}
}
