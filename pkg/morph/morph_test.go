package morph

import (
	"errors"
	"slices"
	"testing"

	"github.com/smith3v/scripture-vocab/pkg/corpus"
)

func TestClassifyGreekVerb(t *testing.T) {
	p := Classify("Verb Aorist Active Participle Genitive Masculine Singular", Hint{Language: corpus.LanguageGreek})

	if p.WordType != WordTypeVerb {
		t.Fatalf("expected verb, got %s", p.WordType)
	}
	if !slices.Equal(p.Tenses, []Tense{TenseAorist}) {
		t.Fatalf("expected aorist, got %v", p.Tenses)
	}
	if !slices.Equal(p.Moods, []Mood{MoodParticiple}) {
		t.Fatalf("expected participle, got %v", p.Moods)
	}
	if !slices.Equal(p.Cases, []Case{CaseGenitive}) || !slices.Equal(p.Genders, []Gender{GenderMasculine}) {
		t.Fatalf("unexpected case/gender: %v %v", p.Cases, p.Genders)
	}
	if len(p.Stems) != 0 || len(p.VerbTypes) != 0 {
		t.Fatalf("expected no hebrew facets for greek, got %v %v", p.Stems, p.VerbTypes)
	}
}

func TestClassifyKeepsOverlappingTokens(t *testing.T) {
	p := Classify("verb imperfect active indicative third singular", Hint{Language: corpus.LanguageGreek})
	if !slices.Equal(p.Tenses, []Tense{TenseImperfect, TensePerfect}) {
		t.Fatalf("expected imperfect and perfect, got %v", p.Tenses)
	}

	p = Classify("verb pluperfect", Hint{Language: corpus.LanguageGreek})
	if !slices.Equal(p.Tenses, []Tense{TensePerfect, TensePluperfect}) {
		t.Fatalf("expected perfect and pluperfect, got %v", p.Tenses)
	}
}

func TestClassifyHebrewVerb(t *testing.T) {
	p := Classify("verb qal infinitive construct", Hint{Language: corpus.LanguageHebrew})
	if !slices.Equal(p.Stems, []Stem{StemQal}) {
		t.Fatalf("expected qal, got %v", p.Stems)
	}
	if !slices.Equal(p.VerbTypes, []VerbType{VerbTypeInfinitiveConstruct}) {
		t.Fatalf("expected infinitive construct, got %v", p.VerbTypes)
	}
	if len(p.Moods) != 0 {
		t.Fatalf("expected no greek moods for hebrew, got %v", p.Moods)
	}
}

func TestClassifyWordType(t *testing.T) {
	tests := []struct {
		tag  string
		hint WordType
		want WordType
	}{
		{"noun dative feminine singular", "", WordTypeNoun},
		{"verb present active", "", WordTypeVerb},
		{"preposition", "", WordTypeOther},
		{"pronoun genitive", "", WordTypeNoun},
		{"preposition", WordTypeVerb, WordTypeVerb},
	}
	for _, tt := range tests {
		if got := Classify(tt.tag, Hint{WordType: tt.hint}).WordType; got != tt.want {
			t.Fatalf("%q: expected %s, got %s", tt.tag, tt.want, got)
		}
	}
}

func TestClassifyIsIdempotent(t *testing.T) {
	tag := "verb qal perfect third masculine singular"
	a := Classify(tag, Hint{})
	b := Classify(tag, Hint{})
	if !slices.Equal(a.VerbTypes, b.VerbTypes) || !slices.Equal(a.Persons, b.Persons) || a.WordType != b.WordType {
		t.Fatalf("expected identical results, got %+v and %+v", a, b)
	}
	if !slices.Equal(a.Stems, []Stem{StemQal}) {
		t.Fatalf("expected both languages without hint, got stems %v", a.Stems)
	}
}

func TestFilterMatch(t *testing.T) {
	participle := Classify("verb present active participle genitive masculine plural", Hint{Language: corpus.LanguageGreek})
	finite := Classify("verb present active indicative third plural", Hint{Language: corpus.LanguageGreek})

	f := Filter{WordType: WordTypeVerb, Moods: []Mood{MoodParticiple}, Cases: []Case{CaseGenitive}}
	if !f.Match(participle) {
		t.Fatal("expected genitive participle to match")
	}
	if f.Match(finite) {
		t.Fatal("expected indicative to be rejected")
	}

	anyCase := Filter{Cases: []Case{CaseNominative, CaseGenitive}}
	if !anyCase.Match(participle) {
		t.Fatal("expected any-of case match")
	}
	if !(Filter{}).Match(finite) || !(Filter{}).IsEmpty() {
		t.Fatal("expected empty filter to accept everything")
	}
	if (Filter{WordType: WordTypeNoun}).Match(finite) {
		t.Fatal("expected word type mismatch to reject")
	}
}

func TestParseHelpers(t *testing.T) {
	if v, err := ParseVerbType(" Infinitive_Construct "); err != nil || v != VerbTypeInfinitiveConstruct {
		t.Fatalf("expected infinitive construct, got %q %v", v, err)
	}
	if _, err := ParseMood("gerund"); !errors.Is(err, ErrUnknownValue) {
		t.Fatalf("expected ErrUnknownValue, got %v", err)
	}

	cases, err := ParseList("genitive, dative,", ParseCase)
	if err != nil {
		t.Fatalf("ParseList returned error: %v", err)
	}
	if !slices.Equal(cases, []Case{CaseGenitive, CaseDative}) {
		t.Fatalf("unexpected cases %v", cases)
	}
	if list, err := ParseList("", ParseStem); err != nil || len(list) != 0 {
		t.Fatalf("expected empty list, got %v %v", list, err)
	}
}
