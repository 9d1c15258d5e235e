package morph

import (
	"errors"
	"fmt"
	"strings"
)

type WordType string

const (
	WordTypeNoun  WordType = "noun"
	WordTypeVerb  WordType = "verb"
	WordTypeOther WordType = "other"
)

// Greek verbal facets.
type (
	Tense string
	Voice string
	Mood  string
)

const (
	TensePresent    Tense = "present"
	TenseImperfect  Tense = "imperfect"
	TenseFuture     Tense = "future"
	TenseAorist     Tense = "aorist"
	TensePerfect    Tense = "perfect"
	TensePluperfect Tense = "pluperfect"
)

const (
	VoiceActive  Voice = "active"
	VoiceMiddle  Voice = "middle"
	VoicePassive Voice = "passive"
)

const (
	MoodIndicative  Mood = "indicative"
	MoodSubjunctive Mood = "subjunctive"
	MoodOptative    Mood = "optative"
	MoodImperative  Mood = "imperative"
	MoodInfinitive  Mood = "infinitive"
	MoodParticiple  Mood = "participle"
)

// Hebrew verbal facets.
type (
	Stem     string
	VerbType string
)

const (
	StemQal      Stem = "qal"
	StemNiphal   Stem = "niphal"
	StemPiel     Stem = "piel"
	StemPual     Stem = "pual"
	StemHiphil   Stem = "hiphil"
	StemHophal   Stem = "hophal"
	StemHithpael Stem = "hithpael"
)

const (
	VerbTypePerfect             VerbType = "perfect"
	VerbTypeImperfect           VerbType = "imperfect"
	VerbTypeWayyiqtol           VerbType = "wayyiqtol"
	VerbTypeWeqatal             VerbType = "weqatal"
	VerbTypeImperative          VerbType = "imperative"
	VerbTypeJussive             VerbType = "jussive"
	VerbTypeCohortative         VerbType = "cohortative"
	VerbTypeInfinitiveConstruct VerbType = "infinitive construct"
	VerbTypeInfinitiveAbsolute  VerbType = "infinitive absolute"
	VerbTypeParticiple          VerbType = "participle"
)

// Facets shared by both languages.
type (
	Case   string
	Gender string
	Number string
	Person string
)

const (
	CaseNominative Case = "nominative"
	CaseGenitive   Case = "genitive"
	CaseDative     Case = "dative"
	CaseAccusative Case = "accusative"
	CaseVocative   Case = "vocative"
)

const (
	GenderMasculine Gender = "masculine"
	GenderFeminine  Gender = "feminine"
	GenderNeuter    Gender = "neuter"
)

const (
	NumberSingular Number = "singular"
	NumberPlural   Number = "plural"
	NumberDual     Number = "dual"
)

const (
	PersonFirst  Person = "first"
	PersonSecond Person = "second"
	PersonThird  Person = "third"
)

var (
	WordTypes = []WordType{WordTypeNoun, WordTypeVerb, WordTypeOther}
	Tenses    = []Tense{TensePresent, TenseImperfect, TenseFuture, TenseAorist, TensePerfect, TensePluperfect}
	Voices    = []Voice{VoiceActive, VoiceMiddle, VoicePassive}
	Moods     = []Mood{MoodIndicative, MoodSubjunctive, MoodOptative, MoodImperative, MoodInfinitive, MoodParticiple}
	Stems     = []Stem{StemQal, StemNiphal, StemPiel, StemPual, StemHiphil, StemHophal, StemHithpael}
	VerbTypes = []VerbType{
		VerbTypePerfect, VerbTypeImperfect, VerbTypeWayyiqtol, VerbTypeWeqatal, VerbTypeImperative,
		VerbTypeJussive, VerbTypeCohortative, VerbTypeInfinitiveConstruct, VerbTypeInfinitiveAbsolute,
		VerbTypeParticiple,
	}
	Cases   = []Case{CaseNominative, CaseGenitive, CaseDative, CaseAccusative, CaseVocative}
	Genders = []Gender{GenderMasculine, GenderFeminine, GenderNeuter}
	Numbers = []Number{NumberSingular, NumberPlural, NumberDual}
	Persons = []Person{PersonFirst, PersonSecond, PersonThird}
)

var ErrUnknownValue = errors.New("unknown facet value")

func ParseWordType(s string) (WordType, error) { return parseValue("word type", s, WordTypes) }
func ParseTense(s string) (Tense, error)       { return parseValue("tense", s, Tenses) }
func ParseVoice(s string) (Voice, error)       { return parseValue("voice", s, Voices) }
func ParseMood(s string) (Mood, error)         { return parseValue("mood", s, Moods) }
func ParseStem(s string) (Stem, error)         { return parseValue("stem", s, Stems) }
func ParseVerbType(s string) (VerbType, error) { return parseValue("verb type", s, VerbTypes) }
func ParseCase(s string) (Case, error)         { return parseValue("case", s, Cases) }
func ParseGender(s string) (Gender, error)     { return parseValue("gender", s, Genders) }
func ParseNumber(s string) (Number, error)     { return parseValue("number", s, Numbers) }
func ParsePerson(s string) (Person, error)     { return parseValue("person", s, Persons) }

// ParseList parses a comma separated list of values. An empty string yields
// an empty list.
func ParseList[T ~string](s string, parse func(string) (T, error)) ([]T, error) {
	var out []T
	for _, part := range strings.Split(s, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		v, err := parse(part)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func parseValue[T ~string](facet, s string, all []T) (T, error) {
	key := strings.Join(strings.Fields(strings.ToLower(s)), " ")
	key = strings.ReplaceAll(key, "_", " ")
	for _, v := range all {
		if string(v) == key {
			return v, nil
		}
	}
	var zero T
	return zero, fmt.Errorf("%s %q: %w", facet, s, ErrUnknownValue)
}
