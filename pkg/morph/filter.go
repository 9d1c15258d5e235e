package morph

import "slices"

// Filter selects classified occurrences. Each facet passes when the
// classified values intersect the requested ones; an empty facet is no
// constraint.
type Filter struct {
	WordType  WordType   `json:"word_type,omitempty"`
	Tenses    []Tense    `json:"tenses,omitempty"`
	Voices    []Voice    `json:"voices,omitempty"`
	Moods     []Mood     `json:"moods,omitempty"`
	Stems     []Stem     `json:"stems,omitempty"`
	VerbTypes []VerbType `json:"verb_types,omitempty"`
	Cases     []Case     `json:"cases,omitempty"`
	Genders   []Gender   `json:"genders,omitempty"`
	Numbers   []Number   `json:"numbers,omitempty"`
	Persons   []Person   `json:"persons,omitempty"`
}

func (f Filter) Match(p Parsable) bool {
	if f.WordType != "" && f.WordType != p.WordType {
		return false
	}
	return anyOf(f.Tenses, p.Tenses) &&
		anyOf(f.Voices, p.Voices) &&
		anyOf(f.Moods, p.Moods) &&
		anyOf(f.Stems, p.Stems) &&
		anyOf(f.VerbTypes, p.VerbTypes) &&
		anyOf(f.Cases, p.Cases) &&
		anyOf(f.Genders, p.Genders) &&
		anyOf(f.Numbers, p.Numbers) &&
		anyOf(f.Persons, p.Persons)
}

// IsEmpty reports whether the filter accepts everything.
func (f Filter) IsEmpty() bool {
	return f.WordType == "" &&
		len(f.Tenses) == 0 && len(f.Voices) == 0 && len(f.Moods) == 0 &&
		len(f.Stems) == 0 && len(f.VerbTypes) == 0 &&
		len(f.Cases) == 0 && len(f.Genders) == 0 && len(f.Numbers) == 0 && len(f.Persons) == 0
}

func anyOf[T comparable](want, got []T) bool {
	if len(want) == 0 {
		return true
	}
	for _, v := range got {
		if slices.Contains(want, v) {
			return true
		}
	}
	return false
}
