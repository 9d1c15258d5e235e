package vocab

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/smith3v/scripture-vocab/pkg/corpus"
)

var ErrUnknownPreset = errors.New("unknown preset")

// Preset is a named frequency list over a whole testament.
type Preset struct {
	Name           string           `json:"name"`
	Title          string           `json:"title"`
	Testament      corpus.Testament `json:"testament"`
	MinOccurrences int              `json:"min_occurrences"`
}

func (p Preset) Range() corpus.BibleRange {
	return corpus.WholeTestament(p.Testament, p.MinOccurrences)
}

var presets = []Preset{
	{"greek-nt-100", "Greek New Testament, 100+ occurrences", corpus.NewTestament, 100},
	{"greek-nt-50", "Greek New Testament, 50+ occurrences", corpus.NewTestament, 50},
	{"greek-nt-30", "Greek New Testament, 30+ occurrences", corpus.NewTestament, 30},
	{"greek-nt-10", "Greek New Testament, 10+ occurrences", corpus.NewTestament, 10},
	{"hebrew-ot-500", "Hebrew Old Testament, 500+ occurrences", corpus.OldTestament, 500},
	{"hebrew-ot-200", "Hebrew Old Testament, 200+ occurrences", corpus.OldTestament, 200},
	{"hebrew-ot-100", "Hebrew Old Testament, 100+ occurrences", corpus.OldTestament, 100},
	{"hebrew-ot-50", "Hebrew Old Testament, 50+ occurrences", corpus.OldTestament, 50},
}

func Presets() []Preset {
	return slices.Clone(presets)
}

func PresetByName(name string) (Preset, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, p := range presets {
		if p.Name == name {
			return p, true
		}
	}
	return Preset{}, false
}

func (b *Builder) BuildPreset(ctx context.Context, name string) (corpus.WordSet, error) {
	p, ok := PresetByName(name)
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownPreset, name)
	}
	return b.BuildVocabList(ctx, p.Range())
}

// BuildTextbookChapters returns the words a textbook introduces in chapters
// 1 through throughChapter. Entries without a numeric chapter are skipped. A
// throughChapter of 0 or less selects every chapter.
func (b *Builder) BuildTextbookChapters(ctx context.Context, sourceID string, throughChapter int) (corpus.WordSet, error) {
	set := make(corpus.WordSet)
	for _, e := range b.corpus.SourceEntries(sourceID) {
		if err := ctx.Err(); err != nil {
			return nil, context.Cause(ctx)
		}
		chapter, err := strconv.Atoi(e.ChapterRef)
		if err != nil || chapter <= 0 {
			continue
		}
		if throughChapter > 0 && chapter > throughChapter {
			continue
		}
		set.Add(b.corpus.Resolve(sourceID, e.LemmaID))
	}
	return set, nil
}
