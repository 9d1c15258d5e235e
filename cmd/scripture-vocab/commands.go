package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/smith3v/scripture-vocab/pkg/config"
	"github.com/smith3v/scripture-vocab/pkg/corpus"
	"github.com/smith3v/scripture-vocab/pkg/db"
	"github.com/smith3v/scripture-vocab/pkg/export"
	"github.com/smith3v/scripture-vocab/pkg/logger"
	"github.com/smith3v/scripture-vocab/pkg/morph"
	"github.com/smith3v/scripture-vocab/pkg/srs"
	"github.com/smith3v/scripture-vocab/pkg/study"
	"github.com/smith3v/scripture-vocab/pkg/vocab"
)

// listFlags selects a word list by ranges, a preset, or textbook chapters.
type listFlags struct {
	ranges   []string
	min      int
	preset   string
	textbook string
	through  int
	source   string
}

func (f *listFlags) register(fs *flag.FlagSet) {
	fs.Func("range", `range such as "John 1-3", "1 John" or "nt" (repeatable)`, func(s string) error {
		f.ranges = append(f.ranges, s)
		return nil
	})
	fs.IntVar(&f.min, "min", 0, "minimum occurrences inside the range")
	fs.StringVar(&f.preset, "preset", "", "preset frequency list, e.g. greek-nt-50")
	fs.StringVar(&f.textbook, "textbook", "", "textbook source id")
	fs.IntVar(&f.through, "through", 0, "last textbook chapter (0 for all)")
	fs.StringVar(&f.source, "source", corpus.AppSource, "lexicon source for glosses")
}

// build returns the selected list and an id naming it. Lists glossed from a
// textbook source get their own id.
func (f *listFlags) build(ctx context.Context, a *app) (corpus.WordSet, string, error) {
	builder := vocab.NewBuilder(a.corpus, vocab.WithSource(f.source))
	set, listID, err := f.buildWith(ctx, builder)
	if src := builder.Source(); src != corpus.AppSource {
		listID += "@" + src
	}
	return set, listID, err
}

func (f *listFlags) buildWith(ctx context.Context, builder *vocab.Builder) (corpus.WordSet, string, error) {
	switch {
	case f.preset != "":
		set, err := builder.BuildPreset(ctx, f.preset)
		return set, "preset:" + f.preset, err
	case f.textbook != "":
		set, err := builder.BuildTextbookChapters(ctx, f.textbook, f.through)
		return set, fmt.Sprintf("textbook:%s:%d", f.textbook, f.through), err
	case len(f.ranges) > 0:
		ranges := make([]corpus.BibleRange, 0, len(f.ranges))
		for _, s := range f.ranges {
			r, err := parseRange(s, f.min)
			if err != nil {
				return nil, "", err
			}
			ranges = append(ranges, r)
		}
		set, err := vocab.NewCoordinator(builder).Build(ctx, ranges...)
		return set, "ranges:" + vocab.RangeSetKey(ranges), err
	default:
		return nil, "", errors.New("one of -range, -preset or -textbook is required")
	}
}

// parseRange reads "<book> [chapter[-chapter]]", "ot" or "nt".
func parseRange(s string, min int) (corpus.BibleRange, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "ot":
		return corpus.WholeTestament(corpus.OldTestament, min), nil
	case "nt":
		return corpus.WholeTestament(corpus.NewTestament, min), nil
	}

	name, chapters := s, ""
	if i := strings.LastIndex(s, " "); i > 0 {
		tail := s[i+1:]
		if tail != "" && strings.Trim(tail, "0123456789-") == "" {
			name, chapters = s[:i], tail
		}
	}
	book, ok := corpus.BookByName(name)
	if !ok {
		return corpus.BibleRange{}, fmt.Errorf("unknown book %q", name)
	}
	if chapters == "" {
		return corpus.WholeBook(book.Number, min), nil
	}

	var from, to int
	if _, err := fmt.Sscanf(chapters, "%d-%d", &from, &to); err != nil {
		if _, err := fmt.Sscanf(chapters, "%d", &from); err != nil {
			return corpus.BibleRange{}, fmt.Errorf("invalid chapters %q", chapters)
		}
		to = from
	}
	return corpus.Chapters(book.Number, from, to, min), nil
}

type wordView struct {
	ID         string `json:"id"`
	Lemma      string `json:"lemma"`
	Definition string `json:"definition"`
	Language   string `json:"language"`
	Source     string `json:"source"`
	Chapter    string `json:"chapter,omitempty"`
	Frequency  int    `json:"frequency"`
}

func viewWords(set corpus.WordSet) []wordView {
	out := make([]wordView, 0, len(set))
	for _, w := range set.ByFrequency() {
		out = append(out, wordView{
			ID:         w.LemmaID,
			Lemma:      w.Lemma,
			Definition: w.Definition,
			Language:   string(w.Language),
			Source:     w.SourceID,
			Chapter:    w.ChapterRef,
			Frequency:  w.Frequency(),
		})
	}
	return out
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func runList(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	var lf listFlags
	lf.register(fs)
	presets := fs.Bool("presets", false, "print the preset lists instead of building one")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *presets {
		return printJSON(os.Stdout, vocab.Presets())
	}
	set, _, err := lf.build(ctx, a)
	if err != nil {
		return err
	}
	return printJSON(os.Stdout, viewWords(set))
}

func runParse(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("parse", flag.ContinueOnError)
	rangeFlag := fs.String("range", "", "range such as \"Luke 1-2\"")
	language := fs.String("language", "", "greek or hebrew")
	wordType := fs.String("word-type", "", "noun, verb or other")
	facets := map[string]*string{}
	for _, name := range []string{"tense", "voice", "mood", "stem", "verb-type", "case", "gender", "number", "person"} {
		facets[name] = fs.String(name, "", "comma separated "+name+" values")
	}
	if err := fs.Parse(args); err != nil {
		return err
	}

	r, err := parseRange(*rangeFlag, 0)
	if err != nil {
		return err
	}
	filter, err := parseFilter(*wordType, facets)
	if err != nil {
		return err
	}
	occurrences, err := vocab.NewBuilder(a.corpus).BuildParsingList(ctx, vocab.ParsingQuery{
		Range:    r,
		Language: corpus.Language(*language),
		Filter:   filter,
	})
	if err != nil {
		return err
	}
	return printJSON(os.Stdout, occurrences)
}

func parseFilter(wordType string, facets map[string]*string) (morph.Filter, error) {
	var (
		f   morph.Filter
		err error
	)
	if wordType != "" {
		if f.WordType, err = morph.ParseWordType(wordType); err != nil {
			return f, err
		}
	}
	if f.Tenses, err = morph.ParseList(*facets["tense"], morph.ParseTense); err != nil {
		return f, err
	}
	if f.Voices, err = morph.ParseList(*facets["voice"], morph.ParseVoice); err != nil {
		return f, err
	}
	if f.Moods, err = morph.ParseList(*facets["mood"], morph.ParseMood); err != nil {
		return f, err
	}
	if f.Stems, err = morph.ParseList(*facets["stem"], morph.ParseStem); err != nil {
		return f, err
	}
	if f.VerbTypes, err = morph.ParseList(*facets["verb-type"], morph.ParseVerbType); err != nil {
		return f, err
	}
	if f.Cases, err = morph.ParseList(*facets["case"], morph.ParseCase); err != nil {
		return f, err
	}
	if f.Genders, err = morph.ParseList(*facets["gender"], morph.ParseGender); err != nil {
		return f, err
	}
	if f.Numbers, err = morph.ParseList(*facets["number"], morph.ParseNumber); err != nil {
		return f, err
	}
	f.Persons, err = morph.ParseList(*facets["person"], morph.ParsePerson)
	return f, err
}

func buildQueues(ctx context.Context, a *app, lf *listFlags, limit int) (study.Queues, corpus.WordSet, string, error) {
	set, listID, err := lf.build(ctx, a)
	if err != nil {
		return study.Queues{}, nil, "", err
	}
	ids := make([]string, 0, len(set))
	for _, w := range set.ByFrequency() {
		ids = append(ids, w.LemmaID)
	}
	q, err := study.DueAndNewQueues(ctx, ids, time.Now().UTC())
	if err != nil {
		return study.Queues{}, nil, "", err
	}
	return q.LimitNew(limit), set, listID, nil
}

func runQueue(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("queue", flag.ContinueOnError)
	var lf listFlags
	lf.register(fs)
	limit := fs.Int("new", config.AppConfig.Study.NewWordsLimit(), "maximum new words (0 for reviews only, -1 for all)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	q, _, _, err := buildQueues(ctx, a, &lf, *limit)
	if err != nil {
		return err
	}
	return printJSON(os.Stdout, q)
}

func runReview(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("review", flag.ContinueOnError)
	wordID := fs.String("word", "", "lemma id")
	answerFlag := fs.String("answer", "", "wrong, hard, good or easy")
	source := fs.String("source", corpus.AppSource, "lexicon source for new words")
	if err := fs.Parse(args); err != nil {
		return err
	}
	answer, err := srs.ParseAnswer(*answerFlag)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	session := study.NewSession(a.corpus, *source, now)
	word, entry, err := session.RecordAnswer(ctx, *wordID, answer, now)
	if err != nil {
		return err
	}
	if _, err := session.End(ctx, time.Now().UTC(), db.EndedReasonFinished); err != nil {
		return err
	}
	return printJSON(os.Stdout, map[string]any{"word": word, "entry": entry})
}

func runStudy(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("study", flag.ContinueOnError)
	var lf listFlags
	lf.register(fs)
	limit := fs.Int("new", config.AppConfig.Study.NewWordsLimit(), "maximum new words (0 for reviews only, -1 for all)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	q, set, listID, err := buildQueues(ctx, a, &lf, *limit)
	if err != nil {
		return err
	}
	if q.Len() == 0 {
		fmt.Println("nothing to study")
		return nil
	}

	timeout := time.Duration(config.AppConfig.Study.SessionInactivityMinutes) * time.Minute
	manager := study.NewManager(a.corpus, timeout, nil)
	go manager.StartSweeper(ctx, 0)
	go db.StartSessionCleanup(ctx, 0, 0)

	session := manager.Start(ctx, listID, lf.source)
	defer manager.Shutdown(context.WithoutCancel(ctx))

	lines := scanLines(os.Stdin)
	var entries []db.StudySessionEntry
	for i, id := range q.Ordered() {
		w := set[id]
		fmt.Printf("[%d/%d] %s (%s) answer wrong/hard/good/easy or quit: ", i+1, q.Len(), w.Lemma, id)
		answer, ok := readAnswer(ctx, lines, os.Stdout)
		if !ok {
			break
		}
		manager.Touch(listID)
		word, entry, err := manager.RecordAnswer(ctx, listID, id, answer)
		if err != nil {
			return err
		}
		entries = append(entries, entry)
		fmt.Printf("  %s: next review %s\n", word.Gloss(), word.DueDate.Local().Format(time.DateTime))
	}
	fmt.Println()

	if _, err := manager.End(context.WithoutCancel(ctx), listID, db.EndedReasonFinished); err != nil && !errors.Is(err, study.ErrSessionEnded) {
		return err
	}
	stats := study.Summarize(entries)
	fmt.Printf("reviewed %d words in %s, %d correct (%.0f%%), %d introduced\n",
		stats.DistinctWords, time.Since(session.StartedAt()).Round(time.Second),
		stats.Correct, stats.Accuracy()*100, stats.Introduced)
	return nil
}

// scanLines feeds lines from r to the returned channel until r is exhausted.
func scanLines(r io.Reader) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		in := bufio.NewScanner(r)
		for in.Scan() {
			lines <- in.Text()
		}
	}()
	return lines
}

// readAnswer waits for a valid answer. It reports false on quit, end of
// input, or when ctx is done.
func readAnswer(ctx context.Context, lines <-chan string, prompt io.Writer) (srs.Answer, bool) {
	for {
		select {
		case <-ctx.Done():
			return "", false
		case line, ok := <-lines:
			if !ok {
				return "", false
			}
			text := strings.TrimSpace(line)
			if text == "quit" || text == "q" {
				return "", false
			}
			if answer, err := srs.ParseAnswer(text); err == nil {
				return answer, true
			}
			fmt.Fprint(prompt, "  please answer wrong, hard, good or easy: ")
		}
	}
}

func runStats(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("stats", flag.ContinueOnError)
	days := fs.Int("days", 7, "number of days to summarize")
	if err := fs.Parse(args); err != nil {
		return err
	}
	to := time.Now().UTC()
	stats, err := study.LoadStats(ctx, to.AddDate(0, 0, -*days), to)
	if err != nil {
		return err
	}
	return printJSON(os.Stdout, stats)
}

func runCleanup(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("cleanup", flag.ContinueOnError)
	after := fs.Duration("after", db.DefaultAbandonAfter, "idle time after which a run is closed")
	if err := fs.Parse(args); err != nil {
		return err
	}
	closed, err := db.CloseAbandonedSessions(ctx, time.Now().UTC(), *after)
	if err != nil {
		return err
	}
	fmt.Printf("closed %d abandoned runs\n", closed)
	return nil
}

func runExport(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	language := fs.String("language", "", "greek or hebrew (default all)")
	out := fs.String("out", "", "output file (default a dated file name, - for stdout)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	words, err := db.ListVocabWords(ctx, *language)
	if err != nil {
		return err
	}
	if *out == "-" {
		return export.WriteCSV(os.Stdout, words)
	}

	path := *out
	if path == "" {
		path = export.Filename(time.Now())
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := export.WriteCSV(f, words); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	logger.Info("exported vocabulary", "path", path, "words", len(words))
	return nil
}

func runDefine(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("define", flag.ContinueOnError)
	wordID := fs.String("word", "", "lemma id")
	gloss := fs.String("gloss", "", "custom gloss (empty clears it)")
	source := fs.String("source", corpus.AppSource, "lexicon source for words not yet studied")
	if err := fs.Parse(args); err != nil {
		return err
	}
	word, err := study.SetCustomDefinition(ctx, a.corpus, *source, *wordID, *gloss)
	if err != nil {
		return err
	}
	return printJSON(os.Stdout, word)
}
