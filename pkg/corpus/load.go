package corpus

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strconv"
	"strings"
	"time"

	"github.com/smith3v/scripture-vocab/pkg/logger"
	"golang.org/x/text/unicode/norm"
)

// Sources names the corpus files inside an fs.FS. Empty text and lexicon
// paths for a language mean that language is not configured.
type Sources struct {
	GreekText     string
	GreekLexicon  string
	HebrewText    string
	HebrewLexicon string
	Textbooks     []string
}

// LoadError reports a missing or malformed corpus file. The source it names
// contributes nothing to the loaded corpus.
type LoadError struct {
	Source string
	Path   string
	Err    error
}

func (e *LoadError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("corpus: load %s: %v", e.Source, e.Err)
	}
	return fmt.Sprintf("corpus: load %s from %s: %v", e.Source, e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

var (
	errMissingPath = errors.New("source path not configured")
	errAppOverlay  = errors.New("textbook may not redefine the app source")
)

type occurrenceRecord struct {
	ID      string `json:"id"`
	Text    string `json:"text"`
	Raw     string `json:"raw"`
	Parsing string `json:"parsing"`
}

type lexiconRecord struct {
	Lemma      string `json:"lemma"`
	Definition string `json:"definition"`
	Usage      string `json:"usage"`
	Chapter    string `json:"chapter"`
}

// Load parses every configured source. Each language is loaded as a unit: a
// failure in its text or lexicon leaves that language empty. The returned
// corpus is always usable; the error joins one *LoadError per failed source.
func Load(fsys fs.FS, src Sources) (*Corpus, error) {
	started := time.Now()
	var (
		occurrences []WordOccurrence
		entries     []LexiconEntry
		errs        []error
	)

	languages := []struct {
		lang    Language
		text    string
		lexicon string
	}{
		{LanguageGreek, src.GreekText, src.GreekLexicon},
		{LanguageHebrew, src.HebrewText, src.HebrewLexicon},
	}
	for _, l := range languages {
		if l.text == "" && l.lexicon == "" {
			continue
		}
		occ, lex, err := loadLanguage(fsys, l.lang, l.text, l.lexicon)
		if err != nil {
			logger.Error("failed to load corpus language", "language", l.lang, "error", err)
			errs = append(errs, err)
			continue
		}
		occurrences = append(occurrences, occ...)
		entries = append(entries, lex...)
		logger.Debug("loaded corpus language", "language", l.lang, "occurrences", len(occ), "entries", len(lex))
	}

	for _, path := range src.Textbooks {
		lex, err := readLexiconFile(fsys, path)
		if err == nil {
			err = rejectAppSource(lex)
		}
		if err != nil {
			loadErr := &LoadError{Source: "textbook", Path: path, Err: err}
			logger.Warn("skipping textbook lexicon", "path", path, "error", err)
			errs = append(errs, loadErr)
			continue
		}
		entries = append(entries, lex...)
	}

	c := NewCorpus(occurrences, entries)
	logger.Info("corpus loaded",
		"occurrences", c.Len(),
		"sources", len(c.Sources()),
		"failed", len(errs),
		"elapsed", time.Since(started),
	)
	return c, errors.Join(errs...)
}

func loadLanguage(fsys fs.FS, lang Language, textPath, lexiconPath string) ([]WordOccurrence, []LexiconEntry, error) {
	if textPath == "" {
		return nil, nil, &LoadError{Source: string(lang) + " text", Err: errMissingPath}
	}
	if lexiconPath == "" {
		return nil, nil, &LoadError{Source: string(lang) + " lexicon", Err: errMissingPath}
	}

	f, err := fsys.Open(textPath)
	if err != nil {
		return nil, nil, &LoadError{Source: string(lang) + " text", Path: textPath, Err: err}
	}
	occ, err := DecodeText(f, lang)
	f.Close()
	if err != nil {
		return nil, nil, &LoadError{Source: string(lang) + " text", Path: textPath, Err: err}
	}

	lex, err := readLexiconFile(fsys, lexiconPath)
	if err != nil {
		return nil, nil, &LoadError{Source: string(lang) + " lexicon", Path: lexiconPath, Err: err}
	}
	return occ, lex, nil
}

func readLexiconFile(fsys fs.FS, path string) ([]LexiconEntry, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return DecodeLexicon(f)
}

func rejectAppSource(entries []LexiconEntry) error {
	for _, e := range entries {
		if e.SourceID == AppSource {
			return errAppOverlay
		}
	}
	return nil
}

// DecodeText parses a text file keyed book -> chapter -> verse with the words
// of each verse in order. Every book must belong to lang's testament.
func DecodeText(r io.Reader, lang Language) ([]WordOccurrence, error) {
	var raw map[string]map[string]map[string][]occurrenceRecord
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode text: %w", err)
	}

	var out []WordOccurrence
	for bookKey, chapters := range raw {
		book, err := positiveKey("book", bookKey)
		if err != nil {
			return nil, err
		}
		if book > LastBook {
			return nil, fmt.Errorf("book %d out of range", book)
		}
		if LanguageOf(book) != lang {
			return nil, fmt.Errorf("book %d is not part of the %s text", book, lang)
		}
		for chapterKey, verses := range chapters {
			chapter, err := positiveKey("chapter", chapterKey)
			if err != nil {
				return nil, fmt.Errorf("book %d: %w", book, err)
			}
			if n := chapterCount(book); chapter > n {
				return nil, fmt.Errorf("book %d chapter %d beyond its %d chapters", book, chapter, n)
			}
			for verseKey, words := range verses {
				verse, err := positiveKey("verse", verseKey)
				if err != nil {
					return nil, fmt.Errorf("book %d chapter %d: %w", book, chapter, err)
				}
				for i, w := range words {
					id := strings.TrimSpace(w.ID)
					if id == "" {
						return nil, fmt.Errorf("book %d %d:%d word %d: empty lemma id", book, chapter, verse, i)
					}
					out = append(out, WordOccurrence{
						Book:       book,
						Chapter:    chapter,
						Verse:      verse,
						Index:      i,
						LemmaID:    id,
						Surface:    norm.NFC.String(w.Text),
						RawSurface: norm.NFC.String(w.Raw),
						ParsingTag: strings.TrimSpace(w.Parsing),
					})
				}
			}
		}
	}
	return out, nil
}

// DecodeLexicon parses a lexicon file keyed source -> lemma id.
func DecodeLexicon(r io.Reader) ([]LexiconEntry, error) {
	var raw map[string]map[string]lexiconRecord
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode lexicon: %w", err)
	}

	var out []LexiconEntry
	for source, lemmas := range raw {
		source = strings.TrimSpace(source)
		if source == "" {
			return nil, errors.New("lexicon source id is empty")
		}
		for id, rec := range lemmas {
			id = strings.TrimSpace(id)
			if id == "" {
				return nil, fmt.Errorf("source %s: empty lemma id", source)
			}
			out = append(out, LexiconEntry{
				LemmaID:    id,
				SourceID:   source,
				Lemma:      norm.NFC.String(rec.Lemma),
				Definition: norm.NFC.String(rec.Definition),
				Usage:      norm.NFC.String(rec.Usage),
				ChapterRef: strings.TrimSpace(rec.Chapter),
			})
		}
	}
	return out, nil
}

func positiveKey(name, key string) (int, error) {
	n, err := strconv.Atoi(key)
	if err != nil {
		return 0, fmt.Errorf("%s key %q is not a number", name, key)
	}
	if n <= 0 {
		return 0, fmt.Errorf("%s key %d must be positive", name, n)
	}
	return n, nil
}
