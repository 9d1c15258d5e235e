package corpus

import "fmt"

// BibleRange selects whole chapters from BookStart:ChapterStart through
// BookEnd:ChapterEnd inclusive. MinOccurrences of 0 disables the threshold.
type BibleRange struct {
	BookStart      int `json:"book_start"`
	ChapterStart   int `json:"chapter_start"`
	BookEnd        int `json:"book_end"`
	ChapterEnd     int `json:"chapter_end"`
	MinOccurrences int `json:"min_occurrences"`
}

// WholeBook covers every chapter of book.
func WholeBook(book, minOccurrences int) BibleRange {
	return BibleRange{
		BookStart:      book,
		ChapterStart:   1,
		BookEnd:        book,
		ChapterEnd:     chapterCount(book),
		MinOccurrences: minOccurrences,
	}.Normalize()
}

// Chapters covers chapters from..to of a single book.
func Chapters(book, from, to, minOccurrences int) BibleRange {
	return BibleRange{
		BookStart:      book,
		ChapterStart:   from,
		BookEnd:        book,
		ChapterEnd:     to,
		MinOccurrences: minOccurrences,
	}.Normalize()
}

// WholeTestament covers every book of t.
func WholeTestament(t Testament, minOccurrences int) BibleRange {
	first, last := testamentBounds(t)
	return BibleRange{
		BookStart:      first,
		ChapterStart:   1,
		BookEnd:        last,
		ChapterEnd:     chapterCount(last),
		MinOccurrences: minOccurrences,
	}.Normalize()
}

// Normalize clamps r into a valid range. Books are limited to 1..66 and
// chapters to the book's chapter count; an end before the start is pulled up
// to the start; an end in the other testament is pulled back to the last
// chapter of the start's testament.
func (r BibleRange) Normalize() BibleRange {
	if r.MinOccurrences < 0 {
		r.MinOccurrences = 0
	}
	r.BookStart = clamp(r.BookStart, FirstBook, LastBook)
	r.BookEnd = clamp(r.BookEnd, FirstBook, LastBook)
	if r.BookEnd < r.BookStart {
		r.BookEnd = r.BookStart
		r.ChapterEnd = r.ChapterStart
	}

	if TestamentOf(r.BookStart) != TestamentOf(r.BookEnd) {
		_, last := testamentBounds(TestamentOf(r.BookStart))
		r.BookEnd = last
		r.ChapterEnd = chapterCount(last)
	}

	r.ChapterStart = clamp(r.ChapterStart, 1, chapterCount(r.BookStart))
	r.ChapterEnd = clamp(r.ChapterEnd, 1, chapterCount(r.BookEnd))
	if r.BookStart == r.BookEnd && r.ChapterEnd < r.ChapterStart {
		r.ChapterEnd = r.ChapterStart
	}
	return r
}

// Contains reports whether book:chapter lies inside the normalized range.
func (r BibleRange) Contains(book, chapter int) bool {
	n := r.Normalize()
	if compareChapter(book, chapter, n.BookStart, n.ChapterStart) < 0 {
		return false
	}
	return compareChapter(book, chapter, n.BookEnd, n.ChapterEnd) <= 0
}

// Overlaps reports whether the normalized ranges share a chapter.
func (r BibleRange) Overlaps(other BibleRange) bool {
	a, b := r.Normalize(), other.Normalize()
	if compareChapter(a.BookEnd, a.ChapterEnd, b.BookStart, b.ChapterStart) < 0 {
		return false
	}
	return compareChapter(b.BookEnd, b.ChapterEnd, a.BookStart, a.ChapterStart) >= 0
}

func (r BibleRange) Testament() Testament {
	return TestamentOf(r.Normalize().BookStart)
}

func (r BibleRange) Language() Language {
	return LanguageOf(r.Normalize().BookStart)
}

func (r BibleRange) String() string {
	n := r.Normalize()
	start, _ := BookByNumber(n.BookStart)
	end, _ := BookByNumber(n.BookEnd)
	span := fmt.Sprintf("%s %d-%s %d", start.Abbrev, n.ChapterStart, end.Abbrev, n.ChapterEnd)
	if n.BookStart == n.BookEnd {
		span = fmt.Sprintf("%s %d-%d", start.Abbrev, n.ChapterStart, n.ChapterEnd)
	}
	if n.MinOccurrences > 0 {
		return fmt.Sprintf("%s (min %d)", span, n.MinOccurrences)
	}
	return span
}

func compareChapter(bookA, chapterA, bookB, chapterB int) int {
	switch {
	case bookA != bookB:
		return bookA - bookB
	default:
		return chapterA - chapterB
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
