package corpus

import (
	"strings"
)

type Language string

const (
	LanguageGreek  Language = "greek"
	LanguageHebrew Language = "hebrew"
	LanguageCustom Language = "custom"
)

type Testament int

const (
	OldTestament Testament = iota + 1
	NewTestament
)

const (
	FirstBook         = 1
	LastOldTestament  = 39
	FirstNewTestament = 40
	LastBook          = 66
)

// Book is one canonical book. Old Testament chapter counts follow the Hebrew
// versification of the underlying text (Joel 4, Malachi 3).
type Book struct {
	Number   int
	Name     string
	Abbrev   string
	Chapters int
}

func (b Book) Testament() Testament {
	return TestamentOf(b.Number)
}

func (b Book) Language() Language {
	return LanguageOf(b.Number)
}

var books = [...]Book{
	{1, "Genesis", "Gen", 50},
	{2, "Exodus", "Exod", 40},
	{3, "Leviticus", "Lev", 27},
	{4, "Numbers", "Num", 36},
	{5, "Deuteronomy", "Deut", 34},
	{6, "Joshua", "Josh", 24},
	{7, "Judges", "Judg", 21},
	{8, "Ruth", "Ruth", 4},
	{9, "1 Samuel", "1Sam", 31},
	{10, "2 Samuel", "2Sam", 24},
	{11, "1 Kings", "1Kgs", 22},
	{12, "2 Kings", "2Kgs", 25},
	{13, "1 Chronicles", "1Chr", 29},
	{14, "2 Chronicles", "2Chr", 36},
	{15, "Ezra", "Ezra", 10},
	{16, "Nehemiah", "Neh", 13},
	{17, "Esther", "Esth", 10},
	{18, "Job", "Job", 42},
	{19, "Psalms", "Ps", 150},
	{20, "Proverbs", "Prov", 31},
	{21, "Ecclesiastes", "Eccl", 12},
	{22, "Song of Songs", "Song", 8},
	{23, "Isaiah", "Isa", 66},
	{24, "Jeremiah", "Jer", 52},
	{25, "Lamentations", "Lam", 5},
	{26, "Ezekiel", "Ezek", 48},
	{27, "Daniel", "Dan", 12},
	{28, "Hosea", "Hos", 14},
	{29, "Joel", "Joel", 4},
	{30, "Amos", "Amos", 9},
	{31, "Obadiah", "Obad", 1},
	{32, "Jonah", "Jonah", 4},
	{33, "Micah", "Mic", 7},
	{34, "Nahum", "Nah", 3},
	{35, "Habakkuk", "Hab", 3},
	{36, "Zephaniah", "Zeph", 3},
	{37, "Haggai", "Hag", 2},
	{38, "Zechariah", "Zech", 14},
	{39, "Malachi", "Mal", 3},
	{40, "Matthew", "Matt", 28},
	{41, "Mark", "Mark", 16},
	{42, "Luke", "Luke", 24},
	{43, "John", "John", 21},
	{44, "Acts", "Acts", 28},
	{45, "Romans", "Rom", 16},
	{46, "1 Corinthians", "1Cor", 16},
	{47, "2 Corinthians", "2Cor", 13},
	{48, "Galatians", "Gal", 6},
	{49, "Ephesians", "Eph", 6},
	{50, "Philippians", "Phil", 4},
	{51, "Colossians", "Col", 4},
	{52, "1 Thessalonians", "1Thess", 5},
	{53, "2 Thessalonians", "2Thess", 3},
	{54, "1 Timothy", "1Tim", 6},
	{55, "2 Timothy", "2Tim", 4},
	{56, "Titus", "Titus", 3},
	{57, "Philemon", "Phlm", 1},
	{58, "Hebrews", "Heb", 13},
	{59, "James", "Jas", 5},
	{60, "1 Peter", "1Pet", 5},
	{61, "2 Peter", "2Pet", 3},
	{62, "1 John", "1John", 5},
	{63, "2 John", "2John", 1},
	{64, "3 John", "3John", 1},
	{65, "Jude", "Jude", 1},
	{66, "Revelation", "Rev", 22},
}

// Books returns the canonical book table in order.
func Books() []Book {
	out := make([]Book, len(books))
	copy(out, books[:])
	return out
}

// BookByNumber returns the book for n, or false when n is outside 1..66.
func BookByNumber(n int) (Book, bool) {
	if n < FirstBook || n > LastBook {
		return Book{}, false
	}
	return books[n-1], true
}

// BookByName matches full names and abbreviations, ignoring case and spaces.
func BookByName(name string) (Book, bool) {
	key := bookKey(name)
	if key == "" {
		return Book{}, false
	}
	for _, b := range books {
		if bookKey(b.Name) == key || bookKey(b.Abbrev) == key {
			return b, true
		}
	}
	return Book{}, false
}

func bookKey(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), ""))
}

func TestamentOf(book int) Testament {
	if book >= FirstNewTestament {
		return NewTestament
	}
	return OldTestament
}

func LanguageOf(book int) Language {
	if TestamentOf(book) == NewTestament {
		return LanguageGreek
	}
	return LanguageHebrew
}

func chapterCount(book int) int {
	b, ok := BookByNumber(book)
	if !ok {
		return 1
	}
	return b.Chapters
}

func testamentBounds(t Testament) (int, int) {
	if t == NewTestament {
		return FirstNewTestament, LastBook
	}
	return FirstBook, LastOldTestament
}
