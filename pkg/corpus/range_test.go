package corpus

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   BibleRange
		want BibleRange
	}{
		{
			name: "valid range unchanged",
			in:   BibleRange{43, 1, 43, 3, 2},
			want: BibleRange{43, 1, 43, 3, 2},
		},
		{
			name: "testament straddle pulled back",
			in:   BibleRange{39, 1, 40, 5, 0},
			want: BibleRange{39, 1, 39, 3, 0},
		},
		{
			name: "straddle deep into new testament",
			in:   BibleRange{38, 2, 45, 1, 0},
			want: BibleRange{38, 2, 39, 3, 0},
		},
		{
			name: "end before start",
			in:   BibleRange{43, 3, 40, 1, 0},
			want: BibleRange{43, 3, 43, 3, 0},
		},
		{
			name: "chapter past book end",
			in:   BibleRange{43, 1, 43, 99, 0},
			want: BibleRange{43, 1, 43, 21, 0},
		},
		{
			name: "chapter end before chapter start",
			in:   BibleRange{43, 5, 43, 2, 0},
			want: BibleRange{43, 5, 43, 5, 0},
		},
		{
			name: "non-positive values",
			in:   BibleRange{0, 0, -5, 0, -2},
			want: BibleRange{1, 1, 1, 1, 0},
		},
		{
			name: "book past the canon",
			in:   BibleRange{70, 1, 80, 4, 0},
			want: BibleRange{66, 1, 66, 4, 0},
		},
		{
			name: "hebrew versification for malachi",
			in:   BibleRange{39, 1, 39, 4, 0},
			want: BibleRange{39, 1, 39, 3, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Normalize()
			if got != tt.want {
				t.Fatalf("expected %+v, got %+v", tt.want, got)
			}
			if again := got.Normalize(); again != got {
				t.Fatalf("expected Normalize to be idempotent, got %+v then %+v", got, again)
			}
			if got.Testament() != TestamentOf(got.BookEnd) {
				t.Fatalf("expected single-testament range, got %+v", got)
			}
		})
	}
}

func TestRangeConstructors(t *testing.T) {
	if r := WholeBook(43, 3); r != (BibleRange{43, 1, 43, 21, 3}) {
		t.Fatalf("unexpected WholeBook: %+v", r)
	}
	if r := WholeTestament(NewTestament, 0); r != (BibleRange{40, 1, 66, 22, 0}) {
		t.Fatalf("unexpected NT range: %+v", r)
	}
	if r := WholeTestament(OldTestament, 0); r != (BibleRange{1, 1, 39, 3, 0}) {
		t.Fatalf("unexpected OT range: %+v", r)
	}
	if r := Chapters(1, 1, 2, 0); r.Language() != LanguageHebrew {
		t.Fatalf("expected hebrew for Genesis, got %s", r.Language())
	}
}

func TestContainsAndOverlaps(t *testing.T) {
	john := Chapters(43, 2, 4, 0)
	if !john.Contains(43, 2) || !john.Contains(43, 4) {
		t.Fatal("expected bounds to be inclusive")
	}
	if john.Contains(43, 1) || john.Contains(44, 1) {
		t.Fatal("expected chapters outside the range to be excluded")
	}

	if !john.Overlaps(Chapters(43, 4, 6, 0)) {
		t.Fatal("expected touching ranges to overlap")
	}
	if john.Overlaps(Chapters(43, 5, 6, 0)) {
		t.Fatal("expected disjoint ranges not to overlap")
	}
	if !WholeTestament(NewTestament, 0).Overlaps(john) {
		t.Fatal("expected testament to overlap a contained range")
	}
}

func TestRangeString(t *testing.T) {
	if got := Chapters(43, 1, 3, 0).String(); got != "John 1-3" {
		t.Fatalf("unexpected string %q", got)
	}
	if got := (BibleRange{40, 1, 41, 2, 5}).String(); got != "Matt 1-Mark 2 (min 5)" {
		t.Fatalf("unexpected string %q", got)
	}
}

func TestBookLookup(t *testing.T) {
	b, ok := BookByName(" 1 john ")
	if !ok || b.Number != 62 {
		t.Fatalf("expected 1 John, got %+v", b)
	}
	if b, ok := BookByName("gen"); !ok || b.Number != 1 || b.Language() != LanguageHebrew {
		t.Fatalf("expected Genesis by abbreviation, got %+v", b)
	}
	if _, ok := BookByName("Maccabees"); ok {
		t.Fatal("expected unknown book")
	}
	if _, ok := BookByNumber(0); ok {
		t.Fatal("expected book 0 to be invalid")
	}
	if got := len(Books()); got != LastBook {
		t.Fatalf("expected %d books, got %d", LastBook, got)
	}
	if b, _ := BookByNumber(40); b.Testament() != NewTestament || b.Language() != LanguageGreek {
		t.Fatalf("expected Matthew to open the new testament, got %+v", b)
	}
}

func TestWordSetOperations(t *testing.T) {
	a := NewWordSet(
		WordInfo{LexiconEntry: LexiconEntry{LemmaID: "G1"}, Instances: make([]WordOccurrence, 3)},
		WordInfo{LexiconEntry: LexiconEntry{LemmaID: "G2"}, Instances: make([]WordOccurrence, 1)},
		WordInfo{},
	)
	b := NewWordSet(
		WordInfo{LexiconEntry: LexiconEntry{LemmaID: "G2", Definition: "other"}},
		WordInfo{LexiconEntry: LexiconEntry{LemmaID: "G3"}, Instances: make([]WordOccurrence, 3)},
	)
	if len(a) != 2 {
		t.Fatalf("expected zero WordInfo to be ignored, got %d members", len(a))
	}

	u := a.Union(b)
	if len(u) != 3 {
		t.Fatalf("expected union of 3, got %v", u.IDs())
	}
	if u["G2"].Definition != "" {
		t.Fatalf("expected first value to win, got %+v", u["G2"])
	}
	if !a.IsSubsetOf(u) || !b.IsSubsetOf(u) || u.IsSubsetOf(a) {
		t.Fatal("unexpected subset relations")
	}

	ranked := u.ByFrequency()
	got := []string{ranked[0].LemmaID, ranked[1].LemmaID, ranked[2].LemmaID}
	want := []string{"G1", "G3", "G2"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected frequency order %v, got %v", want, got)
		}
	}
}
