package search

import (
	"testing"

	"github.com/mkrivushin/libcat/book"
)

func TestParseEmptyQuery(t *testing.T) {
	for _, q := range []string{"", "   ", "\t\n"} {
		if f := Parse(q); f != nil {
			t.Errorf("Parse(%q) = %v, want nil", q, f)
		}
	}
}

func TestParseNormalizes(t *testing.T) {
	f := Parse("  Brave New World ")
	if f == nil {
		t.Fatal("Parse returned nil for a non-empty query")
	}
	if f.Query() != "brave new world" {
		t.Errorf("Query() = %q, want %q", f.Query(), "brave new world")
	}
	if f.Pattern() != "%brave new world%" {
		t.Errorf("Pattern() = %q, want %q", f.Pattern(), "%brave new world%")
	}
}

func TestMatches(t *testing.T) {
	b := book.Book{
		Title:  "The Left Hand of Darkness",
		Author: "Ursula K. Le Guin",
		Genre:  "Science Fiction",
		Year:   "1969",
	}

	tests := []struct {
		query string
		want  bool
	}{
		{"FIC", true},       // case-insensitive substring on genre
		{"darkness", true},  // title
		{"le guin", true},   // author
		{"969", true},       // year matched as text
		{"Tolstoy", false},  // no field contains it
		{"left hand", true}, // substring spanning words
	}

	for _, tt := range tests {
		f := Parse(tt.query)
		if f == nil {
			t.Fatalf("Parse(%q) = nil", tt.query)
		}
		if got := f.Matches(b); got != tt.want {
			t.Errorf("Parse(%q).Matches = %v, want %v", tt.query, got, tt.want)
		}
	}
}
