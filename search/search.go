// Package search builds the keyword filter applied to catalog listings
package search

import (
	"strings"

	"github.com/mkrivushin/libcat/book"
)

// Filter is a case-insensitive substring match over the searchable
// fields of a book: title, author, genre and year. A nil *Filter means
// no filter is applied.
type Filter struct {
	query string
}

// Parse trims the raw query and returns a Filter for it, or nil when
// nothing remains. Callers treat nil as "show the unfiltered listing".
func Parse(query string) *Filter {
	q := strings.TrimSpace(query)
	if q == "" {
		return nil
	}
	return &Filter{query: strings.ToLower(q)}
}

// Query returns the normalized (trimmed, lowercased) query text
func (f *Filter) Query() string {
	return f.query
}

// Pattern returns the SQL LIKE pattern equivalent of the filter
func (f *Filter) Pattern() string {
	return "%" + f.query + "%"
}

// Matches reports whether a record satisfies the filter: the query is a
// substring of at least one searchable field, ignoring case.
func (f *Filter) Matches(b book.Book) bool {
	for _, field := range []string{b.Title, b.Author, b.Genre, b.Year} {
		if strings.Contains(strings.ToLower(field), f.query) {
			return true
		}
	}
	return false
}
