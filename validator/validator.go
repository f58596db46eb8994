// Package validator provides input validation for the application
package validator

import (
	"fmt"
	"strings"

	"github.com/mkrivushin/libcat/book"
)

// ValidateBook checks the field-presence invariants of a book record.
// It returns a *book.ValidationError listing every missing required
// field in field order, or nil when the record is valid.
func ValidateBook(b *book.Book) error {
	var fields []book.FieldError

	if strings.TrimSpace(b.Title) == "" {
		fields = append(fields, book.FieldError{Field: "title", Message: `Please provide a value for "Title"`})
	}
	if strings.TrimSpace(b.Author) == "" {
		fields = append(fields, book.FieldError{Field: "author", Message: `Please provide a value for "Author"`})
	}

	if len(fields) > 0 {
		return &book.ValidationError{Fields: fields}
	}
	return nil
}

// ValidateID validates that an ID is positive
func ValidateID(id int64) error {
	if id <= 0 {
		return fmt.Errorf("invalid id: %d (must be positive)", id)
	}
	return nil
}
