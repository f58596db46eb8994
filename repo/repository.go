package repo

import (
	"context"
	"errors"

	"github.com/mkrivushin/libcat/book"
	"github.com/mkrivushin/libcat/search"
)

// ErrNotFound is returned when a record is not found in the repository
var ErrNotFound = errors.New("record not found")

// Repository defines the interface for data access operations.
// CreateBook and UpdateBook return *book.ValidationError when a required
// field is missing; nothing is written in that case.
type Repository interface {
	// Close closes the database connection
	Close() error

	// Health check
	Ping() error

	CreateBook(ctx context.Context, b *book.Book) error
	GetBookByID(ctx context.Context, id int64) (*book.Book, error)
	UpdateBook(ctx context.Context, b *book.Book) error
	DeleteBook(ctx context.Context, id int64) error

	// CountBooks returns the number of records matching the filter.
	// A nil filter counts the whole catalog.
	CountBooks(ctx context.Context, f *search.Filter) (int, error)

	// FetchBooks returns one page of matching records in insertion
	// order. A nil filter lists the whole catalog.
	FetchBooks(ctx context.Context, f *search.Filter, limit, offset int) ([]book.Book, error)
}
