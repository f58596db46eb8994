// Package service provides business logic layer between HTTP handlers and repository
package service

import (
	"context"
	"fmt"

	"github.com/mkrivushin/libcat/book"
	"github.com/mkrivushin/libcat/config"
	"github.com/mkrivushin/libcat/pagination"
	"github.com/mkrivushin/libcat/repo"
	"github.com/mkrivushin/libcat/search"
	"github.com/mkrivushin/libcat/validator"
)

// Service provides business logic for the catalog
type Service struct {
	repo    repo.Repository
	catalog config.CatalogConfig
}

// New creates a new Service with the given repository and listing defaults
func New(repo repo.Repository, catalog config.CatalogConfig) *Service {
	return &Service{
		repo:    repo,
		catalog: catalog,
	}
}

// ListResult is one page of the catalog together with its pagination
// metadata, ready to hand to a view.
type ListResult struct {
	Books []book.Book
	Total int
	Page  int
	Limit int
	Query string
	Pages pagination.Pages
}

// DefaultLimit returns the configured default page size
func (s *Service) DefaultLimit() int {
	return s.catalog.PageSize
}

// NormalizeLimit bounds a requested page size into [1, MaxPageSize],
// substituting the default for non-positive values.
func (s *Service) NormalizeLimit(limit int) int {
	if limit < 1 {
		return s.catalog.PageSize
	}
	if limit > s.catalog.MaxPageSize {
		return s.catalog.MaxPageSize
	}
	return limit
}

// ListBooks returns one page of the catalog, filtered by the query when
// it is non-empty. The requested page is clamped into the valid range
// before the offset is computed, so an out-of-range page shows the
// nearest real page instead of an empty one.
func (s *Service) ListBooks(ctx context.Context, query string, page, limit int) (*ListResult, error) {
	f := search.Parse(query)
	limit = s.NormalizeLimit(limit)

	total, err := s.repo.CountBooks(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("count books: %w", err)
	}

	page = pagination.ClampPage(page, pagination.PageCount(total, limit))
	pages := pagination.Compute(total, limit, page, s.catalog.WindowRadius)

	books, err := s.repo.FetchBooks(ctx, f, limit, pages.Offset)
	if err != nil {
		return nil, fmt.Errorf("fetch books: %w", err)
	}

	result := &ListResult{
		Books: books,
		Total: total,
		Page:  page,
		Limit: limit,
		Pages: pages,
	}
	if f != nil {
		result.Query = f.Query()
	}
	return result, nil
}

// GetBook retrieves a single book by ID.
// repo.ErrNotFound passes through unwrapped; a non-positive id reads as
// a record that cannot exist.
func (s *Service) GetBook(ctx context.Context, id int64) (*book.Book, error) {
	if err := validator.ValidateID(id); err != nil {
		return nil, repo.ErrNotFound
	}
	b, err := s.repo.GetBookByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// CreateBook persists a new book. A *book.ValidationError passes
// through unwrapped so callers can redisplay the submitted draft.
func (s *Service) CreateBook(ctx context.Context, b *book.Book) error {
	return s.repo.CreateBook(ctx, b)
}

// UpdateBook rewrites an existing book in place. ValidationError and
// repo.ErrNotFound pass through unwrapped.
func (s *Service) UpdateBook(ctx context.Context, b *book.Book) error {
	return s.repo.UpdateBook(ctx, b)
}

// DeleteBook removes a book. Deleting a missing id yields repo.ErrNotFound.
func (s *Service) DeleteBook(ctx context.Context, id int64) error {
	if err := validator.ValidateID(id); err != nil {
		return repo.ErrNotFound
	}
	return s.repo.DeleteBook(ctx, id)
}

// Ping checks the health of the service and its dependencies
func (s *Service) Ping(ctx context.Context) error {
	if err := s.repo.Ping(); err != nil {
		return fmt.Errorf("repository ping: %w", err)
	}
	return nil
}
