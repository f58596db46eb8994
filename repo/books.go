package repo

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/mkrivushin/libcat/book"
	"github.com/mkrivushin/libcat/search"
	"github.com/mkrivushin/libcat/validator"
)

// searchable columns, in match order: title, author, genre, year.
// Year is stored as text so it participates in LIKE directly.
const searchCondition = `(title LIKE ? COLLATE NOCASE
		OR author LIKE ? COLLATE NOCASE
		OR genre LIKE ? COLLATE NOCASE
		OR year LIKE ? COLLATE NOCASE)`

func searchArgs(f *search.Filter) []any {
	p := f.Pattern()
	return []any{p, p, p, p}
}

// CreateBook validates and inserts a new record, assigning its ID.
// A *book.ValidationError is returned unwrapped so callers can match it.
func (r *Repo) CreateBook(ctx context.Context, b *book.Book) error {
	if err := validator.ValidateBook(b); err != nil {
		return err
	}

	QUERY := `INSERT INTO books(title, author, genre, year) VALUES(?, ?, ?, ?)`
	result, err := r.db.ExecContext(ctx, QUERY, b.Title, b.Author, b.Genre, b.Year)
	if err != nil {
		return fmt.Errorf("insert book: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert book id: %w", err)
	}
	b.ID = id

	return nil
}

func (r *Repo) GetBookByID(ctx context.Context, id int64) (*book.Book, error) {
	QUERY := `SELECT book_id, title, author, genre, year FROM books WHERE book_id = ?`

	var b book.Book
	err := r.db.QueryRowContext(ctx, QUERY, id).Scan(&b.ID, &b.Title, &b.Author, &b.Genre, &b.Year)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get book by ID %d: %w", id, err)
	}

	return &b, nil
}

// UpdateBook validates and rewrites an existing record in place.
// A missing id yields ErrNotFound before validation runs, so updating a
// nonexistent record never reads as a validation failure.
func (r *Repo) UpdateBook(ctx context.Context, b *book.Book) error {
	var exists int
	err := r.db.QueryRowContext(ctx, `SELECT 1 FROM books WHERE book_id = ?`, b.ID).Scan(&exists)
	if err != nil {
		if err == sql.ErrNoRows {
			return ErrNotFound
		}
		return fmt.Errorf("check book %d: %w", b.ID, err)
	}

	if err := validator.ValidateBook(b); err != nil {
		return err
	}

	QUERY := `UPDATE books SET title = ?, author = ?, genre = ?, year = ? WHERE book_id = ?`
	if _, err := r.db.ExecContext(ctx, QUERY, b.Title, b.Author, b.Genre, b.Year, b.ID); err != nil {
		return fmt.Errorf("update book %d: %w", b.ID, err)
	}

	return nil
}

func (r *Repo) DeleteBook(ctx context.Context, id int64) error {
	QUERY := `DELETE FROM books WHERE book_id = ?`
	result, err := r.db.ExecContext(ctx, QUERY, id)
	if err != nil {
		return fmt.Errorf("delete book %d: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete book %d rows affected: %w", id, err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

// CountBooks returns the number of records matching the filter
func (r *Repo) CountBooks(ctx context.Context, f *search.Filter) (int, error) {
	var qb strings.Builder
	qb.WriteString(`SELECT COUNT(*) FROM books`)

	var args []any
	if f != nil {
		qb.WriteString(` WHERE `)
		qb.WriteString(searchCondition)
		args = searchArgs(f)
	}

	var total int
	if err := r.db.QueryRowContext(ctx, qb.String(), args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count books: %w", err)
	}

	return total, nil
}

// FetchBooks returns one page of matching records in insertion order
func (r *Repo) FetchBooks(ctx context.Context, f *search.Filter, limit, offset int) ([]book.Book, error) {
	var qb strings.Builder
	qb.WriteString(`SELECT book_id, title, author, genre, year FROM books`)

	var args []any
	if f != nil {
		qb.WriteString(` WHERE `)
		qb.WriteString(searchCondition)
		args = searchArgs(f)
	}

	qb.WriteString(` ORDER BY book_id LIMIT ? OFFSET ?`)
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("query books: %w", err)
	}
	defer rows.Close()

	books := make([]book.Book, 0)
	for rows.Next() {
		var b book.Book
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.Genre, &b.Year); err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate books: %w", err)
	}

	return books, nil
}
