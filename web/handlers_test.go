package web

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkrivushin/libcat/book"
	"github.com/mkrivushin/libcat/config"
	"github.com/mkrivushin/libcat/logger"
	"github.com/mkrivushin/libcat/repo"
	"github.com/mkrivushin/libcat/service"
)

func init() {
	logger.Init("error")
}

func newTestServer(t *testing.T) (http.Handler, *service.Service) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	storage, err := repo.GetStorage(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = storage.Close() })

	svc := service.New(storage, config.CatalogConfig{PageSize: 10, MaxPageSize: 50, WindowRadius: 3})

	handler, err := NewHandler(svc)
	require.NoError(t, err)
	return handler, svc
}

func createBook(t *testing.T, svc *service.Service, title, author, genre, year string) *book.Book {
	t.Helper()
	b := &book.Book{Title: title, Author: author, Genre: genre, Year: year}
	require.NoError(t, svc.CreateBook(context.Background(), b))
	return b
}

func get(handler http.Handler, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func postForm(handler http.Handler, target string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func TestRootRedirectsToBooks(t *testing.T) {
	handler, _ := newTestServer(t)

	w := get(handler, "/")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/books", w.Header().Get("Location"))
}

func TestListBooksEmptyCatalog(t *testing.T) {
	handler, _ := newTestServer(t)

	w := get(handler, "/books")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "No books found")
}

func TestListBooksSecondPage(t *testing.T) {
	handler, svc := newTestServer(t)
	for i := 1; i <= 25; i++ {
		createBook(t, svc, fmt.Sprintf("Book %02d", i), "Author", "Fiction", "2000")
	}

	w := get(handler, "/books?page=2&limit=10")
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, "Book 11")
	assert.Contains(t, body, "Book 20")
	assert.NotContains(t, body, "Book 10<")
	assert.NotContains(t, body, "Book 21")
	assert.Contains(t, body, "Page 2 of 3")
}

func TestListBooksLimitIsCapped(t *testing.T) {
	handler, svc := newTestServer(t)
	for i := 1; i <= 60; i++ {
		createBook(t, svc, fmt.Sprintf("Book %02d", i), "Author", "", "")
	}

	w := get(handler, "/books?limit=500")
	require.Equal(t, http.StatusOK, w.Code)
	// 60 books at the capped limit of 50 still gives two pages
	assert.Contains(t, w.Body.String(), "Page 1 of 2")
}

func TestSearchEmptyQueryRedirects(t *testing.T) {
	handler, _ := newTestServer(t)

	for _, target := range []string{"/books/search", "/books/search?search=", "/books/search?search=%20%20"} {
		w := get(handler, target)
		assert.Equal(t, http.StatusFound, w.Code, "target %s", target)
		assert.Equal(t, "/books", w.Header().Get("Location"))
	}
}

func TestSearchFiltersResults(t *testing.T) {
	handler, svc := newTestServer(t)
	createBook(t, svc, "Solaris", "Stanislaw Lem", "Science Fiction", "1961")
	createBook(t, svc, "Emma", "Jane Austen", "Classic", "1815")

	w := get(handler, "/books/search?search=FIC")
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, "Solaris")
	assert.NotContains(t, body, "Emma")
}

func TestNewBookForm(t *testing.T) {
	handler, _ := newTestServer(t)

	w := get(handler, "/books/new")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Create New Book")
}

func TestCreateBook(t *testing.T) {
	handler, svc := newTestServer(t)

	w := postForm(handler, "/books/new", url.Values{
		"title":  {"The Dispossessed"},
		"author": {"Ursula K. Le Guin"},
		"genre":  {"Science Fiction"},
		"year":   {"1974"},
	})
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/books", w.Header().Get("Location"))

	result, err := svc.ListBooks(context.Background(), "", 1, 10)
	require.NoError(t, err)
	require.Len(t, result.Books, 1)
	assert.Equal(t, "The Dispossessed", result.Books[0].Title)
}

func TestCreateBookValidationError(t *testing.T) {
	handler, svc := newTestServer(t)

	w := postForm(handler, "/books/new", url.Values{
		"author": {"Ursula K. Le Guin"},
		"genre":  {"Science Fiction"},
	})
	// Validation failures redisplay the form, they are not HTTP errors
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, "Please provide a value for")
	// The submitted draft is preserved for redisplay
	assert.Contains(t, body, "Ursula K. Le Guin")

	result, err := svc.ListBooks(context.Background(), "", 1, 10)
	require.NoError(t, err)
	assert.Zero(t, result.Total, "nothing may be persisted on validation failure")
}

func TestEditBookForm(t *testing.T) {
	handler, svc := newTestServer(t)
	b := createBook(t, svc, "Dune", "Frank Herbert", "Science Fiction", "1965")

	w := get(handler, fmt.Sprintf("/books/%d", b.ID))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Dune")
	assert.Contains(t, w.Body.String(), "Update Book")
}

func TestEditBookFormNotFound(t *testing.T) {
	handler, _ := newTestServer(t)

	for _, target := range []string{"/books/999", "/books/abc"} {
		w := get(handler, target)
		assert.Equal(t, http.StatusNotFound, w.Code, "target %s", target)
		assert.Contains(t, w.Body.String(), "Looks like this page does not exist!")
	}
}

func TestUpdateBook(t *testing.T) {
	handler, svc := newTestServer(t)
	b := createBook(t, svc, "1984", "George Orwell", "", "")

	w := postForm(handler, fmt.Sprintf("/books/%d", b.ID), url.Values{
		"title":  {"Nineteen Eighty-Four"},
		"author": {"George Orwell"},
		"genre":  {"Dystopia"},
		"year":   {"1949"},
	})
	require.Equal(t, http.StatusFound, w.Code)

	got, err := svc.GetBook(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, "Nineteen Eighty-Four", got.Title)
	assert.Equal(t, "1949", got.Year)
}

func TestUpdateBookNotFound(t *testing.T) {
	handler, _ := newTestServer(t)

	w := postForm(handler, "/books/999", url.Values{
		"title":  {"Ghost"},
		"author": {"Nobody"},
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateBookValidationError(t *testing.T) {
	handler, svc := newTestServer(t)
	b := createBook(t, svc, "Dune", "Frank Herbert", "", "")

	w := postForm(handler, fmt.Sprintf("/books/%d", b.ID), url.Values{
		"title":  {""},
		"author": {"Frank Herbert"},
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Please provide a value for")

	// Stored record is untouched
	got, err := svc.GetBook(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dune", got.Title)
}

func TestDeleteBookFlow(t *testing.T) {
	handler, svc := newTestServer(t)
	b := createBook(t, svc, "Emma", "Jane Austen", "Classic", "1815")

	w := get(handler, fmt.Sprintf("/books/%d/delete", b.ID))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Are you sure")

	w = postForm(handler, fmt.Sprintf("/books/%d/delete", b.ID), nil)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/books", w.Header().Get("Location"))

	// Deleting again falls through to the 404 page
	w = postForm(handler, fmt.Sprintf("/books/%d/delete", b.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUnknownRouteRenders404(t *testing.T) {
	handler, _ := newTestServer(t)

	w := get(handler, "/no/such/page")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Looks like this page does not exist!")
}

func TestHealthEndpoint(t *testing.T) {
	handler, _ := newTestServer(t)

	w := get(handler, "/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
}
