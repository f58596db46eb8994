// Package web serves the HTML surface of the catalog
package web

import (
	"fmt"
	"net/http"

	"github.com/mkrivushin/libcat/api"
	"github.com/mkrivushin/libcat/middleware"
	"github.com/mkrivushin/libcat/service"
)

// NewHandler creates and returns the main HTTP handler (router) for the application
func NewHandler(svc *service.Service) (http.Handler, error) {
	rnd, err := newRenderer()
	if err != nil {
		return nil, fmt.Errorf("init renderer: %w", err)
	}

	mux := http.NewServeMux()

	// HTML catalog routes
	mux.Handle("GET /{$}", http.RedirectHandler("/books", http.StatusFound))
	mux.Handle("GET /books", listBooksHandler(svc, rnd))
	mux.Handle("GET /books/search", searchBooksHandler(svc, rnd))
	mux.Handle("GET /books/new", newBookFormHandler(rnd))
	mux.Handle("POST /books/new", createBookHandler(svc, rnd))
	mux.Handle("GET /books/{id}", editBookFormHandler(svc, rnd))
	mux.Handle("POST /books/{id}", updateBookHandler(svc, rnd))
	mux.Handle("GET /books/{id}/delete", deleteBookFormHandler(svc, rnd))
	mux.Handle("POST /books/{id}/delete", deleteBookHandler(svc, rnd))

	// JSON API routes
	mux.Handle("GET /api/books", api.ListBooksHandler(svc))
	mux.Handle("GET /api/books/{id}", api.GetBookHandler(svc))
	mux.HandleFunc("GET /health", api.HealthCheckHandler(svc))

	// Everything else is a dead link
	mux.Handle("/", http.HandlerFunc(rnd.notFound))

	// Apply middleware chain
	chain := middleware.Chain(
		middleware.Recovery,
		middleware.Logger,
		middleware.RequestID,
	)

	return chain(mux), nil
}
