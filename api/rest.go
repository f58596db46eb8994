// Package api serves the JSON read surface of the catalog
package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/mkrivushin/libcat/book"
	"github.com/mkrivushin/libcat/repo"
	"github.com/mkrivushin/libcat/service"
)

// listResponse is the JSON shape of a catalog page
type listResponse struct {
	Books     []book.Book `json:"books"`
	Total     int         `json:"total"`
	Page      int         `json:"page"`
	PageCount int         `json:"page_count"`
	Limit     int         `json:"limit"`
	Query     string      `json:"query,omitempty"`
}

// ListBooksHandler handles GET /api/books?q=&page=&limit=
func ListBooksHandler(svc *service.Service) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		query := r.URL.Query().Get("q")

		page := 1
		if pageStr := r.URL.Query().Get("page"); pageStr != "" {
			p, err := strconv.Atoi(pageStr)
			if err != nil {
				respondWithValidationError(w, "invalid 'page' parameter")
				return
			}
			page = p
		}

		limit := svc.DefaultLimit()
		if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
			l, err := strconv.Atoi(limitStr)
			if err != nil {
				respondWithValidationError(w, "invalid 'limit' parameter")
				return
			}
			limit = l
		}

		result, err := svc.ListBooks(ctx, query, page, limit)
		if err != nil {
			respondWithError(w, "Failed to list books", err, http.StatusInternalServerError)
			return
		}

		respondWithJSON(w, listResponse{
			Books:     result.Books,
			Total:     result.Total,
			Page:      result.Page,
			PageCount: result.Pages.PageCount,
			Limit:     result.Limit,
			Query:     result.Query,
		})
	})
}

// GetBookHandler handles GET /api/books/{id}
func GetBookHandler(svc *service.Service) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
		if err != nil {
			respondWithValidationError(w, "invalid book ID")
			return
		}

		ctx := r.Context()
		b, err := svc.GetBook(ctx, id)
		if err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				respondWithError(w, "book not found", err, http.StatusNotFound)
			} else {
				respondWithError(w, "Failed to get book", err, http.StatusInternalServerError)
			}
			return
		}

		respondWithJSON(w, b)
	})
}

// HealthCheckHandler handles GET /health
func HealthCheckHandler(svc *service.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if err := svc.Ping(ctx); err != nil {
			respondWithError(w, "service unavailable", err, http.StatusServiceUnavailable)
			return
		}

		respondWithJSON(w, map[string]string{
			"status": "healthy",
		})
	}
}
