package web

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/mkrivushin/libcat/book"
	"github.com/mkrivushin/libcat/repo"
	"github.com/mkrivushin/libcat/search"
	"github.com/mkrivushin/libcat/service"
)

// queryInt parses an integer query parameter, falling back to def for
// missing or malformed values.
func queryInt(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}

// pathID extracts the {id} path segment. A non-integer id reads as a
// dead link, so ok=false sends the caller to the 404 page.
func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

// draftFromForm builds the request-scoped draft used to redisplay a
// form after a validation failure.
func draftFromForm(r *http.Request) *book.Book {
	return &book.Book{
		Title:  r.FormValue("title"),
		Author: r.FormValue("author"),
		Genre:  r.FormValue("genre"),
		Year:   r.FormValue("year"),
	}
}

func listBooksHandler(svc *service.Service, rnd *renderer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page := queryInt(r, "page", 1)
		limit := queryInt(r, "limit", svc.DefaultLimit())

		result, err := svc.ListBooks(r.Context(), "", page, limit)
		if err != nil {
			rnd.serverError(w, r, err)
			return
		}

		rnd.render(w, r, http.StatusOK, "index.html", &listView{
			Title:  "Books",
			Result: result,
		})
	})
}

func searchBooksHandler(svc *service.Service, rnd *renderer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query().Get("search")
		if search.Parse(query) == nil {
			// An empty query is not a search
			http.Redirect(w, r, "/books", http.StatusFound)
			return
		}

		page := queryInt(r, "page", 1)
		limit := queryInt(r, "limit", svc.DefaultLimit())

		result, err := svc.ListBooks(r.Context(), query, page, limit)
		if err != nil {
			rnd.serverError(w, r, err)
			return
		}

		rnd.render(w, r, http.StatusOK, "index.html", &listView{
			Title:  "Search Results",
			Result: result,
		})
	})
}

func newBookFormHandler(rnd *renderer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rnd.render(w, r, http.StatusOK, "new-book.html", &formView{
			Title:  "Create New Book",
			Book:   &book.Book{},
			Action: "/books/new",
		})
	})
}

func createBookHandler(svc *service.Service, rnd *renderer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		draft := draftFromForm(r)

		err := svc.CreateBook(r.Context(), draft)
		if err == nil {
			http.Redirect(w, r, "/books", http.StatusFound)
			return
		}

		var verr *book.ValidationError
		if errors.As(err, &verr) {
			// Redisplay the form with the submitted draft; the entry
			// was not persisted.
			rnd.render(w, r, http.StatusOK, "new-book.html", &formView{
				Title:  "New Book",
				Book:   draft,
				Errors: verr.Messages(),
				Action: "/books/new",
			})
			return
		}

		rnd.serverError(w, r, err)
	})
}

func editBookFormHandler(svc *service.Service, rnd *renderer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			rnd.notFound(w, r)
			return
		}

		b, err := svc.GetBook(r.Context(), id)
		if err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				rnd.notFound(w, r)
			} else {
				rnd.serverError(w, r, err)
			}
			return
		}

		rnd.render(w, r, http.StatusOK, "update-book.html", &formView{
			Title:  b.Title,
			Book:   b,
			Action: "/books/" + strconv.FormatInt(b.ID, 10),
		})
	})
}

func updateBookHandler(svc *service.Service, rnd *renderer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			rnd.notFound(w, r)
			return
		}

		draft := draftFromForm(r)
		draft.ID = id

		err := svc.UpdateBook(r.Context(), draft)
		if err == nil {
			http.Redirect(w, r, "/books", http.StatusFound)
			return
		}

		if errors.Is(err, repo.ErrNotFound) {
			rnd.notFound(w, r)
			return
		}

		var verr *book.ValidationError
		if errors.As(err, &verr) {
			rnd.render(w, r, http.StatusOK, "update-book.html", &formView{
				Title:  "Update Book",
				Book:   draft,
				Errors: verr.Messages(),
				Action: "/books/" + strconv.FormatInt(id, 10),
			})
			return
		}

		rnd.serverError(w, r, err)
	})
}

func deleteBookFormHandler(svc *service.Service, rnd *renderer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			rnd.notFound(w, r)
			return
		}

		b, err := svc.GetBook(r.Context(), id)
		if err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				rnd.notFound(w, r)
			} else {
				rnd.serverError(w, r, err)
			}
			return
		}

		rnd.render(w, r, http.StatusOK, "delete-book.html", &formView{
			Title:  "Delete Book",
			Book:   b,
			Action: "/books/" + strconv.FormatInt(b.ID, 10) + "/delete",
		})
	})
}

func deleteBookHandler(svc *service.Service, rnd *renderer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			rnd.notFound(w, r)
			return
		}

		if err := svc.DeleteBook(r.Context(), id); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				rnd.notFound(w, r)
			} else {
				rnd.serverError(w, r, err)
			}
			return
		}

		http.Redirect(w, r, "/books", http.StatusFound)
	})
}
