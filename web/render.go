package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/mkrivushin/libcat/book"
	"github.com/mkrivushin/libcat/logger"
	"github.com/mkrivushin/libcat/middleware"
	"github.com/mkrivushin/libcat/service"
)

//go:embed templates/*.html
var templateFS embed.FS

// pages are the view templates; each is parsed together with the layout
var pages = []string{
	"index.html",
	"new-book.html",
	"update-book.html",
	"delete-book.html",
	"page-not-found.html",
	"error.html",
}

var templateFuncs = template.FuncMap{
	// titlecase is used for genre labels in the listing
	"titlecase": func(s string) string {
		return cases.Title(language.Und).String(s)
	},
}

type renderer struct {
	templates map[string]*template.Template
}

func newRenderer() (*renderer, error) {
	r := &renderer{templates: make(map[string]*template.Template, len(pages))}
	for _, page := range pages {
		t, err := template.New("layout.html").Funcs(templateFuncs).
			ParseFS(templateFS, "templates/layout.html", "templates/"+page)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", page, err)
		}
		r.templates[page] = t
	}
	return r, nil
}

// listView is the view model for the catalog listing
type listView struct {
	Title  string
	Result *service.ListResult
}

// PageLink builds the listing URL for a page number, preserving the
// active search query and page size.
func (v *listView) PageLink(page int) string {
	if v.Result.Query != "" {
		return fmt.Sprintf("/books/search?search=%s&page=%d&limit=%d",
			template.URLQueryEscaper(v.Result.Query), page, v.Result.Limit)
	}
	return fmt.Sprintf("/books?page=%d&limit=%d", page, v.Result.Limit)
}

// formView is the view model for the create/update/delete forms
type formView struct {
	Title  string
	Book   *book.Book
	Errors []string
	Action string
}

// render executes a page template into a buffer first so that a broken
// template surfaces as a 500 instead of a half-written page.
func (rnd *renderer) render(w http.ResponseWriter, r *http.Request, status int, page string, data any) {
	t, ok := rnd.templates[page]
	if !ok {
		rnd.serverError(w, r, fmt.Errorf("unknown template %s", page))
		return
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout.html", data); err != nil {
		rnd.serverError(w, r, fmt.Errorf("execute template %s: %w", page, err))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		logger.Error("Failed to write response", "error", err, "page", page)
	}
}

// notFound renders the catalog's 404 page
func (rnd *renderer) notFound(w http.ResponseWriter, r *http.Request) {
	rnd.render(w, r, http.StatusNotFound, "page-not-found.html", &formView{
		Title: "Page Not Found",
	})
}

// serverError logs the failure and renders a generic 500 page with no
// detail leaked to the client.
func (rnd *renderer) serverError(w http.ResponseWriter, r *http.Request, err error) {
	logger.Error("Unhandled error", "error", err,
		"path", r.URL.Path,
		"request_id", middleware.GetRequestID(r.Context()),
	)

	t, ok := rnd.templates["error.html"]
	if !ok {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout.html", &formView{Title: "Server Error"}); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusInternalServerError)
	if _, err := buf.WriteTo(w); err != nil {
		logger.Error("Failed to write error response", "error", err)
	}
}
