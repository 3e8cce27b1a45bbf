// Package views renders full pages: a shared layout wrapping one page template.
package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"strings"

	"github.com/shrimpsizemoose/eduspace/internal/forms"
)

//go:embed templates
var files embed.FS

type NavItem struct {
	Label  string
	Path   string
	Active bool
}

// Page is the data every template receives. Content is page specific.
type Page struct {
	Title   string
	App     string
	User    string
	Role    string
	Nav     []NavItem
	Banner  string
	Error   string
	Back    string
	Query   string
	Print   bool
	Content any
}

// FormData feeds the "form" partial. Values refill inputs after a failed submit.
type FormData struct {
	Form   forms.Form
	Values forms.Values
}

type LoginPage struct {
	Form     FormData
	Teachers []string
	Students []string
}

type Renderer struct {
	pages map[string]*template.Template
}

var funcs = template.FuncMap{
	"inc": func(i int) int { return i + 1 },
	"join": strings.Join,
}

func New() (*Renderer, error) {
	names, err := fs.Glob(files, "templates/pages/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}

	r := &Renderer{pages: make(map[string]*template.Template, len(names))}
	for _, name := range names {
		page := strings.TrimSuffix(path.Base(name), ".html")
		t, err := template.New(page).Funcs(funcs).ParseFS(files,
			"templates/layout.html",
			"templates/partials.html",
			name,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", name, err)
		}
		r.pages[page] = t
	}
	return r, nil
}

// Render executes into a buffer first so a template error never leaves half a page behind.
func (r *Renderer) Render(w http.ResponseWriter, status int, page string, data Page) error {
	t, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("failed to render %s: %w", page, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
