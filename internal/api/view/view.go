// Package view renders the embedded HTML screens.
package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/tasktrack/webapp/internal/core/domain"
)

//go:embed templates/*.html
var files embed.FS

// Data is the envelope every screen is rendered with.
type Data struct {
	Title         string
	User          *domain.User
	Notifications []domain.Notification
	ExpiresAt     time.Time
	HasExpiry     bool
	Content       any
}

// Renderer satisfies echo.Renderer. Each page template is compiled
// together with the shared layout.
type Renderer struct {
	pages map[string]*template.Template
}

func New() (*Renderer, error) {
	funcs := template.FuncMap{
		"date":      func(t time.Time) string { return t.Format("Jan 2, 2006") },
		"datetime":  func(t time.Time) string { return t.Format("Jan 2, 2006 15:04") },
		"dateinput": func(t time.Time) string { return t.Format("2006-01-02") },
		"title":     func(s string) string { return strings.ReplaceAll(s, "_", " ") },
	}

	entries, err := fs.Glob(files, "templates/*.html")
	if err != nil {
		return nil, err
	}

	pages := make(map[string]*template.Template)
	for _, entry := range entries {
		name := strings.TrimPrefix(entry, "templates/")
		if name == "layout.html" {
			continue
		}
		tmpl, err := template.New("layout.html").Funcs(funcs).ParseFS(files, "templates/layout.html", entry)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		pages[name] = tmpl
	}
	return &Renderer{pages: pages}, nil
}

// Render implements echo.Renderer.
func (r *Renderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	tmpl, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown template %q", name)
	}
	return tmpl.ExecuteTemplate(w, "layout.html", data)
}
