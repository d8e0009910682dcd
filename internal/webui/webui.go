// Package webui embeds the HTML templates for the LED Hub web interface
// and renders them with shared layout data.
package webui

import (
	"embed"
	"fmt"
	"html/template"
	"io"
)

//go:embed templates/*.html
var templateFS embed.FS

// pages that render inside the shared layout.
var pageNames = []string{"login", "index", "history", "change_password", "manage_users"}

// Renderer renders the embedded page templates.
type Renderer struct {
	pages map[string]*template.Template
}

// PageData is the data passed to every page template.
type PageData struct {
	Title    string
	Username string
	IsAdmin  bool
	Flash    string
	// Data carries page-specific content (history entries, user list, ...).
	Data any
}

// NewRenderer parses the embedded templates.
//
// Returns:
//   - *Renderer: Ready-to-use renderer
//   - error: If any template fails to parse
func NewRenderer() (*Renderer, error) {
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		tmpl, err := template.ParseFS(templateFS,
			"templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", name, err)
		}
		pages[name] = tmpl
	}
	return &Renderer{pages: pages}, nil
}

// Render writes a page to w.
//
// Parameters:
//   - w: Destination writer (usually the http.ResponseWriter)
//   - name: Page name (login, index, history, change_password, manage_users)
//   - data: Page data
//
// Returns:
//   - error: If the page is unknown or template execution fails
func (r *Renderer) Render(w io.Writer, name string, data PageData) error {
	tmpl, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown page: %s", name)
	}
	if err := tmpl.ExecuteTemplate(w, "layout", data); err != nil {
		return fmt.Errorf("rendering page %s: %w", name, err)
	}
	return nil
}
