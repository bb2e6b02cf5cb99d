package web

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"go-todo-app/internal/core/domain/auth"
	"go-todo-app/internal/core/domain/todo"
)

//go:embed templates/*.html
var templatesFS embed.FS

// viewData is what every page template receives.
type viewData struct {
	Title string
	Flash string
	User  *auth.User
	Items []todo.Item
}

// Views renders the server-side pages. Each page template is parsed together
// with the shared layout.
type Views struct {
	pages map[string]*template.Template
}

func NewViews() (*Views, error) {
	names := []string{"index", "about", "login", "register", "notfound"}
	pages := make(map[string]*template.Template, len(names))
	for _, name := range names {
		tmpl, err := template.ParseFS(templatesFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		pages[name] = tmpl
	}
	return &Views{pages: pages}, nil
}

func (v *Views) Render(w http.ResponseWriter, status int, page string, data viewData) error {
	tmpl, ok := v.pages[page]
	if !ok {
		return fmt.Errorf("unknown page: %s", page)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	return tmpl.ExecuteTemplate(w, "layout", data)
}
