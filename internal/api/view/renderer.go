// Package view renders the HTML pages of the site from embedded templates.
package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strings"

	"github.com/labstack/echo/v4"
)

//go:embed templates
var templatesFS embed.FS

const layoutFile = "templates/layout.html"

// Page names accepted by Renderer.Render.
const (
	PageLogin          = "login/index"
	PageClientesListar = "clientes/listar"
	PageClientesIndex  = "clientes/index"
	PageClientesCrear  = "clientes/crear"
	PageClientesEditar = "clientes/modificar"
	PageClientesBorrar = "clientes/eliminar"
	PageError          = "shared/error"
	PageNotFound       = "shared/notfound"
)

// Renderer implements echo.Renderer. Each page is parsed together with the
// shared layout so pages can redefine the "title" and "content" blocks.
type Renderer struct {
	pages map[string]*template.Template
}

// NewRenderer parses every page under templates/.
func NewRenderer() (*Renderer, error) {
	funcs := template.FuncMap{
		"fieldError": func(errs map[string]string, field string) string { return errs[field] },
	}

	layout, err := template.New("layout").Funcs(funcs).ParseFS(templatesFS, layoutFile)
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}

	r := &Renderer{pages: make(map[string]*template.Template)}
	err = fs.WalkDir(templatesFS, "templates", func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || p == layoutFile || path.Ext(p) != ".html" {
			return err
		}
		t, err := template.Must(layout.Clone()).ParseFS(templatesFS, p)
		if err != nil {
			return fmt.Errorf("parse %s: %w", p, err)
		}
		name := strings.TrimSuffix(strings.TrimPrefix(p, "templates/"), ".html")
		r.pages[name] = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}

// Render satisfies the echo.Renderer interface.
func (r *Renderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("view %q not found", name)
	}
	return t.ExecuteTemplate(w, "layout.html", data)
}
