package api

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"strings"
	"unicode"

	"github.com/labstack/echo/v4"
)

//go:embed templates
var templateFiles embed.FS

const layoutTemplate = "layout.html"

var templateFuncs = template.FuncMap{
	"initials": initials,
}

// Renderer executes the page templates. Every page is parsed together with the shared layout.
type Renderer struct {
	pages map[string]*template.Template
}

var _ echo.Renderer = &Renderer{}

func NewRenderer() (*Renderer, error) {
	names, err := fs.Glob(templateFiles, "templates/*.html")
	if err != nil {
		return nil, err
	}

	pages := make(map[string]*template.Template, len(names))
	for _, name := range names {
		page := strings.TrimPrefix(name, "templates/")
		if page == layoutTemplate {
			continue
		}

		t, err := template.New(page).Funcs(templateFuncs).ParseFS(templateFiles, "templates/"+layoutTemplate, name)
		if err != nil {
			return nil, fmt.Errorf("unable to parse template %s: %w", page, err)
		}
		pages[page] = t
	}

	return &Renderer{pages: pages}, nil
}

func (r *Renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("template %s is not defined", name)
	}
	return t.ExecuteTemplate(w, "layout", data)
}

func initials(name string) string {
	var b strings.Builder
	for _, word := range strings.Fields(name) {
		r := []rune(word)[0]
		if unicode.IsLetter(r) {
			b.WriteRune(unicode.ToUpper(r))
		}
		if b.Len() >= 2 {
			break
		}
	}
	return b.String()
}
