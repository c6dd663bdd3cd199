package site

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"
	"time"

	"github.com/BenedictTTM/qualipro/internal/content"
	"github.com/BenedictTTM/qualipro/internal/nav"
)

//go:embed templates/*.html
var templateFS embed.FS

// errorTemplate renders 404 and 500 pages.
const errorTemplate = "error.html"

// TemplateEngine holds one parsed template set per page. Each set is the
// layout plus the shared partials plus the page itself.
type TemplateEngine struct {
	templates map[string]*template.Template
}

func templateFuncs(md *content.Markdown, assets *Assets) template.FuncMap {
	return template.FuncMap{
		"markdown": md.Render,
		"asset":    assets.URL,
		"ms":       func(d time.Duration) int64 { return d.Milliseconds() },
		"inc":      func(i int) int { return i + 1 },
		"join":     strings.Join,
		"tel":      func(n string) template.URL { return template.URL("tel:" + n) },
		"mailto":   func(addr string) template.URL { return template.URL("mailto:" + addr) },
		"route":    func(r nav.Route) string { return string(r) },
	}
}

// NewTemplateEngine parses every embedded page template.
func NewTemplateEngine(md *content.Markdown, assets *Assets) (*TemplateEngine, error) {
	funcs := templateFuncs(md, assets)

	pages := []string{errorTemplate}
	for _, r := range nav.All() {
		pages = append(pages, r.Template())
	}

	engine := &TemplateEngine{templates: make(map[string]*template.Template)}
	for _, page := range pages {
		t, err := template.New("layout.html").Funcs(funcs).ParseFS(
			templateFS,
			"templates/layout.html",
			"templates/partials.html",
			"templates/"+page,
		)
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", page, err)
		}
		engine.templates[page] = t
	}
	return engine, nil
}

// RenderTo executes the named page inside the layout.
func (e *TemplateEngine) RenderTo(w io.Writer, name string, data any) error {
	t, ok := e.templates[name]
	if !ok {
		return fmt.Errorf("template %q not found", name)
	}
	return t.ExecuteTemplate(w, "layout.html", data)
}
