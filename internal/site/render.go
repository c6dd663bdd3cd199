package site

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"time"

	"github.com/BenedictTTM/qualipro/internal/config"
	"github.com/BenedictTTM/qualipro/internal/content"
	"github.com/BenedictTTM/qualipro/internal/nav"
	"github.com/BenedictTTM/qualipro/internal/seo"
	"github.com/BenedictTTM/qualipro/internal/ui"
)

// ErrorView is the copy shown by the error page.
type ErrorView struct {
	Status  int
	Message string
	Details string
	// Stack is only set in development builds.
	Stack string
}

// NotFound is the view for unknown paths.
func NotFound() ErrorView {
	return ErrorView{
		Status:  http.StatusNotFound,
		Message: "404",
		Details: "The requested page could not be found.",
	}
}

// StatusError is the view for any other HTTP error status.
func StatusError(status int) ErrorView {
	if status == http.StatusNotFound {
		return NotFound()
	}
	details := http.StatusText(status)
	if details == "" {
		details = "An unexpected error occurred."
	}
	return ErrorView{Status: status, Message: "Error", Details: details}
}

// Internal is the view for unexpected failures. The error message and
// stack are only revealed when dev is set.
func Internal(err error, stack []byte, dev bool) ErrorView {
	v := ErrorView{
		Status:  http.StatusInternalServerError,
		Message: "Oops!",
		Details: "An unexpected error occurred.",
	}
	if dev && err != nil {
		v.Details = err.Error()
		v.Stack = string(stack)
	}
	return v
}

// RenderOptions carries per-request values into a render.
type RenderOptions struct {
	Nonce      string
	LiveReload string
}

type pageData struct {
	Route       nav.Route
	Site        *content.Site
	Page        content.PageMeta
	Meta        seo.Meta
	JSONLD      []template.JS
	HeaderLinks []nav.Link
	FooterLinks []nav.Link
	Breadcrumbs []nav.Crumb
	Spec        ui.PageSpec
	Intro       bool
	UI          ui.Config
	Nonce       string
	LiveReload  string
	Error       *ErrorView
	Year        int
}

// AccordionMode returns the mode attribute for the page's accordion id.
func (d pageData) AccordionMode(id string) string {
	for _, a := range d.Spec.Accordions {
		if a.ID == id {
			return a.Mode.String()
		}
	}
	return ui.Exclusive.String()
}

// Renderer turns a content copy into HTML pages.
type Renderer struct {
	engine   *TemplateEngine
	seo      *seo.Builder
	ui       ui.Config
	introURL string
	now      func() time.Time
}

// NewRenderer parses the templates and binds the configured base URL and
// interaction timings.
func NewRenderer(cfg *config.Config, assets *Assets) (*Renderer, error) {
	engine, err := NewTemplateEngine(content.NewMarkdown(), assets)
	if err != nil {
		return nil, err
	}
	return &Renderer{
		engine:   engine,
		seo:      seo.NewBuilder(cfg.BaseURL),
		ui:       cfg.UI,
		introURL: cfg.IntroVideoURL,
		now:      time.Now,
	}, nil
}

// SEO returns the metadata builder bound to the site's base URL.
func (r *Renderer) SEO() *seo.Builder { return r.seo }

// Effective applies configuration overrides to a content copy. The input is
// not modified.
func (r *Renderer) Effective(s *content.Site) *content.Site {
	return WithIntroVideo(s, r.introURL)
}

// WithIntroVideo returns s with the home intro video replaced by url. An
// empty url returns s itself.
func WithIntroVideo(s *content.Site, url string) *content.Site {
	if url == "" {
		return s
	}
	cp := *s
	cp.Home.IntroVideo.Src = url
	return &cp
}

// Page renders route to w. Output is buffered so a template failure never
// leaves a half-written page.
func (r *Renderer) Page(w io.Writer, s *content.Site, route nav.Route, opts RenderOptions) error {
	s = r.Effective(s)
	jsonld, err := r.seo.StructuredData(s, route)
	if err != nil {
		return err
	}
	spec := Layout(s)(route)
	data := pageData{
		Route:       route,
		Site:        s,
		Page:        s.Page(route),
		Meta:        r.seo.Meta(s, route),
		JSONLD:      jsonld,
		HeaderLinks: nav.Header(route),
		FooterLinks: nav.Footer(route),
		Breadcrumbs: nav.Breadcrumbs(route),
		Spec:        spec,
		Intro:       spec.Intro,
		UI:          r.ui,
		Nonce:       opts.Nonce,
		LiveReload:  opts.LiveReload,
		Year:        r.now().Year(),
	}
	return r.execute(w, route.Template(), data)
}

// Error renders the error page for v.
func (r *Renderer) Error(w io.Writer, s *content.Site, v ErrorView, opts RenderOptions) error {
	s = r.Effective(s)
	data := pageData{
		Site: s,
		Meta: seo.Meta{
			Title:       fmt.Sprintf("%s | %s", v.Message, s.Organization.Name),
			Description: v.Details,
			SiteName:    s.Organization.Name,
		},
		HeaderLinks: nav.Header(""),
		FooterLinks: nav.Footer(""),
		UI:          r.ui,
		Nonce:       opts.Nonce,
		LiveReload:  opts.LiveReload,
		Error:       &v,
		Year:        r.now().Year(),
	}
	return r.execute(w, errorTemplate, data)
}

func (r *Renderer) execute(w io.Writer, name string, data pageData) error {
	var buf bytes.Buffer
	if err := r.engine.RenderTo(&buf, name, data); err != nil {
		return fmt.Errorf("rendering %s: %w", name, err)
	}
	_, err := buf.WriteTo(w)
	return err
}
