package ui

import (
	"sync"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/BenedictTTM/qualipro/internal/nav"
)

// Config holds the interaction tunables shared by the Go controllers and the
// browser script.
type Config struct {
	HeaderThreshold int          `koanf:"header_threshold" yaml:"header_threshold"`
	Intro           IntroTimings `koanf:"intro" yaml:"intro"`
}

// DefaultConfig returns the default interaction tunables.
func DefaultConfig() Config {
	return Config{
		HeaderThreshold: DefaultHeaderThreshold,
		Intro:           DefaultIntroTimings(),
	}
}

// AccordionSpec describes one accordion mounted by a page.
type AccordionSpec struct {
	ID     string
	Mode   Mode
	Panels []string
}

// PageSpec lists the disclosures a route mounts.
type PageSpec struct {
	Route      nav.Route
	Accordions []AccordionSpec
	Intro      bool
}

// Layout returns the PageSpec for a route.
type Layout func(nav.Route) PageSpec

// PageView owns the state created for one visit to one route. Nothing it
// holds outlives Unmount.
type PageView struct {
	ID    string
	Route nav.Route

	mu         sync.Mutex
	accordions []*Accordion
	intro      *Intro
	unmounted  bool
}

// Accordion returns the page's accordion with the given id, or nil.
func (p *PageView) Accordion(id string) *Accordion {
	for _, a := range p.accordions {
		if a.ID() == id {
			return a
		}
	}
	return nil
}

// Accordions returns the page's accordions in mount order.
func (p *PageView) Accordions() []*Accordion {
	return append([]*Accordion(nil), p.accordions...)
}

// Intro returns the page's intro overlay, or nil when the page has none.
func (p *PageView) Intro() *Intro { return p.intro }

// Unmount discards the page's state and cancels its timers.
func (p *PageView) Unmount() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.unmounted {
		return
	}
	p.unmounted = true
	if p.intro != nil {
		p.intro.Unmount()
	}
	for _, a := range p.accordions {
		a.CloseAll()
	}
}

// Unmounted reports whether Unmount has run.
func (p *PageView) Unmounted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.unmounted
}

// Shell is the header/content/footer frame that persists across navigations.
// The header and the mobile drawer belong to the shell; everything else
// belongs to the current PageView.
type Shell struct {
	mu     sync.Mutex
	cfg    Config
	clock  Clock
	layout Layout
	log    *zap.Logger

	window *Window
	lock   *ScrollLock
	header *Header
	drawer *Drawer
	page   *PageView
}

// NewShell returns an unmounted shell.
func NewShell(cfg Config, clock Clock, layout Layout, log *zap.Logger) *Shell {
	if log == nil {
		log = zap.NewNop()
	}
	if clock == nil {
		clock = RealClock()
	}
	win := NewWindow()
	lock := NewScrollLock(win.Document)
	return &Shell{
		cfg:    cfg,
		clock:  clock,
		layout: layout,
		log:    log,
		window: win,
		lock:   lock,
		header: NewHeader(cfg.HeaderThreshold),
		drawer: NewDrawer("mobile-nav", win, lock),
	}
}

// Window returns the shell's global event target.
func (s *Shell) Window() *Window { return s.window }

// ScrollLock returns the shell's scroll lock.
func (s *Shell) ScrollLock() *ScrollLock { return s.lock }

// Header returns the scroll-reactive header.
func (s *Shell) Header() *Header { return s.header }

// Drawer returns the mobile navigation drawer.
func (s *Shell) Drawer() *Drawer { return s.drawer }

// Page returns the current page view, or nil before Mount.
func (s *Shell) Page() *PageView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.page
}

// Mount attaches the header and mounts the page for route. A page that is
// already mounted is unmounted first.
func (s *Shell) Mount(route nav.Route) *PageView {
	s.header.Mount(s.window)
	s.mu.Lock()
	old := s.page
	s.page = nil
	s.mu.Unlock()
	if old != nil {
		old.Unmount()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.page = s.mountPageLocked(route)
	return s.page
}

// Navigate closes the drawer, unmounts the current page and mounts the page
// for path.
func (s *Shell) Navigate(path string) (*PageView, error) {
	route, err := nav.Parse(path)
	if err != nil {
		return nil, err
	}
	s.drawer.RouteChanged()

	s.mu.Lock()
	old := s.page
	s.mu.Unlock()
	if old != nil {
		old.Unmount()
	}

	s.window.ScrollTo(0)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.page = s.mountPageLocked(route)
	return s.page, nil
}

// Unmount tears down the page, the drawer and the header listener.
func (s *Shell) Unmount() {
	s.drawer.Unmount()
	s.mu.Lock()
	page := s.page
	s.page = nil
	s.mu.Unlock()
	if page != nil {
		page.Unmount()
	}
	s.header.Unmount()
}

func (s *Shell) mountPageLocked(route nav.Route) *PageView {
	spec := PageSpec{Route: route}
	if s.layout != nil {
		spec = s.layout(route)
	}
	p := &PageView{ID: ulid.Make().String(), Route: route}
	for _, as := range spec.Accordions {
		p.accordions = append(p.accordions, NewAccordion(as.ID, as.Mode, as.Panels...))
	}
	if spec.Intro {
		p.intro = NewIntro(s.clock, s.cfg.Intro, s.log.With(zap.String("page_view", p.ID)))
		p.intro.Mount()
	}
	s.log.Debug("page mounted", zap.String("route", string(route)), zap.String("page_view", p.ID))
	return p
}
