// Package preview is a terminal rendition of the site. It drives the same
// interaction controllers as the browser script: the mobile drawer, the
// accordions, the intro overlay and the scroll-reactive header.
package preview

import (
	"context"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/BenedictTTM/qualipro/internal/content"
	"github.com/BenedictTTM/qualipro/internal/nav"
	"github.com/BenedictTTM/qualipro/internal/site"
	"github.com/BenedictTTM/qualipro/internal/ui"
)

// LinePx is the pixel height one terminal line stands for when the scroll
// offset is reported to the header.
const LinePx = 20

// chromeLines is the height taken by the header, menu and status bar.
const chromeLines = 4

// introProbedMsg reports the intro video check for one page view.
type introProbedMsg struct {
	pageID string
	err    error
}

// Options configures a Model.
type Options struct {
	Site  *content.Site
	UI    ui.Config
	Route nav.Route
	// Clock defaults to a LoopClock, which must be attached to the program.
	Clock        ui.Clock
	Probe        Prober
	ProbeTimeout time.Duration
	Context      context.Context
	Log          *zap.Logger
}

// panelRef addresses one accordion panel on the current page.
type panelRef struct {
	accordion string
	panel     string
	title     string
	body      []string
}

// Model is the Bubble Tea model for the preview.
type Model struct {
	site    *content.Site
	shell   *ui.Shell
	clock   ui.Clock
	loop    *LoopClock
	probe   Prober
	timeout time.Duration
	ctx     context.Context
	log     *zap.Logger

	viewport viewport.Model
	panels   []panelRef
	cursor   int
	width    int
	height   int
	err      error
	quitting bool
}

// New mounts the shell at opts.Route and returns the model.
func New(opts Options) Model {
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}
	if opts.Clock == nil {
		opts.Clock = NewLoopClock()
	}
	if opts.Probe == nil {
		opts.Probe = OfflineProber()
	}
	if opts.ProbeTimeout <= 0 {
		opts.ProbeTimeout = DefaultProbeTimeout
	}
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if opts.Route == "" {
		opts.Route = nav.Home
	}

	m := Model{
		site:     opts.Site,
		shell:    ui.NewShell(opts.UI, opts.Clock, site.Layout(opts.Site), opts.Log),
		clock:    opts.Clock,
		probe:    opts.Probe,
		timeout:  opts.ProbeTimeout,
		ctx:      opts.Context,
		log:      opts.Log,
		viewport: viewport.New(80, 20),
	}
	if lc, ok := opts.Clock.(*LoopClock); ok {
		m.loop = lc
	}
	m.shell.Mount(opts.Route)
	m.loadPage()
	return m
}

// Shell exposes the controllers driven by the model.
func (m Model) Shell() *ui.Shell { return m.shell }

// Init starts the intro video check when the first page has an intro.
func (m Model) Init() tea.Cmd {
	return m.probeIntro()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-chromeLines, 1)
		m.refresh()
		return m, nil

	case timerFiredMsg:
		if m.loop != nil {
			m.loop.Run(msg.id)
		}
		return m, nil

	case introProbedMsg:
		m.handleProbe(msg)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	drawer := m.shell.Drawer()
	key := msg.String()

	switch key {
	case "ctrl+c", "q":
		m.quitting = true
		m.shell.Unmount()
		if m.loop != nil {
			m.loop.StopAll()
		}
		return m, tea.Quit

	case "m":
		drawer.Toggle()

	case "esc":
		m.shell.Window().KeyDown(ui.KeyEscape)

	case "b":
		drawer.Click(ui.ClickBackdrop)

	case "s":
		if intro := m.shell.Page().Intro(); intro != nil {
			intro.Skip()
		}

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < len(m.panels)-1 {
			m.cursor++
		}

	case "enter", " ":
		m.togglePanel()

	case "pgdown", "pgup", "home", "end":
		m.scroll(key)

	default:
		if n, err := strconv.Atoi(key); err == nil && n >= 1 && n <= len(nav.All()) {
			if drawer.IsOpen() {
				drawer.Click(ui.ClickNavLink)
			}
			return m.navigate(nav.All()[n-1])
		}
	}
	m.refresh()
	return m, nil
}

func (m Model) navigate(route nav.Route) (tea.Model, tea.Cmd) {
	if _, err := m.shell.Navigate(string(route)); err != nil {
		m.err = err
		return m, nil
	}
	m.err = nil
	m.loadPage()
	return m, m.probeIntro()
}

// probeIntro returns the reachability check for the current page's intro.
func (m Model) probeIntro() tea.Cmd {
	page := m.shell.Page()
	if page == nil || page.Intro() == nil {
		return nil
	}
	id, url := page.ID, m.site.Home.IntroVideo.Src
	probe, parent, timeout := m.probe, m.ctx, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(parent, timeout)
		defer cancel()
		return introProbedMsg{pageID: id, err: probe(ctx, url)}
	}
}

func (m Model) handleProbe(msg introProbedMsg) {
	page := m.shell.Page()
	if page == nil || page.ID != msg.pageID || page.Intro() == nil {
		return
	}
	intro := page.Intro()
	if msg.err != nil {
		intro.MediaError(msg.err)
		return
	}
	intro.MediaReady(func() error { return nil })
	intro.MediaPlay()
}

func (m *Model) togglePanel() {
	if m.cursor >= len(m.panels) {
		return
	}
	ref := m.panels[m.cursor]
	if acc := m.shell.Page().Accordion(ref.accordion); acc != nil {
		if err := acc.Toggle(ref.panel); err != nil {
			m.err = err
		}
	}
}

// scroll moves the viewport unless the page scroll is locked, then reports
// the new offset to the window.
func (m *Model) scroll(key string) {
	if !m.shell.Window().Document.ScrollEnabled() {
		return
	}
	off := m.viewport.YOffset
	switch key {
	case "pgdown":
		off += m.viewport.Height
	case "pgup":
		off -= m.viewport.Height
	case "home":
		off = 0
	case "end":
		off = 1 << 20
	}
	m.viewport.SetYOffset(off)
	m.shell.Window().ScrollTo(m.viewport.YOffset * LinePx)
}

// loadPage rebuilds the panel list for the current page and resets the
// cursor and scroll position.
func (m *Model) loadPage() {
	m.panels = m.panelsFor(m.shell.Page())
	m.cursor = 0
	m.viewport.SetYOffset(0)
	m.refresh()
}

func (m Model) panelsFor(page *ui.PageView) []panelRef {
	if page == nil {
		return nil
	}
	var refs []panelRef
	for _, acc := range page.Accordions() {
		for i, id := range acc.Panels() {
			ref := panelRef{accordion: acc.ID(), panel: id}
			switch acc.ID() {
			case "services":
				if i < len(m.site.Services) {
					s := m.site.Services[i]
					ref.title, ref.body = s.Title, append([]string{s.Description}, s.KeyAreas...)
				}
			case "industries":
				if i < len(m.site.Industries) {
					ind := m.site.Industries[i]
					ref.title, ref.body = ind.Title, append([]string{ind.Description}, ind.Value...)
				}
			case "tools":
				if i < len(m.site.Tools) {
					t := m.site.Tools[i]
					ref.title, ref.body = t.Name+" - "+t.FullName, append([]string{t.Description}, t.WhatItDoes...)
				}
			}
			refs = append(refs, ref)
		}
	}
	return refs
}

// refresh re-renders the page body into the viewport.
func (m *Model) refresh() {
	off := m.viewport.YOffset
	m.viewport.SetContent(m.renderBody())
	m.viewport.SetYOffset(off)
}
