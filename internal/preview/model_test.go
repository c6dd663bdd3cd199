package preview

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/BenedictTTM/qualipro/internal/content"
	"github.com/BenedictTTM/qualipro/internal/nav"
	"github.com/BenedictTTM/qualipro/internal/ui"
)

func testModel(t *testing.T, probe Prober) (Model, *ui.ManualClock) {
	t.Helper()
	s, err := content.Default()
	if err != nil {
		t.Fatalf("content.Default: %v", err)
	}
	clock := ui.NewManualClock(time.Unix(0, 0))
	m := New(Options{
		Site:  s,
		UI:    ui.DefaultConfig(),
		Clock: clock,
		Probe: probe,
	})
	return m, clock
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "pgdown":
		return tea.KeyMsg{Type: tea.KeyPgDown}
	case "home":
		return tea.KeyMsg{Type: tea.KeyHome}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func send(t *testing.T, m Model, msgs ...tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(Model)
	}
	return m, cmd
}

func press(t *testing.T, m Model, keys ...string) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		m, cmd = send(t, m, keyMsg(k))
	}
	return m, cmd
}

func TestNewMountsHomeWithIntro(t *testing.T) {
	m, clock := testModel(t, OfflineProber())

	page := m.Shell().Page()
	if page == nil || page.Route != nav.Home {
		t.Fatalf("expected home page, got %+v", page)
	}
	intro := page.Intro()
	if intro == nil {
		t.Fatal("home page should mount the intro")
	}
	if intro.State() != ui.IntroLoading {
		t.Errorf("state = %s, want loading", intro.State())
	}
	if clock.Pending() != 1 {
		t.Errorf("pending timers = %d, want the safety timer only", clock.Pending())
	}
	if !strings.Contains(m.View(), "Loading intro video...") {
		t.Error("view should show the intro overlay while loading")
	}
}

func TestIntroPlaysThenDismisses(t *testing.T) {
	m, clock := testModel(t, OfflineProber())

	cmd := m.Init()
	if cmd == nil {
		t.Fatal("Init should probe the intro video")
	}
	m, _ = send(t, m, cmd())

	intro := m.Shell().Page().Intro()
	if intro.State() != ui.IntroPlaying {
		t.Fatalf("state = %s, want playing", intro.State())
	}

	clock.Advance(2 * time.Second)
	if intro.State() != ui.IntroDismissed || intro.Cause() != ui.CausePlayback {
		t.Fatalf("state = %s cause = %q, want dismissed by playback", intro.State(), intro.Cause())
	}
	if !intro.Exiting() {
		t.Error("exit transition should be running")
	}

	clock.Advance(600 * time.Millisecond)
	if intro.Mounted() {
		t.Error("intro should unmount after the exit transition")
	}
	if clock.Pending() != 0 {
		t.Errorf("pending timers = %d, want 0", clock.Pending())
	}
	if strings.Contains(m.View(), "Loading intro video...") {
		t.Error("overlay should be gone")
	}
}

func TestIntroProbeFailure(t *testing.T) {
	failing := func(context.Context, string) error { return errors.New("404 Not Found") }
	m, clock := testModel(t, failing)

	m, _ = send(t, m, m.Init()())
	intro := m.Shell().Page().Intro()
	if intro.State() != ui.IntroErrored {
		t.Fatalf("state = %s, want errored", intro.State())
	}
	view := m.View()
	if strings.Contains(strings.ToLower(view), "unavailable") {
		t.Errorf("media failure must not be shown, view:\n%s", view)
	}
	if !strings.Contains(view, "Entering site...") {
		t.Error("errored intro should read as the site loading")
	}

	clock.Advance(800 * time.Millisecond)
	if intro.Cause() != ui.CauseError {
		t.Errorf("cause = %q, want error", intro.Cause())
	}
}

func TestIntroProbeTimeout(t *testing.T) {
	s, err := content.Default()
	if err != nil {
		t.Fatal(err)
	}
	blocking := func(ctx context.Context, _ string) error {
		<-ctx.Done()
		return ctx.Err()
	}
	m := New(Options{
		Site:         s,
		UI:           ui.DefaultConfig(),
		Clock:        ui.NewManualClock(time.Unix(0, 0)),
		Probe:        blocking,
		ProbeTimeout: 10 * time.Millisecond,
	})

	msg, ok := m.Init()().(introProbedMsg)
	if !ok {
		t.Fatal("expected introProbedMsg")
	}
	if !errors.Is(msg.err, context.DeadlineExceeded) {
		t.Errorf("err = %v, want deadline exceeded", msg.err)
	}
}

func TestIntroSkip(t *testing.T) {
	m, clock := testModel(t, OfflineProber())

	m, _ = press(t, m, "s")
	intro := m.Shell().Page().Intro()
	if intro.Cause() != ui.CauseSkip {
		t.Errorf("cause = %q, want skip", intro.Cause())
	}
	clock.Advance(time.Second)
	if intro.Mounted() {
		t.Error("intro should be unmounted")
	}
}

func TestStaleProbeIsIgnored(t *testing.T) {
	m, clock := testModel(t, OfflineProber())
	probe := m.Init()

	m, _ = press(t, m, "2")
	if m.Shell().Page().Route != nav.About {
		t.Fatalf("route = %s, want /about", m.Shell().Page().Route)
	}
	if clock.Pending() != 0 {
		t.Errorf("leaving home should cancel intro timers, %d pending", clock.Pending())
	}

	m, _ = send(t, m, probe())
	if m.Shell().Page().Intro() != nil {
		t.Error("about page has no intro")
	}
}

func TestDrawer(t *testing.T) {
	m, _ := testModel(t, OfflineProber())
	m, _ = press(t, m, "2")
	drawer := m.Shell().Drawer()
	doc := m.Shell().Window().Document

	tests := []struct {
		name  string
		close string
	}{
		{"escape", "esc"},
		{"backdrop", "b"},
		{"toggle", "m"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ = press(t, m, "m")
			if !drawer.IsOpen() || doc.ScrollEnabled() {
				t.Fatal("drawer should be open with scroll locked")
			}
			if !strings.Contains(m.View(), "menu open") {
				t.Error("status bar should report the open menu")
			}
			m, _ = press(t, m, tt.close)
			if drawer.IsOpen() || !doc.ScrollEnabled() {
				t.Error("drawer should be closed with scroll restored")
			}
			if n := m.Shell().Window().ListenerCount(ui.EventKeyDown); n != 0 {
				t.Errorf("keydown listeners = %d, want 0", n)
			}
		})
	}
}

func TestDrawerNavigation(t *testing.T) {
	m, _ := testModel(t, OfflineProber())
	m, _ = press(t, m, "m", "3")

	if m.Shell().Drawer().IsOpen() {
		t.Error("navigating should close the drawer")
	}
	if m.Shell().Page().Route != nav.Services {
		t.Errorf("route = %s, want /services", m.Shell().Page().Route)
	}
}

func TestExclusiveAccordion(t *testing.T) {
	m, _ := testModel(t, OfflineProber())
	m, _ = press(t, m, "3", "enter")

	acc := m.Shell().Page().Accordion("services")
	if acc == nil {
		t.Fatal("services accordion missing")
	}
	if !acc.IsOpen("0") {
		t.Fatal("first panel should open")
	}

	m, _ = press(t, m, "down", "enter")
	if acc.IsOpen("0") || !acc.IsOpen("1") {
		t.Errorf("open panels = %v, want [1]", acc.OpenPanels())
	}

	second := m.site.Services[1]
	if !strings.Contains(m.renderBody(), "- "+second.Title) {
		t.Errorf("view should list %q", second.Title)
	}

	m, _ = press(t, m, "enter")
	if len(acc.OpenPanels()) != 0 {
		t.Errorf("toggling the open panel should close it, open = %v", acc.OpenPanels())
	}
}

func TestIndependentAccordion(t *testing.T) {
	m, _ := testModel(t, OfflineProber())
	m, _ = press(t, m, "5", "enter", "down", "enter")

	acc := m.Shell().Page().Accordion("tools")
	if acc == nil {
		t.Fatal("tools accordion missing")
	}
	if !acc.IsOpen("0") || !acc.IsOpen("1") {
		t.Errorf("open panels = %v, want [0 1]", acc.OpenPanels())
	}
}

func TestCursorStaysInRange(t *testing.T) {
	m, _ := testModel(t, OfflineProber())
	m, _ = press(t, m, "3", "up")
	if m.cursor != 0 {
		t.Errorf("cursor = %d, want 0", m.cursor)
	}
	for range m.site.Services {
		m, _ = press(t, m, "down")
	}
	if m.cursor != len(m.site.Services)-1 {
		t.Errorf("cursor = %d, want %d", m.cursor, len(m.site.Services)-1)
	}
}

func TestScrollCondensesHeader(t *testing.T) {
	m, _ := testModel(t, OfflineProber())
	m, _ = send(t, m, tea.WindowSizeMsg{Width: 80, Height: 8})
	m, _ = press(t, m, "3")
	header := m.Shell().Header()

	m, _ = press(t, m, "pgdown")
	if m.viewport.YOffset == 0 {
		t.Fatal("viewport did not scroll")
	}
	if !header.Condensed() {
		t.Errorf("header should condense at offset %dpx", m.viewport.YOffset*LinePx)
	}

	m, _ = press(t, m, "home")
	if header.Condensed() {
		t.Error("header should expand at the top")
	}
}

func TestScrollLockedWhileDrawerOpen(t *testing.T) {
	m, _ := testModel(t, OfflineProber())
	m, _ = send(t, m, tea.WindowSizeMsg{Width: 80, Height: 8})
	m, _ = press(t, m, "3", "m", "pgdown")

	if m.viewport.YOffset != 0 {
		t.Errorf("YOffset = %d, want 0 while scroll is locked", m.viewport.YOffset)
	}
	if m.Shell().Window().ScrollY() != 0 {
		t.Error("window should not scroll while locked")
	}
}

func TestQuitReleasesEverything(t *testing.T) {
	m, clock := testModel(t, OfflineProber())
	m, _ = press(t, m, "m")

	m, cmd := press(t, m, "q")
	if cmd == nil {
		t.Fatal("expected a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
	if m.Shell().Page() != nil {
		t.Error("page should be unmounted")
	}
	if clock.Pending() != 0 {
		t.Errorf("pending timers = %d, want 0", clock.Pending())
	}
	if !m.Shell().Window().Document.ScrollEnabled() {
		t.Error("scroll lock should be released")
	}
	if m.View() != "" {
		t.Error("view should be empty after quitting")
	}
}
