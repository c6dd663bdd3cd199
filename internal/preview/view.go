package preview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/BenedictTTM/qualipro/internal/nav"
	"github.com/BenedictTTM/qualipro/internal/ui"
)

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	page := m.shell.Page()
	if page == nil {
		return "Loading..."
	}

	if intro := page.Intro(); intro != nil && intro.Mounted() {
		return m.renderIntro(intro)
	}

	sections := []string{m.renderHeader(page.Route)}
	if m.shell.Drawer().IsOpen() {
		sections = append(sections, m.renderDrawer(page.Route))
	} else {
		sections = append(sections, m.viewport.View())
	}
	sections = append(sections, m.renderStatusBar())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderHeader(current nav.Route) string {
	name := m.site.Organization.Name
	var links []string
	for _, l := range nav.Header(current) {
		label := fmt.Sprintf("%d %s", indexOf(l.Route)+1, l.Label)
		if l.Active {
			links = append(links, ActiveNavStyle.Render(label))
		} else {
			links = append(links, NavStyle.Render(label))
		}
	}
	menu := strings.Join(links, "  ")

	if m.shell.Header().Condensed() {
		return CondensedHeaderStyle.Render(name + "  " + menu)
	}
	return lipgloss.JoinVertical(lipgloss.Left, HeaderStyle.Render(name), "  "+menu)
}

func (m Model) renderDrawer(current nav.Route) string {
	var b strings.Builder
	for i, r := range nav.All() {
		label := fmt.Sprintf("%d  %s", i+1, r.Label())
		if r == current {
			label = ActiveNavStyle.Render(label)
		}
		b.WriteString(label + "\n")
	}
	b.WriteString("\n" + MutedStyle.Render("esc/b close  m toggle"))
	return DrawerStyle.Render(b.String())
}

func (m Model) renderIntro(intro *ui.Intro) string {
	var status string
	switch intro.State() {
	case ui.IntroLoading:
		status = "Loading intro video..."
	case ui.IntroPlaying:
		status = "Playing " + m.site.Home.IntroVideo.Src
	case ui.IntroErrored, ui.IntroDismissed:
		// Media failures are logged by the intro, never shown.
		status = MutedStyle.Render("Entering site...")
	}
	box := IntroStyle.Render(lipgloss.JoinVertical(lipgloss.Center,
		TitleStyle.Render(m.site.Organization.Name),
		m.site.Organization.Slogan,
		"",
		status,
		"",
		MutedStyle.Render("s skip"),
	))
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
	}
	return box
}

func (m Model) renderStatusBar() string {
	page := m.shell.Page()
	parts := []string{string(page.Route)}
	if m.shell.Drawer().IsOpen() {
		parts = append(parts, "menu open")
	}
	if !m.shell.Window().Document.ScrollEnabled() {
		parts = append(parts, "scroll locked")
	}
	if intro := page.Intro(); intro != nil {
		parts = append(parts, "intro "+intro.State().String())
	}
	if m.err != nil {
		parts = append(parts, ErrorStyle.Render(m.err.Error()))
	}
	parts = append(parts, "1-6 pages  m menu  j/k enter panels  pgup/pgdn scroll  q quit")
	return StatusBarStyle.Render(strings.Join(parts, " | "))
}

// renderBody renders the current page's copy.
func (m Model) renderBody() string {
	page := m.shell.Page()
	if page == nil {
		return ""
	}
	meta := m.site.Page(page.Route)
	var b strings.Builder
	heading := meta.Heading
	if heading == "" {
		heading = meta.Title
	}
	b.WriteString(TitleStyle.Render(heading) + "\n")
	if meta.Intro != "" {
		b.WriteString(MutedStyle.Render(meta.Intro) + "\n")
	}
	b.WriteString("\n")

	switch page.Route {
	case nav.Home:
		h := m.site.Home
		b.WriteString(h.Headline + " " + h.Highlight + "\n\n" + h.Lead + "\n\n")
		for _, s := range h.Stats {
			b.WriteString(fmt.Sprintf("%-16s %3d%%\n", s.Label, s.Value))
		}
	case nav.About:
		a := m.site.About
		b.WriteString(a.WhoWeAre + "\n\n")
		b.WriteString("Mission: " + a.Mission + "\n\n")
		b.WriteString("Vision: " + a.Vision + "\n\n")
		for _, v := range a.CoreValues {
			b.WriteString("- " + v.Title + ": " + v.Description + "\n")
		}
	case nav.Tools:
		b.WriteString(m.site.Methodology.Intro + "\n\n")
		for _, s := range m.site.Methodology.Steps {
			b.WriteString(s.Step + " " + s.Title + "\n")
		}
		b.WriteString("\n")
	case nav.Contact:
		o := m.site.Organization
		b.WriteString("Email: " + o.Email + "\n")
		for _, p := range o.Phones {
			b.WriteString("Phone: " + p.Display + "\n")
		}
		if wa := o.WhatsAppURL(); wa != "" {
			b.WriteString("WhatsApp: " + wa + "\n")
		}
		b.WriteString("Address: " + o.Address.Display + "\n")
	}

	for i, ref := range m.panels {
		acc := page.Accordion(ref.accordion)
		open := acc != nil && acc.IsOpen(ref.panel)
		marker := "+"
		if open {
			marker = "-"
		}
		line := fmt.Sprintf("%s %s", marker, ref.title)
		if i == m.cursor {
			line = CursorStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
		if open {
			for _, l := range ref.body {
				b.WriteString(ExpandedStyle.Render(l) + "\n")
			}
		}
	}
	return b.String()
}

func indexOf(r nav.Route) int {
	for i, candidate := range nav.All() {
		if candidate == r {
			return i
		}
	}
	return -1
}
