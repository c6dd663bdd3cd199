package ui

import (
	"errors"
	"fmt"
	"sync"
)

// ErrUnknownPanel is returned when a panel ID is not part of an accordion.
var ErrUnknownPanel = errors.New("unknown panel")

// Mode controls whether accordion panels may be open together.
type Mode int

const (
	// Exclusive allows at most one open panel; opening one closes the rest.
	Exclusive Mode = iota
	// Independent lets each panel open and close on its own.
	Independent
)

func (m Mode) String() string {
	switch m {
	case Exclusive:
		return "exclusive"
	case Independent:
		return "independent"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Accordion is a group of inline disclosures with a fixed panel set.
type Accordion struct {
	mu     sync.Mutex
	id     string
	mode   Mode
	panels []string
	open   map[string]bool
}

// NewAccordion returns an accordion with every panel closed.
func NewAccordion(id string, mode Mode, panels ...string) *Accordion {
	return &Accordion{
		id:     id,
		mode:   mode,
		panels: append([]string(nil), panels...),
		open:   make(map[string]bool, len(panels)),
	}
}

// ID returns the accordion's identity.
func (a *Accordion) ID() string { return a.id }

// Mode returns the accordion's exclusivity mode.
func (a *Accordion) Mode() Mode { return a.mode }

// Panels returns the panel IDs in display order.
func (a *Accordion) Panels() []string {
	return append([]string(nil), a.panels...)
}

// Toggle closes panelID if it is open; otherwise it opens it, closing its
// siblings in an exclusive accordion.
func (a *Accordion) Toggle(panelID string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.knownLocked(panelID) {
		return fmt.Errorf("accordion %s: %w: %q", a.id, ErrUnknownPanel, panelID)
	}
	if a.open[panelID] {
		delete(a.open, panelID)
		return nil
	}
	a.openLocked(panelID)
	return nil
}

// Open shows panelID.
func (a *Accordion) Open(panelID string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.knownLocked(panelID) {
		return fmt.Errorf("accordion %s: %w: %q", a.id, ErrUnknownPanel, panelID)
	}
	a.openLocked(panelID)
	return nil
}

// Close hides panelID. Closing a closed panel is a no-op.
func (a *Accordion) Close(panelID string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.knownLocked(panelID) {
		return fmt.Errorf("accordion %s: %w: %q", a.id, ErrUnknownPanel, panelID)
	}
	delete(a.open, panelID)
	return nil
}

// CloseAll hides every panel.
func (a *Accordion) CloseAll() {
	a.mu.Lock()
	defer a.mu.Unlock()
	clear(a.open)
}

// IsOpen reports whether panelID is showing.
func (a *Accordion) IsOpen(panelID string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.open[panelID]
}

// OpenPanels returns the open panel IDs in display order.
func (a *Accordion) OpenPanels() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	var out []string
	for _, p := range a.panels {
		if a.open[p] {
			out = append(out, p)
		}
	}
	return out
}

func (a *Accordion) openLocked(panelID string) {
	if a.mode == Exclusive {
		clear(a.open)
	}
	a.open[panelID] = true
}

func (a *Accordion) knownLocked(panelID string) bool {
	for _, p := range a.panels {
		if p == panelID {
			return true
		}
	}
	return false
}
