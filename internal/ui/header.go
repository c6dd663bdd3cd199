package ui

import "sync"

// DefaultHeaderThreshold is the scroll offset in pixels past which the header
// condenses.
const DefaultHeaderThreshold = 50

// Header tracks whether the site header is in its condensed style. It is a
// pure function of the scroll offset: condensed when the offset exceeds the
// threshold.
type Header struct {
	mu        sync.Mutex
	threshold int
	condensed bool
	unlisten  func()
}

// NewHeader returns a header that condenses past threshold pixels.
func NewHeader(threshold int) *Header {
	return &Header{threshold: threshold}
}

// Threshold returns the configured scroll threshold.
func (h *Header) Threshold() int { return h.threshold }

// Mount starts following win's scroll position.
func (h *Header) Mount(win *Window) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.unlisten != nil {
		return
	}
	h.condensed = win.ScrollY() > h.threshold
	h.unlisten = win.AddListener(EventScroll, h.onScroll)
}

// Unmount stops following scroll events.
func (h *Header) Unmount() {
	h.mu.Lock()
	unlisten := h.unlisten
	h.unlisten = nil
	h.mu.Unlock()
	if unlisten != nil {
		unlisten()
	}
}

// Condensed reports whether the condensed style applies.
func (h *Header) Condensed() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.condensed
}

func (h *Header) onScroll(ev Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.condensed = ev.ScrollY > h.threshold
}
