package ui

import (
	"sync"
)

// EventKind names a global event a Window can deliver.
type EventKind string

const (
	EventKeyDown EventKind = "keydown"
	EventScroll  EventKind = "scroll"
)

// KeyEscape is the key name delivered for the escape key.
const KeyEscape = "Escape"

// Event is a global input event.
type Event struct {
	Kind    EventKind
	Key     string
	ScrollY int
}

// Listener handles a dispatched Event.
type Listener func(Event)

type listenerEntry struct {
	id   int
	kind EventKind
	fn   Listener
}

// Window is the global event target shared by every controller on a page.
// Listeners are delivered in registration order.
type Window struct {
	mu        sync.Mutex
	nextID    int
	listeners []listenerEntry
	scrollY   int

	Document *Document
}

// NewWindow returns a Window with an empty document body style.
func NewWindow() *Window {
	return &Window{Document: &Document{}}
}

// AddListener registers fn for kind and returns a function that removes it.
// The returned function is safe to call more than once.
func (w *Window) AddListener(kind EventKind, fn Listener) (remove func()) {
	w.mu.Lock()
	w.nextID++
	id := w.nextID
	w.listeners = append(w.listeners, listenerEntry{id: id, kind: kind, fn: fn})
	w.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { w.removeListener(id) })
	}
}

func (w *Window) removeListener(id int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for i, l := range w.listeners {
		if l.id == id {
			w.listeners = append(w.listeners[:i], w.listeners[i+1:]...)
			return
		}
	}
}

// ListenerCount returns how many listeners are registered for kind.
func (w *Window) ListenerCount(kind EventKind) int {
	w.mu.Lock()
	defer w.mu.Unlock()
	n := 0
	for _, l := range w.listeners {
		if l.kind == kind {
			n++
		}
	}
	return n
}

// Dispatch delivers ev to the listeners registered for its kind at the time
// of the call. Listeners may add or remove listeners while running.
func (w *Window) Dispatch(ev Event) {
	w.mu.Lock()
	var targets []Listener
	for _, l := range w.listeners {
		if l.kind == ev.Kind {
			targets = append(targets, l.fn)
		}
	}
	w.mu.Unlock()

	for _, fn := range targets {
		fn(ev)
	}
}

// KeyDown dispatches a key press.
func (w *Window) KeyDown(key string) {
	w.Dispatch(Event{Kind: EventKeyDown, Key: key})
}

// ScrollTo records the new vertical offset and dispatches a scroll event.
func (w *Window) ScrollTo(y int) {
	if y < 0 {
		y = 0
	}
	w.mu.Lock()
	w.scrollY = y
	w.mu.Unlock()
	w.Dispatch(Event{Kind: EventScroll, ScrollY: y})
}

// ScrollY returns the current vertical scroll offset.
func (w *Window) ScrollY() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.scrollY
}

// Document holds the page body style touched by the scroll lock.
type Document struct {
	mu           sync.Mutex
	bodyOverflow string
}

// BodyOverflow returns the body's inline overflow style.
func (d *Document) BodyOverflow() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.bodyOverflow
}

// SetBodyOverflow sets the body's inline overflow style.
func (d *Document) SetBodyOverflow(v string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.bodyOverflow = v
}

// ScrollEnabled reports whether the body currently allows scrolling.
func (d *Document) ScrollEnabled() bool {
	return d.BodyOverflow() != overflowHidden
}
