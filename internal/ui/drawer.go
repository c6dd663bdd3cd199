package ui

import "sync"

// ClickTarget identifies which part of an open drawer received a click.
type ClickTarget int

const (
	// ClickBackdrop is the dimmed area around the panel.
	ClickBackdrop ClickTarget = iota
	// ClickPanel is the panel body. Clicks there stop at the panel.
	ClickPanel
	// ClickCloseButton is the explicit close control.
	ClickCloseButton
	// ClickNavLink is a navigation link inside the panel.
	ClickNavLink
)

// Drawer is a modal disclosure such as the mobile navigation menu. While it is
// open it holds a scroll lease and an escape-key listener; both are given up
// on every path that closes it.
type Drawer struct {
	mu       sync.Mutex
	id       string
	win      *Window
	lock     *ScrollLock
	open     bool
	lease    *Lease
	unlisten func()
}

// NewDrawer returns a closed drawer bound to win and lock.
func NewDrawer(id string, win *Window, lock *ScrollLock) *Drawer {
	return &Drawer{id: id, win: win, lock: lock}
}

// ID returns the drawer's panel identity.
func (d *Drawer) ID() string { return d.id }

// IsOpen reports whether the drawer is showing.
func (d *Drawer) IsOpen() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.open
}

// Toggle opens a closed drawer and closes an open one.
func (d *Drawer) Toggle() {
	if d.IsOpen() {
		d.Close()
		return
	}
	d.Open()
}

// Open shows the drawer. Opening an open drawer does nothing.
func (d *Drawer) Open() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.open {
		return
	}
	d.open = true
	d.lease = d.lock.Acquire()
	d.unlisten = d.win.AddListener(EventKeyDown, d.onKey)
}

// Close hides the drawer. Closing a closed drawer does nothing.
func (d *Drawer) Close() {
	d.mu.Lock()
	if !d.open {
		d.mu.Unlock()
		return
	}
	d.open = false
	lease, unlisten := d.lease, d.unlisten
	d.lease, d.unlisten = nil, nil
	d.mu.Unlock()

	unlisten()
	lease.Release()
}

// Click routes a click on the open drawer. Backdrop, close button and nav
// link clicks close it; clicks on the panel body are absorbed.
func (d *Drawer) Click(target ClickTarget) {
	switch target {
	case ClickBackdrop, ClickCloseButton, ClickNavLink:
		d.Close()
	case ClickPanel:
	}
}

// RouteChanged closes the drawer when the visitor navigates.
func (d *Drawer) RouteChanged() { d.Close() }

// Unmount releases everything the drawer holds.
func (d *Drawer) Unmount() { d.Close() }

func (d *Drawer) onKey(ev Event) {
	if ev.Key == KeyEscape {
		d.Close()
	}
}
