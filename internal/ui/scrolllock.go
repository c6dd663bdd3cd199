package ui

import "sync"

const overflowHidden = "hidden"

// ScrollLock suppresses page scroll while at least one lease is held.
// The body style seen by the first acquirer is restored when the last lease
// is released.
type ScrollLock struct {
	mu      sync.Mutex
	doc     *Document
	holders int
	saved   string
}

// NewScrollLock returns a lock over doc.
func NewScrollLock(doc *Document) *ScrollLock {
	return &ScrollLock{doc: doc}
}

// Lease is one hold on a ScrollLock.
type Lease struct {
	once sync.Once
	lock *ScrollLock
}

// Acquire disables page scroll and returns the lease that re-enables it.
func (l *ScrollLock) Acquire() *Lease {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.holders == 0 {
		l.saved = l.doc.BodyOverflow()
		l.doc.SetBodyOverflow(overflowHidden)
	}
	l.holders++
	return &Lease{lock: l}
}

// Release gives the lease back. Only the first call has an effect.
func (le *Lease) Release() {
	if le == nil {
		return
	}
	le.once.Do(le.lock.release)
}

func (l *ScrollLock) release() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.holders == 0 {
		return
	}
	l.holders--
	if l.holders == 0 {
		l.doc.SetBodyOverflow(l.saved)
		l.saved = ""
	}
}

// Locked reports whether any lease is outstanding.
func (l *ScrollLock) Locked() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.holders > 0
}
