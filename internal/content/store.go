package content

import (
	"sync"
	"sync/atomic"
)

// Store holds the live copy. Readers always see a complete, validated Site;
// Replace swaps it atomically and notifies subscribers.
type Store struct {
	cur atomic.Pointer[Site]

	mu     sync.Mutex
	nextID int
	subs   map[int]func(*Site)
}

// NewStore returns a store serving s.
func NewStore(s *Site) *Store {
	st := &Store{subs: make(map[int]func(*Site))}
	st.cur.Store(s)
	return st
}

// Site returns the current copy.
func (st *Store) Site() *Site { return st.cur.Load() }

// Replace installs s and calls every subscriber with it.
func (st *Store) Replace(s *Site) {
	st.cur.Store(s)

	st.mu.Lock()
	fns := make([]func(*Site), 0, len(st.subs))
	for _, fn := range st.subs {
		fns = append(fns, fn)
	}
	st.mu.Unlock()

	for _, fn := range fns {
		fn(s)
	}
}

// Subscribe registers fn for future replacements. The returned func removes it.
func (st *Store) Subscribe(fn func(*Site)) func() {
	st.mu.Lock()
	defer st.mu.Unlock()
	id := st.nextID
	st.nextID++
	st.subs[id] = fn
	return func() {
		st.mu.Lock()
		defer st.mu.Unlock()
		delete(st.subs, id)
	}
}
