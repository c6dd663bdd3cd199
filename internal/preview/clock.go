package preview

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/BenedictTTM/qualipro/internal/ui"
)

// timerFiredMsg asks the model to run a due LoopClock callback.
type timerFiredMsg struct {
	id int
}

// LoopClock is a ui.Clock whose callbacks run on the Bubble Tea event loop.
// A due timer posts a timerFiredMsg; the model runs the callback from
// Update, so controllers are never touched from a timer goroutine.
type LoopClock struct {
	mu      sync.Mutex
	send    func(tea.Msg)
	nextID  int
	pending map[int]*loopTimer
	// queued holds firings that happened before Attach.
	queued []int
}

type loopTimer struct {
	clock *LoopClock
	id    int
	timer *time.Timer
	f     func()
}

// NewLoopClock returns a clock that is not yet attached to a program.
func NewLoopClock() *LoopClock {
	return &LoopClock{pending: make(map[int]*loopTimer)}
}

// Attach sets the function used to post messages, normally
// (*tea.Program).Send. Timers that fired before Attach are posted from a
// new goroutine, since Send blocks until the program is running.
func (c *LoopClock) Attach(send func(tea.Msg)) {
	c.mu.Lock()
	c.send = send
	queued := c.queued
	c.queued = nil
	c.mu.Unlock()
	if len(queued) == 0 || send == nil {
		return
	}
	go func() {
		for _, id := range queued {
			send(timerFiredMsg{id: id})
		}
	}()
}

func (c *LoopClock) Now() time.Time { return time.Now() }

func (c *LoopClock) AfterFunc(d time.Duration, f func()) ui.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextID++
	lt := &loopTimer{clock: c, id: c.nextID, f: f}
	c.pending[lt.id] = lt
	lt.timer = time.AfterFunc(d, func() { c.post(lt.id) })
	return lt
}

func (c *LoopClock) post(id int) {
	c.mu.Lock()
	_, ok := c.pending[id]
	send := c.send
	if ok && send == nil {
		c.queued = append(c.queued, id)
	}
	c.mu.Unlock()
	if ok && send != nil {
		send(timerFiredMsg{id: id})
	}
}

// Run executes the callback for id if it is still pending. It reports
// whether a callback ran.
func (c *LoopClock) Run(id int) bool {
	c.mu.Lock()
	lt, ok := c.pending[id]
	delete(c.pending, id)
	c.mu.Unlock()
	if ok {
		lt.f()
	}
	return ok
}

// Pending returns the number of timers that have not run or been stopped.
func (c *LoopClock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending)
}

// StopAll cancels every pending timer.
func (c *LoopClock) StopAll() {
	c.mu.Lock()
	timers := c.pending
	c.pending = make(map[int]*loopTimer)
	c.queued = nil
	c.mu.Unlock()
	for _, lt := range timers {
		lt.timer.Stop()
	}
}

func (lt *loopTimer) Stop() bool {
	lt.clock.mu.Lock()
	_, ok := lt.clock.pending[lt.id]
	delete(lt.clock.pending, lt.id)
	lt.clock.mu.Unlock()
	lt.timer.Stop()
	return ok
}
