package preview

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

func attached(t *testing.T) (*LoopClock, chan tea.Msg) {
	t.Helper()
	msgs := make(chan tea.Msg, 4)
	c := NewLoopClock()
	c.Attach(func(msg tea.Msg) { msgs <- msg })
	return c, msgs
}

func TestLoopClockPostsThenRuns(t *testing.T) {
	c, msgs := attached(t)
	ran := 0
	c.AfterFunc(5*time.Millisecond, func() { ran++ })

	var msg tea.Msg
	select {
	case msg = <-msgs:
	case <-time.After(time.Second):
		t.Fatal("timer never fired")
	}
	fired, ok := msg.(timerFiredMsg)
	if !ok {
		t.Fatalf("got %T, want timerFiredMsg", msg)
	}
	if ran != 0 {
		t.Fatal("callback must not run on the timer goroutine")
	}

	if !c.Run(fired.id) {
		t.Error("Run should execute a pending callback")
	}
	if c.Run(fired.id) {
		t.Error("a callback runs at most once")
	}
	if ran != 1 {
		t.Errorf("ran = %d, want 1", ran)
	}
	if c.Pending() != 0 {
		t.Errorf("Pending() = %d, want 0", c.Pending())
	}
}

func TestLoopClockStop(t *testing.T) {
	c, msgs := attached(t)
	timer := c.AfterFunc(20*time.Millisecond, func() { t.Error("stopped callback ran") })

	if !timer.Stop() {
		t.Error("Stop should report a pending timer")
	}
	if timer.Stop() {
		t.Error("second Stop should report false")
	}
	select {
	case msg := <-msgs:
		t.Fatalf("unexpected message %v", msg)
	case <-time.After(60 * time.Millisecond):
	}
}

func TestLoopClockStoppedAfterPostIsSkipped(t *testing.T) {
	c, msgs := attached(t)
	timer := c.AfterFunc(time.Millisecond, func() { t.Error("stopped callback ran") })

	fired := (<-msgs).(timerFiredMsg)
	timer.Stop()
	if c.Run(fired.id) {
		t.Error("Run should skip a timer stopped after it posted")
	}
}

func TestLoopClockStopAll(t *testing.T) {
	c, _ := attached(t)
	c.AfterFunc(time.Hour, func() {})
	c.AfterFunc(time.Hour, func() {})
	if c.Pending() != 2 {
		t.Fatalf("Pending() = %d, want 2", c.Pending())
	}
	c.StopAll()
	if c.Pending() != 0 {
		t.Errorf("Pending() = %d, want 0", c.Pending())
	}
}

func TestLoopClockQueuesFiringsBeforeAttach(t *testing.T) {
	c := NewLoopClock()
	ran := false
	c.AfterFunc(time.Millisecond, func() { ran = true })

	deadline := time.Now().Add(time.Second)
	for {
		c.mu.Lock()
		n := len(c.queued)
		c.mu.Unlock()
		if n == 1 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("queued = %d, want 1", n)
		}
		time.Sleep(time.Millisecond)
	}

	msgs := make(chan tea.Msg, 4)
	c.Attach(func(msg tea.Msg) { msgs <- msg })

	select {
	case msg := <-msgs:
		fired, ok := msg.(timerFiredMsg)
		if !ok {
			t.Fatalf("got %T, want timerFiredMsg", msg)
		}
		if !c.Run(fired.id) {
			t.Fatal("queued firing should still be runnable")
		}
	case <-time.After(time.Second):
		t.Fatal("firing before Attach was lost")
	}
	if !ran {
		t.Error("callback did not run")
	}
	if c.Pending() != 0 {
		t.Errorf("Pending() = %d, want 0", c.Pending())
	}
	select {
	case msg := <-msgs:
		t.Errorf("unexpected extra message %v", msg)
	case <-time.After(20 * time.Millisecond):
	}
}
