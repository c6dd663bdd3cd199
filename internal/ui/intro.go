package ui

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// IntroState is the lifecycle of the intro video overlay.
type IntroState int

const (
	IntroLoading IntroState = iota
	IntroPlaying
	IntroErrored
	IntroDismissed
)

func (s IntroState) String() string {
	switch s {
	case IntroLoading:
		return "loading"
	case IntroPlaying:
		return "playing"
	case IntroErrored:
		return "errored"
	case IntroDismissed:
		return "dismissed"
	default:
		return fmt.Sprintf("IntroState(%d)", int(s))
	}
}

// DismissCause records which path ended the intro.
type DismissCause string

const (
	CauseNone     DismissCause = ""
	CausePlayback DismissCause = "playback"
	CauseError    DismissCause = "error"
	CauseSafety   DismissCause = "safety"
	CauseSkip     DismissCause = "skip"
)

// IntroTimings holds the overlay's delays.
type IntroTimings struct {
	// Safety dismisses the overlay regardless of media state.
	Safety time.Duration `koanf:"safety" yaml:"safety"`
	// PlayDelay is how long the intro plays before it is dismissed.
	PlayDelay time.Duration `koanf:"play_delay" yaml:"play_delay"`
	// ErrorDelay is how long an errored intro lingers before dismissal.
	ErrorDelay time.Duration `koanf:"error_delay" yaml:"error_delay"`
	// Exit is the length of the slide/fade-out before the overlay unmounts.
	Exit time.Duration `koanf:"exit" yaml:"exit"`
}

// DefaultIntroTimings returns the timings used when none are configured.
func DefaultIntroTimings() IntroTimings {
	return IntroTimings{
		Safety:     3500 * time.Millisecond,
		PlayDelay:  2000 * time.Millisecond,
		ErrorDelay: 800 * time.Millisecond,
		Exit:       600 * time.Millisecond,
	}
}

// Intro drives the intro video overlay. Transitions only move forward and
// every path ends in IntroDismissed; the first cause to fire wins and the
// remaining timers are cancelled.
type Intro struct {
	mu      sync.Mutex
	clock   Clock
	timings IntroTimings
	log     *zap.Logger

	state   IntroState
	cause   DismissCause
	mounted bool
	exiting bool
	closed  bool

	safety     Timer
	pending    Timer
	pendingSeq int
	exit       Timer
}

// NewIntro returns an unmounted overlay in the loading state.
func NewIntro(clock Clock, timings IntroTimings, log *zap.Logger) *Intro {
	if log == nil {
		log = zap.NewNop()
	}
	return &Intro{clock: clock, timings: timings, log: log}
}

// Mount shows the overlay and arms the safety timer.
func (in *Intro) Mount() {
	in.mu.Lock()
	defer in.mu.Unlock()
	if in.mounted || in.closed || in.state == IntroDismissed {
		return
	}
	in.mounted = true
	in.safety = in.clock.AfterFunc(in.timings.Safety, func() {
		in.dismiss(CauseSafety)
	})
}

// MediaReady reports that the video can play. play starts playback; if it
// fails (for example an autoplay rejection) the overlay errors out.
func (in *Intro) MediaReady(play func() error) {
	in.mu.Lock()
	ready := in.state == IntroLoading && !in.closed
	in.mu.Unlock()
	if !ready || play == nil {
		return
	}
	if err := play(); err != nil {
		in.fail("playback start failed", err)
	}
}

// MediaPlay reports that playback started.
func (in *Intro) MediaPlay() {
	in.mu.Lock()
	defer in.mu.Unlock()
	if in.closed || in.state != IntroLoading {
		return
	}
	in.state = IntroPlaying
	in.log.Debug("intro playing")
	in.scheduleLocked(in.timings.PlayDelay, CausePlayback)
}

// MediaError reports that the video failed to load or play.
func (in *Intro) MediaError(err error) {
	in.fail("media error", err)
}

// Skip dismisses the overlay immediately.
func (in *Intro) Skip() {
	in.dismiss(CauseSkip)
}

// State returns the current state.
func (in *Intro) State() IntroState {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.state
}

// Cause returns what dismissed the overlay, or CauseNone.
func (in *Intro) Cause() DismissCause {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.cause
}

// Mounted reports whether the overlay is still in the page. It stays true
// during the exit transition.
func (in *Intro) Mounted() bool {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.mounted
}

// Exiting reports whether the exit transition is running.
func (in *Intro) Exiting() bool {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.exiting
}

// Unmount removes the overlay and cancels every pending timer. Events
// arriving afterwards are ignored.
func (in *Intro) Unmount() {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.closed = true
	in.mounted = false
	in.exiting = false
	in.stopTimersLocked()
	stop(in.exit)
	in.exit = nil
}

func (in *Intro) fail(reason string, err error) {
	in.mu.Lock()
	defer in.mu.Unlock()
	if in.closed || (in.state != IntroLoading && in.state != IntroPlaying) {
		return
	}
	in.log.Warn("intro video unavailable, showing page without it",
		zap.String("reason", reason),
		zap.String("from", in.state.String()),
		zap.Error(err),
	)
	in.state = IntroErrored
	in.scheduleLocked(in.timings.ErrorDelay, CauseError)
}

// scheduleLocked replaces any pending dismissal with one after d.
func (in *Intro) scheduleLocked(d time.Duration, cause DismissCause) {
	stop(in.pending)
	in.pendingSeq++
	seq := in.pendingSeq
	in.pending = in.clock.AfterFunc(d, func() {
		in.mu.Lock()
		current := seq == in.pendingSeq
		in.mu.Unlock()
		if current {
			in.dismiss(cause)
		}
	})
}

func (in *Intro) dismiss(cause DismissCause) {
	in.mu.Lock()
	defer in.mu.Unlock()
	if in.closed || in.state == IntroDismissed {
		return
	}
	in.log.Debug("intro dismissed",
		zap.String("cause", string(cause)),
		zap.String("from", in.state.String()),
	)
	in.state = IntroDismissed
	in.cause = cause
	in.stopTimersLocked()
	if !in.mounted {
		return
	}
	in.exiting = true
	in.exit = in.clock.AfterFunc(in.timings.Exit, in.finishExit)
}

func (in *Intro) finishExit() {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.exiting = false
	in.mounted = false
	in.exit = nil
}

func (in *Intro) stopTimersLocked() {
	stop(in.safety)
	stop(in.pending)
	in.safety, in.pending = nil, nil
	in.pendingSeq++
}

func stop(t Timer) {
	if t != nil {
		t.Stop()
	}
}
