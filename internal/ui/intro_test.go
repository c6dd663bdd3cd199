package ui

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func newTestIntro(t *testing.T) (*Intro, *ManualClock) {
	t.Helper()
	clock := NewManualClock(epoch)
	in := NewIntro(clock, DefaultIntroTimings(), zap.NewNop())
	in.Mount()
	return in, clock
}

func TestIntroSafetyTimerWithoutMediaEvents(t *testing.T) {
	in, clock := newTestIntro(t)

	clock.Advance(3499 * time.Millisecond)
	assert.Equal(t, IntroLoading, in.State(), "must not dismiss before the safety timeout")

	clock.Advance(1 * time.Millisecond)
	assert.Equal(t, IntroDismissed, in.State())
	assert.Equal(t, CauseSafety, in.Cause())
}

func TestIntroPlaybackPath(t *testing.T) {
	in, clock := newTestIntro(t)

	clock.Advance(50 * time.Millisecond)
	in.MediaReady(func() error { return nil })
	assert.Equal(t, IntroLoading, in.State())

	clock.Advance(50 * time.Millisecond)
	in.MediaPlay()
	assert.Equal(t, IntroPlaying, in.State())

	clock.Advance(1999 * time.Millisecond)
	assert.Equal(t, IntroPlaying, in.State())

	clock.Advance(1 * time.Millisecond)
	assert.Equal(t, IntroDismissed, in.State())
	assert.Equal(t, CausePlayback, in.Cause())

	// The safety timer was cancelled and nothing else fires.
	clock.Advance(10 * time.Second)
	assert.Equal(t, IntroDismissed, in.State())
	assert.Equal(t, CausePlayback, in.Cause())
	assert.Zero(t, clock.Pending())
}

func TestIntroSkipWhileLoading(t *testing.T) {
	in, clock := newTestIntro(t)

	clock.Advance(200 * time.Millisecond)
	in.Skip()
	assert.Equal(t, IntroDismissed, in.State())
	assert.Equal(t, CauseSkip, in.Cause())

	clock.Advance(10 * time.Second)
	assert.Equal(t, CauseSkip, in.Cause())
}

func TestIntroPlaybackRejected(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	clock := NewManualClock(epoch)
	in := NewIntro(clock, DefaultIntroTimings(), zap.New(core))
	in.Mount()

	in.MediaReady(func() error { return errors.New("autoplay blocked") })
	assert.Equal(t, IntroErrored, in.State())
	require.Equal(t, 1, logs.Len(), "failure should be logged once")
	assert.Equal(t, "playback start failed", logs.All()[0].ContextMap()["reason"])

	clock.Advance(799 * time.Millisecond)
	assert.Equal(t, IntroErrored, in.State())
	clock.Advance(1 * time.Millisecond)
	assert.Equal(t, IntroDismissed, in.State())
	assert.Equal(t, CauseError, in.Cause())
}

func TestIntroMediaErrorWhilePlaying(t *testing.T) {
	in, clock := newTestIntro(t)

	in.MediaPlay()
	clock.Advance(500 * time.Millisecond)
	in.MediaError(errors.New("network"))
	assert.Equal(t, IntroErrored, in.State())

	// The pending playback dismissal was replaced by the error dismissal.
	clock.Advance(800 * time.Millisecond)
	assert.Equal(t, IntroDismissed, in.State())
	assert.Equal(t, CauseError, in.Cause())
}

func TestIntroSafetyWinsOverLatePlayback(t *testing.T) {
	in, clock := newTestIntro(t)

	clock.Advance(3000 * time.Millisecond)
	in.MediaPlay()
	clock.Advance(500 * time.Millisecond)

	assert.Equal(t, IntroDismissed, in.State())
	assert.Equal(t, CauseSafety, in.Cause())

	clock.Advance(2 * time.Second)
	assert.Equal(t, CauseSafety, in.Cause())
}

func TestIntroDismissedIsTerminal(t *testing.T) {
	in, clock := newTestIntro(t)
	in.Skip()

	played := false
	in.MediaReady(func() error { played = true; return nil })
	in.MediaPlay()
	in.MediaError(errors.New("late"))
	in.Skip()
	clock.Advance(time.Minute)

	assert.False(t, played, "a dismissed intro must not start playback")
	assert.Equal(t, IntroDismissed, in.State())
	assert.Equal(t, CauseSkip, in.Cause())
}

func TestIntroErroredCannotPlay(t *testing.T) {
	in, _ := newTestIntro(t)
	in.MediaError(errors.New("404"))
	in.MediaPlay()
	assert.Equal(t, IntroErrored, in.State())
}

func TestIntroExitTransitionUnmounts(t *testing.T) {
	in, clock := newTestIntro(t)
	require.True(t, in.Mounted())

	in.Skip()
	assert.True(t, in.Mounted(), "overlay stays mounted while the exit runs")
	assert.True(t, in.Exiting())

	clock.Advance(599 * time.Millisecond)
	assert.True(t, in.Mounted())

	clock.Advance(1 * time.Millisecond)
	assert.False(t, in.Mounted())
	assert.False(t, in.Exiting())

	in.Mount()
	assert.False(t, in.Mounted(), "a dismissed overlay cannot be mounted again")
}

func TestIntroUnmountCancelsTimers(t *testing.T) {
	in, clock := newTestIntro(t)
	in.MediaPlay()
	require.Equal(t, 2, clock.Pending())

	in.Unmount()
	assert.Zero(t, clock.Pending())

	clock.Advance(time.Minute)
	assert.Equal(t, IntroPlaying, in.State(), "no timer may mutate an unmounted overlay")
}

func TestIntroRealClock(t *testing.T) {
	timings := IntroTimings{
		Safety:     20 * time.Millisecond,
		PlayDelay:  time.Second,
		ErrorDelay: time.Second,
		Exit:       5 * time.Millisecond,
	}
	in := NewIntro(RealClock(), timings, nil)
	in.Mount()

	require.Eventually(t, func() bool { return !in.Mounted() }, time.Second, 5*time.Millisecond)
	assert.Equal(t, CauseSafety, in.Cause())
}

func TestIntroStateString(t *testing.T) {
	tests := []struct {
		state IntroState
		want  string
	}{
		{IntroLoading, "loading"},
		{IntroPlaying, "playing"},
		{IntroErrored, "errored"},
		{IntroDismissed, "dismissed"},
		{IntroState(9), "IntroState(9)"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.state.String())
	}
}
