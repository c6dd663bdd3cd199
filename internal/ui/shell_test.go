package ui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BenedictTTM/qualipro/internal/nav"
)

func testLayout(r nav.Route) PageSpec {
	spec := PageSpec{Route: r}
	switch r {
	case nav.Home:
		spec.Intro = true
	case nav.Services:
		spec.Accordions = []AccordionSpec{{ID: "services", Mode: Exclusive, Panels: []string{"0", "1", "2"}}}
	}
	return spec
}

func newTestShell(t *testing.T) (*Shell, *ManualClock) {
	t.Helper()
	clock := NewManualClock(epoch)
	s := NewShell(DefaultConfig(), clock, testLayout, nil)
	t.Cleanup(s.Unmount)
	return s, clock
}

func TestHeaderThreshold(t *testing.T) {
	win := NewWindow()
	h := NewHeader(50)
	h.Mount(win)
	defer h.Unmount()

	tests := []struct {
		y    int
		want bool
	}{
		{0, false},
		{50, false},
		{51, true},
		{400, true},
		{20, false},
	}
	for _, tt := range tests {
		win.ScrollTo(tt.y)
		assert.Equal(t, tt.want, h.Condensed(), "scrollY=%d", tt.y)
	}
}

func TestHeaderMountReadsCurrentOffset(t *testing.T) {
	win := NewWindow()
	win.ScrollTo(120)
	h := NewHeader(50)
	h.Mount(win)
	defer h.Unmount()
	assert.True(t, h.Condensed())
}

func TestHeaderUnmountDetaches(t *testing.T) {
	win := NewWindow()
	h := NewHeader(50)
	h.Mount(win)
	h.Mount(win)
	require.Equal(t, 1, win.ListenerCount(EventScroll))

	h.Unmount()
	h.Unmount()
	assert.Zero(t, win.ListenerCount(EventScroll))

	win.ScrollTo(500)
	assert.False(t, h.Condensed())
}

func TestShellMountAndNavigate(t *testing.T) {
	s, clock := newTestShell(t)

	home := s.Mount(nav.Home)
	require.NotNil(t, home.Intro())
	assert.NotEmpty(t, home.ID)

	s.Drawer().Open()
	s.Window().ScrollTo(300)
	require.True(t, s.Header().Condensed())

	services, err := s.Navigate("/services")
	require.NoError(t, err)

	assert.True(t, home.Unmounted())
	assert.False(t, home.Intro().Mounted())
	assert.False(t, s.Drawer().IsOpen(), "route change closes the drawer")
	assert.True(t, s.Window().Document.ScrollEnabled())
	assert.False(t, s.Header().Condensed(), "new page starts at the top")
	assert.Zero(t, clock.Pending(), "intro timers must not outlive the page")

	acc := services.Accordion("services")
	require.NotNil(t, acc)
	require.NoError(t, acc.Toggle("0"))
	require.NoError(t, acc.Toggle("2"))
	assert.Equal(t, []string{"2"}, acc.OpenPanels())
	assert.Nil(t, services.Intro())
	assert.Same(t, services, s.Page())
}

func TestShellNavigateUnknownRoute(t *testing.T) {
	s, _ := newTestShell(t)
	s.Mount(nav.Home)

	_, err := s.Navigate("/pricing")
	assert.ErrorIs(t, err, nav.ErrUnknownRoute)
	assert.Equal(t, nav.Home, s.Page().Route)
}

func TestShellUnmountWhileOpenReleasesEverything(t *testing.T) {
	clock := NewManualClock(epoch)
	s := NewShell(DefaultConfig(), clock, testLayout, nil)
	s.Mount(nav.Home)
	s.Window().Document.SetBodyOverflow("")
	s.Drawer().Open()

	s.Unmount()

	assert.True(t, s.Window().Document.ScrollEnabled())
	assert.Zero(t, s.Window().ListenerCount(EventKeyDown))
	assert.Zero(t, s.Window().ListenerCount(EventScroll))
	assert.Zero(t, clock.Pending())
	assert.Nil(t, s.Page())

	clock.Advance(time.Minute)
}

func TestManualClockOrdering(t *testing.T) {
	clock := NewManualClock(epoch)
	var order []string
	clock.AfterFunc(20*time.Millisecond, func() { order = append(order, "b") })
	clock.AfterFunc(10*time.Millisecond, func() {
		order = append(order, "a")
		clock.AfterFunc(5*time.Millisecond, func() { order = append(order, "a2") })
	})
	stopped := clock.AfterFunc(15*time.Millisecond, func() { order = append(order, "never") })
	assert.True(t, stopped.Stop())
	assert.False(t, stopped.Stop())

	clock.Advance(20 * time.Millisecond)
	assert.Equal(t, []string{"a", "a2", "b"}, order)
	assert.Equal(t, epoch.Add(20*time.Millisecond), clock.Now())
}

func TestShellRemountReleasesPreviousPage(t *testing.T) {
	s, clock := newTestShell(t)

	first := s.Mount(nav.Home)
	require.NotNil(t, first.Intro())
	require.Equal(t, 1, clock.Pending())

	second := s.Mount(nav.Home)
	assert.NotEqual(t, first.ID, second.ID)
	assert.True(t, first.Unmounted())
	assert.False(t, first.Intro().Mounted())
	assert.Equal(t, 1, clock.Pending(), "only the new intro's safety timer remains")
	assert.Equal(t, 1, s.Window().ListenerCount(EventScroll))

	clock.Advance(10 * time.Second)
	assert.Equal(t, CauseNone, first.Intro().Cause())
	assert.Equal(t, CauseSafety, second.Intro().Cause())
}
