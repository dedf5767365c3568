// Package tooltip owns the rate-limited mutation of clock tooltip content.
//
// Two designs exist in the wild and both are implemented, selected by
// configuration:
//
//   - ModeMutate appends supplementary lines to the shell's own tooltip
//     window in place, then forces a redraw.
//   - ModeOverlay draws a dedicated borderless topmost window near the
//     cursor and destroys it on mouse-exit, button-down or a timer.
//
// Every mutation is gated by a cooldown: window-creation events for one
// logical tooltip arrive in bursts, and re-mutating an already-mutated
// tooltip would duplicate the appended lines.
package tooltip

import (
	"fmt"
	"sync"
	"time"

	"github.com/nazgul72/xclock/internal/logging"
	"github.com/nazgul72/xclock/internal/sched"
	"github.com/nazgul72/xclock/internal/winsys"
)

// Mode selects the mutation design.
type Mode int

const (
	// ModeMutate rewrites the native tooltip text in place.
	ModeMutate Mode = iota

	// ModeOverlay shows a custom overlay window instead.
	ModeOverlay
)

// String returns the configuration name of m.
func (m Mode) String() string {
	switch m {
	case ModeOverlay:
		return "overlay"
	default:
		return "mutate"
	}
}

// ParseMode parses a configuration mode name.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "mutate", "":
		return ModeMutate, nil
	case "overlay":
		return ModeOverlay, nil
	default:
		return ModeMutate, fmt.Errorf("unknown tooltip mode %q", s)
	}
}

// Defaults for the mutation tunables.
const (
	DefaultCooldown       = 500 * time.Millisecond
	DefaultOverlayTimeout = 5 * time.Second
)

// taskbarBandPx bounds how far above the bottom screen edge a tooltip may
// sit and still be treated as a taskbar tooltip.
const taskbarBandPx = 200

// Options configure a Mutator.
type Options struct {
	Mode           Mode
	Cooldown       time.Duration
	OverlayTimeout time.Duration
	Labels         Labels
}

// Mutator performs cooldown-gated tooltip mutations. All state transitions
// happen under one lock so racing deferred workers cannot both pass the
// cooldown check.
type Mutator struct {
	sys winsys.System
	log *logging.Logger
	sc  sched.Scheduler

	mode Mode

	mu         sync.Mutex
	cooldown   time.Duration
	timeout    time.Duration
	labels     Labels
	lastUpdate time.Time
	visible    bool
	owned      winsys.Handle
	hideTask   sched.Task

	// now is swapped out by tests to drive the cooldown without sleeping.
	now func() time.Time
}

// New creates a Mutator. Zero tunables fall back to the package defaults;
// a nil scheduler gets the timer-backed one.
func New(sys winsys.System, log *logging.Logger, sc sched.Scheduler, opts Options) *Mutator {
	if sc == nil {
		sc = sched.Timers{}
	}
	if opts.Cooldown <= 0 {
		opts.Cooldown = DefaultCooldown
	}
	if opts.OverlayTimeout <= 0 {
		opts.OverlayTimeout = DefaultOverlayTimeout
	}
	if opts.Labels == (Labels{}) {
		opts.Labels = DefaultLabels()
	}
	return &Mutator{
		sys:      sys,
		log:      log,
		sc:       sc,
		mode:     opts.Mode,
		cooldown: opts.Cooldown,
		timeout:  opts.OverlayTimeout,
		labels:   opts.Labels,
		now:      time.Now,
	}
}

// Mode returns the configured mutation design.
func (m *Mutator) Mode() Mode { return m.mode }

// SetCooldown updates the cooldown at runtime (config hot reload).
func (m *Mutator) SetCooldown(d time.Duration) {
	if d <= 0 {
		return
	}
	m.mu.Lock()
	m.cooldown = d
	m.mu.Unlock()
}

// Prepare registers OS resources the configured mode needs. Called once by
// the lifecycle controller during start; a failure aborts the start.
func (m *Mutator) Prepare() error {
	if m.mode != ModeOverlay {
		return nil
	}
	return m.sys.RegisterOverlayClass()
}

// Visible reports whether an owned overlay window is currently shown.
func (m *Mutator) Visible() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.visible
}

// LastUpdate returns the timestamp of the last successful mutation.
func (m *Mutator) LastUpdate() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastUpdate
}

// MutateNative appends uptime and week lines to the native tooltip h.
// Returns false without side effects when the cooldown has not elapsed, the
// window is not the clock tooltip, or the handle went stale.
func (m *Mutator) MutateNative(h winsys.Handle) bool {
	if m.mode != ModeMutate {
		return false
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.cooldownElapsed() {
		return false
	}
	if m.sys.ClassName(h) != winsys.NativeTooltipClass {
		return false
	}
	if !m.inTaskbarBand(h) {
		return false
	}

	current := m.sys.WindowText(h)
	if !LooksLikeClockText(current) {
		return false
	}

	composed := current + "\n" + ComposeLines(m.sys.Uptime(), m.now(), m.labels)
	if !m.sys.SetWindowText(h, composed) {
		return false
	}
	m.lastUpdate = m.now()
	m.sys.Redraw(h)
	m.log.Debug("extended clock tooltip", "hwnd", uintptr(h))
	return true
}

// ShowOverlayAt creates the overlay near p. No-op while one is already
// visible or within the cooldown window.
func (m *Mutator) ShowOverlayAt(p winsys.Point) bool {
	if m.mode != ModeOverlay {
		return false
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.visible || !m.cooldownElapsed() {
		return false
	}

	// The shell raises its own tooltip for the same hover; hide it so the
	// overlay replaces it instead of stacking on top.
	m.hideNativeTooltips()

	text := ComposeLines(m.sys.Uptime(), m.now(), m.labels)
	screenW, screenH := m.sys.ScreenSize()
	bounds := OverlayBounds(text, p, screenW, screenH)

	h, err := m.sys.CreateOverlay(text, bounds)
	if err != nil {
		m.log.Warn("overlay creation failed", "error", err)
		return false
	}

	m.owned = h
	m.visible = true
	m.lastUpdate = m.now()
	m.hideTask = m.sc.AfterFunc(m.timeout, m.Hide)
	return true
}

// Hide destroys any owned overlay. Safe to call from any state, including
// concurrently with the auto-hide timer.
func (m *Mutator) Hide() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.hideTask != nil {
		m.hideTask.Stop()
		m.hideTask = nil
	}
	if !m.owned.IsZero() {
		m.sys.DestroyWindow(m.owned)
		m.owned = 0
	}
	m.visible = false
}

// cooldownElapsed must be called with mu held; lastUpdate only moves
// forward, so a passed check stays valid until the caller releases mu.
func (m *Mutator) cooldownElapsed() bool {
	return m.lastUpdate.IsZero() || m.now().Sub(m.lastUpdate) >= m.cooldown
}

// hideNativeTooltips hides every shell tooltip window currently sitting in
// the taskbar band. Tooltips elsewhere on screen belong to other controls
// and are left alone.
func (m *Mutator) hideNativeTooltips() {
	_, screenH := m.sys.ScreenSize()
	for _, h := range m.sys.FindWindows(winsys.NativeTooltipClass) {
		bounds, ok := m.sys.WindowRect(h)
		if !ok || bounds.IsEmpty() {
			continue
		}
		if bounds.Top > screenH-taskbarBandPx {
			m.sys.HideWindow(h)
		}
	}
}

func (m *Mutator) inTaskbarBand(h winsys.Handle) bool {
	bounds, ok := m.sys.WindowRect(h)
	if !ok {
		return false
	}
	_, screenH := m.sys.ScreenSize()
	return bounds.Top > screenH-taskbarBandPx
}
