// Package hookengine installs and supervises the system-wide hooks that
// drive clock tooltip enrichment.
//
// The engine owns the discovered target set, the installed hook handles and
// the running flag. Hook callbacks arrive on OS-owned threads and must
// return within a few milliseconds, so every delayed action is pushed onto
// the scheduler and re-validated when it fires.
package hookengine

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/nazgul72/xclock/internal/locator"
	"github.com/nazgul72/xclock/internal/logging"
	"github.com/nazgul72/xclock/internal/sched"
	"github.com/nazgul72/xclock/internal/tooltip"
	"github.com/nazgul72/xclock/internal/winsys"
)

// State is the engine lifecycle state.
type State int32

// Lifecycle states. Start moves Stopped -> Starting -> Running; any start
// failure falls back to Stopped. Stop moves through Stopping from any state.
const (
	StateStopped State = iota
	StateStarting
	StateRunning
	StateStopping
)

// String returns the lowercase state name.
func (s State) String() string {
	switch s {
	case StateStarting:
		return "starting"
	case StateRunning:
		return "running"
	case StateStopping:
		return "stopping"
	default:
		return "stopped"
	}
}

// Defaults for the event delays.
const (
	DefaultSettleDelay   = 100 * time.Millisecond
	DefaultHoverDebounce = 100 * time.Millisecond
)

// Options configure an Engine.
type Options struct {
	// StrictTargets makes Start fail with ErrTargetNotFound when the
	// locator finds nothing. Otherwise the engine starts degraded:
	// window-creation events still work, hover hit-testing cannot.
	StrictTargets bool

	// SettleDelay is the wait between a tooltip window's creation and
	// its mutation, giving the shell time to populate the text.
	SettleDelay time.Duration

	// HoverDebounce is the wait before showing the overlay on hover.
	HoverDebounce time.Duration
}

// Engine is the lifecycle controller and hook event dispatcher.
type Engine struct {
	sys winsys.System
	log *logging.Logger
	sc  sched.Scheduler
	mut *tooltip.Mutator

	strict bool

	// Delay tunables in nanoseconds; updated live on config reload and
	// read from hook callbacks.
	settleDelayNs   atomic.Int64
	hoverDebounceNs atomic.Int64

	// mu serializes Start and Stop. The hot per-event state stays
	// lock-free: callbacks only touch the atomics below.
	mu      sync.Mutex
	state   atomic.Int32
	running atomic.Bool
	targets atomic.Pointer[[]locator.Target]
	hooks   atomic.Pointer[winsys.HookToken]

	// hoverPending is set while a hover-debounce task is outstanding, so
	// the mouse-move stream schedules one task per hover, not one per pixel.
	hoverPending atomic.Bool
}

// New creates a stopped engine. A nil scheduler gets the timer-backed one.
func New(sys winsys.System, log *logging.Logger, sc sched.Scheduler, mut *tooltip.Mutator, opts Options) *Engine {
	if sc == nil {
		sc = sched.Timers{}
	}
	if opts.SettleDelay <= 0 {
		opts.SettleDelay = DefaultSettleDelay
	}
	if opts.HoverDebounce <= 0 {
		opts.HoverDebounce = DefaultHoverDebounce
	}

	e := &Engine{
		sys:    sys,
		log:    log,
		sc:     sc,
		mut:    mut,
		strict: opts.StrictTargets,
	}
	e.settleDelayNs.Store(int64(opts.SettleDelay))
	e.hoverDebounceNs.Store(int64(opts.HoverDebounce))
	e.targets.Store(&[]locator.Target{})
	return e
}

// Start discovers targets, prepares the mutator and installs the hooks.
// It fails loudly with ErrAlreadyRunning when the engine is not stopped.
// On any failure, partially acquired resources are released and the engine
// is left Stopped.
func (e *Engine) Start() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.state.CompareAndSwap(int32(StateStopped), int32(StateStarting)) {
		return ErrAlreadyRunning
	}

	targets := locator.Locate(e.sys)
	if len(targets) == 0 {
		if e.strict {
			e.state.Store(int32(StateStopped))
			return ErrTargetNotFound
		}
		e.log.Warn("no clock windows found, starting degraded")
	} else {
		for _, t := range targets {
			e.log.Debug("clock target", "class", t.Class, "hwnd", uintptr(t.Handle))
		}
	}
	// Set-then-publish: callbacks only ever observe a complete set.
	e.targets.Store(&targets)

	if err := e.mut.Prepare(); err != nil {
		e.state.Store(int32(StateStopped))
		return &ClassRegistrationError{Err: err}
	}

	tok, err := e.sys.InstallHooks(winsys.Callbacks{
		WindowCreated: e.onWindowCreated,
		MouseMoved:    e.onMouseMove,
		MouseDown:     e.onMouseDown,
	})
	if err != nil {
		e.state.Store(int32(StateStopped))
		return &HookInstallError{Err: err}
	}
	if !e.hooks.CompareAndSwap(nil, tok) {
		// A token is still tracked from an earlier install; keep that
		// one and release the new hooks rather than leak them.
		e.sys.UninstallHooks(tok)
		e.state.Store(int32(StateStopped))
		return ErrAlreadyRunning
	}

	e.running.Store(true)
	e.state.Store(int32(StateRunning))
	e.log.Info("hook engine running", "mode", e.mut.Mode().String(), "targets", len(targets))
	return nil
}

// Stop hides any visible tooltip, uninstalls the hooks and clears the
// running flag. Safe to call from any state, any number of times. The
// uninstall is attempted even when the install was never confirmed.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.state.Store(int32(StateStopping))
	e.running.Store(false)

	e.mut.Hide()

	if tok := e.hooks.Swap(nil); tok != nil {
		e.sys.UninstallHooks(tok)
		e.log.Info("hook engine stopped")
	}

	e.state.Store(int32(StateStopped))
}

// IsRunning reports whether the engine is running. The event pump polls
// this between message dispatches.
func (e *Engine) IsRunning() bool {
	return e.running.Load()
}

// State returns the current lifecycle state.
func (e *Engine) State() State {
	return State(e.state.Load())
}

// PumpOne polls and dispatches one pending OS message without blocking.
// Returns false once the OS asks the process to quit.
func (e *Engine) PumpOne() bool {
	return e.sys.PumpOne()
}

// Targets returns a copy of the published target set.
func (e *Engine) Targets() []locator.Target {
	published := *e.targets.Load()
	out := make([]locator.Target, len(published))
	copy(out, published)
	return out
}

// SetDelays updates the event delays at runtime (config hot reload).
// Non-positive values leave the current setting untouched.
func (e *Engine) SetDelays(settle, debounce time.Duration) {
	if settle > 0 {
		e.settleDelayNs.Store(int64(settle))
	}
	if debounce > 0 {
		e.hoverDebounceNs.Store(int64(debounce))
	}
}

func (e *Engine) settleDelay() time.Duration {
	return time.Duration(e.settleDelayNs.Load())
}

func (e *Engine) hoverDebounce() time.Duration {
	return time.Duration(e.hoverDebounceNs.Load())
}
