package hookengine

import (
	"github.com/nazgul72/xclock/internal/hittest"
	"github.com/nazgul72/xclock/internal/tooltip"
	"github.com/nazgul72/xclock/internal/winsys"
)

// Hook event handlers. Each runs synchronously on the OS thread delivering
// the event; the winsys layer forwards every event down the hook chain no
// matter what these do, and absorb keeps any internal failure from escaping
// into that chain.

// onWindowCreated fires for every window created on the desktop, in any
// process. Only native tooltip windows in mutate mode are of interest.
func (e *Engine) onWindowCreated(h winsys.Handle) {
	defer e.absorb("window-created")

	if !e.running.Load() {
		return
	}
	if e.mut.Mode() != tooltip.ModeMutate {
		return
	}
	if e.sys.ClassName(h) != winsys.NativeTooltipClass {
		return
	}

	// The tooltip's text is not populated yet at creation time; mutating
	// now would extend an empty string. Wait, then re-validate: the
	// window may be gone and the engine may have stopped meanwhile.
	e.sc.AfterFunc(e.settleDelay(), func() {
		defer e.absorb("settle-task")
		if !e.running.Load() || !e.sys.IsWindow(h) {
			return
		}
		e.mut.MutateNative(h)
	})
}

// onMouseMove fires for every mouse movement system-wide.
func (e *Engine) onMouseMove(p winsys.Point) {
	defer e.absorb("mouse-move")

	if !e.running.Load() {
		return
	}

	if !hittest.Contains(e.sys, p, *e.targets.Load()) {
		e.mut.Hide()
		return
	}

	if e.mut.Mode() != tooltip.ModeOverlay || e.mut.Visible() {
		return
	}
	if !e.hoverPending.CompareAndSwap(false, true) {
		return
	}

	e.sc.AfterFunc(e.hoverDebounce(), func() {
		defer e.absorb("hover-task")
		defer e.hoverPending.Store(false)
		if !e.running.Load() {
			return
		}
		// The cursor may have left during the debounce.
		cur, ok := e.sys.CursorPos()
		if !ok {
			cur = p
		}
		if !hittest.Contains(e.sys, cur, *e.targets.Load()) {
			return
		}
		e.mut.ShowOverlayAt(cur)
	})
}

// onMouseDown hides the overlay on any button press.
func (e *Engine) onMouseDown() {
	defer e.absorb("mouse-down")

	if !e.running.Load() {
		return
	}
	e.mut.Hide()
}

// absorb recovers any panic from a hook handler. An escaped failure inside
// a system-wide hook callback can destabilize every other consumer of the
// event stream, so failures are logged and swallowed.
func (e *Engine) absorb(handler string) {
	if r := recover(); r != nil {
		e.log.Error("hook callback failure absorbed", "handler", handler, "panic", r)
	}
}
