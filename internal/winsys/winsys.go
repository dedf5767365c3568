// Package winsys centralizes access to the native windowing system.
//
// All window handles, rectangle queries, text reads/writes, overlay window
// creation and system-wide hook installation go through the System interface.
// No other package touches raw OS handles.
//
// Platform support:
//   - Windows: full implementation over user32/kernel32/gdi32
//   - other: stub that reports ErrNotSupported (the hook engine refuses to start)
//
// A simulated implementation (Sim) is provided for tests.
package winsys

import (
	"errors"
	"time"
)

// NativeTooltipClass is the window class the shell uses for transient tooltips.
const NativeTooltipClass = "tooltips_class32"

// OverlayClassName is the window class registered for our own tooltip overlay.
const OverlayClassName = "XClockHoverTooltip"

// ErrNotSupported is returned on platforms without a windowing backend.
var ErrNotSupported = errors.New("winsys: native windowing not supported on this platform")

// Handle identifies a native top-level or child window.
//
// Handle values are stable for the lifetime of the owning process, so they are
// safe to move between goroutines. A handle may go stale at any time when the
// underlying window is destroyed; System methods treat stale handles as
// failed queries, never as faults.
type Handle uintptr

// IsZero reports whether h refers to no window.
func (h Handle) IsZero() bool { return h == 0 }

// Point is a screen coordinate in pixels.
type Point struct {
	X, Y int32
}

// Rect is a screen-space rectangle.
//
// Containment is inclusive on all four edges. The shell reports window bounds
// as closed intervals and the hit-test rules depend on that convention.
type Rect struct {
	Left, Top, Right, Bottom int32
}

// Width returns the horizontal extent of r.
func (r Rect) Width() int32 { return r.Right - r.Left }

// Height returns the vertical extent of r.
func (r Rect) Height() int32 { return r.Bottom - r.Top }

// IsEmpty reports whether r has no area.
func (r Rect) IsEmpty() bool { return r.Width() <= 0 || r.Height() <= 0 }

// Contains reports whether p falls inside r, edges included.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Left && p.X <= r.Right && p.Y >= r.Top && p.Y <= r.Bottom
}

// Callbacks receive hook events. They are invoked synchronously on whatever
// thread the OS delivers the event on; they must return quickly and must not
// block. Nil members are skipped.
type Callbacks struct {
	// WindowCreated fires for every window created on the desktop,
	// in any process.
	WindowCreated func(Handle)

	// MouseMoved fires for every mouse movement, system-wide.
	MouseMoved func(Point)

	// MouseDown fires for any mouse button press, system-wide.
	MouseDown func()
}

// HookToken references one installed set of system hooks. Opaque outside
// this package; at most one token should be live at a time.
type HookToken struct {
	mouse    uintptr
	winEvent uintptr
	sim      bool
}

// System is the boundary to the native windowing subsystem.
//
// Query methods report failure through zero values and ok-booleans rather
// than errors: a window vanishing mid-query is normal operation here.
type System interface {
	// FindWindow returns the first top-level window with the given class
	// name, or a zero handle.
	FindWindow(class string) Handle

	// FindChild returns the first direct child of parent with the given
	// class name, or a zero handle.
	FindChild(parent Handle, class string) Handle

	// FindWindows returns every top-level window with the given class name.
	FindWindows(class string) []Handle

	// ClassName resolves the window class of h. Empty for stale handles.
	ClassName(h Handle) string

	// WindowText reads the title/text of h. Empty for stale handles.
	WindowText(h Handle) string

	// SetWindowText replaces the text of h. False if the write failed.
	SetWindowText(h Handle, text string) bool

	// WindowRect queries the current screen bounds of h.
	WindowRect(h Handle) (Rect, bool)

	// IsWindow reports whether h still refers to a live window.
	IsWindow(h Handle) bool

	// Redraw invalidates and repaints h.
	Redraw(h Handle)

	// HideWindow hides h without destroying it. Safe on stale handles.
	HideWindow(h Handle)

	// CursorPos returns the current mouse position in screen coordinates.
	CursorPos() (Point, bool)

	// ScreenSize returns the primary display dimensions in pixels.
	ScreenSize() (width, height int32)

	// Uptime returns the time elapsed since system boot, from the
	// boot-relative tick counter. Immune to wall-clock adjustments.
	Uptime() time.Duration

	// RegisterOverlayClass registers the overlay window class. Idempotent.
	RegisterOverlayClass() error

	// CreateOverlay creates and shows a borderless topmost window at r
	// painted with text. The caller owns the returned handle.
	CreateOverlay(text string, r Rect) (Handle, error)

	// DestroyWindow destroys a window created by CreateOverlay.
	// Safe on stale handles.
	DestroyWindow(h Handle)

	// InstallHooks installs the system-wide window-creation and mouse
	// hooks and routes their events to cb. The returned token must be
	// passed to UninstallHooks. On failure the error wraps the native
	// error code and no hooks are left installed.
	InstallHooks(cb Callbacks) (*HookToken, error)

	// UninstallHooks removes the hooks referenced by tok. Idempotent.
	UninstallHooks(tok *HookToken)

	// PumpOne polls and dispatches at most one pending OS message without
	// blocking. Returns false once the OS delivers a quit message.
	PumpOne() bool

	// PostQuit asks the message pump to report quit on a later PumpOne.
	PostQuit()
}
