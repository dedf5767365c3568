package winsys

import (
	"errors"
	"sync"
	"time"
)

// Sim is an in-memory System for tests. Windows are added and removed by the
// test; hook events are delivered synchronously through the Emit methods,
// mirroring how the OS calls hook procedures on its own thread.
type Sim struct {
	mu      sync.Mutex
	next    Handle
	order   []Handle
	windows map[Handle]*SimWindow

	screenW, screenH int32
	cursor           Point
	uptime           time.Duration

	classRegistered bool
	registerErr     error
	installErr      error

	installed    *HookToken
	cb           Callbacks
	installCount int
	forwarded    int

	quit bool
}

// SimWindow is the state backing one simulated window.
type SimWindow struct {
	Class   string
	Text    string
	Bounds  Rect
	Parent  Handle
	Redraws int
	Hidden  bool
}

// NewSim returns an empty simulated system with a 1920x1080 screen.
func NewSim() *Sim {
	return &Sim{
		windows: map[Handle]*SimWindow{},
		screenW: 1920,
		screenH: 1080,
	}
}

// AddWindow adds a top-level window and returns its handle.
func (s *Sim) AddWindow(class, text string, bounds Rect) Handle {
	return s.AddChild(0, class, text, bounds)
}

// AddChild adds a window parented to parent.
func (s *Sim) AddChild(parent Handle, class, text string, bounds Rect) Handle {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	h := s.next
	s.windows[h] = &SimWindow{Class: class, Text: text, Bounds: bounds, Parent: parent}
	s.order = append(s.order, h)
	return h
}

// RemoveWindow destroys a window, making its handle stale.
func (s *Sim) RemoveWindow(h Handle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.windows, h)
}

// Window returns the backing state of h, or nil when stale.
func (s *Sim) Window(h Handle) *SimWindow {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.windows[h]
}

// SetUptime sets the value returned by Uptime.
func (s *Sim) SetUptime(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.uptime = d
}

// SetCursor sets the simulated cursor position.
func (s *Sim) SetCursor(p Point) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cursor = p
}

// SetScreenSize sets the simulated display dimensions.
func (s *Sim) SetScreenSize(w, h int32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.screenW, s.screenH = w, h
}

// FailInstall makes the next InstallHooks call fail with err.
func (s *Sim) FailInstall(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.installErr = err
}

// FailRegister makes RegisterOverlayClass fail with err.
func (s *Sim) FailRegister(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.registerErr = err
}

// Installed reports whether a hook set is currently installed.
func (s *Sim) Installed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.installed != nil
}

// InstallCount returns the number of successful installs ever made.
func (s *Sim) InstallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.installCount
}

// Forwarded returns how many emitted events were passed down the chain.
func (s *Sim) Forwarded() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.forwarded
}

// EmitMouseMove delivers a mouse-move event to the installed callbacks and
// forwards it down the simulated hook chain exactly once.
func (s *Sim) EmitMouseMove(p Point) {
	s.mu.Lock()
	cb := s.cb
	live := s.installed != nil
	s.cursor = p
	s.mu.Unlock()

	defer s.forward()
	if live && cb.MouseMoved != nil {
		cb.MouseMoved(p)
	}
}

// EmitMouseDown delivers a button-down event.
func (s *Sim) EmitMouseDown() {
	s.mu.Lock()
	cb := s.cb
	live := s.installed != nil
	s.mu.Unlock()

	defer s.forward()
	if live && cb.MouseDown != nil {
		cb.MouseDown()
	}
}

// EmitWindowCreated delivers a window-creation event for h.
func (s *Sim) EmitWindowCreated(h Handle) {
	s.mu.Lock()
	cb := s.cb
	live := s.installed != nil
	s.mu.Unlock()

	defer s.forward()
	if live && cb.WindowCreated != nil {
		cb.WindowCreated(h)
	}
}

func (s *Sim) forward() {
	s.mu.Lock()
	s.forwarded++
	s.mu.Unlock()
}

// System implementation.

func (s *Sim) FindWindow(class string) Handle {
	return s.FindChild(0, class)
}

func (s *Sim) FindChild(parent Handle, class string) Handle {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, h := range s.order {
		w, ok := s.windows[h]
		if ok && w.Parent == parent && w.Class == class {
			return h
		}
	}
	return 0
}

func (s *Sim) FindWindows(class string) []Handle {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Handle
	for _, h := range s.order {
		w, ok := s.windows[h]
		if ok && w.Parent == 0 && w.Class == class {
			out = append(out, h)
		}
	}
	return out
}

func (s *Sim) HideWindow(h Handle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if w := s.windows[h]; w != nil {
		w.Hidden = true
	}
}

func (s *Sim) ClassName(h Handle) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if w := s.windows[h]; w != nil {
		return w.Class
	}
	return ""
}

func (s *Sim) WindowText(h Handle) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if w := s.windows[h]; w != nil {
		return w.Text
	}
	return ""
}

func (s *Sim) SetWindowText(h Handle, text string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	w := s.windows[h]
	if w == nil {
		return false
	}
	w.Text = text
	return true
}

func (s *Sim) WindowRect(h Handle) (Rect, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	w := s.windows[h]
	if w == nil {
		return Rect{}, false
	}
	return w.Bounds, true
}

func (s *Sim) IsWindow(h Handle) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.windows[h]
	return ok
}

func (s *Sim) Redraw(h Handle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if w := s.windows[h]; w != nil {
		w.Redraws++
	}
}

func (s *Sim) CursorPos() (Point, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor, true
}

func (s *Sim) ScreenSize() (int32, int32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.screenW, s.screenH
}

func (s *Sim) Uptime() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.uptime
}

func (s *Sim) RegisterOverlayClass() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.registerErr != nil {
		return s.registerErr
	}
	s.classRegistered = true
	return nil
}

func (s *Sim) CreateOverlay(text string, r Rect) (Handle, error) {
	s.mu.Lock()
	if !s.classRegistered {
		s.mu.Unlock()
		return 0, errors.New("overlay class not registered")
	}
	s.mu.Unlock()
	return s.AddWindow(OverlayClassName, text, r), nil
}

func (s *Sim) DestroyWindow(h Handle) {
	s.RemoveWindow(h)
}

func (s *Sim) InstallHooks(cb Callbacks) (*HookToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.installErr != nil {
		err := s.installErr
		s.installErr = nil
		return nil, err
	}
	tok := &HookToken{sim: true}
	s.installed = tok
	s.cb = cb
	s.installCount++
	return tok, nil
}

func (s *Sim) UninstallHooks(tok *HookToken) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if tok == nil || s.installed != tok {
		return
	}
	s.installed = nil
	s.cb = Callbacks{}
}

func (s *Sim) PumpOne() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.quit
}

func (s *Sim) PostQuit() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quit = true
}
