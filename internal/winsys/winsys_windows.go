//go:build windows

package winsys

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"syscall"
	"time"
	"unsafe"

	"golang.org/x/sys/windows"
)

// activeCallbacks is the one live Callbacks set. The native hook procedure
// signature cannot carry a closure context, so the procs created by
// windows.NewCallback look the target up here. InstallHooks enforces a single
// live install, so a plain atomic pointer is enough.
var activeCallbacks atomic.Pointer[Callbacks]

// Hook and window procedures must be created exactly once per process;
// NewCallback allocations are never released.
var (
	procOnce        sync.Once
	mouseProcPtr    uintptr
	winEventProcPtr uintptr
	overlayProcPtr  uintptr
)

// overlayText holds the text painted by each live overlay window.
var (
	overlayMu   sync.Mutex
	overlayText = map[windows.HWND]string{}
)

type windowsSystem struct {
	classMu         sync.Mutex
	classRegistered bool
	overlay         overlayThread
}

// overlayThread owns every overlay window. Win32 ties a window to the OS
// thread that created it: DestroyWindow fails from any other thread, and
// paint messages queue on the owner. Callers of CreateOverlay and
// DestroyWindow run on arbitrary goroutines (timer tasks, hook callbacks),
// so both calls are marshaled onto one locked thread that also pumps the
// messages for its windows.
type overlayThread struct {
	once sync.Once
	reqs chan func()
}

func (t *overlayThread) run(fn func()) {
	t.once.Do(func() {
		t.reqs = make(chan func(), 16)
		go t.loop()
	})
	done := make(chan struct{})
	t.reqs <- func() {
		defer close(done)
		fn()
	}
	<-done
}

func (t *overlayThread) loop() {
	runtime.LockOSThread()
	for {
		select {
		case fn := <-t.reqs:
			fn()
		default:
			var m msg
			ret, _, _ := procPeekMessageW.Call(uintptr(unsafe.Pointer(&m)), 0, 0, 0, pmRemove)
			if ret == 0 {
				time.Sleep(5 * time.Millisecond)
				continue
			}
			procTranslateMessage.Call(uintptr(unsafe.Pointer(&m)))
			procDispatchMessageW.Call(uintptr(unsafe.Pointer(&m)))
		}
	}
}

// New returns the native windowing backend.
func New() (System, error) {
	return &windowsSystem{}, nil
}

func utf16Ptr(s string) *uint16 {
	p, err := windows.UTF16PtrFromString(s)
	if err != nil {
		// Interior NUL; fall back to the empty string.
		p, _ = windows.UTF16PtrFromString("")
	}
	return p
}

func (s *windowsSystem) FindWindow(class string) Handle {
	h, _, _ := procFindWindowW.Call(uintptr(unsafe.Pointer(utf16Ptr(class))), 0)
	return Handle(h)
}

func (s *windowsSystem) FindChild(parent Handle, class string) Handle {
	h, _, _ := procFindWindowExW.Call(uintptr(parent), 0, uintptr(unsafe.Pointer(utf16Ptr(class))), 0)
	return Handle(h)
}

func (s *windowsSystem) FindWindows(class string) []Handle {
	cls := utf16Ptr(class)
	var out []Handle
	var after uintptr
	for {
		h, _, _ := procFindWindowExW.Call(0, after, uintptr(unsafe.Pointer(cls)), 0)
		if h == 0 {
			return out
		}
		out = append(out, Handle(h))
		after = h
	}
}

func (s *windowsSystem) HideWindow(h Handle) {
	if h.IsZero() {
		return
	}
	procShowWindow.Call(uintptr(h), swHide)
}

func (s *windowsSystem) ClassName(h Handle) string {
	var buf [classNameBufferSize]uint16
	n, _, _ := procGetClassNameW.Call(uintptr(h), uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)))
	if n == 0 {
		return ""
	}
	return windows.UTF16ToString(buf[:n])
}

// WindowText reads via WM_GETTEXT rather than GetWindowTextW: the message
// marshals across process boundaries, and the interesting tooltip windows
// belong to the shell, not to us.
func (s *windowsSystem) WindowText(h Handle) string {
	var buf [windowTextBufSize]uint16
	n, _, _ := procSendMessageW.Call(uintptr(h), wmGetText, uintptr(len(buf)), uintptr(unsafe.Pointer(&buf[0])))
	if n == 0 {
		return ""
	}
	return windows.UTF16ToString(buf[:n])
}

// SetWindowText writes via WM_SETTEXT for the same cross-process reason.
func (s *windowsSystem) SetWindowText(h Handle, text string) bool {
	buf, err := windows.UTF16PtrFromString(text)
	if err != nil {
		return false
	}
	ret, _, _ := procSendMessageW.Call(uintptr(h), wmSetText, 0, uintptr(unsafe.Pointer(buf)))
	return ret != 0
}

func (s *windowsSystem) WindowRect(h Handle) (Rect, bool) {
	var r rect32
	ret, _, _ := procGetWindowRect.Call(uintptr(h), uintptr(unsafe.Pointer(&r)))
	if ret == 0 {
		return Rect{}, false
	}
	return Rect{Left: r.Left, Top: r.Top, Right: r.Right, Bottom: r.Bottom}, true
}

func (s *windowsSystem) IsWindow(h Handle) bool {
	ret, _, _ := procIsWindow.Call(uintptr(h))
	return ret != 0
}

func (s *windowsSystem) Redraw(h Handle) {
	procInvalidateRect.Call(uintptr(h), 0, 1)
	procUpdateWindow.Call(uintptr(h))
}

func (s *windowsSystem) CursorPos() (Point, bool) {
	var p point32
	ret, _, _ := procGetCursorPos.Call(uintptr(unsafe.Pointer(&p)))
	if ret == 0 {
		return Point{}, false
	}
	return Point{X: p.X, Y: p.Y}, true
}

func (s *windowsSystem) ScreenSize() (int32, int32) {
	w, _, _ := procGetSystemMetrics.Call(smCxScreen)
	h, _, _ := procGetSystemMetrics.Call(smCyScreen)
	return int32(w), int32(h)
}

func (s *windowsSystem) Uptime() time.Duration {
	ms, _, _ := procGetTickCount64.Call()
	return time.Duration(ms) * time.Millisecond
}

func moduleHandle() windows.Handle {
	h, _, _ := procGetModuleHandleW.Call(0)
	return windows.Handle(h)
}

func (s *windowsSystem) RegisterOverlayClass() error {
	s.classMu.Lock()
	defer s.classMu.Unlock()
	if s.classRegistered {
		return nil
	}

	ensureProcs()
	wc := wndClassExW{
		Size:       uint32(unsafe.Sizeof(wndClassExW{})),
		Style:      csDropShadow,
		WndProc:    overlayProcPtr,
		Instance:   moduleHandle(),
		Background: windows.Handle(colorInfoBk + 1),
		ClassName:  utf16Ptr(OverlayClassName),
	}
	cursor, _, _ := procLoadCursorW.Call(0, idcArrow)
	wc.Cursor = windows.Handle(cursor)

	ret, _, err := procRegisterClassExW.Call(uintptr(unsafe.Pointer(&wc)))
	if ret == 0 {
		if errno, ok := err.(syscall.Errno); ok && errno == syscall.Errno(windows.ERROR_CLASS_ALREADY_EXISTS) {
			s.classRegistered = true
			return nil
		}
		return fmt.Errorf("register overlay class: %w", err)
	}
	s.classRegistered = true
	return nil
}

func (s *windowsSystem) CreateOverlay(text string, r Rect) (Handle, error) {
	var h Handle
	var err error
	s.overlay.run(func() {
		h, err = createOverlayWindow(text, r)
	})
	return h, err
}

func createOverlayWindow(text string, r Rect) (Handle, error) {
	hwnd, _, err := procCreateWindowExW.Call(
		wsExTopmost|wsExToolWindow|wsExNoActivate,
		uintptr(unsafe.Pointer(utf16Ptr(OverlayClassName))),
		uintptr(unsafe.Pointer(utf16Ptr("Extended Clock Info"))),
		wsPopup,
		uintptr(r.Left), uintptr(r.Top),
		uintptr(r.Width()), uintptr(r.Height()),
		0, 0, uintptr(moduleHandle()), 0,
	)
	if hwnd == 0 {
		return 0, fmt.Errorf("create overlay window: %w", err)
	}

	overlayMu.Lock()
	overlayText[windows.HWND(hwnd)] = text
	overlayMu.Unlock()

	procShowWindow.Call(hwnd, swShow)
	procUpdateWindow.Call(hwnd)
	return Handle(hwnd), nil
}

func (s *windowsSystem) DestroyWindow(h Handle) {
	if h.IsZero() {
		return
	}
	// Destruction must happen on the creating thread.
	s.overlay.run(func() {
		procDestroyWindow.Call(uintptr(h))
	})
}

func (s *windowsSystem) InstallHooks(cb Callbacks) (*HookToken, error) {
	ensureProcs()
	activeCallbacks.Store(&cb)

	winEvent, _, err := procSetWinEventHook.Call(
		eventObjectCreate, eventObjectCreate,
		0, winEventProcPtr, 0, 0, wineventOutOfCtx,
	)
	if winEvent == 0 {
		activeCallbacks.Store(nil)
		return nil, fmt.Errorf("window-event hook: %w", err)
	}

	mouse, _, err := procSetWindowsHookExW.Call(
		whMouseLL, mouseProcPtr, uintptr(moduleHandle()), 0,
	)
	if mouse == 0 {
		procUnhookWinEvent.Call(winEvent)
		activeCallbacks.Store(nil)
		return nil, fmt.Errorf("mouse hook: %w", err)
	}

	return &HookToken{mouse: mouse, winEvent: winEvent}, nil
}

func (s *windowsSystem) UninstallHooks(tok *HookToken) {
	if tok == nil {
		return
	}
	if tok.mouse != 0 {
		procUnhookWindowsHookEx.Call(tok.mouse)
		tok.mouse = 0
	}
	if tok.winEvent != 0 {
		procUnhookWinEvent.Call(tok.winEvent)
		tok.winEvent = 0
	}
	activeCallbacks.Store(nil)
}

func (s *windowsSystem) PumpOne() bool {
	var m msg
	ret, _, _ := procPeekMessageW.Call(uintptr(unsafe.Pointer(&m)), 0, 0, 0, pmRemove)
	if ret == 0 {
		return true
	}
	if m.Message == wmQuit {
		return false
	}
	procTranslateMessage.Call(uintptr(unsafe.Pointer(&m)))
	procDispatchMessageW.Call(uintptr(unsafe.Pointer(&m)))
	return true
}

func (s *windowsSystem) PostQuit() {
	procPostQuitMessage.Call(0)
}

func ensureProcs() {
	procOnce.Do(func() {
		mouseProcPtr = windows.NewCallback(mouseHookProc)
		winEventProcPtr = windows.NewCallback(winEventProc)
		overlayProcPtr = windows.NewCallback(overlayWndProc)
	})
}

// mouseHookProc runs on the thread that owns the message pump for every
// mouse event on the system. The event is always forwarded to the next hook
// in the chain, whether or not we acted on it.
func mouseHookProc(code, wparam, lparam uintptr) uintptr {
	if int32(code) == hcAction {
		if cb := activeCallbacks.Load(); cb != nil {
			switch wparam {
			case wmMouseMove:
				if cb.MouseMoved != nil {
					ms := (*msllHookStruct)(unsafe.Pointer(lparam))
					cb.MouseMoved(Point{X: ms.Pt.X, Y: ms.Pt.Y})
				}
			case wmLButtonDown, wmRButtonDown, wmMButtonDown:
				if cb.MouseDown != nil {
					cb.MouseDown()
				}
			}
		}
	}
	ret, _, _ := procCallNextHookEx.Call(0, code, wparam, lparam)
	return ret
}

// winEventProc receives out-of-context object events for every process on
// the desktop. Unlike WH_ hooks there is no chain to forward to; returning
// hands the event back to the OS.
func winEventProc(hook, event, hwnd, idObject, idChild, idThread, eventTime uintptr) uintptr {
	if uint32(event) == eventObjectCreate && int32(idObject) == objidWindow && int32(idChild) == childidSelf {
		if cb := activeCallbacks.Load(); cb != nil && cb.WindowCreated != nil && hwnd != 0 {
			cb.WindowCreated(Handle(hwnd))
		}
	}
	return 0
}

func overlayWndProc(hwnd windows.HWND, m uint32, wparam, lparam uintptr) uintptr {
	switch m {
	case wmPaint:
		paintOverlay(hwnd)
		return 0
	case wmDestroy:
		overlayMu.Lock()
		delete(overlayText, hwnd)
		overlayMu.Unlock()
		return 0
	}
	ret, _, _ := procDefWindowProcW.Call(uintptr(hwnd), uintptr(m), wparam, lparam)
	return ret
}

func paintOverlay(hwnd windows.HWND) {
	overlayMu.Lock()
	text := overlayText[hwnd]
	overlayMu.Unlock()

	var ps paintStruct
	hdc, _, _ := procBeginPaint.Call(uintptr(hwnd), uintptr(unsafe.Pointer(&ps)))
	if hdc == 0 {
		return
	}
	defer procEndPaint.Call(uintptr(hwnd), uintptr(unsafe.Pointer(&ps)))

	var client rect32
	procGetClientRect.Call(uintptr(hwnd), uintptr(unsafe.Pointer(&client)))

	pen, _, _ := procCreatePen.Call(psSolid, 1, overlayBorderColor)
	oldPen, _, _ := procSelectObject.Call(hdc, pen)
	stock, _, _ := procGetStockObj.Call(nullBrush)
	oldBrush, _, _ := procSelectObject.Call(hdc, stock)
	procRectangle.Call(hdc, 0, 0, uintptr(client.Right), uintptr(client.Bottom))
	procSelectObject.Call(hdc, oldPen)
	procSelectObject.Call(hdc, oldBrush)
	procDeleteObject.Call(pen)

	procSetTextColor.Call(hdc, overlayTextColor)
	procSetBkMode.Call(hdc, bkTransparent)

	textRect := rect32{
		Left:   overlayTextInsetPx,
		Top:    overlayTextInsetPx,
		Right:  client.Right - overlayTextInsetPx,
		Bottom: client.Bottom - overlayTextInsetPx,
	}
	wide, err := windows.UTF16FromString(text)
	if err != nil {
		return
	}
	procDrawTextW.Call(hdc, uintptr(unsafe.Pointer(&wide[0])), ^uintptr(0), uintptr(unsafe.Pointer(&textRect)), dtLeft|dtTop|dtWordBreak)
}
