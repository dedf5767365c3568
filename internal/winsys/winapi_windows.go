//go:build windows

package winsys

import (
	"golang.org/x/sys/windows"
)

// Consolidated Win32 declarations. Procs are resolved lazily on first call.
var (
	user32   = windows.NewLazySystemDLL("user32.dll")
	kernel32 = windows.NewLazySystemDLL("kernel32.dll")
	gdi32    = windows.NewLazySystemDLL("gdi32.dll")

	procFindWindowW         = user32.NewProc("FindWindowW")
	procFindWindowExW       = user32.NewProc("FindWindowExW")
	procGetClassNameW       = user32.NewProc("GetClassNameW")
	procSendMessageW        = user32.NewProc("SendMessageW")
	procGetWindowRect       = user32.NewProc("GetWindowRect")
	procGetClientRect       = user32.NewProc("GetClientRect")
	procIsWindow            = user32.NewProc("IsWindow")
	procInvalidateRect      = user32.NewProc("InvalidateRect")
	procUpdateWindow        = user32.NewProc("UpdateWindow")
	procGetCursorPos        = user32.NewProc("GetCursorPos")
	procGetSystemMetrics    = user32.NewProc("GetSystemMetrics")
	procRegisterClassExW    = user32.NewProc("RegisterClassExW")
	procCreateWindowExW     = user32.NewProc("CreateWindowExW")
	procDestroyWindow       = user32.NewProc("DestroyWindow")
	procShowWindow          = user32.NewProc("ShowWindow")
	procDefWindowProcW      = user32.NewProc("DefWindowProcW")
	procLoadCursorW         = user32.NewProc("LoadCursorW")
	procBeginPaint          = user32.NewProc("BeginPaint")
	procEndPaint            = user32.NewProc("EndPaint")
	procDrawTextW           = user32.NewProc("DrawTextW")
	procSetWindowsHookExW   = user32.NewProc("SetWindowsHookExW")
	procUnhookWindowsHookEx = user32.NewProc("UnhookWindowsHookEx")
	procCallNextHookEx      = user32.NewProc("CallNextHookEx")
	procSetWinEventHook     = user32.NewProc("SetWinEventHook")
	procUnhookWinEvent      = user32.NewProc("UnhookWinEvent")
	procPeekMessageW        = user32.NewProc("PeekMessageW")
	procTranslateMessage    = user32.NewProc("TranslateMessage")
	procDispatchMessageW    = user32.NewProc("DispatchMessageW")
	procPostQuitMessage     = user32.NewProc("PostQuitMessage")

	procGetModuleHandleW = kernel32.NewProc("GetModuleHandleW")
	procGetTickCount64   = kernel32.NewProc("GetTickCount64")

	procSetTextColor = gdi32.NewProc("SetTextColor")
	procSetBkMode    = gdi32.NewProc("SetBkMode")
	procCreatePen    = gdi32.NewProc("CreatePen")
	procSelectObject = gdi32.NewProc("SelectObject")
	procDeleteObject = gdi32.NewProc("DeleteObject")
	procGetStockObj  = gdi32.NewProc("GetStockObject")
	procRectangle    = gdi32.NewProc("Rectangle")
)

const (
	whMouseLL = 14

	wmMouseMove   = 0x0200
	wmLButtonDown = 0x0201
	wmRButtonDown = 0x0204
	wmMButtonDown = 0x0207
	wmPaint       = 0x000F
	wmDestroy     = 0x0002
	wmQuit        = 0x0012
	wmSetText     = 0x000C
	wmGetText     = 0x000D

	hcAction = 0

	eventObjectCreate   = 0x8000
	wineventOutOfCtx    = 0x0000
	objidWindow         = 0
	childidSelf         = 0
	smCxScreen          = 0
	smCyScreen          = 1
	pmRemove            = 0x0001
	swShow              = 5
	swHide              = 0
	csDropShadow        = 0x00020000
	colorInfoBk         = 24
	idcArrow            = 32512
	wsPopup             = 0x80000000
	wsExTopmost         = 0x00000008
	wsExToolWindow      = 0x00000080
	wsExNoActivate      = 0x08000000
	dtLeft              = 0x0000
	dtTop               = 0x0000
	dtWordBreak         = 0x0010
	psSolid             = 0
	nullBrush           = 5
	bkTransparent       = 1
	overlayBorderColor  = 0x00808080
	overlayTextColor    = 0x00000000
	overlayTextInsetPx  = 8
	classNameBufferSize = 256
	windowTextBufSize   = 512
)

type wndClassExW struct {
	Size       uint32
	Style      uint32
	WndProc    uintptr
	ClsExtra   int32
	WndExtra   int32
	Instance   windows.Handle
	Icon       windows.Handle
	Cursor     windows.Handle
	Background windows.Handle
	MenuName   *uint16
	ClassName  *uint16
	IconSm     windows.Handle
}

type point32 struct {
	X, Y int32
}

type rect32 struct {
	Left, Top, Right, Bottom int32
}

type msg struct {
	Hwnd    windows.HWND
	Message uint32
	WParam  uintptr
	LParam  uintptr
	Time    uint32
	Pt      point32
}

// MSLLHOOKSTRUCT, delivered with every WH_MOUSE_LL event.
type msllHookStruct struct {
	Pt          point32
	MouseData   uint32
	Flags       uint32
	Time        uint32
	DwExtraInfo uintptr
}

type paintStruct struct {
	Hdc         uintptr
	Erase       int32
	RcPaint     rect32
	Restore     int32
	IncUpdate   int32
	RgbReserved [32]byte
}
