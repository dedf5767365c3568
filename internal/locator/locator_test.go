package locator

import (
	"testing"

	"github.com/nazgul72/xclock/internal/winsys"
)

func taskbarRect() winsys.Rect {
	return winsys.Rect{Left: 0, Top: 1040, Right: 1920, Bottom: 1080}
}

func TestLocateFindsClockInsideNotifyArea(t *testing.T) {
	sys := winsys.NewSim()
	tray := sys.AddWindow("Shell_TrayWnd", "", taskbarRect())
	notify := sys.AddChild(tray, NotifyAreaClass, "", taskbarRect())
	clock := sys.AddChild(notify, "TrayClockWClass", "", taskbarRect())

	targets := Locate(sys)
	if len(targets) != 1 {
		t.Fatalf("got %d targets, want 1", len(targets))
	}
	if targets[0].Handle != clock || targets[0].Class != "TrayClockWClass" {
		t.Fatalf("target = %+v, want clock %v", targets[0], clock)
	}
}

func TestLocateCollectsEveryClockClass(t *testing.T) {
	sys := winsys.NewSim()
	tray := sys.AddWindow("Shell_TrayWnd", "", taskbarRect())
	notify := sys.AddChild(tray, NotifyAreaClass, "", taskbarRect())
	sys.AddChild(notify, "TrayClockWClass", "", taskbarRect())
	sys.AddChild(notify, "ClockWClass", "", taskbarRect())

	targets := Locate(sys)
	if len(targets) != 2 {
		t.Fatalf("got %d targets, want 2", len(targets))
	}
	if targets[0].Class != "TrayClockWClass" || targets[1].Class != "ClockWClass" {
		t.Fatalf("classes = %q, %q; want priority order", targets[0].Class, targets[1].Class)
	}
}

func TestLocateFallsBackToNotifyArea(t *testing.T) {
	sys := winsys.NewSim()
	tray := sys.AddWindow("Shell_TrayWnd", "", taskbarRect())
	notify := sys.AddChild(tray, NotifyAreaClass, "", taskbarRect())

	targets := Locate(sys)
	if len(targets) != 1 {
		t.Fatalf("got %d targets, want 1", len(targets))
	}
	if targets[0].Handle != notify || targets[0].Class != NotifyAreaClass {
		t.Fatalf("target = %+v, want notify area fallback", targets[0])
	}
}

func TestLocateFallsBackToContainer(t *testing.T) {
	sys := winsys.NewSim()
	tray := sys.AddWindow("Shell_TrayWnd", "", taskbarRect())

	targets := Locate(sys)
	if len(targets) != 1 {
		t.Fatalf("got %d targets, want 1", len(targets))
	}
	if targets[0].Handle != tray || targets[0].Class != "Shell_TrayWnd" {
		t.Fatalf("target = %+v, want container fallback", targets[0])
	}
}

func TestLocateIncludesSecondaryTaskbar(t *testing.T) {
	sys := winsys.NewSim()
	tray := sys.AddWindow("Shell_TrayWnd", "", taskbarRect())
	notify := sys.AddChild(tray, NotifyAreaClass, "", taskbarRect())
	sys.AddChild(notify, "TrayClockWClass", "", taskbarRect())
	sys.AddWindow("Shell_SecondaryTrayWnd", "", winsys.Rect{Left: 1920, Top: 1040, Right: 3840, Bottom: 1080})

	targets := Locate(sys)
	if len(targets) != 2 {
		t.Fatalf("got %d targets, want 2", len(targets))
	}
	if targets[1].Class != "Shell_SecondaryTrayWnd" {
		t.Fatalf("second target = %+v, want secondary taskbar", targets[1])
	}
}

func TestLocateEmptyDesktop(t *testing.T) {
	sys := winsys.NewSim()
	if targets := Locate(sys); len(targets) != 0 {
		t.Fatalf("got %d targets on an empty desktop, want 0", len(targets))
	}
}
