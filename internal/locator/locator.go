// Package locator discovers clock-related windows in the shell hierarchy.
package locator

import (
	"github.com/nazgul72/xclock/internal/winsys"
)

// Target is a discovered window tagged with the class name it was found
// under. Targets are read-only after discovery; the handle may go stale if
// the shell recreates the taskbar, which downstream code tolerates.
type Target struct {
	Handle winsys.Handle
	Class  string
}

// NotifyAreaClass is the notification-area container inside the taskbar.
const NotifyAreaClass = "TrayNotifyWnd"

// containerClasses are the shell taskbar containers, primary first. The
// secondary class covers taskbars on additional monitors.
var containerClasses = []string{
	"Shell_TrayWnd",
	"Shell_SecondaryTrayWnd",
}

// clockClasses are the known clock controls, in priority order. Which one
// exists depends on the Windows build.
var clockClasses = []string{
	"TrayClockWClass",
	"ClockWClass",
	"DigitalClockWClass",
}

// Locate walks the shell window hierarchy once and returns every clock
// target found, in discovery order. It never blocks and never retries; an
// empty result is a valid outcome the caller's policy decides on.
//
// For each taskbar container: prefer specific clock controls inside the
// notification area, fall back to the notification area, and fall back to
// the container itself when even that is missing.
func Locate(sys winsys.System) []Target {
	var targets []Target
	for _, containerClass := range containerClasses {
		container := sys.FindWindow(containerClass)
		if container.IsZero() {
			continue
		}

		notify := sys.FindChild(container, NotifyAreaClass)
		if notify.IsZero() {
			targets = append(targets, Target{Handle: container, Class: containerClass})
			continue
		}

		found := false
		for _, clockClass := range clockClasses {
			if clock := sys.FindChild(notify, clockClass); !clock.IsZero() {
				targets = append(targets, Target{Handle: clock, Class: clockClass})
				found = true
			}
		}
		if !found {
			targets = append(targets, Target{Handle: notify, Class: NotifyAreaClass})
		}
	}
	return targets
}
