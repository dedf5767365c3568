// Package hittest decides whether a screen point falls on a clock target.
package hittest

import (
	"strings"

	"github.com/nazgul72/xclock/internal/locator"
	"github.com/nazgul72/xclock/internal/winsys"
)

// Rule selects which part of a target's rectangle counts as "the clock".
type Rule int

const (
	// RuleExact matches the full window rectangle.
	RuleExact Rule = iota

	// RuleRightThird matches only the rightmost third of the rectangle.
	// The notification area holds tray icons on the left and the clock on
	// the right; matching the whole container would trigger on every icon.
	RuleRightThird
)

// String returns the rule name.
func (r Rule) String() string {
	if r == RuleRightThird {
		return "right-third"
	}
	return "exact"
}

// ClassRule maps a window class to its hit-test rule. Exact takes priority
// over substring matching when both are set.
type ClassRule struct {
	Exact      string
	Substrings []string
	Rule       Rule
}

// rules is evaluated in order; the first match wins. Unlisted classes get
// RuleExact.
var rules = []ClassRule{
	{Substrings: []string{"Clock", "Time"}, Rule: RuleExact},
	{Exact: locator.NotifyAreaClass, Rule: RuleRightThird},
}

// RuleFor returns the hit-test rule for a window class.
func RuleFor(class string) Rule {
	for _, r := range rules {
		if r.Exact != "" {
			if class == r.Exact {
				return r.Rule
			}
			continue
		}
		for _, sub := range r.Substrings {
			if strings.Contains(class, sub) {
				return r.Rule
			}
		}
	}
	return RuleExact
}

// Region returns the sub-rectangle of bounds that rule treats as inside.
func Region(bounds winsys.Rect, rule Rule) winsys.Rect {
	if rule == RuleRightThird {
		bounds.Left += bounds.Width() * 2 / 3
	}
	return bounds
}

// Contains reports whether p falls on any target. Bounds are re-queried on
// every call because the taskbar moves and resizes with the shell; a failed
// or empty bounds query means "not contained", never an error. Targets are
// checked in discovery order and the first hit short-circuits.
//
// Containment is inclusive on all four edges (see winsys.Rect.Contains).
func Contains(sys winsys.System, p winsys.Point, targets []locator.Target) bool {
	for _, t := range targets {
		bounds, ok := sys.WindowRect(t.Handle)
		if !ok || bounds.IsEmpty() {
			continue
		}
		if Region(bounds, RuleFor(t.Class)).Contains(p) {
			return true
		}
	}
	return false
}
