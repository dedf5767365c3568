package tooltip

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/nazgul72/xclock/internal/winsys"
)

// Labels localize the two appended lines.
type Labels struct {
	Uptime string
	Week   string
}

// DefaultLabels are Norwegian, matching the audience the tool was built for.
func DefaultLabels() Labels {
	return Labels{Uptime: "Opptid", Week: "Uke"}
}

// FormatUptime renders a boot-relative uptime as "1d 2h 3m", "2h 3m" or
// "3m", dropping leading units that are zero.
func FormatUptime(d time.Duration) string {
	total := int64(d / time.Minute)
	days := total / (24 * 60)
	hours := (total % (24 * 60)) / 60
	minutes := total % 60

	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh %dm", days, hours, minutes)
	case hours > 0:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	default:
		return fmt.Sprintf("%dm", minutes)
	}
}

// FormatWeek renders the ISO 8601 week of t with its week-based year,
// e.g. "Uke 35, 2026". Norwegian week numbering follows ISO 8601.
func FormatWeek(t time.Time, label string) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%s %d, %d", label, week, year)
}

// ComposeLines builds the supplementary tooltip lines.
func ComposeLines(uptime time.Duration, now time.Time, labels Labels) string {
	return fmt.Sprintf("%s: %s\n%s", labels.Uptime, FormatUptime(uptime), FormatWeek(now, labels.Week))
}

// LooksLikeClockText reports whether s plausibly came from the clock
// tooltip: a time or date contains a colon, a slash, an AM/PM marker or at
// least one digit. Guards against corrupting unrelated tooltips that happen
// to live in the taskbar band.
func LooksLikeClockText(s string) bool {
	if s == "" {
		return false
	}
	if strings.Contains(s, ":") || strings.Contains(s, "/") ||
		strings.Contains(s, "AM") || strings.Contains(s, "PM") {
		return true
	}
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

// Overlay geometry constants, sized for the default system font.
const (
	overlayMinWidth   = 250
	overlayMinHeight  = 60
	overlayCharWidth  = 8
	overlayLineHeight = 16
	overlayPadding    = 20
	cursorOffsetX     = 15
	cursorOffsetY     = 10
	belowCursorY      = 25
)

// OverlayBounds positions an overlay near the cursor: offset so the cursor
// does not cover it, flipped to the other side when it would leave the
// screen, sized to fit text.
func OverlayBounds(text string, cur winsys.Point, screenW, screenH int32) winsys.Rect {
	lines := strings.Split(text, "\n")
	maxLine := 0
	for _, l := range lines {
		if len(l) > maxLine {
			maxLine = len(l)
		}
	}

	width := int32(maxLine * overlayCharWidth)
	if width < overlayMinWidth {
		width = overlayMinWidth
	}
	height := int32(len(lines)*overlayLineHeight + overlayPadding)
	if height < overlayMinHeight {
		height = overlayMinHeight
	}

	x := cur.X + cursorOffsetX
	y := cur.Y - height - cursorOffsetY
	if x+width > screenW {
		x = cur.X - width - cursorOffsetX
	}
	if y < 0 {
		y = cur.Y + belowCursorY
	}

	return winsys.Rect{Left: x, Top: y, Right: x + width, Bottom: y + height}
}
