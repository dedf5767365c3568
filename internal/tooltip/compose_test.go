package tooltip

import (
	"testing"
	"time"

	"github.com/nazgul72/xclock/internal/winsys"
)

func TestFormatUptime(t *testing.T) {
	cases := []struct {
		d    time.Duration
		want string
	}{
		{5 * time.Minute, "5m"},
		{0, "0m"},
		{59 * time.Second, "0m"},
		{3 * time.Hour, "3h 0m"},
		{2*time.Hour + 3*time.Minute, "2h 3m"},
		{26*time.Hour + 3*time.Minute, "1d 2h 3m"},
		{49 * time.Hour, "2d 1h 0m"},
	}
	for _, tc := range cases {
		if got := FormatUptime(tc.d); got != tc.want {
			t.Errorf("FormatUptime(%v) = %q, want %q", tc.d, got, tc.want)
		}
	}
}

func TestFormatWeek(t *testing.T) {
	cases := []struct {
		date string
		want string
	}{
		{"2026-08-27", "Uke 35, 2026"},
		// Jan 1 2027 falls in ISO week 53 of 2026.
		{"2027-01-01", "Uke 53, 2026"},
		{"2026-01-05", "Uke 2, 2026"},
	}
	for _, tc := range cases {
		d, err := time.Parse("2006-01-02", tc.date)
		if err != nil {
			t.Fatal(err)
		}
		if got := FormatWeek(d, "Uke"); got != tc.want {
			t.Errorf("FormatWeek(%s) = %q, want %q", tc.date, got, tc.want)
		}
	}
}

func TestComposeLines(t *testing.T) {
	now := time.Date(2026, 8, 27, 12, 0, 0, 0, time.UTC)
	got := ComposeLines(26*time.Hour+3*time.Minute, now, DefaultLabels())
	want := "Opptid: 1d 2h 3m\nUke 35, 2026"
	if got != want {
		t.Fatalf("ComposeLines = %q, want %q", got, want)
	}
}

func TestLooksLikeClockText(t *testing.T) {
	cases := []struct {
		s    string
		want bool
	}{
		{"12:34", true},
		{"27/08/2026", true},
		{"8:15 AM", true},
		{"torsdag 27", true},
		{"", false},
		{"Volume", false},
		{"Network connected", false},
	}
	for _, tc := range cases {
		if got := LooksLikeClockText(tc.s); got != tc.want {
			t.Errorf("LooksLikeClockText(%q) = %v, want %v", tc.s, got, tc.want)
		}
	}
}

func TestOverlayBoundsDefaultPlacement(t *testing.T) {
	cur := winsys.Point{X: 1700, Y: 1060}
	r := OverlayBounds("Opptid: 5m\nUke 35, 2026", cur, 1920, 1080)

	if r.Width() != overlayMinWidth {
		t.Errorf("width = %d, want minimum %d", r.Width(), overlayMinWidth)
	}
	if r.Height() != overlayMinHeight {
		t.Errorf("height = %d, want minimum %d", r.Height(), overlayMinHeight)
	}
	if r.Bottom >= cur.Y {
		t.Errorf("overlay bottom %d not above the cursor %d", r.Bottom, cur.Y)
	}
}

func TestOverlayBoundsFlipsAtRightEdge(t *testing.T) {
	cur := winsys.Point{X: 1910, Y: 500}
	r := OverlayBounds("x", cur, 1920, 1080)
	if r.Right > 1920 {
		t.Fatalf("overlay right %d runs off a 1920 wide screen", r.Right)
	}
	if r.Right >= cur.X {
		t.Fatalf("overlay not flipped left of the cursor: right=%d cursor=%d", r.Right, cur.X)
	}
}

func TestOverlayBoundsFlipsBelowNearTop(t *testing.T) {
	cur := winsys.Point{X: 500, Y: 10}
	r := OverlayBounds("x", cur, 1920, 1080)
	if r.Top < 0 {
		t.Fatalf("overlay top %d above the screen", r.Top)
	}
	if r.Top <= cur.Y {
		t.Fatalf("overlay not flipped below the cursor: top=%d cursor=%d", r.Top, cur.Y)
	}
}

func TestOverlayBoundsGrowsWithText(t *testing.T) {
	long := "this line is substantially longer than the minimum overlay width allows for"
	r := OverlayBounds(long+"\na\nb\nc", winsys.Point{X: 100, Y: 500}, 1920, 1080)
	if r.Width() <= overlayMinWidth {
		t.Errorf("width = %d, want wider than the minimum for long text", r.Width())
	}
	if r.Height() <= overlayMinHeight {
		t.Errorf("height = %d, want taller than the minimum for four lines", r.Height())
	}
}
