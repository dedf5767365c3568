package winsys

import "testing"

func TestRectContainsInclusiveEdges(t *testing.T) {
	r := Rect{Left: 100, Top: 100, Right: 200, Bottom: 130}

	cases := []struct {
		name string
		p    Point
		want bool
	}{
		{"interior", Point{X: 150, Y: 115}, true},
		{"left edge", Point{X: 100, Y: 115}, true},
		{"right edge", Point{X: 200, Y: 115}, true},
		{"top edge", Point{X: 150, Y: 100}, true},
		{"bottom edge", Point{X: 150, Y: 130}, true},
		{"corner", Point{X: 200, Y: 130}, true},
		{"left of rect", Point{X: 99, Y: 115}, false},
		{"right of rect", Point{X: 201, Y: 115}, false},
		{"above", Point{X: 150, Y: 99}, false},
		{"below", Point{X: 150, Y: 131}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := r.Contains(tc.p); got != tc.want {
				t.Errorf("Contains(%+v) = %v, want %v", tc.p, got, tc.want)
			}
		})
	}
}

func TestRectDimensions(t *testing.T) {
	r := Rect{Left: 10, Top: 20, Right: 110, Bottom: 50}
	if got := r.Width(); got != 100 {
		t.Errorf("Width() = %d, want 100", got)
	}
	if got := r.Height(); got != 30 {
		t.Errorf("Height() = %d, want 30", got)
	}
	if r.IsEmpty() {
		t.Error("IsEmpty() = true for a real rect")
	}
	if !(Rect{}).IsEmpty() {
		t.Error("IsEmpty() = false for the zero rect")
	}
	if !(Rect{Left: 5, Top: 5, Right: 5, Bottom: 10}).IsEmpty() {
		t.Error("IsEmpty() = false for a zero-width rect")
	}
}

func TestSimWindowLifecycle(t *testing.T) {
	s := NewSim()

	parent := s.AddWindow("Shell_TrayWnd", "", Rect{Right: 1920, Top: 1040, Bottom: 1080})
	child := s.AddChild(parent, "TrayNotifyWnd", "", Rect{})

	if got := s.FindWindow("Shell_TrayWnd"); got != parent {
		t.Fatalf("FindWindow = %v, want %v", got, parent)
	}
	if got := s.FindChild(parent, "TrayNotifyWnd"); got != child {
		t.Fatalf("FindChild = %v, want %v", got, child)
	}
	if !s.IsWindow(child) {
		t.Fatal("IsWindow = false for a live window")
	}

	s.RemoveWindow(child)
	if s.IsWindow(child) {
		t.Fatal("IsWindow = true for a removed window")
	}
	if got := s.ClassName(child); got != "" {
		t.Fatalf("ClassName of stale handle = %q, want empty", got)
	}
	if _, ok := s.WindowRect(child); ok {
		t.Fatal("WindowRect ok for stale handle")
	}
}

func TestSimForwardsEveryEvent(t *testing.T) {
	s := NewSim()

	// Events emitted with no hooks installed are still forwarded.
	s.EmitMouseMove(Point{X: 1, Y: 1})
	if got := s.Forwarded(); got != 1 {
		t.Fatalf("Forwarded() = %d, want 1", got)
	}

	moves := 0
	tok, err := s.InstallHooks(Callbacks{MouseMoved: func(Point) { moves++ }})
	if err != nil {
		t.Fatalf("InstallHooks: %v", err)
	}

	s.EmitMouseMove(Point{X: 2, Y: 2})
	s.EmitMouseDown()
	s.EmitWindowCreated(1)
	if moves != 1 {
		t.Fatalf("moves = %d, want 1", moves)
	}
	if got := s.Forwarded(); got != 4 {
		t.Fatalf("Forwarded() = %d, want 4", got)
	}

	s.UninstallHooks(tok)
	s.EmitMouseMove(Point{X: 3, Y: 3})
	if moves != 1 {
		t.Fatal("callback ran after uninstall")
	}
	if got := s.Forwarded(); got != 5 {
		t.Fatalf("Forwarded() = %d, want 5", got)
	}
}

func TestSimInstallFailure(t *testing.T) {
	s := NewSim()
	s.FailInstall(ErrNotSupported)

	if _, err := s.InstallHooks(Callbacks{}); err == nil {
		t.Fatal("InstallHooks succeeded, want injected failure")
	}
	if s.Installed() {
		t.Fatal("Installed() = true after failed install")
	}

	// The failure is one-shot.
	if _, err := s.InstallHooks(Callbacks{}); err != nil {
		t.Fatalf("second InstallHooks: %v", err)
	}
	if got := s.InstallCount(); got != 1 {
		t.Fatalf("InstallCount() = %d, want 1", got)
	}
}

func TestSimOverlayNeedsRegisteredClass(t *testing.T) {
	s := NewSim()

	if _, err := s.CreateOverlay("x", Rect{Right: 10, Bottom: 10}); err == nil {
		t.Fatal("CreateOverlay succeeded without class registration")
	}

	if err := s.RegisterOverlayClass(); err != nil {
		t.Fatalf("RegisterOverlayClass: %v", err)
	}
	h, err := s.CreateOverlay("x", Rect{Right: 10, Bottom: 10})
	if err != nil {
		t.Fatalf("CreateOverlay: %v", err)
	}
	if got := s.ClassName(h); got != OverlayClassName {
		t.Fatalf("overlay class = %q, want %q", got, OverlayClassName)
	}
}

func TestSimPumpQuits(t *testing.T) {
	s := NewSim()
	if !s.PumpOne() {
		t.Fatal("PumpOne() = false before PostQuit")
	}
	s.PostQuit()
	if s.PumpOne() {
		t.Fatal("PumpOne() = true after PostQuit")
	}
}
