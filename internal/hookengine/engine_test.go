package hookengine

import (
	"errors"
	"testing"
	"time"

	"github.com/nazgul72/xclock/internal/logging"
	"github.com/nazgul72/xclock/internal/sched"
	"github.com/nazgul72/xclock/internal/tooltip"
	"github.com/nazgul72/xclock/internal/winsys"
)

func testLogger(t *testing.T) *logging.Logger {
	t.Helper()
	log, err := logging.New(&logging.Config{Level: logging.LevelError, Output: "stderr"})
	if err != nil {
		t.Fatal(err)
	}
	return log
}

// newRig builds a simulated desktop with one clock window and an engine
// wired to it. The returned scheduler drives both the engine's deferred
// tasks and the mutator's.
func newRig(t *testing.T, mode tooltip.Mode, opts Options) (*winsys.Sim, *sched.Manual, *Engine, winsys.Handle) {
	t.Helper()

	sys := winsys.NewSim()
	sys.SetUptime(26*time.Hour + 3*time.Minute)
	tray := sys.AddWindow("Shell_TrayWnd", "", winsys.Rect{Left: 0, Top: 1040, Right: 1920, Bottom: 1080})
	notify := sys.AddChild(tray, "TrayNotifyWnd", "", winsys.Rect{Left: 1600, Top: 1040, Right: 1920, Bottom: 1080})
	clock := sys.AddChild(notify, "TrayClockWClass", "", winsys.Rect{Left: 1800, Top: 1040, Right: 1920, Bottom: 1080})

	sc := sched.NewManual()
	log := testLogger(t)
	mut := tooltip.New(sys, log, sc, tooltip.Options{Mode: mode})
	e := New(sys, log, sc, mut, opts)
	return sys, sc, e, clock
}

func TestStartStopLifecycle(t *testing.T) {
	sys, _, e, clock := newRig(t, tooltip.ModeMutate, Options{})

	if e.State() != StateStopped {
		t.Fatalf("initial state = %v, want stopped", e.State())
	}
	if err := e.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if !e.IsRunning() || e.State() != StateRunning {
		t.Fatalf("running=%v state=%v after start", e.IsRunning(), e.State())
	}
	if !sys.Installed() {
		t.Fatal("hooks not installed after start")
	}

	targets := e.Targets()
	if len(targets) != 1 || targets[0].Handle != clock {
		t.Fatalf("targets = %+v, want the clock window", targets)
	}

	e.Stop()
	if e.IsRunning() || e.State() != StateStopped {
		t.Fatalf("running=%v state=%v after stop", e.IsRunning(), e.State())
	}
	if sys.Installed() {
		t.Fatal("hooks still installed after stop")
	}
}

func TestStartWhileRunningFails(t *testing.T) {
	sys, _, e, _ := newRig(t, tooltip.ModeMutate, Options{})

	if err := e.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := e.Start(); !errors.Is(err, ErrAlreadyRunning) {
		t.Fatalf("second Start = %v, want ErrAlreadyRunning", err)
	}
	if got := sys.InstallCount(); got != 1 {
		t.Fatalf("InstallCount = %d, want exactly one install", got)
	}
	e.Stop()
}

func TestStopIsIdempotentAndRestartable(t *testing.T) {
	sys, _, e, _ := newRig(t, tooltip.ModeMutate, Options{})

	// Stop before any start is a no-op.
	e.Stop()
	if e.State() != StateStopped {
		t.Fatalf("state = %v after cold stop", e.State())
	}

	if err := e.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	e.Stop()
	e.Stop()

	if err := e.Start(); err != nil {
		t.Fatalf("restart: %v", err)
	}
	if got := sys.InstallCount(); got != 2 {
		t.Fatalf("InstallCount = %d, want 2 after a restart", got)
	}
	e.Stop()
}

func TestStartStrictWithoutTargets(t *testing.T) {
	sys := winsys.NewSim()
	log := testLogger(t)
	mut := tooltip.New(sys, log, sched.NewManual(), tooltip.Options{})
	e := New(sys, log, nil, mut, Options{StrictTargets: true})

	if err := e.Start(); !errors.Is(err, ErrTargetNotFound) {
		t.Fatalf("Start = %v, want ErrTargetNotFound", err)
	}
	if e.State() != StateStopped || sys.Installed() {
		t.Fatal("failed strict start left the engine partially started")
	}
}

func TestStartPermissiveWithoutTargets(t *testing.T) {
	sys := winsys.NewSim()
	log := testLogger(t)
	mut := tooltip.New(sys, log, sched.NewManual(), tooltip.Options{})
	e := New(sys, log, nil, mut, Options{})

	if err := e.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if len(e.Targets()) != 0 {
		t.Fatalf("targets = %+v, want none", e.Targets())
	}
	if !e.IsRunning() {
		t.Fatal("engine not running in degraded mode")
	}
	e.Stop()
}

func TestStartHookInstallFailure(t *testing.T) {
	sys, _, e, _ := newRig(t, tooltip.ModeMutate, Options{})
	boom := errors.New("access denied")
	sys.FailInstall(boom)

	err := e.Start()
	var hookErr *HookInstallError
	if !errors.As(err, &hookErr) {
		t.Fatalf("Start = %v, want HookInstallError", err)
	}
	if !errors.Is(err, boom) {
		t.Fatalf("Start = %v, want wrapped %v", err, boom)
	}
	if e.State() != StateStopped || e.IsRunning() {
		t.Fatal("failed start did not land back in stopped")
	}

	// The failure was transient; a retry succeeds.
	if err := e.Start(); err != nil {
		t.Fatalf("retry: %v", err)
	}
	e.Stop()
}

func TestStartClassRegistrationFailure(t *testing.T) {
	sys, _, e, _ := newRig(t, tooltip.ModeOverlay, Options{})
	sys.FailRegister(errors.New("class exists"))

	err := e.Start()
	var regErr *ClassRegistrationError
	if !errors.As(err, &regErr) {
		t.Fatalf("Start = %v, want ClassRegistrationError", err)
	}
	if e.State() != StateStopped || sys.Installed() {
		t.Fatal("failed start left hooks installed")
	}
}

func TestEveryEventForwarded(t *testing.T) {
	sys, _, e, clock := newRig(t, tooltip.ModeMutate, Options{})
	if err := e.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}

	sys.EmitMouseMove(winsys.Point{X: 1850, Y: 1060})
	sys.EmitMouseDown()
	sys.EmitWindowCreated(clock)
	if got := sys.Forwarded(); got != 3 {
		t.Fatalf("Forwarded = %d, want 3: matched events must still pass down the chain", got)
	}

	// Events off the targets forward too.
	sys.EmitMouseMove(winsys.Point{X: 10, Y: 10})
	if got := sys.Forwarded(); got != 4 {
		t.Fatalf("Forwarded = %d, want 4", got)
	}
	e.Stop()
}

func TestSetDelays(t *testing.T) {
	_, _, e, _ := newRig(t, tooltip.ModeMutate, Options{})

	e.SetDelays(250*time.Millisecond, 75*time.Millisecond)
	if got := e.settleDelay(); got != 250*time.Millisecond {
		t.Fatalf("settleDelay = %v", got)
	}
	if got := e.hoverDebounce(); got != 75*time.Millisecond {
		t.Fatalf("hoverDebounce = %v", got)
	}

	// Non-positive values leave the settings untouched.
	e.SetDelays(0, -time.Second)
	if e.settleDelay() != 250*time.Millisecond || e.hoverDebounce() != 75*time.Millisecond {
		t.Fatal("non-positive delays overwrote the settings")
	}
}

func TestStateString(t *testing.T) {
	want := map[State]string{
		StateStopped:  "stopped",
		StateStarting: "starting",
		StateRunning:  "running",
		StateStopping: "stopping",
	}
	for s, name := range want {
		if got := s.String(); got != name {
			t.Errorf("%d.String() = %q, want %q", s, got, name)
		}
	}
}
