package sched

import (
	"testing"
	"time"
)

func TestManualFireRunsPendingTasks(t *testing.T) {
	m := NewManual()

	ran := 0
	m.AfterFunc(10*time.Millisecond, func() { ran++ })
	m.AfterFunc(20*time.Millisecond, func() { ran++ })

	if got := m.Pending(); got != 2 {
		t.Fatalf("Pending() = %d, want 2", got)
	}
	if got := m.LastDelay(); got != 20*time.Millisecond {
		t.Fatalf("LastDelay() = %v, want 20ms", got)
	}

	m.Fire()
	if ran != 2 {
		t.Fatalf("ran = %d, want 2", ran)
	}
	if got := m.Pending(); got != 0 {
		t.Fatalf("Pending() after fire = %d, want 0", got)
	}
}

func TestManualStopPreventsRun(t *testing.T) {
	m := NewManual()

	ran := false
	task := m.AfterFunc(time.Second, func() { ran = true })

	if !task.Stop() {
		t.Fatal("Stop() = false, want true for a pending task")
	}
	if task.Stop() {
		t.Fatal("second Stop() = true, want false")
	}

	m.Fire()
	if ran {
		t.Fatal("stopped task still ran")
	}
}

func TestManualStopAfterFire(t *testing.T) {
	m := NewManual()
	task := m.AfterFunc(time.Second, func() {})
	m.Fire()
	if task.Stop() {
		t.Fatal("Stop() = true after the task already ran")
	}
}

func TestManualTasksScheduledDuringFireWait(t *testing.T) {
	m := NewManual()

	nested := false
	m.AfterFunc(time.Second, func() {
		m.AfterFunc(time.Second, func() { nested = true })
	})

	m.Fire()
	if nested {
		t.Fatal("nested task ran in the same Fire batch")
	}
	if got := m.Pending(); got != 1 {
		t.Fatalf("Pending() = %d, want 1", got)
	}

	m.Fire()
	if !nested {
		t.Fatal("nested task never ran")
	}
}

func TestTimersAfterFunc(t *testing.T) {
	done := make(chan struct{})
	Timers{}.AfterFunc(time.Millisecond, func() { close(done) })

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("timer task never fired")
	}
}

func TestTimersStop(t *testing.T) {
	task := Timers{}.AfterFunc(time.Hour, func() { t.Error("cancelled task ran") })
	if !task.Stop() {
		t.Fatal("Stop() = false for a pending timer")
	}
}
