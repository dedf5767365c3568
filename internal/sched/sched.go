// Package sched provides a small cancellable deferred-task abstraction.
//
// Hook callbacks run on OS threads that must never sleep, so every delayed
// action (tooltip settle delay, hover debounce, overlay auto-hide) is handed
// to a Scheduler instead. Production code uses the timer-backed scheduler;
// tests use Manual to fire tasks without real sleeps.
package sched

import (
	"sync"
	"time"
)

// Task is a scheduled function that has not necessarily run yet.
type Task interface {
	// Stop cancels the task. It reports whether the cancellation
	// prevented the function from running.
	Stop() bool
}

// Scheduler runs a function once after a delay, off the caller's thread.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Task
}

// Timers is the production Scheduler, backed by time.AfterFunc.
type Timers struct{}

type timerTask struct {
	t *time.Timer
}

func (t timerTask) Stop() bool { return t.t.Stop() }

// AfterFunc schedules fn on its own goroutine after d.
func (Timers) AfterFunc(d time.Duration, fn func()) Task {
	return timerTask{t: time.AfterFunc(d, fn)}
}

// Manual is a Scheduler for tests. Scheduled tasks accumulate until the test
// fires them explicitly; no real time passes.
type Manual struct {
	mu    sync.Mutex
	tasks []*manualTask
}

type manualTask struct {
	m       *Manual
	delay   time.Duration
	fn      func()
	stopped bool
	ran     bool
}

func (t *manualTask) Stop() bool {
	t.m.mu.Lock()
	defer t.m.mu.Unlock()
	if t.ran || t.stopped {
		return false
	}
	t.stopped = true
	return true
}

// NewManual returns an empty manual scheduler.
func NewManual() *Manual {
	return &Manual{}
}

// AfterFunc records fn without running it.
func (m *Manual) AfterFunc(d time.Duration, fn func()) Task {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := &manualTask{m: m, delay: d, fn: fn}
	m.tasks = append(m.tasks, t)
	return t
}

// Pending returns the number of tasks that have neither run nor been stopped.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, t := range m.tasks {
		if !t.ran && !t.stopped {
			n++
		}
	}
	return n
}

// LastDelay returns the delay of the most recently scheduled task.
func (m *Manual) LastDelay() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.tasks) == 0 {
		return 0
	}
	return m.tasks[len(m.tasks)-1].delay
}

// Fire runs all currently pending tasks, in scheduling order. Tasks scheduled
// by a fired task are left pending for a later Fire call.
func (m *Manual) Fire() {
	m.mu.Lock()
	batch := make([]*manualTask, 0, len(m.tasks))
	for _, t := range m.tasks {
		if !t.ran && !t.stopped {
			t.ran = true
			batch = append(batch, t)
		}
	}
	m.mu.Unlock()

	for _, t := range batch {
		t.fn()
	}
}
