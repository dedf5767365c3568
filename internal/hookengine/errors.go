package hookengine

import (
	"errors"
	"fmt"
)

// ErrAlreadyRunning is returned when Start is called while the engine is
// not stopped.
var ErrAlreadyRunning = errors.New("hook engine already running")

// ErrTargetNotFound is returned by Start in strict mode when no clock
// window could be discovered.
var ErrTargetNotFound = errors.New("no clock windows found")

// HookInstallError reports a failed system hook installation. It wraps the
// native error code; the attempt is not retried.
type HookInstallError struct {
	Err error
}

func (e *HookInstallError) Error() string {
	return fmt.Sprintf("hook install failed: %v", e.Err)
}

func (e *HookInstallError) Unwrap() error { return e.Err }

// ClassRegistrationError reports a failed overlay window class
// registration during start.
type ClassRegistrationError struct {
	Err error
}

func (e *ClassRegistrationError) Error() string {
	return fmt.Sprintf("window class registration failed: %v", e.Err)
}

func (e *ClassRegistrationError) Unwrap() error { return e.Err }
