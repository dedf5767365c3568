//go:build !windows

package winsys

// New returns ErrNotSupported; the hook engine only runs on Windows.
func New() (System, error) {
	return nil, ErrNotSupported
}
