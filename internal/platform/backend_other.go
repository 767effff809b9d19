//go:build !linux && !windows

package platform

// Open returns the display backend for this platform.
func Open() (Backend, error) {
	return nil, ErrUnsupported
}

// AttachConsole is a no-op on this platform.
func AttachConsole() bool { return false }
