package platform

import "fmt"

// ChangeCode is the status reported by a display configuration write. The
// values follow the Win32 DISP_CHANGE_* codes; the X11 backend maps RandR
// SetConfig statuses onto the same set.
type ChangeCode int

const (
	ChangeSuccessful  ChangeCode = 0
	ChangeRestart     ChangeCode = 1
	ChangeFailed      ChangeCode = -1
	ChangeBadMode     ChangeCode = -2
	ChangeNotUpdated  ChangeCode = -3
	ChangeBadFlags    ChangeCode = -4
	ChangeBadParam    ChangeCode = -5
	ChangeBadDualView ChangeCode = -6
)

func (c ChangeCode) String() string {
	switch c {
	case ChangeSuccessful:
		return "successful"
	case ChangeRestart:
		return "restart required"
	case ChangeFailed:
		return "driver failed the mode"
	case ChangeBadMode:
		return "mode not supported"
	case ChangeNotUpdated:
		return "unable to write settings to the registry"
	case ChangeBadFlags:
		return "invalid flags"
	case ChangeBadParam:
		return "invalid parameter"
	case ChangeBadDualView:
		return "DualView capable system"
	}
	return "unknown"
}

// Op names the service call that produced a ChangeError.
type Op string

const (
	OpWrite Op = "write"
	OpApply Op = "apply"
)

// ChangeError reports a non-successful write or apply.
type ChangeError struct {
	Op     Op
	Device string // empty for apply
	Code   ChangeCode
}

func (e *ChangeError) Error() string {
	if e.Device == "" {
		return fmt.Sprintf("%s failed with code %d (%s)", e.Op, int(e.Code), e.Code)
	}
	return fmt.Sprintf("%s %s failed with code %d (%s)", e.Op, e.Device, int(e.Code), e.Code)
}

// Restart is not fatal on Win32 but the change is not live until reboot,
// so it is reported as a failure like every other non-zero code.
func changeResult(op Op, device string, code ChangeCode) error {
	if code == ChangeSuccessful {
		return nil
	}
	return &ChangeError{Op: op, Device: device, Code: code}
}
