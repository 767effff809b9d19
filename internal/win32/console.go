//go:build windows

package win32

import (
	"os"

	"golang.org/x/sys/windows"
)

var (
	kernel32          = windows.NewLazySystemDLL("kernel32.dll")
	procAttachConsole = kernel32.NewProc("AttachConsole")
)

const attachParentProcess = ^uint32(0)

// AttachParentConsole attaches to the console of the invoking process when
// this process has none (GUI subsystem build launched from a terminal) and
// points os.Stdout and os.Stderr at it. It reports whether a console was
// attached.
func AttachParentConsole() bool {
	if h, err := windows.GetStdHandle(windows.STD_OUTPUT_HANDLE); err == nil && h != 0 && h != windows.InvalidHandle {
		return false
	}

	r, _, _ := procAttachConsole.Call(uintptr(attachParentProcess))
	if r == 0 {
		return false
	}

	name, err := windows.UTF16PtrFromString("CONOUT$")
	if err != nil {
		return false
	}
	h, err := windows.CreateFile(name,
		windows.GENERIC_READ|windows.GENERIC_WRITE,
		windows.FILE_SHARE_WRITE,
		nil,
		windows.OPEN_EXISTING,
		0,
		0,
	)
	if err != nil {
		return false
	}

	_ = windows.SetStdHandle(windows.STD_OUTPUT_HANDLE, h)
	_ = windows.SetStdHandle(windows.STD_ERROR_HANDLE, h)
	out := os.NewFile(uintptr(h), "CONOUT$")
	os.Stdout = out
	os.Stderr = out
	return true
}
