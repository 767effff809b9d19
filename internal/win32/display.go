//go:build windows

// Package win32 binds the user32 display configuration calls.
package win32

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32 = windows.NewLazySystemDLL("user32.dll")

	procEnumDisplayDevicesW      = user32.NewProc("EnumDisplayDevicesW")
	procEnumDisplaySettingsExW   = user32.NewProc("EnumDisplaySettingsExW")
	procChangeDisplaySettingsExW = user32.NewProc("ChangeDisplaySettingsExW")
)

// DISPLAY_DEVICE state flags.
const (
	DisplayDeviceAttachedToDesktop = 0x00000001
	DisplayDevicePrimaryDevice     = 0x00000004
	DisplayDeviceMirroringDriver   = 0x00000008
)

// ChangeDisplaySettingsEx flags.
const (
	CDSUpdateRegistry = 0x00000001
	CDSSetPrimary     = 0x00000010
	CDSNoReset        = 0x10000000
)

const (
	dmPosition          = 0x00000020
	enumCurrentSettings = 0xFFFFFFFF
)

// DisplayDevice mirrors DISPLAY_DEVICEW.
type DisplayDevice struct {
	Cb           uint32
	DeviceName   [32]uint16
	DeviceString [128]uint16
	StateFlags   uint32
	DeviceID     [128]uint16
	DeviceKey    [128]uint16
}

func (d *DisplayDevice) Name() string   { return windows.UTF16ToString(d.DeviceName[:]) }
func (d *DisplayDevice) String() string { return windows.UTF16ToString(d.DeviceString[:]) }

// DevMode mirrors the display variant of DEVMODEW.
type DevMode struct {
	DeviceName       [32]uint16
	SpecVersion      uint16
	DriverVersion    uint16
	Size             uint16
	DriverExtra      uint16
	Fields           uint32
	PositionX        int32
	PositionY        int32
	DisplayOrient    uint32
	DisplayFixedOut  uint32
	Color            int16
	Duplex           int16
	YResolution      int16
	TTOption         int16
	Collate          int16
	FormName         [32]uint16
	LogPixels        uint16
	BitsPerPel       uint32
	PelsWidth        uint32
	PelsHeight       uint32
	DisplayFlags     uint32
	DisplayFrequency uint32
	ICMMethod        uint32
	ICMIntent        uint32
	MediaType        uint32
	DitherType       uint32
	Reserved1        uint32
	Reserved2        uint32
	PanningWidth     uint32
	PanningHeight    uint32
}

// SetPosition moves the mode and marks the position field as valid.
func (dm *DevMode) SetPosition(x, y int32) {
	dm.Fields |= dmPosition
	dm.PositionX = x
	dm.PositionY = y
}

// EnumDisplayDevices returns the adapter-level device at index i.
// ok is false once the index runs past the last device.
func EnumDisplayDevices(i uint32) (dev DisplayDevice, ok bool) {
	dev.Cb = uint32(unsafe.Sizeof(dev))
	r, _, _ := procEnumDisplayDevicesW.Call(0, uintptr(i), uintptr(unsafe.Pointer(&dev)), 0)
	return dev, r != 0
}

// CurrentSettings reads the active mode of the named device.
func CurrentSettings(deviceName string) (DevMode, error) {
	name, err := windows.UTF16PtrFromString(deviceName)
	if err != nil {
		return DevMode{}, fmt.Errorf("invalid device name %q: %w", deviceName, err)
	}

	var dm DevMode
	dm.Size = uint16(unsafe.Sizeof(dm))
	r, _, callErr := procEnumDisplaySettingsExW.Call(
		uintptr(unsafe.Pointer(name)),
		uintptr(enumCurrentSettings),
		uintptr(unsafe.Pointer(&dm)),
		0,
	)
	if r == 0 {
		return DevMode{}, fmt.Errorf("EnumDisplaySettingsEx %s: %w", deviceName, callErr)
	}
	return dm, nil
}

// ChangeSettings stages or applies dm for the named device and returns the
// DISP_CHANGE_* result.
func ChangeSettings(deviceName string, dm *DevMode, flags uint32) (int32, error) {
	name, err := windows.UTF16PtrFromString(deviceName)
	if err != nil {
		return 0, fmt.Errorf("invalid device name %q: %w", deviceName, err)
	}
	r, _, _ := procChangeDisplaySettingsExW.Call(
		uintptr(unsafe.Pointer(name)),
		uintptr(unsafe.Pointer(dm)),
		0,
		uintptr(flags),
		0,
	)
	return int32(r), nil
}

// ApplyStaged commits every change staged with CDSNoReset.
func ApplyStaged() int32 {
	r, _, _ := procChangeDisplaySettingsExW.Call(0, 0, 0, 0, 0)
	return int32(r)
}
