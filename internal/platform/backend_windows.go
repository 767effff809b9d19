//go:build windows

package platform

import (
	"fmt"

	"github.com/1broseidon/primecycle/internal/win32"
)

// Win32Backend drives ChangeDisplaySettingsEx.
type Win32Backend struct{}

var _ Backend = (*Win32Backend)(nil)

// Open returns the display backend for this platform.
func Open() (Backend, error) {
	return &Win32Backend{}, nil
}

// AttachConsole attaches to the invoking terminal, if any.
func AttachConsole() bool {
	return win32.AttachParentConsole()
}

func (b *Win32Backend) Close() {}

// EnumerateDevices lists adapter devices in EnumDisplayDevices order.
func (b *Win32Backend) EnumerateDevices() ([]Device, error) {
	var devices []Device
	for i := uint32(0); ; i++ {
		dd, ok := win32.EnumDisplayDevices(i)
		if !ok {
			break
		}
		devices = append(devices, Device{
			ID:        dd.Name(),
			Label:     dd.String(),
			Attached:  dd.StateFlags&win32.DisplayDeviceAttachedToDesktop != 0,
			Mirroring: dd.StateFlags&win32.DisplayDeviceMirroringDriver != 0,
			Primary:   dd.StateFlags&win32.DisplayDevicePrimaryDevice != 0,
		})
	}
	return devices, nil
}

func (b *Win32Backend) CurrentSettings(dev Device) (Settings, error) {
	dm, err := win32.CurrentSettings(dev.ID)
	if err != nil {
		return Settings{}, err
	}
	return Settings{
		Position: Point{X: int(dm.PositionX), Y: int(dm.PositionY)},
		Width:    int(dm.PelsWidth),
		Height:   int(dm.PelsHeight),
		native:   dm,
	}, nil
}

func (b *Win32Backend) WriteSettings(dev Device, s Settings, flags WriteFlags) error {
	dm, ok := s.native.(win32.DevMode)
	if !ok {
		return fmt.Errorf("write %s: settings were not read from this backend", dev.ID)
	}
	dm.SetPosition(int32(s.Position.X), int32(s.Position.Y))

	var cds uint32
	if flags.SetPrimary {
		cds |= win32.CDSSetPrimary
	}
	if flags.Persist {
		cds |= win32.CDSUpdateRegistry
	}
	if flags.Defer {
		cds |= win32.CDSNoReset
	}

	code, err := win32.ChangeSettings(dev.ID, &dm, cds)
	if err != nil {
		return err
	}
	return changeResult(OpWrite, dev.ID, ChangeCode(code))
}

func (b *Win32Backend) ApplyStaged() error {
	return changeResult(OpApply, "", ChangeCode(win32.ApplyStaged()))
}
