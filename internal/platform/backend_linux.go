//go:build linux

package platform

import (
	"errors"
	"fmt"

	"github.com/1broseidon/primecycle/internal/x11"
	"github.com/BurntSushi/xgb/randr"
)

// X11Backend drives RandR. RandR has no deferred writes, so WriteSettings
// only stages and ApplyStaged issues every CRTC change under one server grab.
type X11Backend struct {
	conn *x11.Connection

	outputs   map[string]x11.Output
	crtcOwner map[randr.Crtc]string
	read      map[randr.Crtc]x11.Crtc

	staged        []x11.Crtc
	stagedPrimary randr.Output
}

var _ Backend = (*X11Backend)(nil)

// Open returns the display backend for this platform.
func Open() (Backend, error) {
	conn, err := x11.NewConnection()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X11: %w", err)
	}
	return NewX11Backend(conn), nil
}

// NewX11Backend wraps an existing X11 connection.
func NewX11Backend(conn *x11.Connection) *X11Backend {
	return &X11Backend{
		conn:      conn,
		outputs:   make(map[string]x11.Output),
		crtcOwner: make(map[randr.Crtc]string),
		read:      make(map[randr.Crtc]x11.Crtc),
	}
}

// AttachConsole is a no-op: X11 clients inherit the terminal.
func AttachConsole() bool { return false }

// Close closes the underlying X11 connection.
func (b *X11Backend) Close() {
	if b != nil && b.conn != nil {
		b.conn.Close()
	}
}

// EnumerateDevices lists outputs in server order.
func (b *X11Backend) EnumerateDevices() ([]Device, error) {
	outputs, err := b.conn.Outputs()
	if err != nil {
		return nil, err
	}

	devices := classifyOutputs(outputs)
	for i, o := range outputs {
		b.outputs[o.Name] = o
		if devices[i].Attached && !devices[i].Mirroring {
			b.crtcOwner[o.Crtc] = o.Name
		}
	}
	return devices, nil
}

// classifyOutputs maps outputs to devices. An output is attached when it is
// connected and driven by a CRTC; one that shares a CRTC with an earlier
// attached output is a clone and reported as mirroring.
func classifyOutputs(outputs []x11.Output) []Device {
	claimed := make(map[randr.Crtc]bool)
	devices := make([]Device, 0, len(outputs))
	for _, o := range outputs {
		attached := o.Connected && o.Crtc != 0
		mirroring := attached && claimed[o.Crtc]
		if attached {
			claimed[o.Crtc] = true
		}
		devices = append(devices, Device{
			ID:        o.Name,
			Label:     o.Name,
			Attached:  attached,
			Mirroring: mirroring,
			Primary:   o.Primary,
		})
	}
	return devices
}

func (b *X11Backend) CurrentSettings(dev Device) (Settings, error) {
	o, ok := b.outputs[dev.ID]
	if !ok {
		return Settings{}, fmt.Errorf("unknown output %s", dev.ID)
	}
	if o.Crtc == 0 {
		return Settings{}, fmt.Errorf("output %s is not driven by a crtc", dev.ID)
	}

	crtc, err := b.conn.CrtcInfo(o.Crtc)
	if err != nil {
		return Settings{}, err
	}
	b.read[crtc.ID] = crtc

	return Settings{
		Position: Point{X: crtc.X, Y: crtc.Y},
		Width:    crtc.Width,
		Height:   crtc.Height,
		native:   crtc,
	}, nil
}

func (b *X11Backend) WriteSettings(dev Device, s Settings, flags WriteFlags) error {
	o, ok := b.outputs[dev.ID]
	if !ok || o.Crtc == 0 {
		return changeResult(OpWrite, dev.ID, ChangeBadParam)
	}
	crtc, ok := s.native.(x11.Crtc)
	if !ok || crtc.ID != o.Crtc {
		return changeResult(OpWrite, dev.ID, ChangeBadParam)
	}

	crtc.X = s.Position.X
	crtc.Y = s.Position.Y
	b.staged = append(b.staged, crtc)
	if flags.SetPrimary {
		b.stagedPrimary = o.ID
	}

	if !flags.Defer {
		return b.ApplyStaged()
	}
	return nil
}

// ApplyStaged commits the staged CRTCs and the primary designation.
func (b *X11Backend) ApplyStaged() error {
	staged, primary := b.staged, b.stagedPrimary
	b.staged, b.stagedPrimary = nil, 0

	changed := crtcChanges(staged, b.read)
	if err := b.conn.Commit(changed, primary); err != nil {
		var cfgErr *x11.ConfigError
		if errors.As(err, &cfgErr) {
			return configChangeError(cfgErr, b.crtcOwner)
		}
		return fmt.Errorf("apply: %w", err)
	}
	return nil
}

// crtcChanges shifts the staged layout so it starts at the root origin,
// since X11 screen coordinates cannot be negative, and keeps only the CRTCs
// whose position differs from what was read.
func crtcChanges(staged []x11.Crtc, read map[randr.Crtc]x11.Crtc) []x11.Crtc {
	points := make([]Point, len(staged))
	for i, crtc := range staged {
		points[i] = Point{X: crtc.X, Y: crtc.Y}
	}
	shift := OriginShift(points)

	var changed []x11.Crtc
	for _, crtc := range staged {
		crtc.X += shift.X
		crtc.Y += shift.Y
		if prev, ok := read[crtc.ID]; ok && prev.X == crtc.X && prev.Y == crtc.Y {
			continue
		}
		changed = append(changed, crtc)
	}
	return changed
}

// configChangeError reports a refused SetCrtcConfig as an apply failure
// naming the output driven by the rejected CRTC.
func configChangeError(cfgErr *x11.ConfigError, owners map[randr.Crtc]string) error {
	device := owners[cfgErr.Crtc]
	if device == "" {
		device = fmt.Sprintf("crtc %d", cfgErr.Crtc)
	}
	return fmt.Errorf("%w: %w", changeResult(OpApply, device, randrChangeCode(cfgErr.Status)), cfgErr)
}

func randrChangeCode(status byte) ChangeCode {
	switch status {
	case randr.SetConfigSuccess:
		return ChangeSuccessful
	case randr.SetConfigInvalidConfigTime, randr.SetConfigInvalidTime:
		return ChangeNotUpdated
	}
	return ChangeFailed
}
