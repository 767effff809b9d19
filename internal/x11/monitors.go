package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"
)

// Output is a RandR output as seen at enumeration time.
type Output struct {
	ID        randr.Output
	Name      string
	Crtc      randr.Crtc
	Connected bool
	Primary   bool
}

// Crtc is the scanout configuration driving one or more outputs.
type Crtc struct {
	ID       randr.Crtc
	X        int
	Y        int
	Width    int
	Height   int
	Mode     randr.Mode
	Rotation uint16
	Outputs  []randr.Output
}

// ConfigError reports a SetCrtcConfig request the server refused.
type ConfigError struct {
	Crtc   randr.Crtc
	Status byte
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("SetCrtcConfig crtc %d: %s", e.Crtc, configStatusName(e.Status))
}

func configStatusName(status byte) string {
	switch status {
	case randr.SetConfigSuccess:
		return "success"
	case randr.SetConfigInvalidConfigTime:
		return "invalid config time"
	case randr.SetConfigInvalidTime:
		return "invalid time"
	case randr.SetConfigFailed:
		return "failed"
	}
	return fmt.Sprintf("status %d", status)
}

// Outputs lists RandR outputs in server order.
func (c *Connection) Outputs() ([]Output, error) {
	conn := c.XUtil.Conn()

	resources, err := randr.GetScreenResourcesCurrent(conn, c.Root).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to get screen resources: %w", err)
	}
	c.configTimestamp = resources.ConfigTimestamp

	primary, err := randr.GetOutputPrimary(conn, c.Root).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to get primary output: %w", err)
	}

	outputs := make([]Output, 0, len(resources.Outputs))
	for _, id := range resources.Outputs {
		info, err := randr.GetOutputInfo(conn, id, resources.ConfigTimestamp).Reply()
		if err != nil {
			return nil, fmt.Errorf("failed to get output %d info: %w", id, err)
		}
		outputs = append(outputs, Output{
			ID:        id,
			Name:      string(info.Name),
			Crtc:      info.Crtc,
			Connected: info.Connection == randr.ConnectionConnected,
			Primary:   id == primary.Output,
		})
	}
	return outputs, nil
}

// CrtcInfo returns the current configuration of a CRTC.
func (c *Connection) CrtcInfo(id randr.Crtc) (Crtc, error) {
	info, err := randr.GetCrtcInfo(c.XUtil.Conn(), id, c.configTimestamp).Reply()
	if err != nil {
		return Crtc{}, fmt.Errorf("failed to get crtc %d info: %w", id, err)
	}
	if info.Status != randr.SetConfigSuccess {
		return Crtc{}, &ConfigError{Crtc: id, Status: info.Status}
	}
	return Crtc{
		ID:       id,
		X:        int(info.X),
		Y:        int(info.Y),
		Width:    int(info.Width),
		Height:   int(info.Height),
		Mode:     info.Mode,
		Rotation: info.Rotation,
		Outputs:  info.Outputs,
	}, nil
}

// Commit repositions crtcs and designates primary while holding a server
// grab, so clients observe a single layout change.
func (c *Connection) Commit(crtcs []Crtc, primary randr.Output) error {
	conn := c.XUtil.Conn()

	if err := xproto.GrabServerChecked(conn).Check(); err != nil {
		return fmt.Errorf("failed to grab server: %w", err)
	}
	defer xproto.UngrabServer(conn)

	for _, crtc := range crtcs {
		reply, err := randr.SetCrtcConfig(conn, crtc.ID,
			xproto.TimeCurrentTime, c.configTimestamp,
			int16(crtc.X), int16(crtc.Y),
			crtc.Mode, crtc.Rotation, crtc.Outputs,
		).Reply()
		if err != nil {
			return fmt.Errorf("SetCrtcConfig crtc %d: %w", crtc.ID, err)
		}
		if reply.Status != randr.SetConfigSuccess {
			return &ConfigError{Crtc: crtc.ID, Status: reply.Status}
		}
	}

	if primary != 0 {
		if err := randr.SetOutputPrimaryChecked(conn, c.Root, primary).Check(); err != nil {
			return fmt.Errorf("failed to set primary output: %w", err)
		}
	}
	return nil
}
