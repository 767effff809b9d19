package platform

import (
	"errors"
	"fmt"
)

// ErrUnsupported is returned by Open on platforms without a display backend.
var ErrUnsupported = errors.New("no display backend for this platform")

// Point is a position in virtual-desktop coordinates. Coordinates can be
// negative (a monitor left of or above the primary).
type Point struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// Add returns p translated by d.
func (p Point) Add(d Point) Point {
	return Point{X: p.X + d.X, Y: p.Y + d.Y}
}

func (p Point) String() string {
	return fmt.Sprintf("%d,%d", p.X, p.Y)
}

// Device describes one entry returned by display enumeration.
type Device struct {
	// ID addresses the device in later service calls (\\.\DISPLAY1, HDMI-1).
	ID        string
	Label     string
	Attached  bool
	Mirroring bool
	Primary   bool
}

// Settings holds the current mode of a device. Only Position is rewritten;
// the rest is carried through so writes never touch resolution, orientation
// or refresh rate.
type Settings struct {
	Position Point
	Width    int
	Height   int

	native any
}

// WithPosition returns a copy of s moved to p.
func (s Settings) WithPosition(p Point) Settings {
	s.Position = p
	return s
}

// WriteFlags controls how WriteSettings stages a change.
type WriteFlags struct {
	SetPrimary bool `yaml:"set_primary,omitempty"`
	Persist    bool `yaml:"persist,omitempty"`
	Defer      bool `yaml:"defer,omitempty"`
}

// Service is the display-configuration facility the rotation runs against.
type Service interface {
	EnumerateDevices() ([]Device, error)
	CurrentSettings(dev Device) (Settings, error)
	WriteSettings(dev Device, s Settings, flags WriteFlags) error
	ApplyStaged() error
}

// Backend is a Service bound to a live OS connection.
type Backend interface {
	Service
	Close()
}
