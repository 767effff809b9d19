// Package topology models the set of monitors attached to the desktop and
// selects which one becomes primary next.
package topology

import (
	"errors"
	"fmt"

	"github.com/1broseidon/primecycle/internal/platform"
)

var (
	// ErrNoDisplays means enumeration produced no usable monitor.
	ErrNoDisplays = errors.New("no attached displays found")

	// ErrIndeterminatePrimary means the snapshot does not have exactly one
	// primary monitor.
	ErrIndeterminatePrimary = errors.New("could not identify current primary display")
)

// Monitor is one physical display in a snapshot.
type Monitor struct {
	Device   platform.Device
	Settings platform.Settings
}

// ID returns the identity used to address the monitor.
func (m Monitor) ID() string { return m.Device.ID }

// Position returns the top-left corner at read time.
func (m Monitor) Position() platform.Point { return m.Settings.Position }

// IsPrimary reports the primary flag at read time.
func (m Monitor) IsPrimary() bool { return m.Device.Primary }

func (m Monitor) String() string {
	primary := ""
	if m.IsPrimary() {
		primary = " [primary]"
	}
	return fmt.Sprintf("%s %dx%d@%s%s", m.ID(), m.Settings.Width, m.Settings.Height, m.Position(), primary)
}

// Topology is an ordered snapshot of monitors, in enumeration order.
type Topology struct {
	Monitors []Monitor
	// Skipped lists attached devices whose settings could not be read.
	Skipped []string
}

// Len returns the number of monitors.
func (t Topology) Len() int { return len(t.Monitors) }

// PrimaryIndex returns the index of the single primary monitor.
func (t Topology) PrimaryIndex() (int, error) {
	if len(t.Monitors) == 0 {
		return -1, ErrNoDisplays
	}

	idx := -1
	for i, m := range t.Monitors {
		if !m.IsPrimary() {
			continue
		}
		if idx >= 0 {
			return -1, fmt.Errorf("%w: both %s and %s are primary",
				ErrIndeterminatePrimary, t.Monitors[idx].ID(), m.ID())
		}
		idx = i
	}
	if idx < 0 {
		return -1, ErrIndeterminatePrimary
	}
	return idx, nil
}

// Translation is a constant offset applied to every monitor position.
type Translation platform.Point

// RebaseTo returns the translation that moves target to the origin.
func RebaseTo(target Monitor) Translation {
	p := target.Position()
	return Translation{X: -p.X, Y: -p.Y}
}

// Apply translates p.
func (t Translation) Apply(p platform.Point) platform.Point {
	return p.Add(platform.Point(t))
}

func (t Translation) String() string {
	return platform.Point(t).String()
}
