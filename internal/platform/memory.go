package platform

import (
	"fmt"
	"sync"
)

// Call is one recorded service invocation.
type Call struct {
	Op       string     `yaml:"op"`
	Device   string     `yaml:"device,omitempty"`
	Position *Point     `yaml:"position,omitempty"`
	Flags    WriteFlags `yaml:"flags,omitempty"`
}

// MemoryDevice seeds a MemoryBackend.
type MemoryDevice struct {
	Device   Device
	Settings Settings
}

// MemoryBackend is an in-memory Service. Writes are staged until
// ApplyStaged, mirroring the deferred-write behaviour of real backends.
type MemoryBackend struct {
	mu sync.Mutex

	devices []Device
	current map[string]Settings
	staged  map[string]Settings
	primary string
	// primaryApplied is set once an apply designates a primary. Until then
	// each device reports its seeded flag, which may name several primaries.
	primaryApplied bool
	// stagedPrimary is applied together with staged.
	stagedPrimary string

	// Failure injection.
	ReadErr    map[string]error
	WriteCodes map[string]ChangeCode
	ApplyCode  ChangeCode
	EnumErr    error

	calls []Call
}

var _ Backend = (*MemoryBackend)(nil)

// NewMemoryBackend creates a backend that enumerates devs in order.
func NewMemoryBackend(devs ...MemoryDevice) *MemoryBackend {
	m := &MemoryBackend{
		current:    make(map[string]Settings),
		staged:     make(map[string]Settings),
		ReadErr:    make(map[string]error),
		WriteCodes: make(map[string]ChangeCode),
	}
	for _, d := range devs {
		m.devices = append(m.devices, d.Device)
		m.current[d.Device.ID] = d.Settings
		if d.Device.Primary && m.primary == "" {
			m.primary = d.Device.ID
		}
	}
	return m
}

func (m *MemoryBackend) EnumerateDevices() ([]Device, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, Call{Op: "enumerate"})
	if m.EnumErr != nil {
		return nil, m.EnumErr
	}

	out := make([]Device, len(m.devices))
	for i, d := range m.devices {
		if m.primaryApplied {
			d.Primary = d.ID == m.primary
		}
		out[i] = d
	}
	return out, nil
}

func (m *MemoryBackend) CurrentSettings(dev Device) (Settings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, Call{Op: "read", Device: dev.ID})
	if err := m.ReadErr[dev.ID]; err != nil {
		return Settings{}, err
	}
	s, ok := m.current[dev.ID]
	if !ok {
		return Settings{}, fmt.Errorf("unknown device %s", dev.ID)
	}
	return s, nil
}

func (m *MemoryBackend) WriteSettings(dev Device, s Settings, flags WriteFlags) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	pos := s.Position
	m.calls = append(m.calls, Call{Op: "write", Device: dev.ID, Position: &pos, Flags: flags})
	if code, ok := m.WriteCodes[dev.ID]; ok && code != ChangeSuccessful {
		return changeResult(OpWrite, dev.ID, code)
	}
	if _, ok := m.current[dev.ID]; !ok {
		return changeResult(OpWrite, dev.ID, ChangeBadParam)
	}

	m.staged[dev.ID] = s
	if flags.SetPrimary {
		m.stagedPrimary = dev.ID
	}
	if !flags.Defer {
		m.applyLocked()
	}
	return nil
}

func (m *MemoryBackend) ApplyStaged() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, Call{Op: "apply"})
	if m.ApplyCode != ChangeSuccessful {
		return changeResult(OpApply, "", m.ApplyCode)
	}
	m.applyLocked()
	return nil
}

func (m *MemoryBackend) applyLocked() {
	for id, s := range m.staged {
		m.current[id] = s
	}
	if m.stagedPrimary != "" {
		m.primary = m.stagedPrimary
		m.primaryApplied = true
	}
	m.staged = make(map[string]Settings)
	m.stagedPrimary = ""
}

// Close is a no-op.
func (m *MemoryBackend) Close() {}

// Calls returns the recorded invocations in order.
func (m *MemoryBackend) Calls() []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Call(nil), m.calls...)
}

// Writes returns only the recorded write calls.
func (m *MemoryBackend) Writes() []Call {
	var out []Call
	for _, c := range m.Calls() {
		if c.Op == "write" {
			out = append(out, c)
		}
	}
	return out
}

// Applied reports whether ApplyStaged was called.
func (m *MemoryBackend) Applied() bool {
	for _, c := range m.Calls() {
		if c.Op == "apply" {
			return true
		}
	}
	return false
}

// Position returns the committed position of a device.
func (m *MemoryBackend) Position(id string) Point {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current[id].Position
}

// Primary returns the committed primary device ID.
func (m *MemoryBackend) Primary() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.primary
}

// Pending returns the number of staged but unapplied device changes.
func (m *MemoryBackend) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.staged)
}
