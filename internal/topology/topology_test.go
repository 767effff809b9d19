package topology

import (
	"errors"
	"fmt"
	"testing"

	"github.com/1broseidon/primecycle/internal/platform"
)

func monitor(id string, x, y int, primary bool) Monitor {
	return Monitor{
		Device:   platform.Device{ID: id, Attached: true, Primary: primary},
		Settings: platform.Settings{Position: platform.Point{X: x, Y: y}, Width: 1920, Height: 1080},
	}
}

func TestNext_CircularSuccessor(t *testing.T) {
	for n := 2; n <= 5; n++ {
		for p := 0; p < n; p++ {
			t.Run(fmt.Sprintf("n=%d p=%d", n, p), func(t *testing.T) {
				var top Topology
				for i := 0; i < n; i++ {
					top.Monitors = append(top.Monitors, monitor(fmt.Sprintf("D%d", i), i*1920, 0, i == p))
				}

				sel, err := Next(top, OrderEnumeration)
				if err != nil {
					t.Fatalf("Next() error: %v", err)
				}
				if want := (p + 1) % n; sel.Target != want {
					t.Fatalf("Next().Target = %d, want %d", sel.Target, want)
				}
				if sel.Current != p {
					t.Fatalf("Next().Current = %d, want %d", sel.Current, p)
				}
			})
		}
	}
}

func TestNext_WrapsToFirst(t *testing.T) {
	top := Topology{Monitors: []Monitor{
		monitor("A", 0, 0, false),
		monitor("B", 1920, 0, true),
	}}

	sel, err := Next(top, OrderEnumeration)
	if err != nil {
		t.Fatalf("Next() error: %v", err)
	}
	if sel.Target != 0 {
		t.Fatalf("Next().Target = %d, want 0", sel.Target)
	}
}

func TestNext_SingleMonitorIsNoop(t *testing.T) {
	top := Topology{Monitors: []Monitor{monitor("A", 0, 0, true)}}

	sel, err := Next(top, OrderEnumeration)
	if err != nil {
		t.Fatalf("Next() error: %v", err)
	}
	if !sel.Noop() {
		t.Fatalf("Next() = %+v, want no-op", sel)
	}
}

func TestNext_IndeterminatePrimary(t *testing.T) {
	tests := []struct {
		name string
		top  Topology
	}{
		{"none", Topology{Monitors: []Monitor{monitor("A", 0, 0, false), monitor("B", 1920, 0, false)}}},
		{"two", Topology{Monitors: []Monitor{monitor("A", 0, 0, true), monitor("B", 1920, 0, true)}}},
		{"single without primary", Topology{Monitors: []Monitor{monitor("A", 0, 0, false)}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Next(tt.top, OrderEnumeration)
			if !errors.Is(err, ErrIndeterminatePrimary) {
				t.Fatalf("Next() error = %v, want ErrIndeterminatePrimary", err)
			}
		})
	}
}

func TestNext_EmptyTopology(t *testing.T) {
	_, err := Next(Topology{}, OrderEnumeration)
	if !errors.Is(err, ErrNoDisplays) {
		t.Fatalf("Next() error = %v, want ErrNoDisplays", err)
	}
}

func TestNext_IsDeterministic(t *testing.T) {
	top := Topology{Monitors: []Monitor{
		monitor("A", 0, 0, true),
		monitor("B", 1920, 0, false),
		monitor("C", -1920, 0, false),
	}}

	for _, order := range []Order{OrderEnumeration, OrderGeometric} {
		first, err := Next(top, order)
		if err != nil {
			t.Fatalf("Next(%s) error: %v", order, err)
		}
		second, err := Next(top, order)
		if err != nil {
			t.Fatalf("Next(%s) error: %v", order, err)
		}
		if first != second {
			t.Fatalf("Next(%s) = %+v then %+v, want identical", order, first, second)
		}
	}
}

func TestNext_Geometric(t *testing.T) {
	// Enumeration order A, B, C; spatial order C (-1920), A (0), B (1920).
	top := Topology{Monitors: []Monitor{
		monitor("A", 0, 0, false),
		monitor("B", 1920, 0, false),
		monitor("C", -1920, 0, false),
	}}

	tests := []struct {
		primary int
		want    int
	}{
		{primary: 2, want: 0}, // C -> A
		{primary: 0, want: 1}, // A -> B
		{primary: 1, want: 2}, // B wraps to C
	}

	for _, tt := range tests {
		t.Run(top.Monitors[tt.primary].ID(), func(t *testing.T) {
			cur := Topology{Monitors: append([]Monitor(nil), top.Monitors...)}
			cur.Monitors[tt.primary].Device.Primary = true

			sel, err := Next(cur, OrderGeometric)
			if err != nil {
				t.Fatalf("Next() error: %v", err)
			}
			if sel.Target != tt.want {
				t.Fatalf("Next().Target = %d, want %d", sel.Target, tt.want)
			}
		})
	}
}

func TestNext_GeometricStacked(t *testing.T) {
	// Same column: top-to-bottom.
	top := Topology{Monitors: []Monitor{
		monitor("lower", 0, 1080, true),
		monitor("upper", 0, 0, false),
	}}

	sel, err := Next(top, OrderGeometric)
	if err != nil {
		t.Fatalf("Next() error: %v", err)
	}
	if sel.Target != 1 {
		t.Fatalf("Next().Target = %d, want 1", sel.Target)
	}
}

func TestParseOrder(t *testing.T) {
	tests := []struct {
		in      string
		want    Order
		wantErr bool
	}{
		{"", OrderEnumeration, false},
		{"enumeration", OrderEnumeration, false},
		{"geometric", OrderGeometric, false},
		{"clockwise", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseOrder(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseOrder(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Fatalf("ParseOrder(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestRebaseTo(t *testing.T) {
	target := monitor("B", 1920, -200, false)
	off := RebaseTo(target)

	if got := off.Apply(target.Position()); got != (platform.Point{}) {
		t.Fatalf("target rebased to %v, want origin", got)
	}
	if got, want := off.Apply(platform.Point{X: -1920, Y: 0}), (platform.Point{X: -3840, Y: 200}); got != want {
		t.Fatalf("Apply() = %v, want %v", got, want)
	}
}
