package topology

import (
	"fmt"
	"sort"
)

// Order is the policy that defines which monitor comes "next".
type Order string

const (
	// OrderEnumeration follows the order the display service returned.
	OrderEnumeration Order = "enumeration"
	// OrderGeometric walks monitors left to right, then top to bottom, by
	// their top-left corner.
	OrderGeometric Order = "geometric"
)

// ParseOrder validates an order name. The empty string selects
// OrderEnumeration.
func ParseOrder(s string) (Order, error) {
	switch Order(s) {
	case "", OrderEnumeration:
		return OrderEnumeration, nil
	case OrderGeometric:
		return OrderGeometric, nil
	}
	return "", fmt.Errorf("unknown order %q (want %s or %s)", s, OrderEnumeration, OrderGeometric)
}

// Selection is the outcome of rotation: indices into Topology.Monitors.
type Selection struct {
	Current int
	Target  int
}

// Noop reports whether the primary stays where it is.
func (s Selection) Noop() bool { return s.Current == s.Target }

// Next selects the circular successor of the current primary. It is a pure
// function of the snapshot and the order.
func Next(top Topology, order Order) (Selection, error) {
	current, err := top.PrimaryIndex()
	if err != nil {
		return Selection{}, err
	}

	n := top.Len()
	if n == 1 {
		return Selection{Current: current, Target: current}, nil
	}

	switch order {
	case "", OrderEnumeration:
		return Selection{Current: current, Target: (current + 1) % n}, nil
	case OrderGeometric:
		ring := geometricRing(top)
		for i, idx := range ring {
			if idx == current {
				return Selection{Current: current, Target: ring[(i+1)%n]}, nil
			}
		}
		return Selection{}, fmt.Errorf("primary index %d missing from ring", current)
	}
	return Selection{}, fmt.Errorf("unknown order %q", order)
}

func geometricRing(top Topology) []int {
	ring := make([]int, top.Len())
	for i := range ring {
		ring[i] = i
	}
	sort.SliceStable(ring, func(a, b int) bool {
		pa := top.Monitors[ring[a]].Position()
		pb := top.Monitors[ring[b]].Position()
		if pa.X != pb.X {
			return pa.X < pb.X
		}
		return pa.Y < pb.Y
	})
	return ring
}
