// Package rebase computes the layout for a new primary monitor and commits
// it to the display service.
package rebase

import (
	"fmt"

	"github.com/1broseidon/primecycle/internal/platform"
	"github.com/1broseidon/primecycle/internal/topology"
)

// Write is one staged settings change.
type Write struct {
	Monitor  topology.Monitor
	Settings platform.Settings
	Flags    platform.WriteFlags
}

// Plan is the full sequence of writes for one rotation. Writes[0] is always
// the target; the rest follow enumeration order.
type Plan struct {
	TargetIndex int
	Target      topology.Monitor
	Offset      topology.Translation
	Writes      []Write
}

// NewPlan rebases every monitor in top so that top.Monitors[target] sits
// at the origin. Relative positions between monitors are unchanged.
func NewPlan(top topology.Topology, target int) (Plan, error) {
	if target < 0 || target >= top.Len() {
		return Plan{}, fmt.Errorf("target index %d out of range [0,%d)", target, top.Len())
	}

	t := top.Monitors[target]
	offset := topology.RebaseTo(t)

	plan := Plan{
		TargetIndex: target,
		Target:      t,
		Offset:      offset,
		Writes:      make([]Write, 0, top.Len()),
	}
	plan.Writes = append(plan.Writes, Write{
		Monitor:  t,
		Settings: t.Settings.WithPosition(offset.Apply(t.Position())),
		Flags:    platform.WriteFlags{SetPrimary: true, Persist: true, Defer: true},
	})

	for i, m := range top.Monitors {
		if i == target {
			continue
		}
		plan.Writes = append(plan.Writes, Write{
			Monitor:  m,
			Settings: m.Settings.WithPosition(offset.Apply(m.Position())),
			Flags:    platform.WriteFlags{Persist: true, Defer: true},
		})
	}
	return plan, nil
}
