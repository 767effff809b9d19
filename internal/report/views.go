package report

import (
	"fmt"

	"github.com/1broseidon/primecycle/internal/config"
	"github.com/1broseidon/primecycle/internal/cycle"
	"github.com/1broseidon/primecycle/internal/platform"
	"github.com/1broseidon/primecycle/internal/topology"
)

// MonitorView is the YAML form of one monitor.
type MonitorView struct {
	Index    int            `yaml:"index"`
	ID       string         `yaml:"id"`
	Label    string         `yaml:"label,omitempty"`
	Position platform.Point `yaml:"position"`
	Size     string         `yaml:"size"`
	Primary  bool           `yaml:"primary"`
}

// TopologyView is the output of the list command.
type TopologyView struct {
	Monitors []MonitorView `yaml:"monitors"`
	Skipped  []string      `yaml:"skipped,omitempty"`
}

// NewTopologyView builds the list view of top.
func NewTopologyView(top topology.Topology) TopologyView {
	v := TopologyView{
		Monitors: make([]MonitorView, 0, top.Len()),
		Skipped:  top.Skipped,
	}
	for i, m := range top.Monitors {
		v.Monitors = append(v.Monitors, MonitorView{
			Index:    i,
			ID:       m.ID(),
			Label:    m.Device.Label,
			Position: m.Position(),
			Size:     fmt.Sprintf("%dx%d", m.Settings.Width, m.Settings.Height),
			Primary:  m.IsPrimary(),
		})
	}
	return v
}

// PlanView is the output of the plan command.
type PlanView struct {
	Options config.Options  `yaml:"options"`
	Current string          `yaml:"current,omitempty"`
	Target  string          `yaml:"target,omitempty"`
	Noop    bool            `yaml:"noop"`
	Offset  *platform.Point `yaml:"offset,omitempty"`
	Calls   []platform.Call `yaml:"calls,omitempty"`
}

// NewPlanView builds the plan view of a dry run. res must come from a run
// that reached selection.
func NewPlanView(opts config.Options, res cycle.Result) PlanView {
	v := PlanView{
		Options: opts,
		Noop:    res.Noop(),
		Calls:   res.Calls,
	}
	v.Current = res.Topology.Monitors[res.Selection.Current].ID()
	v.Target = res.Target().ID()
	if res.Plan != nil {
		off := platform.Point(res.Plan.Offset)
		v.Offset = &off
	}
	return v
}
