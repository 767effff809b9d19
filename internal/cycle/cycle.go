// Package cycle runs one primary-monitor rotation: read the topology, pick
// the next monitor, rebase the layout around it and commit.
package cycle

import (
	"errors"
	"log/slog"

	"github.com/1broseidon/primecycle/internal/config"
	"github.com/1broseidon/primecycle/internal/platform"
	"github.com/1broseidon/primecycle/internal/rebase"
	"github.com/1broseidon/primecycle/internal/topology"
)

// Result describes a run that reached selection.
type Result struct {
	Topology  topology.Topology
	Selection topology.Selection
	Order     topology.Order
	// Plan is nil for a no-op.
	Plan *rebase.Plan
	// Calls holds the writes and apply a dry run would have issued.
	Calls []platform.Call
}

// Noop reports whether the run left the layout untouched.
func (r Result) Noop() bool { return r.Plan == nil }

// Target returns the monitor that is (or, for a dry run, would be) primary.
func (r Result) Target() topology.Monitor {
	return r.Topology.Monitors[r.Selection.Target]
}

// Run performs the rotation against svc. With opts.DryRun the writes and
// apply are recorded in Result.Calls instead of reaching svc.
//
// The returned Result is populated as far as the run got; on failure err
// is a *Error.
func Run(svc platform.Service, opts config.Options) (Result, error) {
	res := Result{Order: opts.Order}

	var rec *platform.Recorder
	if opts.DryRun {
		rec = platform.NewRecorder(svc)
		svc = rec
	}

	top, err := topology.Read(svc)
	res.Topology = top
	if err != nil {
		return res, &Error{Kind: KindNoDisplays, Err: err}
	}

	sel, err := topology.Next(top, opts.Order)
	if err != nil {
		kind := KindIndeterminatePrimary
		if errors.Is(err, topology.ErrNoDisplays) {
			kind = KindNoDisplays
		}
		return res, &Error{Kind: kind, Err: err}
	}
	res.Selection = sel

	if sel.Noop() {
		slog.Debug("single display, nothing to rotate", "device", top.Monitors[sel.Current].ID())
		return res, nil
	}

	plan, err := rebase.NewPlan(top, sel.Target)
	if err != nil {
		return res, &Error{Kind: KindTargetWrite, Err: err}
	}
	res.Plan = &plan
	slog.Debug("rotating primary",
		"from", top.Monitors[sel.Current].ID(),
		"to", plan.Target.ID(),
		"offset", plan.Offset.String(),
		"order", string(opts.Order),
	)

	err = rebase.NewCommitter(svc, plan).Run()
	if rec != nil {
		res.Calls = rec.Calls()
	}
	if err != nil {
		return res, &Error{Kind: stageKind(err), Err: err}
	}
	return res, nil
}

func stageKind(err error) Kind {
	var se *rebase.StageError
	if !errors.As(err, &se) {
		return KindApply
	}
	switch se.Stage {
	case rebase.StageTarget:
		return KindTargetWrite
	case rebase.StageOther:
		return KindOtherWrite
	}
	return KindApply
}
