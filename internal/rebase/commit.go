package rebase

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/1broseidon/primecycle/internal/platform"
)

var errEmptyPlan = errors.New("plan has no writes")

// State is a position in the commit sequence.
type State int

const (
	StateRead State = iota
	StateTargetStaged
	StateOthersStaged
	StateApplied
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateRead:
		return "read"
	case StateTargetStaged:
		return "target-staged"
	case StateOthersStaged:
		return "others-staged"
	case StateApplied:
		return "applied"
	case StateFailed:
		return "failed"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Stage names the step that failed.
type Stage int

const (
	StageTarget Stage = iota + 1
	StageOther
	StageApply
)

func (s Stage) String() string {
	switch s {
	case StageTarget:
		return "set primary"
	case StageOther:
		return "reposition"
	case StageApply:
		return "apply"
	}
	return fmt.Sprintf("stage(%d)", int(s))
}

// StageError is the failure that moved a Committer to StateFailed.
type StageError struct {
	Stage  Stage
	Device string
	Err    error
}

func (e *StageError) Error() string {
	if e.Device == "" {
		return fmt.Sprintf("%s: %v", e.Stage, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Stage, e.Device, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// Code returns the display service failure code, if the service gave one.
func (e *StageError) Code() (platform.ChangeCode, bool) {
	var ce *platform.ChangeError
	if errors.As(e.Err, &ce) {
		return ce.Code, true
	}
	return 0, false
}

// Committer drives a Plan through
//
//	Read -> TargetStaged -> OthersStaged -> Applied
//
// with StateFailed reachable from every non-terminal state. Writes are
// fail-fast and nothing staged is rolled back.
type Committer struct {
	svc  platform.Service
	plan Plan

	state  State
	err    error
	issued []string
}

// NewCommitter prepares plan for svc. No service call is made until Step.
func NewCommitter(svc platform.Service, plan Plan) *Committer {
	return &Committer{svc: svc, plan: plan, state: StateRead}
}

// State returns the current state.
func (c *Committer) State() State { return c.state }

// Err returns the failure, if the committer is in StateFailed.
func (c *Committer) Err() error { return c.err }

// Issued returns the devices whose write call has been issued, in order.
func (c *Committer) Issued() []string { return append([]string(nil), c.issued...) }

// Step performs the work of the current state and advances. Terminal
// states are absorbing.
func (c *Committer) Step() error {
	switch c.state {
	case StateRead:
		if len(c.plan.Writes) == 0 {
			return c.fail(StageTarget, "", errEmptyPlan)
		}
		w := c.plan.Writes[0]
		if err := c.write(w); err != nil {
			return c.fail(StageTarget, w.Monitor.ID(), err)
		}
		c.advance(StateTargetStaged)

	case StateTargetStaged:
		for _, w := range c.plan.Writes[1:] {
			if err := c.write(w); err != nil {
				return c.fail(StageOther, w.Monitor.ID(), err)
			}
		}
		c.advance(StateOthersStaged)

	case StateOthersStaged:
		if err := c.svc.ApplyStaged(); err != nil {
			return c.fail(StageApply, "", err)
		}
		c.advance(StateApplied)

	case StateApplied:
		return nil

	case StateFailed:
		return c.err
	}
	return nil
}

// Run steps until Applied or Failed.
func (c *Committer) Run() error {
	for c.state != StateApplied && c.state != StateFailed {
		if err := c.Step(); err != nil {
			return err
		}
	}
	return c.err
}

func (c *Committer) write(w Write) error {
	c.issued = append(c.issued, w.Monitor.ID())
	slog.Debug("staging display settings",
		"device", w.Monitor.ID(),
		"from", w.Monitor.Position().String(),
		"to", w.Settings.Position.String(),
		"primary", w.Flags.SetPrimary,
	)
	return c.svc.WriteSettings(w.Monitor.Device, w.Settings, w.Flags)
}

func (c *Committer) advance(next State) {
	slog.Debug("commit state", "from", c.state.String(), "to", next.String())
	c.state = next
}

func (c *Committer) fail(stage Stage, device string, err error) error {
	c.err = &StageError{Stage: stage, Device: device, Err: err}
	c.advance(StateFailed)
	return c.err
}
