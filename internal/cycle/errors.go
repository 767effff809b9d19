package cycle

import (
	"errors"
	"fmt"
)

// Kind classifies the outcome of a run. Its ordinal is the process exit
// status.
type Kind int

const (
	KindSuccess Kind = iota
	KindNoDisplays
	KindIndeterminatePrimary
	KindTargetWrite
	KindOtherWrite
	KindApply
)

func (k Kind) String() string {
	switch k {
	case KindSuccess:
		return "success"
	case KindNoDisplays:
		return "no displays"
	case KindIndeterminatePrimary:
		return "indeterminate primary"
	case KindTargetWrite:
		return "target write failed"
	case KindOtherWrite:
		return "display write failed"
	case KindApply:
		return "apply failed"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ExitCode returns the process exit status for k.
func (k Kind) ExitCode() int { return int(k) }

// Error is a failed run.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string { return e.Err.Error() }

func (e *Error) Unwrap() error { return e.Err }

// ExitCode maps the error returned by Run to a process exit status.
func ExitCode(err error) int {
	if err == nil {
		return KindSuccess.ExitCode()
	}
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind.ExitCode()
	}
	return KindNoDisplays.ExitCode()
}
