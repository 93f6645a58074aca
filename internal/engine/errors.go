package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound reports an operation against a task, tag, or member id
	// that does not exist. Recoverable; the operation has no effect.
	ErrNotFound = errors.New("engine: not found")

	// ErrValidation reports a create or patch that would break a field
	// invariant. Recoverable; the operation has no effect.
	ErrValidation = errors.New("engine: validation failed")
)

// PreconditionViolation marks a broken internal invariant: a bug upstream,
// not a user error. It is raised as a panic and deliberately never recovered
// inside this package, so a corrupted derivation halts instead of producing
// a wrong answer.
type PreconditionViolation struct {
	Msg string
}

func (p PreconditionViolation) Error() string {
	return "engine: precondition violated: " + p.Msg
}

func violated(format string, args ...any) {
	panic(PreconditionViolation{Msg: fmt.Sprintf(format, args...)})
}
