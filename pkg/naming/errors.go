package naming

import (
	"errors"
	"fmt"
)

// Sentinel errors matched by the typed errors below via errors.Is.
var (
	ErrMissingContext = errors.New("invocation has no suite context")
	ErrNameNotReady   = errors.New("test name not computed yet")

	// ErrUnboundExecution is returned when a name is stored through a
	// context that was never passed through Bind.
	ErrUnboundExecution = errors.New(
		"context is not bound to an execution",
	)
)

// MissingContextError reports a descriptor without a suite link.
type MissingContextError struct {
	Method string
}

func (e *MissingContextError) Error() string {
	if e.Method == "" {
		return "unable to name test: " + ErrMissingContext.Error()
	}
	return fmt.Sprintf(
		"unable to name test %s: %s",
		e.Method, ErrMissingContext,
	)
}

// Is matches ErrMissingContext.
func (e *MissingContextError) Is(target error) bool {
	return target == ErrMissingContext
}

// NameNotReadyError reports a read of an execution whose name was
// never computed or set.
type NameNotReadyError struct {
	Execution ExecutionID
}

func (e *NameNotReadyError) Error() string {
	if e.Execution == "" {
		return ErrNameNotReady.Error()
	}
	return fmt.Sprintf(
		"execution %s: %s", e.Execution, ErrNameNotReady,
	)
}

// Is matches ErrNameNotReady.
func (e *NameNotReadyError) Is(target error) bool {
	return target == ErrNameNotReady
}
