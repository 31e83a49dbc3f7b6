package naming

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// ExecutionID identifies one logical execution context, i.e. one
// running invocation.
type ExecutionID string

type executionKey struct{}

// Bind returns a child context carrying a fresh ExecutionID. Hosts
// call it once per invocation so that a reused worker never observes
// the name of a previous invocation.
func Bind(ctx context.Context) (context.Context, ExecutionID) {
	id := ExecutionID(uuid.Must(uuid.NewV7()).String())
	return WithExecution(ctx, id), id
}

// WithExecution returns a child context carrying id.
func WithExecution(
	ctx context.Context, id ExecutionID,
) context.Context {
	return context.WithValue(ctx, executionKey{}, id)
}

// ExecutionFrom returns the ExecutionID carried by ctx.
func ExecutionFrom(ctx context.Context) (ExecutionID, bool) {
	if ctx == nil {
		return "", false
	}
	id, ok := ctx.Value(executionKey{}).(ExecutionID)
	return id, ok && id != ""
}

// Cells maps execution contexts to their current name. Each execution
// owns exactly one slot.
type Cells struct {
	slots sync.Map // ExecutionID -> string
}

// NewCells creates an empty Cells.
func NewCells() *Cells {
	return &Cells{}
}

// Get returns the name stored for the execution bound to ctx.
func (c *Cells) Get(ctx context.Context) (string, error) {
	id, ok := ExecutionFrom(ctx)
	if !ok {
		return "", &NameNotReadyError{}
	}
	v, ok := c.slots.Load(id)
	if !ok {
		return "", &NameNotReadyError{Execution: id}
	}
	return v.(string), nil
}

// Set stores name for the execution bound to ctx.
func (c *Cells) Set(ctx context.Context, name string) error {
	id, ok := ExecutionFrom(ctx)
	if !ok {
		return ErrUnboundExecution
	}
	c.slots.Store(id, name)
	return nil
}

// Release drops the slot of the execution bound to ctx. Hosts call it
// once the invocation's name has been handed to reporting.
func (c *Cells) Release(ctx context.Context) {
	if id, ok := ExecutionFrom(ctx); ok {
		c.slots.Delete(id)
	}
}

// Len returns the number of occupied slots.
func (c *Cells) Len() int {
	n := 0
	c.slots.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}
