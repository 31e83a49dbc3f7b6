// Package naming computes stable, human-readable display names for
// running test invocations and makes them retrievable from anywhere
// inside the invocation through its context.Context.
//
// A name is built from the enclosing suite (or a data-provider
// override), an optional unique-id prefix, the formatted method name,
// an optional data-row suffix and an optional repeat suffix. Repeat
// indices come from a process-wide RepeatCounter in invocation start
// order.
//
// Typical use by a host:
//
//	engine := naming.NewEngine(naming.NewRepeatCounter())
//	ctx, _ = naming.Bind(ctx)
//	name, err := engine.ComputeName(ctx, desc)
//	...
//	name, err = engine.Name(ctx) // from any code sharing ctx
package naming
