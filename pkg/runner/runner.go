// Package runner executes suites of test methods and drives the
// naming lifecycle for every invocation. Each invocation runs in its
// own execution context, so code under test can read its display name
// through the context it receives.
package runner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"digital.vasic.testnames/pkg/listener"
	"digital.vasic.testnames/pkg/logging"
	"digital.vasic.testnames/pkg/metrics"
	"digital.vasic.testnames/pkg/naming"
	"digital.vasic.testnames/pkg/suite"
)

// TestFunc is the body of a test method. ctx is bound to the
// invocation's execution.
type TestFunc func(ctx context.Context, params []any) error

// ErrSkip, returned by a TestFunc, marks the invocation skipped.
var ErrSkip = errors.New("invocation skipped")

// Runner executes suites.
type Runner struct {
	engine   *naming.Engine
	listener listener.Listener
	extra    []listener.Listener
	logger   logging.Logger
	metrics  metrics.NamingMetrics
	tests    map[string]TestFunc
	timeout  time.Duration
}

// NewRunner creates a Runner naming invocations with engine.
// Methods without a registered TestFunc run as no-ops.
func NewRunner(engine *naming.Engine, opts ...Option) *Runner {
	r := &Runner{
		engine:  engine,
		logger:  logging.NullLogger{},
		metrics: metrics.NoopMetrics{},
		tests:   make(map[string]TestFunc),
	}
	for _, opt := range opts {
		opt(r)
	}
	ls := listener.Multi{listener.NewNamingListener(engine, r.logger)}
	r.listener = append(ls, r.extra...)
	return r
}

// Engine returns the naming engine.
func (r *Runner) Engine() *naming.Engine { return r.engine }

// Run executes every method of s in priority order. Invocations of
// one method run concurrently, bounded by its thread pool size.
// Results are returned in scheduling order. A naming failure aborts
// the run.
func (r *Runner) Run(
	ctx context.Context, s *suite.Suite,
) ([]*Result, error) {
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid suite: %w", err)
	}

	ns := s.Naming()
	r.listener.OnSuiteStart(ctx, ns)
	defer r.listener.OnSuiteFinish(ctx, ns)

	r.logger.Info("suite started",
		logging.StringField("suite", s.Name),
		logging.IntField("methods", len(s.Methods)),
	)

	var results []*Result
	for _, m := range s.Ordered() {
		res, err := r.runMethod(ctx, ns, m)
		results = append(results, res...)
		if err != nil {
			return results, fmt.Errorf(
				"method %s failed: %w", m.Name, err,
			)
		}
	}

	r.logger.Info("suite finished",
		logging.StringField("suite", s.Name),
		logging.IntField("invocations", len(results)),
	)
	return results, nil
}

func (r *Runner) runMethod(
	ctx context.Context, ns *naming.Suite, m suite.Method,
) ([]*Result, error) {
	invs := expand(m)
	limit := m.ThreadPoolSize
	if limit < 1 {
		limit = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	ordered := make([]*Result, len(invs))
	for i, inv := range invs {
		g.Go(func() error {
			res, err := r.invoke(gctx, ns, m, inv)
			ordered[i] = res
			return err
		})
	}
	err := g.Wait()

	results := make([]*Result, 0, len(invs))
	for _, res := range ordered {
		if res != nil {
			results = append(results, res)
		}
	}
	return results, err
}

// invoke runs one invocation through the lifecycle: bind ->
// configuration -> start -> execute -> outcome -> release.
func (r *Runner) invoke(
	parent context.Context,
	ns *naming.Suite,
	m suite.Method,
	inv invocation,
) (*Result, error) {
	ctx, id := naming.Bind(parent)
	defer r.engine.Cells().Release(ctx)

	d := NewDescriptor(ns, m, inv.row, inv.params)
	res := &Result{
		Execution:  string(id),
		Suite:      ns.Name,
		Method:     m.Name,
		Package:    m.Package,
		Row:        inv.row,
		Repetition: inv.repetition,
		Parameters: d.Parameters,
		StartTime:  time.Now(),
	}

	// Cancelled before start: name on demand, then report a skip.
	if err := ctx.Err(); err != nil {
		name, nerr := r.engine.NameFor(ctx, d)
		if nerr != nil {
			return nil, nerr
		}
		r.listener.OnInvocationSkipped(ctx, d, err)
		res.DisplayName = name
		res.Status = StatusSkipped
		res.Error = err.Error()
		res.finish()
		r.record(res)
		return res, nil
	}

	if err := r.listener.BeforeConfiguration(ctx, d); err != nil {
		return nil, err
	}
	if err := r.listener.OnInvocationStart(ctx, d); err != nil {
		return nil, err
	}
	name, err := r.engine.Name(ctx)
	if err != nil {
		return nil, err
	}
	res.DisplayName = name

	r.metrics.InvocationStarted()
	execErr := r.execute(ctx, m.Name, d.Parameters)
	r.metrics.InvocationFinished()
	res.finish()

	switch {
	case execErr == nil:
		res.Status = StatusPassed
		r.listener.OnInvocationSuccess(ctx, d, res.Duration)
	case errors.Is(execErr, ErrSkip):
		res.Status = StatusSkipped
		res.Error = execErr.Error()
		r.listener.OnInvocationSkipped(ctx, d, execErr)
	default:
		res.Status = StatusFailed
		res.Error = execErr.Error()
		r.listener.OnInvocationFailure(ctx, d, execErr, res.Duration)
	}

	r.record(res)
	return res, nil
}

// execute runs the registered test function, converting panics into
// failures.
func (r *Runner) execute(
	ctx context.Context, method string, params []any,
) (err error) {
	fn, ok := r.tests[method]
	if !ok {
		return nil
	}
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic: %v", p)
		}
	}()
	return fn(ctx, params)
}

func (r *Runner) record(res *Result) {
	r.metrics.RecordInvocation(res.Suite, res.Status, res.Duration)
	fields := []logging.Field{
		logging.StringField("name", res.DisplayName),
		logging.StringField("status", res.Status),
		logging.DurationField("duration", res.Duration),
	}
	if res.Error != "" {
		fields = append(fields, logging.StringField("error", res.Error))
	}
	r.logger.Info("invocation finished", fields...)
}
