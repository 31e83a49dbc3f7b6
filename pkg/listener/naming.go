package listener

import (
	"context"
	"sync"
	"time"

	"digital.vasic.testnames/pkg/logging"
	"digital.vasic.testnames/pkg/naming"
)

// NamingListener computes invocation names on configuration and
// start notifications. Outcome notifications only log.
type NamingListener struct {
	engine *naming.Engine
	logger logging.Logger

	// executions named by BeforeConfiguration and not started yet
	configured sync.Map
}

// NewNamingListener creates a NamingListener over engine.
func NewNamingListener(
	engine *naming.Engine, logger logging.Logger,
) *NamingListener {
	if logger == nil {
		logger = logging.NullLogger{}
	}
	return &NamingListener{engine: engine, logger: logger}
}

func (l *NamingListener) OnSuiteStart(_ context.Context, s *naming.Suite) {
	l.logger.Debug("suite started", logging.StringField("suite", s.Name))
}

func (l *NamingListener) OnSuiteFinish(_ context.Context, s *naming.Suite) {
	l.logger.Debug("suite finished", logging.StringField("suite", s.Name))
}

// BeforeConfiguration names the invocation so that setup code can
// already read it.
func (l *NamingListener) BeforeConfiguration(
	ctx context.Context, d *naming.Descriptor,
) error {
	if _, err := l.engine.ComputeName(ctx, d); err != nil {
		return err
	}
	if id, ok := naming.ExecutionFrom(ctx); ok {
		l.configured.Store(id, struct{}{})
	}
	return nil
}

// OnInvocationStart computes the name, reusing the one from
// BeforeConfiguration for the same execution so that a repeat index
// is consumed once per invocation.
func (l *NamingListener) OnInvocationStart(
	ctx context.Context, d *naming.Descriptor,
) error {
	compute := l.engine.ComputeName
	if id, ok := naming.ExecutionFrom(ctx); ok {
		if _, done := l.configured.LoadAndDelete(id); done {
			compute = l.engine.NameFor
		}
	}
	name, err := compute(ctx, d)
	if err != nil {
		return err
	}
	l.logger.Debug("invocation started", logging.StringField("name", name))
	return nil
}

func (l *NamingListener) OnInvocationSuccess(
	ctx context.Context, d *naming.Descriptor, elapsed time.Duration,
) {
	l.forget(ctx)
	l.logger.Debug("invocation passed",
		l.nameField(ctx, d), logging.DurationField("duration", elapsed),
	)
}

func (l *NamingListener) OnInvocationFailure(
	ctx context.Context, d *naming.Descriptor,
	err error, elapsed time.Duration,
) {
	l.forget(ctx)
	l.logger.Debug("invocation failed",
		l.nameField(ctx, d), logging.ErrorField(err),
		logging.DurationField("duration", elapsed),
	)
}

func (l *NamingListener) OnInvocationSkipped(
	ctx context.Context, d *naming.Descriptor, reason error,
) {
	l.forget(ctx)
	l.logger.Debug("invocation skipped",
		l.nameField(ctx, d), logging.ErrorField(reason),
	)
}

func (l *NamingListener) forget(ctx context.Context) {
	if id, ok := naming.ExecutionFrom(ctx); ok {
		l.configured.Delete(id)
	}
}

// nameField reads the stored name, computing it from d for
// invocations reported without a start notification.
func (l *NamingListener) nameField(
	ctx context.Context, d *naming.Descriptor,
) logging.Field {
	name, err := l.engine.NameFor(ctx, d)
	if err != nil {
		return logging.StringField("name", "")
	}
	return logging.StringField("name", name)
}
