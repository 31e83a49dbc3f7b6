// Package listener defines the invocation lifecycle notifications a
// host runner emits and the listeners that name and monitor
// invocations in response.
package listener

import (
	"context"
	"time"

	"digital.vasic.testnames/pkg/naming"
)

// Listener receives invocation lifecycle notifications. Start
// notifications may fail; outcome notifications may not.
type Listener interface {
	// OnSuiteStart is called once before any invocation of s.
	OnSuiteStart(ctx context.Context, s *naming.Suite)

	// OnSuiteFinish is called once after every invocation of s.
	OnSuiteFinish(ctx context.Context, s *naming.Suite)

	// BeforeConfiguration is called before setup code bound to the
	// invocation runs.
	BeforeConfiguration(ctx context.Context, d *naming.Descriptor) error

	// OnInvocationStart is called when the invocation starts.
	OnInvocationStart(ctx context.Context, d *naming.Descriptor) error

	// OnInvocationSuccess is called when the invocation passes.
	OnInvocationSuccess(
		ctx context.Context, d *naming.Descriptor, elapsed time.Duration,
	)

	// OnInvocationFailure is called when the invocation fails.
	OnInvocationFailure(
		ctx context.Context, d *naming.Descriptor,
		err error, elapsed time.Duration,
	)

	// OnInvocationSkipped is called when the invocation is skipped,
	// possibly without a preceding start notification.
	OnInvocationSkipped(
		ctx context.Context, d *naming.Descriptor, reason error,
	)
}

// Base implements Listener with no-ops. Embed it to override only
// the notifications of interest.
type Base struct{}

func (Base) OnSuiteStart(context.Context, *naming.Suite)  {}
func (Base) OnSuiteFinish(context.Context, *naming.Suite) {}

func (Base) BeforeConfiguration(context.Context, *naming.Descriptor) error {
	return nil
}

func (Base) OnInvocationStart(context.Context, *naming.Descriptor) error {
	return nil
}

func (Base) OnInvocationSuccess(
	context.Context, *naming.Descriptor, time.Duration,
) {
}

func (Base) OnInvocationFailure(
	context.Context, *naming.Descriptor, error, time.Duration,
) {
}

func (Base) OnInvocationSkipped(
	context.Context, *naming.Descriptor, error,
) {
}

// Multi fans notifications out to listeners in order. Start
// notifications stop at the first error.
type Multi []Listener

func (m Multi) OnSuiteStart(ctx context.Context, s *naming.Suite) {
	for _, l := range m {
		l.OnSuiteStart(ctx, s)
	}
}

func (m Multi) OnSuiteFinish(ctx context.Context, s *naming.Suite) {
	for _, l := range m {
		l.OnSuiteFinish(ctx, s)
	}
}

func (m Multi) BeforeConfiguration(
	ctx context.Context, d *naming.Descriptor,
) error {
	for _, l := range m {
		if err := l.BeforeConfiguration(ctx, d); err != nil {
			return err
		}
	}
	return nil
}

func (m Multi) OnInvocationStart(
	ctx context.Context, d *naming.Descriptor,
) error {
	for _, l := range m {
		if err := l.OnInvocationStart(ctx, d); err != nil {
			return err
		}
	}
	return nil
}

func (m Multi) OnInvocationSuccess(
	ctx context.Context, d *naming.Descriptor, elapsed time.Duration,
) {
	for _, l := range m {
		l.OnInvocationSuccess(ctx, d, elapsed)
	}
}

func (m Multi) OnInvocationFailure(
	ctx context.Context, d *naming.Descriptor,
	err error, elapsed time.Duration,
) {
	for _, l := range m {
		l.OnInvocationFailure(ctx, d, err, elapsed)
	}
}

func (m Multi) OnInvocationSkipped(
	ctx context.Context, d *naming.Descriptor, reason error,
) {
	for _, l := range m {
		l.OnInvocationSkipped(ctx, d, reason)
	}
}
