// Package metrics records naming and invocation counters.
package metrics

import "time"

// Name kinds passed to RecordName.
const (
	KindComputed = "computed"
	KindOverride = "override"
	KindManual   = "manual"
)

// NamingMetrics defines the interface for recording naming metrics.
type NamingMetrics interface {
	// RecordName records a produced name of the given kind.
	RecordName(suite, kind string)
	// RecordRepeat records a repeat index handed out for suite.
	RecordRepeat(suite string)
	// RecordInvocation records a finished invocation.
	RecordInvocation(suite, status string, duration time.Duration)
	// InvocationStarted increments the gauge of running invocations.
	InvocationStarted()
	// InvocationFinished decrements the gauge of running invocations.
	InvocationFinished()
}

// NoopMetrics is a no-op implementation of NamingMetrics
// useful for testing or when metrics collection is disabled.
type NoopMetrics struct{}

func (NoopMetrics) RecordName(_, _ string)                        {}
func (NoopMetrics) RecordRepeat(_ string)                         {}
func (NoopMetrics) RecordInvocation(_, _ string, _ time.Duration) {}
func (NoopMetrics) InvocationStarted()                            {}
func (NoopMetrics) InvocationFinished()                           {}
