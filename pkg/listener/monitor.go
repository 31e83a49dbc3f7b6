package listener

import (
	"context"
	"time"

	"digital.vasic.testnames/pkg/monitor"
	"digital.vasic.testnames/pkg/naming"
)

// MonitorListener forwards notifications to a monitor collector,
// tagging every invocation event with its display name. Place it
// after a NamingListener in a Multi.
type MonitorListener struct {
	Base
	engine    *naming.Engine
	collector *monitor.Collector
}

// NewMonitorListener creates a MonitorListener.
func NewMonitorListener(
	engine *naming.Engine, collector *monitor.Collector,
) *MonitorListener {
	return &MonitorListener{engine: engine, collector: collector}
}

func (l *MonitorListener) OnSuiteStart(_ context.Context, s *naming.Suite) {
	l.collector.Emit(monitor.Event{
		Type:  monitor.EventSuiteStarted,
		Name:  s.Name,
		Suite: s.Name,
	})
}

func (l *MonitorListener) OnSuiteFinish(_ context.Context, s *naming.Suite) {
	l.collector.Emit(monitor.Event{
		Type:  monitor.EventSuiteFinished,
		Name:  s.Name,
		Suite: s.Name,
	})
}

func (l *MonitorListener) OnInvocationStart(
	ctx context.Context, d *naming.Descriptor,
) error {
	ev, err := l.event(ctx, monitor.EventStarted, d)
	if err != nil {
		return err
	}
	l.collector.Emit(ev)
	return nil
}

func (l *MonitorListener) OnInvocationSuccess(
	ctx context.Context, d *naming.Descriptor, elapsed time.Duration,
) {
	if ev, err := l.event(ctx, monitor.EventPassed, d); err == nil {
		ev.Duration = elapsed
		l.collector.Emit(ev)
	}
}

func (l *MonitorListener) OnInvocationFailure(
	ctx context.Context, d *naming.Descriptor,
	cause error, elapsed time.Duration,
) {
	if ev, err := l.event(ctx, monitor.EventFailed, d); err == nil {
		ev.Duration = elapsed
		if cause != nil {
			ev.Message = cause.Error()
		}
		l.collector.Emit(ev)
	}
}

// OnInvocationSkipped names the invocation on demand, since skips may
// arrive without a start notification.
func (l *MonitorListener) OnInvocationSkipped(
	ctx context.Context, d *naming.Descriptor, reason error,
) {
	if ev, err := l.event(ctx, monitor.EventSkipped, d); err == nil {
		if reason != nil {
			ev.Message = reason.Error()
		}
		l.collector.Emit(ev)
	}
}

func (l *MonitorListener) event(
	ctx context.Context, typ monitor.EventType, d *naming.Descriptor,
) (monitor.Event, error) {
	name, err := l.engine.NameFor(ctx, d)
	if err != nil {
		return monitor.Event{}, err
	}
	id, _ := naming.ExecutionFrom(ctx)
	ev := monitor.Event{
		Type:      typ,
		Execution: string(id),
		Name:      name,
		Method:    d.Method.Name,
	}
	if d.Suite != nil {
		ev.Suite = d.Suite.Name
	}
	return ev, nil
}
