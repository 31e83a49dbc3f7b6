package listener

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"digital.vasic.testnames/pkg/monitor"
	"digital.vasic.testnames/pkg/naming"
)

type recordingListener struct {
	Base
	name     string
	calls    *[]string
	startErr error
}

func (r *recordingListener) OnSuiteStart(context.Context, *naming.Suite) {
	*r.calls = append(*r.calls, r.name+":suite_start")
}

func (r *recordingListener) OnInvocationStart(
	context.Context, *naming.Descriptor,
) error {
	*r.calls = append(*r.calls, r.name+":start")
	return r.startErr
}

func (r *recordingListener) OnInvocationSkipped(
	context.Context, *naming.Descriptor, error,
) {
	*r.calls = append(*r.calls, r.name+":skipped")
}

func descriptor(method string, count int) *naming.Descriptor {
	return &naming.Descriptor{
		Suite:  &naming.Suite{Name: "SuiteA"},
		Method: naming.Method{Name: method, InvocationCount: count},
	}
}

func TestMulti_Order(t *testing.T) {
	var calls []string
	m := Multi{
		&recordingListener{name: "a", calls: &calls},
		&recordingListener{name: "b", calls: &calls},
	}
	ctx := context.Background()

	m.OnSuiteStart(ctx, &naming.Suite{Name: "S"})
	require.NoError(t, m.OnInvocationStart(ctx, descriptor("m", 1)))
	m.OnInvocationSkipped(ctx, descriptor("m", 1), nil)
	m.OnSuiteFinish(ctx, &naming.Suite{Name: "S"})
	m.OnInvocationSuccess(ctx, descriptor("m", 1), 0)
	m.OnInvocationFailure(ctx, descriptor("m", 1), nil, 0)
	require.NoError(t, m.BeforeConfiguration(ctx, descriptor("m", 1)))

	assert.Equal(t, []string{
		"a:suite_start", "b:suite_start",
		"a:start", "b:start",
		"a:skipped", "b:skipped",
	}, calls)
}

func TestMulti_StartStopsAtError(t *testing.T) {
	var calls []string
	boom := errors.New("boom")
	m := Multi{
		&recordingListener{name: "a", calls: &calls, startErr: boom},
		&recordingListener{name: "b", calls: &calls},
	}

	err := m.OnInvocationStart(context.Background(), descriptor("m", 1))
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"a:start"}, calls)
}

func TestNamingListener_Start(t *testing.T) {
	engine := naming.NewEngine(nil, naming.WithRepeatFormat("-%s"))
	l := NewNamingListener(engine, nil)
	d := descriptor("testFoo", 3)

	for i := 1; i <= 3; i++ {
		ctx, _ := naming.Bind(context.Background())
		require.NoError(t, l.OnInvocationStart(ctx, d))
		name, err := engine.Name(ctx)
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("SuiteA - testFoo-%04d", i), name)
		l.OnInvocationSuccess(ctx, d, time.Millisecond)
	}
}

func TestNamingListener_ConfigurationThenStart(t *testing.T) {
	engine := naming.NewEngine(nil)
	l := NewNamingListener(engine, nil)
	d := descriptor("testFoo", 2)

	ctx, _ := naming.Bind(context.Background())
	require.NoError(t, l.BeforeConfiguration(ctx, d))
	configured, err := engine.Name(ctx)
	require.NoError(t, err)

	require.NoError(t, l.OnInvocationStart(ctx, d))
	started, err := engine.Name(ctx)
	require.NoError(t, err)

	assert.Equal(t, configured, started)
	assert.Equal(t, 1, engine.Counter().Peek("SuiteA - testFoo"))

	// The marker is consumed: a second start on the same execution
	// is a new observation.
	require.NoError(t, l.OnInvocationStart(ctx, d))
	assert.Equal(t, 2, engine.Counter().Peek("SuiteA - testFoo"))
}

func TestNamingListener_SkipClearsMarker(t *testing.T) {
	engine := naming.NewEngine(nil)
	l := NewNamingListener(engine, nil)
	d := descriptor("m", 1)

	ctx, id := naming.Bind(context.Background())
	require.NoError(t, l.BeforeConfiguration(ctx, d))
	l.OnInvocationSkipped(ctx, d, errors.New("dependency failed"))
	l.OnInvocationFailure(ctx, d, errors.New("x"), 0)

	_, marked := l.configured.Load(id)
	assert.False(t, marked)
}

func TestNamingListener_Errors(t *testing.T) {
	l := NewNamingListener(naming.NewEngine(nil), nil)
	ctx, _ := naming.Bind(context.Background())
	d := &naming.Descriptor{Method: naming.Method{Name: "m"}}

	assert.ErrorIs(t, l.BeforeConfiguration(ctx, d), naming.ErrMissingContext)
	assert.ErrorIs(t, l.OnInvocationStart(ctx, d), naming.ErrMissingContext)

	l.OnSuiteStart(ctx, &naming.Suite{Name: "S"})
	l.OnSuiteFinish(ctx, &naming.Suite{Name: "S"})
	l.OnInvocationSkipped(ctx, d, nil)
}

func TestMonitorListener_Events(t *testing.T) {
	engine := naming.NewEngine(nil)
	collector := monitor.NewCollector()
	l := Multi{
		NewNamingListener(engine, nil),
		NewMonitorListener(engine, collector),
	}
	suite := &naming.Suite{Name: "SuiteA"}
	d := &naming.Descriptor{Suite: suite, Method: naming.Method{Name: "login"}}

	l.OnSuiteStart(context.Background(), suite)

	ctx, id := naming.Bind(context.Background())
	require.NoError(t, l.OnInvocationStart(ctx, d))
	l.OnInvocationFailure(ctx, d, errors.New("bad password"), time.Second)

	skipCtx, _ := naming.Bind(context.Background())
	l.OnInvocationSkipped(skipCtx, d, errors.New("not started"))

	okCtx, _ := naming.Bind(context.Background())
	require.NoError(t, l.OnInvocationStart(okCtx, d))
	l.OnInvocationSuccess(okCtx, d, time.Second)
	l.OnSuiteFinish(context.Background(), suite)

	events := collector.Events()
	require.Len(t, events, 7)
	assert.Equal(t, monitor.EventSuiteStarted, events[0].Type)
	assert.Equal(t, monitor.EventStarted, events[1].Type)
	assert.Equal(t, string(id), events[1].Execution)
	assert.Equal(t, "SuiteA - login", events[1].Name)
	assert.Equal(t, monitor.EventFailed, events[2].Type)
	assert.Equal(t, "bad password", events[2].Message)
	assert.Equal(t, time.Second, events[2].Duration)
	assert.Equal(t, monitor.EventSkipped, events[3].Type)
	assert.Equal(t, "SuiteA - login", events[3].Name)
	assert.Equal(t, "SuiteA", events[3].Suite)
	assert.Equal(t, monitor.EventPassed, events[5].Type)
	assert.Equal(t, monitor.EventSuiteFinished, events[6].Type)

	stats := collector.Stats()
	assert.Equal(t, 2, stats.Started)
	assert.Equal(t, 3, stats.Finished())
}

func TestMonitorListener_StartError(t *testing.T) {
	l := NewMonitorListener(naming.NewEngine(nil), monitor.NewCollector())
	err := l.OnInvocationStart(
		context.Background(), descriptor("m", 1),
	)
	assert.ErrorIs(t, err, naming.ErrUnboundExecution)
}
