package naming

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDescriptor(suite, method string) *Descriptor {
	return &Descriptor{
		Suite:  &Suite{Name: suite},
		Method: Method{Name: method, Package: "com.example.tests"},
	}
}

func boundCtx(t *testing.T) context.Context {
	t.Helper()
	ctx, _ := Bind(context.Background())
	return ctx
}

func TestEngine_ComputeName_Basic(t *testing.T) {
	e := NewEngine(NewRepeatCounter())
	name, err := e.ComputeName(boundCtx(t), newDescriptor("SuiteA", "testFoo"))
	require.NoError(t, err)
	assert.Equal(t, "SuiteA - testFoo", name)
}

func TestEngine_ComputeName_Pure(t *testing.T) {
	e := NewEngine(nil, WithPatternSource(
		StaticPattern("{method}#{priority}/{pool_size}"),
	))
	d := newDescriptor("SuiteA", "login")
	d.Method.Priority = 5
	d.Method.ThreadPoolSize = 2
	d.Parameters = []any{"u", 1}

	first, err := e.ComputeName(boundCtx(t), d)
	require.NoError(t, err)
	second, err := e.ComputeName(boundCtx(t), d)
	require.NoError(t, err)

	assert.Equal(t, "SuiteA - login#5/2", first)
	assert.Equal(t, first, second)
}

func TestEngine_ComputeName_RowIndex(t *testing.T) {
	tests := []struct {
		name     string
		row      int
		format   string
		expected string
	}{
		{"row zero", 0, "", "SuiteA - m"},
		{"row two default", 2, "", "SuiteA - m [L0003]"},
		{"row two dash", 2, "-%s", "SuiteA - m-0003"},
		{"no verb", 9, "#", "SuiteA - m#0010"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEngine(nil, WithRowFormat(tt.format))
			d := newDescriptor("SuiteA", "m")
			d.RowIndex = tt.row
			name, err := e.ComputeName(boundCtx(t), d)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, name)
		})
	}
}

func TestEngine_ComputeName_RepeatSuffix(t *testing.T) {
	e := NewEngine(NewRepeatCounter(), WithRepeatFormat("-%s"))
	d := newDescriptor("SuiteA", "testFoo")
	d.Method.InvocationCount = 3

	var names []string
	for i := 0; i < 3; i++ {
		name, err := e.ComputeName(boundCtx(t), d)
		require.NoError(t, err)
		names = append(names, name)
	}

	assert.Equal(t, []string{
		"SuiteA - testFoo-0001",
		"SuiteA - testFoo-0002",
		"SuiteA - testFoo-0003",
	}, names)
	assert.Equal(t, 3, e.Counter().Peek("SuiteA - testFoo"))
}

func TestEngine_ComputeName_RepeatKeyIncludesRow(t *testing.T) {
	e := NewEngine(nil)
	d := newDescriptor("SuiteA", "m")
	d.Method.InvocationCount = 2
	d.RowIndex = 1

	name, err := e.ComputeName(boundCtx(t), d)
	require.NoError(t, err)
	assert.Equal(t, "SuiteA - m [L0002] (InvCount=0001)", name)

	d.RowIndex = 2
	name, err = e.ComputeName(boundCtx(t), d)
	require.NoError(t, err)
	assert.Equal(t, "SuiteA - m [L0003] (InvCount=0001)", name)
}

func TestEngine_ComputeName_SingleInvocationNoSuffix(t *testing.T) {
	e := NewEngine(nil)
	d := newDescriptor("SuiteA", "m")
	d.Method.InvocationCount = 1

	for i := 0; i < 2; i++ {
		name, err := e.ComputeName(boundCtx(t), d)
		require.NoError(t, err)
		assert.Equal(t, "SuiteA - m", name)
	}
	assert.Equal(t, 0, e.Counter().Len())
}

func TestEngine_ComputeName_UniqueID(t *testing.T) {
	params := []any{"x", "TUID:ABC-123", "y", "TUID:LATER"}

	e := NewEngine(nil)
	d := newDescriptor("SuiteA", "m")
	d.Parameters = params
	d.CustomDataProvider = true

	name, err := e.ComputeName(boundCtx(t), d)
	require.NoError(t, err)
	assert.Equal(t, "ABC-123 - SuiteA - m", name)

	d.CustomDataProvider = false
	name, err = e.ComputeName(boundCtx(t), d)
	require.NoError(t, err)
	assert.Equal(t, "SuiteA - m", name)
}

func TestEngine_ComputeName_UniqueIDSkipsNil(t *testing.T) {
	e := NewEngine(nil, WithUIDMarker("UID="))
	d := newDescriptor("SuiteA", "m")
	d.Parameters = []any{nil, 7, "UID=42"}
	d.CustomDataProvider = true

	name, err := e.ComputeName(boundCtx(t), d)
	require.NoError(t, err)
	assert.Equal(t, "42 - SuiteA - m", name)
}

func TestEngine_ComputeName_Override(t *testing.T) {
	overrides := NewOverrideTable()
	overrides.Put([]any{"admin"}, "Admin login")

	e := NewEngine(nil)
	d := newDescriptor("SuiteA", "login")
	d.Suite.Overrides = overrides
	d.Parameters = []any{"admin"}

	name, err := e.ComputeName(boundCtx(t), d)
	require.NoError(t, err)
	assert.Equal(t, "Admin login - login", name)

	d.Parameters = []any{"guest"}
	name, err = e.ComputeName(boundCtx(t), d)
	require.NoError(t, err)
	assert.Equal(t, "SuiteA - login", name)
}

func TestEngine_ComputeName_MissingContext(t *testing.T) {
	e := NewEngine(nil)
	d := &Descriptor{Method: Method{Name: "login"}}

	_, err := e.ComputeName(boundCtx(t), d)
	var missing *MissingContextError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "login", missing.Method)
	assert.ErrorIs(t, err, ErrMissingContext)

	_, err = e.ComputeName(boundCtx(t), nil)
	assert.ErrorIs(t, err, ErrMissingContext)
}

func TestEngine_ComputeName_Unbound(t *testing.T) {
	e := NewEngine(nil)
	d := newDescriptor("SuiteA", "m")
	d.Method.InvocationCount = 2

	_, err := e.ComputeName(context.Background(), d)
	assert.ErrorIs(t, err, ErrUnboundExecution)
	assert.Equal(t, 0, e.Counter().Peek("SuiteA - m"))
}

func TestEngine_Name_NotReady(t *testing.T) {
	e := NewEngine(nil)
	ctx := boundCtx(t)

	_, err := e.Name(ctx)
	assert.ErrorIs(t, err, ErrNameNotReady)

	name, err := e.NameFor(ctx, newDescriptor("SuiteA", "m"))
	require.NoError(t, err)
	assert.Equal(t, "SuiteA - m", name)

	again, err := e.Name(ctx)
	require.NoError(t, err)
	assert.Equal(t, name, again)
}

func TestEngine_NameFor_UsesStored(t *testing.T) {
	e := NewEngine(nil)
	ctx := boundCtx(t)
	d := newDescriptor("SuiteA", "m")
	d.Method.InvocationCount = 5

	first, err := e.NameFor(ctx, d)
	require.NoError(t, err)
	second, err := e.NameFor(ctx, d)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, e.Counter().Peek("SuiteA - m"))
}

func TestEngine_SetName(t *testing.T) {
	e := NewEngine(nil)
	ctx := boundCtx(t)

	name, err := e.SetName(ctx, "manual name")
	require.NoError(t, err)
	assert.Equal(t, "manual name", name)

	got, err := e.NameFor(ctx, newDescriptor("SuiteA", "m"))
	require.NoError(t, err)
	assert.Equal(t, "manual name", got)

	_, err = e.SetName(context.Background(), "x")
	assert.ErrorIs(t, err, ErrUnboundExecution)
}

func TestEngine_SharedCells(t *testing.T) {
	cells := NewCells()
	host := NewEngine(nil, WithCells(cells))
	reader := NewEngine(nil, WithCells(cells))
	ctx := boundCtx(t)

	name, err := host.ComputeName(ctx, newDescriptor("SuiteA", "m"))
	require.NoError(t, err)

	got, err := reader.Name(ctx)
	require.NoError(t, err)
	assert.Equal(t, name, got)
	assert.Same(t, cells, reader.Cells())
}

func TestEngine_WithCellsNil(t *testing.T) {
	e := NewEngine(nil, WithCells(nil))
	require.NotNil(t, e.Cells())

	_, err := e.ComputeName(boundCtx(t), newDescriptor("SuiteA", "m"))
	assert.NoError(t, err)
}

func TestEngine_MethodAndPackageName(t *testing.T) {
	e := NewEngine(nil, WithPatternSource(StaticPattern("{method} ({description})")))
	d := newDescriptor("SuiteA", "login")
	d.Method.Description = "valid user"

	assert.Equal(t, "login (valid user)", e.MethodName(d))
	assert.Equal(t, "com.example.tests", e.PackageName(d))
	assert.Empty(t, e.MethodName(nil))
	assert.Empty(t, e.PackageName(nil))
}

func TestEngine_ConcurrentExecutions(t *testing.T) {
	const n = 64
	e := NewEngine(NewRepeatCounter(), WithRepeatFormat("-%s"))
	d := newDescriptor("SuiteA", "testFoo")
	d.Method.InvocationCount = n

	names := make([]string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ctx, _ := Bind(context.Background())
			computed, err := e.ComputeName(ctx, d)
			if !assert.NoError(t, err) {
				return
			}
			read, err := e.Name(ctx)
			if assert.NoError(t, err) {
				assert.Equal(t, computed, read)
			}
			names[i] = read
		}(i)
	}
	wg.Wait()

	sort.Strings(names)
	for i, name := range names {
		assert.Equal(t, fmt.Sprintf("SuiteA - testFoo-%04d", i+1), name)
	}
}

func TestErrors_Messages(t *testing.T) {
	assert.Contains(t, (&MissingContextError{}).Error(), "no suite context")
	assert.Contains(t, (&MissingContextError{Method: "m"}).Error(), "test m")
	assert.Equal(t, ErrNameNotReady.Error(), (&NameNotReadyError{}).Error())
	assert.Contains(t, (&NameNotReadyError{Execution: "x"}).Error(), "execution x")
}
