package runner

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"digital.vasic.testnames/pkg/suite"
)

func noop(context.Context, []any) error { return nil }

func TestRegistry_Register(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register("login", noop))
	require.NoError(t, reg.Register("logout", noop))

	err := reg.Register("login", noop)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")

	assert.Error(t, reg.Register("", noop))
	assert.Error(t, reg.Register("x", nil))

	assert.Equal(t, 2, reg.Count())
	assert.Equal(t, []string{"login", "logout"}, reg.Methods())

	_, ok := reg.Get("login")
	assert.True(t, ok)
	_, ok = reg.Get("missing")
	assert.False(t, ok)

	reg.Clear()
	assert.Equal(t, 0, reg.Count())
}

func TestRegistry_Concurrent(t *testing.T) {
	reg := NewRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = reg.Register("shared", noop)
			_, _ = reg.Get("shared")
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, reg.Count())
}

func TestRunner_WithRegistry(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register("fails", func(context.Context, []any) error {
		return errors.New("from registry")
	}))
	require.NoError(t, reg.Register("overridden", func(context.Context, []any) error {
		return errors.New("from registry")
	}))

	r := newRunner(
		WithTest("overridden", noop),
		WithRegistry(reg),
	)
	s := &suite.Suite{Name: "SuiteA", Methods: []suite.Method{
		method("fails"), method("overridden"),
	}}

	results, err := r.Run(context.Background(), s)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, StatusFailed, results[0].Status)
	assert.Equal(t, "from registry", results[0].Error)
	assert.Equal(t, StatusPassed, results[1].Status)
}
