package monitor

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCollector_EmitAndStats(t *testing.T) {
	c := NewCollector()
	c.Emit(Event{Type: EventSuiteStarted, Suite: "SuiteA"})
	c.Emit(Event{Type: EventStarted, Name: "SuiteA - a"})
	c.Emit(Event{Type: EventPassed, Name: "SuiteA - a"})
	c.Emit(Event{Type: EventStarted, Name: "SuiteA - b"})
	c.Emit(Event{Type: EventFailed, Name: "SuiteA - b"})
	c.Emit(Event{Type: EventSkipped, Name: "SuiteA - c"})

	stats := c.Stats()
	assert.Equal(t, 2, stats.Started)
	assert.Equal(t, 1, stats.Passed)
	assert.Equal(t, 1, stats.Failed)
	assert.Equal(t, 1, stats.Skipped)
	assert.Equal(t, 3, stats.Finished())

	events := c.Events()
	assert.Len(t, events, 6)
	for _, e := range events {
		assert.False(t, e.Timestamp.IsZero())
	}
}

func TestCollector_KeepsTimestamp(t *testing.T) {
	c := NewCollector()
	ts := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	c.Emit(Event{Type: EventStarted, Timestamp: ts})
	assert.Equal(t, ts, c.Events()[0].Timestamp)
}

func TestCollector_Handlers(t *testing.T) {
	c := NewCollector()
	var (
		mu   sync.Mutex
		seen []string
	)
	c.OnEvent(func(e Event) {
		mu.Lock()
		defer mu.Unlock()
		seen = append(seen, e.Name)
	})

	c.Emit(Event{Type: EventStarted, Name: "x"})
	c.Emit(Event{Type: EventPassed, Name: "x"})

	assert.Equal(t, []string{"x", "x"}, seen)
}

func TestCollector_EventsIsCopy(t *testing.T) {
	c := NewCollector()
	c.Emit(Event{Type: EventStarted, Name: "orig"})
	events := c.Events()
	events[0].Name = "changed"
	assert.Equal(t, "orig", c.Events()[0].Name)
}

func TestCollector_Reset(t *testing.T) {
	c := NewCollector()
	c.Emit(Event{Type: EventPassed})
	c.Reset()
	assert.Empty(t, c.Events())
	assert.Equal(t, 0, c.Stats().Passed)
}
