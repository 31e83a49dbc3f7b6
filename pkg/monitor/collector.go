package monitor

import (
	"sync"
	"time"
)

// Collector captures invocation events and notifies handlers.
type Collector struct {
	mu       sync.RWMutex
	events   []Event
	handlers []func(Event)
	stats    Stats
}

// NewCollector creates a new event collector.
func NewCollector() *Collector {
	return &Collector{
		events: make([]Event, 0, 64),
		stats:  Stats{StartTime: time.Now()},
	}
}

// OnEvent registers a handler to be called for each event.
func (c *Collector) OnEvent(handler func(Event)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handlers = append(c.handlers, handler)
}

// Emit records an event and notifies all handlers outside the lock.
func (c *Collector) Emit(event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	c.mu.Lock()
	c.events = append(c.events, event)
	switch event.Type {
	case EventStarted:
		c.stats.Started++
	case EventPassed:
		c.stats.Passed++
	case EventFailed:
		c.stats.Failed++
	case EventSkipped:
		c.stats.Skipped++
	}
	handlers := make([]func(Event), len(c.handlers))
	copy(handlers, c.handlers)
	c.mu.Unlock()

	for _, h := range handlers {
		h(event)
	}
}

// Events returns a copy of all collected events.
func (c *Collector) Events() []Event {
	c.mu.RLock()
	defer c.mu.RUnlock()
	result := make([]Event, len(c.events))
	copy(result, c.events)
	return result
}

// Stats returns the current aggregate statistics.
func (c *Collector) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s := c.stats
	s.Elapsed = time.Since(s.StartTime)
	return s
}

// Reset clears all collected events and statistics.
func (c *Collector) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = c.events[:0]
	c.stats = Stats{StartTime: time.Now()}
}
