package naming

import (
	"sync"
	"sync/atomic"
)

// RepeatCounter hands out 1-based repeat indices per base name. It is
// safe for concurrent use; callers on different keys never contend on
// a shared lock. Entries are never removed.
type RepeatCounter struct {
	counters sync.Map // string -> *atomic.Int64
}

// NewRepeatCounter creates an empty RepeatCounter.
func NewRepeatCounter() *RepeatCounter {
	return &RepeatCounter{}
}

// Next increments the counter for base and returns the new value. The
// first call for a key returns 1.
func (c *RepeatCounter) Next(base string) int {
	v, ok := c.counters.Load(base)
	if !ok {
		v, _ = c.counters.LoadOrStore(base, new(atomic.Int64))
	}
	return int(v.(*atomic.Int64).Add(1))
}

// Peek returns the last index handed out for base, or 0.
func (c *RepeatCounter) Peek(base string) int {
	v, ok := c.counters.Load(base)
	if !ok {
		return 0
	}
	return int(v.(*atomic.Int64).Load())
}

// Len returns the number of distinct base names seen.
func (c *RepeatCounter) Len() int {
	n := 0
	c.counters.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}
