// Package monitor collects invocation lifecycle events and streams
// them to live clients over WebSocket.
package monitor

import "time"

// EventType represents the type of invocation event.
type EventType string

const (
	EventSuiteStarted  EventType = "suite_started"
	EventSuiteFinished EventType = "suite_finished"
	EventStarted       EventType = "started"
	EventPassed        EventType = "passed"
	EventFailed        EventType = "failed"
	EventSkipped       EventType = "skipped"
)

// Event represents a lifecycle event of a named invocation.
type Event struct {
	Type      EventType     `json:"type"`
	Execution string        `json:"execution,omitempty"`
	Name      string        `json:"name"`
	Suite     string        `json:"suite,omitempty"`
	Method    string        `json:"method,omitempty"`
	Message   string        `json:"message,omitempty"`
	Duration  time.Duration `json:"duration,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
}

// Stats holds aggregate counts.
type Stats struct {
	Started   int           `json:"started"`
	Passed    int           `json:"passed"`
	Failed    int           `json:"failed"`
	Skipped   int           `json:"skipped"`
	StartTime time.Time     `json:"start_time"`
	Elapsed   time.Duration `json:"elapsed"`
}

// Finished returns the number of invocations that reached an outcome.
func (s Stats) Finished() int {
	return s.Passed + s.Failed + s.Skipped
}
