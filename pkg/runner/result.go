package runner

import "time"

// Status constants for invocation outcomes.
const (
	StatusPassed  = "passed"
	StatusFailed  = "failed"
	StatusSkipped = "skipped"
)

// Result captures the outcome of one named invocation.
type Result struct {
	// DisplayName is the computed invocation name.
	DisplayName string `json:"display_name"`

	// Execution identifies the execution context the invocation
	// ran in.
	Execution string `json:"execution"`

	Suite   string `json:"suite"`
	Method  string `json:"method"`
	Package string `json:"package,omitempty"`

	// Row is the zero-based data-row index.
	Row int `json:"row"`

	// Repetition is the 1-based repetition as scheduled by the
	// runner. It may differ from the repeat index in DisplayName,
	// which follows start order.
	Repetition int `json:"repetition"`

	Parameters []any `json:"parameters,omitempty"`

	// Status is one of the Status* constants.
	Status string `json:"status"`

	// Error holds the failure or skip reason.
	Error string `json:"error,omitempty"`

	StartTime time.Time     `json:"start_time"`
	EndTime   time.Time     `json:"end_time"`
	Duration  time.Duration `json:"duration"`
}

// finish stamps the end time and duration.
func (r *Result) finish() {
	r.EndTime = time.Now()
	r.Duration = r.EndTime.Sub(r.StartTime)
}
