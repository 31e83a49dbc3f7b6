package report

import (
	"encoding/json"
	"io"
	"time"

	"digital.vasic.testnames/pkg/runner"
)

// JSONReporter generates JSON reports from invocation results.
type JSONReporter struct {
	pretty bool
}

// NewJSONReporter creates a new JSON reporter. When pretty is
// true, output is indented for readability.
func NewJSONReporter(pretty bool) *JSONReporter {
	return &JSONReporter{pretty: pretty}
}

// jsonSummary is the JSON structure for a run summary.
type jsonSummary struct {
	GeneratedAt   time.Time        `json:"generated_at"`
	Total         int              `json:"total"`
	Passed        int              `json:"passed"`
	Failed        int              `json:"failed"`
	Skipped       int              `json:"skipped"`
	TotalDuration time.Duration    `json:"total_duration"`
	Results       []*runner.Result `json:"results"`
}

// GenerateSummary creates a JSON summary of all invocation results.
func (r *JSONReporter) GenerateSummary(
	results []*runner.Result,
) ([]byte, error) {
	summary := jsonSummary{
		GeneratedAt: time.Now(),
		Total:       len(results),
		Results:     results,
	}
	if summary.Results == nil {
		summary.Results = []*runner.Result{}
	}

	for _, res := range results {
		switch res.Status {
		case runner.StatusPassed:
			summary.Passed++
		case runner.StatusSkipped:
			summary.Skipped++
		default:
			summary.Failed++
		}
		summary.TotalDuration += res.Duration
	}

	if r.pretty {
		return json.MarshalIndent(summary, "", "  ")
	}
	return json.Marshal(summary)
}

// GenerateReport implements Reporter.
func (r *JSONReporter) GenerateReport(
	results []*runner.Result,
) ([]byte, error) {
	return r.GenerateSummary(results)
}

// WriteReport writes a JSON report to the specified writer.
func (r *JSONReporter) WriteReport(
	w io.Writer,
	results []*runner.Result,
) error {
	return write(w, r, results)
}
