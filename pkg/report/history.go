package report

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"digital.vasic.testnames/pkg/runner"
)

// HistoricalEntry is one invocation in the historical log.
type HistoricalEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Name      string    `json:"name"`
	Suite     string    `json:"suite"`
	Method    string    `json:"method"`
	Status    string    `json:"status"`
	Duration  string    `json:"duration"`
}

// AppendToHistory appends one JSON line per result to the log at
// historyPath.
func AppendToHistory(
	historyPath string,
	results []*runner.Result,
) error {
	file, err := os.OpenFile(
		historyPath,
		os.O_CREATE|os.O_APPEND|os.O_WRONLY,
		0644,
	)
	if err != nil {
		return fmt.Errorf("failed to open history file: %w", err)
	}
	defer func() { _ = file.Close() }()

	for _, r := range results {
		data, err := json.Marshal(HistoricalEntry{
			Timestamp: r.EndTime,
			Name:      r.DisplayName,
			Suite:     r.Suite,
			Method:    r.Method,
			Status:    r.Status,
			Duration:  r.Duration.String(),
		})
		if err != nil {
			return fmt.Errorf("failed to marshal history entry: %w", err)
		}
		if _, err := fmt.Fprintln(file, string(data)); err != nil {
			return err
		}
	}
	return nil
}
