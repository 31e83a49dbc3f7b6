package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"digital.vasic.testnames/pkg/runner"
)

// Summary is an aggregated view of one run, grouped per method.
type Summary struct {
	ID            string          `json:"id"`
	GeneratedAt   time.Time       `json:"generated_at"`
	Methods       []MethodSummary `json:"methods"`
	Total         int             `json:"total"`
	Passed        int             `json:"passed"`
	Failed        int             `json:"failed"`
	Skipped       int             `json:"skipped"`
	TotalDuration time.Duration   `json:"total_duration"`
	PassRate      float64         `json:"pass_rate"`
}

// MethodSummary lists the invocations of one method.
type MethodSummary struct {
	Suite       string              `json:"suite"`
	Method      string              `json:"method"`
	Package     string              `json:"package,omitempty"`
	Invocations []InvocationSummary `json:"invocations"`
	Passed      int                 `json:"passed"`
	Failed      int                 `json:"failed"`
	Skipped     int                 `json:"skipped"`
}

// InvocationSummary is one invocation row.
type InvocationSummary struct {
	Name     string        `json:"name"`
	Status   string        `json:"status"`
	Duration time.Duration `json:"duration"`
	Error    string        `json:"error,omitempty"`
}

// BuildSummary groups results per suite and method, keeping the
// order in which methods first appear.
func BuildSummary(results []*runner.Result) *Summary {
	now := time.Now()
	summary := &Summary{
		ID:          fmt.Sprintf("summary_%s", now.Format("20060102_150405")),
		GeneratedAt: now,
		Methods:     make([]MethodSummary, 0),
	}

	index := make(map[string]int)
	for _, r := range results {
		key := r.Suite + "\x00" + r.Method
		i, ok := index[key]
		if !ok {
			i = len(summary.Methods)
			index[key] = i
			summary.Methods = append(summary.Methods, MethodSummary{
				Suite:   r.Suite,
				Method:  r.Method,
				Package: r.Package,
			})
		}
		ms := &summary.Methods[i]
		ms.Invocations = append(ms.Invocations, InvocationSummary{
			Name:     r.DisplayName,
			Status:   r.Status,
			Duration: r.Duration,
			Error:    r.Error,
		})

		summary.Total++
		summary.TotalDuration += r.Duration
		switch r.Status {
		case runner.StatusPassed:
			ms.Passed++
			summary.Passed++
		case runner.StatusSkipped:
			ms.Skipped++
			summary.Skipped++
		default:
			ms.Failed++
			summary.Failed++
		}
	}

	if summary.Total > 0 {
		summary.PassRate = float64(summary.Passed) / float64(summary.Total)
	}
	return summary
}

// SaveSummary writes the summary as JSON and Markdown into
// outputDir and points latest_summary.{json,md} at them.
func SaveSummary(summary *Summary, outputDir string) error {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	ts := summary.GeneratedAt.Format("20060102_150405")

	jsonPath := filepath.Join(outputDir, fmt.Sprintf("summary_%s.json", ts))
	jsonData, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal summary: %w", err)
	}
	if err := os.WriteFile(jsonPath, jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write JSON summary: %w", err)
	}

	mdPath := filepath.Join(outputDir, fmt.Sprintf("summary_%s.md", ts))
	md := renderMarkdown(summary)
	if err := os.WriteFile(mdPath, []byte(md), 0644); err != nil {
		return fmt.Errorf("failed to write Markdown summary: %w", err)
	}

	latestJSON := filepath.Join(outputDir, "latest_summary.json")
	latestMD := filepath.Join(outputDir, "latest_summary.md")

	_ = os.Remove(latestJSON)
	_ = os.Remove(latestMD)
	_ = os.Symlink(filepath.Base(jsonPath), latestJSON)
	_ = os.Symlink(filepath.Base(mdPath), latestMD)

	return nil
}
