package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"digital.vasic.testnames/pkg/runner"
)

// MarkdownReporter renders results as a Markdown document with one
// table per method.
type MarkdownReporter struct{}

// NewMarkdownReporter creates a Markdown reporter.
func NewMarkdownReporter() *MarkdownReporter {
	return &MarkdownReporter{}
}

// GenerateReport implements Reporter.
func (r *MarkdownReporter) GenerateReport(
	results []*runner.Result,
) ([]byte, error) {
	return []byte(renderMarkdown(BuildSummary(results))), nil
}

// WriteReport writes a Markdown report to the specified writer.
func (r *MarkdownReporter) WriteReport(
	w io.Writer,
	results []*runner.Result,
) error {
	return write(w, r, results)
}

func renderMarkdown(summary *Summary) string {
	var sb strings.Builder

	sb.WriteString("# Test Run Summary\n\n")
	sb.WriteString(fmt.Sprintf("**Summary ID:** %s\n\n", summary.ID))
	sb.WriteString(fmt.Sprintf(
		"**Generated:** %s\n\n",
		summary.GeneratedAt.Format(time.RFC3339),
	))

	for _, m := range summary.Methods {
		sb.WriteString(fmt.Sprintf("## %s - %s\n\n", m.Suite, m.Method))
		sb.WriteString("| Invocation | Status | Duration |\n")
		sb.WriteString("|------------|--------|----------|\n")
		for _, inv := range m.Invocations {
			sb.WriteString(fmt.Sprintf(
				"| %s | %s | %v |\n",
				escapeCell(inv.Name),
				strings.ToUpper(inv.Status),
				inv.Duration,
			))
		}
		sb.WriteString("\n")

		var failures []InvocationSummary
		for _, inv := range m.Invocations {
			if inv.Error != "" {
				failures = append(failures, inv)
			}
		}
		if len(failures) > 0 {
			sb.WriteString("**Errors:**\n\n")
			for _, inv := range failures {
				sb.WriteString(fmt.Sprintf(
					"- `%s`: %s\n", inv.Name, inv.Error,
				))
			}
			sb.WriteString("\n")
		}
	}

	sb.WriteString("## Statistics\n\n")
	sb.WriteString("| Metric | Value |\n")
	sb.WriteString("|--------|-------|\n")
	sb.WriteString(fmt.Sprintf("| Total Invocations | %d |\n", summary.Total))
	sb.WriteString(fmt.Sprintf("| Passed | %d |\n", summary.Passed))
	sb.WriteString(fmt.Sprintf("| Failed | %d |\n", summary.Failed))
	sb.WriteString(fmt.Sprintf("| Skipped | %d |\n", summary.Skipped))
	sb.WriteString(fmt.Sprintf(
		"| Pass Rate | %.0f%% |\n", summary.PassRate*100,
	))
	sb.WriteString(fmt.Sprintf(
		"| Total Duration | %v |\n", summary.TotalDuration,
	))

	return sb.String()
}

// escapeCell keeps pipes in display names from breaking the table.
func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
