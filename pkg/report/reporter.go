// Package report renders invocation results keyed by their display
// names.
package report

import (
	"io"

	"digital.vasic.testnames/pkg/runner"
)

// Reporter defines the interface for generating run reports.
type Reporter interface {
	// GenerateReport renders all results of a run.
	GenerateReport(results []*runner.Result) ([]byte, error)

	// WriteReport writes the rendered report to w.
	WriteReport(w io.Writer, results []*runner.Result) error
}

// write renders results with r and writes them to w.
func write(w io.Writer, r Reporter, results []*runner.Result) error {
	data, err := r.GenerateReport(results)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
