package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"digital.vasic.testnames/pkg/report"
	"digital.vasic.testnames/pkg/runner"
)

// PreviewOptions holds flags of the preview command.
type PreviewOptions struct {
	ReportDir string
	History   string
}

// NewPreviewCommand creates the preview command.
func NewPreviewCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PreviewOptions{}

	cmd := &cobra.Command{
		Use:   "preview <suite-file>",
		Short: "Print the display names a suite produces",
		Long: `Run a suite dry, without test bodies, and print the display name of
every invocation in scheduling order.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPreview(cmd, rootOpts, opts, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.ReportDir, "report-dir", "", "also save JSON and Markdown summaries into this directory")
	cmd.Flags().StringVar(&opts.History, "history", "", "append one JSON line per invocation to this file")

	return cmd
}

func runPreview(
	cmd *cobra.Command, rootOpts *RootOptions, opts *PreviewOptions, suitePath string,
) error {
	sess, err := newSession(rootOpts, suitePath, cmd.ErrOrStderr(), nil)
	if err != nil {
		return err
	}
	defer func() { _ = sess.logger.Close() }()

	r := runner.NewRunner(sess.engine,
		runner.WithRegistry(runner.Default),
		runner.WithLogger(sess.logger),
	)
	results, err := r.Run(cmd.Context(), sess.suite)
	if err != nil {
		return WrapExitError(ExitFailure, "run failed", err)
	}

	if err := writeResults(cmd.OutOrStdout(), rootOpts.Format, results); err != nil {
		return err
	}
	if err := saveArtifacts(opts.ReportDir, opts.History, results); err != nil {
		return err
	}
	return checkFailures(results)
}

// checkFailures returns an ExitFailure error when any invocation
// failed.
func checkFailures(results []*runner.Result) error {
	failed := 0
	for _, res := range results {
		if res.Status == runner.StatusFailed {
			failed++
		}
	}
	if failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf(
			"%d of %d invocations failed", failed, len(results),
		))
	}
	return nil
}

// writeResults prints results in the requested format.
func writeResults(w io.Writer, format string, results []*runner.Result) error {
	switch format {
	case "json":
		if err := report.NewJSONReporter(true).WriteReport(w, results); err != nil {
			return err
		}
		_, err := fmt.Fprintln(w)
		return err
	case "markdown":
		return report.NewMarkdownReporter().WriteReport(w, results)
	default:
		for _, res := range results {
			if _, err := fmt.Fprintln(w, res.DisplayName); err != nil {
				return err
			}
		}
		return nil
	}
}

func saveArtifacts(reportDir, history string, results []*runner.Result) error {
	if reportDir != "" {
		if err := report.SaveSummary(report.BuildSummary(results), reportDir); err != nil {
			return WrapExitError(ExitCommandError, "failed to save summary", err)
		}
	}
	if history != "" {
		if err := report.AppendToHistory(history, results); err != nil {
			return WrapExitError(ExitCommandError, "failed to append history", err)
		}
	}
	return nil
}
