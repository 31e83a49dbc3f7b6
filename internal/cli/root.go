// Package cli implements the testnames command tree.
package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "text" | "json" | "markdown"
	Config  string
	EnvFile string
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json", "markdown"}

// NewRootCommand creates the root command for the testnames CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "testnames",
		Short: "Display names for test invocations",
		Long: "testnames computes unique, human-readable display names for " +
			"test invocations, including data rows and repeated runs.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return NewExitError(ExitCommandError, fmt.Sprintf(
					"invalid format %q: must be one of %v",
					opts.Format, ValidFormats,
				))
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (text|json|markdown)")
	cmd.PersistentFlags().StringVarP(&opts.Config, "config", "c", "", "naming configuration file (YAML)")
	cmd.PersistentFlags().StringVar(&opts.EnvFile, "env-file", "", "load TESTNAMES_* overrides from a .env file")

	cmd.AddCommand(NewPreviewCommand(opts))
	cmd.AddCommand(NewServeCommand(opts))

	return cmd
}
