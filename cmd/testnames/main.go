// Command testnames previews and streams test invocation display
// names for suite definition files.
package main

import (
	"fmt"
	"os"

	"digital.vasic.testnames/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.GetExitCode(err))
	}
}
