// Command spanmerge merges the matches of named rules over a text.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/spanmerge/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "spanmerge:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
