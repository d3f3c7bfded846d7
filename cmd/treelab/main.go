package main

import (
	"fmt"
	"os"

	"github.com/roach88/treelab/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		if msg := err.Error(); msg != "" {
			fmt.Fprintln(os.Stderr, "treelab:", msg)
		}
		os.Exit(cli.GetExitCode(err))
	}
}
