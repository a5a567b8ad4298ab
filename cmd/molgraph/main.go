package main

import (
	"fmt"
	"os"

	"github.com/rmera/molgraph/internal/cli"
	"github.com/rmera/molgraph/internal/logging"
)

func main() {
	err := cli.NewRootCommand().Execute()
	logging.Default().Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, "molgraph:", err)
		os.Exit(1)
	}
}
