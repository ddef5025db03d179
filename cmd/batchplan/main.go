package main

import (
	"context"
	"fmt"
	"os"

	"github.com/apflab/batchplan/internal/cli"
	"github.com/apflab/batchplan/pkg/version"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(cli.ExitCode(err))
	}
}

func run() error {
	root := cli.NewRootCmd(version.GetVersion())
	return root.ExecuteContext(context.Background())
}
