package main

import (
	"context"
	"fmt"
	"os"

	"github.com/steviee/mcskin/internal/cli"
)

// Version information (set by ldflags during build)
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
	BuiltBy = "unknown"
)

func main() {
	root := cli.NewRootCommand(Version, Commit, Date, BuiltBy)
	if err := root.ExecuteContext(context.Background()); err != nil {
		if !cli.IsJSONOutput() {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
