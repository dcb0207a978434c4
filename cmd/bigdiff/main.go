package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tmsantos/bigdiff/internal/cli"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	rootCmd := &cobra.Command{
		Use:   "bigdiff",
		Short: "Directory tree comparison utility",
		Long: `bigdiff compares two directory trees and materializes every difference
into an output directory: new files, deleted files and subtrees, and
annotated line diffs for modified text files. Unchanged files are omitted.`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Add global flags
	cli.AddGlobalFlags(rootCmd)

	// Add commands
	rootCmd.AddCommand(cli.NewDiffCommand())
	rootCmd.AddCommand(cli.NewConfigCommand())
	rootCmd.AddCommand(cli.NewVersionCommand())

	return rootCmd.Execute()
}
