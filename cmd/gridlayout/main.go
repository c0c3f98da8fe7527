// Package main provides the entry point for the gridlayout CLI tool.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version is set at build time with -ldflags "-X main.Version=...".
var Version = "dev"

func main() {
	err := newRootCommand().Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "gridlayout",
		Short: "Solve grid layouts of rows and columns",
		Long: `gridlayout computes locations of grid lines and boxes of cells
for grids described in YAML.

Commands:
  solve     Solve grid and print lines and cell boxes
  graph     Print constraint graphs of grid as JSONL`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(newSolveCommand())
	rootCmd.AddCommand(newGraphCommand())
	rootCmd.AddCommand(versionCmd())

	return rootCmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "gridlayout %s\n", Version)
		},
	}
}
