// Package main provides the entry point for the codegauge CLI tool.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gaugeworks/codegauge/cmd/codegauge/commands"
	"github.com/gaugeworks/codegauge/pkg/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "codegauge",
		Short: "Codegauge Code Quality Analysis - multi-language quality analysis tool",
		Long: `Codegauge analyzes source code quality across languages.

Commands:
  analyze   Analyze source files and render a quality report
  validate  Validate a JSON report against the report schema`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Add commands.
	rootCmd.AddCommand(commands.NewAnalyzeCommand())
	rootCmd.AddCommand(commands.NewValidateCommand())
	rootCmd.AddCommand(versionCmd())

	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Fprintf(os.Stdout, "codegauge %s (commit: %s, built: %s)\n", version.Version, version.Commit, version.Date)
		},
	}
}
