// Package cmd implements the CLI commands for Pygmalion using Cobra.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// version is set at build time with -ldflags "-X .../cmd.version=...".
var version = "dev"

// newRootCmd builds the command tree. Each call returns a fresh tree with
// its own flag state.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "pygmalion",
		Short: "Pygmalion — convert lightweight markup into structured outputs",
		Long: `Pygmalion parses a lightweight markup dialect into a document tree and
renders it as plain text, Markdown, HTML, JSON, ANSI terminal text, PDF, or
retrieval chunks. Web pages can be converted too: their main content is
extracted and normalized into the dialect first.

Usage:
  pygmalion convert [file|url|-] [flags]`,
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.AddCommand(newConvertCmd(), newFormatsCmd(), newVersionCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "pygmalion %s\n", version)
		},
	}
}

// Execute runs the root command.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "✗ Error: %v\n", err)
		os.Exit(1)
	}
}
