// Package main provides the notedump command line tool.
package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

// Set via ldflags at build time.
var version = "dev"

func main() {
	if err := fang.Execute(context.Background(), newRootCmd(), fang.WithVersion(version)); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notedump",
		Short: "Render note trees as HTML, LaTeX or plain text",
		Long: `notedump converts notebook pages into HTML, LaTeX or plain text.

Input is a JSON encoded tree, a Markdown document or plain text. Plain text
input only recognizes bare URLs.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(newDumpCmd(), newParseCmd())
	return cmd
}
