package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

type parseFlags struct {
	from    string
	preset  string
	config  string
	partial bool
}

func newParseCmd() *cobra.Command {
	flags := &parseFlags{}

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Print the document tree of a Markdown or plain text file as JSON",
		Long: `Print the document tree of a Markdown or plain text file as JSON.

The output can be edited and fed back to "notedump dump --from json".`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, args[0], flags)
		},
	}

	cmd.Flags().StringVarP(&flags.from, "from", "f", "", "Input format: json|markdown|plain (default from file extension)")
	cmd.Flags().StringVar(&flags.preset, "preset", presetNotebook, "Settings preset: notebook|article|report|book|compact")
	cmd.Flags().StringVar(&flags.config, "config", "", "YAML file with markdown settings")
	cmd.Flags().BoolVar(&flags.partial, "partial", false, "Mark the tree as a fragment")

	return cmd
}

func runParse(cmd *cobra.Command, path string, flags *parseFlags) error {
	from, err := resolveInputFormat(flags.from, path)
	if err != nil {
		return err
	}
	cfg, err := loadSettings(flags.preset, flags.config)
	if err != nil {
		return err
	}
	if flags.partial {
		cfg.Markdown.Partial = true
	}

	data, err := readInput(cmd, path)
	if err != nil {
		return err
	}
	t, warnings, err := loadTree(cmd.Context(), from, data, cfg.Markdown)
	if err != nil {
		return err
	}

	encoded, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode tree: %w", err)
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(encoded))

	printWarnings(cmd.ErrOrStderr(), warnings)
	return nil
}
