package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rgonek/notedump/dumper"
	"github.com/rgonek/notedump/linker"
)

type dumpFlags struct {
	to           string
	from         string
	output       string
	preset       string
	config       string
	options      string
	documentType string
	root         string
	baseURL      string
	partial      bool
}

func newDumpCmd() *cobra.Command {
	flags := &dumpFlags{}

	cmd := &cobra.Command{
		Use:   "dump <file>",
		Short: "Render a document as HTML, LaTeX or plain text",
		Long: `Render a document as HTML, LaTeX or plain text.

The input format is taken from --from or guessed from the file extension:
.json holds an encoded tree, .md and .markdown are Markdown, anything else
is plain text. Use "-" to read standard input.

Relative links and images resolve against --root, which defaults to the
directory of the input file. HTML output uses --base-url when set.`,
		Example: `  notedump dump page.md --to html --base-url https://notes.example/
  notedump dump page.json --to latex --preset article -o page.tex
  cat page.txt | notedump dump - --to plain`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(cmd, args[0], flags)
		},
	}

	cmd.Flags().StringVarP(&flags.to, "to", "t", "", "Output format: html|latex|plain (default from --output extension, else html)")
	cmd.Flags().StringVarP(&flags.from, "from", "f", "", "Input format: json|markdown|plain (default from file extension)")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Write output to this file instead of stdout")
	cmd.Flags().StringVar(&flags.preset, "preset", presetNotebook, "Settings preset: notebook|article|report|book|compact")
	cmd.Flags().StringVar(&flags.config, "config", "", "YAML file with dumper, linker and markdown settings")
	cmd.Flags().StringVar(&flags.options, "options", "", "YAML file with template options")
	cmd.Flags().StringVar(&flags.documentType, "document-type", "", "LaTeX document type: report|article|book")
	cmd.Flags().StringVar(&flags.root, "root", "", "Notebook root for relative references")
	cmd.Flags().StringVar(&flags.baseURL, "base-url", "", "Base URL for published links")
	cmd.Flags().BoolVar(&flags.partial, "partial", false, "Treat the input as a fragment")

	return cmd
}

func runDump(cmd *cobra.Command, path string, flags *dumpFlags) error {
	format, err := resolveOutputFormat(flags.to, flags.output)
	if err != nil {
		return err
	}
	from, err := resolveInputFormat(flags.from, path)
	if err != nil {
		return err
	}

	cfg, err := loadSettings(flags.preset, flags.config)
	if err != nil {
		return err
	}
	applyDumpFlags(&cfg, flags, path)

	opts, err := loadOptions(flags.options)
	if err != nil {
		return err
	}

	data, err := readInput(cmd, path)
	if err != nil {
		return err
	}
	t, warnings, err := loadTree(cmd.Context(), from, data, cfg.Markdown)
	if err != nil {
		return err
	}

	l, err := linker.New(cfg.Linker)
	if err != nil {
		return fmt.Errorf("invalid linker config: %w", err)
	}
	cfg.Dumper.Linker = l

	d, err := dumper.New(format, cfg.Dumper)
	if err != nil {
		return fmt.Errorf("invalid dumper config: %w", err)
	}
	result, err := d.DumpWithContext(cmd.Context(), t, opts)
	if err != nil {
		return fmt.Errorf("dump failed: %w", err)
	}
	warnings = append(warnings, dumpWarnings(format, result.Warnings)...)

	if flags.output != "" {
		if err := os.WriteFile(flags.output, []byte(result.Output), 0o644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	} else {
		_, _ = fmt.Fprint(cmd.OutOrStdout(), result.Output)
	}

	printWarnings(cmd.ErrOrStderr(), warnings)
	return nil
}

// resolveOutputFormat returns the explicit format, the one implied by the
// output file extension, or HTML.
func resolveOutputFormat(to, output string) (dumper.Format, error) {
	if to != "" {
		return dumper.ParseFormat(to)
	}
	if ext := strings.TrimPrefix(filepath.Ext(output), "."); ext != "" {
		if format, err := dumper.ParseFormat(ext); err == nil {
			return format, nil
		}
	}
	return dumper.FormatHTML, nil
}

// applyDumpFlags lets command line flags override file and preset settings.
func applyDumpFlags(cfg *settings, flags *dumpFlags, path string) {
	if flags.documentType != "" {
		cfg.Dumper.DocumentType = dumper.DocumentType(strings.ToLower(flags.documentType))
	}
	if flags.root != "" {
		cfg.Linker.Root = flags.root
	}
	if cfg.Linker.Root == "" {
		cfg.Linker.Root = "."
		if path != "-" {
			cfg.Linker.Root = filepath.Dir(path)
		}
	}
	if flags.baseURL != "" {
		cfg.Linker.BaseURL = flags.baseURL
	}
	if flags.partial {
		cfg.Markdown.Partial = true
	}
}

func loadOptions(path string) (dumper.DumpOptions, error) {
	if path == "" {
		return dumper.DumpOptions{}, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return dumper.DumpOptions{}, fmt.Errorf("failed to read options: %w", err)
	}
	defer file.Close()

	return dumper.LoadOptions(file)
}
