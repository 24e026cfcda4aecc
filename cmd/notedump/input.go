package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rgonek/notedump/importer/markdown"
	"github.com/rgonek/notedump/importer/plain"
	"github.com/rgonek/notedump/tree"
)

const (
	inputJSON     = "json"
	inputMarkdown = "markdown"
	inputPlain    = "plain"
)

// resolveInputFormat returns the explicit format or guesses it from the
// file extension.
func resolveInputFormat(from, path string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(from)) {
	case inputJSON:
		return inputJSON, nil
	case inputMarkdown, "md":
		return inputMarkdown, nil
	case inputPlain, "text", "txt":
		return inputPlain, nil
	case "":
	default:
		return "", fmt.Errorf("unknown input format %q (allowed: json, markdown, plain)", from)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return inputJSON, nil
	case ".md", ".markdown":
		return inputMarkdown, nil
	default:
		return inputPlain, nil
	}
}

func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return data, nil
}

// loadTree builds a document tree from input in the given format.
func loadTree(ctx context.Context, format string, data []byte, cfg markdown.Config) (*tree.Tree, []warningLine, error) {
	switch format {
	case inputJSON:
		t, err := tree.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, nil, err
		}
		if cfg.Partial {
			t.Partial = true
		}
		if err := tree.Validate(t); err != nil {
			return nil, nil, err
		}
		return t, nil, nil
	case inputMarkdown:
		conv, err := markdown.New(cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid markdown config: %w", err)
		}
		result, err := conv.ConvertWithContext(ctx, string(data))
		if err != nil {
			return nil, nil, err
		}
		return result.Tree, markdownWarnings(result.Warnings), nil
	default:
		t, err := plain.ParseString(string(data))
		if err != nil {
			return nil, nil, err
		}
		t.Partial = cfg.Partial
		return t, nil, nil
	}
}
