package main

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rgonek/notedump/dumper"
	"github.com/rgonek/notedump/importer/markdown"
	"github.com/rgonek/notedump/linker"
)

const (
	presetNotebook = "notebook"
	presetArticle  = "article"
	presetReport   = "report"
	presetBook     = "book"
	presetCompact  = "compact"
)

// settings groups the configuration of every stage of a dump.
type settings struct {
	Dumper   dumper.Config   `yaml:"dumper"`
	Linker   linker.Config   `yaml:"linker"`
	Markdown markdown.Config `yaml:"markdown"`
}

func presetSettings(preset string) (settings, error) {
	switch strings.ToLower(strings.TrimSpace(preset)) {
	case "", presetNotebook:
		return settings{}, nil
	case presetArticle:
		return settings{
			Dumper:   dumper.Config{DocumentType: dumper.DocumentArticle},
			Markdown: markdown.Config{JoinSoftBreaks: true},
		}, nil
	case presetReport:
		return settings{
			Dumper:   dumper.Config{DocumentType: dumper.DocumentReport},
			Markdown: markdown.Config{JoinSoftBreaks: true},
		}, nil
	case presetBook:
		return settings{
			Dumper:   dumper.Config{DocumentType: dumper.DocumentBook},
			Markdown: markdown.Config{JoinSoftBreaks: true, HeadingOffset: -1},
		}, nil
	case presetCompact:
		return settings{
			Dumper:   dumper.Config{IndentUnit: 15},
			Markdown: markdown.Config{JoinSoftBreaks: true},
		}, nil
	default:
		return settings{}, fmt.Errorf("unknown preset %q (allowed: notebook, article, report, book, compact)", preset)
	}
}

// loadSettings starts from a preset and overlays the YAML file at path.
// Keys missing from the file keep their preset values.
func loadSettings(preset, path string) (settings, error) {
	s, err := presetSettings(preset)
	if err != nil {
		return settings{}, err
	}
	if path == "" {
		return s, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return settings{}, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return settings{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return s, nil
}
