// Package markdown converts GitHub flavored Markdown into a document tree.
package markdown

import (
	"context"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"

	"github.com/rgonek/notedump/tree"
)

// Converter converts Markdown documents to trees.
type Converter struct {
	config Config
	parser goldmark.Markdown
}

type state struct {
	ctx      context.Context
	config   Config
	source   []byte
	builder  *tree.Builder
	warnings []Warning

	// htmlOpen holds inline HTML elements opened by raw tags; only entries
	// above htmlBase belong to the inline container being converted.
	htmlOpen []tree.Tag
	htmlBase int

	inItem   bool
	trimNext bool
}

// New creates a Converter with the given config.
func New(config Config) (*Converter, error) {
	cfg := config.clone()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Converter{
		config: cfg,
		parser: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
		),
	}, nil
}

// Convert parses markdown and builds a tree.
func (c *Converter) Convert(markdown string) (Result, error) {
	return c.ConvertWithContext(context.Background(), markdown)
}

// ConvertWithContext parses markdown and builds a tree, stopping when ctx is done.
func (c *Converter) ConvertWithContext(ctx context.Context, markdown string) (Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	s := &state{
		ctx:     ctx,
		config:  c.config,
		source:  []byte(markdown),
		builder: tree.NewBuilder(),
	}

	root := c.parser.Parser().Parse(text.NewReader(s.source))
	if err := s.convertBlocks(root, true); err != nil {
		return Result{}, err
	}

	t, err := s.builder.Close()
	if err != nil {
		return Result{}, fmt.Errorf("failed to build tree: %w", err)
	}
	t.Partial = c.config.Partial
	if err := tree.Validate(t); err != nil {
		return Result{}, fmt.Errorf("converted tree is invalid: %w", err)
	}

	return Result{
		Tree:     t,
		Warnings: s.warnings,
	}, nil
}

func (s *state) checkContext() error {
	select {
	case <-s.ctx.Done():
		return s.ctx.Err()
	default:
		return nil
	}
}

func (s *state) addWarning(warnType WarningType, nodeKind, message string) {
	s.warnings = append(s.warnings, Warning{
		Type:     warnType,
		NodeKind: nodeKind,
		Message:  message,
	})
}
