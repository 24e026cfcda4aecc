// Package dumper renders document trees as HTML, LaTeX or plain text.
package dumper

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rgonek/notedump/tree"
)

var (
	// ErrNoLinker is returned when a format that resolves references is
	// dumped without a Linker.
	ErrNoLinker = errors.New("dumper needs a linker")
	// ErrNoDelimiter is returned when inline LaTeX code contains every
	// candidate verbatim delimiter.
	ErrNoDelimiter = errors.New("no suitable verbatim delimiter")
)

// Format names an output format.
type Format string

const (
	FormatHTML  Format = "html"
	FormatLaTeX Format = "latex"
	FormatPlain Format = "plain"
)

// ParseFormat returns the format for a name such as "html" or "tex".
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "html", "htm":
		return FormatHTML, nil
	case "latex", "tex":
		return FormatLaTeX, nil
	case "plain", "text", "txt":
		return FormatPlain, nil
	default:
		return "", fmt.Errorf("unknown format %q (allowed: html, latex, plain)", name)
	}
}

// Extension returns the usual file extension for the format.
func (f Format) Extension() string {
	switch f {
	case FormatHTML:
		return ".html"
	case FormatLaTeX:
		return ".tex"
	default:
		return ".txt"
	}
}

// Dumper renders a document tree in one output format.
type Dumper interface {
	Format() Format
	Dump(t *tree.Tree) (Result, error)
	DumpWithContext(ctx context.Context, t *tree.Tree, opts DumpOptions) (Result, error)
}

// New returns the dumper for format.
func New(format Format, config Config) (Dumper, error) {
	switch format {
	case FormatHTML:
		return NewHTML(config)
	case FormatLaTeX:
		return NewLaTeX(config)
	case FormatPlain:
		return NewPlain(config)
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}

func prepareConfig(config Config) (Config, error) {
	cfg := config.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// state is the per-dump bookkeeping shared by all formats.
type state struct {
	ctx      context.Context
	config   Config
	options  DumpOptions
	warnings []Warning
}

func newState(ctx context.Context, config Config, opts DumpOptions) state {
	if ctx == nil {
		ctx = context.Background()
	}
	return state{ctx: ctx, config: config, options: opts}
}

func (s *state) checkContext() error {
	select {
	case <-s.ctx.Done():
		return s.ctx.Err()
	default:
		return nil
	}
}

func (s *state) addWarning(warnType WarningType, tag tree.Tag, message string) {
	s.warnings = append(s.warnings, Warning{
		Type:    warnType,
		NodeTag: string(tag),
		Message: message,
	})
}

func checkTree(t *tree.Tree) error {
	if t == nil || t.Root == nil {
		return errors.New("tree has no root")
	}
	if t.Root.Tag != tree.TagRoot {
		return fmt.Errorf("root <%s>: %w", t.Root.Tag, tree.ErrUnknownTag)
	}
	return nil
}

func unknownTag(n *tree.Node) error {
	return fmt.Errorf("cannot dump <%s>: %w", n.Tag, tree.ErrUnknownTag)
}

// requireAttr returns a required attribute or a missing attribute error.
func requireAttr(n *tree.Node, key string) (string, error) {
	value, ok := n.Attr(key)
	if !ok {
		return "", fmt.Errorf("<%s> without %q: %w", n.Tag, key, tree.ErrMissingAttribute)
	}
	return value, nil
}

// tailText encodes the text following a node. Whitespace between top level
// blocks is kept as is.
func tailText(n *tree.Node, topLevel bool, encode func(string) string) string {
	if n.Tail == "" {
		return ""
	}
	if topLevel && isSpace(n.Tail) {
		return n.Tail
	}
	return encode(n.Tail)
}

// rawText concatenates the text of n and all its descendants.
func rawText(n *tree.Node) string {
	var sb strings.Builder
	sb.WriteString(n.Text)
	for _, child := range n.Children {
		sb.WriteString(rawText(child))
		sb.WriteString(child.Tail)
	}
	return sb.String()
}
