package dumper

import (
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// DocumentType selects the LaTeX sectioning commands.
type DocumentType string

const (
	DocumentReport  DocumentType = "report"
	DocumentArticle DocumentType = "article"
	DocumentBook    DocumentType = "book"
)

// DefaultDocumentType is used when no valid document type is configured.
const DefaultDocumentType = DocumentReport

// Valid reports whether d is a known document type.
func (d DocumentType) Valid() bool {
	switch d {
	case DocumentReport, DocumentArticle, DocumentBook:
		return true
	default:
		return false
	}
}

// Config holds dumper configuration.
type Config struct {
	Linker       Linker       `json:"-" yaml:"-"`
	DocumentType DocumentType `json:"documentType,omitempty" yaml:"document_type,omitempty"`
	IndentUnit   int          `json:"indentUnit,omitempty" yaml:"indent_unit,omitempty"` // HTML points per indent level
	TagClass     string       `json:"tagClass,omitempty" yaml:"tag_class,omitempty"`
	ImageDPI     int          `json:"imageDPI,omitempty" yaml:"image_dpi,omitempty"`
}

func (c Config) applyDefaults() Config {
	if c.IndentUnit == 0 {
		c.IndentUnit = 30
	}
	if c.TagClass == "" {
		c.TagClass = "zim-tag"
	}
	if c.ImageDPI == 0 {
		c.ImageDPI = 96
	}
	return c
}

// Validate checks that config values are valid.
func (c Config) Validate() error {
	if c.DocumentType != "" && !c.DocumentType.Valid() {
		return fmt.Errorf("invalid documentType %q", c.DocumentType)
	}
	if c.IndentUnit < 0 {
		return fmt.Errorf("indentUnit must not be negative, got %d", c.IndentUnit)
	}
	if strings.TrimSpace(c.TagClass) == "" {
		return fmt.Errorf("tagClass must not be blank")
	}
	if c.ImageDPI <= 0 {
		return fmt.Errorf("imageDPI must be positive, got %d", c.ImageDPI)
	}
	return nil
}

// OptionDocumentType is the template option naming the LaTeX document class.
const OptionDocumentType = "document_type"

// DumpOptions carries per-dump template options. Unrecognized keys are ignored.
type DumpOptions struct {
	Template map[string]string `json:"template,omitempty" yaml:"template,omitempty"`
}

// Get returns a template option, or "" when unset.
func (o DumpOptions) Get(key string) string {
	if o.Template == nil {
		return ""
	}
	return o.Template[key]
}

// LoadOptions reads template options from YAML. Both a flat mapping and a
// mapping nested under a "template" key are accepted.
func LoadOptions(r io.Reader) (DumpOptions, error) {
	var raw map[string]any
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		if err == io.EOF {
			return DumpOptions{}, nil
		}
		return DumpOptions{}, fmt.Errorf("failed to parse options YAML: %w", err)
	}

	if nested, ok := raw["template"].(map[string]any); ok {
		raw = nested
	}

	opts := DumpOptions{Template: make(map[string]string, len(raw))}
	for key, value := range raw {
		switch typed := value.(type) {
		case map[string]any, []any:
			return DumpOptions{}, fmt.Errorf("option %q must be a scalar", key)
		case nil:
			opts.Template[key] = ""
		default:
			opts.Template[key] = fmt.Sprint(typed)
		}
	}
	return opts, nil
}
