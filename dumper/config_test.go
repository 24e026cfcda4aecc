package dumper

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigDefaults(t *testing.T) {
	cfg := Config{}.applyDefaults()
	assert.Equal(t, 30, cfg.IndentUnit)
	assert.Equal(t, "zim-tag", cfg.TagClass)
	assert.Equal(t, 96, cfg.ImageDPI)
	assert.Empty(t, cfg.DocumentType)
	require.NoError(t, cfg.Validate())
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"document type", Config{DocumentType: "letter"}, "invalid documentType"},
		{"negative indent", Config{IndentUnit: -1}, "indentUnit"},
		{"blank tag class", Config{TagClass: "  "}, "tagClass"},
		{"negative dpi", Config{ImageDPI: -72}, "imageDPI"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(FormatHTML, tt.cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNewUnknownFormat(t *testing.T) {
	_, err := New("rtf", Config{})
	require.Error(t, err)
}

func TestParseFormat(t *testing.T) {
	tests := map[string]Format{
		"html":  FormatHTML,
		"HTM":   FormatHTML,
		"latex": FormatLaTeX,
		" tex ": FormatLaTeX,
		"plain": FormatPlain,
		"txt":   FormatPlain,
		"text":  FormatPlain,
	}
	for name, want := range tests {
		got, err := ParseFormat(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got)
	}

	_, err := ParseFormat("wiki")
	require.Error(t, err)

	assert.Equal(t, ".tex", FormatLaTeX.Extension())
	assert.Equal(t, ".html", FormatHTML.Extension())
	assert.Equal(t, ".txt", FormatPlain.Extension())
}

func TestLoadOptions(t *testing.T) {
	t.Run("flat", func(t *testing.T) {
		opts, err := LoadOptions(strings.NewReader("document_type: article\nauthor: someone\n"))
		require.NoError(t, err)
		assert.Equal(t, "article", opts.Get(OptionDocumentType))
		assert.Equal(t, "someone", opts.Get("author"))
	})

	t.Run("nested", func(t *testing.T) {
		opts, err := LoadOptions(strings.NewReader("template:\n  document_type: book\n  columns: 2\n"))
		require.NoError(t, err)
		assert.Equal(t, "book", opts.Get(OptionDocumentType))
		assert.Equal(t, "2", opts.Get("columns"))
	})

	t.Run("empty", func(t *testing.T) {
		opts, err := LoadOptions(strings.NewReader(""))
		require.NoError(t, err)
		assert.Equal(t, "", opts.Get(OptionDocumentType))
	})

	t.Run("null value", func(t *testing.T) {
		opts, err := LoadOptions(strings.NewReader("document_type:\n"))
		require.NoError(t, err)
		value, ok := opts.Template[OptionDocumentType]
		assert.True(t, ok)
		assert.Equal(t, "", value)
	})

	t.Run("non scalar", func(t *testing.T) {
		_, err := LoadOptions(strings.NewReader("authors:\n  - a\n  - b\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "authors")
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := LoadOptions(strings.NewReader("document_type: [unclosed\n"))
		require.Error(t, err)
	})
}

func TestDumpOptionsOverrideConfig(t *testing.T) {
	d := newTestDumper(t, FormatLaTeX, Config{DocumentType: DocumentBook})
	opts, err := LoadOptions(strings.NewReader("document_type: article\n"))
	require.NoError(t, err)

	result, err := d.DumpWithContext(t.Context(), doc(el("h", "A", "level", "1")), opts)
	require.NoError(t, err)
	assert.Equal(t, "\\section{A}\n", result.Output)
}
