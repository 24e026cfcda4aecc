package plain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgonek/notedump/dumper"
	"github.com/rgonek/notedump/tree"
)

func TestParseRawText(t *testing.T) {
	tr, err := ParseString("= Not a heading =\n* not a list\n")
	require.NoError(t, err)

	assert.Equal(t, tree.TagRoot, tr.Root.Tag)
	assert.False(t, tr.Partial)
	assert.Equal(t, "= Not a heading =\n* not a list\n", tr.Root.Text)
	assert.Empty(t, tr.Root.Children)
}

func TestParseLinks(t *testing.T) {
	tests := []struct {
		name  string
		input string
		links []string
	}{
		{"http", "see http://example.com/page. done\n", []string{"http://example.com/page"}},
		{"trailing slash", "go to https://example.com/docs/ now", []string{"https://example.com/docs/"}},
		{"scheme with plus", "svn+ssh://host/repo", []string{"svn+ssh://host/repo"}},
		{"query", "(https://example.com/?q=a&b=c)", []string{"https://example.com/?q=a&b=c"}},
		{"brackets stop", "[[http://example.org]]", []string{"http://example.org"}},
		{"mailto", "write mailto:you@example.org!", []string{"mailto:you@example.org"}},
		{"email", "mail me@example.com.", []string{"me@example.com"}},
		{"several", "a http://a.example b ftp://b.example/f c", []string{"http://a.example", "ftp://b.example/f"}},
		{"none", "no links here: example.com", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, err := ParseString(tt.input)
			require.NoError(t, err)

			var got []string
			for _, child := range tr.Root.Children {
				require.Equal(t, tree.TagLink, child.Tag)
				href, ok := child.Attr("href")
				require.True(t, ok)
				assert.Equal(t, href, child.Text)
				got = append(got, href)
			}
			assert.Equal(t, tt.links, got)
		})
	}
}

func TestParseTextAndTails(t *testing.T) {
	tr, err := Parse([]string{"see http://example.com/x. ok\n", "next line\n"})
	require.NoError(t, err)

	assert.Equal(t, "see ", tr.Root.Text)
	require.Len(t, tr.Root.Children, 1)
	link := tr.Root.Children[0]
	assert.Equal(t, "http://example.com/x", link.Text)
	assert.Equal(t, ". ok\nnext line\n", link.Tail)
}

func TestParseEmpty(t *testing.T) {
	tr, err := Parse(nil)
	require.NoError(t, err)
	assert.Empty(t, tr.Root.Text)
	assert.Empty(t, tr.Root.Children)
	require.NoError(t, tree.Validate(tr))
}

func TestSplitLines(t *testing.T) {
	assert.Nil(t, SplitLines(""))
	assert.Equal(t, []string{"a\n", "b"}, SplitLines("a\nb"))
	assert.Equal(t, []string{"a\n", "\n"}, SplitLines("a\n\n"))
}

func TestParseThenDumpPlain(t *testing.T) {
	d, err := dumper.NewPlain(dumper.Config{})
	require.NoError(t, err)

	input := "Contact me@example.com\nor visit https://example.com/about.\n\n\tIndented http://x.example/y\n"
	tr, err := ParseString(input)
	require.NoError(t, err)

	result, err := d.Dump(tr)
	require.NoError(t, err)
	assert.Equal(t, input, result.Output)
}

func FuzzParseString(f *testing.F) {
	seeds := []string{
		"",
		"plain text",
		"http://example.com/a?b=c",
		"mailto:a@b.c and x@y.org",
		"[[https://example.com]]\n<http://a.b/>",
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	d, err := dumper.NewPlain(dumper.Config{})
	if err != nil {
		f.Fatalf("failed to create dumper: %v", err)
	}

	f.Fuzz(func(t *testing.T, input string) {
		tr, err := ParseString(input)
		if err != nil {
			t.Fatalf("parse returned error: %v", err)
		}
		if err := tree.Validate(tr); err != nil {
			t.Fatalf("invalid tree: %v", err)
		}

		result, err := d.Dump(tr)
		if err != nil {
			t.Fatalf("dump returned error: %v", err)
		}
		if result.Output != input && result.Output != input+"\n" {
			t.Fatalf("dump changed text: %q -> %q", input, result.Output)
		}
	})
}
