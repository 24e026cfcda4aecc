package linker

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgonek/notedump/dumper"
	"github.com/rgonek/notedump/tree"
)

func newLinker(t *testing.T, cfg Config) *FileLinker {
	t.Helper()

	if cfg.Root == "" {
		cfg.Root = t.TempDir()
	}
	l, err := New(cfg)
	require.NoError(t, err)

	return l
}

func fileURLFor(t *testing.T, parts ...string) string {
	t.Helper()
	return fileURL(filepath.Join(parts...))
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"missing root", Config{}, "root"},
		{"relative base", Config{Root: ".", BaseURL: "notes/"}, "absolute"},
		{"bad extension", Config{Root: ".", PageExtension: "html"}, "pageExtension"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLinkUntouched(t *testing.T) {
	l := newLinker(t, Config{BaseURL: "https://notes.example/"})
	for _, useBase := range []bool{true, false} {
		l.SetUseBase(useBase)
		assert.Equal(t, "http://example.com/a?b=c", l.Link("http://example.com/a?b=c"))
		assert.Equal(t, "mailto:me@example.com", l.Link("mailto:me@example.com"))
		assert.Equal(t, "wp?Go", l.Link("wp?Go"))
		assert.Equal(t, "file:///etc/hosts", l.Link("file:///etc/hosts"))
	}
}

func TestLinkBareEmail(t *testing.T) {
	l := newLinker(t, Config{})
	assert.Equal(t, "mailto:me@example.com", l.Link("me@example.com"))
}

func TestLinkPages(t *testing.T) {
	root := t.TempDir()
	l := newLinker(t, Config{Root: root, BaseURL: "https://notes.example/site"})

	l.SetUseBase(true)
	assert.Equal(t, "https://notes.example/site/Notes/Todo.html", l.Link("Notes:Todo"))
	assert.Equal(t, "https://notes.example/site/Home.html", l.Link(":Home#section"))
	assert.Equal(t, "https://notes.example/site/My%20Page.html", l.Link("My Page"))

	l.SetUseBase(false)
	assert.Equal(t, fileURLFor(t, root, "Notes", "Todo.html"), l.Link("Notes:Todo"))
}

func TestLinkPagesWithoutBase(t *testing.T) {
	root := t.TempDir()
	l := newLinker(t, Config{Root: root, PageExtension: ".txt"})

	l.SetUseBase(true)
	assert.Equal(t, fileURLFor(t, root, "A", "B.txt"), l.Link("A:B"))
}

func TestLinkFiles(t *testing.T) {
	root := t.TempDir()
	l := newLinker(t, Config{Root: root, BaseURL: "https://notes.example/"})

	l.SetUseBase(true)
	assert.Equal(t, "https://notes.example/attachments/report.pdf", l.Link("./attachments/report.pdf"))
	assert.Equal(t, "https://notes.example/data/x.csv", l.Link("/data/x.csv"))

	l.SetUseBase(false)
	assert.Equal(t, fileURLFor(t, root, "attachments", "report.pdf"), l.Link("./attachments/report.pdf"))
	assert.Equal(t, "file:///C:/Users/me/doc.txt", l.Link(`C:\Users\me\doc.txt`))

	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, fileURLFor(t, home, "notes", "a.txt"), l.Link("~/notes/a.txt"))
}

func TestImage(t *testing.T) {
	root := t.TempDir()
	l := newLinker(t, Config{Root: root, BaseURL: "https://notes.example/"})

	l.SetUseBase(true)
	assert.Equal(t, "https://notes.example/pic.png", l.Image("pic.png"))
	assert.Equal(t, "https://cdn.example/pic.png", l.Image("https://cdn.example/pic.png"))

	l.SetUseBase(false)
	assert.Equal(t, fileURLFor(t, root, "img", "pic.png"), l.Image("./img/pic.png"))
}

func TestIcon(t *testing.T) {
	root := t.TempDir()
	l := newLinker(t, Config{Root: root, BaseURL: "https://notes.example/", IconDir: "static/icons"})

	l.SetUseBase(true)
	assert.Equal(t, "https://notes.example/static/icons/checked-box.png", l.Icon(tree.BulletChecked))

	l.SetUseBase(false)
	assert.Equal(t, fileURLFor(t, root, "static", "icons", "unchecked-box.png"), l.Icon(tree.BulletUnchecked))
}

func TestResolveFile(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "eq"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "eq", "one.tex"), []byte("x^2"), 0o644))

	l := newLinker(t, Config{Root: root})

	t.Run("inside root", func(t *testing.T) {
		for _, name := range []string{"eq/one.tex", "./eq/one.tex"} {
			file, err := l.ResolveFile(name)
			require.NoError(t, err)
			data, err := io.ReadAll(file)
			require.NoError(t, err)
			require.NoError(t, file.Close())
			assert.Equal(t, "x^2", string(data))
		}
	})

	t.Run("missing", func(t *testing.T) {
		_, err := l.ResolveFile("eq/two.tex")
		require.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("escaping", func(t *testing.T) {
		for _, name := range []string{"../secret.tex", "/etc/passwd", "eq/../../x.tex"} {
			_, err := l.ResolveFile(name)
			require.ErrorIs(t, err, ErrOutsideRoot, name)
		}
	})
}

func TestLaTeXEquationThroughFileLinker(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "eq.tex"), []byte("a+b\n"), 0o644))

	l := newLinker(t, Config{Root: root, BaseURL: "https://notes.example/"})
	d, err := dumper.NewLaTeX(dumper.Config{Linker: l, DocumentType: dumper.DocumentArticle})
	require.NoError(t, err)

	tr := tree.New()
	tr.Root.Append(
		&tree.Node{Tag: tree.TagImage, Attrs: map[string]string{"src": "eq.png", "type": "equation"}, Tail: "\n"},
		&tree.Node{Tag: tree.TagImage, Attrs: map[string]string{"src": "photo.png"}},
	)

	result, err := d.Dump(tr)
	require.NoError(t, err)
	assert.Empty(t, result.Warnings)
	assert.Equal(t, "\\begin{math}\na+b\n\\end{math}\n\\includegraphics[]{"+filepath.ToSlash(filepath.Join(root, "photo.png"))+"}\n", result.Output)
}

func TestHTMLLinksThroughFileLinker(t *testing.T) {
	l := newLinker(t, Config{BaseURL: "https://notes.example/"})
	d, err := dumper.NewHTML(dumper.Config{Linker: l})
	require.NoError(t, err)

	tr := tree.New()
	tr.Root.Append(&tree.Node{Tag: tree.TagLink, Attrs: map[string]string{"href": "Notes:Todo"}, Text: "todo"})

	result, err := d.Dump(tr)
	require.NoError(t, err)
	assert.Equal(t, `<a href="https://notes.example/Notes/Todo.html" title="todo" class="page">todo</a>`+"\n", result.Output)
}
