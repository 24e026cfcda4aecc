package dumper

import (
	"io"
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rgonek/notedump/tree"
)

type fakeLinker struct {
	useBase bool
	files   map[string]string
}

func (l *fakeLinker) Link(href string) string {
	if l.useBase && !strings.Contains(href, "://") && !strings.HasPrefix(href, "mailto:") {
		return "https://notes.example/" + href
	}
	return href
}

func (l *fakeLinker) Image(src string) string {
	return "img/" + src
}

func (l *fakeLinker) Icon(bullet tree.Bullet) string {
	return "icons/" + string(bullet) + ".png"
}

func (l *fakeLinker) ResolveFile(path string) (io.ReadCloser, error) {
	content, ok := l.files[path]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return io.NopCloser(strings.NewReader(content)), nil
}

func (l *fakeLinker) SetUseBase(useBase bool) {
	l.useBase = useBase
}

func newTestDumper(t testing.TB, format Format, cfg Config) Dumper {
	t.Helper()

	if cfg.Linker == nil {
		cfg.Linker = &fakeLinker{}
	}
	d, err := New(format, cfg)
	require.NoError(t, err)

	return d
}

func doc(children ...*tree.Node) *tree.Tree {
	t := tree.New()
	t.Root.Append(children...)
	return t
}

func el(tag tree.Tag, text string, attrs ...string) *tree.Node {
	n := &tree.Node{Tag: tag, Text: text}
	for i := 0; i+1 < len(attrs); i += 2 {
		if n.Attrs == nil {
			n.Attrs = map[string]string{}
		}
		n.Attrs[attrs[i]] = attrs[i+1]
	}
	return n
}

func withTail(n *tree.Node, tail string) *tree.Node {
	n.Tail = tail
	return n
}

func dumpString(t testing.TB, d Dumper, tr *tree.Tree) string {
	t.Helper()

	result, err := d.Dump(tr)
	require.NoError(t, err)

	return result.Output
}
