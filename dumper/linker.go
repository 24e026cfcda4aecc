package dumper

import (
	"io"

	"github.com/rgonek/notedump/tree"
)

// Linker resolves references found in the tree into output strings. The
// dumpers never build paths or URLs themselves.
//
// SetUseBase is called at the start of every dump, so a Linker shared by
// dumpers of different formats must not be used concurrently.
type Linker interface {
	// Link resolves a link target.
	Link(href string) string
	// Image resolves an image source.
	Image(src string) string
	// Icon returns the location of the glyph for a checkbox bullet.
	Icon(bullet tree.Bullet) string
	// ResolveFile opens a file referenced relative to the document.
	ResolveFile(path string) (io.ReadCloser, error)
	// SetUseBase switches between base-URL links and local paths.
	SetUseBase(useBase bool)
}
