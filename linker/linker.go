// Package linker resolves document references against a notebook directory.
package linker

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/rgonek/notedump/dumper"
	"github.com/rgonek/notedump/tree"
)

// ErrOutsideRoot is returned by ResolveFile for paths that leave the root.
var ErrOutsideRoot = errors.New("path escapes notebook root")

// Config configures a FileLinker.
type Config struct {
	// Root is the notebook directory relative references resolve against.
	Root string `json:"root" yaml:"root"`
	// BaseURL replaces Root for formats that publish links, such as HTML.
	BaseURL string `json:"baseURL,omitempty" yaml:"base_url,omitempty"`
	// IconDir holds the checkbox bullet images.
	IconDir string `json:"iconDir,omitempty" yaml:"icon_dir,omitempty"`
	// PageExtension is appended to page links.
	PageExtension string `json:"pageExtension,omitempty" yaml:"page_extension,omitempty"`
}

func (c Config) applyDefaults() Config {
	if c.IconDir == "" {
		c.IconDir = "icons"
	}
	if c.PageExtension == "" {
		c.PageExtension = ".html"
	}
	return c
}

// Validate checks that config values are valid.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Root) == "" {
		return fmt.Errorf("root must not be empty")
	}
	if c.BaseURL != "" {
		base, err := url.Parse(c.BaseURL)
		if err != nil {
			return fmt.Errorf("invalid baseURL %q: %w", c.BaseURL, err)
		}
		if !base.IsAbs() {
			return fmt.Errorf("baseURL %q must be absolute", c.BaseURL)
		}
	}
	if !strings.HasPrefix(c.PageExtension, ".") {
		return fmt.Errorf("pageExtension must start with a dot, got %q", c.PageExtension)
	}
	return nil
}

// FileLinker implements dumper.Linker for a notebook stored on disk.
type FileLinker struct {
	config  Config
	root    string
	base    *url.URL
	useBase bool
}

var _ dumper.Linker = (*FileLinker)(nil)

// New creates a FileLinker.
func New(config Config) (*FileLinker, error) {
	cfg := config.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	root, err := filepath.Abs(cfg.Root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root %q: %w", cfg.Root, err)
	}

	l := &FileLinker{config: cfg, root: root}
	if cfg.BaseURL != "" {
		base, err := url.Parse(cfg.BaseURL)
		if err != nil {
			return nil, fmt.Errorf("invalid baseURL %q: %w", cfg.BaseURL, err)
		}
		if !strings.HasSuffix(base.Path, "/") {
			base.Path += "/"
		}
		l.base = base
	}
	return l, nil
}

// SetUseBase selects base URL resolution when a base URL is configured.
func (l *FileLinker) SetUseBase(useBase bool) {
	l.useBase = useBase
}

// Link resolves a link target. URLs, mail addresses and interwiki links
// are returned as they are.
func (l *FileLinker) Link(href string) string {
	switch dumper.LinkType(href) {
	case "page":
		return l.resolve(pagePath(href) + l.config.PageExtension)
	case "file":
		return l.file(href)
	case "mailto":
		if !strings.HasPrefix(href, "mailto:") {
			return "mailto:" + href
		}
		return href
	default:
		return href
	}
}

// Image resolves an image source.
func (l *FileLinker) Image(src string) string {
	switch dumper.LinkType(src) {
	case "page", "file":
		return l.file(src)
	default:
		return src
	}
}

// Icon returns the image for a checkbox bullet.
func (l *FileLinker) Icon(bullet tree.Bullet) string {
	return l.resolve(path.Join(filepath.ToSlash(l.config.IconDir), string(bullet)+".png"))
}

// ResolveFile opens path below the root. Paths that are absolute or climb
// out of the root are refused.
func (l *FileLinker) ResolveFile(name string) (io.ReadCloser, error) {
	rel := filepath.FromSlash(strings.TrimPrefix(name, "./"))
	if !filepath.IsLocal(rel) {
		return nil, fmt.Errorf("resolve %q: %w", name, ErrOutsideRoot)
	}

	file, err := os.OpenInRoot(l.root, rel)
	if err != nil {
		return nil, fmt.Errorf("resolve %q: %w", name, err)
	}
	return file, nil
}

func (l *FileLinker) file(href string) string {
	switch {
	case strings.HasPrefix(href, "file:/"):
		return href
	case strings.HasPrefix(href, "~"):
		home, err := os.UserHomeDir()
		if err != nil {
			return href
		}
		return fileURL(filepath.Join(home, strings.TrimPrefix(href[1:], "/")))
	case isWindowsPath(href):
		return "file:///" + strings.ReplaceAll(href, `\`, "/")
	default:
		rel := strings.TrimLeft(strings.ReplaceAll(href, `\`, "/"), "/")
		return l.resolve(rel)
	}
}

// resolve maps a slash separated relative path onto the base URL or the root.
func (l *FileLinker) resolve(rel string) string {
	if l.useBase && l.base != nil {
		return l.base.ResolveReference(&url.URL{Path: rel}).String()
	}
	return fileURL(filepath.Join(l.root, filepath.FromSlash(rel)))
}

func fileURL(p string) string {
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(p)}
	if !strings.HasPrefix(u.Path, "/") {
		u.Path = "/" + u.Path
	}
	return u.String()
}

// pagePath turns a page name such as "Notes:Todo" into "Notes/Todo".
func pagePath(name string) string {
	name = strings.Trim(name, ":")
	if i := strings.IndexByte(name, '#'); i >= 0 {
		name = name[:i]
	}
	return strings.ReplaceAll(name, ":", "/")
}

func isWindowsPath(p string) bool {
	return len(p) >= 3 && p[1] == ':' && (p[2] == '\\' || p[2] == '/') &&
		(('a' <= p[0] && p[0] <= 'z') || ('A' <= p[0] && p[0] <= 'Z'))
}
