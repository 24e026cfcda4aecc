package dumper

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/rgonek/notedump/textbuf"
	"github.com/rgonek/notedump/tree"
)

var plainBullets = map[tree.Bullet]string{
	tree.BulletUnchecked: "[ ]",
	tree.BulletCrossed:   "[x]",
	tree.BulletChecked:   "[*]",
	tree.BulletPlain:     "*",
}

// PlainBullet returns the plain text glyph of a bullet kind.
func PlainBullet(bullet tree.Bullet) string {
	return plainBullets[bullet]
}

// BulletFromPlain maps a plain text glyph back to its bullet kind.
func BulletFromPlain(glyph string) (tree.Bullet, bool) {
	for bullet, g := range plainBullets {
		if g == glyph {
			return bullet, true
		}
	}
	return "", false
}

// PlainDumper renders trees as readable plain text. It renders more
// constructs than the plain text parser recognizes.
type PlainDumper struct {
	config Config
}

// NewPlain creates a plain text dumper. The linker is not used.
func NewPlain(config Config) (*PlainDumper, error) {
	cfg, err := prepareConfig(config)
	if err != nil {
		return nil, err
	}
	return &PlainDumper{config: cfg}, nil
}

// Format returns FormatPlain.
func (d *PlainDumper) Format() Format { return FormatPlain }

// Dump renders t with default options.
func (d *PlainDumper) Dump(t *tree.Tree) (Result, error) {
	return d.DumpWithContext(context.Background(), t, DumpOptions{})
}

// DumpWithContext renders t.
func (d *PlainDumper) DumpWithContext(ctx context.Context, t *tree.Tree, opts DumpOptions) (Result, error) {
	if err := checkTree(t); err != nil {
		return Result{}, err
	}

	s := &plainState{state: newState(ctx, d.config, opts)}
	var out textbuf.Buffer
	if err := s.dumpChildren(t.Root, &out, listContext{level: -1}); err != nil {
		return Result{}, err
	}

	return Result{
		Output:   out.String(!t.Partial),
		Warnings: s.warnings,
	}, nil
}

// listContext is threaded by value through the traversal. level is the
// nesting depth of the enclosing list (-1 outside lists), kind its tag and
// label the marker of the next numbered item.
type listContext struct {
	level int
	kind  tree.Tag
	label string
}

type plainState struct {
	state
}

func (s *plainState) dumpChildren(parent *tree.Node, out *textbuf.Buffer, lc listContext) error {
	if parent.Text != "" {
		out.Append(parent.Text)
	}

	label := lc.label
	for _, element := range parent.Children {
		if err := s.checkContext(); err != nil {
			return err
		}

		switch element.Tag {
		case tree.TagPara, tree.TagDiv:
			indent, err := element.Indent()
			if err != nil {
				return err
			}
			var sub textbuf.Buffer
			if err := s.dumpChildren(element, &sub, listContext{level: -1}); err != nil {
				return err
			}
			if indent > 0 {
				sub.PrefixLines(strings.Repeat("\t", indent))
			}
			out.Extend(&sub)

		case tree.TagHeading:
			if err := s.dumpHeading(element, out); err != nil {
				return err
			}

		case tree.TagBullets, tree.TagNumbered:
			indent, err := element.Indent()
			if err != nil {
				return err
			}
			nested := listContext{level: lc.level + 1, kind: element.Tag}
			if element.Tag == tree.TagNumbered {
				start, err := ParseListStart(element.GetStringAttr("start", ""))
				if err != nil {
					return err
				}
				nested.label = start.Label
			}
			var sub textbuf.Buffer
			if err := s.dumpChildren(element, &sub, nested); err != nil {
				return err
			}
			if indent > 0 {
				sub.PrefixLines(strings.Repeat("\t", indent))
			}
			out.Extend(&sub)

		case tree.TagItem:
			level := lc.level
			if _, ok := element.Attr("indent"); ok {
				// Items taken directly from an editor buffer carry their own depth.
				indent, err := element.Indent()
				if err != nil {
					return err
				}
				level = indent
			}

			var bullet string
			if lc.kind == tree.TagNumbered {
				bullet = label + "."
				next, ok := nextListLabel(label)
				if !ok {
					next = "1"
				}
				label = next
			} else {
				kind, err := element.Bullet()
				if err != nil {
					return err
				}
				bullet = plainBullets[kind]
			}

			out.Append(strings.Repeat("\t", max(level, 0)) + bullet + " ")
			if err := s.dumpChildren(element, out, listContext{level: level}); err != nil {
				return err
			}
			out.Append("\n")

		case tree.TagImage:
			src, err := requireAttr(element, "src")
			if err != nil {
				return err
			}
			if element.Text != "" {
				out.Append(element.Text)
			} else {
				out.Append(src + imageQuery(element))
			}

		case tree.TagLink:
			href, err := requireAttr(element, "href")
			if err != nil {
				return err
			}
			content, err := s.inline(element)
			if err != nil {
				return err
			}
			if content != "" {
				out.Append(content)
			} else {
				out.Append(href)
			}

		case tree.TagPre:
			indent, err := element.Indent()
			if err != nil {
				return err
			}
			var sub textbuf.Buffer
			sub.Append(element.Text)
			if indent > 0 {
				sub.PrefixLines(strings.Repeat("\t", indent))
			}
			out.Extend(&sub)

		case tree.TagEmphasis, tree.TagStrong, tree.TagMark, tree.TagStrike, tree.TagCode,
			tree.TagSub, tree.TagSup, tree.TagLabel:
			content, err := s.inline(element)
			if err != nil {
				return err
			}
			out.Append(content)

		default:
			return unknownTag(element)
		}

		if element.Tail != "" {
			out.Append(element.Tail)
		}
	}
	return nil
}

func (s *plainState) inline(element *tree.Node) (string, error) {
	var sub textbuf.Buffer
	if err := s.dumpChildren(element, &sub, listContext{level: -1}); err != nil {
		return "", err
	}
	return sub.String(false), nil
}

// dumpHeading writes setext style underlines for levels 1 and 2 and atx
// style markers below that.
func (s *plainState) dumpHeading(element *tree.Node, out *textbuf.Buffer) error {
	level, err := element.HeadingLevel()
	if err != nil {
		return err
	}
	heading, err := s.inline(element)
	if err != nil {
		return err
	}

	if level <= 2 {
		char := "="
		if level == 2 {
			char = "-"
		}
		out.Append(heading+"\n", strings.Repeat(char, runewidth.StringWidth(heading)))
		return nil
	}
	out.Append(strings.Repeat("#", level) + " " + heading)
	return nil
}

// imageQuery renders the extra image attributes as a query string. Keys
// starting with an underscore are internal and skipped.
func imageQuery(element *tree.Node) string {
	var opts []string
	for key, value := range element.Attrs {
		if key == "src" || strings.HasPrefix(key, "_") {
			continue
		}
		opts = append(opts, fmt.Sprintf("%s=%s", key, value))
	}
	if len(opts) == 0 {
		return ""
	}
	sort.Strings(opts)
	return "?" + strings.Join(opts, "&")
}
