package dumper

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	xhtml "golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/text/unicode/bidi"

	"github.com/rgonek/notedump/textbuf"
	"github.com/rgonek/notedump/tree"
)

// inlineHTMLTags maps inline node tags to the HTML element that renders them.
var inlineHTMLTags = map[tree.Tag]atom.Atom{
	tree.TagEmphasis: atom.Em,
	tree.TagStrong:   atom.Strong,
	tree.TagMark:     atom.U,
	tree.TagStrike:   atom.Strike,
	tree.TagCode:     atom.Code,
	tree.TagSub:      atom.Sub,
	tree.TagSup:      atom.Sup,
}

// HTMLDumper renders trees as an HTML fragment.
type HTMLDumper struct {
	config Config
}

// NewHTML creates an HTML dumper.
func NewHTML(config Config) (*HTMLDumper, error) {
	cfg, err := prepareConfig(config)
	if err != nil {
		return nil, err
	}
	return &HTMLDumper{config: cfg}, nil
}

// Format returns FormatHTML.
func (d *HTMLDumper) Format() Format { return FormatHTML }

// Dump renders t with default options.
func (d *HTMLDumper) Dump(t *tree.Tree) (Result, error) {
	return d.DumpWithContext(context.Background(), t, DumpOptions{})
}

// DumpWithContext renders t.
func (d *HTMLDumper) DumpWithContext(ctx context.Context, t *tree.Tree, opts DumpOptions) (Result, error) {
	if err := checkTree(t); err != nil {
		return Result{}, err
	}
	if d.config.Linker == nil {
		return Result{}, fmt.Errorf("html: %w", ErrNoLinker)
	}
	d.config.Linker.SetUseBase(true)

	s := &htmlState{state: newState(ctx, d.config, opts)}
	var out textbuf.Buffer
	if t.Root.Text != "" {
		out.Append(encodeHTMLText(t.Root.Text))
	}
	if err := s.dumpChildren(t.Root, &out, true); err != nil {
		return Result{}, err
	}

	return Result{
		Output:   out.String(!t.Partial),
		Warnings: s.warnings,
	}, nil
}

type htmlState struct {
	state
}

func encodeHTMLText(text string) string {
	return EncodeHTMLWhitespace(EncodeHTML(text))
}

func (s *htmlState) dumpChildren(parent *tree.Node, out *textbuf.Buffer, topLevel bool) error {
	for _, element := range parent.Children {
		if err := s.checkContext(); err != nil {
			return err
		}

		text := EncodeHTML(element.Text)
		if element.Tag != tree.TagPre {
			text = EncodeHTMLWhitespace(text)
		}

		if err := s.dumpElement(element, text, out); err != nil {
			return err
		}

		out.Append(tailText(element, topLevel, encodeHTMLText))
	}
	return nil
}

func (s *htmlState) dumpElement(element *tree.Node, text string, out *textbuf.Buffer) error {
	switch element.Tag {
	case tree.TagHeading:
		level, err := element.HeadingLevel()
		if err != nil {
			return err
		}
		tag := "h" + strconv.Itoa(level)
		out.Append("<", tag, s.dirAttr(element), ">", text)
		if err := s.dumpChildren(element, out, false); err != nil {
			return err
		}
		out.Append("</", tag, ">")

	case tree.TagPara, tree.TagDiv:
		style, err := s.indentStyle(element)
		if err != nil {
			return err
		}
		out.Append("<", string(element.Tag), s.dirAttr(element), style, ">\n", text)
		if err := s.dumpChildren(element, out, false); err != nil {
			return err
		}
		out.Append("</", string(element.Tag), ">\n")

	case tree.TagPre:
		style, err := s.indentStyle(element)
		if err != nil {
			return err
		}
		out.Append("<", atom.Pre.String(), s.dirAttr(element), style, ">\n", text, "</pre>\n")

	case tree.TagBullets, tree.TagNumbered:
		open := string(element.Tag)
		if element.Tag == tree.TagNumbered {
			if value, ok := element.Attr("start"); ok {
				start, err := ParseListStart(value)
				if err != nil {
					return err
				}
				open += fmt.Sprintf(` type="%s" start="%d"`, start.Numbering, start.Offset)
			}
		}
		style, err := s.indentStyle(element)
		if err != nil {
			return err
		}
		out.Append("<", open, style, ">\n", text)
		if err := s.dumpChildren(element, out, false); err != nil {
			return err
		}
		out.Append("</", string(element.Tag), ">\n")

	case tree.TagItem:
		bullet, err := element.Bullet()
		if err != nil {
			return err
		}
		if bullet != tree.BulletPlain {
			icon := s.config.Linker.Icon(bullet)
			out.Append(fmt.Sprintf(`<li style="list-style-image: url(%s)">`, xhtml.EscapeString(icon)), text)
		} else {
			out.Append("<li>", text)
		}
		if err := s.dumpChildren(element, out, false); err != nil {
			return err
		}
		out.Append("</li>\n")

	case tree.TagImage:
		return s.dumpImage(element, text, out)

	case tree.TagLink:
		rawHref, err := requireAttr(element, "href")
		if err != nil {
			return err
		}
		href := s.config.Linker.Link(rawHref)
		out.Append(fmt.Sprintf(`<a href="%s" title="%s" class="%s">`,
			xhtml.EscapeString(href), quoteAttr(text), xhtml.EscapeString(LinkType(rawHref))), text)
		if err := s.dumpChildren(element, out, false); err != nil {
			return err
		}
		out.Append("</a>")

	case tree.TagEmphasis, tree.TagStrong, tree.TagMark, tree.TagStrike, tree.TagCode, tree.TagSub, tree.TagSup:
		tag := inlineHTMLTags[element.Tag].String()
		if class, ok := element.Attr("_class"); ok {
			out.Append("<", tag, fmt.Sprintf(` class="%s">`, xhtml.EscapeString(class)), text)
		} else {
			out.Append("<", tag, ">", text)
		}
		if err := s.dumpChildren(element, out, false); err != nil {
			return err
		}
		out.Append("</", tag, ">")

	case tree.TagLabel:
		out.Append(fmt.Sprintf(`<span class="%s">`, xhtml.EscapeString(s.config.TagClass)), text)
		if err := s.dumpChildren(element, out, false); err != nil {
			return err
		}
		out.Append("</span>")

	default:
		return unknownTag(element)
	}

	return nil
}

func (s *htmlState) dumpImage(element *tree.Node, text string, out *textbuf.Buffer) error {
	rawSrc, err := requireAttr(element, "src")
	if err != nil {
		return err
	}
	src := s.config.Linker.Image(rawSrc)

	var opts string
	for _, key := range []string{"width", "height"} {
		value, ok := element.Attr(key)
		if !ok {
			continue
		}
		size, err := strconv.ParseFloat(value, 64)
		if err != nil || int(size) <= 0 {
			continue
		}
		opts += fmt.Sprintf(` %s="%s"`, key, xhtml.EscapeString(value))
	}

	img := fmt.Sprintf(`<img src="%s" alt="%s"%s>`, xhtml.EscapeString(src), quoteAttr(text), opts)
	if rawHref, ok := element.Attr("href"); ok {
		href := s.config.Linker.Link(rawHref)
		img = fmt.Sprintf(`<a href="%s">%s</a>`, xhtml.EscapeString(href), img)
	}
	out.Append(img)
	return nil
}

// indentStyle returns the padding attribute for an indented block.
func (s *htmlState) indentStyle(element *tree.Node) (string, error) {
	if _, ok := element.Attr("indent"); !ok {
		return "", nil
	}
	level, err := element.Indent()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(" style='padding-left: %dpt'", s.config.IndentUnit*level), nil
}

func (s *htmlState) dirAttr(element *tree.Node) string {
	if isRTL(element) {
		return " dir='rtl'"
	}
	return ""
}

// quoteAttr makes already entity-encoded text safe inside a double quoted
// attribute value.
func quoteAttr(text string) string {
	return strings.ReplaceAll(text, `"`, "&quot;")
}

// isRTL reports whether the first strongly directional character below
// element belongs to a right-to-left script.
func isRTL(element *tree.Node) bool {
	dir, found := baseDirection(element.Text)
	if found {
		return dir
	}
	for _, child := range element.Children {
		if dir, found := baseDirectionNode(child); found {
			return dir
		}
	}
	return false
}

func baseDirectionNode(n *tree.Node) (rtl bool, found bool) {
	if rtl, found = baseDirection(n.Text); found {
		return rtl, true
	}
	for _, child := range n.Children {
		if rtl, found = baseDirectionNode(child); found {
			return rtl, true
		}
	}
	return baseDirection(n.Tail)
}

func baseDirection(text string) (rtl bool, found bool) {
	for i := 0; i < len(text); {
		r, width := utf8.DecodeRuneInString(text[i:])
		if r == utf8.RuneError {
			i += width
			continue
		}
		props, size := bidi.LookupString(text[i:])
		if size == 0 {
			break
		}
		switch props.Class() {
		case bidi.L:
			return false, true
		case bidi.R, bidi.AL:
			return true, true
		}
		i += size
	}
	return false, false
}
