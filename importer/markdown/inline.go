package markdown

import (
	"fmt"
	"strings"

	"github.com/yuin/goldmark/ast"
	extast "github.com/yuin/goldmark/extension/ast"

	"github.com/rgonek/notedump/tree"
)

// convertInlineChildren converts the inline content of parent. Inline HTML
// elements left open when the container ends are closed here.
func (s *state) convertInlineChildren(parent ast.Node) error {
	savedBase := s.htmlBase
	s.htmlBase = len(s.htmlOpen)
	defer func() { s.htmlBase = savedBase }()

	for child := parent.FirstChild(); child != nil; child = child.NextSibling() {
		if err := s.convertInline(child); err != nil {
			return err
		}
	}
	s.closeHTML(s.htmlBase)
	return nil
}

func (s *state) convertInline(node ast.Node) error {
	switch typed := node.(type) {
	case *ast.Text:
		s.data(string(typed.Segment.Value(s.source)))
		if typed.HardLineBreak() {
			s.data(s.lineBreak(true))
		} else if typed.SoftLineBreak() {
			s.data(s.lineBreak(false))
		}
		return nil

	case *ast.String:
		s.data(string(typed.Value))
		return nil

	case *ast.Emphasis:
		tag := tree.TagEmphasis
		if typed.Level >= 2 {
			tag = tree.TagStrong
		}
		return s.wrapInline(tag, nil, typed)

	case *extast.Strikethrough:
		return s.wrapInline(tree.TagStrike, nil, typed)

	case *ast.CodeSpan:
		s.builder.Element(tree.TagCode, nil, nodeText(typed, s.source))
		return nil

	case *ast.Link:
		href := strings.TrimSpace(string(typed.Destination))
		if href == "" {
			return s.convertInlineChildren(typed)
		}
		attrs := map[string]string{"href": href}
		if title := strings.TrimSpace(string(typed.Title)); title != "" {
			attrs["title"] = title
		}
		return s.wrapInline(tree.TagLink, attrs, typed)

	case *ast.AutoLink:
		href := string(typed.URL(s.source))
		if typed.AutoLinkType == ast.AutoLinkEmail && !strings.HasPrefix(href, "mailto:") {
			href = "mailto:" + href
		}
		s.builder.Element(tree.TagLink, map[string]string{"href": href}, string(typed.Label(s.source)))
		return nil

	case *ast.Image:
		src := strings.TrimSpace(string(typed.Destination))
		if src == "" {
			s.addWarning(WarningDroppedFeature, typed.Kind().String(), "image without source dropped")
			return nil
		}
		s.builder.Element(tree.TagImage, map[string]string{"src": src}, nodeText(typed, s.source))
		return nil

	case *ast.RawHTML:
		s.convertRawHTML(typed)
		return nil

	case *extast.TaskCheckBox:
		s.trimNext = true
		return nil

	default:
		if node.HasChildren() {
			return s.convertInlineChildren(node)
		}
		textValue := nodeText(node, s.source)
		if strings.TrimSpace(textValue) == "" {
			return nil
		}
		kind := node.Kind().String()
		s.addWarning(WarningUnknownNode, kind, fmt.Sprintf("unsupported markdown inline node: %s", kind))
		s.data(textValue)
		return nil
	}
}

func (s *state) wrapInline(tag tree.Tag, attrs map[string]string, node ast.Node) error {
	s.builder.Start(tag, attrs)
	if err := s.convertInlineChildren(node); err != nil {
		return err
	}
	s.builder.End(tag)
	return nil
}

// data writes inline text. Leading blanks after a task checkbox are dropped.
func (s *state) data(text string) {
	if s.trimNext {
		text = strings.TrimLeft(text, " \t")
		if text == "" {
			return
		}
		s.trimNext = false
	}
	s.builder.Data(text)
}

// lineBreak returns the text for a line break. List items are single lines
// in the tree, so breaks inside them become spaces.
func (s *state) lineBreak(hard bool) string {
	if s.inItem {
		return " "
	}
	if !hard && s.config.JoinSoftBreaks {
		return " "
	}
	return "\n"
}
