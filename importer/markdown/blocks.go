package markdown

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yuin/goldmark/ast"
	extast "github.com/yuin/goldmark/extension/ast"
	xhtml "golang.org/x/net/html"

	"github.com/rgonek/notedump/tree"
)

// convertBlocks converts the block children of parent. Siblings are
// separated by a blank line.
func (s *state) convertBlocks(parent ast.Node, separate bool) error {
	for child := parent.FirstChild(); child != nil; child = child.NextSibling() {
		if err := s.checkContext(); err != nil {
			return err
		}
		if err := s.convertBlock(child); err != nil {
			return err
		}
		if separate && child.NextSibling() != nil {
			s.builder.Data("\n")
		}
	}
	return nil
}

func (s *state) convertBlock(node ast.Node) error {
	switch typed := node.(type) {
	case *ast.Paragraph, *ast.TextBlock:
		return s.convertParagraph(typed)
	case *ast.Heading:
		return s.convertHeading(typed)
	case *ast.FencedCodeBlock:
		language := strings.TrimSpace(string(typed.Language(s.source)))
		if mapped, ok := s.config.LanguageMap[language]; ok {
			language = mapped
		}
		var attrs map[string]string
		if language != "" {
			attrs = map[string]string{"lang": language}
		}
		s.builder.Element(tree.TagPre, attrs, blockLines(typed, s.source))
		return nil
	case *ast.CodeBlock:
		s.builder.Element(tree.TagPre, nil, blockLines(typed, s.source))
		return nil
	case *ast.List:
		return s.convertList(typed)
	case *ast.Blockquote:
		s.builder.Start(tree.TagDiv, map[string]string{"indent": "1"})
		if err := s.convertBlocks(typed, true); err != nil {
			return err
		}
		s.builder.End(tree.TagDiv)
		return nil
	case *ast.ThematicBreak:
		s.addWarning(WarningDroppedFeature, typed.Kind().String(), "horizontal rules are not supported")
		return nil
	case *ast.HTMLBlock:
		return s.convertHTMLBlock(typed)
	case *extast.Table:
		return s.convertTable(typed)
	default:
		kind := node.Kind().String()
		textValue := strings.TrimSpace(nodeText(node, s.source))
		if textValue == "" {
			return nil
		}
		s.addWarning(WarningUnknownNode, kind, fmt.Sprintf("unsupported markdown block node: %s", kind))
		s.builder.Element(tree.TagPara, nil, textValue+"\n")
		return nil
	}
}

func (s *state) convertParagraph(node ast.Node) error {
	s.builder.Start(tree.TagPara, nil)
	if err := s.convertInlineChildren(node); err != nil {
		return err
	}
	s.builder.Data("\n")
	s.builder.End(tree.TagPara)
	return nil
}

func (s *state) convertHeading(node *ast.Heading) error {
	level := node.Level + s.config.HeadingOffset
	if level < tree.MinHeadingLevel {
		level = tree.MinHeadingLevel
	}
	if level > tree.MaxHeadingLevel {
		level = tree.MaxHeadingLevel
	}

	s.builder.Start(tree.TagHeading, map[string]string{"level": strconv.Itoa(level)})
	if err := s.convertInlineChildren(node); err != nil {
		return err
	}
	s.builder.End(tree.TagHeading)
	s.builder.Data("\n")
	return nil
}

// convertHTMLBlock keeps the text of a raw HTML block as a paragraph.
func (s *state) convertHTMLBlock(node *ast.HTMLBlock) error {
	raw := blockLines(node, s.source)
	if node.HasClosure() {
		raw += string(node.ClosureLine.Value(s.source))
	}

	var sb strings.Builder
	tokenizer := xhtml.NewTokenizer(strings.NewReader(raw))
	for {
		tt := tokenizer.Next()
		if tt == xhtml.ErrorToken {
			break
		}
		if tt == xhtml.TextToken {
			sb.Write(tokenizer.Text())
		}
	}

	textValue := strings.TrimSpace(sb.String())
	if textValue == "" {
		return nil
	}
	s.addWarning(WarningDroppedFeature, node.Kind().String(), "html block markup dropped, text kept")
	s.builder.Element(tree.TagPara, nil, textValue+"\n")
	return nil
}

// convertTable flattens every row into a paragraph of cells joined by " | ".
func (s *state) convertTable(node *extast.Table) error {
	s.addWarning(WarningDroppedFeature, node.Kind().String(), "tables are flattened to paragraphs")

	for row := node.FirstChild(); row != nil; row = row.NextSibling() {
		if err := s.checkContext(); err != nil {
			return err
		}
		s.builder.Start(tree.TagPara, nil)
		for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
			if cell != row.FirstChild() {
				s.builder.Data(" | ")
			}
			if err := s.convertInlineChildren(cell); err != nil {
				return err
			}
		}
		s.builder.Data("\n")
		s.builder.End(tree.TagPara)
	}
	return nil
}

// blockLines joins the raw source lines of a block.
func blockLines(node ast.Node, source []byte) string {
	var sb strings.Builder
	lines := node.Lines()
	for i := 0; i < lines.Len(); i++ {
		segment := lines.At(i)
		sb.Write(segment.Value(source))
	}
	return sb.String()
}

// nodeText collects the literal text below node.
func nodeText(node ast.Node, source []byte) string {
	switch typed := node.(type) {
	case *ast.Text:
		return string(typed.Segment.Value(source))
	case *ast.String:
		return string(typed.Value)
	case *ast.AutoLink:
		return string(typed.Label(source))
	}

	if !node.HasChildren() {
		if node.Type() == ast.TypeBlock {
			return blockLines(node, source)
		}
		return ""
	}

	var sb strings.Builder
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		sb.WriteString(nodeText(child, source))
		if text, ok := child.(*ast.Text); ok && (text.SoftLineBreak() || text.HardLineBreak()) {
			sb.WriteString(" ")
		}
	}
	return sb.String()
}
