package markdown

import (
	"fmt"
	"strings"

	"github.com/yuin/goldmark/ast"
	xhtml "golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/rgonek/notedump/tree"
)

// htmlInlineTags maps inline HTML elements to the node they open.
var htmlInlineTags = map[atom.Atom]tree.Tag{
	atom.U:      tree.TagMark,
	atom.Ins:    tree.TagMark,
	atom.Mark:   tree.TagMark,
	atom.Sub:    tree.TagSub,
	atom.Sup:    tree.TagSup,
	atom.S:      tree.TagStrike,
	atom.Strike: tree.TagStrike,
	atom.Del:    tree.TagStrike,
	atom.Em:     tree.TagEmphasis,
	atom.I:      tree.TagEmphasis,
	atom.Strong: tree.TagStrong,
	atom.B:      tree.TagStrong,
	atom.Code:   tree.TagCode,
	atom.Kbd:    tree.TagCode,
}

// convertRawHTML turns inline HTML tags into node starts and ends. Each raw
// HTML node usually holds a single tag.
func (s *state) convertRawHTML(node *ast.RawHTML) {
	var sb strings.Builder
	for i := 0; i < node.Segments.Len(); i++ {
		segment := node.Segments.At(i)
		sb.Write(segment.Value(s.source))
	}

	tokenizer := xhtml.NewTokenizer(strings.NewReader(sb.String()))
	for {
		tt := tokenizer.Next()
		switch tt {
		case xhtml.ErrorToken:
			return
		case xhtml.TextToken:
			s.data(string(tokenizer.Text()))
		case xhtml.StartTagToken, xhtml.SelfClosingTagToken:
			name, _ := tokenizer.TagName()
			element := atom.Lookup(name)
			if element == atom.Br {
				s.data(s.lineBreak(true))
				continue
			}
			tag, ok := htmlInlineTags[element]
			if !ok {
				s.addWarning(WarningDroppedFeature, "RawHTML", fmt.Sprintf("unsupported inline html <%s> dropped", name))
				continue
			}
			if tt == xhtml.SelfClosingTagToken {
				continue
			}
			s.builder.Start(tag, nil)
			s.htmlOpen = append(s.htmlOpen, tag)
		case xhtml.EndTagToken:
			name, _ := tokenizer.TagName()
			tag, ok := htmlInlineTags[atom.Lookup(name)]
			if !ok {
				continue
			}
			top := len(s.htmlOpen) - 1
			if top < s.htmlBase || s.htmlOpen[top] != tag {
				s.addWarning(WarningUnbalancedHTML, "RawHTML", fmt.Sprintf("closing </%s> without matching open tag", name))
				continue
			}
			s.builder.End(tag)
			s.htmlOpen = s.htmlOpen[:top]
		}
	}
}

// closeHTML ends inline HTML elements opened above base.
func (s *state) closeHTML(base int) {
	for len(s.htmlOpen) > base {
		top := len(s.htmlOpen) - 1
		tag := s.htmlOpen[top]
		s.addWarning(WarningUnbalancedHTML, "RawHTML", fmt.Sprintf("unclosed inline html for <%s>", tag))
		s.builder.End(tag)
		s.htmlOpen = s.htmlOpen[:top]
	}
}
