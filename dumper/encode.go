package dumper

import (
	"regexp"
	"strings"
)

var htmlReplacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
)

// EncodeHTML escapes the characters that would otherwise start HTML markup.
func EncodeHTML(text string) string {
	return htmlReplacer.Replace(text)
}

var leadingTabsRe = regexp.MustCompile(`(?m)^\t+`)

// EncodeHTMLWhitespace turns newlines into line breaks and leading tabs into
// four non-breaking spaces each.
func EncodeHTMLWhitespace(text string) string {
	text = strings.ReplaceAll(text, "\n", "<br>\n")
	return leadingTabsRe.ReplaceAllStringFunc(text, func(tabs string) string {
		return strings.Repeat("&nbsp;", 4*len(tabs))
	})
}

var latexReservedRe = regexp.MustCompile(`[\\&$^%#_<>\n]`)

var latexEscapes = map[string]string{
	`\`:  `$\backslash$`,
	"&":  `\$`,
	"$":  `\$ `,
	"^":  `\^{}`,
	"%":  `\%`,
	"#":  `\# `,
	"_":  `\_`,
	">":  `\textgreater{}`,
	"<":  `\textless{}`,
	"\n": "\n\n",
}

// EncodeLaTeX escapes LaTeX special characters in free text. A newline
// becomes a paragraph break.
func EncodeLaTeX(text string) string {
	return latexReservedRe.ReplaceAllStringFunc(text, func(char string) string {
		return latexEscapes[char]
	})
}

// EncodePlain returns text unchanged.
func EncodePlain(text string) string {
	return text
}

func isSpace(text string) bool {
	return text != "" && strings.TrimSpace(text) == ""
}
