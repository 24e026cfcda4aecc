// Package plain parses plain text into a document tree. Only bare URLs and
// email addresses are recognized; everything else stays raw text.
package plain

import (
	"regexp"
	"strings"

	"github.com/rgonek/notedump/tree"
)

// urlChar is any character allowed inside a bare URL.
const urlChar = `[^\s\[\]<>"]`

var urlRe = regexp.MustCompile(
	`\b\w[\w+\-.]+://` + urlChar + `+[\w/]` +
		`|\bmailto:` + urlChar + `+@` + urlChar + `+[\w/]` +
		`|` + urlChar + `+@` + urlChar + `+\.\w+\b`,
)

// Parse builds a tree from lines. Each line keeps its own terminator.
func Parse(lines []string) (*tree.Tree, error) {
	b := tree.NewBuilder()
	for _, line := range lines {
		parseLine(b, line)
	}
	return b.Close()
}

// ParseString splits text after each newline and parses the result.
func ParseString(text string) (*tree.Tree, error) {
	return Parse(SplitLines(text))
}

// SplitLines splits text into lines that keep their "\n".
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.SplitAfter(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func parseLine(b *tree.Builder, line string) {
	last := 0
	for _, loc := range urlRe.FindAllStringIndex(line, -1) {
		b.Data(line[last:loc[0]])
		match := line[loc[0]:loc[1]]
		b.Element(tree.TagLink, map[string]string{"href": match}, match)
		last = loc[1]
	}
	b.Data(line[last:])
}
