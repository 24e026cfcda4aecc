// Package textbuf provides the append-only text accumulator used by the dumpers.
package textbuf

import "strings"

// Buffer collects output fragments in order. The zero value is ready to use.
type Buffer struct {
	fragments []string
}

// Append adds fragments to the end of the buffer.
func (b *Buffer) Append(fragments ...string) {
	b.fragments = append(b.fragments, fragments...)
}

// Extend appends all fragments of other.
func (b *Buffer) Extend(other *Buffer) {
	if other == nil {
		return
	}
	b.fragments = append(b.fragments, other.fragments...)
}

// Len returns the number of fragments.
func (b *Buffer) Len() int {
	return len(b.fragments)
}

// PrefixLines inserts prefix at the start of every line of the joined
// content. A line made of several fragments is prefixed once.
func (b *Buffer) PrefixLines(prefix string) {
	lines := b.Lines(false)
	for i, line := range lines {
		lines[i] = prefix + line
	}
	b.fragments = lines
}

// Lines returns the joined content split after each "\n", keeping the
// line terminators.
func (b *Buffer) Lines(ensureNewline bool) []string {
	text := b.join(ensureNewline)
	if text == "" {
		return nil
	}
	return splitLines(text)
}

// String joins all fragments. With ensureNewline the result always ends in
// "\n", even when the buffer is empty.
func (b *Buffer) String(ensureNewline bool) string {
	text := b.join(false)
	if ensureNewline && !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	return text
}

func (b *Buffer) join(ensureNewline bool) string {
	text := strings.Join(b.fragments, "")
	if ensureNewline && text != "" && !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	return text
}

func splitLines(text string) []string {
	lines := strings.SplitAfter(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
