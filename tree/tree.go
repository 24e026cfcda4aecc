// Package tree defines the document tree shared by every dumper and importer.
package tree

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
)

// Tag identifies the kind of a node.
type Tag string

const (
	TagRoot     Tag = "zim-tree"
	TagHeading  Tag = "h"
	TagPara     Tag = "p"
	TagDiv      Tag = "div"
	TagPre      Tag = "pre"
	TagBullets  Tag = "ul"
	TagNumbered Tag = "ol"
	TagItem     Tag = "li"
	TagImage    Tag = "img"
	TagLink     Tag = "link"
	TagEmphasis Tag = "emphasis"
	TagStrong   Tag = "strong"
	TagMark     Tag = "mark"
	TagStrike   Tag = "strike"
	TagCode     Tag = "code"
	TagSub      Tag = "sub"
	TagSup      Tag = "sup"
	TagLabel    Tag = "tag"
)

// Known reports whether t is one of the node kinds a dumper must handle.
// The root tag is not part of the set.
func (t Tag) Known() bool {
	switch t {
	case TagHeading, TagPara, TagDiv, TagPre, TagBullets, TagNumbered, TagItem,
		TagImage, TagLink, TagEmphasis, TagStrong, TagMark, TagStrike, TagCode,
		TagSub, TagSup, TagLabel:
		return true
	default:
		return false
	}
}

// Inline reports whether t is a text-level formatting tag.
func (t Tag) Inline() bool {
	switch t {
	case TagEmphasis, TagStrong, TagMark, TagStrike, TagCode, TagSub, TagSup:
		return true
	default:
		return false
	}
}

// Heading levels outside this range are clamped.
const (
	MinHeadingLevel = 1
	MaxHeadingLevel = 5
)

// MaxIndent bounds the indent attribute of block nodes.
const MaxIndent = 64

// Node is one element of the document tree.
//
// Text is the inline text inside the node before the first child; Tail is
// the text after the node's end and before the next sibling.
type Node struct {
	Tag      Tag               `json:"tag"`
	Attrs    map[string]string `json:"attrs,omitempty"`
	Text     string            `json:"text,omitempty"`
	Tail     string            `json:"tail,omitempty"`
	Children []*Node           `json:"children,omitempty"`
}

// Tree is a parsed document. Partial marks a fragment rather than a full page.
type Tree struct {
	Root    *Node `json:"root"`
	Partial bool  `json:"partial,omitempty"`
}

// New returns an empty complete-document tree.
func New() *Tree {
	return &Tree{Root: &Node{Tag: TagRoot}}
}

// Attr returns the attribute value and whether it was set.
func (n *Node) Attr(key string) (string, bool) {
	if n.Attrs == nil {
		return "", false
	}
	value, ok := n.Attrs[key]
	return value, ok
}

// GetStringAttr returns the attribute value or fallback when unset.
func (n *Node) GetStringAttr(key, fallback string) string {
	if value, ok := n.Attr(key); ok {
		return value
	}
	return fallback
}

// GetIntAttr parses an integer attribute. Values written as floats ("2.0")
// are truncated.
func (n *Node) GetIntAttr(key string, fallback int) (int, error) {
	value, ok := n.Attr(key)
	if !ok || value == "" {
		return fallback, nil
	}
	if i, err := strconv.Atoi(value); err == nil {
		return i, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(f) || f < math.MinInt32 || f > math.MaxInt32 {
		return fallback, fmt.Errorf("attribute %q of <%s>: %w", key, n.Tag, ErrInvalidAttribute)
	}
	return int(f), nil
}

// HeadingLevel returns the clamped level of a heading node.
func (n *Node) HeadingLevel() (int, error) {
	level, err := n.GetIntAttr("level", MinHeadingLevel)
	if err != nil {
		return 0, err
	}
	if level < MinHeadingLevel {
		level = MinHeadingLevel
	}
	if level > MaxHeadingLevel {
		level = MaxHeadingLevel
	}
	return level, nil
}

// Indent returns the indent level of a block node.
func (n *Node) Indent() (int, error) {
	indent, err := n.GetIntAttr("indent", 0)
	if err != nil {
		return 0, err
	}
	if indent < 0 {
		return 0, fmt.Errorf("negative indent %d on <%s>: %w", indent, n.Tag, ErrInvalidAttribute)
	}
	if indent > MaxIndent {
		return 0, fmt.Errorf("indent %d on <%s> exceeds %d: %w", indent, n.Tag, MaxIndent, ErrInvalidAttribute)
	}
	return indent, nil
}

// Bullet returns the bullet kind of a list item, defaulting to a plain bullet.
func (n *Node) Bullet() (Bullet, error) {
	value, ok := n.Attr("bullet")
	if !ok || value == "" {
		return BulletPlain, nil
	}
	bullet := Bullet(value)
	if !bullet.Valid() {
		return "", fmt.Errorf("bullet %q: %w", value, ErrInvalidAttribute)
	}
	return bullet, nil
}

// Append adds children to n and returns n.
func (n *Node) Append(children ...*Node) *Node {
	n.Children = append(n.Children, children...)
	return n
}

// Decode reads a JSON encoded tree.
func Decode(r io.Reader) (*Tree, error) {
	var t Tree
	if err := json.NewDecoder(r).Decode(&t); err != nil {
		return nil, fmt.Errorf("failed to parse tree JSON: %w", err)
	}
	if t.Root == nil {
		return nil, fmt.Errorf("tree JSON has no root")
	}
	if t.Root.Tag == "" {
		t.Root.Tag = TagRoot
	}
	return &t, nil
}
