package tree

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownTag is returned for a node whose tag is outside the closed set.
	ErrUnknownTag = errors.New("unknown node tag")
	// ErrMissingAttribute is returned when a required attribute is absent.
	ErrMissingAttribute = errors.New("missing required attribute")
	// ErrInvalidAttribute is returned for attribute values that cannot be interpreted.
	ErrInvalidAttribute = errors.New("invalid attribute value")
)

// requiredAttrs lists the attributes a node kind cannot be rendered without.
var requiredAttrs = map[Tag][]string{
	TagLink:  {"href"},
	TagImage: {"src"},
}

// Validate checks every node below the root and returns the first problem.
func Validate(t *Tree) error {
	if t == nil || t.Root == nil {
		return fmt.Errorf("tree has no root")
	}
	if t.Root.Tag != TagRoot {
		return fmt.Errorf("root <%s>: %w", t.Root.Tag, ErrUnknownTag)
	}
	for _, child := range t.Root.Children {
		if err := ValidateNode(child); err != nil {
			return err
		}
	}
	return nil
}

// ValidateNode checks n and its descendants.
func ValidateNode(n *Node) error {
	if !n.Tag.Known() {
		return fmt.Errorf("<%s>: %w", n.Tag, ErrUnknownTag)
	}
	if err := CheckRequired(n); err != nil {
		return err
	}
	if _, err := n.Indent(); err != nil {
		return err
	}
	switch n.Tag {
	case TagHeading:
		if _, err := n.HeadingLevel(); err != nil {
			return err
		}
	case TagItem:
		if _, err := n.Bullet(); err != nil {
			return err
		}
	}
	for _, child := range n.Children {
		if err := ValidateNode(child); err != nil {
			return err
		}
	}
	return nil
}

// CheckRequired reports a missing required attribute on n.
func CheckRequired(n *Node) error {
	for _, key := range requiredAttrs[n.Tag] {
		if _, ok := n.Attr(key); !ok {
			return fmt.Errorf("<%s> without %q: %w", n.Tag, key, ErrMissingAttribute)
		}
	}
	return nil
}
