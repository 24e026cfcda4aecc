package markdown

import (
	"strconv"
	"strings"

	"github.com/yuin/goldmark/ast"
	extast "github.com/yuin/goldmark/extension/ast"

	"github.com/rgonek/notedump/tree"
)

func (s *state) convertList(node *ast.List) error {
	tag := tree.TagBullets
	var attrs map[string]string
	if node.IsOrdered() {
		tag = tree.TagNumbered
		if node.Start != 1 {
			attrs = map[string]string{"start": strconv.Itoa(node.Start)}
		}
	}

	s.builder.Start(tag, attrs)
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		if err := s.checkContext(); err != nil {
			return err
		}
		item, ok := child.(*ast.ListItem)
		if !ok {
			continue
		}
		if err := s.convertListItem(item); err != nil {
			return err
		}
	}
	s.builder.End(tag)
	return nil
}

// convertListItem writes one li holding the item's inline text. Lists
// nested in the item follow it as siblings inside the enclosing list.
func (s *state) convertListItem(item *ast.ListItem) error {
	var attrs map[string]string
	if checked, ok := taskState(item); ok {
		bullet := tree.BulletUnchecked
		if checked {
			bullet = tree.BulletChecked
		}
		attrs = map[string]string{"bullet": string(bullet)}
	}

	wasInItem := s.inItem
	s.inItem = true
	defer func() { s.inItem = wasInItem }()

	s.builder.Start(tree.TagItem, attrs)
	var nested []*ast.List
	first := true
	for child := item.FirstChild(); child != nil; child = child.NextSibling() {
		switch typed := child.(type) {
		case *ast.List:
			nested = append(nested, typed)
		case *ast.Paragraph, *ast.TextBlock:
			if !first {
				s.builder.Data(" ")
			}
			if err := s.convertInlineChildren(typed); err != nil {
				return err
			}
			first = false
		default:
			kind := typed.Kind().String()
			textValue := strings.Join(strings.Fields(nodeText(typed, s.source)), " ")
			s.addWarning(WarningDroppedFeature, kind, "block inside list item flattened to text: "+kind)
			if textValue == "" {
				continue
			}
			if !first {
				s.builder.Data(" ")
			}
			s.builder.Data(textValue)
			first = false
		}
	}
	s.builder.End(tree.TagItem)

	for _, list := range nested {
		if err := s.convertList(list); err != nil {
			return err
		}
	}
	return nil
}

// taskState reports whether item starts with a task checkbox and its state.
func taskState(item *ast.ListItem) (checked bool, ok bool) {
	container := item.FirstChild()
	if container == nil {
		return false, false
	}
	switch container.(type) {
	case *ast.Paragraph, *ast.TextBlock:
	default:
		return false, false
	}
	checkbox, ok := container.FirstChild().(*extast.TaskCheckBox)
	if !ok {
		return false, false
	}
	return checkbox.IsChecked, true
}
