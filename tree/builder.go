package tree

import "fmt"

// Builder assembles a tree from a stream of start, data and end events.
// Data before the first child of an open node becomes its Text; data after
// a closed child becomes that child's Tail.
type Builder struct {
	root  *Node
	stack []*Node
	err   error
}

// NewBuilder returns a builder with an open root node.
func NewBuilder() *Builder {
	root := &Node{Tag: TagRoot}
	return &Builder{root: root, stack: []*Node{root}}
}

// Start opens a new child of the current node.
func (b *Builder) Start(tag Tag, attrs map[string]string) *Node {
	node := &Node{Tag: tag, Attrs: attrs}
	parent := b.current()
	parent.Children = append(parent.Children, node)
	b.stack = append(b.stack, node)
	return node
}

// Data appends inline text at the current position.
func (b *Builder) Data(text string) {
	if text == "" {
		return
	}
	parent := b.current()
	if len(parent.Children) == 0 {
		parent.Text += text
		return
	}
	last := parent.Children[len(parent.Children)-1]
	last.Tail += text
}

// End closes the current node, which must have the given tag.
func (b *Builder) End(tag Tag) {
	if len(b.stack) <= 1 {
		b.setErr(fmt.Errorf("end <%s> without matching start", tag))
		return
	}
	current := b.current()
	if current.Tag != tag {
		b.setErr(fmt.Errorf("end <%s> while <%s> is open", tag, current.Tag))
		return
	}
	b.stack = b.stack[:len(b.stack)-1]
}

// Element is shorthand for Start, Data and End.
func (b *Builder) Element(tag Tag, attrs map[string]string, text string) {
	b.Start(tag, attrs)
	b.Data(text)
	b.End(tag)
}

// Close finishes the tree. Unclosed nodes are an error.
func (b *Builder) Close() (*Tree, error) {
	if b.err != nil {
		return nil, b.err
	}
	if len(b.stack) != 1 {
		return nil, fmt.Errorf("unclosed <%s>", b.current().Tag)
	}
	return &Tree{Root: b.root}, nil
}

func (b *Builder) current() *Node {
	return b.stack[len(b.stack)-1]
}

func (b *Builder) setErr(err error) {
	if b.err == nil {
		b.err = err
	}
}
