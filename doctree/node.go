// Package doctree is a small, order-preserving model of XML documents such
// as AndroidManifest.xml and res/values/strings.xml, plus the idempotent
// operations used to patch them.
package doctree

import "strings"

// Kind is the type of a Node.
type Kind int

const (
	ElementNode Kind = iota
	TextNode
	CommentNode
	ProcInstNode
	DirectiveNode
)

// Attr is an attribute of an element. Name is kept qualified
// exactly as written, e.g. "android:name" or "xmlns:tools".
type Attr struct {
	Name  string
	Value string
}

// Node is a single node in a Document. Only ElementNodes have a Name,
// Attrs and Children. Data holds the content of every other kind, and
// the instruction of a ProcInstNode.
//
// Inline elements are written on one line with their children exactly
// as held. Parse sets it for mixed content and for elements that were
// not indented in the source.
type Node struct {
	Kind     Kind
	Name     string
	Attrs    []Attr
	Data     string
	Children []*Node
	Inline   bool
}

// NewElement returns an ElementNode with the given name and attributes.
func NewElement(name string, attrs ...Attr) *Node {
	return &Node{Kind: ElementNode, Name: name, Attrs: attrs}
}

// Attr returns the value of the attribute with the given
// qualified name and whether it was present.
func (n *Node) Attr(name string) (string, bool) {
	if n == nil {
		return "", false
	}

	for _, attr := range n.Attrs {
		if attr.Name == name {
			return attr.Value, true
		}
	}

	return "", false
}

// SetAttr sets the attribute with the given qualified name, replacing
// the first existing occurrence in place or appending a new one.
func (n *Node) SetAttr(name, value string) {
	for i, attr := range n.Attrs {
		if attr.Name == name {
			n.Attrs[i].Value = value
			return
		}
	}

	n.Attrs = append(n.Attrs, Attr{Name: name, Value: value})
}

// DeleteAttr removes the first attribute with the given qualified name.
func (n *Node) DeleteAttr(name string) bool {
	for i, attr := range n.Attrs {
		if attr.Name == name {
			n.Attrs = append(n.Attrs[:i], n.Attrs[i+1:]...)
			return true
		}
	}

	return false
}

// Text returns the concatenated character data directly under n.
func (n *Node) Text() string {
	var sb strings.Builder
	for _, c := range n.Children {
		if c.Kind == TextNode {
			sb.WriteString(c.Data)
		}
	}

	return sb.String()
}

// SetText replaces all character data directly under n with text,
// keeping any element children.
func (n *Node) SetText(text string) {
	children := make([]*Node, 0, len(n.Children)+1)
	for _, c := range n.Children {
		if c.Kind != TextNode {
			children = append(children, c)
		}
	}

	if text != "" {
		children = append([]*Node{{Kind: TextNode, Data: text}}, children...)
	}

	n.Children = children
}

// Child returns the first child element with the given name, or nil.
func (n *Node) Child(name string) *Node {
	for _, c := range n.Children {
		if c.Kind == ElementNode && c.Name == name {
			return c
		}
	}

	return nil
}

// ChildList returns the named child-list slot of n. The slot is a live
// view over n.Children, so it always exists; asking for it never
// modifies n.
func (n *Node) ChildList(name string) *ChildList {
	return &ChildList{parent: n, name: name}
}

// Clone returns a deep copy of n.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}

	c := &Node{
		Kind:   n.Kind,
		Name:   n.Name,
		Data:   n.Data,
		Inline: n.Inline,
	}

	if n.Attrs != nil {
		c.Attrs = append([]Attr{}, n.Attrs...)
	}

	for _, child := range n.Children {
		c.Children = append(c.Children, child.Clone())
	}

	return c
}

// ChildList is the ordered sequence of a parent's child
// elements that share a tag name.
type ChildList struct {
	parent *Node
	name   string
}

// Name is the tag name of the elements in l.
func (l *ChildList) Name() string {
	return l.name
}

// Parent is the element whose children l views.
func (l *ChildList) Parent() *Node {
	return l.parent
}

// Nodes returns the elements in l in document order.
func (l *ChildList) Nodes() []*Node {
	nodes := []*Node{}
	for _, c := range l.parent.Children {
		if c.Kind == ElementNode && c.Name == l.name {
			nodes = append(nodes, c)
		}
	}

	return nodes
}

// Len is the number of elements in l.
func (l *ChildList) Len() int {
	return len(l.Nodes())
}

// Find returns the first element in l satisfying pred, or nil.
func (l *ChildList) Find(pred func(*Node) bool) *Node {
	for _, c := range l.parent.Children {
		if c.Kind == ElementNode && c.Name == l.name && pred(c) {
			return c
		}
	}

	return nil
}

// Append adds an element to l. It is placed directly after the last
// element already in l so that siblings stay grouped, or at the end of
// the parent if l is empty. The element is renamed to l's name.
func (l *ChildList) Append(n *Node) {
	n.Kind = ElementNode
	n.Name = l.name

	last := -1
	for i, c := range l.parent.Children {
		if c.Kind == ElementNode && c.Name == l.name {
			last = i
		}
	}

	if last < 0 {
		l.parent.Children = append(l.parent.Children, n)
		return
	}

	children := make([]*Node, 0, len(l.parent.Children)+1)
	children = append(children, l.parent.Children[:last+1]...)
	children = append(children, n)
	children = append(children, l.parent.Children[last+1:]...)
	l.parent.Children = children
}

// Replace swaps every element in l for nodes. The replacements take
// the place of the first existing element, or go at the end of the
// parent if l is empty.
func (l *ChildList) Replace(nodes ...*Node) {
	var (
		children = make([]*Node, 0, len(l.parent.Children)+len(nodes))
		placed   = false
	)
	for _, c := range l.parent.Children {
		if c.Kind == ElementNode && c.Name == l.name {
			if !placed {
				children = append(children, l.named(nodes)...)
				placed = true
			}
			continue
		}
		children = append(children, c)
	}

	if !placed {
		children = append(children, l.named(nodes)...)
	}

	l.parent.Children = children
}

func (l *ChildList) named(nodes []*Node) []*Node {
	for _, n := range nodes {
		n.Kind = ElementNode
		n.Name = l.name
	}

	return nodes
}

// Remove deletes n from l. It reports whether n was found.
func (l *ChildList) Remove(n *Node) bool {
	for i, c := range l.parent.Children {
		if c == n {
			l.parent.Children = append(l.parent.Children[:i], l.parent.Children[i+1:]...)
			return true
		}
	}

	return false
}
