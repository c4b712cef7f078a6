package doctree

// Field sets part of a node's content during an upsert. Fields only
// touch what they name, so anything else on the node is kept.
type Field func(*Node)

// WithAttr sets the attribute name to value.
func WithAttr(name, value string) Field {
	return func(n *Node) {
		n.SetAttr(name, value)
	}
}

// WithText sets the character data of the node to text.
func WithText(text string) Field {
	return func(n *Node) {
		n.SetText(text)
	}
}

// HasAttr returns a predicate matching elements whose attribute
// key equals value.
func HasAttr(key, value string) func(*Node) bool {
	return func(n *Node) bool {
		v, ok := n.Attr(key)
		return ok && v == value
	}
}

// FindByAttribute returns the first element in l whose attribute key
// equals value, or nil.
func FindByAttribute(l *ChildList, key, value string) *Node {
	return l.Find(HasAttr(key, value))
}

// UpsertByAttribute finds the first element in l whose attribute key
// equals value and applies fields to it. If there is none, a new
// element with key=value and fields applied is appended. Calling it
// again with the same arguments leaves l unchanged.
func UpsertByAttribute(l *ChildList, key, value string, fields ...Field) *Node {
	n := FindByAttribute(l, key, value)
	if n == nil {
		n = NewElement(l.Name(), Attr{Name: key, Value: value})
		l.Append(n)
	}

	for _, field := range fields {
		field(n)
	}

	return n
}

// ResetByAttribute applies fields to the first element in l whose
// attribute key equals value. Unlike UpsertByAttribute it never
// creates an element; it reports whether one was found.
func ResetByAttribute(l *ChildList, key, value string, fields ...Field) bool {
	n := FindByAttribute(l, key, value)
	if n == nil {
		return false
	}

	for _, field := range fields {
		field(n)
	}

	return true
}

// RemoveByAttribute removes the first element in l whose attribute
// key equals value. It is a no-op if there is none.
func RemoveByAttribute(l *ChildList, key, value string) bool {
	return RemoveByPredicate(l, HasAttr(key, value))
}

// RemoveByPredicate removes the first element in l satisfying pred.
// It is a no-op if there is none.
func RemoveByPredicate(l *ChildList, pred func(*Node) bool) bool {
	if n := l.Find(pred); n != nil {
		return l.Remove(n)
	}

	return false
}
