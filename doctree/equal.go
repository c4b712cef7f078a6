package doctree

// Equal reports whether a and b are structurally the same document.
// Attribute order is not significant; everything else is.
func Equal(a, b *Document) bool {
	if a == nil || b == nil {
		return a == b
	}

	return nodesEqual(a.Nodes, b.Nodes)
}

// NodeEqual reports whether a and b are structurally the same node.
func NodeEqual(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}

	if a.Kind != b.Kind || a.Name != b.Name || a.Data != b.Data {
		return false
	}

	if !attrsEqual(a.Attrs, b.Attrs) {
		return false
	}

	return nodesEqual(a.Children, b.Children)
}

func nodesEqual(a, b []*Node) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if !NodeEqual(a[i], b[i]) {
			return false
		}
	}

	return true
}

func attrsEqual(a, b []Attr) bool {
	if len(a) != len(b) {
		return false
	}

	values := make(map[string]string, len(a))
	for _, attr := range a {
		values[attr.Name] = attr.Value
	}

	for _, attr := range b {
		if v, ok := values[attr.Name]; !ok || v != attr.Value {
			return false
		}
	}

	return true
}
