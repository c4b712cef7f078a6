package doctree

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Document is a parsed XML file. Nodes holds the top-level nodes in
// order: the XML declaration, comments, directives and the single
// root element.
type Document struct {
	Nodes []*Node
}

// ParseError is returned when a document cannot be parsed. It is
// never recovered from: a project file that does not parse is left
// alone rather than rewritten from a guess.
type ParseError struct {
	Name string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("parse xml: %v", e.Err)
	}

	return fmt.Sprintf("parse %s: %v", e.Name, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Root returns the root element of d.
func (d *Document) Root() *Node {
	for _, n := range d.Nodes {
		if n.Kind == ElementNode {
			return n
		}
	}

	return nil
}

// Clone returns a deep copy of d.
func (d *Document) Clone() *Document {
	c := &Document{}
	for _, n := range d.Nodes {
		c.Nodes = append(c.Nodes, n.Clone())
	}

	return c
}

// ParseBytes is Parse over b.
func ParseBytes(b []byte) (*Document, error) {
	return Parse(bytes.NewReader(b))
}

// Parse reads an XML document from r. Indentation between elements is
// not kept; WriteTo indents instead. Any other text, whitespace
// included, is kept. Namespace prefixes are kept literally, so
// "android:name" stays "android:name".
func Parse(r io.Reader) (*Document, error) {
	var (
		doc   = &Document{}
		dec   = xml.NewDecoder(r)
		stack []*Node
		roots int
	)
	dec.Strict = true

	appendNode := func(n *Node) {
		if len(stack) == 0 {
			doc.Nodes = append(doc.Nodes, n)
			return
		}

		parent := stack[len(stack)-1]
		if n.Kind == TextNode && len(parent.Children) > 0 {
			if prev := parent.Children[len(parent.Children)-1]; prev.Kind == TextNode {
				prev.Data += n.Data
				return
			}
		}
		parent.Children = append(parent.Children, n)
	}

	for {
		tok, err := dec.RawToken()
		if errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			return nil, &ParseError{Err: err}
		}

		switch t := xml.CopyToken(tok).(type) {
		case xml.StartElement:
			if len(stack) == 0 {
				if roots++; roots > 1 {
					return nil, &ParseError{Err: fmt.Errorf("multiple root elements")}
				}
			}

			n := NewElement(qualify(t.Name))
			for _, attr := range t.Attr {
				n.Attrs = append(n.Attrs, Attr{Name: qualify(attr.Name), Value: attr.Value})
			}

			appendNode(n)
			stack = append(stack, n)
		case xml.EndElement:
			if len(stack) == 0 {
				return nil, &ParseError{Err: fmt.Errorf("unexpected end element </%s>", qualify(t.Name))}
			}

			n := stack[len(stack)-1]
			if name := qualify(t.Name); name != n.Name {
				return nil, &ParseError{Err: fmt.Errorf("element <%s> closed by </%s>", n.Name, name)}
			}

			settle(n)
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) == 0 {
				if len(bytes.TrimSpace(t)) > 0 {
					return nil, &ParseError{Err: fmt.Errorf("character data outside of root element")}
				}
				continue
			}

			appendNode(&Node{Kind: TextNode, Data: string(t)})
		case xml.Comment:
			appendNode(&Node{Kind: CommentNode, Data: string(t)})
		case xml.ProcInst:
			appendNode(&Node{Kind: ProcInstNode, Name: t.Target, Data: string(t.Inst)})
		case xml.Directive:
			appendNode(&Node{Kind: DirectiveNode, Data: string(t)})
		}
	}

	if len(stack) > 0 {
		return nil, &ParseError{Err: fmt.Errorf("element <%s> not closed: %w", stack[len(stack)-1].Name, io.ErrUnexpectedEOF)}
	} else if roots == 0 {
		return nil, &ParseError{Err: fmt.Errorf("no root element")}
	}

	return doc, nil
}

func qualify(name xml.Name) string {
	if name.Space == "" {
		return name.Local
	}

	return name.Space + ":" + name.Local
}

// settle decides how n is written back. Whitespace-only text holding a
// newline is indentation and is dropped. Other text makes n mixed
// content, which is kept verbatim, as is an element whose children
// were not indented at all.
func settle(n *Node) {
	var elements, indented, content bool
	for _, c := range n.Children {
		switch {
		case c.Kind != TextNode:
			elements = true
		case strings.TrimSpace(c.Data) != "" || !strings.Contains(c.Data, "\n"):
			content = true
		default:
			indented = true
		}
	}

	if !elements {
		return
	}

	if content || !indented {
		n.Inline = true
		return
	}

	children := n.Children[:0]
	for _, c := range n.Children {
		if c.Kind == TextNode {
			continue
		}
		children = append(children, c)
	}
	n.Children = children
}

const indent = "    "

// Bytes returns the serialized form of d.
func (d *Document) Bytes() []byte {
	buf := new(bytes.Buffer)
	_, _ = d.WriteTo(buf)
	return buf.Bytes()
}

// WriteTo writes d to w. Elements holding only other elements are
// indented one level per depth. Inline elements and elements holding
// text are written on one line exactly as held.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	buf := new(bytes.Buffer)
	for _, n := range d.Nodes {
		writeNode(buf, n, 0)
		buf.WriteByte('\n')
	}

	return buf.WriteTo(w)
}

func writeNode(buf *bytes.Buffer, n *Node, depth int) {
	buf.WriteString(strings.Repeat(indent, depth))

	switch n.Kind {
	case ElementNode:
		writeElement(buf, n, depth)
	default:
		writeInline(buf, n)
	}
}

func writeElement(buf *bytes.Buffer, n *Node, depth int) {
	writeStartTag(buf, n)

	if len(n.Children) == 0 {
		buf.WriteString("/>")
		return
	}

	buf.WriteByte('>')

	if n.Inline || hasText(n) {
		for _, c := range n.Children {
			writeInline(buf, c)
		}
	} else {
		buf.WriteByte('\n')
		for _, c := range n.Children {
			writeNode(buf, c, depth+1)
			buf.WriteByte('\n')
		}
		buf.WriteString(strings.Repeat(indent, depth))
	}

	buf.WriteString("</" + n.Name + ">")
}

func writeStartTag(buf *bytes.Buffer, n *Node) {
	buf.WriteString("<" + n.Name)
	for _, attr := range n.Attrs {
		buf.WriteString(" " + attr.Name + `="` + attrEscaper.Replace(attr.Value) + `"`)
	}
}

func writeInline(buf *bytes.Buffer, n *Node) {
	switch n.Kind {
	case ElementNode:
		writeStartTag(buf, n)
		if len(n.Children) == 0 {
			buf.WriteString("/>")
			return
		}
		buf.WriteByte('>')
		for _, c := range n.Children {
			writeInline(buf, c)
		}
		buf.WriteString("</" + n.Name + ">")
	case TextNode:
		buf.WriteString(textEscaper.Replace(n.Data))
	case CommentNode:
		buf.WriteString("<!--" + n.Data + "-->")
	case ProcInstNode:
		if n.Data == "" {
			buf.WriteString("<?" + n.Name + "?>")
		} else {
			buf.WriteString("<?" + n.Name + " " + n.Data + "?>")
		}
	case DirectiveNode:
		buf.WriteString("<!" + n.Data + ">")
	}
}

func hasText(n *Node) bool {
	for _, c := range n.Children {
		if c.Kind == TextNode {
			return true
		}
	}

	return false
}

var (
	textEscaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		"\r", "&#13;",
	)
	attrEscaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"\n", "&#10;",
		"\r", "&#13;",
		"\t", "&#9;",
	)
)
