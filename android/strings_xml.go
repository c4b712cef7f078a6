package android

import (
	"fmt"

	"github.com/frantjc/seed/doctree"
)

const (
	StringsName = "strings.xml"
)

// Strings is a parsed res/values/strings.xml.
type Strings struct {
	*doctree.Document
}

func ParseStrings(b []byte) (*Strings, error) {
	doc, err := doctree.ParseBytes(b)
	if err != nil {
		return nil, named(err, StringsName)
	}

	if root := doc.Root(); root.Name != "resources" {
		return nil, &doctree.ParseError{Name: StringsName, Err: fmt.Errorf("root element is <%s>, not <resources>", root.Name)}
	}

	return &Strings{doc}, nil
}

// Value returns the text of the string resource name.
func (s *Strings) Value(name string) (string, bool) {
	if n := doctree.FindByAttribute(s.Root().ChildList("string"), "name", name); n != nil {
		return n.Text(), true
	}

	return "", false
}

func (s *Strings) UpsertString(name, value string) {
	doctree.UpsertByAttribute(s.Root().ChildList("string"), "name", name, doctree.WithText(value))
}

// ResetString sets an existing string resource to sentinel. It does
// nothing if there is no such resource.
func (s *Strings) ResetString(name, sentinel string) bool {
	return doctree.ResetByAttribute(s.Root().ChildList("string"), "name", name, doctree.WithText(sentinel))
}
