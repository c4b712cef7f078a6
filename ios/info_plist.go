package ios

import (
	"bytes"
	"fmt"

	"howett.net/plist"
)

// ParseError is returned when a plist cannot be parsed.
type ParseError struct {
	Name string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("parse plist: %v", e.Err)
	}

	return fmt.Sprintf("parse %s: %v", e.Name, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Dict is a plist dictionary.
type Dict map[string]any

// Document is a parsed property list whose root is a dictionary, such
// as an Info.plist or an .entitlements file. Format is the format it
// was read in and is the format it is written back out in.
type Document struct {
	Root   Dict
	Format int
}

// Parse decodes b as a property list in any format howett.net/plist
// understands.
func Parse(b []byte) (*Document, error) {
	root := map[string]any{}

	format, err := plist.Unmarshal(b, &root)
	if err != nil {
		return nil, &ParseError{Err: err}
	}

	return &Document{Root: root, Format: format}, nil
}

// Bytes encodes d in its original format. XML plists are tab-indented
// like Xcode writes them. Dictionary keys are sorted.
func (d *Document) Bytes() ([]byte, error) {
	indent := ""
	if d.Format == plist.XMLFormat || d.Format == plist.OpenStepFormat || d.Format == plist.GNUStepFormat {
		indent = "\t"
	}

	b, err := plist.MarshalIndent(map[string]any(d.Root), d.Format, indent)
	if err != nil {
		return nil, err
	}

	if d.Format != plist.BinaryFormat && !bytes.HasSuffix(b, []byte("\n")) {
		b = append(b, '\n')
	}

	return b, nil
}

func (d *Document) Get(key string) (any, bool) {
	return d.Root.Get(key)
}

func (d *Document) Upsert(key string, value any) {
	d.Root.Upsert(key, value)
}

func (d *Document) Reset(key string, sentinel any) bool {
	return d.Root.Reset(key, sentinel)
}

func (d *Document) Delete(key string) bool {
	return d.Root.Delete(key)
}

func (d *Document) Dict(path ...string) (Dict, error) {
	return d.Root.Dict(path...)
}

func (d *Document) Lookup(path ...string) (Dict, bool) {
	return d.Root.Lookup(path...)
}

func (d Dict) Get(key string) (any, bool) {
	v, ok := d[key]
	return v, ok
}

// Upsert sets key to value.
func (d Dict) Upsert(key string, value any) {
	d[key] = value
}

// Reset sets an existing key to sentinel. It does nothing if the key
// is absent.
func (d Dict) Reset(key string, sentinel any) bool {
	if _, ok := d[key]; !ok {
		return false
	}

	d[key] = sentinel
	return true
}

// Delete removes key. It reports whether the key was present.
func (d Dict) Delete(key string) bool {
	if _, ok := d[key]; !ok {
		return false
	}

	delete(d, key)
	return true
}

// Dict walks path from d, creating any dictionary that is missing, and
// returns the last one. An existing value along path that is not a
// dictionary is an error and is left in place.
func (d Dict) Dict(path ...string) (Dict, error) {
	cur := d
	for i, key := range path {
		switch v := cur[key].(type) {
		case nil:
			next := map[string]any{}
			cur[key] = next
			cur = next
		case map[string]any:
			cur = v
		case Dict:
			cur = v
		default:
			return nil, fmt.Errorf("%v is a %T, not a dictionary", path[:i+1], v)
		}
	}

	return cur, nil
}

// Lookup is Dict without creating anything. It reports false if any
// dictionary along path is missing.
func (d Dict) Lookup(path ...string) (Dict, bool) {
	cur := d
	for _, key := range path {
		switch v := cur[key].(type) {
		case map[string]any:
			cur = v
		case Dict:
			cur = v
		default:
			return nil, false
		}
	}

	return cur, true
}
