// Package rnconfig reads and writes react-native.config.js, where
// native packages are excluded from React Native's autolinking.
package rnconfig

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/ohler55/ojg/oj"
	"github.com/ohler55/ojg/sen"
)

const (
	Name = "react-native.config.js"

	exports = "module.exports"
)

// Platform is a React Native platform name as used under
// dependencies.<package>.platforms.
type Platform string

const (
	Android Platform = "android"
	IOS     Platform = "ios"
)

type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", Name, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Config is a parsed react-native.config.js of the form
//
//	<preamble>module.exports = <object>;
//
// Preamble is kept verbatim. Exports is the object, which must be
// expressible as relaxed JSON.
type Config struct {
	Preamble string
	Exports  map[string]any
}

// Parse parses b. An empty b is an empty Config.
func Parse(b []byte) (*Config, error) {
	if len(bytes.TrimSpace(b)) == 0 {
		return &Config{Exports: map[string]any{}}, nil
	}

	i := bytes.Index(b, []byte(exports))
	if i < 0 {
		return nil, &ParseError{Err: fmt.Errorf("no %s", exports)}
	}

	rest := bytes.TrimSpace(b[i+len(exports):])
	if !bytes.HasPrefix(rest, []byte("=")) {
		return nil, &ParseError{Err: fmt.Errorf("%s is not assigned", exports)}
	}

	rest = bytes.TrimSuffix(bytes.TrimSpace(rest[1:]), []byte(";"))

	v, err := sen.Parse(rest)
	if err != nil {
		return nil, &ParseError{Err: err}
	}

	obj, ok := v.(map[string]any)
	if !ok {
		return nil, &ParseError{Err: fmt.Errorf("%s is a %T, not an object", exports, v)}
	}

	return &Config{Preamble: string(b[:i]), Exports: obj}, nil
}

// Bytes serializes c with the object as sorted, 2-space-indented JSON.
func (c *Config) Bytes() []byte {
	return []byte(c.Preamble + exports + " = " + oj.JSON(c.Exports, &oj.Options{Indent: 2, Sort: true, HTMLUnsafe: true}) + ";\n")
}

func object(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok
}

// platforms returns dependencies.<pkg>.platforms, or nil if any part of
// it is missing.
func (c *Config) platforms(pkg string) map[string]any {
	deps, ok := object(c.Exports["dependencies"])
	if !ok {
		return nil
	}

	dep, ok := object(deps[pkg])
	if !ok {
		return nil
	}

	platforms, _ := object(dep["platforms"])
	return platforms
}

// IsUnlinked reports whether pkg is excluded from autolinking on platform.
func (c *Config) IsUnlinked(pkg string, platform Platform) bool {
	v, ok := c.platforms(pkg)[string(platform)]
	return ok && v == nil
}

// Unlinked returns the sorted packages excluded from autolinking on
// platform.
func (c *Config) Unlinked(platform Platform) []string {
	pkgs := []string{}
	if deps, ok := object(c.Exports["dependencies"]); ok {
		for pkg := range deps {
			if c.IsUnlinked(pkg, platform) {
				pkgs = append(pkgs, pkg)
			}
		}
	}
	sort.Strings(pkgs)

	return pkgs
}

// Unlink excludes pkg from autolinking on platform by setting
// dependencies.<pkg>.platforms.<platform> to null, creating objects
// along the way. It is an error for a non-object to be in the way.
func (c *Config) Unlink(pkg string, platform Platform) error {
	cur := c.Exports
	for _, key := range []string{"dependencies", pkg, "platforms"} {
		switch v := cur[key].(type) {
		case nil:
			next := map[string]any{}
			cur[key] = next
			cur = next
		case map[string]any:
			cur = v
		default:
			return fmt.Errorf("%s: %s.%s is a %T, not an object", Name, exports, key, v)
		}
	}

	cur[string(platform)] = nil
	return nil
}

// Link undoes Unlink. The objects along the way are removed only if
// that leaves them empty, so any other configuration of pkg survives.
func (c *Config) Link(pkg string, platform Platform) {
	if !c.IsUnlinked(pkg, platform) {
		return
	}

	platforms := c.platforms(pkg)
	delete(platforms, string(platform))
	if len(platforms) > 0 {
		return
	}

	deps, _ := object(c.Exports["dependencies"])
	dep, _ := object(deps[pkg])
	delete(dep, "platforms")
	if len(dep) > 0 {
		return
	}

	delete(deps, pkg)
	if len(deps) > 0 {
		return
	}

	delete(c.Exports, "dependencies")
}
