package pfs

import (
	"path/filepath"
	"slices"
	"strings"

	"github.com/goccy/go-json"
)

// Path is a relative path inside the store root, kept as a list of components.
//
// A Path can only be built through NewPath, ParsePath, Join or JSON decoding, all of
// which reject empty components, "." and "..", and components containing a separator.
// Joining a Path to the root therefore never leaves the root.
type Path struct {
	components []string
}

type pathJSON struct {
	Components []string `json:"components"`
}

// RootPath returns the empty path, which denotes the store root.
func RootPath() Path {
	return Path{}
}

// NewPath validates components and returns the path made of them.
func NewPath(components ...string) (Path, error) {
	for _, c := range components {
		if err := validateComponent(c); err != nil {
			return Path{}, err
		}
	}
	return newPath(components), nil
}

// newPath copies components, normalizing empty input to the root path so that
// structurally equal paths are also deeply equal.
func newPath(components []string) Path {
	if len(components) == 0 {
		return Path{}
	}
	return Path{components: slices.Clone(components)}
}

// MustPath is NewPath that panics on invalid input. Meant for constants and tests.
func MustPath(components ...string) Path {
	p, err := NewPath(components...)
	if err != nil {
		panic(err)
	}
	return p
}

// ParsePath converts a native relative path string into a Path.
// The empty string is the root path.
func ParsePath(native string) (Path, error) {
	s := filepath.ToSlash(native)
	s = strings.TrimPrefix(s, "/")
	if s == "" {
		return RootPath(), nil
	}
	return NewPath(strings.Split(s, "/")...)
}

func validateComponent(c string) error {
	switch {
	case c == "":
		return newError(ErrInvalidArgument, "path component", "empty component")
	case c == "." || c == "..":
		return newError(ErrInvalidArgument, "path component", "component cannot be '"+c+"'")
	case strings.ContainsAny(c, `/\`):
		return newError(ErrInvalidArgument, "path component", "separator in component '"+c+"'")
	}
	return nil
}

// Components returns a copy of the path components.
func (p Path) Components() []string {
	return slices.Clone(p.components)
}

// Len returns the number of components.
func (p Path) Len() int {
	return len(p.components)
}

// IsRoot reports whether p is the empty path.
func (p Path) IsRoot() bool {
	return len(p.components) == 0
}

// Basename returns the last component. The root path has none.
func (p Path) Basename() (string, bool) {
	if p.IsRoot() {
		return "", false
	}
	return p.components[len(p.components)-1], true
}

// Parent returns p without its last component. The root path has no parent.
func (p Path) Parent() (Path, bool) {
	if p.IsRoot() {
		return Path{}, false
	}
	return newPath(p.components[:len(p.components)-1]), true
}

// Join returns a new path with component appended.
func (p Path) Join(component string) (Path, error) {
	if err := validateComponent(component); err != nil {
		return Path{}, err
	}
	c := make([]string, 0, len(p.components)+1)
	c = append(c, p.components...)
	c = append(c, component)
	return Path{components: c}, nil
}

// NativePath returns the path in the host's separator form, relative to some base.
func (p Path) NativePath() string {
	return filepath.Join(p.components...)
}

// String returns the slash separated form. It doubles as the cache key.
func (p Path) String() string {
	return strings.Join(p.components, "/")
}

// Equal compares paths component-wise.
func (p Path) Equal(other Path) bool {
	return slices.Equal(p.components, other.components)
}

// Compare orders paths component-wise.
func (p Path) Compare(other Path) int {
	return slices.Compare(p.components, other.components)
}

// MarshalJSON encodes p as {"components": [...]}, with the root as an empty list.
func (p Path) MarshalJSON() ([]byte, error) {
	c := p.components
	if c == nil {
		c = []string{}
	}
	return json.Marshal(pathJSON{Components: c})
}

// UnmarshalJSON decodes {"components": [...]} and rejects invalid components.
func (p *Path) UnmarshalJSON(data []byte) error {
	var raw pathJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return newError(ErrParseFailure, "path", err)
	}
	parsed, err := NewPath(raw.Components...)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
