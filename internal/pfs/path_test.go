package pfs

import (
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPathJSONRoundTrip(t *testing.T) {
	tests := [][]string{
		{},
		{"file.txt"},
		{"dir1", "dir2", "file.txt"},
		{"with space", "ünïcødé", ".hidden", "..dots", "a.b.c"},
	}

	for _, components := range tests {
		p, err := NewPath(components...)
		require.NoError(t, err)

		data, err := json.Marshal(p)
		require.NoError(t, err)

		var decoded Path
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.True(t, p.Equal(decoded), "round trip of %v", components)
		assert.Equal(t, p, decoded)
	}
}

func TestPathJSONShape(t *testing.T) {
	p := MustPath("dir1", "dir2", "file.txt")
	data, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"components":["dir1","dir2","file.txt"]}`, string(data))

	data, err = json.Marshal(RootPath())
	require.NoError(t, err)
	assert.JSONEq(t, `{"components":[]}`, string(data))
}

func TestPathRejectsInvalidComponents(t *testing.T) {
	tests := []struct {
		name       string
		components []string
	}{
		{"dot", []string{"."}},
		{"dotdot", []string{".."}},
		{"dotdot first", []string{"..", "etc", "passwd"}},
		{"dotdot middle", []string{"a", "..", "b"}},
		{"dot last", []string{"a", "b", "."}},
		{"empty", []string{"a", ""}},
		{"slash", []string{"a/b"}},
		{"backslash", []string{`a\b`}},
		{"absolute", []string{"/etc"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPath(tt.components...)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidArgument)
		})
	}
}

func TestPathUnmarshalRejectsTraversal(t *testing.T) {
	for _, raw := range []string{
		`{"components":[".."]}`,
		`{"components":["a","."]}`,
		`{"components":["a/../../b"]}`,
		`{"components":[""]}`,
	} {
		var p Path
		err := json.Unmarshal([]byte(raw), &p)
		assert.Error(t, err, raw)
	}

	var p Path
	err := json.Unmarshal([]byte(`{"components":`), &p)
	assert.Error(t, err)
}

func TestPathBasenameParent(t *testing.T) {
	p := MustPath("a", "b", "c.txt")

	name, ok := p.Basename()
	assert.True(t, ok)
	assert.Equal(t, "c.txt", name)

	parent, ok := p.Parent()
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, parent.Components())

	single := MustPath("a")
	parent, ok = single.Parent()
	require.True(t, ok)
	assert.True(t, parent.IsRoot())
	assert.Equal(t, RootPath(), parent)

	_, ok = RootPath().Parent()
	assert.False(t, ok)
	_, ok = RootPath().Basename()
	assert.False(t, ok)
}

func TestPathJoin(t *testing.T) {
	p, err := RootPath().Join("dir")
	require.NoError(t, err)
	p, err = p.Join("file.txt")
	require.NoError(t, err)
	assert.Equal(t, "dir/file.txt", p.String())
	assert.Equal(t, filepath.Join("dir", "file.txt"), p.NativePath())

	_, err = p.Join("..")
	assert.ErrorIs(t, err, ErrInvalidArgument)

	// the receiver is not modified
	base := MustPath("a")
	_, err = base.Join("b")
	require.NoError(t, err)
	assert.Equal(t, 1, base.Len())
}

func TestParsePath(t *testing.T) {
	p, err := ParsePath("")
	require.NoError(t, err)
	assert.True(t, p.IsRoot())

	p, err = ParsePath(filepath.Join("dir1", "dir2", "file4.txt"))
	require.NoError(t, err)
	assert.Equal(t, []string{"dir1", "dir2", "file4.txt"}, p.Components())
	assert.Equal(t, filepath.Join("dir1", "dir2", "file4.txt"), p.NativePath())

	p, err = ParsePath("/dir1/file3.txt")
	require.NoError(t, err)
	assert.Equal(t, "dir1/file3.txt", p.String())

	for _, bad := range []string{".", "..", "a/../b", "a//b", "a/./b"} {
		_, err := ParsePath(bad)
		assert.ErrorIs(t, err, ErrInvalidArgument, bad)
	}
}

func TestPathCompare(t *testing.T) {
	a := MustPath("a")
	ab := MustPath("a", "b")
	b := MustPath("b")

	assert.Equal(t, 0, a.Compare(MustPath("a")))
	assert.Equal(t, -1, a.Compare(ab))
	assert.Equal(t, -1, ab.Compare(b))
	assert.Equal(t, 1, b.Compare(a))
	assert.False(t, a.Equal(ab))
	assert.True(t, RootPath().Equal(MustPath()))
}

func TestPathComponentsIsCopy(t *testing.T) {
	p := MustPath("a", "b")
	c := p.Components()
	c[0] = ".."
	assert.Equal(t, "a/b", p.String())
}
