package pfs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type testEntry struct {
	path    string
	content string
	isDir   bool
}

// testTree is the fixture tree: five files and four directories, one of them empty.
var testTree = []testEntry{
	{"file1.txt", "file one", false},
	{"file2.txt", "file two", false},
	{"dir1", "", true},
	{"dir1/file3.txt", "file three", false},
	{"dir1/dir2", "", true},
	{"dir1/dir2/file4.txt", "file four", false},
	{"dir1/dir2/dir_empty1", "", true},
	{"dir3", "", true},
	{"dir3/file6.txt", "file six", false},
}

// countTree returns the number of files and directories in entries.
func countTree(entries []testEntry) (files, dirs int) {
	for _, e := range entries {
		if e.isDir {
			dirs++
		} else {
			files++
		}
	}
	return files, dirs
}

func newTestRoot(t *testing.T, entries []testEntry) string {
	t.Helper()
	root := t.TempDir()
	for _, e := range entries {
		full := filepath.Join(root, filepath.FromSlash(e.path))
		if e.isDir {
			require.NoError(t, os.MkdirAll(full, 0o755))
			continue
		}
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte(e.content), 0o644))
	}
	return root
}

func newTestStore(t *testing.T, entries []testEntry, opts ...Option) *Store {
	t.Helper()
	store, err := New(newTestRoot(t, entries), opts...)
	require.NoError(t, err)
	return store
}

// byPath indexes sync items by their slash separated path.
func byPath(items []SyncItem) map[string]SyncItem {
	m := make(map[string]SyncItem, len(items))
	for _, item := range items {
		m[item.Path.String()] = item
	}
	return m
}

func entryNames(entries []DirectoryEntry) []string {
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name)
	}
	return names
}
