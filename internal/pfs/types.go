package pfs

import (
	"cmp"
	"slices"
)

// DirectoryEntry is one child of a browsed directory.
type DirectoryEntry struct {
	Name  string   `json:"name"`
	Stats FileStat `json:"stats"`
}

// Directory is the result of a shallow browse.
type Directory struct {
	CurrentPath Path             `json:"currentPath"`
	Items       []DirectoryEntry `json:"items"`
}

// SyncItem pairs a path with its snapshot. A nil Stats means the path does not exist.
type SyncItem struct {
	Path  Path      `json:"path"`
	Stats *FileStat `json:"stats"`
}

// SyncRequest asks for the full listing below Dest.
// KnownState is accepted from the client but not diffed against.
type SyncRequest struct {
	Dest       Path       `json:"dest"`
	KnownState []SyncItem `json:"knownState"`
}

// CacheStats exposes cache hit/miss counters.
type CacheStats struct {
	Hits   uint64 `json:"hits"`
	Misses uint64 `json:"misses"`
}

// sortEntries orders directories first, then by name.
func sortEntries(entries []DirectoryEntry) {
	slices.SortFunc(entries, func(a, b DirectoryEntry) int {
		if a.Stats.IsDirectory != b.Stats.IsDirectory {
			if a.Stats.IsDirectory {
				return -1
			}
			return 1
		}
		return cmp.Compare(a.Name, b.Name)
	})
}
