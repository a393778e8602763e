package explorer

import "github.com/vauradkar/letso/internal/pfs"

// indexData contains data for the index template
type indexData struct {
	Path    string
	Parent  string // link to the parent listing, empty at the root
	Folders []pfs.DirectoryEntry
	Files   []pfs.DirectoryEntry
}

// Link is the explorer URL of a child of the listed directory.
func (d indexData) Link(name string) string {
	return explorerRoot + d.Path + name
}
