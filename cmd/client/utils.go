package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/vauradkar/letso/internal/letsosdk"
	"github.com/vauradkar/letso/internal/pfs"
)

type sdkFactory func() (*letsosdk.LetsoSDK, error)

// parseRemote turns a slash separated server path into a pfs.Path. "", "/" and "." name the root.
func parseRemote(s string) (pfs.Path, error) {
	s = strings.Trim(s, "/")
	if s == "" || s == "." {
		return pfs.RootPath(), nil
	}
	p, err := pfs.ParsePath(filepath.FromSlash(s))
	if err != nil {
		return pfs.Path{}, fmt.Errorf("remote path %q: %w", s, err)
	}
	return p, nil
}

func parseRemotes(args []string) ([]pfs.Path, error) {
	paths := make([]pfs.Path, 0, len(args))
	for _, arg := range args {
		p, err := parseRemote(arg)
		if err != nil {
			return nil, err
		}
		paths = append(paths, p)
	}
	return paths, nil
}

func optionalArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

// displayName renders "/" for the root and "/a/b" otherwise.
func displayName(p pfs.Path) string {
	return "/" + p.String()
}

func kindOf(stat *pfs.FileStat) string {
	if stat.IsDirectory {
		return "d"
	}
	return "f"
}
