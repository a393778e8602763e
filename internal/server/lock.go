package server

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/vauradkar/letso/internal/utils"
)

var ErrRootLocked = errors.New("store root is in use by another server")

// RootLock is an advisory lock held for as long as a server owns a store root.
// The snapshot cache trusts that no other writer touches the tree, so two
// servers must never share one root. The lock file sits next to the root,
// outside of the served tree.
type RootLock struct {
	flock *flock.Flock
}

func NewRootLock(rootDir string) *RootLock {
	lockFilePath := filepath.Join(filepath.Dir(rootDir), "."+filepath.Base(rootDir)+".lock")
	return &RootLock{flock: flock.New(lockFilePath)}
}

func (l *RootLock) Path() string {
	return l.flock.Path()
}

func (l *RootLock) Lock() error {
	if err := utils.EnsureParent(l.flock.Path()); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", l.flock.Path(), err)
	}

	locked, err := l.flock.TryLock()
	if err != nil {
		return fmt.Errorf("failed to lock store root: %w", err)
	}
	if !locked {
		return ErrRootLocked
	}
	return nil
}

func (l *RootLock) Unlock() error {
	// if this process hasn't locked the root, then don't delete the lock file
	if !l.flock.Locked() {
		return nil
	}

	if err := l.flock.Unlock(); err != nil {
		return fmt.Errorf("failed to unlock store root: %w", err)
	}

	return os.Remove(l.flock.Path())
}
