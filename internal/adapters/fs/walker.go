// Package fs provides file system adapters for walking, resolving and hashing files.
package fs

import (
	"io/fs"
	"iter"
	"path/filepath"

	"go.trai.ch/buildlogic/internal/core/domain"
)

// Walker provides file walking functionality.
type Walker struct{}

// NewWalker creates a new Walker.
func NewWalker() *Walker {
	return &Walker{}
}

// WalkFiles yields all files below root in lexical order, skipping VCS
// metadata, the build state directory and directories matching ignores.
// Yielded paths include root.
func (w *Walker) WalkFiles(root string, ignores []string) iter.Seq[string] {
	return func(yield func(string) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if skipAction := w.shouldSkip(d, ignores); skipAction != nil {
				return skipAction
			}

			if d.IsDir() {
				return nil
			}

			if !yield(path) {
				return filepath.SkipAll
			}

			return nil
		})
	}
}

// shouldSkip returns filepath.SkipDir for directories that must not be walked.
func (w *Walker) shouldSkip(d fs.DirEntry, ignores []string) error {
	if !d.IsDir() {
		return nil
	}

	switch d.Name() {
	case ".git", ".jj", domain.StateDirName:
		return filepath.SkipDir
	}

	for _, ignore := range ignores {
		if matched, _ := filepath.Match(ignore, d.Name()); matched {
			return filepath.SkipDir
		}
	}

	return nil
}
