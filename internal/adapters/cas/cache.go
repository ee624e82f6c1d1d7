package cas

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/buildlogic/internal/core/domain"
	"go.trai.ch/buildlogic/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.BuildCache = (*BuildCache)(nil)

// BuildCache implements ports.BuildCache as one directory per input hash
// below <home>/caches/build-cache. Each entry mirrors the root-relative
// layout of the outputs it holds.
type BuildCache struct{}

// NewBuildCache creates a new BuildCache.
func NewBuildCache() *BuildCache {
	return &BuildCache{}
}

// Restore copies the outputs cached under key into root.
func (c *BuildCache) Restore(home, key, root string, outputs []string) (bool, error) {
	entry := filepath.Join(domain.BuildCachePath(home), key)
	if _, err := os.Stat(entry); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, zerr.With(zerr.Wrap(err, domain.ErrCacheRestoreFailed.Error()), "key", key)
	}

	for _, out := range outputs {
		if _, err := os.Lstat(filepath.Join(entry, out)); err != nil {
			// The entry was stored for a different output set.
			return false, nil
		}
	}

	for _, out := range outputs {
		dst := filepath.Join(root, out)
		if err := os.RemoveAll(dst); err != nil {
			return false, zerr.With(zerr.Wrap(err, domain.ErrCacheRestoreFailed.Error()), "file", out)
		}
		if err := copyTree(filepath.Join(entry, out), dst); err != nil {
			return false, zerr.With(zerr.Wrap(err, domain.ErrCacheRestoreFailed.Error()), "file", out)
		}
	}

	return true, nil
}

// Store copies the outputs below root into the cache under key.
// The entry is assembled in a temporary directory and renamed into place;
// if another build stored the same key first, its entry is kept.
func (c *BuildCache) Store(home, key, root string, outputs []string) error {
	cacheDir := domain.BuildCachePath(home)
	if err := os.MkdirAll(cacheDir, domain.DirPerm); err != nil {
		return zerr.Wrap(err, domain.ErrCacheStoreFailed.Error())
	}

	entry := filepath.Join(cacheDir, key)
	if _, err := os.Stat(entry); err == nil {
		return nil
	}

	tmp, err := os.MkdirTemp(cacheDir, "."+key+".tmp-*")
	if err != nil {
		return zerr.Wrap(err, domain.ErrCacheStoreFailed.Error())
	}
	defer os.RemoveAll(tmp) //nolint:errcheck // Best effort cleanup; gone after a successful rename

	for _, out := range outputs {
		if err := copyTree(filepath.Join(root, out), filepath.Join(tmp, out)); err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrCacheStoreFailed.Error()), "file", out)
		}
	}

	if err := os.Rename(tmp, entry); err != nil {
		if _, statErr := os.Stat(entry); statErr == nil {
			return nil
		}
		return zerr.With(zerr.Wrap(err, domain.ErrCacheStoreFailed.Error()), "key", key)
	}

	return nil
}

// copyTree copies a file or a directory tree from src to dst.
func copyTree(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return copyFile(src, dst, info.Mode().Perm())
	}

	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(target, domain.DirPerm)
		}
		fi, err := d.Info()
		if err != nil {
			return err
		}
		return copyFile(path, target, fi.Mode().Perm())
	})
}

func copyFile(src, dst string, perm os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(dst), domain.DirPerm); err != nil {
		return err
	}

	in, err := os.Open(src) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return err
	}
	defer in.Close() //nolint:errcheck // Read-only file

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
