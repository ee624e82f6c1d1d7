// Package manifest publishes and loads the plugin classpath manifest: the
// newline-separated list of artifacts a functional test hands to the build
// tool so that plugins under test resolve without being installed.
package manifest

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/buildlogic/internal/core/domain"
	"go.trai.ch/zerr"
)

// ResourcePathEnv lists the directories searched for manifest resources,
// separated like PATH.
const ResourcePathEnv = "BUILDLOGIC_RESOURCE_PATH"

// DefaultResourceDir is searched after the directories from ResourcePathEnv.
const DefaultResourceDir = "testdata"

// Manifest is an ordered list of absolute classpath entries.
type Manifest []string

// Publish writes the entries of main followed by those of test to path, one
// absolute path per line. Entries are not deduplicated. Every entry must exist
// and at least one is required. Missing parent directories are created and an
// existing file is replaced.
func Publish(path string, main, test []string) error {
	if len(main)+len(test) == 0 {
		return zerr.With(domain.ErrManifestEmpty, "file", path)
	}

	entries := make([]string, 0, len(main)+len(test))
	for _, entry := range append(append([]string{}, main...), test...) {
		abs, err := filepath.Abs(entry)
		if err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrClasspathEntryMissing.Error()), "entry", entry)
		}
		if _, err := os.Stat(abs); err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrClasspathEntryMissing.Error()), "entry", abs)
		}
		entries = append(entries, abs)
	}

	if err := os.MkdirAll(filepath.Dir(path), domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrManifestWriteFailed.Error()), "file", path)
	}

	data := strings.Join(entries, "\n") + "\n"
	if err := writeFileAtomic(path, []byte(data)); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrManifestWriteFailed.Error()), "file", path)
	}
	return nil
}

// Parse splits manifest text into entries. Blank lines are ignored.
func Parse(data string) Manifest {
	var m Manifest
	for line := range strings.SplitSeq(data, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		m = append(m, line)
	}
	return m
}

// ResourceDirs returns the default manifest search path: the entries of
// ResourcePathEnv followed by DefaultResourceDir.
func ResourceDirs() []string {
	var dirs []string
	for _, dir := range filepath.SplitList(os.Getenv(ResourcePathEnv)) {
		if dir != "" {
			dirs = append(dirs, dir)
		}
	}
	return append(dirs, DefaultResourceDir)
}

// Load reads the resource called name from the first of dirs containing it,
// or from ResourceDirs when dirs is empty. A missing resource is reported as
// domain.ErrManifestNotFound and an empty one as domain.ErrManifestEmpty.
func Load(name string, dirs ...string) (Manifest, error) {
	if len(dirs) == 0 {
		dirs = ResourceDirs()
	}

	for _, dir := range dirs {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path) //nolint:gosec // resource lookup path
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, zerr.With(zerr.Wrap(err, domain.ErrManifestNotFound.Error()), "file", path)
		}

		m := Parse(string(data))
		if len(m) == 0 {
			return nil, zerr.With(domain.ErrManifestEmpty, "file", path)
		}
		return m, nil
	}

	return nil, zerr.With(zerr.With(domain.ErrManifestNotFound, "resource", name), "search_path", strings.Join(dirs, string(os.PathListSeparator)))
}

// Literal renders the entries as single-quoted strings joined by ", ", the
// form interpolated into a build script's classpath list. Quotes inside an
// entry are doubled as YAML requires.
func (m Manifest) Literal() string {
	quoted := make([]string, len(m))
	for i, entry := range m {
		quoted[i] = "'" + strings.ReplaceAll(entry, "'", "''") + "'"
	}
	return strings.Join(quoted, ", ")
}

func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) //nolint:errcheck // gone after a successful rename

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, domain.FilePerm); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
