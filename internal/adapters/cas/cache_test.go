package cas_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/buildlogic/internal/adapters/cas"
	"go.trai.ch/buildlogic/internal/core/domain"
)

func writeOutput(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), domain.DirPerm))
	require.NoError(t, os.WriteFile(path, []byte(content), domain.FilePerm))
}

func TestBuildCache_StoreRestore(t *testing.T) {
	home := t.TempDir()
	producer := t.TempDir()
	consumer := t.TempDir()
	cache := cas.NewBuildCache()

	writeOutput(t, producer, "build/out.txt", "compiled")
	writeOutput(t, producer, "build/classes/A.class", "A")
	writeOutput(t, producer, "report.txt", "ok")

	outputs := []string{"build", "report.txt"}
	require.NoError(t, cache.Store(home, "0123abcd", producer, outputs))

	writeOutput(t, consumer, "build/stale.txt", "stale")

	restored, err := cache.Restore(home, "0123abcd", consumer, outputs)
	require.NoError(t, err)
	require.True(t, restored)

	for rel, want := range map[string]string{
		"build/out.txt":         "compiled",
		"build/classes/A.class": "A",
		"report.txt":            "ok",
	} {
		got, err := os.ReadFile(filepath.Join(consumer, rel))
		require.NoError(t, err)
		assert.Equal(t, want, string(got), rel)
	}
	assert.NoFileExists(t, filepath.Join(consumer, "build/stale.txt"))
}

func TestBuildCache_RestoreMiss(t *testing.T) {
	cache := cas.NewBuildCache()

	restored, err := cache.Restore(t.TempDir(), "unknown", t.TempDir(), []string{"out.txt"})
	require.NoError(t, err)
	assert.False(t, restored)
}

func TestBuildCache_RestoreDifferentOutputs(t *testing.T) {
	home := t.TempDir()
	root := t.TempDir()
	cache := cas.NewBuildCache()

	writeOutput(t, root, "a.txt", "a")
	require.NoError(t, cache.Store(home, "key", root, []string{"a.txt"}))

	restored, err := cache.Restore(home, "key", t.TempDir(), []string{"a.txt", "b.txt"})
	require.NoError(t, err)
	assert.False(t, restored)
}

func TestBuildCache_StoreKeepsExistingEntry(t *testing.T) {
	home := t.TempDir()
	cache := cas.NewBuildCache()

	first := t.TempDir()
	writeOutput(t, first, "out.txt", "first")
	require.NoError(t, cache.Store(home, "key", first, []string{"out.txt"}))

	second := t.TempDir()
	writeOutput(t, second, "out.txt", "second")
	require.NoError(t, cache.Store(home, "key", second, []string{"out.txt"}))

	target := t.TempDir()
	restored, err := cache.Restore(home, "key", target, []string{"out.txt"})
	require.NoError(t, err)
	require.True(t, restored)

	got, err := os.ReadFile(filepath.Join(target, "out.txt"))
	require.NoError(t, err)
	assert.Equal(t, "first", string(got))

	entries, err := os.ReadDir(domain.BuildCachePath(home))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary directories must be removed")
}

func TestBuildCache_StoreMissingOutput(t *testing.T) {
	cache := cas.NewBuildCache()

	err := cache.Store(t.TempDir(), "key", t.TempDir(), []string{"missing.txt"})
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrCacheStoreFailed.Error())
}
