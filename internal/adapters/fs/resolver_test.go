package fs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/buildlogic/internal/adapters/fs"
)

func TestResolver_ResolveInputs_Success(t *testing.T) {
	tmpDir := t.TempDir()

	for _, f := range []string{"a.txt", "b.txt", "c.log"} {
		require.NoError(t, os.WriteFile(filepath.Join(tmpDir, f), []byte("content"), 0o600))
	}

	resolved, err := fs.NewResolver().ResolveInputs([]string{"*.txt"}, tmpDir)
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(tmpDir, "a.txt"),
		filepath.Join(tmpDir, "b.txt"),
	}, resolved)
}

func TestResolver_ResolveInputs_GlobError(t *testing.T) {
	_, err := fs.NewResolver().ResolveInputs([]string{"["}, t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to glob path")
}

func TestResolver_ResolveInputs_NoMatches(t *testing.T) {
	resolved, err := fs.NewResolver().ResolveInputs([]string{"*.nonexistent", "missing.txt"}, t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, resolved)
}

func TestResolver_ResolveInputs_MultiplePatterns(t *testing.T) {
	tmpDir := t.TempDir()
	for _, f := range []string{"a.txt", "b.txt", "c.log", "d.log"} {
		require.NoError(t, os.WriteFile(filepath.Join(tmpDir, f), []byte("content"), 0o600))
	}

	resolved, err := fs.NewResolver().ResolveInputs([]string{"*.txt", "*.log"}, tmpDir)
	require.NoError(t, err)
	assert.Len(t, resolved, 4)
}

func TestResolver_ResolveInputs_Deduplication(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "test.txt"), []byte("content"), 0o600))

	resolved, err := fs.NewResolver().ResolveInputs([]string{"test.txt", "*.txt", "test.txt"}, tmpDir)
	require.NoError(t, err)

	assert.Len(t, resolved, 1)
	assert.Contains(t, resolved[0], "test.txt")
}

func TestResolver_ResolveInputs_Sorting(t *testing.T) {
	tmpDir := t.TempDir()
	for _, f := range []string{"z.txt", "a.txt", "m.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(tmpDir, f), []byte("content"), 0o600))
	}

	resolved, err := fs.NewResolver().ResolveInputs([]string{"*.txt"}, tmpDir)
	require.NoError(t, err)

	require.Len(t, resolved, 3)
	assert.Contains(t, resolved[0], "a.txt")
	assert.Contains(t, resolved[1], "m.txt")
	assert.Contains(t, resolved[2], "z.txt")
}

func TestResolver_ResolveInputs_AbsolutePattern(t *testing.T) {
	other := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(other, "x.txt"), []byte("content"), 0o600))

	resolved, err := fs.NewResolver().ResolveInputs([]string{filepath.Join(other, "*.txt")}, t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(other, "x.txt")}, resolved)
}
