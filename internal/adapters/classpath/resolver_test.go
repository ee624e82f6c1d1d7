package classpath_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/buildlogic/internal/adapters/classpath"
	"go.trai.ch/buildlogic/internal/core/domain"
)

func writeDescriptor(t *testing.T, dir, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, domain.DirPerm))
	path := filepath.Join(dir, domain.PluginDescriptorFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), domain.FilePerm))
	return path
}

func TestResolver_Resolve(t *testing.T) {
	root := t.TempDir()
	first := filepath.Join(root, "first")
	second := filepath.Join(root, "second")
	empty := filepath.Join(root, "empty")
	require.NoError(t, os.MkdirAll(empty, domain.DirPerm))

	writeDescriptor(t, first, `group: conventions
plugins:
  - name: spotless
    id: nowinandroid.spotless
    implementationClass: SpotlessConventionPlugin
`)
	fileEntry := writeDescriptor(t, second, `plugins:
  - name: spotless
    id: nowinandroid.spotless
    implementationClass: Shadowed
  - name: jacoco
    id: jacoco
    implementationClass: JacocoPlugin
`)

	plugins, err := classpath.NewResolver().Resolve([]string{first, empty, fileEntry})
	require.NoError(t, err)
	require.Len(t, plugins, 2)
	assert.Equal(t, "SpotlessConventionPlugin", plugins["nowinandroid.spotless"].ImplementationClass)
	assert.Equal(t, "JacocoPlugin", plugins["jacoco"].ImplementationClass)
}

func TestResolver_EmptyClasspath(t *testing.T) {
	plugins, err := classpath.NewResolver().Resolve(nil)
	require.NoError(t, err)
	assert.Empty(t, plugins)
}

func TestResolver_Errors(t *testing.T) {
	root := t.TempDir()

	t.Run("missing entry", func(t *testing.T) {
		_, err := classpath.NewResolver().Resolve([]string{filepath.Join(root, "missing")})
		require.Error(t, err)
		assert.ErrorContains(t, err, domain.ErrClasspathEntryMissing.Error())
	})

	t.Run("malformed descriptor", func(t *testing.T) {
		dir := filepath.Join(root, "malformed")
		writeDescriptor(t, dir, "plugins: [unterminated")
		_, err := classpath.NewResolver().Resolve([]string{dir})
		require.Error(t, err)
		assert.ErrorContains(t, err, domain.ErrPluginDescriptorInvalid.Error())
	})

	t.Run("registration without implementation", func(t *testing.T) {
		dir := filepath.Join(root, "incomplete")
		writeDescriptor(t, dir, "plugins:\n  - name: x\n    id: x\n")
		_, err := classpath.NewResolver().Resolve([]string{dir})
		require.Error(t, err)
		assert.ErrorContains(t, err, domain.ErrPluginDescriptorInvalid.Error())
	})
}
