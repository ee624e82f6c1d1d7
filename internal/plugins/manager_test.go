package plugins_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/buildlogic/internal/core/domain"
	"go.trai.ch/buildlogic/internal/plugins"
)

func newProject(t *testing.T, m *plugins.Manager) *domain.Project {
	t.Helper()
	p := domain.NewProject("test-app", t.TempDir())
	m.Attach(p)
	return p
}

func TestManager_ApplyFromClasspath(t *testing.T) {
	registry := plugins.NewRegistry()
	calls := 0
	registry.Register("CountingPlugin", func() domain.Plugin {
		return domain.PluginFunc(func(_ *domain.Project) error {
			calls++
			return nil
		})
	})

	m := plugins.NewManager(registry, map[string]domain.PluginRegistration{
		"counting": {Name: "counting", ID: "counting", ImplementationClass: "CountingPlugin"},
	})
	p := newProject(t, m)

	require.NoError(t, p.ApplyPlugin("counting"))
	require.NoError(t, p.ApplyPlugin("counting"))
	assert.Equal(t, 1, calls)
	assert.True(t, p.HasPlugin("counting"))
	assert.Equal(t, []string{"counting"}, p.Plugins())
}

func TestManager_PluginsApplyOtherPlugins(t *testing.T) {
	registry := plugins.NewRegistry()
	registry.Register("Outer", func() domain.Plugin {
		return domain.PluginFunc(func(p *domain.Project) error {
			return p.ApplyPlugin("inner")
		})
	})
	registry.Register("Inner", func() domain.Plugin {
		return domain.PluginFunc(func(p *domain.Project) error {
			// Applying the outer plugin again terminates.
			return p.ApplyPlugin("outer")
		})
	})

	m := plugins.NewManager(registry, map[string]domain.PluginRegistration{
		"outer": {ID: "outer", ImplementationClass: "Outer"},
		"inner": {ID: "inner", ImplementationClass: "Inner"},
	})
	p := newProject(t, m)

	require.NoError(t, p.ApplyPlugin("outer"))
	assert.Equal(t, []string{"outer", "inner"}, p.Plugins())
}

func TestManager_Errors(t *testing.T) {
	registry := plugins.NewRegistry()
	registry.Register("Failing", func() domain.Plugin {
		return domain.PluginFunc(func(_ *domain.Project) error {
			return errors.New("boom")
		})
	})

	m := plugins.NewManager(registry, map[string]domain.PluginRegistration{
		"failing": {ID: "failing", ImplementationClass: "Failing"},
		"orphan":  {ID: "orphan", ImplementationClass: "Unknown"},
	})

	t.Run("unknown id", func(t *testing.T) {
		err := newProject(t, m).ApplyPlugin("nowinandroid.missing")
		require.Error(t, err)
		assert.ErrorContains(t, err, "Plugin with id 'nowinandroid.missing' not found")
		assert.ErrorContains(t, err, domain.ErrPluginNotFound.Error())
	})

	t.Run("missing implementation", func(t *testing.T) {
		err := newProject(t, m).ApplyPlugin("orphan")
		require.Error(t, err)
		assert.ErrorContains(t, err, domain.ErrPluginImplementationMissing.Error())
	})

	t.Run("apply failure", func(t *testing.T) {
		err := newProject(t, m).ApplyPlugin("failing")
		require.Error(t, err)
		assert.ErrorContains(t, err, domain.ErrPluginApplyFailed.Error())
		assert.ErrorContains(t, err, "boom")
	})
}

func TestManager_Available(t *testing.T) {
	m := plugins.NewManager(plugins.NewRegistry(), map[string]domain.PluginRegistration{
		"z.plugin": {ID: "z.plugin"},
		"a.plugin": {ID: "a.plugin"},
	})
	assert.Equal(t, []string{"a.plugin", plugins.BasePluginID, "z.plugin"}, m.Available())
}

func TestBasePlugin_Clean(t *testing.T) {
	m := plugins.NewManager(plugins.NewRegistry(), nil)
	p := newProject(t, m)
	require.NoError(t, p.ApplyPlugin(plugins.BasePluginID))

	buildDir := filepath.Join(p.Dir, plugins.BuildDirName)
	require.NoError(t, os.MkdirAll(filepath.Join(buildDir, "out"), domain.DirPerm))

	clean, ok := p.Tasks().GetTask(domain.NewInternedString("clean"))
	require.True(t, ok)

	var out bytes.Buffer
	require.NoError(t, clean.Action(context.Background(), &out))
	assert.NoDirExists(t, buildDir)
	assert.Equal(t, "Deleted build\n", out.String())
}

func TestRegistry(t *testing.T) {
	registry := plugins.NewRegistry()
	registry.Register("B", func() domain.Plugin { return nil })
	registry.Register("A", func() domain.Plugin { return nil })

	assert.Equal(t, []string{"A", "B"}, registry.Implementations())
	_, ok := registry.Lookup("A")
	assert.True(t, ok)
	_, ok = registry.Lookup("C")
	assert.False(t, ok)

	assert.Panics(t, func() {
		registry.Register("A", func() domain.Plugin { return nil })
	})
}

func TestProject_ApplyPluginWithoutManager(t *testing.T) {
	p := domain.NewProject("test-app", t.TempDir())
	err := p.ApplyPlugin("base")
	assert.ErrorContains(t, err, domain.ErrPluginNotFound.Error())
}
