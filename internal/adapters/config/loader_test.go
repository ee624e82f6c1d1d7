package config_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/buildlogic/internal/adapters/catalog"
	"go.trai.ch/buildlogic/internal/adapters/classpath"
	"go.trai.ch/buildlogic/internal/adapters/config"
	"go.trai.ch/buildlogic/internal/core/domain"
	"go.trai.ch/buildlogic/internal/core/ports/mocks"
	"go.trai.ch/buildlogic/internal/plugins"
	"go.uber.org/mock/gomock"
)

// sampleExtension is registered by the test plugin.
type sampleExtension struct {
	Level   int
	Enabled bool
	Nested  *nestedConfig
	Named   map[string]*nestedConfig
	Args    []string
}

type nestedConfig struct {
	Version string
}

func testRegistry() *plugins.Registry {
	registry := plugins.NewRegistry()
	registry.Register("SamplePlugin", func() domain.Plugin {
		return domain.PluginFunc(func(p *domain.Project) error {
			if err := p.AddExtension("sample", &sampleExtension{
				Level:   3,
				Enabled: true,
				Nested:  &nestedConfig{Version: "1.2"},
				Named:   map[string]*nestedConfig{"kotlin": {Version: "0.43.0"}},
				Args:    []string{"a", "b"},
			}); err != nil {
				return err
			}
			p.AddDependency("implementation", "g:n:1")
			return p.RegisterTask(&domain.Task{Name: domain.NewInternedString("sampleTask")})
		})
	})
	return registry
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(name))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), domain.DirPerm))
	require.NoError(t, os.WriteFile(path, []byte(content), domain.FilePerm))
}

func newLoader(t *testing.T) (*config.Loader, *mocks.MockLogger) {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	return config.NewLoader(log, catalog.NewLoader(), classpath.NewResolver(), testRegistry()), log
}

// artifact writes a classpath directory declaring the sample plugin.
func artifact(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, dir, domain.PluginDescriptorFileName, `plugins:
  - name: sample
    id: test.sample
    implementationClass: SamplePlugin
`)
	return dir
}

func TestLoad_FullProject(t *testing.T) {
	loader, _ := newLoader(t)
	dir := t.TempDir()
	sdk := t.TempDir()

	writeFile(t, dir, "settings.yaml", "rootProject: test-app\n")
	writeFile(t, dir, "local.properties", "sdk.dir="+sdk+"\n")
	writeFile(t, dir, "gradle/libs.versions.toml", "[versions]\nktlint = \"0.48.1\"\n")
	writeFile(t, dir, "build.yaml", `
buildscript:
  classpath: ['`+artifact(t)+`']
plugins: [test.sample]
tasks:
  compile:
    cmd: [sh, -c, "true"]
    input: [b.txt, a.txt, a.txt]
    target: [out.txt]
    dependsOn: [":sampleTask"]
    environment: {KEY: value}
    cacheable: true
  sampleTask:
    enabled: false
`)

	p, err := loader.Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "test-app", p.Name)
	assert.True(t, p.HasPlugin("test.sample"))
	sdkDir, _ := p.Property(domain.SDKDirProperty)
	assert.Equal(t, sdk, sdkDir)

	catalogs, ok := p.VersionCatalogs()
	require.True(t, ok)
	assert.Equal(t, []string{"libs"}, catalogs.CatalogNames())

	compile, ok := p.Tasks().GetTask(domain.NewInternedString("compile"))
	require.True(t, ok)
	assert.Equal(t, []string{"sh", "-c", "true"}, compile.Command)
	assert.Equal(t, domain.NewInternedStrings([]string{"a.txt", "b.txt"}), compile.Inputs)
	assert.Equal(t, []domain.InternedString{domain.NewInternedString("sampleTask")}, compile.Dependencies)
	assert.Equal(t, "value", compile.Environment["KEY"])
	assert.True(t, compile.Cacheable)
	assert.Equal(t, dir, compile.WorkingDir.String())

	sampleTask, ok := p.Tasks().GetTask(domain.NewInternedString("sampleTask"))
	require.True(t, ok)
	assert.True(t, sampleTask.Disabled)
}

func TestLoad_MissingBuildFileWarns(t *testing.T) {
	loader, log := newLoader(t)
	dir := t.TempDir()
	writeFile(t, dir, "settings.yaml", "rootProject: empty\n")

	log.EXPECT().Warn(gomock.Any()).Times(1)

	p, err := loader.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, 0, p.Tasks().TaskCount())
	assert.Empty(t, p.Plugins())
}

func TestLoad_MissingSDKWarns(t *testing.T) {
	loader, log := newLoader(t)
	dir := t.TempDir()
	writeFile(t, dir, "settings.yaml", "rootProject: app\n")
	writeFile(t, dir, "local.properties", "sdk.dir=/does/not/exist\n")
	writeFile(t, dir, "build.yaml", "plugins: []\n")

	log.EXPECT().Warn(gomock.Any()).Times(1)

	_, err := loader.Load(dir)
	require.NoError(t, err)
}

// namedCatalog is a catalog that only knows its name.
type namedCatalog struct {
	domain.VersionCatalog
	name string
}

func (c namedCatalog) Name() string { return c.name }

func TestLoad_CatalogLoaderResult(t *testing.T) {
	ctrl := gomock.NewController(t)
	catalogs := mocks.NewMockCatalogLoader(ctrl)
	loader := config.NewLoader(mocks.NewMockLogger(ctrl), catalogs, classpath.NewResolver(), testRegistry())

	dir := t.TempDir()
	writeFile(t, dir, "settings.yaml", "rootProject: app\n")
	writeFile(t, dir, "build.yaml", "plugins: []\n")
	writeFile(t, dir, domain.CatalogFileName, "[versions]\n")

	catalogs.EXPECT().
		Load(filepath.Join(dir, filepath.FromSlash(domain.CatalogFileName)), domain.DefaultCatalogName).
		Return(namedCatalog{name: domain.DefaultCatalogName}, nil)

	p, err := loader.Load(dir)
	require.NoError(t, err)
	set, ok := p.VersionCatalogs()
	require.True(t, ok)
	assert.Equal(t, []string{domain.DefaultCatalogName}, set.CatalogNames())
}

func TestLoad_CatalogLoaderError(t *testing.T) {
	ctrl := gomock.NewController(t)
	catalogs := mocks.NewMockCatalogLoader(ctrl)
	loader := config.NewLoader(mocks.NewMockLogger(ctrl), catalogs, classpath.NewResolver(), testRegistry())

	dir := t.TempDir()
	writeFile(t, dir, "settings.yaml", "rootProject: app\n")
	writeFile(t, dir, domain.CatalogFileName, "[versions\n")

	catalogs.EXPECT().Load(gomock.Any(), domain.DefaultCatalogName).Return(nil, domain.ErrCatalogParseFailed)

	_, err := loader.Load(dir)
	assert.ErrorIs(t, err, domain.ErrCatalogParseFailed)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name  string
		files map[string]string
		want  string
	}{
		{
			name:  "missing settings",
			files: map[string]string{},
			want:  domain.ErrSettingsNotFound.Error(),
		},
		{
			name:  "missing project name",
			files: map[string]string{"settings.yaml": "other: x\n"},
			want:  domain.ErrMissingProjectName.Error(),
		},
		{
			name:  "malformed settings",
			files: map[string]string{"settings.yaml": "rootProject: [\n"},
			want:  domain.ErrConfigParseFailed.Error(),
		},
		{
			name: "malformed build file",
			files: map[string]string{
				"settings.yaml": "rootProject: app\n",
				"build.yaml":    "tasks: [\n",
			},
			want: domain.ErrConfigParseFailed.Error(),
		},
		{
			name: "unknown plugin",
			files: map[string]string{
				"settings.yaml": "rootProject: app\n",
				"build.yaml":    "plugins: [nowinandroid.missing]\n",
			},
			want: "Plugin with id 'nowinandroid.missing' not found",
		},
		{
			name: "missing dependency",
			files: map[string]string{
				"settings.yaml": "rootProject: app\n",
				"build.yaml":    "tasks:\n  a:\n    dependsOn: [b]\n",
			},
			want: domain.ErrMissingDependency.Error(),
		},
		{
			name: "missing classpath entry",
			files: map[string]string{
				"settings.yaml": "rootProject: app\n",
				"build.yaml":    "buildscript:\n  classpath: ['missing-dir']\n",
			},
			want: domain.ErrClasspathEntryMissing.Error(),
		},
		{
			name: "broken catalog",
			files: map[string]string{
				"settings.yaml":             "rootProject: app\n",
				"gradle/libs.versions.toml": "[versions\n",
			},
			want: domain.ErrCatalogParseFailed.Error(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loader, _ := newLoader(t)
			dir := t.TempDir()
			for name, content := range tt.files {
				writeFile(t, dir, name, content)
			}

			_, err := loader.Load(dir)
			require.Error(t, err)
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestLoad_AssertionTask(t *testing.T) {
	loader, _ := newLoader(t)
	dir := t.TempDir()
	writeFile(t, dir, "settings.yaml", "rootProject: app\n")
	writeFile(t, dir, "local.properties", "answer=42\n")
	writeFile(t, dir, "build.yaml", `
buildscript:
  classpath: ['`+artifact(t)+`']
plugins: [test.sample]
tasks:
  assertValues:
    assert:
      hasPlugin: [test.sample]
      notPlugin: [other]
      extensions: [sample, versionCatalogs]
      properties: {answer: "42"}
      dependencies: {implementation: ["g:n:1"]}
      tasks: [":sampleTask"]
      values:
        sample.Level: "3"
        sample.Enabled: "true"
        sample.Nested.Version: "1.2"
        sample.Named.kotlin.Version: "0.43.0"
        sample.Args: "a,b"
  assertWrong:
    assert:
      hasPlugin: [other]
      properties: {answer: "41"}
      values:
        sample.Missing: "x"
`)

	p, err := loader.Load(dir)
	require.NoError(t, err)

	ok, _ := p.Tasks().GetTask(domain.NewInternedString("assertValues"))
	var out bytes.Buffer
	require.NoError(t, ok.Action(context.Background(), &out))
	assert.Empty(t, out.String())

	wrong, _ := p.Tasks().GetTask(domain.NewInternedString("assertWrong"))
	out.Reset()
	err = wrong.Action(context.Background(), &out)
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrAssertionFailed.Error())
	assert.Contains(t, out.String(), `expected plugin "other" to be applied`)
	assert.Contains(t, out.String(), `expected property "answer" to be "41", got "42"`)
	assert.Contains(t, out.String(), `no field or key "Missing"`)
}
