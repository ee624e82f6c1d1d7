package catalog_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/buildlogic/internal/adapters/catalog"
	"go.trai.ch/buildlogic/internal/core/domain"
)

func loadTestCatalog(t *testing.T) domain.VersionCatalog {
	t.Helper()
	c, err := catalog.NewLoader().Load(filepath.Join("testdata", "libs.versions.toml"), "libs")
	require.NoError(t, err)
	return c
}

func TestLoader_Versions(t *testing.T) {
	c := loadTestCatalog(t)
	assert.Equal(t, "libs", c.Name())

	tests := []struct {
		alias string
		want  string
	}{
		{"androidxCompose", "1.4.0"},
		{"ktlint", "0.48.1"},
		{"kotlin", "1.8.10"},
		{"okhttp", "4.10.0"},
	}
	for _, tt := range tests {
		t.Run(tt.alias, func(t *testing.T) {
			v, err := c.FindVersion(tt.alias)
			require.NoError(t, err)
			assert.Equal(t, tt.want, v.String())
		})
	}

	okhttp, err := c.FindVersion("okhttp")
	require.NoError(t, err)
	assert.Equal(t, []string{"4.9.0"}, okhttp.Rejected)
}

func TestLoader_Libraries(t *testing.T) {
	c := loadTestCatalog(t)

	tests := []struct {
		alias    string
		notation string
	}{
		{"androidx-compose-bom", "androidx.compose:compose-bom:2023.01.00"},
		{"androidx.compose.runtime", "androidx.compose.runtime:runtime"},
		{"kotlin_stdlib", "org.jetbrains.kotlin:kotlin-stdlib:1.8.10"},
		{"okhttp-logging", "com.squareup.okhttp3:logging-interceptor:4.10.0"},
		{"junit4", "junit:junit"},
	}
	for _, tt := range tests {
		t.Run(tt.alias, func(t *testing.T) {
			lib, err := c.FindLibrary(tt.alias)
			require.NoError(t, err)
			assert.Equal(t, tt.notation, lib.Notation())
		})
	}

	stdlib, err := c.FindLibrary("kotlin-stdlib")
	require.NoError(t, err)
	assert.Equal(t, "kotlin", stdlib.Version.DisplayName)
}

func TestLoader_BundlesAndPlugins(t *testing.T) {
	c := loadTestCatalog(t)

	bundle, err := c.FindBundle("compose")
	require.NoError(t, err)
	require.Len(t, bundle, 2)
	assert.Equal(t, "androidx.compose:compose-bom", bundle[0].Module())
	assert.Equal(t, "androidx.compose.runtime:runtime", bundle[1].Module())

	plugin, err := c.FindPlugin("kotlin-android")
	require.NoError(t, err)
	assert.Equal(t, "org.jetbrains.kotlin.android", plugin.ID)
	assert.Equal(t, "1.8.10", plugin.Version.String())

	spotless, err := c.FindPlugin("spotless")
	require.NoError(t, err)
	assert.Equal(t, "com.diffplug.spotless", spotless.ID)
	assert.Equal(t, "6.15.0", spotless.Version.String())
}

func TestLoader_Aliases(t *testing.T) {
	c := loadTestCatalog(t)

	libs, err := c.LibraryAliases()
	require.NoError(t, err)
	assert.Equal(t, []string{
		"androidx.compose.bom",
		"androidx.compose.runtime",
		"junit4",
		"kotlin.stdlib",
		"okhttp.logging",
	}, libs)

	versions, err := c.VersionAliases()
	require.NoError(t, err)
	assert.Len(t, versions, 5)
}

func TestLoader_Misses(t *testing.T) {
	c := loadTestCatalog(t)

	_, err := c.FindLibrary("does-not-exist")
	assert.ErrorContains(t, err, domain.ErrCatalogAliasNotFound.Error())
	_, err = c.FindVersion("does-not-exist")
	assert.ErrorContains(t, err, domain.ErrCatalogAliasNotFound.Error())
	_, err = c.FindBundle("does-not-exist")
	assert.ErrorContains(t, err, domain.ErrCatalogAliasNotFound.Error())
	_, err = c.FindPlugin("does-not-exist")
	assert.ErrorContains(t, err, domain.ErrCatalogAliasNotFound.Error())
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		toml string
		want string
	}{
		{"invalid toml", "[versions\n", domain.ErrCatalogParseFailed.Error()},
		{"bad notation", "[libraries]\nx = \"only-group\"\n", domain.ErrCatalogParseFailed.Error()},
		{"missing version ref", "[libraries]\nx = { module = \"g:n\", version.ref = \"nope\" }\n", domain.ErrCatalogAliasNotFound.Error()},
		{"unknown bundle member", "[bundles]\nb = [\"missing\"]\n", domain.ErrCatalogParseFailed.Error()},
		{"plugin without id", "[plugins]\np = { version = \"1\" }\n", domain.ErrCatalogParseFailed.Error()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := catalog.Parse("libs", []byte(tt.toml))
			require.Error(t, err)
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestLoader_MissingFile(t *testing.T) {
	_, err := catalog.NewLoader().Load(filepath.Join(t.TempDir(), "nope.toml"), "libs")
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrConfigReadFailed.Error())
}

func TestCatalogSet(t *testing.T) {
	c := loadTestCatalog(t)
	set := domain.NewCatalogSet(c)

	found, err := set.Find("libs")
	require.NoError(t, err)
	assert.Equal(t, c, found)
	assert.Equal(t, []string{"libs"}, set.CatalogNames())

	_, err = set.Find("other")
	assert.ErrorContains(t, err, domain.ErrCatalogNotFound.Error())
}
