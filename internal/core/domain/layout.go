package domain

import (
	"os"
	"path/filepath"
)

const (
	// StateDirName is the name of the per-project state directory.
	StateDirName = ".buildlogic"

	// StoreDirName is the name of the build info store directory.
	StoreDirName = "store"

	// CachesDirName is the name of the caches directory under the shared home.
	CachesDirName = "caches"

	// BuildCacheDirName is the name of the output cache directory.
	BuildCacheDirName = "build-cache"

	// SettingsFileName is the name of the project descriptor file.
	SettingsFileName = "settings.yaml"

	// BuildFileName is the name of the build script.
	BuildFileName = "build.yaml"

	// LocalPropertiesFileName is the name of the machine-local properties file.
	LocalPropertiesFileName = "local.properties"

	// CatalogFileName is the path of the default version catalog, relative to the project root.
	CatalogFileName = "gradle/libs.versions.toml"

	// DefaultCatalogName is the name under which the default catalog is registered.
	DefaultCatalogName = "libs"

	// PluginDescriptorFileName is the name of the plugin descriptor inside a classpath artifact.
	PluginDescriptorFileName = "buildlogic-plugins.yaml"

	// ClasspathManifestName is the resource name of the published plugin classpath.
	ClasspathManifestName = "plugin-classpath.txt"

	// SDKDirProperty is the local property pointing at the Android SDK.
	SDKDirProperty = "sdk.dir"

	// HomeEnvVar overrides the shared home directory.
	HomeEnvVar = "BUILDLOGIC_HOME"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644

	// PrivateFilePerm is the default permission for private files (rw-------).
	PrivateFilePerm = 0o600
)

// DefaultStorePath returns the build info store path for a project root.
func DefaultStorePath(root string) string {
	return filepath.Join(root, StateDirName, StoreDirName)
}

// DefaultHome returns the shared home used when none is configured.
// It prefers $BUILDLOGIC_HOME, then ~/.buildlogic.
func DefaultHome() string {
	if home := os.Getenv(HomeEnvVar); home != "" {
		return home
	}
	if userHome, err := os.UserHomeDir(); err == nil {
		return filepath.Join(userHome, StateDirName)
	}
	return filepath.Join(os.TempDir(), StateDirName)
}

// BuildCachePath returns the shared output cache directory under home.
func BuildCachePath(home string) string {
	return filepath.Join(home, CachesDirName, BuildCacheDirName)
}
