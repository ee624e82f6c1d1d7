package upstream

import (
	"go.trai.ch/buildlogic/internal/core/domain"
	"go.trai.ch/buildlogic/internal/plugins"
	"go.trai.ch/zerr"
)

// AndroidExtensionName is the extension registered by the Android plugins.
const AndroidExtensionName = "android"

// ErrAndroidPluginRequired is returned by plugins that need an Android plugin applied first.
var ErrAndroidPluginRequired = zerr.New("an Android plugin must be applied first")

// DefaultConfig holds the default variant configuration.
type DefaultConfig struct {
	MinSdk                    int
	TargetSdk                 int
	TestInstrumentationRunner string
}

// BuildFeatures toggles optional build features.
type BuildFeatures struct {
	Compose     bool
	BuildConfig bool
}

// ComposeOptions configures the Compose compiler.
type ComposeOptions struct {
	KotlinCompilerExtensionVersion string
}

// CompileOptions configures Java compilation.
type CompileOptions struct {
	SourceCompatibility   string
	TargetCompatibility   string
	CoreLibraryDesugaring bool
}

// CommonExtension is the configuration shared by all Android module types.
type CommonExtension struct {
	Namespace      string
	CompileSdk     int
	DefaultConfig  DefaultConfig
	BuildFeatures  BuildFeatures
	ComposeOptions ComposeOptions
	CompileOptions CompileOptions
}

// Common returns the shared configuration.
func (c *CommonExtension) Common() *CommonExtension {
	return c
}

// AndroidExtension is implemented by every Android module extension.
type AndroidExtension interface {
	Common() *CommonExtension
}

// ApplicationExtension configures an application module.
type ApplicationExtension struct {
	CommonExtension
	ApplicationID string
	VersionCode   int
	VersionName   string
}

// LibraryExtension configures a library module.
type LibraryExtension struct {
	CommonExtension
	ResourcePrefix string
}

// TestExtension configures a test-only module.
type TestExtension struct {
	CommonExtension
	TargetProjectPath string
}

func newApplicationExtension() AndroidExtension {
	return &ApplicationExtension{VersionCode: 1, VersionName: "1.0"}
}

func newLibraryExtension() AndroidExtension {
	return &LibraryExtension{}
}

func newTestExtension() AndroidExtension {
	return &TestExtension{}
}

// Android returns the project's Android extension.
func Android(p *domain.Project) (AndroidExtension, bool) {
	return domain.ExtensionOf[AndroidExtension](p, AndroidExtensionName)
}

// HasAndroidPlugin reports whether one of the Android plugins is applied.
func HasAndroidPlugin(p *domain.Project) bool {
	return p.HasPlugin(AndroidApplicationID) || p.HasPlugin(AndroidLibraryID) || p.HasPlugin(AndroidTestID)
}

// androidPlugin registers the extension built by newExt on top of the base plugin.
func androidPlugin(newExt func() AndroidExtension) domain.Plugin {
	return domain.PluginFunc(func(p *domain.Project) error {
		if err := p.ApplyPlugin(plugins.BasePluginID); err != nil {
			return err
		}
		return p.AddExtension(AndroidExtensionName, newExt())
	})
}
