// Package upstream provides stand-ins for the third-party plugins the
// convention plugins build on. They only record configuration on the
// project model.
package upstream

import (
	_ "embed"

	"go.trai.ch/buildlogic/internal/core/domain"
	"go.trai.ch/buildlogic/internal/plugins"
	"gopkg.in/yaml.v3"
)

// Plugin ids.
const (
	AndroidApplicationID = "com.android.application"
	AndroidLibraryID     = "com.android.library"
	AndroidTestID        = "com.android.test"
	KotlinAndroidID      = "org.jetbrains.kotlin.android"
	KotlinKaptID         = "org.jetbrains.kotlin.kapt"
	SpotlessID           = "com.diffplug.spotless"
	JacocoID             = "jacoco"
	HiltID               = "dagger.hilt.android.plugin"
)

//go:embed buildlogic-plugins.yaml
var descriptorYAML []byte

// Descriptor returns the plugin descriptor shipped with this artifact.
func Descriptor() domain.PluginDescriptor {
	var d domain.PluginDescriptor
	if err := yaml.Unmarshal(descriptorYAML, &d); err != nil {
		panic("upstream: invalid embedded descriptor: " + err.Error())
	}
	return d
}

func init() {
	plugins.Register("AndroidApplicationPlugin", func() domain.Plugin { return androidPlugin(newApplicationExtension) })
	plugins.Register("AndroidLibraryPlugin", func() domain.Plugin { return androidPlugin(newLibraryExtension) })
	plugins.Register("AndroidTestPlugin", func() domain.Plugin { return androidPlugin(newTestExtension) })
	plugins.Register("KotlinAndroidPlugin", func() domain.Plugin { return domain.PluginFunc(applyKotlinAndroid) })
	plugins.Register("KaptPlugin", func() domain.Plugin { return domain.PluginFunc(applyKapt) })
	plugins.Register("SpotlessPlugin", func() domain.Plugin { return domain.PluginFunc(applySpotless) })
	plugins.Register("JacocoPlugin", func() domain.Plugin { return domain.PluginFunc(applyJacoco) })
	plugins.Register("HiltPlugin", func() domain.Plugin { return domain.PluginFunc(applyHilt) })
}
