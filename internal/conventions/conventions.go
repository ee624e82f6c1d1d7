// Package conventions holds the nowinandroid convention plugins. Each one
// applies upstream plugins and configures them with the project defaults.
package conventions

import (
	_ "embed"

	"go.trai.ch/buildlogic/internal/core/domain"
	"go.trai.ch/buildlogic/internal/plugins"
	"gopkg.in/yaml.v3"

	// The conventions apply upstream plugins by id.
	_ "go.trai.ch/buildlogic/internal/upstream"
)

// Plugin ids.
const (
	AndroidApplicationID        = "nowinandroid.android.application"
	AndroidApplicationComposeID = "nowinandroid.android.application.compose"
	AndroidApplicationJacocoID  = "nowinandroid.android.application.jacoco"
	AndroidLibraryID            = "nowinandroid.android.library"
	AndroidLibraryComposeID     = "nowinandroid.android.library.compose"
	AndroidLibraryJacocoID      = "nowinandroid.android.library.jacoco"
	AndroidFeatureID            = "nowinandroid.android.feature"
	AndroidTestID               = "nowinandroid.android.test"
	SpotlessID                  = "nowinandroid.spotless"
)

//go:embed buildlogic-plugins.yaml
var descriptorYAML []byte

// Descriptor returns the plugin descriptor shipped with this artifact.
func Descriptor() domain.PluginDescriptor {
	var d domain.PluginDescriptor
	if err := yaml.Unmarshal(descriptorYAML, &d); err != nil {
		panic("conventions: invalid embedded descriptor: " + err.Error())
	}
	return d
}

func init() {
	register := func(name string, apply func(*domain.Project) error) {
		plugins.Register(name, func() domain.Plugin { return domain.PluginFunc(apply) })
	}

	register("AndroidApplicationConventionPlugin", applyAndroidApplication)
	register("AndroidApplicationComposeConventionPlugin", applyAndroidApplicationCompose)
	register("AndroidApplicationJacocoConventionPlugin", applyAndroidApplicationJacoco)
	register("AndroidLibraryConventionPlugin", applyAndroidLibrary)
	register("AndroidLibraryComposeConventionPlugin", applyAndroidLibraryCompose)
	register("AndroidLibraryJacocoConventionPlugin", applyAndroidLibraryJacoco)
	register("AndroidFeatureConventionPlugin", applyAndroidFeature)
	register("AndroidTestConventionPlugin", applyAndroidTest)
	register("SpotlessConventionPlugin", applySpotless)
}

// applyAll applies ids in order.
func applyAll(p *domain.Project, ids ...string) error {
	for _, id := range ids {
		if err := p.ApplyPlugin(id); err != nil {
			return err
		}
	}
	return nil
}
