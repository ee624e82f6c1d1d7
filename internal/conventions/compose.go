package conventions

import (
	"go.trai.ch/buildlogic/internal/core/domain"
	"go.trai.ch/buildlogic/internal/upstream"
	"go.trai.ch/zerr"
)

// Catalog aliases read by the compose conventions.
const (
	composeVersionAlias = "androidxCompose"
	composeBomAlias     = "androidx-compose-bom"
)

func applyAndroidApplicationCompose(p *domain.Project) error {
	if err := p.ApplyPlugin(upstream.AndroidApplicationID); err != nil {
		return err
	}
	return configureAndroidCompose(p)
}

func applyAndroidLibraryCompose(p *domain.Project) error {
	if err := p.ApplyPlugin(upstream.AndroidLibraryID); err != nil {
		return err
	}
	return configureAndroidCompose(p)
}

// configureAndroidCompose enables Compose with the compiler version from
// the catalog and aligns Compose libraries on the BOM when it is declared.
func configureAndroidCompose(p *domain.Project) error {
	common, err := androidExtension(p)
	if err != nil {
		return err
	}
	c, err := libs(p)
	if err != nil {
		return err
	}
	version, err := c.FindVersion(composeVersionAlias)
	if err != nil {
		return zerr.Wrap(err, "compose compiler version is not declared")
	}

	common.BuildFeatures.Compose = true
	common.ComposeOptions.KotlinCompilerExtensionVersion = version.String()

	addPlatform(p, c, "implementation", composeBomAlias)
	addPlatform(p, c, "androidTestImplementation", composeBomAlias)
	return nil
}
