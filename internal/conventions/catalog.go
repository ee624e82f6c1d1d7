package conventions

import (
	"fmt"

	"go.trai.ch/buildlogic/internal/core/domain"
	"go.trai.ch/zerr"
)

// libs returns the project's "libs" catalog.
func libs(p *domain.Project) (domain.VersionCatalog, error) {
	catalogs, ok := p.VersionCatalogs()
	if !ok {
		return nil, zerr.With(domain.ErrCatalogNotFound, "catalog", domain.DefaultCatalogName)
	}
	return catalogs.Find(domain.DefaultCatalogName)
}

// optionalLibs is libs for conventions that work without a catalog.
func optionalLibs(p *domain.Project) domain.VersionCatalog {
	c, err := libs(p)
	if err != nil {
		return nil
	}
	return c
}

// versionOr returns the catalog version for alias, or fallback when the
// catalog or the alias is missing.
func versionOr(c domain.VersionCatalog, alias, fallback string) string {
	if c == nil {
		return fallback
	}
	v, err := c.FindVersion(alias)
	if err != nil || v.String() == "" {
		return fallback
	}
	return v.String()
}

// addLibrary declares the catalog library alias in configuration when the
// catalog has it.
func addLibrary(p *domain.Project, c domain.VersionCatalog, configuration, alias string) {
	addLibraryAs(p, c, configuration, alias, "%s")
}

// addPlatform declares the catalog library alias as a platform.
func addPlatform(p *domain.Project, c domain.VersionCatalog, configuration, alias string) {
	addLibraryAs(p, c, configuration, alias, "platform(%s)")
}

func addLibraryAs(p *domain.Project, c domain.VersionCatalog, configuration, alias, format string) {
	if c == nil {
		return
	}
	lib, err := c.FindLibrary(alias)
	if err != nil || lib.Group == "" {
		return
	}
	p.AddDependency(configuration, fmt.Sprintf(format, lib.Notation()))
}
