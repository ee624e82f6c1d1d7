package domain

import (
	"maps"
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// VersionCatalogsExtension is the extension name under which catalogs are registered.
const VersionCatalogsExtension = "versionCatalogs"

// VersionConstraint is a version declared in a catalog.
type VersionConstraint struct {
	DisplayName string
	Required    string
	Preferred   string
	Strict      string
	Rejected    []string
}

// String returns the most specific version in the constraint.
func (v VersionConstraint) String() string {
	switch {
	case v.Strict != "":
		return v.Strict
	case v.Required != "":
		return v.Required
	default:
		return v.Preferred
	}
}

// Library is a catalog library coordinate.
type Library struct {
	Group   string
	Name    string
	Version VersionConstraint
}

// Module returns "group:name".
func (l Library) Module() string {
	return l.Group + ":" + l.Name
}

// Notation returns "group:name:version", or "group:name" when the library
// has no version (for example when a platform supplies it).
func (l Library) Notation() string {
	if v := l.Version.String(); v != "" {
		return l.Module() + ":" + v
	}
	return l.Module()
}

// PluginAlias is a plugin declared in a catalog.
type PluginAlias struct {
	ID      string
	Version VersionConstraint
}

// VersionCatalog gives read access to one version catalog.
// Lookups that miss return ErrCatalogAliasNotFound.
type VersionCatalog interface {
	Name() string
	FindLibrary(alias string) (Library, error)
	FindVersion(alias string) (VersionConstraint, error)
	FindBundle(alias string) ([]Library, error)
	FindPlugin(alias string) (PluginAlias, error)
	LibraryAliases() ([]string, error)
	VersionAliases() ([]string, error)
}

// VersionCatalogs gives access to all catalogs of a project.
type VersionCatalogs interface {
	Find(name string) (VersionCatalog, error)
	CatalogNames() []string
}

// CatalogSet is a VersionCatalogs backed by a map of catalogs keyed by name.
type CatalogSet map[string]VersionCatalog

// NewCatalogSet indexes catalogs by their name.
func NewCatalogSet(catalogs ...VersionCatalog) CatalogSet {
	set := make(CatalogSet, len(catalogs))
	for _, c := range catalogs {
		set[c.Name()] = c
	}
	return set
}

// Find returns the catalog called name.
func (s CatalogSet) Find(name string) (VersionCatalog, error) {
	c, ok := s[name]
	if !ok {
		return nil, zerr.With(ErrCatalogNotFound, "catalog", name)
	}
	return c, nil
}

// CatalogNames returns the catalog names in lexical order.
func (s CatalogSet) CatalogNames() []string {
	return slices.Sorted(maps.Keys(s))
}

// NormalizeAlias maps the accessor forms "a-b", "a_b" and "a.b" to one key.
func NormalizeAlias(alias string) string {
	return strings.NewReplacer("-", ".", "_", ".").Replace(alias)
}
