// Package catalog parses TOML version catalogs (gradle/libs.versions.toml).
package catalog

import (
	"os"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"go.trai.ch/buildlogic/internal/core/domain"
	"go.trai.ch/buildlogic/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.CatalogLoader = (*Loader)(nil)

// document is the raw TOML layout. Entries can be written in short string
// form or as tables, so they are decoded loosely and interpreted afterwards.
type document struct {
	Versions  map[string]any      `toml:"versions"`
	Libraries map[string]any      `toml:"libraries"`
	Bundles   map[string][]string `toml:"bundles"`
	Plugins   map[string]any      `toml:"plugins"`
}

// Loader implements ports.CatalogLoader.
type Loader struct{}

// NewLoader creates a new catalog Loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses the catalog file at path and names it name.
func (l *Loader) Load(path, name string) (domain.VersionCatalog, error) {
	//nolint:gosec // path is resolved from the project directory
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "file", path)
	}

	c, err := Parse(name, data)
	if err != nil {
		return nil, zerr.With(err, "file", path)
	}
	return c, nil
}

// Parse builds a Catalog from TOML source.
func Parse(name string, data []byte) (*Catalog, error) {
	var doc document
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, zerr.Wrap(err, domain.ErrCatalogParseFailed.Error())
	}

	c := &Catalog{
		name:      name,
		versions:  make(map[string]domain.VersionConstraint),
		libraries: make(map[string]domain.Library),
		bundles:   make(map[string][]string),
		plugins:   make(map[string]domain.PluginAlias),
	}

	for alias, raw := range doc.Versions {
		v, err := parseVersion(raw)
		if err != nil {
			return nil, zerr.With(err, "version", alias)
		}
		c.versions[domain.NormalizeAlias(alias)] = v
	}

	for alias, raw := range doc.Libraries {
		lib, err := c.parseLibrary(raw)
		if err != nil {
			return nil, zerr.With(err, "library", alias)
		}
		c.libraries[domain.NormalizeAlias(alias)] = lib
	}

	for alias, members := range doc.Bundles {
		refs := make([]string, len(members))
		for i, m := range members {
			ref := domain.NormalizeAlias(m)
			if _, ok := c.libraries[ref]; !ok {
				return nil, zerr.With(zerr.With(domain.ErrCatalogParseFailed, "bundle", alias), "library", m)
			}
			refs[i] = ref
		}
		c.bundles[domain.NormalizeAlias(alias)] = refs
	}

	for alias, raw := range doc.Plugins {
		p, err := c.parsePlugin(raw)
		if err != nil {
			return nil, zerr.With(err, "plugin", alias)
		}
		c.plugins[domain.NormalizeAlias(alias)] = p
	}

	return c, nil
}

// parseVersion accepts "1.0" or a rich version table.
func parseVersion(raw any) (domain.VersionConstraint, error) {
	switch v := raw.(type) {
	case string:
		return domain.VersionConstraint{Required: v}, nil
	case map[string]any:
		vc := domain.VersionConstraint{
			Required:  stringField(v, "require"),
			Preferred: stringField(v, "prefer"),
			Strict:    stringField(v, "strictly"),
		}
		if rejected, ok := v["reject"].([]any); ok {
			for _, r := range rejected {
				if s, ok := r.(string); ok {
					vc.Rejected = append(vc.Rejected, s)
				}
			}
		}
		return vc, nil
	default:
		return domain.VersionConstraint{}, domain.ErrCatalogParseFailed
	}
}

// resolveVersion interprets a "version" field, which is either a plain
// version, a rich version table or a {ref = "alias"} reference.
func (c *Catalog) resolveVersion(raw any) (domain.VersionConstraint, error) {
	if raw == nil {
		return domain.VersionConstraint{}, nil
	}
	if table, ok := raw.(map[string]any); ok {
		if ref, ok := table["ref"].(string); ok {
			v, found := c.versions[domain.NormalizeAlias(ref)]
			if !found {
				return v, zerr.With(domain.ErrCatalogAliasNotFound, "version_ref", ref)
			}
			v.DisplayName = ref
			return v, nil
		}
	}
	return parseVersion(raw)
}

// parseLibrary accepts "group:name:version", or a table with either
// module = "group:name" or group and name, plus an optional version.
func (c *Catalog) parseLibrary(raw any) (domain.Library, error) {
	switch v := raw.(type) {
	case string:
		parts := strings.Split(v, ":")
		if len(parts) < 2 || len(parts) > 3 {
			return domain.Library{}, zerr.With(domain.ErrCatalogParseFailed, "notation", v)
		}
		lib := domain.Library{Group: parts[0], Name: parts[1]}
		if len(parts) == 3 {
			lib.Version = domain.VersionConstraint{Required: parts[2]}
		}
		return lib, nil
	case map[string]any:
		var lib domain.Library
		if module := stringField(v, "module"); module != "" {
			group, name, ok := strings.Cut(module, ":")
			if !ok {
				return lib, zerr.With(domain.ErrCatalogParseFailed, "module", module)
			}
			lib.Group, lib.Name = group, name
		} else {
			lib.Group, lib.Name = stringField(v, "group"), stringField(v, "name")
		}
		if lib.Group == "" || lib.Name == "" {
			return lib, domain.ErrCatalogParseFailed
		}
		version, err := c.resolveVersion(v["version"])
		if err != nil {
			return lib, err
		}
		lib.Version = version
		return lib, nil
	default:
		return domain.Library{}, domain.ErrCatalogParseFailed
	}
}

// parsePlugin accepts "id:version" or a table with id and version.
func (c *Catalog) parsePlugin(raw any) (domain.PluginAlias, error) {
	switch v := raw.(type) {
	case string:
		id, version, _ := strings.Cut(v, ":")
		return domain.PluginAlias{ID: id, Version: domain.VersionConstraint{Required: version}}, nil
	case map[string]any:
		p := domain.PluginAlias{ID: stringField(v, "id")}
		if p.ID == "" {
			return p, domain.ErrCatalogParseFailed
		}
		version, err := c.resolveVersion(v["version"])
		if err != nil {
			return p, err
		}
		p.Version = version
		return p, nil
	default:
		return domain.PluginAlias{}, domain.ErrCatalogParseFailed
	}
}

func stringField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

// Catalog is a parsed version catalog.
type Catalog struct {
	name      string
	versions  map[string]domain.VersionConstraint
	libraries map[string]domain.Library
	bundles   map[string][]string
	plugins   map[string]domain.PluginAlias
}

var _ domain.VersionCatalog = (*Catalog)(nil)

// Name returns the catalog name.
func (c *Catalog) Name() string {
	return c.name
}

// FindLibrary looks up a library alias.
func (c *Catalog) FindLibrary(alias string) (domain.Library, error) {
	lib, ok := c.libraries[domain.NormalizeAlias(alias)]
	if !ok {
		return lib, c.miss("library", alias)
	}
	return lib, nil
}

// FindVersion looks up a version alias.
func (c *Catalog) FindVersion(alias string) (domain.VersionConstraint, error) {
	v, ok := c.versions[domain.NormalizeAlias(alias)]
	if !ok {
		return v, c.miss("version", alias)
	}
	return v, nil
}

// FindBundle looks up a bundle alias and returns its libraries.
func (c *Catalog) FindBundle(alias string) ([]domain.Library, error) {
	refs, ok := c.bundles[domain.NormalizeAlias(alias)]
	if !ok {
		return nil, c.miss("bundle", alias)
	}
	libs := make([]domain.Library, len(refs))
	for i, ref := range refs {
		libs[i] = c.libraries[ref]
	}
	return libs, nil
}

// FindPlugin looks up a plugin alias.
func (c *Catalog) FindPlugin(alias string) (domain.PluginAlias, error) {
	p, ok := c.plugins[domain.NormalizeAlias(alias)]
	if !ok {
		return p, c.miss("plugin", alias)
	}
	return p, nil
}

// LibraryAliases returns the normalized library aliases in lexical order.
func (c *Catalog) LibraryAliases() ([]string, error) {
	return sortedKeys(c.libraries), nil
}

// VersionAliases returns the normalized version aliases in lexical order.
func (c *Catalog) VersionAliases() ([]string, error) {
	return sortedKeys(c.versions), nil
}

func (c *Catalog) miss(kind, alias string) error {
	return zerr.With(zerr.With(zerr.With(domain.ErrCatalogAliasNotFound, "catalog", c.name), "kind", kind), "alias", alias)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
