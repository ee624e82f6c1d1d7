// Package config loads a project directory into a configured domain.Project:
// settings, local properties, the version catalog and the build script.
package config

import (
	"errors"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"go.trai.ch/buildlogic/internal/core/domain"
	"go.trai.ch/buildlogic/internal/core/ports"
	"go.trai.ch/buildlogic/internal/plugins"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader.
type Loader struct {
	logger   ports.Logger
	catalogs ports.CatalogLoader
	resolver ports.PluginResolver
	registry *plugins.Registry
}

// NewLoader creates a new Loader.
func NewLoader(
	logger ports.Logger,
	catalogs ports.CatalogLoader,
	resolver ports.PluginResolver,
	registry *plugins.Registry,
) *Loader {
	return &Loader{
		logger:   logger,
		catalogs: catalogs,
		resolver: resolver,
		registry: registry,
	}
}

// Load reads the project in dir and applies its build script.
func (l *Loader) Load(dir string) (*domain.Project, error) {
	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrFailedToGetRoot.Error())
	}

	settings, err := loadSettings(root)
	if err != nil {
		return nil, err
	}
	project := domain.NewProject(settings.RootProject, root)

	if err := l.loadProperties(project); err != nil {
		return nil, err
	}
	if err := l.loadCatalogs(project); err != nil {
		return nil, err
	}

	build, err := l.loadBuildFile(root)
	if err != nil {
		return nil, err
	}

	classpath, err := l.resolveClasspath(root, build.Buildscript.Classpath)
	if err != nil {
		return nil, err
	}
	plugins.NewManager(l.registry, classpath).Attach(project)

	for _, id := range build.Plugins {
		if err := project.ApplyPlugin(id); err != nil {
			return nil, zerr.With(err, "file", domain.BuildFileName)
		}
	}

	if err := configureTasks(project, build.Tasks); err != nil {
		return nil, zerr.With(err, "file", domain.BuildFileName)
	}

	if err := project.Tasks().Validate(); err != nil {
		return nil, err
	}
	return project, nil
}

func loadSettings(root string) (Settings, error) {
	var settings Settings

	path := filepath.Join(root, domain.SettingsFileName)
	data, err := os.ReadFile(path) //nolint:gosec // path is inside the project
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return settings, zerr.With(domain.ErrSettingsNotFound, "project_dir", root)
		}
		return settings, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "file", path)
	}
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return settings, zerr.With(zerr.Wrap(err, domain.ErrConfigParseFailed.Error()), "file", path)
	}
	if settings.RootProject == "" {
		return settings, zerr.With(domain.ErrMissingProjectName, "file", path)
	}
	return settings, nil
}

func (l *Loader) loadProperties(project *domain.Project) error {
	path := filepath.Join(project.Dir, domain.LocalPropertiesFileName)
	data, err := os.ReadFile(path) //nolint:gosec // path is inside the project
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "file", path)
	}

	props, err := ParseProperties(data)
	if err != nil {
		return zerr.With(err, "file", path)
	}
	for k, v := range props {
		project.SetProperty(k, v)
	}

	if sdk, ok := props[domain.SDKDirProperty]; ok {
		if _, err := os.Stat(sdk); err != nil {
			l.logger.Warn("SDK location " + sdk + " from " + domain.LocalPropertiesFileName + " does not exist")
		}
	}
	return nil
}

// loadCatalogs registers the versionCatalogs extension. The default catalog
// is added when gradle/libs.versions.toml exists.
func (l *Loader) loadCatalogs(project *domain.Project) error {
	var catalogs []domain.VersionCatalog

	path := filepath.Join(project.Dir, filepath.FromSlash(domain.CatalogFileName))
	if _, err := os.Stat(path); err == nil {
		c, err := l.catalogs.Load(path, domain.DefaultCatalogName)
		if err != nil {
			return err
		}
		catalogs = append(catalogs, c)
	}

	return project.AddExtension(domain.VersionCatalogsExtension, domain.NewCatalogSet(catalogs...))
}

func (l *Loader) loadBuildFile(root string) (BuildFile, error) {
	var build BuildFile

	path := filepath.Join(root, domain.BuildFileName)
	data, err := os.ReadFile(path) //nolint:gosec // path is inside the project
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			l.logger.Warn("no " + domain.BuildFileName + " in " + root + ", the project has no plugins or tasks")
			return build, nil
		}
		return build, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "file", path)
	}
	if err := yaml.Unmarshal(data, &build); err != nil {
		return build, zerr.With(zerr.Wrap(err, domain.ErrConfigParseFailed.Error()), "file", path)
	}
	return build, nil
}

func (l *Loader) resolveClasspath(root string, entries []string) (map[string]domain.PluginRegistration, error) {
	resolved := make([]string, len(entries))
	for i, entry := range entries {
		if filepath.IsAbs(entry) {
			resolved[i] = filepath.Clean(entry)
		} else {
			resolved[i] = filepath.Join(root, entry)
		}
	}
	return l.resolver.Resolve(resolved)
}

// configureTasks registers the build script's tasks in name order. A task a
// plugin already registered is configured instead.
func configureTasks(project *domain.Project, tasks map[string]TaskDTO) error {
	for _, name := range slices.Sorted(maps.Keys(tasks)) {
		dto := tasks[name]
		key := domain.NewInternedString(name)

		if _, exists := project.Tasks().GetTask(key); exists {
			if err := project.Tasks().ConfigureTask(key, func(t *domain.Task) {
				applyDTO(project, t, dto)
			}); err != nil {
				return err
			}
			continue
		}

		task := &domain.Task{Name: key}
		applyDTO(project, task, dto)
		if err := project.RegisterTask(task); err != nil {
			return err
		}
	}
	return nil
}

// applyDTO overlays the fields set in dto onto t.
func applyDTO(project *domain.Project, t *domain.Task, dto TaskDTO) {
	if dto.Description != "" {
		t.Description = dto.Description
	}
	if dto.Group != "" {
		t.Group = dto.Group
	}
	if len(dto.Cmd) > 0 {
		t.Command = dto.Cmd
	}
	if len(dto.Input) > 0 {
		t.Inputs = canonicalizeStrings(dto.Input)
	}
	if len(dto.Target) > 0 {
		t.Outputs = canonicalizeStrings(dto.Target)
	}
	for _, dep := range dto.DependsOn {
		dep := domain.NewInternedString(domain.TaskNameFromPath(dep))
		if !slices.Contains(t.Dependencies, dep) {
			t.Dependencies = append(t.Dependencies, dep)
		}
	}
	if len(dto.Environment) > 0 {
		if t.Environment == nil {
			t.Environment = make(map[string]string, len(dto.Environment))
		}
		maps.Copy(t.Environment, dto.Environment)
	}
	if dto.Enabled != nil {
		t.Disabled = !*dto.Enabled
	}
	if dto.Cacheable {
		t.Cacheable = true
	}
	if dto.Assert != nil {
		t.Action = assertionAction(project, *dto.Assert)
	}
}

func canonicalizeStrings(strs []string) []domain.InternedString {
	if len(strs) == 0 {
		return nil
	}

	sorted := slices.Clone(strs)
	slices.Sort(sorted)
	unique := slices.Compact(sorted)

	res := make([]domain.InternedString, len(unique))
	for i, s := range unique {
		res[i] = domain.NewInternedString(s)
	}
	return res
}
