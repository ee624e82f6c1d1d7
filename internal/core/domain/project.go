package domain

import (
	"maps"
	"slices"

	"go.trai.ch/zerr"
)

// Project is the in-memory model a build script and its plugins configure.
type Project struct {
	Name string
	Dir  string

	properties   map[string]string
	applied      []string
	appliedSet   map[string]bool
	extensions   map[string]any
	dependencies map[string][]string
	tasks        *Graph
	applier      PluginApplier
}

// PluginApplier applies plugins to a project by id.
type PluginApplier interface {
	Apply(p *Project, id string) error
}

// NewProject creates an empty project rooted at dir.
func NewProject(name, dir string) *Project {
	g := NewGraph()
	g.SetRoot(dir)
	return &Project{
		Name:         name,
		Dir:          dir,
		properties:   make(map[string]string),
		appliedSet:   make(map[string]bool),
		extensions:   make(map[string]any),
		dependencies: make(map[string][]string),
		tasks:        g,
	}
}

// Tasks returns the project's task graph.
func (p *Project) Tasks() *Graph {
	return p.tasks
}

// RegisterTask adds a task to the project.
func (p *Project) RegisterTask(t *Task) error {
	if t.WorkingDir.IsZero() {
		t.WorkingDir = NewInternedString(p.Dir)
	}
	return p.tasks.AddTask(t)
}

// SetPluginApplier sets the applier used by ApplyPlugin.
func (p *Project) SetPluginApplier(a PluginApplier) {
	p.applier = a
}

// ApplyPlugin applies the plugin with id. Plugins use it to apply the
// plugins they build on.
func (p *Project) ApplyPlugin(id string) error {
	if p.applier == nil {
		return zerr.With(ErrPluginNotFound, "plugin_id", id)
	}
	return p.applier.Apply(p, id)
}

// HasPlugin reports whether the plugin with id has been applied.
func (p *Project) HasPlugin(id string) bool {
	return p.appliedSet[id]
}

// Plugins returns the applied plugin ids in application order.
func (p *Project) Plugins() []string {
	return slices.Clone(p.applied)
}

// MarkApplied records id as applied. It returns false if it already was.
func (p *Project) MarkApplied(id string) bool {
	if p.appliedSet[id] {
		return false
	}
	p.appliedSet[id] = true
	p.applied = append(p.applied, id)
	return true
}

// SetProperty sets a project property.
func (p *Project) SetProperty(key, value string) {
	p.properties[key] = value
}

// Property returns a project property.
func (p *Project) Property(key string) (string, bool) {
	v, ok := p.properties[key]
	return v, ok
}

// Properties returns a copy of all project properties.
func (p *Project) Properties() map[string]string {
	return maps.Clone(p.properties)
}

// AddExtension registers a named extension object.
func (p *Project) AddExtension(name string, ext any) error {
	if _, exists := p.extensions[name]; exists {
		return zerr.With(ErrExtensionExists, "extension", name)
	}
	p.extensions[name] = ext
	return nil
}

// Extension returns the extension registered under name.
func (p *Project) Extension(name string) (any, bool) {
	ext, ok := p.extensions[name]
	return ext, ok
}

// ExtensionNames returns the registered extension names in lexical order.
func (p *Project) ExtensionNames() []string {
	return slices.Sorted(maps.Keys(p.extensions))
}

// ExtensionOf returns the extension registered under name if it has type T.
func ExtensionOf[T any](p *Project, name string) (T, bool) {
	ext, ok := p.extensions[name]
	if !ok {
		var zero T
		return zero, false
	}
	typed, ok := ext.(T)
	return typed, ok
}

// VersionCatalogs returns the project's version catalogs, if registered.
func (p *Project) VersionCatalogs() (VersionCatalogs, bool) {
	return ExtensionOf[VersionCatalogs](p, VersionCatalogsExtension)
}

// AddDependency declares a dependency notation in a configuration.
func (p *Project) AddDependency(configuration, notation string) {
	p.dependencies[configuration] = append(p.dependencies[configuration], notation)
}

// Dependencies returns the notations declared in configuration.
func (p *Project) Dependencies(configuration string) []string {
	return slices.Clone(p.dependencies[configuration])
}
