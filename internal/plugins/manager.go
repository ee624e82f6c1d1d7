package plugins

import (
	"fmt"
	"maps"
	"slices"

	"go.trai.ch/buildlogic/internal/core/domain"
	"go.trai.ch/zerr"
)

var _ domain.PluginApplier = (*Manager)(nil)

// Manager applies plugins to a project. Ids are resolved against the core
// plugins first and the build script classpath second.
type Manager struct {
	registry  *Registry
	core      map[string]Factory
	classpath map[string]domain.PluginRegistration
}

// NewManager creates a Manager over the given classpath registrations.
func NewManager(registry *Registry, classpath map[string]domain.PluginRegistration) *Manager {
	return &Manager{
		registry:  registry,
		core:      corePlugins(),
		classpath: classpath,
	}
}

// Attach makes m the plugin applier of p.
func (m *Manager) Attach(p *domain.Project) {
	p.SetPluginApplier(m)
}

// Apply applies the plugin with id to p. Applying a plugin twice is a no-op.
func (m *Manager) Apply(p *domain.Project, id string) error {
	if p.HasPlugin(id) {
		return nil
	}

	plugin, err := m.resolve(id)
	if err != nil {
		return err
	}

	// Marked first so that plugins applying each other terminate.
	p.MarkApplied(id)
	if err := plugin.Apply(p); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrPluginApplyFailed.Error()), "plugin_id", id)
	}
	return nil
}

// Available returns every id Apply can resolve, in lexical order.
func (m *Manager) Available() []string {
	ids := slices.Collect(maps.Keys(m.core))
	for id := range m.classpath {
		if _, isCore := m.core[id]; !isCore {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids
}

func (m *Manager) resolve(id string) (domain.Plugin, error) {
	if factory, ok := m.core[id]; ok {
		return factory(), nil
	}

	reg, ok := m.classpath[id]
	if !ok {
		return nil, zerr.Wrap(
			zerr.With(domain.ErrPluginNotFound, "plugin_id", id),
			fmt.Sprintf("Plugin with id '%s' not found", id),
		)
	}

	factory, ok := m.registry.Lookup(reg.ImplementationClass)
	if !ok {
		return nil, zerr.With(
			zerr.With(domain.ErrPluginImplementationMissing, "plugin_id", id),
			"implementation", reg.ImplementationClass,
		)
	}
	return factory(), nil
}

// Registrations indexes the plugins of descriptors by id. The first
// descriptor declaring an id wins, as on a classpath.
func Registrations(descriptors ...domain.PluginDescriptor) map[string]domain.PluginRegistration {
	regs := make(map[string]domain.PluginRegistration)
	for _, d := range descriptors {
		d.RegisterInto(regs)
	}
	return regs
}
