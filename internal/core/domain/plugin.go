package domain

// PluginRegistration maps a plugin id to the implementation that backs it.
type PluginRegistration struct {
	// Name is the registration name used in the descriptor (e.g. "androidLibrary").
	Name string `yaml:"name"`
	// ID is the id projects apply (e.g. "nowinandroid.android.library").
	ID string `yaml:"id"`
	// ImplementationClass names an implementation linked into the build tool.
	ImplementationClass string `yaml:"implementationClass"`
}

// PluginDescriptor is the content of a buildlogic-plugins.yaml file shipped
// inside a classpath artifact.
type PluginDescriptor struct {
	Group   string               `yaml:"group"`
	Plugins []PluginRegistration `yaml:"plugins"`
}

// RegisterInto adds the plugins of d to regs. An id already in regs keeps
// its earlier registration, so descriptors read in classpath order resolve
// each id to the first entry declaring it.
func (d PluginDescriptor) RegisterInto(regs map[string]PluginRegistration) {
	for _, reg := range d.Plugins {
		if _, exists := regs[reg.ID]; !exists {
			regs[reg.ID] = reg
		}
	}
}

// Plugin is implemented by everything that can be applied to a project.
type Plugin interface {
	Apply(p *Project) error
}

// PluginFunc adapts a function to Plugin.
type PluginFunc func(p *Project) error

// Apply calls f(p).
func (f PluginFunc) Apply(p *Project) error {
	return f(p)
}
