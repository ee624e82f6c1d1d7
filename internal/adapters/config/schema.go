package config

// Settings represents the structure of the settings.yaml file.
type Settings struct {
	RootProject string `yaml:"rootProject"`
}

// BuildFile represents the structure of the build.yaml build script.
type BuildFile struct {
	Buildscript Buildscript        `yaml:"buildscript"`
	Plugins     []string           `yaml:"plugins"`
	Tasks       map[string]TaskDTO `yaml:"tasks"`
}

// Buildscript configures how the build script itself is resolved.
type Buildscript struct {
	Classpath []string `yaml:"classpath"`
}

// TaskDTO represents a task definition in the build script. A name that a
// plugin already registered configures that task instead.
type TaskDTO struct {
	Description string            `yaml:"description"`
	Group       string            `yaml:"group"`
	Input       []string          `yaml:"input"`
	Cmd         []string          `yaml:"cmd"`
	Target      []string          `yaml:"target"`
	DependsOn   []string          `yaml:"dependsOn"`
	Environment map[string]string `yaml:"environment"`
	Enabled     *bool             `yaml:"enabled"`
	Cacheable   bool              `yaml:"cacheable"`
	Assert      *AssertDTO        `yaml:"assert"`
}

// AssertDTO lists checks an assertion task runs against the configured project.
type AssertDTO struct {
	HasPlugin    []string            `yaml:"hasPlugin"`
	NotPlugin    []string            `yaml:"notPlugin"`
	Extensions   []string            `yaml:"extensions"`
	Properties   map[string]string   `yaml:"properties"`
	Dependencies map[string][]string `yaml:"dependencies"`
	Tasks        []string            `yaml:"tasks"`
	// Values maps dotted paths into extensions to their expected value,
	// e.g. "android.DefaultConfig.MinSdk": "21".
	Values map[string]string `yaml:"values"`
}
