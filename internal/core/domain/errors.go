package domain

import "go.trai.ch/zerr"

var (
	// ErrTaskAlreadyExists is returned when attempting to add a task with a name that already exists.
	ErrTaskAlreadyExists = zerr.New("task already exists")

	// ErrMissingDependency is returned when a task references a dependency that doesn't exist in the graph.
	ErrMissingDependency = zerr.New("missing dependency")

	// ErrCycleDetected is returned when a cycle is detected in the task dependency graph.
	ErrCycleDetected = zerr.New("cycle detected")

	// ErrTaskNotFound is returned when a requested task is not found in the graph.
	ErrTaskNotFound = zerr.New("task not found")

	// ErrNoTargetsSpecified is returned when no targets are specified for the run command.
	ErrNoTargetsSpecified = zerr.New("no targets specified")

	// ErrInvalidTaskName is returned when a task name contains invalid characters.
	ErrInvalidTaskName = zerr.New("invalid task name")

	// ErrOutputPathOutsideRoot is returned when an output path is outside the project root.
	ErrOutputPathOutsideRoot = zerr.New("output path is outside project root")

	// ErrSettingsNotFound is returned when the project directory has no settings file.
	ErrSettingsNotFound = zerr.New("settings file not found")

	// ErrMissingProjectName is returned when the settings file does not name the root project.
	ErrMissingProjectName = zerr.New("missing root project name")

	// ErrConfigReadFailed is returned when a config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when a config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrPropertiesParseFailed is returned when a properties line has no key.
	ErrPropertiesParseFailed = zerr.New("failed to parse properties file")

	// ErrCatalogParseFailed is returned when a version catalog cannot be parsed.
	ErrCatalogParseFailed = zerr.New("failed to parse version catalog")

	// ErrCatalogAliasNotFound is returned when a catalog lookup misses.
	ErrCatalogAliasNotFound = zerr.New("catalog alias not found")

	// ErrCatalogNotFound is returned when a named catalog does not exist.
	ErrCatalogNotFound = zerr.New("version catalog not found")

	// ErrPluginNotFound is returned when a plugin id cannot be resolved from the classpath.
	ErrPluginNotFound = zerr.New("plugin not found")

	// ErrPluginImplementationMissing is returned when a descriptor names an unknown implementation.
	ErrPluginImplementationMissing = zerr.New("plugin implementation not found")

	// ErrPluginApplyFailed is returned when a plugin fails while being applied.
	ErrPluginApplyFailed = zerr.New("failed to apply plugin")

	// ErrPluginDescriptorInvalid is returned when a plugin descriptor cannot be read or parsed.
	ErrPluginDescriptorInvalid = zerr.New("invalid plugin descriptor")

	// ErrClasspathEntryMissing is returned when a classpath entry does not exist.
	ErrClasspathEntryMissing = zerr.New("classpath entry does not exist")

	// ErrManifestNotFound is returned when the classpath manifest resource cannot be located.
	ErrManifestNotFound = zerr.New("classpath manifest resource not found")

	// ErrManifestEmpty is returned when the classpath manifest has no entries.
	ErrManifestEmpty = zerr.New("classpath manifest is empty")

	// ErrManifestWriteFailed is returned when the classpath manifest cannot be written.
	ErrManifestWriteFailed = zerr.New("failed to write classpath manifest")

	// ErrAssertionFailed is returned when an assertion task finds a mismatch.
	ErrAssertionFailed = zerr.New("assertion failed")

	// ErrExtensionExists is returned when an extension name is registered twice.
	ErrExtensionExists = zerr.New("extension already registered")

	// ErrStoreCreateFailed is returned when the build info store directory cannot be created.
	ErrStoreCreateFailed = zerr.New("failed to create build info store directory")

	// ErrStoreReadFailed is returned when the build info cannot be read.
	ErrStoreReadFailed = zerr.New("failed to read build info")

	// ErrStoreUnmarshalFailed is returned when the build info cannot be unmarshaled.
	ErrStoreUnmarshalFailed = zerr.New("failed to unmarshal build info")

	// ErrStoreMarshalFailed is returned when the build info cannot be marshaled.
	ErrStoreMarshalFailed = zerr.New("failed to marshal build info")

	// ErrStoreWriteFailed is returned when the build info cannot be written.
	ErrStoreWriteFailed = zerr.New("failed to write build info")

	// ErrCacheStoreFailed is returned when task outputs cannot be stored in the shared cache.
	ErrCacheStoreFailed = zerr.New("failed to store outputs in build cache")

	// ErrCacheRestoreFailed is returned when task outputs cannot be restored from the shared cache.
	ErrCacheRestoreFailed = zerr.New("failed to restore outputs from build cache")

	// ErrReportWriteFailed is returned when the build report cannot be written.
	ErrReportWriteFailed = zerr.New("failed to write build report")

	// ErrReportReadFailed is returned when the build report cannot be read.
	ErrReportReadFailed = zerr.New("failed to read build report")

	// ErrBuildExecutionFailed is returned when the build execution fails.
	ErrBuildExecutionFailed = zerr.New("build execution failed")

	// ErrTaskExecutionFailed is returned when a task execution fails.
	ErrTaskExecutionFailed = zerr.New("task execution failed")

	// ErrInputResolutionFailed is returned when input resolution fails.
	ErrInputResolutionFailed = zerr.New("failed to resolve inputs")

	// ErrInputHashComputationFailed is returned when input hash computation fails.
	ErrInputHashComputationFailed = zerr.New("failed to compute input hash")

	// ErrFailedToGetRoot is returned when the project root path cannot be determined.
	ErrFailedToGetRoot = zerr.New("failed to get absolute path of project root")

	// ErrFailedToCleanOutput is returned when cleaning an output file fails.
	ErrFailedToCleanOutput = zerr.New("failed to clean output file")

	// ErrFixtureIO is returned when a sandbox fixture directory or file cannot be created.
	ErrFixtureIO = zerr.New("failed to write fixture file")
)
