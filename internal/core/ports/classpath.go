package ports

import "go.trai.ch/buildlogic/internal/core/domain"

// PluginResolver reads plugin descriptors from a build script classpath.
//
//go:generate mockgen -source=classpath.go -destination=mocks/mock_classpath.go -package=mocks
type PluginResolver interface {
	// Resolve returns the plugins declared by the classpath entries, keyed by id.
	// When two entries declare the same id, the first one wins.
	Resolve(entries []string) (map[string]domain.PluginRegistration, error)
}
