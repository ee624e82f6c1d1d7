package ports

import "go.trai.ch/buildlogic/internal/core/domain"

// ConfigLoader defines the interface for loading a project.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the project files in dir, applies the requested plugins and
	// returns the configured project.
	Load(dir string) (*domain.Project, error)
}
