package ports

import "go.trai.ch/buildlogic/internal/core/domain"

// CatalogLoader reads version catalogs.
//
//go:generate mockgen -source=catalog.go -destination=mocks/mock_catalog.go -package=mocks
type CatalogLoader interface {
	// Load parses the catalog at path and registers it under name.
	Load(path, name string) (domain.VersionCatalog, error)
}
