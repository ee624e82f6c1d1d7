package ports

// BuildCache stores task outputs keyed by input hash so that they can be
// reused by every project sharing the same home directory.
//
//go:generate mockgen -source=cache.go -destination=mocks/mock_cache.go -package=mocks
type BuildCache interface {
	// Restore copies the outputs cached under key in home into root.
	// It returns false when the cache holds no complete entry for key.
	Restore(home, key, root string, outputs []string) (bool, error)

	// Store copies the outputs below root into the cache in home under key.
	Store(home, key, root string, outputs []string) error
}
