package ports

// InputResolver defines the interface for resolving input files.
//
//go:generate mockgen -destination=mocks/mock_resolver.go -package=mocks -source=resolver.go
type InputResolver interface {
	// ResolveInputs resolves the given input patterns to a sorted list of
	// concrete file paths. Patterns that match nothing contribute no paths.
	ResolveInputs(inputs []string, root string) ([]string, error)
}
