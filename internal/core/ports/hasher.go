package ports

import "go.trai.ch/buildlogic/internal/core/domain"

// Hasher defines the interface for computing hashes.
//
//go:generate mockgen -destination=mocks/mock_hasher.go -package=mocks -source=hasher.go
type Hasher interface {
	// ComputeInputHash computes the input hash for a given task from its
	// definition, environment and the resolved input files. Paths are hashed
	// relative to root so that equal projects in different directories agree.
	ComputeInputHash(task *domain.Task, env map[string]string, inputs []string, root string) (string, error)

	// ComputeOutputHash computes the hash of the output files below root.
	ComputeOutputHash(outputs []string, root string) (string, error)
}
