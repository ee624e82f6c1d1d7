// Package ports defines the core interfaces for the application.
package ports

import (
	"context"
	"io"

	"go.trai.ch/buildlogic/internal/core/domain"
)

// Executor defines the interface for executing tasks.
//
//go:generate mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Executor interface {
	// Execute runs the command of the given task.
	//
	// The env parameter contains extra environment variables in "KEY=VALUE" format.
	//
	// It returns an error if the task execution fails.
	Execute(ctx context.Context, task *domain.Task, env []string, stdout, stderr io.Writer) error
}
