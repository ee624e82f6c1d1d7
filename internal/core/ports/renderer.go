package ports

import (
	"io"
	"time"

	"go.trai.ch/buildlogic/internal/core/domain"
)

// Renderer is the abstraction for console output.
// It decouples telemetry collection from presentation.
//
//go:generate mockgen -source=renderer.go -destination=mocks/mock_renderer.go -package=mocks
type Renderer interface {
	// OnPlanEmit is called when the scheduler has planned the task graph.
	// tasks: list of all task names in execution order
	// targets: the user-requested target tasks
	OnPlanEmit(tasks []string, targets []string)

	// OnTaskStart is called when a task begins execution.
	OnTaskStart(spanID, name string, startTime time.Time)

	// OnTaskLog is called when a task emits output.
	// data may contain partial lines.
	OnTaskLog(spanID string, data []byte)

	// OnTaskComplete is called when a task finishes.
	OnTaskComplete(spanID string, endTime time.Time, outcome domain.TaskOutcome, err error)

	// OnBuildFinish is called once after the last task with the build error, if any.
	OnBuildFinish(err error)

	// Stop flushes any buffered output.
	Stop() error
}

// RendererFactory creates a Renderer writing to w.
type RendererFactory func(w io.Writer) Renderer
