package ports

import (
	"context"
	"io"
)

//go:generate mockgen -source=telemetry.go -destination=mocks/mock_telemetry.go -package=mocks

// Tracer is the entry point for creating spans.
type Tracer interface {
	// Start creates a new span.
	Start(ctx context.Context, name string, opts ...SpanOption) (context.Context, Span)
	// EmitPlan signals that a set of tasks is planned for execution.
	EmitPlan(ctx context.Context, taskNames []string, targets []string)
}

// Span represents a unit of work.
type Span interface {
	io.Writer
	// End completes the span.
	End()
	// RecordError records an error for the span.
	RecordError(err error)
	// SetAttribute adds a key-value pair to the span.
	SetAttribute(key string, value any)
}

// OutcomeAttribute is the span attribute carrying a task's domain.TaskOutcome.
const OutcomeAttribute = "buildlogic.task.outcome"

// SpanConfig holds configuration for a starting span.
type SpanConfig struct {
	// Task marks the span as the execution of a build task.
	Task bool
}

// SpanOption is a functional option for configuring a span.
type SpanOption func(*SpanConfig)

// WithTask marks the span as a task span.
func WithTask() SpanOption {
	return func(c *SpanConfig) {
		c.Task = true
	}
}
