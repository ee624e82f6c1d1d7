package telemetry

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/buildlogic/internal/core/domain"
	"go.trai.ch/buildlogic/internal/core/ports"
)

var _ sdktrace.SpanProcessor = (*Bridge)(nil)

// Bridge implements sdktrace.SpanProcessor and forwards task spans to a Renderer.
// Spans not started with ports.WithTask are ignored.
type Bridge struct {
	renderer ports.Renderer
}

// NewBridge returns a new Bridge.
func NewBridge(renderer ports.Renderer) *Bridge {
	return &Bridge{renderer: renderer}
}

// OnStart is called when a span starts.
func (b *Bridge) OnStart(_ context.Context, s sdktrace.ReadWriteSpan) {
	if b.renderer == nil || !isTaskSpan(s.Attributes()) {
		return
	}

	sc := s.SpanContext()
	if !sc.IsValid() {
		return
	}

	b.renderer.OnTaskStart(sc.SpanID().String(), s.Name(), s.StartTime())
}

// OnEnd is called when a span ends.
func (b *Bridge) OnEnd(s sdktrace.ReadOnlySpan) {
	if b.renderer == nil || !isTaskSpan(s.Attributes()) {
		return
	}

	sc := s.SpanContext()
	if !sc.IsValid() {
		return
	}

	var err error
	if s.Status().Code == codes.Error {
		desc := s.Status().Description
		if desc == "" {
			desc = "task failed"
		}
		err = errors.New(desc)
	}

	b.renderer.OnTaskComplete(sc.SpanID().String(), s.EndTime(), outcomeOf(s.Attributes(), err), err)
}

// ForceFlush does nothing.
func (b *Bridge) ForceFlush(_ context.Context) error {
	return nil
}

// Shutdown does nothing.
func (b *Bridge) Shutdown(_ context.Context) error {
	return nil
}

func isTaskSpan(attrs []attribute.KeyValue) bool {
	for _, kv := range attrs {
		if string(kv.Key) == taskAttribute {
			return kv.Value.AsBool()
		}
	}
	return false
}

// outcomeOf reads the outcome attribute. Spans that never set one are
// reported as FAILED when they carry an error and SUCCESS otherwise.
func outcomeOf(attrs []attribute.KeyValue, err error) domain.TaskOutcome {
	for _, kv := range attrs {
		if string(kv.Key) == ports.OutcomeAttribute {
			if outcome := domain.TaskOutcome(kv.Value.AsString()); outcome.Valid() {
				return outcome
			}
		}
	}
	if err != nil {
		return domain.OutcomeFailed
	}
	return domain.OutcomeSuccess
}
