package telemetry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/buildlogic/internal/adapters/telemetry"
	"go.trai.ch/buildlogic/internal/core/domain"
	"go.trai.ch/buildlogic/internal/core/ports"
	"go.trai.ch/buildlogic/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestBridge_ForwardsTaskSpans(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockRenderer := mocks.NewMockRenderer(ctrl)

	tp := telemetry.NewProvider(mockRenderer)
	defer func() { _ = tp.Shutdown(context.Background()) }()
	tracer := telemetry.NewOTelTracer(tp, nil)

	gomock.InOrder(
		mockRenderer.EXPECT().OnTaskStart(gomock.Any(), "compile", gomock.Any()),
		mockRenderer.EXPECT().OnTaskComplete(gomock.Any(), gomock.Any(), domain.OutcomeUpToDate, nil),
	)

	_, span := tracer.Start(context.Background(), "compile", ports.WithTask())
	span.SetAttribute(ports.OutcomeAttribute, string(domain.OutcomeUpToDate))
	span.End()
}

func TestBridge_IgnoresNonTaskSpans(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockRenderer := mocks.NewMockRenderer(ctrl)

	tp := telemetry.NewProvider(mockRenderer)
	defer func() { _ = tp.Shutdown(context.Background()) }()
	tracer := telemetry.NewOTelTracer(tp, nil)

	// No renderer calls are expected for the build span.
	_, span := tracer.Start(context.Background(), "build")
	span.End()
}

func TestBridge_OnEndWithError(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockRenderer := mocks.NewMockRenderer(ctrl)

	tp := telemetry.NewProvider(mockRenderer)
	defer func() { _ = tp.Shutdown(context.Background()) }()
	tracer := telemetry.NewOTelTracer(tp, nil)

	mockRenderer.EXPECT().OnTaskStart(gomock.Any(), "broken", gomock.Any())
	mockRenderer.EXPECT().OnTaskComplete(gomock.Any(), gomock.Any(), domain.OutcomeFailed, gomock.Any()).
		Do(func(_ string, _ time.Time, _ domain.TaskOutcome, err error) {
			assert.EqualError(t, err, "boom")
		})

	_, span := tracer.Start(context.Background(), "broken", ports.WithTask())
	span.RecordError(errors.New("boom"))
	span.End()
}

func TestBridge_DefaultFailureDescription(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockRenderer := mocks.NewMockRenderer(ctrl)

	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(telemetry.NewBridge(mockRenderer)))
	defer func() { _ = tp.Shutdown(context.Background()) }()

	mockRenderer.EXPECT().OnTaskStart(gomock.Any(), gomock.Any(), gomock.Any())
	mockRenderer.EXPECT().OnTaskComplete(gomock.Any(), gomock.Any(), domain.OutcomeFailed, gomock.Any()).
		Do(func(_ string, _ time.Time, _ domain.TaskOutcome, err error) {
			assert.EqualError(t, err, "task failed")
		})

	_, span := telemetry.NewOTelTracer(tp, nil).Start(context.Background(), "t", ports.WithTask())
	span.RecordError(errors.New(""))
	span.End()
}

func TestBridge_NilRenderer(_ *testing.T) {
	bridge := telemetry.NewBridge(nil)

	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(bridge))
	defer func() { _ = tp.Shutdown(context.Background()) }()

	_, span := telemetry.NewOTelTracer(tp, nil).Start(context.Background(), "t", ports.WithTask())
	span.End()
}

func TestBridge_FlushAndShutdown(t *testing.T) {
	bridge := telemetry.NewBridge(nil)
	assert.NoError(t, bridge.ForceFlush(context.Background()))
	assert.NoError(t, bridge.Shutdown(context.Background()))
}
