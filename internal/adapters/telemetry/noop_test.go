package telemetry_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/buildlogic/internal/adapters/telemetry"
	"go.trai.ch/buildlogic/internal/core/ports"
)

func TestNoOpTracer(t *testing.T) {
	t.Parallel()

	tracer := telemetry.NewNoOpTracer()
	ctx := context.Background()

	newCtx, span := tracer.Start(ctx, "test-span", ports.WithTask())
	assert.Equal(t, ctx, newCtx)
	assert.NotNil(t, span)

	tracer.EmitPlan(ctx, []string{"task1"}, []string{"task1"})

	n, err := span.Write([]byte("data"))
	assert.NoError(t, err)
	assert.Equal(t, 4, n)

	span.SetAttribute("key", "value")
	span.RecordError(errors.New("ignored"))
	span.End()
}
