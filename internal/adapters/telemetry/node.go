package telemetry

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/buildlogic/internal/core/ports"
)

// TracerNodeID is the unique identifier for the default tracer Graft node.
// Builds replace it with a per-run OTelTracer bound to their console.
const TracerNodeID graft.ID = "adapter.telemetry"

func init() {
	graft.Register(graft.Node[ports.Tracer]{
		ID:        TracerNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Tracer, error) {
			return NewNoOpTracer(), nil
		},
	})
}
