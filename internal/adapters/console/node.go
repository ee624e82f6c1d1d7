package console

import (
	"context"
	"io"

	"github.com/grindlemire/graft"
	"go.trai.ch/buildlogic/internal/core/ports"
)

// NodeID is the unique identifier for the console Graft node. It provides a
// factory because every build writes to its own stream.
const NodeID graft.ID = "adapter.console"

func init() {
	graft.Register(graft.Node[ports.RendererFactory]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.RendererFactory, error) {
			return func(w io.Writer) ports.Renderer {
				return NewRenderer(w)
			}, nil
		},
	})
}
