package classpath

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/buildlogic/internal/core/ports"
)

// NodeID is the unique identifier for the plugin resolver Graft node.
const NodeID graft.ID = "adapter.plugin_resolver"

func init() {
	graft.Register(graft.Node[ports.PluginResolver]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{},
		Run: func(_ context.Context) (ports.PluginResolver, error) {
			return NewResolver(), nil
		},
	})
}
