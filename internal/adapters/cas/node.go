package cas

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/buildlogic/internal/core/ports"
)

const (
	// NodeID is the unique identifier for the build info store Graft node.
	NodeID graft.ID = "adapter.build_info_store"
	// CacheNodeID is the unique identifier for the shared build cache Graft node.
	CacheNodeID graft.ID = "adapter.build_cache"
)

func init() {
	graft.Register(graft.Node[ports.BuildInfoStore]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.BuildInfoStore, error) {
			return NewStore(), nil
		},
	})

	graft.Register(graft.Node[ports.BuildCache]{
		ID:        CacheNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.BuildCache, error) {
			return NewBuildCache(), nil
		},
	})
}
