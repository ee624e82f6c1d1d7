package scheduler

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/buildlogic/internal/adapters/cas"       //nolint:depguard // Wired in engine wiring
	"go.trai.ch/buildlogic/internal/adapters/fs"        //nolint:depguard // Wired in engine wiring
	"go.trai.ch/buildlogic/internal/adapters/shell"     //nolint:depguard // Wired in engine wiring
	"go.trai.ch/buildlogic/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/buildlogic/internal/core/ports"
)

// NodeID is the unique identifier for the scheduler Graft node.
const NodeID graft.ID = "engine.scheduler"

func init() {
	graft.Register(graft.Node[*Scheduler]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			shell.NodeID,
			cas.NodeID,
			cas.CacheNodeID,
			fs.HasherNodeID,
			fs.ResolverNodeID,
			telemetry.TracerNodeID,
		},
		Run: func(ctx context.Context) (*Scheduler, error) {
			executor, err := graft.Dep[ports.Executor](ctx)
			if err != nil {
				return nil, err
			}

			store, err := graft.Dep[ports.BuildInfoStore](ctx)
			if err != nil {
				return nil, err
			}

			cache, err := graft.Dep[ports.BuildCache](ctx)
			if err != nil {
				return nil, err
			}

			hasher, err := graft.Dep[ports.Hasher](ctx)
			if err != nil {
				return nil, err
			}

			resolver, err := graft.Dep[ports.InputResolver](ctx)
			if err != nil {
				return nil, err
			}

			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}

			return NewScheduler(executor, store, cache, hasher, resolver, tracer), nil
		},
	})
}
