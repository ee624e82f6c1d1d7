package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/buildlogic/internal/adapters/classpath" //nolint:depguard // Wired in app layer
	"go.trai.ch/buildlogic/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.trai.ch/buildlogic/internal/adapters/console"   //nolint:depguard // Wired in app layer
	"go.trai.ch/buildlogic/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.trai.ch/buildlogic/internal/adapters/report"    //nolint:depguard // Wired in app layer
	"go.trai.ch/buildlogic/internal/core/ports"
	"go.trai.ch/buildlogic/internal/engine/scheduler"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

// Components contains the initialized application components the CLI needs.
type Components struct {
	App    *App
	Logger ports.Logger
}

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			scheduler.NodeID,
			console.NodeID,
			report.NodeID,
			classpath.NodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			app, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return &Components{App: app, Logger: log}, nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	sched, err := graft.Dep[*scheduler.Scheduler](ctx)
	if err != nil {
		return nil, err
	}

	newRenderer, err := graft.Dep[ports.RendererFactory](ctx)
	if err != nil {
		return nil, err
	}

	reports, err := graft.Dep[ports.ReportStore](ctx)
	if err != nil {
		return nil, err
	}

	resolver, err := graft.Dep[ports.PluginResolver](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, sched, newRenderer, reports, resolver, log), nil
}
