package config

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/buildlogic/internal/adapters/catalog"
	"go.trai.ch/buildlogic/internal/adapters/classpath"
	"go.trai.ch/buildlogic/internal/adapters/logger"
	"go.trai.ch/buildlogic/internal/core/ports"
	"go.trai.ch/buildlogic/internal/plugins"
)

// NodeID is the unique identifier for the config loader Graft node.
const NodeID graft.ID = "adapter.config_loader"

func init() {
	graft.Register(graft.Node[ports.ConfigLoader]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID, catalog.NodeID, classpath.NodeID},
		Run: func(ctx context.Context) (ports.ConfigLoader, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			catalogs, err := graft.Dep[ports.CatalogLoader](ctx)
			if err != nil {
				return nil, err
			}
			resolver, err := graft.Dep[ports.PluginResolver](ctx)
			if err != nil {
				return nil, err
			}
			return NewLoader(log, catalogs, resolver, plugins.Default), nil
		},
	})
}
