// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/buildlogic/internal/adapters/cas"
	_ "go.trai.ch/buildlogic/internal/adapters/catalog"
	_ "go.trai.ch/buildlogic/internal/adapters/classpath"
	_ "go.trai.ch/buildlogic/internal/adapters/config"
	_ "go.trai.ch/buildlogic/internal/adapters/console"
	_ "go.trai.ch/buildlogic/internal/adapters/fs"
	_ "go.trai.ch/buildlogic/internal/adapters/logger"
	_ "go.trai.ch/buildlogic/internal/adapters/report"
	_ "go.trai.ch/buildlogic/internal/adapters/shell"
	_ "go.trai.ch/buildlogic/internal/adapters/telemetry"
	// Register app and engine nodes.
	_ "go.trai.ch/buildlogic/internal/app"
	_ "go.trai.ch/buildlogic/internal/engine/scheduler"
	// Register plugin implementations.
	_ "go.trai.ch/buildlogic/internal/conventions"
	_ "go.trai.ch/buildlogic/internal/upstream"
)
