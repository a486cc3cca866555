//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
)

var CoreInfraSet = wire.NewSet(
	NewLogging,
	NewLogger,
	NewMetricsRegistry,
	NewMetrics,
	NewObservabilityController,
)

var HostSet = wire.NewSet(
	NewHostConfig,
	NewStateStore,
	NewCommandTable,
	NewSession,
	NewHostContext,
	NewSampleLoader,
	NewParticipantManager,
)

var AppSet = wire.NewSet(
	CoreInfraSet,
	HostSet,
	NewApplicationFromDeps,
)
