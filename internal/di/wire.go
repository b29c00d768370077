//go:build wireinject
// +build wireinject

package di

import (
	"FxPulse/pkg/config"
	"FxPulse/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Ambient
		ProvideLogger,
		ProvideMetrics,
		ProvideCache,

		// Vendor and model clients
		ProvideDukascopyClient,
		ProvideQuoteFeed,
		ProvideCalendarFeed,
		ProvideAnalyzer,

		// Stores
		ProvidePairStore,
		ProvideEventStore,
		ProvideSignalStore,

		// Use cases
		ProvidePairPoller,
		ProvideEventPoller,
		ProvideAnalysisRunner,
		ProvidePipeline,

		// Handlers
		ProvideHub,
		ProvidePusher,
		ProvideDashboardHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
