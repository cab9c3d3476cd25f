//go:build wireinject
// +build wireinject

package di

import (
	"BuildPulse/pkg/config"
	"BuildPulse/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire generates the implementation; see wire_gen.go.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideEngine,
		ProvideMetrics,

		// Infrastructure clients
		ProvideClickHouseClient,
		ProvideKafkaProducer,
		ProvideKafkaConsumer,
		ProvideInsightCache,
		ProvideDigestQueue,

		// Repositories
		ProvideSnapshotStore,
		ProvideAlertPublisher,

		// Use cases
		ProvideInsightService,
		ProvideCompanyInsights,
		ProvideAlertMonitor,
		ProvideSnapshotEventsHandler,

		// HTTP surface
		ProvideAlertsWSHandler,
		ProvideRoutes,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
