//go:build wireinject
// +build wireinject

package di

import (
	"TrendPulse/pkg/config"
	"TrendPulse/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Observability
		ProvideLogger,
		ProvideMetrics,

		// Analysis engine
		ProvideAnalyzer,

		// Infrastructure clients
		ProvideClickHouseClient,
		ProvideKafkaProducer,
		ProvideKafkaConsumer,
		ProvideRedisCache,

		// Repositories
		ProvideEventArchive,
		ProvideAlertPublisher,
		ProvideReportCache,
		ProvideSACPredictor,
		ProvideSnapshotStream,

		// Use cases
		ProvideAnalyzeUseCase,
		ProvideIngestPipeline,
		ProvideScanUseCase,
		ProvideSnapshotHandler,
		ProvideSnapshotCollector,
		ProvideJobQueue,

		// HTTP
		ProvideAnalysisHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
