//go:build wireinject
// +build wireinject

package di

import (
	"StockPulse/internal/usecase"
	"StockPulse/pkg/config"
	"StockPulse/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up the serving application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Metrics
		ProvideMetrics,

		// Caching + sentiment
		ProvideCache,
		ProvideAnalyzer,

		// Artifacts + model
		ProvideArtifactStore,
		ProvideModelConfig,
		ProvideServingContext,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}

// InitializePipeline wires up the training pipeline.
func InitializePipeline(cfg *config.Config) (*usecase.Pipeline, error) {
	wire.Build(
		ProvideMetrics,

		ProvideCache,
		ProvideAnalyzer,

		ProvideNewsSource,
		ProvideBarSource,

		ProvideClickHouseClient,
		ProvideRowStore,

		ProvideArtifactStore,
		ProvideModelConfig,

		ProvidePipeline,
	)
	return &usecase.Pipeline{}, nil
}
