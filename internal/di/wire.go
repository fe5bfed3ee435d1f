//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"DashPull/internal/handler/api"
	"DashPull/internal/usecase"
	"DashPull/pkg/config"
	"DashPull/pkg/server"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Observability
		ProvideLogger,
		ProvideRegistry,
		ProvideMetrics,

		// Infrastructure clients
		ProvideKafkaProducer,
		ProvideEventPublisher,
		ProvideCache,
		ProvideHTTPClient,

		// Repositories
		ProvideFMCGSource,
		ProvideAnalyticsSource,
		ProvideSynthConfig,
		ProvidePopulationSource,
		ProvidePreferencesStore,

		// Use cases
		usecase.NewChurnUseCase,
		usecase.NewFMCGUseCase,
		usecase.NewOmniragUseCase,
		ProvideChatUseCase,
		ProvidePreferencesUseCase,
		ProvideLimiter,

		// HTTP
		api.NewDashboardHandler,
		api.NewPreferencesHandler,
		api.NewChatHandler,
		ProvideHealthHandler,
		ProvideHandlers,
		ProvideHTTPServer,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
