//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"
	"stash/internal"
	"stash/internal/backend"
	"stash/internal/controllers"
	"stash/internal/providers"
	"stash/internal/scheduler"
	"stash/internal/services"
	"stash/internal/storage"
	"stash/internal/structures"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewMetricsProvider,
		providers.NewInstrumentedCacheProvider,
		providers.NewClockProvider,

		storage.NewKeyValueStore,
		storage.NewZstdCompressor,
		storage.NewFileManager,
		storage.NewBudgetCapRepository,
		storage.NewSessionRepository,
		storage.NewResetMarkerRepository,

		backend.NewClient,

		services.NewProfileService,
		services.NewMonthlyResetService,
		services.NewSessionService,
		services.NewBudgetCapService,
		services.NewBudgetOverviewService,
		scheduler.NewScheduler,

		controllers.NewResetController,
		controllers.NewSessionController,
		controllers.NewBudgetController,
		controllers.NewProfileController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil
}
