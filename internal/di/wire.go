//go:build wireinject
// +build wireinject

package di

import (
	"idxsignal/pkg/config"
	"idxsignal/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire generates the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,
		ProvideCacheStore,
		ProvideBarProvider,
		ProvideBarService,
		ProvideSignalUseCase,
		ProvideRegimeUseCase,
		ProvideUniverse,
		ProvideScreenerUseCase,
		ProvideMarketHandler,
		ProvideApp,
	)
	return &server.App{}, nil
}
