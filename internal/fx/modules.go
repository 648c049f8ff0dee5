package fx

import (
	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"pubg-tracker/internal/api"
	"pubg-tracker/internal/config"
	"pubg-tracker/internal/database"
	"pubg-tracker/internal/logger"
	"pubg-tracker/internal/repository"
	"pubg-tracker/internal/service"
)

// provideLogger builds the application logger at the configured level, so
// LOG_LEVEL reaches every injected component.
func provideLogger(cfg *config.Config) zerolog.Logger {
	return logger.WithLevel(cfg.LogLevel)
}

var Module = fx.Options(
	fx.Provide(config.Load),
	fx.Provide(provideLogger),
	fx.Provide(database.Open),
	// repos
	fx.Provide(repository.NewPlayerRepository),
	fx.Provide(repository.NewMatchStatsRepository),
	// api client
	fx.Provide(api.NewClient),
	// svc
	fx.Provide(service.NewStatsService),
	fx.Provide(service.NewRankService),
)
