package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"pubg-tracker/internal/constants"
	"pubg-tracker/internal/errs"
	fxmodules "pubg-tracker/internal/fx"
	"pubg-tracker/internal/repository"
	"pubg-tracker/internal/service"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: tracker <player-name>")
		os.Exit(2)
	}

	fx.New(
		fxmodules.Module,
		fx.Invoke(run),
	).Run()
}

func run(
	lc fx.Lifecycle,
	shutdowner fx.Shutdowner,
	stats *service.StatsService,
	matchStats *repository.MatchStatsRepository,
	db *sqlx.DB,
	logger zerolog.Logger,
) {
	playerName := os.Args[1]

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if _, err := matchStats.PurgeOlderThan(ctx, constants.CacheExpiry); err != nil {
				return err
			}
			go func() {
				lookup(stats, playerName, logger)
				if err := shutdowner.Shutdown(); err != nil {
					logger.Error().Err(err).Msg("shutdown failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if err := db.Close(); err != nil {
				logger.Warn().Err(err).Msg("error closing database")
				return err
			}
			logger.Info().Msg("database closed")
			return nil
		},
	})
}

// lookup performs the whole pipeline for one player and prints the result
// the way the hosting chat layer would.
func lookup(stats *service.StatsService, playerName string, logger zerolog.Logger) {
	result, err := stats.GetStats(context.Background(), playerName)
	switch {
	case err == nil:
		fmt.Printf("%s: score %.4f over %d rounds (avg rank %.1f, top10 %.0f%%, win %.0f%%, kda %.2f)\n",
			playerName, result.Score, result.RoundsPlayed,
			result.AvgRank, result.Top10Ratio*100, result.WinRatio*100, result.KDA)
	case errs.IsCode(err, errs.CodePlayerNotFound):
		fmt.Printf("player %q not found, check the spelling\n", playerName)
	case errs.IsCode(err, errs.CodeNotEnoughMatches):
		fmt.Printf("not enough recent matches to score %s: %v\n", playerName, err)
	case errs.IsCode(err, errs.CodeMatchStatsNotFound):
		fmt.Printf("no qualifying matches found for %s\n", playerName)
	default:
		logger.Error().Err(err).Msg("lookup failed")
		fmt.Println("the stats service is unavailable, try again later")
	}
}
