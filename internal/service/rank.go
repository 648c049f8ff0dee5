package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"pubg-tracker/internal/api"
	"pubg-tracker/internal/domain"
	"pubg-tracker/internal/errs"
)

// RankService enriches a player with ranked-ladder statistics from the
// season and clan endpoints. Not required for the baseline score.
type RankService struct {
	client *api.Client
	stats  *StatsService
	logger zerolog.Logger
}

func NewRankService(client *api.Client, stats *StatsService, logger zerolog.Logger) *RankService {
	return &RankService{client: client, stats: stats, logger: logger}
}

// CurrentSeason returns the id of the season the API marks current.
func (s *RankService) CurrentSeason(ctx context.Context) (string, error) {
	resp, err := s.client.GetSeasons(ctx)
	if err != nil {
		return "", err
	}

	for _, season := range resp.Data {
		if season.Attributes.IsCurrentSeason {
			return season.ID, nil
		}
	}
	return "", errs.APIRequest(fmt.Errorf("no current season in seasons response"))
}

// GetRankStats fetches the player's squad ranked-ladder block for the
// current season. Player resolution and season discovery are independent
// calls and run concurrently.
func (s *RankService) GetRankStats(ctx context.Context, playerName string) (*domain.Stats, error) {
	g, gCtx := errgroup.WithContext(ctx)

	var player *domain.Player
	var seasonID string

	g.Go(func() error {
		var err error
		player, err = s.stats.GetPlayer(gCtx, playerName, false)
		if errs.IsCode(err, errs.CodePlayerNotFound) {
			player, err = s.stats.GetPlayer(gCtx, playerName, true)
		}
		return err
	})

	g.Go(func() error {
		var err error
		seasonID, err = s.CurrentSeason(gCtx)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	resp, err := s.client.GetRankedStats(ctx, player.ID, seasonID)
	if err != nil {
		return nil, err
	}

	squad, ok := resp.Data.Attributes.RankedGameModeStats["squad"]
	if !ok {
		return nil, errs.APIRequest(fmt.Errorf("no squad ranked stats for player %s in season %s", playerName, seasonID))
	}

	s.logger.Debug().
		Str("player_name", playerName).
		Str("season_id", seasonID).
		Str("tier", squad.CurrentTier.Tier).
		Msg("ranked stats fetched")

	return &domain.Stats{
		Type:         domain.MatchTypeRanked,
		Tier:         domain.TierFromString(squad.CurrentTier.Tier),
		SubTier:      squad.CurrentTier.SubTier,
		RankPoint:    squad.CurrentRankPoint,
		RoundsPlayed: squad.RoundsPlayed,
		AvgRank:      squad.AvgRank,
		Top10Ratio:   squad.Top10Ratio,
		WinRatio:     squad.WinRatio,
		DamageDealt:  squad.DamageDealt,
		Kills:        squad.Kills,
		Assists:      squad.Assists,
		Deaths:       squad.Deaths,
		KDA:          squad.KDA,
	}, nil
}

// GetClan returns the clan profile behind a player's clan id.
func (s *RankService) GetClan(ctx context.Context, clanID string) (*domain.Clan, error) {
	resp, err := s.client.GetClan(ctx, clanID)
	if err != nil {
		return nil, err
	}

	return &domain.Clan{
		ID:          resp.Data.ID,
		Name:        resp.Data.Attributes.ClanName,
		Tag:         resp.Data.Attributes.ClanTag,
		Level:       resp.Data.Attributes.ClanLevel,
		MemberCount: resp.Data.Attributes.ClanMemberCount,
	}, nil
}
