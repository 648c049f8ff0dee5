package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"pubg-tracker/internal/api"
	"pubg-tracker/internal/constants"
	"pubg-tracker/internal/domain"
	"pubg-tracker/internal/errs"
	"pubg-tracker/internal/repository"
	"pubg-tracker/internal/scoring"
)

// StatsService turns a player name into a freshly computed Stats value,
// reading the cache before the remote API and writing back whatever it had
// to fetch.
type StatsService struct {
	client     *api.Client
	players    *repository.PlayerRepository
	matchStats *repository.MatchStatsRepository
	logger     zerolog.Logger
}

func NewStatsService(
	client *api.Client,
	players *repository.PlayerRepository,
	matchStats *repository.MatchStatsRepository,
	logger zerolog.Logger,
) *StatsService {
	return &StatsService{client: client, players: players, matchStats: matchStats, logger: logger}
}

// lookupLogger tags every event of one public call with a correlation id.
func (s *StatsService) lookupLogger() zerolog.Logger {
	return s.logger.With().Str("lookup_id", uuid.New().String()).Logger()
}

// GetPlayer resolves a player by display name. With forceRemote the remote
// API is authoritative and the result is cached; otherwise the store is
// read and an absent record fails with the player-not-found kind. A cached
// record older than the freshness window is refreshed from the API in place.
func (s *StatsService) GetPlayer(ctx context.Context, name string, forceRemote bool) (*domain.Player, error) {
	logger := s.lookupLogger()
	logger.Info().Str("name", name).Bool("force_remote", forceRemote).Msg("resolving player")

	var player *domain.Player
	var err error
	if forceRemote {
		player, err = s.fetchPlayer(ctx, name, logger)
	} else {
		player, err = s.players.Get(ctx, repository.ByName(name))
	}
	if err != nil {
		return nil, err
	}

	exists, err := s.players.Exists(ctx, repository.ByName(name))
	if err != nil {
		return nil, err
	}
	if !exists {
		if err := s.players.Insert(ctx, player); err != nil {
			return nil, err
		}
		logger.Info().Str("normalized_id", player.NormalizedID).Msg("player cached")
		return player, nil
	}

	outdated, err := s.players.IsOutdated(ctx, repository.ByName(name), constants.PlayerFreshnessWindow)
	if err != nil {
		return nil, err
	}
	if outdated {
		fresh := player
		if !forceRemote {
			fresh, err = s.fetchPlayer(ctx, name, logger)
			if err != nil {
				return nil, err
			}
		}
		// identity refresh must not sever an existing chat link
		if fresh.DiscordID == "" {
			if cached, err := s.players.Get(ctx, repository.ByName(name)); err == nil {
				fresh.DiscordID = cached.DiscordID
			}
		}
		if err := s.players.Update(ctx, fresh); err != nil {
			return nil, err
		}
		logger.Info().Str("normalized_id", fresh.NormalizedID).Msg("stale player refreshed")
		player = fresh
	}

	return player, nil
}

// GetPlayerMatchStats returns one player's performance in one match,
// cache-first. Finished matches are immutable, so a cached row is returned
// without any staleness check.
func (s *StatsService) GetPlayerMatchStats(ctx context.Context, playerName, matchID string) (*domain.PlayerMatchStats, error) {
	exists, err := s.matchStats.Exists(ctx, playerName, matchID)
	if err != nil {
		return nil, err
	}
	if exists {
		return s.matchStats.Get(ctx, playerName, matchID)
	}

	match, err := s.fetchMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}

	stats, ok := match.StatsFor(playerName)
	if !ok {
		// the match list only references matches the player played, so a
		// missing participant is a data integrity anomaly
		s.logger.Warn().Str("player_name", playerName).Str("match_id", matchID).Msg("player missing from match payload")
		return nil, errs.MatchStatsNotFound(playerName, matchID)
	}

	if err := s.matchStats.Insert(ctx, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// LatestMatchStats walks the player's match history, most recent first, and
// collects qualifying matches (requested mode, normal or ranked type) until
// maxMatches are found or the history runs out.
func (s *StatsService) LatestMatchStats(ctx context.Context, playerName string, gameMode domain.GameMode, maxMatches int) ([]domain.PlayerMatchStats, error) {
	player, err := s.GetPlayer(ctx, playerName, false)
	if err != nil {
		return nil, err
	}

	var collected []domain.PlayerMatchStats
	for _, ref := range player.MatchList {
		if len(collected) == maxMatches {
			break
		}

		stats, err := s.GetPlayerMatchStats(ctx, playerName, ref.ID)
		if err != nil {
			return nil, err
		}
		if stats.GameMode != gameMode || !stats.MatchType.Scoreable() {
			continue
		}

		collected = append(collected, *stats)
	}

	return collected, nil
}

// GetStats computes the aggregate statistics and skill score over the
// player's recent squad matches.
func (s *StatsService) GetStats(ctx context.Context, playerName string) (*domain.Stats, error) {
	logger := s.lookupLogger()
	logger.Info().Str("name", playerName).Msg("computing stats")

	exists, err := s.players.Exists(ctx, repository.ByName(playerName))
	if err != nil {
		return nil, err
	}
	if !exists {
		if _, err := s.GetPlayer(ctx, playerName, true); err != nil {
			return nil, err
		}
	}

	statsList, err := s.LatestMatchStats(ctx, playerName, domain.GameModeSquad, constants.DefaultMaxMatchNum)
	if err != nil {
		return nil, err
	}

	rounds := len(statsList)
	if rounds == 0 {
		return nil, errs.NoQualifyingMatches(playerName)
	}
	if rounds < constants.MinMatchNum {
		return nil, errs.NotEnoughMatches(rounds, constants.MinMatchNum)
	}

	score, err := scoring.Compute(statsList, logger)
	if err != nil {
		return nil, err
	}

	var (
		kills, assists, deaths, top10, wins int
		rankSum, damage                     float64
	)
	for _, m := range statsList {
		kills += m.Kills
		assists += m.Assists
		if m.WinPlace != 1 {
			deaths++
		}
		if m.WinPlace <= 10 {
			top10++
		}
		if m.WinPlace == 1 {
			wins++
		}
		rankSum += float64(m.WinPlace)
		damage += m.DamageDealt
	}

	kda := 0.0
	if deaths != 0 {
		kda = float64(kills+assists) / float64(deaths)
	}

	stats := &domain.Stats{
		RoundsPlayed: rounds,
		AvgRank:      rankSum / float64(rounds),
		Top10Ratio:   float64(top10) / float64(rounds),
		WinRatio:     float64(wins) / float64(rounds),
		DamageDealt:  damage,
		Kills:        kills,
		Assists:      assists,
		Deaths:       deaths,
		KDA:          kda,
		Score:        score,
	}

	logger.Info().
		Int("rounds", rounds).
		Float64("score", stats.Score).
		Msg("stats computed")
	return stats, nil
}

// LinkDiscord attaches a chat identity to a cached player.
func (s *StatsService) LinkDiscord(ctx context.Context, playerName, discordID string) error {
	return s.players.SetDiscordLink(ctx, playerName, discordID)
}

func (s *StatsService) DiscordLink(ctx context.Context, playerName string) (string, error) {
	return s.players.GetDiscordLink(ctx, playerName)
}

func (s *StatsService) PlayerNameByDiscord(ctx context.Context, discordID string) (string, error) {
	return s.players.PlayerNameByDiscordLink(ctx, discordID)
}

func (s *StatsService) fetchPlayer(ctx context.Context, name string, logger zerolog.Logger) (*domain.Player, error) {
	resp, err := s.client.GetPlayerByName(ctx, name)
	if err != nil {
		if errs.IsCode(err, errs.CodePlayerNotFound) {
			return nil, errs.PlayerNotFound(name)
		}
		return nil, err
	}
	if len(resp.Data) == 0 {
		return nil, errs.PlayerNotFound(name)
	}

	player := playerFromAPI(resp.Data[0])
	logger.Debug().
		Str("normalized_id", player.NormalizedID).
		Int("match_count", len(player.MatchList)).
		Msg("player fetched from api")
	return player, nil
}

func (s *StatsService) fetchMatch(ctx context.Context, matchID string) (*domain.Match, error) {
	resp, err := s.client.GetMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}

	attrs := resp.Data.Attributes
	match := &domain.Match{
		ID:            resp.Data.ID,
		IsCustomMatch: attrs.IsCustomMatch,
		GameMode:      domain.GameModeFromString(attrs.GameMode),
		MatchType:     domain.MatchTypeFromString(attrs.MatchType),
		MapName:       attrs.MapName,
		Duration:      attrs.Duration,
		Date:          attrs.CreatedAt,
	}

	for _, item := range resp.Included {
		if item.Type != "participant" {
			continue
		}
		match.Participants = append(match.Participants, participantToStats(match, item.Attributes.Stats))
	}

	return match, nil
}

func playerFromAPI(data api.PlayerData) *domain.Player {
	var refs domain.MatchRefList
	for _, ref := range data.Relationships.Matches.Data {
		if ref.Type != "match" {
			continue
		}
		refs = append(refs, domain.MatchRef{ID: ref.ID, Type: ref.Type})
	}

	return &domain.Player{
		ID:           data.ID,
		NormalizedID: domain.NormalizePlayerID(data.ID),
		Name:         data.Attributes.Name,
		Platform:     data.Attributes.ShardID,
		BanType:      data.Attributes.BanType,
		ClanID:       data.Attributes.ClanID,
		MatchList:    refs,
	}
}

func participantToStats(match *domain.Match, p api.ParticipantStats) domain.PlayerMatchStats {
	return domain.PlayerMatchStats{
		PlayerName:    p.Name,
		MatchID:       match.ID,
		IsCustomMatch: match.IsCustomMatch,
		GameMode:      match.GameMode,
		MatchType:     match.MatchType,

		DBNOs:           p.DBNOs,
		Boosts:          p.Boosts,
		DamageDealt:     p.DamageDealt,
		DeathType:       p.DeathType,
		HeadshotKills:   p.HeadshotKills,
		Heals:           p.Heals,
		WinPlace:        p.WinPlace,
		KillPlace:       p.KillPlace,
		KillStreaks:     p.KillStreaks,
		Kills:           p.Kills,
		Assists:         p.Assists,
		LongestKill:     p.LongestKill,
		Revives:         p.Revives,
		RideDistance:    p.RideDistance,
		SwimDistance:    p.SwimDistance,
		WalkDistance:    p.WalkDistance,
		RoadKills:       p.RoadKills,
		TeamKills:       p.TeamKills,
		TimeSurvived:    p.TimeSurvived,
		VehicleDestroys: p.VehicleDestroys,
		WeaponsAcquired: p.WeaponsAcquired,
	}
}
