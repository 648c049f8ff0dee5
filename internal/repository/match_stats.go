package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"

	"pubg-tracker/internal/domain"
	"pubg-tracker/internal/errs"
)

// MatchStatsRepository caches per-player match performance records, keyed by
// (player_name, match_id).
type MatchStatsRepository struct {
	db     *sqlx.DB
	logger zerolog.Logger
}

func NewMatchStatsRepository(db *sqlx.DB, logger zerolog.Logger) *MatchStatsRepository {
	return &MatchStatsRepository{db: db, logger: logger}
}

func (r *MatchStatsRepository) Exists(ctx context.Context, playerName, matchID string) (bool, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		"SELECT COUNT(*) FROM player_match_stats WHERE player_name = ? AND match_id = ?", playerName, matchID)
	if err != nil {
		return false, fmt.Errorf("count match stats: %w", err)
	}
	return count > 0, nil
}

func (r *MatchStatsRepository) Get(ctx context.Context, playerName, matchID string) (*domain.PlayerMatchStats, error) {
	var stats domain.PlayerMatchStats
	err := r.db.GetContext(ctx, &stats,
		"SELECT * FROM player_match_stats WHERE player_name = ? AND match_id = ?", playerName, matchID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errs.MatchStatsNotFound(playerName, matchID)
	}
	if err != nil {
		return nil, fmt.Errorf("get match stats: %w", err)
	}
	return &stats, nil
}

const matchStatsColumns = `player_name, match_id, is_custom_match, game_mode, match_type,
	dbnos, boosts, damage_dealt, death_type, headshot_kills, heals,
	win_place, kill_place, kill_streaks, kills, assists, longest_kill,
	revives, ride_distance, swim_distance, walk_distance, road_kills,
	team_kills, time_survived, vehicle_destroys, weapons_acquired, updated_date`

const matchStatsPlaceholders = `:player_name, :match_id, :is_custom_match, :game_mode, :match_type,
	:dbnos, :boosts, :damage_dealt, :death_type, :headshot_kills, :heals,
	:win_place, :kill_place, :kill_streaks, :kills, :assists, :longest_kill,
	:revives, :ride_distance, :swim_distance, :walk_distance, :road_kills,
	:team_kills, :time_survived, :vehicle_destroys, :weapons_acquired, :updated_date`

func (r *MatchStatsRepository) Insert(ctx context.Context, stats *domain.PlayerMatchStats) error {
	stats.UpdatedDate = time.Now().UTC()

	query := fmt.Sprintf("INSERT INTO player_match_stats (%s) VALUES (%s)", matchStatsColumns, matchStatsPlaceholders)
	if _, err := r.db.NamedExecContext(ctx, query, stats); err != nil {
		if isUniqueViolation(err) {
			return errs.AlreadyExists(stats.PlayerName + "/" + stats.MatchID)
		}
		return fmt.Errorf("insert match stats: %w", err)
	}

	r.logger.Debug().
		Str("player_name", stats.PlayerName).
		Str("match_id", stats.MatchID).
		Msg("match stats inserted")
	return nil
}

// PurgeOlderThan deletes cached rows older than the given age and returns
// how many went. Match data is immutable but the history window the scorer
// reads moves on, so old rows are pure dead weight.
func (r *MatchStatsRepository) PurgeOlderThan(ctx context.Context, age time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-age)

	res, err := r.db.ExecContext(ctx, "DELETE FROM player_match_stats WHERE updated_date < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("purge match stats: %w", err)
	}
	purged, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("purge match stats: %w", err)
	}

	if purged > 0 {
		r.logger.Info().Int64("purged", purged).Time("cutoff", cutoff).Msg("expired match stats purged")
	}
	return purged, nil
}

func (r *MatchStatsRepository) Update(ctx context.Context, stats *domain.PlayerMatchStats) error {
	stats.UpdatedDate = time.Now().UTC()

	const query = `UPDATE player_match_stats SET
			player_name = :player_name,
			is_custom_match = :is_custom_match,
			game_mode = :game_mode,
			match_type = :match_type,
			dbnos = :dbnos,
			boosts = :boosts,
			damage_dealt = :damage_dealt,
			death_type = :death_type,
			headshot_kills = :headshot_kills,
			heals = :heals,
			win_place = :win_place,
			kill_place = :kill_place,
			kill_streaks = :kill_streaks,
			kills = :kills,
			assists = :assists,
			longest_kill = :longest_kill,
			revives = :revives,
			ride_distance = :ride_distance,
			swim_distance = :swim_distance,
			walk_distance = :walk_distance,
			road_kills = :road_kills,
			team_kills = :team_kills,
			time_survived = :time_survived,
			vehicle_destroys = :vehicle_destroys,
			weapons_acquired = :weapons_acquired,
			updated_date = :updated_date
		WHERE match_id = :match_id`

	res, err := r.db.NamedExecContext(ctx, query, stats)
	if err != nil {
		return fmt.Errorf("update match stats: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return errs.MatchStatsNotFound(stats.PlayerName, stats.MatchID)
	}

	r.logger.Debug().
		Str("player_name", stats.PlayerName).
		Str("match_id", stats.MatchID).
		Msg("match stats updated")
	return nil
}
