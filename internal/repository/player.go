package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	sqlite3 "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"

	"pubg-tracker/internal/domain"
	"pubg-tracker/internal/errs"
)

// PlayerKey selects a player row by exactly one of its two lookup keys.
// Supplying neither or both is a programmer error and panics.
type PlayerKey struct {
	NormalizedID string
	Name         string
}

func ByNormalizedID(id string) PlayerKey { return PlayerKey{NormalizedID: id} }

func ByName(name string) PlayerKey { return PlayerKey{Name: name} }

func (k PlayerKey) clause() (string, any) {
	switch {
	case k.NormalizedID != "" && k.Name != "":
		panic("repository: player key must carry exactly one of normalized id or name, got both")
	case k.NormalizedID != "":
		return "normalized_id = ?", k.NormalizedID
	case k.Name != "":
		return "name = ?", k.Name
	default:
		panic("repository: player key must carry exactly one of normalized id or name, got neither")
	}
}

func (k PlayerKey) String() string {
	if k.NormalizedID != "" {
		return k.NormalizedID
	}
	return k.Name
}

type PlayerRepository struct {
	db     *sqlx.DB
	logger zerolog.Logger
}

func NewPlayerRepository(db *sqlx.DB, logger zerolog.Logger) *PlayerRepository {
	return &PlayerRepository{db: db, logger: logger}
}

func (r *PlayerRepository) Exists(ctx context.Context, key PlayerKey) (bool, error) {
	where, arg := key.clause()

	var count int
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM players WHERE "+where, arg); err != nil {
		return false, fmt.Errorf("count players: %w", err)
	}
	return count > 0, nil
}

func (r *PlayerRepository) Get(ctx context.Context, key PlayerKey) (*domain.Player, error) {
	where, arg := key.clause()

	var player domain.Player
	err := r.db.GetContext(ctx, &player,
		"SELECT id, normalized_id, name, platform, ban_type, clan_id, match_list, discord_id, updated_date FROM players WHERE "+where, arg)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errs.PlayerNotFound(key.String())
	}
	if err != nil {
		return nil, fmt.Errorf("get player: %w", err)
	}
	return &player, nil
}

func (r *PlayerRepository) UpdatedAt(ctx context.Context, key PlayerKey) (time.Time, error) {
	where, arg := key.clause()

	var updated time.Time
	err := r.db.GetContext(ctx, &updated, "SELECT updated_date FROM players WHERE "+where, arg)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, errs.PlayerNotFound(key.String())
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("get player updated_date: %w", err)
	}
	return updated, nil
}

// IsOutdated reports whether the record is older than the freshness window.
// An absent record counts as outdated.
func (r *PlayerRepository) IsOutdated(ctx context.Context, key PlayerKey, window time.Duration) (bool, error) {
	updated, err := r.UpdatedAt(ctx, key)
	if errs.IsCode(err, errs.CodePlayerNotFound) {
		return true, nil
	}
	if err != nil {
		return false, err
	}

	age := time.Since(updated)
	outdated := age > window
	r.logger.Debug().
		Str("key", key.String()).
		Dur("age", age).
		Dur("window", window).
		Bool("outdated", outdated).
		Msg("player staleness check")

	return outdated, nil
}

func (r *PlayerRepository) Insert(ctx context.Context, player *domain.Player) error {
	player.UpdatedDate = time.Now().UTC()

	const query = `INSERT INTO players
		(id, normalized_id, name, platform, ban_type, clan_id, match_list, discord_id, updated_date)
		VALUES (:id, :normalized_id, :name, :platform, :ban_type, :clan_id, :match_list, :discord_id, :updated_date)`

	if _, err := r.db.NamedExecContext(ctx, query, player); err != nil {
		if isUniqueViolation(err) {
			return errs.AlreadyExists(player.NormalizedID)
		}
		return fmt.Errorf("insert player: %w", err)
	}

	r.logger.Debug().Str("normalized_id", player.NormalizedID).Str("name", player.Name).Msg("player inserted")
	return nil
}

// Update replaces all non-key fields of the row matched by normalized_id.
// No upsert: updating a missing row is a caller error.
func (r *PlayerRepository) Update(ctx context.Context, player *domain.Player) error {
	player.UpdatedDate = time.Now().UTC()

	const query = `UPDATE players SET
			id = :id,
			name = :name,
			platform = :platform,
			ban_type = :ban_type,
			clan_id = :clan_id,
			match_list = :match_list,
			discord_id = :discord_id,
			updated_date = :updated_date
		WHERE normalized_id = :normalized_id`

	res, err := r.db.NamedExecContext(ctx, query, player)
	if err != nil {
		return fmt.Errorf("update player: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return errs.PlayerNotFound(player.NormalizedID)
	}

	r.logger.Debug().Str("normalized_id", player.NormalizedID).Msg("player updated")
	return nil
}

// SetDiscordLink attaches a chat identity to a player record.
func (r *PlayerRepository) SetDiscordLink(ctx context.Context, playerName, discordID string) error {
	res, err := r.db.ExecContext(ctx, "UPDATE players SET discord_id = ? WHERE name = ?", discordID, playerName)
	if err != nil {
		return fmt.Errorf("set discord link: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return errs.PlayerNotFound(playerName)
	}
	return nil
}

func (r *PlayerRepository) GetDiscordLink(ctx context.Context, playerName string) (string, error) {
	var discordID string
	err := r.db.GetContext(ctx, &discordID, "SELECT discord_id FROM players WHERE name = ?", playerName)
	if errors.Is(err, sql.ErrNoRows) {
		return "", errs.PlayerNotFound(playerName)
	}
	if err != nil {
		return "", fmt.Errorf("get discord link: %w", err)
	}
	return discordID, nil
}

// PlayerNameByDiscordLink is the reverse lookup; it fails with the
// player-not-found kind when no record carries the chat identity.
func (r *PlayerRepository) PlayerNameByDiscordLink(ctx context.Context, discordID string) (string, error) {
	var name string
	err := r.db.GetContext(ctx, &name, "SELECT name FROM players WHERE discord_id = ?", discordID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", errs.PlayerNotFound(discordID)
	}
	if err != nil {
		return "", fmt.Errorf("get player by discord link: %w", err)
	}
	return name, nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
		sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
}
