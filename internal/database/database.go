package database

import (
	"context"
	"embed"
	"fmt"
	"sort"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"

	"pubg-tracker/internal/config"
	"pubg-tracker/internal/constants"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// declaredColumns is the schema the code is written against, column name to
// SQL type. Open reconciles the live database against it: columns declared
// here but missing live are added, columns live but no longer declared abort
// startup so data is never silently dropped.
var declaredColumns = map[string]map[string]string{
	"players": {
		"id":            "TEXT",
		"normalized_id": "TEXT",
		"name":          "TEXT",
		"platform":      "TEXT",
		"ban_type":      "TEXT",
		"clan_id":       "TEXT",
		"match_list":    "TEXT",
		"discord_id":    "TEXT",
		"updated_date":  "DATETIME",
	},
	"player_match_stats": {
		"player_name":      "TEXT",
		"match_id":         "TEXT",
		"is_custom_match":  "INTEGER",
		"game_mode":        "TEXT",
		"match_type":       "TEXT",
		"dbnos":            "INTEGER",
		"boosts":           "INTEGER",
		"damage_dealt":     "REAL",
		"death_type":       "TEXT",
		"headshot_kills":   "INTEGER",
		"heals":            "INTEGER",
		"win_place":        "INTEGER",
		"kill_place":       "INTEGER",
		"kill_streaks":     "INTEGER",
		"kills":            "INTEGER",
		"assists":          "INTEGER",
		"longest_kill":     "REAL",
		"revives":          "INTEGER",
		"ride_distance":    "REAL",
		"swim_distance":    "REAL",
		"walk_distance":    "REAL",
		"road_kills":       "INTEGER",
		"team_kills":       "INTEGER",
		"time_survived":    "REAL",
		"vehicle_destroys": "INTEGER",
		"weapons_acquired": "INTEGER",
		"updated_date":     "DATETIME",
	},
}

// Open opens or creates the store, applies migrations and reconciles the
// schema.
func Open(cfg *config.Config, logger zerolog.Logger) (*sqlx.DB, error) {
	return open(cfg.DBPath, logger)
}

func open(path string, logger zerolog.Logger) (*sqlx.DB, error) {
	logger.Info().Str("path", path).Msg("connecting to database")

	db, err := sqlx.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(constants.DBMaxOpenConns)
	db.SetMaxIdleConns(constants.DBMaxIdleConns)
	db.SetConnMaxLifetime(constants.DBConnMaxLifetime)
	db.SetConnMaxIdleTime(constants.DBMaxIdleTime)

	ctx, cancel := context.WithTimeout(context.Background(), constants.DatabaseTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := tuneSQLite(db, logger); err != nil {
		return nil, fmt.Errorf("tune sqlite: %w", err)
	}
	if err := runMigrations(db, logger); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	if err := reconcileSchema(db, logger); err != nil {
		return nil, fmt.Errorf("reconcile schema: %w", err)
	}

	logger.Info().Msg("database ready")
	return db, nil
}

// Reset drops both tables and re-runs migrations. Destructive; test and
// bootstrap use only.
func Reset(db *sqlx.DB, logger zerolog.Logger) error {
	for _, table := range []string{"player_match_stats", "players", "goose_db_version"} {
		if _, err := db.Exec(fmt.Sprintf("DROP TABLE IF EXISTS %s", table)); err != nil {
			return fmt.Errorf("drop %s: %w", table, err)
		}
	}
	if err := runMigrations(db, logger); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	return reconcileSchema(db, logger)
}

func runMigrations(db *sqlx.DB, logger zerolog.Logger) error {
	goose.SetBaseFS(embedMigrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	if err := goose.Up(db.DB, "migrations"); err != nil {
		return fmt.Errorf("run goose migrations: %w", err)
	}

	logger.Debug().Msg("migrations completed")
	return nil
}

// reconcileSchema compares live columns against declaredColumns per table.
// Additive drift is repaired in place; destructive drift is fatal.
func reconcileSchema(db *sqlx.DB, logger zerolog.Logger) error {
	for table, declared := range declaredColumns {
		live, err := liveColumns(db, table)
		if err != nil {
			return err
		}

		var missing []string
		for column := range declared {
			if _, ok := live[column]; !ok {
				missing = append(missing, column)
			}
		}
		sort.Strings(missing)

		for _, column := range missing {
			query := fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", table, column, declared[column])
			if _, err := db.Exec(query); err != nil {
				return fmt.Errorf("add column %s.%s: %w", table, column, err)
			}
			logger.Info().Str("table", table).Str("column", column).Msg("added missing column")
		}

		var undeclared []string
		for column := range live {
			if _, ok := declared[column]; !ok {
				undeclared = append(undeclared, column)
			}
		}
		if len(undeclared) > 0 {
			sort.Strings(undeclared)
			return fmt.Errorf("table %s carries columns no longer declared by this version (%s); refusing to start against a schema that would drop data",
				table, strings.Join(undeclared, ", "))
		}
	}
	return nil
}

func liveColumns(db *sqlx.DB, table string) (map[string]struct{}, error) {
	rows, err := db.Queryx(fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return nil, fmt.Errorf("table_info %s: %w", table, err)
	}
	defer rows.Close()

	columns := make(map[string]struct{})
	for rows.Next() {
		var (
			cid       int
			name      string
			ctype     string
			notnull   int
			dfltValue any
			pk        int
		)
		if err := rows.Scan(&cid, &name, &ctype, &notnull, &dfltValue, &pk); err != nil {
			return nil, fmt.Errorf("scan table_info %s: %w", table, err)
		}
		columns[name] = struct{}{}
	}
	return columns, rows.Err()
}

func tuneSQLite(db *sqlx.DB, logger zerolog.Logger) error {
	pragmas := []struct {
		name  string
		value string
	}{
		{"journal_mode", "WAL"},
		{"synchronous", "NORMAL"},
		{"cache_size", "-64000"},
		{"busy_timeout", "5000"},
		{"foreign_keys", "ON"},
		{"temp_store", "MEMORY"},
	}

	for _, pragma := range pragmas {
		query := fmt.Sprintf("PRAGMA %s = %s", pragma.name, pragma.value)
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("set PRAGMA %s: %w", pragma.name, err)
		}
		logger.Debug().
			Str("pragma", pragma.name).
			Str("value", pragma.value).
			Msg("sqlite pragma set")
	}

	return nil
}
