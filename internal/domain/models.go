package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// MatchRef is one entry of a player's match history as listed by the API,
// most recent first. Insertion order is meaningful.
type MatchRef struct {
	ID   string `json:"id"`
	Type string `json:"type"`
}

// MatchRefList round-trips through the store as JSON text.
type MatchRefList []MatchRef

func (l MatchRefList) Value() (driver.Value, error) {
	b, err := json.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("marshal match list: %w", err)
	}
	return string(b), nil
}

func (l *MatchRefList) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*l = nil
		return nil
	case string:
		return json.Unmarshal([]byte(v), l)
	case []byte:
		return json.Unmarshal(v, l)
	default:
		return fmt.Errorf("unsupported match list column type %T", src)
	}
}

type Player struct {
	ID           string       `db:"id"`
	NormalizedID string       `db:"normalized_id"`
	Name         string       `db:"name"`
	Platform     string       `db:"platform"`
	BanType      string       `db:"ban_type"`
	ClanID       string       `db:"clan_id"`
	MatchList    MatchRefList `db:"match_list"`
	DiscordID    string       `db:"discord_id"`
	UpdatedDate  time.Time    `db:"updated_date"`
}

// NormalizePlayerID strips the platform prefix or dashes from an account
// identifier, yielding the stable cache key.
func NormalizePlayerID(id string) string {
	if strings.HasPrefix(id, "account.") {
		return strings.TrimPrefix(id, "account.")
	}
	return strings.ReplaceAll(id, "-", "")
}

// Match is a completed game session as returned by the API. Matches are
// transient; only the per-player projection is persisted.
type Match struct {
	ID            string
	IsCustomMatch bool
	GameMode      GameMode
	MatchType     MatchType
	MapName       string
	Duration      int
	Date          time.Time
	Participants  []PlayerMatchStats
}

// StatsFor returns the named player's stat block from the participant list.
func (m *Match) StatsFor(playerName string) (PlayerMatchStats, bool) {
	for _, p := range m.Participants {
		if p.PlayerName == playerName {
			return p, true
		}
	}
	return PlayerMatchStats{}, false
}

// PlayerMatchStats is one player's performance in one match, the unit both
// the cache and the scoring engine operate on. Unique per (player_name,
// match_id).
type PlayerMatchStats struct {
	PlayerName    string    `db:"player_name"`
	MatchID       string    `db:"match_id"`
	IsCustomMatch bool      `db:"is_custom_match"`
	GameMode      GameMode  `db:"game_mode"`
	MatchType     MatchType `db:"match_type"`

	DBNOs           int     `db:"dbnos"`
	Boosts          int     `db:"boosts"`
	DamageDealt     float64 `db:"damage_dealt"`
	DeathType       string  `db:"death_type"`
	HeadshotKills   int     `db:"headshot_kills"`
	Heals           int     `db:"heals"`
	WinPlace        int     `db:"win_place"`
	KillPlace       int     `db:"kill_place"`
	KillStreaks     int     `db:"kill_streaks"`
	Kills           int     `db:"kills"`
	Assists         int     `db:"assists"`
	LongestKill     float64 `db:"longest_kill"`
	Revives         int     `db:"revives"`
	RideDistance    float64 `db:"ride_distance"`
	SwimDistance    float64 `db:"swim_distance"`
	WalkDistance    float64 `db:"walk_distance"`
	RoadKills       int     `db:"road_kills"`
	TeamKills       int     `db:"team_kills"`
	TimeSurvived    float64 `db:"time_survived"`
	VehicleDestroys int     `db:"vehicle_destroys"`
	WeaponsAcquired int     `db:"weapons_acquired"`

	UpdatedDate time.Time `db:"updated_date"`
}

// Stats is the aggregate computed per request. Never persisted.
type Stats struct {
	Type      MatchType
	Tier      Tier
	SubTier   string
	RankPoint int

	RoundsPlayed int
	AvgRank      float64
	Top10Ratio   float64
	WinRatio     float64
	DamageDealt  float64
	Kills        int
	Assists      int
	Deaths       int
	KDA          float64
	Score        float64
}

// Clan is the lightweight clan profile used for enrichment.
type Clan struct {
	ID          string
	Name        string
	Tag         string
	Level       int
	MemberCount int
}

// AvgDealt is damage per round.
func (s *Stats) AvgDealt() float64 {
	if s.RoundsPlayed == 0 {
		return 0
	}
	return s.DamageDealt / float64(s.RoundsPlayed)
}

// KD is kills per death.
func (s *Stats) KD() float64 {
	if s.Deaths == 0 {
		return 0
	}
	return float64(s.Kills) / float64(s.Deaths)
}
