package api

import "time"

// Response shapes for the JSON:API payloads the PUBG API returns. Bodies
// are decoded verbatim; projection into domain types happens in the service
// layer.

type PlayerData struct {
	Type       string `json:"type"`
	ID         string `json:"id"`
	Attributes struct {
		Name    string `json:"name"`
		ShardID string `json:"shardId"`
		BanType string `json:"banType"`
		ClanID  string `json:"clanId"`
	} `json:"attributes"`
	Relationships struct {
		Matches struct {
			Data []ResourceRef `json:"data"`
		} `json:"matches"`
	} `json:"relationships"`
}

// ResourceRef is a JSON:API resource identifier.
type ResourceRef struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

type PlayersResponse struct {
	Data []PlayerData `json:"data"`
}

type SinglePlayerResponse struct {
	Data PlayerData `json:"data"`
}

type MatchResponse struct {
	Data struct {
		Type       string `json:"type"`
		ID         string `json:"id"`
		Attributes struct {
			CreatedAt     time.Time `json:"createdAt"`
			Duration      int       `json:"duration"`
			GameMode      string    `json:"gameMode"`
			MapName       string    `json:"mapName"`
			IsCustomMatch bool      `json:"isCustomMatch"`
			MatchType     string    `json:"matchType"`
			SeasonState   string    `json:"seasonState"`
		} `json:"attributes"`
	} `json:"data"`
	Included []IncludedItem `json:"included"`
}

// IncludedItem covers the mixed included section of a match payload. Only
// participant entries carry a stats block; roster and asset entries decode
// with zero-valued stats and are filtered out by type.
type IncludedItem struct {
	Type       string `json:"type"`
	ID         string `json:"id"`
	Attributes struct {
		Actor   string           `json:"actor"`
		ShardID string           `json:"shardId"`
		Stats   ParticipantStats `json:"stats"`
	} `json:"attributes"`
}

type ParticipantStats struct {
	Name            string  `json:"name"`
	PlayerID        string  `json:"playerId"`
	DBNOs           int     `json:"DBNOs"`
	Assists         int     `json:"assists"`
	Boosts          int     `json:"boosts"`
	DamageDealt     float64 `json:"damageDealt"`
	DeathType       string  `json:"deathType"`
	HeadshotKills   int     `json:"headshotKills"`
	Heals           int     `json:"heals"`
	KillPlace       int     `json:"killPlace"`
	KillStreaks     int     `json:"killStreaks"`
	Kills           int     `json:"kills"`
	LongestKill     float64 `json:"longestKill"`
	Revives         int     `json:"revives"`
	RideDistance    float64 `json:"rideDistance"`
	RoadKills       int     `json:"roadKills"`
	SwimDistance    float64 `json:"swimDistance"`
	TeamKills       int     `json:"teamKills"`
	TimeSurvived    float64 `json:"timeSurvived"`
	VehicleDestroys int     `json:"vehicleDestroys"`
	WalkDistance    float64 `json:"walkDistance"`
	WeaponsAcquired int     `json:"weaponsAcquired"`
	WinPlace        int     `json:"winPlace"`
}

type SeasonData struct {
	Type       string `json:"type"`
	ID         string `json:"id"`
	Attributes struct {
		IsCurrentSeason bool `json:"isCurrentSeason"`
		IsOffseason     bool `json:"isOffseason"`
	} `json:"attributes"`
}

type SeasonsResponse struct {
	Data []SeasonData `json:"data"`
}

type RankedModeStats struct {
	CurrentTier struct {
		Tier    string `json:"tier"`
		SubTier string `json:"subTier"`
	} `json:"currentTier"`
	CurrentRankPoint int     `json:"currentRankPoint"`
	RoundsPlayed     int     `json:"roundsPlayed"`
	AvgRank          float64 `json:"avgRank"`
	Top10Ratio       float64 `json:"top10Ratio"`
	WinRatio         float64 `json:"winRatio"`
	DamageDealt      float64 `json:"damageDealt"`
	Kills            int     `json:"kills"`
	Assists          int     `json:"assists"`
	Deaths           int     `json:"deaths"`
	KDA              float64 `json:"kda"`
}

type RankedStatsResponse struct {
	Data struct {
		Type       string `json:"type"`
		Attributes struct {
			RankedGameModeStats map[string]RankedModeStats `json:"rankedGameModeStats"`
		} `json:"attributes"`
	} `json:"data"`
}

type ClanResponse struct {
	Data struct {
		Type       string `json:"type"`
		ID         string `json:"id"`
		Attributes struct {
			ClanName        string `json:"clanName"`
			ClanTag         string `json:"clanTag"`
			ClanLevel       int    `json:"clanLevel"`
			ClanMemberCount int    `json:"clanMemberCount"`
		} `json:"attributes"`
	} `json:"data"`
}
