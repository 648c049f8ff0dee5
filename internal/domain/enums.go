package domain

import "strings"

// GameMode is the mode tag the PUBG API reports on a match. Stored by its
// string tag so enum evolution never corrupts persisted rows.
type GameMode string

const (
	GameModeUndefined GameMode = ""
	GameModeDuo       GameMode = "duo"
	GameModeDuoFPP    GameMode = "duo-fpp"
	GameModeSolo      GameMode = "solo"
	GameModeSoloFPP   GameMode = "solo-fpp"
	GameModeSquad     GameMode = "squad"
	GameModeSquadFPP  GameMode = "squad-fpp"

	GameModeConquestDuo      GameMode = "conquest-duo"
	GameModeConquestDuoFPP   GameMode = "conquest-duo-fpp"
	GameModeConquestSolo     GameMode = "conquest-solo"
	GameModeConquestSoloFPP  GameMode = "conquest-solo-fpp"
	GameModeConquestSquad    GameMode = "conquest-squad"
	GameModeConquestSquadFPP GameMode = "conquest-squad-fpp"

	GameModeEsportsDuo      GameMode = "esports-duo"
	GameModeEsportsDuoFPP   GameMode = "esports-duo-fpp"
	GameModeEsportsSolo     GameMode = "esports-solo"
	GameModeEsportsSoloFPP  GameMode = "esports-solo-fpp"
	GameModeEsportsSquad    GameMode = "esports-squad"
	GameModeEsportsSquadFPP GameMode = "esports-squad-fpp"

	GameModeLabTPP GameMode = "lab-tpp"
	GameModeLabFPP GameMode = "lab-fpp"

	GameModeNormalDuo      GameMode = "normal-duo"
	GameModeNormalDuoFPP   GameMode = "normal-duo-fpp"
	GameModeNormalSolo     GameMode = "normal-solo"
	GameModeNormalSoloFPP  GameMode = "normal-solo-fpp"
	GameModeNormalSquad    GameMode = "normal-squad"
	GameModeNormalSquadFPP GameMode = "normal-squad-fpp"

	GameModeTDM GameMode = "tdm"

	GameModeWarDuo      GameMode = "war-duo"
	GameModeWarDuoFPP   GameMode = "war-duo-fpp"
	GameModeWarSolo     GameMode = "war-solo"
	GameModeWarSoloFPP  GameMode = "war-solo-fpp"
	GameModeWarSquad    GameMode = "war-squad"
	GameModeWarSquadFPP GameMode = "war-squad-fpp"

	GameModeZombieDuo      GameMode = "zombie-duo"
	GameModeZombieDuoFPP   GameMode = "zombie-duo-fpp"
	GameModeZombieSolo     GameMode = "zombie-solo"
	GameModeZombieSoloFPP  GameMode = "zombie-solo-fpp"
	GameModeZombieSquad    GameMode = "zombie-squad"
	GameModeZombieSquadFPP GameMode = "zombie-squad-fpp"
)

var gameModes = map[GameMode]struct{}{
	GameModeDuo: {}, GameModeDuoFPP: {}, GameModeSolo: {}, GameModeSoloFPP: {},
	GameModeSquad: {}, GameModeSquadFPP: {},
	GameModeConquestDuo: {}, GameModeConquestDuoFPP: {}, GameModeConquestSolo: {},
	GameModeConquestSoloFPP: {}, GameModeConquestSquad: {}, GameModeConquestSquadFPP: {},
	GameModeEsportsDuo: {}, GameModeEsportsDuoFPP: {}, GameModeEsportsSolo: {},
	GameModeEsportsSoloFPP: {}, GameModeEsportsSquad: {}, GameModeEsportsSquadFPP: {},
	GameModeLabTPP: {}, GameModeLabFPP: {},
	GameModeNormalDuo: {}, GameModeNormalDuoFPP: {}, GameModeNormalSolo: {},
	GameModeNormalSoloFPP: {}, GameModeNormalSquad: {}, GameModeNormalSquadFPP: {},
	GameModeTDM: {},
	GameModeWarDuo: {}, GameModeWarDuoFPP: {}, GameModeWarSolo: {}, GameModeWarSoloFPP: {},
	GameModeWarSquad: {}, GameModeWarSquadFPP: {},
	GameModeZombieDuo: {}, GameModeZombieDuoFPP: {}, GameModeZombieSolo: {},
	GameModeZombieSoloFPP: {}, GameModeZombieSquad: {}, GameModeZombieSquadFPP: {},
}

// GameModeFromString maps an API tag to a GameMode, GameModeUndefined for
// anything unrecognized.
func GameModeFromString(s string) GameMode {
	if _, ok := gameModes[GameMode(s)]; ok {
		return GameMode(s)
	}
	return GameModeUndefined
}

// MatchType classifies how a match was queued. Only NORMAL and RANKED
// matches qualify for scoring.
type MatchType string

const (
	MatchTypeUndefined MatchType = ""
	MatchTypeAirRoyale MatchType = "airoyale"
	MatchTypeArcade    MatchType = "arcade"
	MatchTypeCustom    MatchType = "custom"
	MatchTypeEvent     MatchType = "event"
	MatchTypeSeasonal  MatchType = "seasonal"
	MatchTypeTraining  MatchType = "training"
	MatchTypeNormal    MatchType = "official"
	MatchTypeRanked    MatchType = "competitive"
)

var matchTypes = map[MatchType]struct{}{
	MatchTypeAirRoyale: {}, MatchTypeArcade: {}, MatchTypeCustom: {},
	MatchTypeEvent: {}, MatchTypeSeasonal: {}, MatchTypeTraining: {},
	MatchTypeNormal: {}, MatchTypeRanked: {},
}

func MatchTypeFromString(s string) MatchType {
	if _, ok := matchTypes[MatchType(s)]; ok {
		return MatchType(s)
	}
	return MatchTypeUndefined
}

// Scoreable reports whether matches of this type count toward the skill
// score. Custom, event, seasonal and training games are not representative.
func (t MatchType) Scoreable() bool {
	return t == MatchTypeNormal || t == MatchTypeRanked
}

// Tier is a ranked ladder tier.
type Tier string

const (
	TierUndefined Tier = ""
	TierBronze    Tier = "bronze"
	TierSilver    Tier = "silver"
	TierGold      Tier = "gold"
	TierPlatinum  Tier = "platinum"
	TierDiamond   Tier = "diamond"
	TierMaster    Tier = "master"
)

var tiers = map[Tier]struct{}{
	TierBronze: {}, TierSilver: {}, TierGold: {},
	TierPlatinum: {}, TierDiamond: {}, TierMaster: {},
}

// TierFromString folds case because the API capitalizes tier names.
func TierFromString(s string) Tier {
	t := Tier(strings.ToLower(s))
	if _, ok := tiers[t]; ok {
		return t
	}
	return TierUndefined
}
