package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"pubg-tracker/internal/domain"
	"pubg-tracker/internal/errs"
)

func newTestRankService(t *testing.T, fake *fakeAPI) *RankService {
	t.Helper()
	stats, _ := newTestService(t, fake)
	return NewRankService(stats.client, stats, zerolog.Nop())
}

func TestCurrentSeason(t *testing.T) {
	fake := newFakeAPI("alpha")
	fake.currentSeason = "division.bro.official.pc-2018-35"
	svc := newTestRankService(t, fake)

	season, err := svc.CurrentSeason(context.Background())
	if err != nil {
		t.Fatalf("CurrentSeason: %v", err)
	}
	if season != "division.bro.official.pc-2018-35" {
		t.Errorf("season = %q", season)
	}
}

func TestCurrentSeasonMissing(t *testing.T) {
	fake := newFakeAPI("alpha")
	svc := newTestRankService(t, fake)

	_, err := svc.CurrentSeason(context.Background())
	if !errs.IsCode(err, errs.CodeAPIRequest) {
		t.Errorf("error = %v, want api-request kind when no season is current", err)
	}
}

func TestGetRankStats(t *testing.T) {
	fake := newFakeAPI("alpha")
	fake.currentSeason = "division.bro.official.pc-2018-35"
	fake.rankedStats = map[string]any{
		"squad": map[string]any{
			"currentTier":      map[string]any{"tier": "Diamond", "subTier": "3"},
			"currentRankPoint": 3150,
			"roundsPlayed":     87,
			"avgRank":          5.2,
			"top10Ratio":       0.61,
			"winRatio":         0.11,
			"damageDealt":      21870.4,
			"kills":            210,
			"assists":          64,
			"deaths":           77,
			"kda":              3.56,
		},
	}
	svc := newTestRankService(t, fake)

	stats, err := svc.GetRankStats(context.Background(), "alpha")
	if err != nil {
		t.Fatalf("GetRankStats: %v", err)
	}
	if stats.Type != domain.MatchTypeRanked {
		t.Errorf("Type = %q, want ranked", stats.Type)
	}
	if stats.Tier != domain.TierDiamond || stats.SubTier != "3" {
		t.Errorf("tier = %q/%q, want diamond/3", stats.Tier, stats.SubTier)
	}
	if stats.RankPoint != 3150 || stats.RoundsPlayed != 87 || stats.Kills != 210 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestGetRankStatsNoSquadBlock(t *testing.T) {
	fake := newFakeAPI("alpha")
	fake.currentSeason = "division.bro.official.pc-2018-35"
	fake.rankedStats = map[string]any{}
	svc := newTestRankService(t, fake)

	_, err := svc.GetRankStats(context.Background(), "alpha")
	if !errs.IsCode(err, errs.CodeAPIRequest) {
		t.Errorf("error = %v, want api-request kind", err)
	}
}

func TestGetClan(t *testing.T) {
	fake := newFakeAPI("alpha")
	fake.clan = map[string]any{
		"clanName":        "Night Watch",
		"clanTag":         "NW",
		"clanLevel":       7,
		"clanMemberCount": 42,
	}
	svc := newTestRankService(t, fake)

	clan, err := svc.GetClan(context.Background(), "clan.xyz")
	if err != nil {
		t.Fatalf("GetClan: %v", err)
	}
	if clan.ID != "clan.xyz" || clan.Name != "Night Watch" || clan.Tag != "NW" {
		t.Errorf("clan = %+v", clan)
	}
	if clan.Level != 7 || clan.MemberCount != 42 {
		t.Errorf("clan = %+v", clan)
	}
}
