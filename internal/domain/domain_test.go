package domain

import (
	"reflect"
	"testing"
)

func TestNormalizePlayerID(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"account.c0e530e9b7244b358def282782f893af", "c0e530e9b7244b358def282782f893af"},
		{"c0e530e9-b724-4b35-8def-282782f893af", "c0e530e9b7244b358def282782f893af"},
		{"plainid", "plainid"},
	}

	for _, tt := range tests {
		if got := NormalizePlayerID(tt.in); got != tt.want {
			t.Errorf("NormalizePlayerID(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMatchTypeFromString(t *testing.T) {
	tests := []struct {
		in   string
		want MatchType
	}{
		{"official", MatchTypeNormal},
		{"competitive", MatchTypeRanked},
		{"custom", MatchTypeCustom},
		{"something-new", MatchTypeUndefined},
	}

	for _, tt := range tests {
		if got := MatchTypeFromString(tt.in); got != tt.want {
			t.Errorf("MatchTypeFromString(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMatchTypeScoreable(t *testing.T) {
	for _, scoreable := range []MatchType{MatchTypeNormal, MatchTypeRanked} {
		if !scoreable.Scoreable() {
			t.Errorf("%q should be scoreable", scoreable)
		}
	}
	for _, excluded := range []MatchType{MatchTypeCustom, MatchTypeEvent, MatchTypeSeasonal, MatchTypeTraining, MatchTypeUndefined} {
		if excluded.Scoreable() {
			t.Errorf("%q should not be scoreable", excluded)
		}
	}
}

func TestGameModeFromString(t *testing.T) {
	if got := GameModeFromString("squad"); got != GameModeSquad {
		t.Errorf("GameModeFromString(squad) = %q", got)
	}
	if got := GameModeFromString("not-a-mode"); got != GameModeUndefined {
		t.Errorf("GameModeFromString(not-a-mode) = %q, want undefined", got)
	}
}

func TestMatchRefListRoundTrip(t *testing.T) {
	list := MatchRefList{
		{ID: "m1", Type: "match"},
		{ID: "m2", Type: "match"},
	}

	value, err := list.Value()
	if err != nil {
		t.Fatalf("Value: %v", err)
	}

	var restored MatchRefList
	if err := restored.Scan(value); err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if !reflect.DeepEqual(list, restored) {
		t.Errorf("round trip mismatch: %v != %v", restored, list)
	}
}

func TestStatsForFindsParticipant(t *testing.T) {
	match := Match{
		ID: "m1",
		Participants: []PlayerMatchStats{
			{PlayerName: "alpha", MatchID: "m1", Kills: 3},
			{PlayerName: "bravo", MatchID: "m1", Kills: 7},
		},
	}

	stats, ok := match.StatsFor("bravo")
	if !ok || stats.Kills != 7 {
		t.Errorf("StatsFor(bravo) = %+v, %v", stats, ok)
	}
	if _, ok := match.StatsFor("charlie"); ok {
		t.Error("StatsFor(charlie) should not find a participant")
	}
}

func TestStatsDerivedRatios(t *testing.T) {
	s := Stats{RoundsPlayed: 4, DamageDealt: 400, Kills: 6, Deaths: 3}
	if got := s.AvgDealt(); got != 100 {
		t.Errorf("AvgDealt = %v, want 100", got)
	}
	if got := s.KD(); got != 2 {
		t.Errorf("KD = %v, want 2", got)
	}

	zero := Stats{}
	if zero.AvgDealt() != 0 || zero.KD() != 0 {
		t.Error("zero-valued stats must not divide by zero")
	}
}

func TestTierFromStringFoldsCase(t *testing.T) {
	cases := map[string]Tier{
		"Diamond":    TierDiamond,
		"diamond":    TierDiamond,
		"MASTER":     TierMaster,
		"Unranked":   TierUndefined,
		"":           TierUndefined,
		"grandpuppy": TierUndefined,
	}
	for in, want := range cases {
		if got := TierFromString(in); got != want {
			t.Errorf("TierFromString(%q) = %q, want %q", in, got, want)
		}
	}
}
