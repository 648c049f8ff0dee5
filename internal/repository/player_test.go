package repository

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"

	"pubg-tracker/internal/config"
	"pubg-tracker/internal/database"
	"pubg-tracker/internal/domain"
	"pubg-tracker/internal/errs"
)

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	cfg := &config.Config{DBPath: filepath.Join(t.TempDir(), "test.db")}
	db, err := database.Open(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func testPlayer(name string) *domain.Player {
	return &domain.Player{
		ID:           "account." + name,
		NormalizedID: name + "-norm",
		Name:         name,
		Platform:     "steam",
		BanType:      "Innocent",
		ClanID:       "clan.1234",
		MatchList: domain.MatchRefList{
			{ID: "m1", Type: "match"},
			{ID: "m2", Type: "match"},
		},
	}
}

func TestPlayerInsertGetRoundTrip(t *testing.T) {
	repo := NewPlayerRepository(newTestDB(t), zerolog.Nop())
	ctx := context.Background()

	in := testPlayer("alpha")
	if err := repo.Insert(ctx, in); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	for _, key := range []PlayerKey{ByNormalizedID("alpha-norm"), ByName("alpha")} {
		out, err := repo.Get(ctx, key)
		if err != nil {
			t.Fatalf("Get(%v): %v", key, err)
		}
		if out.ID != in.ID || out.NormalizedID != in.NormalizedID || out.Name != in.Name ||
			out.Platform != in.Platform || out.BanType != in.BanType || out.ClanID != in.ClanID {
			t.Errorf("Get(%v) = %+v, want fields of %+v", key, out, in)
		}
		if !reflect.DeepEqual(out.MatchList, in.MatchList) {
			t.Errorf("match list did not round-trip: %v != %v", out.MatchList, in.MatchList)
		}
		if out.UpdatedDate.IsZero() {
			t.Error("updated date not stamped on insert")
		}
	}
}

func TestPlayerExistsAfterInsert(t *testing.T) {
	repo := NewPlayerRepository(newTestDB(t), zerolog.Nop())
	ctx := context.Background()

	if err := repo.Insert(ctx, testPlayer("alpha")); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	for _, key := range []PlayerKey{ByNormalizedID("alpha-norm"), ByName("alpha")} {
		exists, err := repo.Exists(ctx, key)
		if err != nil {
			t.Fatalf("Exists(%v): %v", key, err)
		}
		if !exists {
			t.Errorf("Exists(%v) = false after insert", key)
		}
	}

	exists, err := repo.Exists(ctx, ByName("stranger"))
	if err != nil {
		t.Fatalf("Exists: %v", err)
	}
	if exists {
		t.Error("Exists(stranger) = true, want false")
	}
}

func TestPlayerGetNotFound(t *testing.T) {
	repo := NewPlayerRepository(newTestDB(t), zerolog.Nop())

	_, err := repo.Get(context.Background(), ByName("nobody"))
	if !errs.IsCode(err, errs.CodePlayerNotFound) {
		t.Errorf("Get(nobody) error = %v, want player-not-found", err)
	}
}

func TestPlayerDuplicateInsertIsAlreadyExists(t *testing.T) {
	repo := NewPlayerRepository(newTestDB(t), zerolog.Nop())
	ctx := context.Background()

	if err := repo.Insert(ctx, testPlayer("alpha")); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	err := repo.Insert(ctx, testPlayer("alpha"))
	if !errs.IsCode(err, errs.CodeAlreadyExists) {
		t.Errorf("duplicate insert error = %v, want already-exists", err)
	}
}

func TestPlayerUpdateReplacesFields(t *testing.T) {
	db := newTestDB(t)
	repo := NewPlayerRepository(db, zerolog.Nop())
	ctx := context.Background()

	in := testPlayer("alpha")
	if err := repo.Insert(ctx, in); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	in.Name = "alpha-renamed"
	in.BanType = "TemporaryBan"
	in.MatchList = domain.MatchRefList{{ID: "m9", Type: "match"}}
	if err := repo.Update(ctx, in); err != nil {
		t.Fatalf("Update: %v", err)
	}

	out, err := repo.Get(ctx, ByNormalizedID("alpha-norm"))
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if out.Name != "alpha-renamed" || out.BanType != "TemporaryBan" {
		t.Errorf("Get after update = %+v, want renamed fields", out)
	}
	if !reflect.DeepEqual(out.MatchList, in.MatchList) {
		t.Errorf("match list after update = %v, want %v", out.MatchList, in.MatchList)
	}
}

func TestPlayerUpdateMissingRowFails(t *testing.T) {
	repo := NewPlayerRepository(newTestDB(t), zerolog.Nop())

	err := repo.Update(context.Background(), testPlayer("ghost"))
	if !errs.IsCode(err, errs.CodePlayerNotFound) {
		t.Errorf("Update(ghost) error = %v, want player-not-found", err)
	}
}

func TestPlayerStaleness(t *testing.T) {
	db := newTestDB(t)
	repo := NewPlayerRepository(db, zerolog.Nop())
	ctx := context.Background()

	if err := repo.Insert(ctx, testPlayer("alpha")); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	outdated, err := repo.IsOutdated(ctx, ByName("alpha"), 2*time.Second)
	if err != nil {
		t.Fatalf("IsOutdated: %v", err)
	}
	if outdated {
		t.Error("record outdated immediately after insert")
	}

	// age the record past the window
	if _, err := db.Exec("UPDATE players SET updated_date = ? WHERE name = ?",
		time.Now().UTC().Add(-3*time.Second), "alpha"); err != nil {
		t.Fatalf("age record: %v", err)
	}

	outdated, err = repo.IsOutdated(ctx, ByName("alpha"), 2*time.Second)
	if err != nil {
		t.Fatalf("IsOutdated: %v", err)
	}
	if !outdated {
		t.Error("aged record not reported outdated")
	}

	outdated, err = repo.IsOutdated(ctx, ByName("absent"), 2*time.Second)
	if err != nil {
		t.Fatalf("IsOutdated(absent): %v", err)
	}
	if !outdated {
		t.Error("absent record must count as outdated")
	}
}

func TestDiscordLinks(t *testing.T) {
	repo := NewPlayerRepository(newTestDB(t), zerolog.Nop())
	ctx := context.Background()

	if err := repo.Insert(ctx, testPlayer("alpha")); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	if err := repo.SetDiscordLink(ctx, "alpha", "discord-123"); err != nil {
		t.Fatalf("SetDiscordLink: %v", err)
	}

	id, err := repo.GetDiscordLink(ctx, "alpha")
	if err != nil {
		t.Fatalf("GetDiscordLink: %v", err)
	}
	if id != "discord-123" {
		t.Errorf("GetDiscordLink = %q, want discord-123", id)
	}

	name, err := repo.PlayerNameByDiscordLink(ctx, "discord-123")
	if err != nil {
		t.Fatalf("PlayerNameByDiscordLink: %v", err)
	}
	if name != "alpha" {
		t.Errorf("PlayerNameByDiscordLink = %q, want alpha", name)
	}

	_, err = repo.PlayerNameByDiscordLink(ctx, "discord-999")
	if !errs.IsCode(err, errs.CodePlayerNotFound) {
		t.Errorf("unset reverse lookup error = %v, want player-not-found", err)
	}
}

func TestPlayerKeyContract(t *testing.T) {
	repo := NewPlayerRepository(newTestDB(t), zerolog.Nop())

	assertPanics := func(name string, key PlayerKey) {
		t.Helper()
		defer func() {
			if recover() == nil {
				t.Errorf("%s: expected panic", name)
			}
		}()
		repo.Exists(context.Background(), key) //nolint:errcheck
	}

	assertPanics("empty key", PlayerKey{})
	assertPanics("both keys", PlayerKey{NormalizedID: "a", Name: "b"})
}
