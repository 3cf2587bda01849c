package storage

import (
	"testing"
	"time"

	"github.com/mkoval/go-lol-metrics/internal/model"
)

func openMemDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open in-memory db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func sampleMatch(id, version string) *model.Match {
	return &model.Match{
		MatchID:        id,
		PlayerUniqueID: "puuid-1",
		MatchDate:      time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		Role:           "BOTTOM",
		Win:            true,
		Opponent:       "Caitlyn",
		Champion:       "Jinx",
		GameVersion:    version,
		GameDuration:   1800,
		Kills:          10, Deaths: 2, Assists: 8,
		TotalMinionsKilled: 200,
		MinionsPerMinute:   6.67,
		Build:              "Alpha, Bravo",
	}
}

func TestSaveMatchAndExists(t *testing.T) {
	db := openMemDB(t)

	m := sampleMatch("EUW1_1", "14.10")
	if err := db.SaveMatch(m); err != nil {
		t.Fatalf("SaveMatch: %v", err)
	}

	exists, err := db.MatchExists("EUW1_1")
	if err != nil {
		t.Fatalf("MatchExists: %v", err)
	}
	if !exists {
		t.Error("expected match to exist after insert")
	}

	exists2, _ := db.MatchExists("EUW1_2")
	if exists2 {
		t.Error("expected unstored match to not exist")
	}
}

func TestSaveMatchDuplicateFails(t *testing.T) {
	db := openMemDB(t)

	m := sampleMatch("EUW1_1", "14.10")
	if err := db.SaveMatch(m); err != nil {
		t.Fatalf("SaveMatch: %v", err)
	}
	if err := db.SaveMatch(m); err == nil {
		t.Error("expected duplicate insert to fail on the primary key")
	}
}

func TestMatchRoundTrip(t *testing.T) {
	db := openMemDB(t)

	m := sampleMatch("EUW1_1", "14.10")
	m.RuneDetails = "Press the Attack, Triumph"
	m.AllInPings = 3
	m.GoldEarned = 14000
	if err := db.SaveMatch(m); err != nil {
		t.Fatalf("SaveMatch: %v", err)
	}

	got, err := db.MatchesByVersion("14.10")
	if err != nil {
		t.Fatalf("MatchesByVersion: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 match, got %d", len(got))
	}

	stored := got[0]
	if !stored.MatchDate.Equal(m.MatchDate) {
		t.Errorf("match date = %v, want %v", stored.MatchDate, m.MatchDate)
	}
	if !stored.Win {
		t.Error("win flag lost")
	}
	if stored.Build != m.Build {
		t.Errorf("build = %q, want %q", stored.Build, m.Build)
	}
	if stored.RuneDetails != m.RuneDetails {
		t.Errorf("rune details = %q, want %q", stored.RuneDetails, m.RuneDetails)
	}
	if stored.AllInPings != 3 || stored.GoldEarned != 14000 {
		t.Error("ping or gold columns lost")
	}
}

func TestMatchesByVersionPrefixVsExact(t *testing.T) {
	db := openMemDB(t)

	for _, v := range []string{"14.10", "14.11", "15.1"} {
		if err := db.SaveMatch(sampleMatch("EUW1_"+v, v)); err != nil {
			t.Fatalf("SaveMatch: %v", err)
		}
	}

	prefix, err := db.MatchesByVersionPrefix("14")
	if err != nil {
		t.Fatalf("MatchesByVersionPrefix: %v", err)
	}
	if len(prefix) != 2 {
		t.Errorf("prefix 14 matched %d, want 2", len(prefix))
	}

	exact, err := db.MatchesByVersion("14.10")
	if err != nil {
		t.Fatalf("MatchesByVersion: %v", err)
	}
	if len(exact) != 1 {
		t.Errorf("exact 14.10 matched %d, want 1", len(exact))
	}
}

func TestItemsByIDsMissingAreAbsent(t *testing.T) {
	db := openMemDB(t)

	items := []model.Item{{ID: 100, Name: "Alpha"}, {ID: 200, Name: "Bravo"}}
	if err := db.InsertItems(items); err != nil {
		t.Fatalf("InsertItems: %v", err)
	}

	got, err := db.ItemsByIDs([]int{100, 300})
	if err != nil {
		t.Fatalf("ItemsByIDs: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 item, got %d", len(got))
	}
	if got[100].Name != "Alpha" {
		t.Errorf("item 100 = %q, want Alpha", got[100].Name)
	}
	if _, ok := got[300]; ok {
		t.Error("unknown id present in result")
	}
}

func TestUpdateItemName(t *testing.T) {
	db := openMemDB(t)

	if err := db.InsertItems([]model.Item{{ID: 100, Name: "Old"}}); err != nil {
		t.Fatalf("InsertItems: %v", err)
	}
	if err := db.UpdateItemName(100, "New"); err != nil {
		t.Fatalf("UpdateItemName: %v", err)
	}

	item, err := db.ItemByID(100)
	if err != nil {
		t.Fatalf("ItemByID: %v", err)
	}
	if item.Name != "New" {
		t.Errorf("name = %q, want New", item.Name)
	}
}

func TestItemNameFallback(t *testing.T) {
	db := openMemDB(t)

	name, err := db.ItemName(999)
	if err != nil {
		t.Fatalf("ItemName: %v", err)
	}
	if name != "Unknown Item" {
		t.Errorf("name = %q, want Unknown Item", name)
	}
}

func TestSyncedVersionSingleton(t *testing.T) {
	db := openMemDB(t)

	v, err := db.SyncedVersion()
	if err != nil {
		t.Fatalf("SyncedVersion: %v", err)
	}
	if v != "" {
		t.Errorf("expected empty version before first sync, got %q", v)
	}

	if err := db.RecordSyncedVersion("14.10.1"); err != nil {
		t.Fatalf("RecordSyncedVersion: %v", err)
	}
	if err := db.RecordSyncedVersion("14.11.1"); err != nil {
		t.Fatalf("RecordSyncedVersion (upsert): %v", err)
	}

	v, err = db.SyncedVersion()
	if err != nil {
		t.Fatalf("SyncedVersion: %v", err)
	}
	if v != "14.11.1" {
		t.Errorf("version = %q, want 14.11.1", v)
	}
}

func TestSaveAndLookupPlayer(t *testing.T) {
	db := openMemDB(t)

	p := model.Player{UniquePlayerID: "puuid-1", GameName: "Faker", TagLine: "KR1", Region: "asia"}
	if err := db.SavePlayer(&p); err != nil {
		t.Fatalf("SavePlayer: %v", err)
	}
	if p.ID == 0 {
		t.Error("SavePlayer did not set the row id")
	}

	got, err := db.PlayerByRiotID("Faker", "KR1")
	if err != nil {
		t.Fatalf("PlayerByRiotID: %v", err)
	}
	if got == nil || got.UniquePlayerID != "puuid-1" {
		t.Errorf("lookup = %+v", got)
	}

	missing, err := db.PlayerByRiotID("Nobody", "XX")
	if err != nil {
		t.Fatalf("PlayerByRiotID: %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil for unknown player, got %+v", missing)
	}

	if err := db.SavePlayer(&model.Player{UniquePlayerID: "puuid-1", GameName: "Faker", TagLine: "KR1"}); err == nil {
		t.Error("expected duplicate PUUID insert to fail")
	}

	players, err := db.Players()
	if err != nil {
		t.Fatalf("Players: %v", err)
	}
	if len(players) != 1 {
		t.Errorf("expected 1 player, got %d", len(players))
	}
}
