package persistence

import (
	"errors"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/wfunc/outbreak/config"
	"github.com/wfunc/outbreak/models"
)

func newTestDB(t *testing.T) Database {
	t.Helper()
	db, err := Open(config.DatabaseConfig{
		Driver: "sqlite",
		SQLite: config.SQLiteConfig{Path: filepath.Join(t.TempDir(), "test.db")},
	})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func testRecord(id, outcome string, turns int, finished time.Time) *models.GameRecord {
	return &models.GameRecord{
		ID:         id,
		RoomID:     "room-" + id,
		Players:    4,
		Roles:      []string{"Medic", "Dispatcher", "Scientist", "Researcher"},
		Outcome:    outcome,
		Won:        outcome == "win",
		Turns:      turns,
		Outbreaks:  3,
		Epidemics:  2,
		Cured:      []string{"blue"},
		Seed:       1<<63 + 5,
		StartedAt:  finished.Add(-time.Minute),
		FinishedAt: finished,
	}
}

func TestSQLite_SaveAndGet(t *testing.T) {
	db := newTestDB(t)
	now := time.Now().Truncate(time.Millisecond)
	rec := testRecord("a", "win", 20, now)

	if err := db.SaveGameRecord(rec); err != nil {
		t.Fatalf("SaveGameRecord failed: %v", err)
	}
	got, err := db.GetGameRecord("a")
	if err != nil {
		t.Fatalf("GetGameRecord failed: %v", err)
	}
	if got.Outcome != "win" || !got.Won || got.Seed != rec.Seed {
		t.Errorf("Expected %+v, got %+v", rec, got)
	}
	if !slices.Equal(got.Roles, rec.Roles) || !slices.Equal(got.Cured, rec.Cured) {
		t.Errorf("Expected roles %v cured %v, got %v %v", rec.Roles, rec.Cured, got.Roles, got.Cured)
	}
	if !got.FinishedAt.Equal(now) {
		t.Errorf("Expected finished at %v, got %v", now, got.FinishedAt)
	}

	if _, err := db.GetGameRecord("missing"); !errors.Is(err, ErrRecordNotFound) {
		t.Errorf("Expected ErrRecordNotFound, got %v", err)
	}
	if err := db.SaveGameRecord(rec); err == nil {
		t.Error("Expected a duplicate record id to fail")
	}
}

func TestSQLite_ListAndStats(t *testing.T) {
	db := newTestDB(t)
	base := time.Now()
	records := []*models.GameRecord{
		testRecord("1", "win", 10, base.Add(-3*time.Minute)),
		testRecord("2", "outbreak_limit", 20, base.Add(-2*time.Minute)),
		testRecord("3", "outbreak_limit", 30, base.Add(-1*time.Minute)),
	}
	for _, r := range records {
		if err := db.SaveGameRecord(r); err != nil {
			t.Fatal(err)
		}
	}

	recent, err := db.ListGameRecords(2)
	if err != nil {
		t.Fatal(err)
	}
	if len(recent) != 2 || recent[0].ID != "3" || recent[1].ID != "2" {
		t.Errorf("Expected records 3 and 2, got %+v", recent)
	}

	stats, err := db.GetStats()
	if err != nil {
		t.Fatal(err)
	}
	if stats.TotalGames != 3 || stats.Wins != 1 || stats.Losses != 2 {
		t.Errorf("Unexpected stats %+v", stats)
	}
	if stats.AvgTurns != 20 {
		t.Errorf("Expected average 20 turns, got %v", stats.AvgTurns)
	}
	if stats.ByOutcome["outbreak_limit"] != 2 || stats.ByOutcome["win"] != 1 {
		t.Errorf("Unexpected outcome counts %v", stats.ByOutcome)
	}
}

func TestSQLite_EmptyStats(t *testing.T) {
	db := newTestDB(t)
	stats, err := db.GetStats()
	if err != nil {
		t.Fatal(err)
	}
	if stats.TotalGames != 0 || stats.AvgTurns != 0 {
		t.Errorf("Expected empty stats, got %+v", stats)
	}
}

func TestOpen_UnknownDriver(t *testing.T) {
	if _, err := Open(config.DatabaseConfig{Driver: "oracle"}); !errors.Is(err, ErrUnknownDriver) {
		t.Errorf("Expected ErrUnknownDriver, got %v", err)
	}
}

func TestDollarRebind(t *testing.T) {
	got := dollarRebind("SELECT a FROM t WHERE b = ? AND c = ?")
	if want := "SELECT a FROM t WHERE b = $1 AND c = $2"; got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}
