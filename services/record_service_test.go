package services

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/wfunc/outbreak/game"
	"github.com/wfunc/outbreak/persistence"
)

// stubDecider answers every prompt with the first legal choice.
type stubDecider struct{}

func (stubDecider) ChooseCity(g *game.Game, agent int, card game.EventCard) game.City {
	return g.Board().Start
}
func (stubDecider) ChooseInfectionDiscardIndex(g *game.Game, agent int, discard []game.City) int {
	return 0
}
func (stubDecider) ChooseOrderedSubset(g *game.Game, agent int, cards []game.City, min, max int) []int {
	out := make([]int, min)
	for i := range out {
		out[i] = i
	}
	return out
}
func (stubDecider) ChooseDiscards(g *game.Game, agent int, hand []game.PlayerCard, n int) []game.PlayerCard {
	return hand[:n]
}
func (stubDecider) MaybeChooseEvent(g *game.Game, agent int, hand []game.PlayerCard) (game.EventPlay, bool) {
	return game.EventPlay{}, false
}

func newGame(t *testing.T) *game.Game {
	t.Helper()
	cfg, err := game.NewConfig(game.Options{Players: 2, Seed: 3, MaxOutbreaks: 1})
	if err != nil {
		t.Fatal(err)
	}
	g, err := game.New(cfg, stubDecider{}, nil)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

// finish ends g with an outbreak in a city that already holds three cubes.
func finish(t *testing.T, g *game.Game) {
	t.Helper()
	for _, city := range g.Board().Cities() {
		d := g.Board().Color(city)
		if g.Cubes(city, d) == 3 {
			_ = g.PlaceCube(city, d)
		}
		if g.Over() {
			break
		}
	}
	if g.Outcome() != game.OutcomeOutbreakLimit {
		t.Fatalf("Expected the game to end, got %s", g.Outcome())
	}
}

func TestNewRecord(t *testing.T) {
	g := newGame(t)
	if _, err := NewRecord("room", g, time.Now(), time.Now()); !errors.Is(err, ErrGameNotFinished) {
		t.Errorf("Expected ErrGameNotFinished, got %v", err)
	}
	finish(t, g)

	rec, err := NewRecord("room", g, time.Now(), time.Now())
	if err != nil {
		t.Fatal(err)
	}
	if rec.Outcome != "outbreak_limit" || rec.Won || rec.Players != 2 || len(rec.Roles) != 2 {
		t.Errorf("Unexpected record %+v", rec)
	}
	if rec.ID == "" || rec.Seed != 3 {
		t.Errorf("Expected an id and seed 3, got %q %d", rec.ID, rec.Seed)
	}
}

func TestRecordService_RecordGame(t *testing.T) {
	db, err := persistence.NewSQLite(filepath.Join(t.TempDir(), "records.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	s := NewRecordService(db, nil)

	g := newGame(t)
	finish(t, g)
	rec, err := s.RecordGame("room-1", g, time.Now().Add(-time.Minute))
	if err != nil {
		t.Fatal(err)
	}

	got, err := s.Get(rec.ID)
	if err != nil || got.RoomID != "room-1" {
		t.Errorf("Expected the saved record, got %+v %v", got, err)
	}
	recent, err := s.Recent(0)
	if err != nil || len(recent) != 1 {
		t.Errorf("Expected one recent record, got %d %v", len(recent), err)
	}
	stats, err := s.Stats()
	if err != nil || stats.TotalGames != 1 || stats.Losses != 1 {
		t.Errorf("Unexpected stats %+v %v", stats, err)
	}
}
