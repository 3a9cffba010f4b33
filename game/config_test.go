package game

import (
	"errors"
	"testing"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg, err := NewConfig(DefaultOptions(3))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.StartingHand != 3 || cfg.Epidemics != 4 || cfg.CardsPerTurn != 2 {
		t.Errorf("Unexpected defaults: %+v", cfg)
	}
	if cfg.MaxCubes != 24 || cfg.MaxOutbreaks != 8 || len(cfg.InfectionRates) != 7 {
		t.Errorf("Unexpected limits: %+v", cfg)
	}
	if !cfg.Events || cfg.Board == nil || cfg.Board.Start != "atlanta" {
		t.Error("Expected events on the standard board")
	}
}

func TestNewConfig_StartingHands(t *testing.T) {
	for players, hand := range map[int]int{2: 4, 3: 3, 4: 2} {
		cfg, err := NewConfig(DefaultOptions(players))
		if err != nil {
			t.Fatal(err)
		}
		if cfg.StartingHand != hand {
			t.Errorf("%d players: expected hand %d, got %d", players, hand, cfg.StartingHand)
		}
	}
}

func TestNewConfig_Errors(t *testing.T) {
	small := ringBoard(8)
	tests := []struct {
		name string
		opts Options
		want error
	}{
		{"one player", Options{Players: 1}, ErrInvalidPlayerCount},
		{"five players", Options{Players: 5}, ErrInvalidPlayerCount},
		{"short rates", Options{Players: 2, InfectionRates: []int{2, 2}}, ErrShortInfectionRates},
		{"negative rate", Options{Players: 2, InfectionRates: []int{2, 2, 2, 3, -1}}, ErrInvalidConfig},
		{"negative cards", Options{Players: 2, CardsPerTurn: -1}, ErrInvalidConfig},
		{"cube supply below setup", Options{Players: 2, MaxCubes: 3, Testing: true}, ErrInvalidConfig},
		{"cube supply one short", Options{Players: 2, MaxCubes: 17}, ErrInvalidConfig},
		{"tiny board", Options{Players: 2, Board: small}, ErrInvalidBoard},
		{"broken board", Options{Players: 2, Board: &Board{Start: "x"}}, ErrInvalidBoard},
		{"deck too small", Options{Players: 4, Epidemics: 6, DisableEvents: true, Board: ringBoard(12),
			InfectionRates: []int{2, 2, 2, 3, 3, 4, 4}}, ErrInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewConfig(tt.opts); !errors.Is(err, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestNewConfig_NoEpidemics(t *testing.T) {
	cfg, err := NewConfig(Options{Players: 2, Epidemics: -1, InfectionRates: []int{2}})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Epidemics != 0 {
		t.Errorf("Expected no epidemics, got %d", cfg.Epidemics)
	}
}

func TestNew_StandardGame(t *testing.T) {
	cfg, err := NewConfig(Options{Players: 4, Seed: 42})
	if err != nil {
		t.Fatal(err)
	}
	g, err := New(cfg, &MockDecider{}, nil)
	if err != nil {
		t.Fatal(err)
	}
	// 48 cities and 5 events, minus 4 hands of 2, plus 4 epidemics.
	if g.Players().Len() != 48+5-8+4 {
		t.Errorf("Expected %d player cards, got %d", 48+5-8+4, g.Players().Len())
	}
	epidemics := 0
	for _, c := range g.Players().Cards() {
		if c.IsEpidemic() {
			epidemics++
		}
	}
	if epidemics != 4 {
		t.Errorf("Expected 4 epidemics in the deck, got %d", epidemics)
	}
	if g.Infection().Len() != 48-9 {
		t.Errorf("Expected %d infection cards, got %d", 48-9, g.Infection().Len())
	}
	roles := make(map[Role]bool)
	for i := range g.NumAgents() {
		roles[g.Agent(i).Role] = true
		if len(g.Hand(i)) != 2 {
			t.Errorf("Expected 2 cards for agent %d, got %d", i, len(g.Hand(i)))
		}
	}
	if len(roles) != 4 {
		t.Errorf("Expected 4 distinct roles, got %v", roles)
	}

	again, _ := New(cfg, &MockDecider{}, nil)
	if again.Current() != g.Current() || again.Agent(0).Role != g.Agent(0).Role {
		t.Error("the same seed should produce the same setup")
	}
}

func TestNew_RejectsUnbuiltConfig(t *testing.T) {
	if _, err := New(Config{}, &MockDecider{}, nil); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got %v", err)
	}
}
