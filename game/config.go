package game

import (
	"fmt"
	"slices"
)

// MaxHandSize is the hand limit enforced after every card gain.
const MaxHandSize = 7

// ActionsPerTurn is the number of actions every turn must contain.
const ActionsPerTurn = 4

// setupCubes is the most cubes of one color the 3/3/3 setup can place.
const setupCubes = 3*3 + 3*2 + 3*1

// Options are the construction parameters of a game. Zero values take the
// documented defaults.
type Options struct {
	Players        int
	Epidemics      int   // default 4, negative for none
	CardsPerTurn   int   // default 2
	MaxCubes       int   // per color, default 24
	MaxOutbreaks   int   // default 8
	InfectionRates []int // default [2 2 2 3 3 4 4]
	Testing        bool  // no shuffling, fixed offsets, player 0 starts
	Interactive    bool  // a human answers the decider; logged, not interpreted
	DisableEvents  bool
	Seed           uint64 // 0 picks a random seed
	Board          *Board // default StandardBoard()
}

// Config is a validated, immutable game configuration.
type Config struct {
	Players        int
	StartingHand   int
	Epidemics      int
	CardsPerTurn   int
	MaxCubes       int
	MaxOutbreaks   int
	InfectionRates []int
	Testing        bool
	Interactive    bool
	Events         bool
	Seed           uint64
	Board          *Board
}

// DefaultOptions returns the standard setup for n players.
func DefaultOptions(players int) Options {
	return Options{Players: players}
}

// NewConfig applies defaults and validates opts.
func NewConfig(opts Options) (Config, error) {
	var hand int
	switch opts.Players {
	case 2:
		hand = 4
	case 3:
		hand = 3
	case 4:
		hand = 2
	default:
		return Config{}, fmt.Errorf("%w: got %d", ErrInvalidPlayerCount, opts.Players)
	}

	cfg := Config{
		Players:        opts.Players,
		StartingHand:   hand,
		Epidemics:      opts.Epidemics,
		CardsPerTurn:   opts.CardsPerTurn,
		MaxCubes:       opts.MaxCubes,
		MaxOutbreaks:   opts.MaxOutbreaks,
		InfectionRates: slices.Clone(opts.InfectionRates),
		Testing:        opts.Testing,
		Interactive:    opts.Interactive,
		Events:         !opts.DisableEvents,
		Seed:           opts.Seed,
		Board:          opts.Board,
	}
	switch {
	case cfg.Epidemics == 0:
		cfg.Epidemics = 4
	case cfg.Epidemics < 0:
		cfg.Epidemics = 0
	}
	if cfg.CardsPerTurn == 0 {
		cfg.CardsPerTurn = 2
	}
	if cfg.MaxCubes == 0 {
		cfg.MaxCubes = 24
	}
	if cfg.MaxOutbreaks == 0 {
		cfg.MaxOutbreaks = 8
	}
	if len(cfg.InfectionRates) == 0 {
		cfg.InfectionRates = []int{2, 2, 2, 3, 3, 4, 4}
	}
	if cfg.Board == nil {
		cfg.Board = StandardBoard()
	}

	if len(cfg.InfectionRates) < cfg.Epidemics+1 {
		return Config{}, fmt.Errorf("%w: %d rates for %d epidemics",
			ErrShortInfectionRates, len(cfg.InfectionRates), cfg.Epidemics)
	}
	var problems []string
	if cfg.CardsPerTurn < 0 {
		problems = append(problems, "cards per turn must not be negative")
	}
	if cfg.MaxCubes < 0 || cfg.MaxOutbreaks < 0 {
		problems = append(problems, "limits must not be negative")
	} else if cfg.MaxCubes < setupCubes {
		problems = append(problems, fmt.Sprintf("max cubes must be at least %d to fit the setup infections", setupCubes))
	}
	for _, r := range cfg.InfectionRates {
		if r < 0 {
			problems = append(problems, "infection rates must not be negative")
			break
		}
	}
	if len(problems) > 0 {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, problems)
	}
	if err := cfg.Board.Validate(); err != nil {
		return Config{}, err
	}
	// 9 setup infections and the starting hands must fit.
	cities := len(cfg.Board.Adjacency)
	if cities < 9 {
		return Config{}, fmt.Errorf("%w: board needs at least 9 cities, has %d", ErrInvalidBoard, cities)
	}
	deck := cities
	if cfg.Events {
		deck += len(EventCards())
	}
	if deck < cfg.Players*cfg.StartingHand+cfg.Epidemics {
		return Config{}, fmt.Errorf("%w: player deck of %d cards is too small", ErrInvalidConfig, deck)
	}
	return cfg, nil
}
