package game

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"

	"go.uber.org/zap"

	"github.com/wfunc/outbreak/state"
)

// Game is the mutable state of one game. It is not safe for concurrent use;
// callers that share a Game must serialise access.
type Game struct {
	cfg     Config
	board   *Board
	decider Decider
	log     *zap.Logger
	bus     *EventBus
	rng     *rand.Rand
	seed    uint64
	phase   *state.TurnMachine

	agents    []Agent
	locations []City
	hands     []Hand

	cubes     map[City]map[Disease]int
	totals    [NumDiseases]int
	cured     [NumDiseases]bool
	stations  map[City]bool
	infection *InfectionDeck
	players   *PlayerDeck

	rateIndex     int
	outbreaks     int
	epidemics     int
	skipInfection bool
	current       int
	turn          int
	reserve       *EventCard
	opsMoveUsed   bool
	outcome       Outcome
}

// New builds and sets up a game: roles are assigned, decks built and dealt,
// epidemics seeded and the board infected. A nil logger discards output.
func New(cfg Config, decider Decider, log *zap.Logger) (*Game, error) {
	if cfg.Board == nil || cfg.Players == 0 {
		return nil, fmt.Errorf("%w: config was not built with NewConfig", ErrInvalidConfig)
	}
	if decider == nil {
		return nil, errors.New("game needs a decider")
	}
	if log == nil {
		log = zap.NewNop()
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}

	g := &Game{
		cfg:      cfg,
		board:    cfg.Board,
		decider:  decider,
		log:      log,
		bus:      NewEventBus(),
		rng:      rand.New(rand.NewPCG(seed, seed>>1|1)),
		seed:     seed,
		cubes:    make(map[City]map[Disease]int),
		stations: make(map[City]bool),
		players:  &PlayerDeck{},
	}
	g.phase = state.NewTurnMachine(g.onPhase)
	g.setup()
	return g, nil
}

func (g *Game) setup() {
	shuffle := !g.cfg.Testing

	roles := Roles()
	if shuffle {
		shuffleSlice(g.rng, roles)
	}
	for _, r := range roles[:g.cfg.Players] {
		g.agents = append(g.agents, newAgent(r))
	}
	g.locations = make([]City, len(g.agents))
	g.hands = make([]Hand, len(g.agents))

	cities := g.board.Cities()
	g.infection = newInfectionDeck(cities, g.rng, shuffle)

	g.players.cards = buildPlayerDeck(cities, g.cfg.Events, g.rng, shuffle)
	for i := range g.agents {
		cards, err := g.players.Draw(g.cfg.StartingHand)
		if err != nil {
			panic("player deck too small for starting hands")
		}
		for _, c := range cards {
			g.hands[i].Add(c)
		}
	}
	offset := func(segLen int) int { return g.rng.IntN(segLen) }
	if g.cfg.Testing {
		offset = func(int) int { return 0 }
	}
	g.players.cards = SeedEpidemics(g.players.cards, g.cfg.Epidemics, offset)

	g.stations[g.board.Start] = true
	for i := range g.locations {
		g.locations[i] = g.board.Start
	}

	g.seedBoard()

	if !g.cfg.Testing {
		g.current = g.rng.IntN(len(g.agents))
	}

	roleNames := make([]string, len(g.agents))
	for i, a := range g.agents {
		roleNames[i] = a.Role.String()
	}
	g.log.Info("game ready",
		zap.Uint64("seed", g.seed),
		zap.Strings("roles", roleNames),
		zap.Int("player_deck", g.players.Len()),
		zap.Int("first_player", g.current),
		zap.Bool("interactive", g.cfg.Interactive),
	)
}

func (g *Game) onPhase(p state.Phase) {
	g.bus.Emit(GameEvent{Type: EventPhaseChanged, Turn: g.turn, Agent: g.current, Phase: p})
}

func (g *Game) advance(p state.Phase) {
	if err := g.phase.Advance(p); err != nil {
		g.log.DPanic("illegal phase transition",
			zap.String("from", string(g.phase.Phase())),
			zap.String("to", string(p)),
			zap.Error(err),
		)
	}
}

var outcomePhases = map[Outcome]state.Phase{
	OutcomeWin:                 state.PhaseWin,
	OutcomePlayerDeckExhausted: state.PhasePlayerDeckExhausted,
	OutcomeDiseaseCubeLimit:    state.PhaseDiseaseCubeCapExceeded,
	OutcomeOutbreakLimit:       state.PhaseOutbreakCapExceeded,
}

// finish freezes the game with outcome o.
func (g *Game) finish(o Outcome) {
	if g.outcome.Terminal() {
		return
	}
	g.outcome = o
	g.advance(outcomePhases[o])
	g.log.Info("game over",
		zap.Stringer("outcome", o),
		zap.Int("turn", g.turn),
		zap.Int("outbreaks", g.outbreaks),
		zap.Int("epidemics", g.epidemics),
	)
	g.bus.Emit(GameEvent{Type: EventGameOver, Turn: g.turn, Agent: g.current, Outcome: o})
}

// settle records a terminal outcome carried by err and passes err through.
func (g *Game) settle(err error) error {
	if o, ok := AsOutcome(err); ok {
		g.finish(o)
	}
	return err
}

// --- read access ---

func (g *Game) Config() Config { return g.cfg }
func (g *Game) Board() *Board { return g.board }
func (g *Game) Events() *EventBus { return g.bus }
func (g *Game) Seed() uint64 { return g.seed }
func (g *Game) Phase() state.Phase { return g.phase.Phase() }
func (g *Game) Outcome() Outcome { return g.outcome }
func (g *Game) Over() bool { return g.outcome.Terminal() }
func (g *Game) Current() int { return g.current }
func (g *Game) Turn() int { return g.turn }
func (g *Game) Outbreaks() int { return g.outbreaks }
func (g *Game) EpidemicsDrawn() int { return g.epidemics }
func (g *Game) SkipNextInfection() bool { return g.skipInfection }
func (g *Game) NumAgents() int { return len(g.agents) }
func (g *Game) Infection() *InfectionDeck { return g.infection }
func (g *Game) Players() *PlayerDeck { return g.players }

// Agent returns seat i.
func (g *Game) Agent(i int) Agent {
	a := g.agents[i]
	a.Actions = slices.Clone(a.Actions)
	return a
}

// Location returns where agent i's pawn stands.
func (g *Game) Location(i int) City {
	return g.locations[i]
}

// Hand returns a copy of agent i's hand.
func (g *Game) Hand(i int) []PlayerCard {
	return g.hands[i].Cards()
}

// Reserve returns the event card the Contingency Planner holds in reserve.
func (g *Game) Reserve() (EventCard, bool) {
	if g.reserve == nil {
		return 0, false
	}
	return *g.reserve, true
}

// Cubes returns the number of cubes of d in city.
func (g *Game) Cubes(city City, d Disease) int {
	return g.cubes[city][d]
}

// Total returns the number of cubes of d on the board.
func (g *Game) Total(d Disease) int {
	return g.totals[d]
}

// InfectionRate returns the number of infection cards drawn per turn.
func (g *Game) InfectionRate() int {
	return g.cfg.InfectionRates[g.rateIndex]
}

// HasResearchStation reports whether city has a research station.
func (g *Game) HasResearchStation(city City) bool {
	return g.stations[city]
}

// Stations returns the research station cities sorted by name.
func (g *Game) Stations() []City {
	out := make([]City, 0, len(g.stations))
	for c := range g.stations {
		out = append(out, c)
	}
	slices.Sort(out)
	return out
}

// IsEradicated reports whether no cube of d is on the board.
func (g *Game) IsEradicated(d Disease) bool {
	return g.totals[d] == 0
}

// IsCured reports whether d was cured or is eradicated.
func (g *Game) IsCured(d Disease) bool {
	return g.cured[d] || g.IsEradicated(d)
}

// CureFound reports whether a cure for d was discovered.
func (g *Game) CureFound(d Disease) bool {
	return g.cured[d]
}

func (g *Game) agentWithRole(r Role) (int, bool) {
	for i, a := range g.agents {
		if a.Role == r {
			return i, true
		}
	}
	return -1, false
}
