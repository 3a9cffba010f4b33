package game

import (
	"fmt"
	"testing"
)

// MockDecider answers every prompt from fixed fields.
type MockDecider struct {
	City         City
	DiscardIndex int
	Order        []int        // nil means keep the current order
	Events       []EventPlay  // played one per checkpoint prompt, in order
	Discarded    []PlayerCard // every card chosen by ChooseDiscards
	EventPrompts int
}

func (m *MockDecider) ChooseCity(g *Game, agent int, card EventCard) City {
	return m.City
}

func (m *MockDecider) ChooseInfectionDiscardIndex(g *Game, agent int, discard []City) int {
	return m.DiscardIndex
}

func (m *MockDecider) ChooseOrderedSubset(g *Game, agent int, cards []City, min, max int) []int {
	if m.Order != nil {
		return m.Order
	}
	out := make([]int, min)
	for i := range out {
		out[i] = i
	}
	return out
}

func (m *MockDecider) ChooseDiscards(g *Game, agent int, hand []PlayerCard, n int) []PlayerCard {
	picks := append([]PlayerCard(nil), hand[:n]...)
	m.Discarded = append(m.Discarded, picks...)
	return picks
}

func (m *MockDecider) MaybeChooseEvent(g *Game, agent int, hand []PlayerCard) (EventPlay, bool) {
	m.EventPrompts++
	if len(m.Events) == 0 {
		return EventPlay{}, false
	}
	for _, c := range hand {
		if c.IsEvent() && c.Event == m.Events[0].Card {
			play := m.Events[0]
			m.Events = m.Events[1:]
			return play, true
		}
	}
	return EventPlay{}, false
}

// pathBoard is twenty cities on one line, five per color:
// b1-...-b5-r1-...-r5-k1-...-k5-y1-...-y5, starting at b1.
func pathBoard() *Board {
	b := &Board{
		Adjacency: make(map[City][]City),
		Colors:    make(map[City]Disease),
		Start:     "b1",
	}
	var line []City
	for _, c := range []struct {
		prefix string
		d      Disease
	}{{"b", Blue}, {"r", Red}, {"k", Black}, {"y", Yellow}} {
		for i := 1; i <= 5; i++ {
			city := City(fmt.Sprintf("%s%d", c.prefix, i))
			line = append(line, city)
			b.Colors[city] = c.d
		}
	}
	for i, city := range line {
		b.Adjacency[city] = nil
		if i > 0 {
			b.Adjacency[city] = append(b.Adjacency[city], line[i-1])
		}
		if i < len(line)-1 {
			b.Adjacency[city] = append(b.Adjacency[city], line[i+1])
		}
	}
	return b
}

// ringBoard is n blue cities in a cycle.
func ringBoard(n int) *Board {
	b := &Board{
		Adjacency: make(map[City][]City),
		Colors:    make(map[City]Disease),
		Start:     "c00",
	}
	name := func(i int) City { return City(fmt.Sprintf("c%02d", (i+n)%n)) }
	for i := range n {
		b.Adjacency[name(i)] = []City{name(i - 1), name(i + 1)}
		b.Colors[name(i)] = Blue
	}
	return b
}

func testOptions() Options {
	return Options{
		Players:       2,
		Epidemics:     -1,
		Testing:       true,
		DisableEvents: true,
		Seed:          1,
		Board:         pathBoard(),
	}
}

// newTestGame builds a deterministic two player game on pathBoard. After
// setup agent 0 holds y5 y4 y3 y2, agent 1 holds y1 r5 r4 r3, both stand
// in b1 and b1 has the only research station.
func newTestGame(t *testing.T, opts Options) (*Game, *MockDecider) {
	t.Helper()
	cfg, err := NewConfig(opts)
	if err != nil {
		t.Fatalf("NewConfig failed: %v", err)
	}
	d := &MockDecider{}
	g, err := New(cfg, d, nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return g, d
}

// clearCubes empties the board.
func clearCubes(g *Game) {
	g.cubes = make(map[City]map[Disease]int)
	g.totals = [NumDiseases]int{}
}

func putCubes(g *Game, city City, d Disease, n int) {
	g.totals[d] += n - g.cubes[city][d]
	g.setCubes(city, d, n)
}

func setRole(g *Game, agent int, r Role) {
	g.agents[agent] = newAgent(r)
}

func actionIndex(t *testing.T, g *Game, agent int, id ActionID) int {
	t.Helper()
	i, ok := g.agents[agent].ActionIndex(id)
	if !ok {
		t.Fatalf("%s has no %s action", g.agents[agent].Role, id)
	}
	return i
}

func cityCards(cities ...City) Hand {
	h := make(Hand, 0, len(cities))
	for _, c := range cities {
		h = append(h, CityPlayerCard(c))
	}
	return h
}

func drives(cities ...City) []Invocation {
	out := make([]Invocation, len(cities))
	for i, c := range cities {
		out[i] = Invocation{Action: int(Drive), Args: Args{City: c}}
	}
	return out
}
