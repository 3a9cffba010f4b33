package game

import (
	"github.com/wfunc/outbreak/state"
)

// Snapshot is a read-only, JSON-ready copy of a game's visible state.
type Snapshot struct {
	Turn          int            `json:"turn"`
	Phase         state.Phase    `json:"phase"`
	Outcome       string         `json:"outcome"`
	Current       int            `json:"current"`
	Outbreaks     int            `json:"outbreaks"`
	Epidemics     int            `json:"epidemics"`
	InfectionRate int            `json:"infection_rate"`
	PlayerDeck    int            `json:"player_deck"`
	InfectionDeck int            `json:"infection_deck"`
	Agents        []AgentView    `json:"agents"`
	Cities        []CityView     `json:"cities"`
	Stations      []City         `json:"stations"`
	Cured         []Disease      `json:"cured"`
	Totals        map[string]int `json:"totals"`
}

type AgentView struct {
	Role     string   `json:"role"`
	Location City     `json:"location"`
	Hand     []string `json:"hand"`
	Reserve  string   `json:"reserve,omitempty"`
}

// CityView lists the cubes of one infected city.
type CityView struct {
	City  City           `json:"city"`
	Cubes map[string]int `json:"cubes"`
}

// Snapshot copies the current state. Cities without cubes are omitted.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Turn:          g.turn,
		Phase:         g.Phase(),
		Outcome:       g.outcome.String(),
		Current:       g.current,
		Outbreaks:     g.outbreaks,
		Epidemics:     g.epidemics,
		InfectionRate: g.InfectionRate(),
		PlayerDeck:    g.players.Len(),
		InfectionDeck: g.infection.Len(),
		Stations:      g.Stations(),
		Totals:        make(map[string]int, NumDiseases),
	}
	for i, a := range g.agents {
		v := AgentView{Role: a.Role.String(), Location: g.locations[i]}
		for _, c := range g.hands[i] {
			v.Hand = append(v.Hand, c.String())
		}
		if a.Role == ContingencyPlanner && g.reserve != nil {
			v.Reserve = g.reserve.String()
		}
		s.Agents = append(s.Agents, v)
	}
	for _, city := range g.board.Cities() {
		cubes := g.cubes[city]
		if len(cubes) == 0 {
			continue
		}
		v := CityView{City: city, Cubes: make(map[string]int, len(cubes))}
		for d, n := range cubes {
			v.Cubes[d.String()] = n
		}
		s.Cities = append(s.Cities, v)
	}
	for _, d := range Diseases() {
		s.Totals[d.String()] = g.totals[d]
		if g.cured[d] {
			s.Cured = append(s.Cured, d)
		}
	}
	return s
}
