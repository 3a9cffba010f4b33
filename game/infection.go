package game

import (
	"fmt"

	"go.uber.org/zap"
)

// MaxCubesPerCity is the cube count at which a further cube causes an outbreak.
const MaxCubesPerCity = 3

// PlaceCube adds one cube of d to city, resolving any outbreak cascade.
// The returned error is an *EndError when a limit is reached.
func (g *Game) PlaceCube(city City, d Disease) error {
	if g.outcome.Terminal() {
		return ErrGameOver
	}
	if !g.board.Has(city) {
		return fmt.Errorf("%w: %s", ErrUnknownCity, city)
	}
	return g.settle(g.infect(city, d, 1, false))
}

type placement struct {
	city  City
	count int
}

// infect places count cubes of d in city. Cubes that do not fit cause one
// outbreak, which queues one cube for every neighbor. Each city outbreaks at
// most once per call.
func (g *Game) infect(city City, d Disease, count int, setup bool) error {
	visited := make(map[City]bool)
	queue := []placement{{city: city, count: count}}
	chain := 0

	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		if visited[p.city] {
			continue
		}
		if !setup && g.protected(p.city, d) {
			continue
		}

		have := g.cubes[p.city][d]
		add := min(p.count, MaxCubesPerCity-have)
		for range add {
			if g.totals[d] >= g.cfg.MaxCubes {
				g.log.Info("disease cube supply exhausted", zap.Stringer("disease", d))
				return end(OutcomeDiseaseCubeLimit)
			}
			have++
			g.setCubes(p.city, d, have)
			g.totals[d]++
		}
		if add > 0 {
			g.bus.Emit(GameEvent{Type: EventCubePlaced, Turn: g.turn, City: p.city, Disease: d, Count: add})
		}
		if p.count <= add {
			continue
		}

		if setup {
			panic(fmt.Sprintf("outbreak in %s during setup", p.city))
		}
		visited[p.city] = true
		g.outbreaks++
		chain++
		g.bus.Emit(GameEvent{Type: EventOutbreak, Turn: g.turn, City: p.city, Disease: d, Count: g.outbreaks})
		g.log.Debug("outbreak",
			zap.String("city", string(p.city)),
			zap.Stringer("disease", d),
			zap.Int("outbreaks", g.outbreaks),
			zap.Int("chain", chain),
		)
		if g.outbreaks >= g.cfg.MaxOutbreaks {
			return end(OutcomeOutbreakLimit)
		}
		for _, n := range g.board.Neighbors(p.city) {
			if !visited[n] {
				queue = append(queue, placement{city: n, count: 1})
			}
		}
	}
	return nil
}

// protected reports whether a role keeps cubes of d out of city: the Medic
// for cured diseases in its own city, the Quarantine Specialist for every
// disease in its city and the adjacent ones.
func (g *Game) protected(city City, d Disease) bool {
	if i, ok := g.agentWithRole(Medic); ok && g.locations[i] == city && g.IsCured(d) {
		return true
	}
	if i, ok := g.agentWithRole(QuarantineSpecialist); ok {
		at := g.locations[i]
		if at == city || g.board.Adjacent(at, city) {
			return true
		}
	}
	return false
}

func (g *Game) setCubes(city City, d Disease, n int) {
	if n == 0 {
		delete(g.cubes[city], d)
		if len(g.cubes[city]) == 0 {
			delete(g.cubes, city)
		}
		return
	}
	if g.cubes[city] == nil {
		g.cubes[city] = make(map[Disease]int)
	}
	g.cubes[city][d] = n
}

// removeCubes takes one cube of d from city, or all of them, and returns how
// many were removed.
func (g *Game) removeCubes(city City, d Disease, all bool) int {
	have := g.cubes[city][d]
	if have == 0 {
		return 0
	}
	n := 1
	if all {
		n = have
	}
	g.setCubes(city, d, have-n)
	g.totals[d] -= n
	g.bus.Emit(GameEvent{Type: EventCubesRemoved, Turn: g.turn, City: city, Disease: d, Count: n})
	return n
}

// seedBoard infects nine cities with 3, 3, 3, 2, 2, 2, 1, 1, 1 cubes.
func (g *Game) seedBoard() {
	for i, city := range g.infection.Draw(9) {
		count := MaxCubesPerCity - i/3
		if err := g.infect(city, g.board.Color(city), count, true); err != nil {
			panic(fmt.Sprintf("setup infection of %s: %v", city, err))
		}
	}
}
