// Package autoplay keeps spectator rooms moving with a fixed, legal but
// aimless policy. It does not try to win.
package autoplay

import (
	"github.com/wfunc/outbreak/game"
)

// Decider answers every prompt with the first legal option and never plays
// event cards.
type Decider struct{}

func (Decider) ChooseCity(g *game.Game, agent int, card game.EventCard) game.City {
	return g.Board().Start
}

func (Decider) ChooseInfectionDiscardIndex(g *game.Game, agent int, discard []game.City) int {
	return 0
}

func (Decider) ChooseOrderedSubset(g *game.Game, agent int, cards []game.City, lo, hi int) []int {
	n := min(hi, len(cards))
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	return order
}

func (Decider) ChooseDiscards(g *game.Game, agent int, hand []game.PlayerCard, n int) []game.PlayerCard {
	if n > len(hand) {
		n = len(hand)
	}
	return append([]game.PlayerCard(nil), hand[:n]...)
}

func (Decider) MaybeChooseEvent(g *game.Game, agent int, hand []game.PlayerCard) (game.EventPlay, bool) {
	return game.EventPlay{}, false
}

// Driver builds a turn of four drives, each to the first neighbor of the
// pawn's position after the previous drive.
type Driver struct{}

func (Driver) NextTurn(g *game.Game, agent int) []game.Invocation {
	drive, ok := g.Agent(agent).ActionIndex(game.Drive)
	if !ok {
		return nil
	}
	loc := g.Location(agent)
	turn := make([]game.Invocation, 0, game.ActionsPerTurn)
	for range game.ActionsPerTurn {
		if ns := g.Board().Neighbors(loc); len(ns) > 0 {
			loc = ns[0]
		}
		turn = append(turn, game.Invocation{Action: drive, Args: game.Args{City: loc}})
	}
	return turn
}
