package game

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/wfunc/outbreak/state"
)

// PlayTurn runs a full turn for agent: exactly ActionsPerTurn actions, the
// player card draw, the infection step and the hand-over to the next seat.
//
// A terminal result at any point is returned as the outcome with a nil
// error. An invalid action aborts the turn with a *TurnError; the actions
// before it stay applied and the turn may be replayed.
func (g *Game) PlayTurn(agent int, turn []Invocation) (Outcome, error) {
	if g.outcome.Terminal() {
		return g.outcome, ErrGameOver
	}
	if agent != g.current {
		return OutcomeNone, fmt.Errorf("%w: agent %d, current %d", ErrNotCurrentPlayer, agent, g.current)
	}
	if len(turn) != ActionsPerTurn {
		return OutcomeNone, fmt.Errorf("%w: got %d", ErrWrongActionCount, len(turn))
	}

	for i, inv := range turn {
		err := g.doAction(agent, inv.Action, inv.Args)
		if err == nil {
			continue
		}
		if o, ok := AsOutcome(err); ok {
			g.finish(o)
			return o, nil
		}
		return OutcomeNone, &TurnError{Agent: agent, Action: i, Err: err}
	}
	g.advance(state.PhaseActionsDone)

	if err := g.drawPhase(); err != nil {
		return g.conclude(err)
	}
	g.advance(state.PhaseCardsDrawn)

	if err := g.infectionPhase(); err != nil {
		return g.conclude(err)
	}
	g.advance(state.PhaseInfectionDone)
	g.advance(state.PhaseTurnComplete)

	g.bus.Emit(GameEvent{Type: EventTurnEnded, Turn: g.turn, Agent: agent})
	g.current = (g.current + 1) % len(g.agents)
	g.turn++
	g.opsMoveUsed = false
	g.advance(state.PhaseAwaitingActions)
	return OutcomeNone, nil
}

func (g *Game) conclude(err error) (Outcome, error) {
	if o, ok := AsOutcome(err); ok {
		g.finish(o)
		return o, nil
	}
	return OutcomeNone, err
}

func (g *Game) drawPhase() error {
	for range g.cfg.CardsPerTurn {
		if err := g.eventCheckpoint(); err != nil {
			return err
		}
		cards, err := g.players.Draw(1)
		if err != nil {
			return err
		}
		if card := cards[0]; card.IsEpidemic() {
			if err := g.epidemic(); err != nil {
				return err
			}
		} else {
			g.hands[g.current].Add(card)
			g.drawnHandLimit(g.current)
		}
	}
	return g.eventCheckpoint()
}

// drawnHandLimit applies the hand limit after a draw. A rejected selection
// cannot abort the turn at this point, so the oldest cards are discarded.
func (g *Game) drawnHandLimit(agent int) {
	err := g.enforceHandLimit(agent)
	if err == nil {
		return
	}
	g.log.Warn("discard selection rejected", zap.Int("agent", agent), zap.Error(err))
	for len(g.hands[agent]) > MaxHandSize {
		g.discardFromHand(agent, g.hands[agent][0])
	}
}

// epidemic raises the infection rate, infects the top infection card with
// three cubes and shuffles the discard back on top.
func (g *Game) epidemic() error {
	g.epidemics++
	g.rateIndex = min(g.rateIndex+1, len(g.cfg.InfectionRates)-1)

	city, ok := g.infection.DrawTop()
	if ok {
		d := g.board.Color(city)
		g.bus.Emit(GameEvent{Type: EventEpidemic, Turn: g.turn, Agent: g.current, City: city, Disease: d, Count: g.epidemics})
		g.log.Info("epidemic",
			zap.String("city", string(city)),
			zap.Stringer("disease", d),
			zap.Int("rate", g.InfectionRate()),
		)
		if !g.IsEradicated(d) {
			if err := g.infect(city, d, MaxCubesPerCity, false); err != nil {
				return err
			}
		}
	}
	if err := g.eventCheckpoint(); err != nil {
		return err
	}
	g.infection.Intensify()
	return nil
}

func (g *Game) infectionPhase() error {
	if g.skipInfection {
		g.skipInfection = false
		g.log.Debug("infection skipped", zap.Int("turn", g.turn))
	} else {
		for _, city := range g.infection.Draw(g.InfectionRate()) {
			d := g.board.Color(city)
			if g.IsEradicated(d) {
				continue
			}
			if err := g.infect(city, d, 1, false); err != nil {
				return err
			}
		}
	}
	return g.eventCheckpoint()
}
