package game

import (
	"go.uber.org/zap"
)

// PlayEvent plays an event card from agent's hand, or from the reserve when
// agent is the Contingency Planner. Invalid choices leave the card in place.
func (g *Game) PlayEvent(agent int, play EventPlay) error {
	if g.outcome.Terminal() {
		return ErrGameOver
	}
	if !g.validAgent(agent) {
		return actionErr("event", ErrAgentOutOfRange, "agent %d of %d", agent, len(g.agents))
	}
	return g.settle(g.playEvent(agent, play))
}

func (g *Game) playEvent(agent int, play EventPlay) error {
	name := play.Card.String()
	card := EventPlayerCard(play.Card)
	fromHand := g.hands[agent].Contains(card)
	if !fromHand && !g.holdsReserve(agent, play.Card) {
		return actionErr(name, ErrMissingCard, "agent %d does not hold %s", agent, play.Card)
	}

	var apply func()
	switch play.Card {
	case Airlift:
		if !g.validAgent(play.Other) {
			return actionErr(name, ErrInvalidTarget, "agent %d", play.Other)
		}
		city := g.decider.ChooseCity(g, agent, Airlift)
		if !g.board.Has(city) {
			return actionErr(name, ErrUnknownCity, "%q", city)
		}
		apply = func() { g.moveTo(play.Other, city) }

	case GovernmentGrant:
		city := g.decider.ChooseCity(g, agent, GovernmentGrant)
		if !g.board.Has(city) {
			return actionErr(name, ErrUnknownCity, "%q", city)
		}
		if g.stations[city] {
			return actionErr(name, ErrStationExists, "%s", city)
		}
		apply = func() { g.stations[city] = true }

	case ResilientPopulation:
		discard := g.infection.Discards()
		i := g.decider.ChooseInfectionDiscardIndex(g, agent, discard)
		if i < 0 || i >= len(discard) {
			return actionErr(name, ErrInvalidSelection, "discard index %d of %d", i, len(discard))
		}
		apply = func() {
			if _, err := g.infection.RemoveDiscard(i); err != nil {
				g.log.DPanic("resilient population", zap.Error(err))
			}
		}

	case Forecast:
		top := g.infection.Peek(ForecastSize)
		order := g.decider.ChooseOrderedSubset(g, agent, top, len(top), len(top))
		if !isPermutation(order, len(top)) {
			return actionErr(name, ErrInvalidSelection, "%v does not reorder %d cards", order, len(top))
		}
		apply = func() {
			if err := g.infection.Forecast(order); err != nil {
				g.log.DPanic("forecast", zap.Error(err))
			}
		}

	case OneQuietNight:
		apply = func() { g.skipInfection = true }

	default:
		return actionErr("event", ErrInvalidSelection, "unknown event %d", play.Card)
	}

	if fromHand {
		g.discardFromHand(agent, card)
	} else {
		g.reserve = nil
	}
	apply()
	g.bus.Emit(GameEvent{Type: EventCardPlayed, Turn: g.turn, Agent: agent, Card: play.Card})
	g.log.Debug("event played", zap.Int("agent", agent), zap.Stringer("card", play.Card))
	return nil
}

func (g *Game) holdsReserve(agent int, e EventCard) bool {
	return g.agents[agent].Role == ContingencyPlanner && g.reserve != nil && *g.reserve == e
}

// eventOptions lists the event cards agent may play right now.
func (g *Game) eventOptions(agent int) []PlayerCard {
	var out []PlayerCard
	for _, c := range g.hands[agent] {
		if c.IsEvent() {
			out = append(out, c)
		}
	}
	if g.agents[agent].Role == ContingencyPlanner && g.reserve != nil {
		out = append(out, EventPlayerCard(*g.reserve))
	}
	return out
}

// eventCheckpoint offers every agent, in seat order, one event play.
// Rejected plays are logged and skipped.
func (g *Game) eventCheckpoint() error {
	if !g.cfg.Events {
		return nil
	}
	for i := range g.agents {
		options := g.eventOptions(i)
		if len(options) == 0 {
			continue
		}
		play, ok := g.decider.MaybeChooseEvent(g, i, options)
		if !ok {
			continue
		}
		err := g.playEvent(i, play)
		if _, terminal := AsOutcome(err); terminal {
			return err
		}
		if err != nil {
			g.log.Warn("event play rejected", zap.Int("agent", i), zap.Error(err))
		}
	}
	return nil
}
