package game

import (
	"go.uber.org/zap"
)

// Args are the parameters of an action. Each action reads only the fields
// it needs.
type Args struct {
	City    City     // destination, shared card or station city
	Card    City     // card discarded by an operations move
	Disease Disease  // disease treated or cured
	Cards   []City   // cards spent on a cure
	Other   int      // pawn moved by a Dispatcher
	From    int      // share knowledge giver
	To      int      // share knowledge receiver
	Index   int      // player discard index for a contingency plan
	Move    ActionID // movement used by a dispatch move
}

// Invocation selects an action by its index in the agent's action list.
type Invocation struct {
	Action int
	Args   Args
}

// Do runs action number action of agent. Index errors and rule violations
// are returned as *ActionError; a terminal result as *EndError.
func (g *Game) Do(agent, action int, args Args) error {
	if g.outcome.Terminal() {
		return ErrGameOver
	}
	return g.settle(g.doAction(agent, action, args))
}

func (g *Game) doAction(agent, action int, args Args) error {
	if agent < 0 || agent >= len(g.agents) {
		return actionErr("do", ErrAgentOutOfRange, "agent %d of %d", agent, len(g.agents))
	}
	actions := g.agents[agent].Actions
	if action < 0 || action >= len(actions) {
		return actionErr("do", ErrActionOutOfRange, "action %d of %d", action, len(actions))
	}
	id := actions[action]
	err := g.dispatch(agent, id, args)
	if err == nil {
		g.bus.Emit(GameEvent{Type: EventActionDone, Turn: g.turn, Agent: agent, Action: id})
		g.log.Debug("action",
			zap.Int("agent", agent),
			zap.Stringer("role", g.agents[agent].Role),
			zap.Stringer("action", id),
		)
	}
	return err
}

func (g *Game) dispatch(agent int, id ActionID, args Args) error {
	switch id {
	case Drive:
		return g.drive(agent, args.City)
	case DirectFlight:
		return g.directFlight(agent, agent, args.City)
	case CharterFlight:
		return g.charterFlight(agent, agent, args.City)
	case ShuttleFlight:
		return g.shuttleFlight(agent, args.City)
	case TreatDisease:
		return g.treatDisease(agent, args.Disease)
	case BuildResearchStation:
		return g.buildResearchStation(agent)
	case ShareKnowledge:
		return g.shareKnowledge(agent, args.From, args.To, args.City)
	case DiscoverCure:
		return g.discoverCure(agent, args.Disease, args.Cards)
	case DispatchFlight:
		return g.dispatchFlight(agent, args.Other, args.City)
	case DispatchMove:
		return g.dispatchMove(agent, args.Other, args.Move, args.City)
	case OperationsMove:
		return g.operationsMove(agent, args.City, args.Card)
	case ContingencyPlan:
		return g.contingencyPlan(agent, args.Index)
	}
	return actionErr(id.String(), ErrActionOutOfRange, "unknown action id %d", id)
}

func (g *Game) requireRole(agent int, r Role, id ActionID) error {
	if g.agents[agent].Role != r {
		return actionErr(id.String(), ErrRoleMismatch, "%s is not %s", g.agents[agent].Role, r)
	}
	return nil
}

func (g *Game) requireCity(id ActionID, city City) error {
	if !g.board.Has(city) {
		return actionErr(id.String(), ErrUnknownCity, "%q", city)
	}
	return nil
}

// --- movement ---

// moveTo places mover's pawn on city; a Medic then clears cured diseases there.
func (g *Game) moveTo(mover int, city City) {
	g.locations[mover] = city
	g.medicSweep(mover)
}

func (g *Game) medicSweep(agent int) {
	if g.agents[agent].Role != Medic {
		return
	}
	city := g.locations[agent]
	for _, d := range Diseases() {
		if g.IsCured(d) && g.cubes[city][d] > 0 {
			g.removeCubes(city, d, true)
		}
	}
}

func (g *Game) drive(mover int, city City) error {
	if err := g.requireCity(Drive, city); err != nil {
		return err
	}
	if !g.board.Adjacent(g.locations[mover], city) {
		return actionErr(Drive.String(), ErrNotAdjacent, "%s to %s", g.locations[mover], city)
	}
	g.moveTo(mover, city)
	return nil
}

// directFlight moves mover to city, discarding payer's card for city.
func (g *Game) directFlight(mover, payer int, city City) error {
	if err := g.requireCity(DirectFlight, city); err != nil {
		return err
	}
	card := CityPlayerCard(city)
	if !g.hands[payer].Contains(card) {
		return actionErr(DirectFlight.String(), ErrMissingCard, "%s", city)
	}
	g.discardFromHand(payer, card)
	g.moveTo(mover, city)
	return nil
}

// charterFlight moves mover anywhere, discarding payer's card for the
// mover's current city.
func (g *Game) charterFlight(mover, payer int, city City) error {
	if err := g.requireCity(CharterFlight, city); err != nil {
		return err
	}
	card := CityPlayerCard(g.locations[mover])
	if !g.hands[payer].Contains(card) {
		return actionErr(CharterFlight.String(), ErrMissingCard, "%s", card.City)
	}
	g.discardFromHand(payer, card)
	g.moveTo(mover, city)
	return nil
}

func (g *Game) shuttleFlight(mover int, city City) error {
	if err := g.requireCity(ShuttleFlight, city); err != nil {
		return err
	}
	if !g.stations[g.locations[mover]] {
		return actionErr(ShuttleFlight.String(), ErrNoResearchStation, "from %s", g.locations[mover])
	}
	if !g.stations[city] {
		return actionErr(ShuttleFlight.String(), ErrNoResearchStation, "to %s", city)
	}
	g.moveTo(mover, city)
	return nil
}

// --- board actions ---

func (g *Game) treatDisease(agent int, d Disease) error {
	if !d.Valid() {
		return actionErr(TreatDisease.String(), ErrInvalidSelection, "disease %d", d)
	}
	city := g.locations[agent]
	if g.cubes[city][d] == 0 {
		return actionErr(TreatDisease.String(), ErrNoCubes, "%s in %s", d, city)
	}
	g.removeCubes(city, d, g.agents[agent].Role == Medic || g.cured[d])
	return nil
}

func (g *Game) buildResearchStation(agent int) error {
	city := g.locations[agent]
	if g.stations[city] {
		return actionErr(BuildResearchStation.String(), ErrStationExists, "%s", city)
	}
	if g.agents[agent].Role != OperationsExpert {
		card := CityPlayerCard(city)
		if !g.hands[agent].Contains(card) {
			return actionErr(BuildResearchStation.String(), ErrMissingCard, "%s", city)
		}
		g.discardFromHand(agent, card)
	}
	g.stations[city] = true
	return nil
}

func (g *Game) shareKnowledge(agent, from, to int, city City) error {
	name := ShareKnowledge.String()
	if !g.validAgent(from) || !g.validAgent(to) || from == to {
		return actionErr(name, ErrInvalidTarget, "giver %d receiver %d", from, to)
	}
	if agent != from && agent != to {
		return actionErr(name, ErrInvalidTarget, "agent %d is neither giver nor receiver", agent)
	}
	if g.locations[from] != g.locations[to] {
		return actionErr(name, ErrInvalidTarget, "agents are in %s and %s", g.locations[from], g.locations[to])
	}
	card := CityPlayerCard(city)
	if !g.hands[from].Contains(card) {
		return actionErr(name, ErrMissingCard, "giver lacks %s", city)
	}
	if city != g.locations[from] && g.agents[from].Role != Researcher {
		return actionErr(name, ErrRoleMismatch, "only a Researcher may give a card other than %s", g.locations[from])
	}
	g.hands[from].Remove(card)
	g.hands[to].Add(card)
	if err := g.enforceHandLimit(to); err != nil {
		g.hands[to].Remove(card)
		g.hands[from].Add(card)
		return err
	}
	return nil
}

func (g *Game) discoverCure(agent int, d Disease, cards []City) error {
	name := DiscoverCure.String()
	if !d.Valid() {
		return actionErr(name, ErrInvalidSelection, "disease %d", d)
	}
	need := 5
	if g.agents[agent].Role == Scientist {
		need = 4
	}
	if len(cards) != need {
		return actionErr(name, ErrInvalidSelection, "need %d cards, got %d", need, len(cards))
	}
	if g.cured[d] {
		return actionErr(name, ErrAlreadyCured, "%s", d)
	}
	if !g.stations[g.locations[agent]] {
		return actionErr(name, ErrNoResearchStation, "%s", g.locations[agent])
	}
	seen := make(map[City]bool, len(cards))
	for _, c := range cards {
		if seen[c] {
			return actionErr(name, ErrInvalidSelection, "%s listed twice", c)
		}
		seen[c] = true
		if !g.hands[agent].Contains(CityPlayerCard(c)) {
			return actionErr(name, ErrMissingCard, "%s", c)
		}
		if g.board.Color(c) != d {
			return actionErr(name, ErrInvalidSelection, "%s is not %s", c, d)
		}
	}
	for _, c := range cards {
		g.discardFromHand(agent, CityPlayerCard(c))
	}
	g.cured[d] = true
	g.bus.Emit(GameEvent{Type: EventCured, Turn: g.turn, Agent: agent, Disease: d})
	g.log.Info("cure discovered", zap.Stringer("disease", d), zap.Int("agent", agent))

	for _, other := range Diseases() {
		if !g.cured[other] {
			return nil
		}
	}
	return end(OutcomeWin)
}

// --- role actions ---

// dispatchFlight moves any pawn to a city holding another pawn.
func (g *Game) dispatchFlight(agent, other int, city City) error {
	if err := g.requireRole(agent, Dispatcher, DispatchFlight); err != nil {
		return err
	}
	if !g.validAgent(other) {
		return actionErr(DispatchFlight.String(), ErrInvalidTarget, "agent %d", other)
	}
	occupied := false
	for i, at := range g.locations {
		if i != other && at == city {
			occupied = true
			break
		}
	}
	if !occupied {
		return actionErr(DispatchFlight.String(), ErrInvalidTarget, "no other pawn in %s", city)
	}
	g.moveTo(other, city)
	return nil
}

// dispatchMove moves another pawn as if it were the Dispatcher's own,
// paying flights with the Dispatcher's cards.
func (g *Game) dispatchMove(agent, other int, move ActionID, city City) error {
	if err := g.requireRole(agent, Dispatcher, DispatchMove); err != nil {
		return err
	}
	if !g.validAgent(other) || other == agent {
		return actionErr(DispatchMove.String(), ErrInvalidTarget, "agent %d", other)
	}
	switch move {
	case Drive:
		return g.drive(other, city)
	case DirectFlight:
		return g.directFlight(other, agent, city)
	case CharterFlight:
		return g.charterFlight(other, agent, city)
	case ShuttleFlight:
		return g.shuttleFlight(other, city)
	}
	return actionErr(DispatchMove.String(), ErrInvalidSelection, "%s is not a movement", move)
}

// operationsMove flies from a research station anywhere by discarding any
// city card, once per turn.
func (g *Game) operationsMove(agent int, city, card City) error {
	name := OperationsMove.String()
	if err := g.requireRole(agent, OperationsExpert, OperationsMove); err != nil {
		return err
	}
	if g.opsMoveUsed {
		return actionErr(name, ErrOncePerTurn, "")
	}
	if err := g.requireCity(OperationsMove, city); err != nil {
		return err
	}
	if !g.stations[g.locations[agent]] {
		return actionErr(name, ErrNoResearchStation, "%s", g.locations[agent])
	}
	pc := CityPlayerCard(card)
	if !g.hands[agent].Contains(pc) {
		return actionErr(name, ErrMissingCard, "%s", card)
	}
	g.discardFromHand(agent, pc)
	g.opsMoveUsed = true
	g.moveTo(agent, city)
	return nil
}

// contingencyPlan takes an event card from the player discard into reserve.
func (g *Game) contingencyPlan(agent, index int) error {
	name := ContingencyPlan.String()
	if err := g.requireRole(agent, ContingencyPlanner, ContingencyPlan); err != nil {
		return err
	}
	if g.reserve != nil {
		return actionErr(name, ErrReserveOccupied, "%s", *g.reserve)
	}
	discard := g.players.discard
	if index < 0 || index >= len(discard) {
		return actionErr(name, ErrInvalidSelection, "discard index %d of %d", index, len(discard))
	}
	if !discard[index].IsEvent() {
		return actionErr(name, ErrInvalidSelection, "%s is not an event", discard[index])
	}
	card, _ := g.players.TakeDiscard(index)
	ev := card.Event
	g.reserve = &ev
	return nil
}

// --- hands ---

func (g *Game) validAgent(i int) bool {
	return i >= 0 && i < len(g.agents)
}

func (g *Game) discardFromHand(agent int, card PlayerCard) {
	if g.hands[agent].Remove(card) {
		g.players.Discard(card)
	}
}

// enforceHandLimit asks the decider to bring agent's hand down to MaxHandSize.
func (g *Game) enforceHandLimit(agent int) error {
	excess := len(g.hands[agent]) - MaxHandSize
	if excess <= 0 {
		return nil
	}
	picks := g.decider.ChooseDiscards(g, agent, g.hands[agent].Cards(), excess)
	if len(picks) != excess {
		return actionErr("discard", ErrInvalidSelection, "need %d discards, got %d", excess, len(picks))
	}
	seen := make(map[PlayerCard]bool, len(picks))
	for _, c := range picks {
		if seen[c] || !g.hands[agent].Contains(c) {
			return actionErr("discard", ErrInvalidSelection, "%s cannot be discarded", c)
		}
		seen[c] = true
	}
	for _, c := range picks {
		g.discardFromHand(agent, c)
	}
	return nil
}
