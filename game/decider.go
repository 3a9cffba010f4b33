package game

// Decider supplies the choices the engine cannot make on its own. Every
// call is synchronous and every answer is validated against the current
// state before it is applied.
type Decider interface {
	// ChooseCity picks the target city of an Airlift or Government Grant.
	ChooseCity(g *Game, agent int, card EventCard) City
	// ChooseInfectionDiscardIndex picks the infection discard entry that
	// Resilient Population removes.
	ChooseInfectionDiscardIndex(g *Game, agent int, discard []City) int
	// ChooseOrderedSubset returns between min and max distinct indexes into
	// cards. Forecast asks for a full permutation of the top cards.
	ChooseOrderedSubset(g *Game, agent int, cards []City, min, max int) []int
	// ChooseDiscards picks exactly n cards of hand to discard.
	ChooseDiscards(g *Game, agent int, hand []PlayerCard, n int) []PlayerCard
	// MaybeChooseEvent optionally plays an event card at a checkpoint.
	MaybeChooseEvent(g *Game, agent int, hand []PlayerCard) (EventPlay, bool)
}

// EventPlay is an event card invocation. Other names the pawn an Airlift moves.
type EventPlay struct {
	Card  EventCard
	Other int
}
