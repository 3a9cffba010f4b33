package game

import "fmt"

// City identifies one city of the configured board.
type City string

// EventCard is one of the special event cards.
type EventCard int

const (
	GovernmentGrant EventCard = iota
	ResilientPopulation
	Airlift
	Forecast
	OneQuietNight
)

var eventNames = map[EventCard]string{
	GovernmentGrant:     "GovernmentGrant",
	ResilientPopulation: "ResilientPopulation",
	Airlift:             "Airlift",
	Forecast:            "Forecast",
	OneQuietNight:       "OneQuietNight",
}

func (e EventCard) String() string {
	if s, ok := eventNames[e]; ok {
		return s
	}
	return "Unknown"
}

// EventCards returns every event card in declaration order.
func EventCards() []EventCard {
	return []EventCard{GovernmentGrant, ResilientPopulation, Airlift, Forecast, OneQuietNight}
}

// CardKind tags the variant held by a PlayerCard.
type CardKind int

const (
	CityCard CardKind = iota
	EventCardKind
	EpidemicCard
)

// PlayerCard is a card of the player deck: a city, an event or an epidemic.
// It is comparable and can be used as a map key.
type PlayerCard struct {
	Kind  CardKind  `json:"kind"`
	City  City      `json:"city,omitempty"`
	Event EventCard `json:"event,omitempty"`
}

func CityPlayerCard(c City) PlayerCard {
	return PlayerCard{Kind: CityCard, City: c}
}

func EventPlayerCard(e EventCard) PlayerCard {
	return PlayerCard{Kind: EventCardKind, Event: e}
}

func EpidemicPlayerCard() PlayerCard {
	return PlayerCard{Kind: EpidemicCard}
}

func (c PlayerCard) IsCity() bool { return c.Kind == CityCard }
func (c PlayerCard) IsEvent() bool { return c.Kind == EventCardKind }
func (c PlayerCard) IsEpidemic() bool { return c.Kind == EpidemicCard }

func (c PlayerCard) String() string {
	switch c.Kind {
	case CityCard:
		return string(c.City)
	case EventCardKind:
		return c.Event.String()
	case EpidemicCard:
		return "Epidemic"
	}
	return fmt.Sprintf("card(%d)", c.Kind)
}

// Hand is an ordered set of player cards.
type Hand []PlayerCard

// Contains reports whether the hand holds c.
func (h Hand) Contains(c PlayerCard) bool {
	return h.index(c) >= 0
}

func (h Hand) index(c PlayerCard) int {
	for i, card := range h {
		if card == c {
			return i
		}
	}
	return -1
}

// Add appends c unless it is already held.
func (h *Hand) Add(c PlayerCard) {
	if !h.Contains(c) {
		*h = append(*h, c)
	}
}

// Remove deletes c and reports whether it was held.
func (h *Hand) Remove(c PlayerCard) bool {
	i := h.index(c)
	if i < 0 {
		return false
	}
	*h = append((*h)[:i], (*h)[i+1:]...)
	return true
}

// Cards returns a copy of the hand.
func (h Hand) Cards() []PlayerCard {
	out := make([]PlayerCard, len(h))
	copy(out, h)
	return out
}
