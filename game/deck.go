package game

import (
	"fmt"
	"math/rand/v2"
	"slices"
)

// ForecastSize is the number of infection cards a Forecast may rearrange.
const ForecastSize = 6

// InfectionDeck holds the infection draw pile and its discard. The top of
// the pile is the end of the slice.
type InfectionDeck struct {
	cards   []City
	discard []City
	rng     *rand.Rand
}

func newInfectionDeck(cities []City, rng *rand.Rand, shuffle bool) *InfectionDeck {
	d := &InfectionDeck{cards: slices.Clone(cities), rng: rng}
	if shuffle {
		shuffleSlice(rng, d.cards)
	}
	return d
}

// Len returns the number of cards left to draw.
func (d *InfectionDeck) Len() int {
	return len(d.cards)
}

// Discards returns a copy of the discard pile, oldest first.
func (d *InfectionDeck) Discards() []City {
	return slices.Clone(d.discard)
}

// Draw takes up to n cards from the top and moves them to the discard pile.
// A short deck yields fewer cards.
func (d *InfectionDeck) Draw(n int) []City {
	drawn := make([]City, 0, n)
	for range n {
		c, ok := d.DrawTop()
		if !ok {
			break
		}
		drawn = append(drawn, c)
	}
	return drawn
}

// DrawTop draws and discards a single card.
func (d *InfectionDeck) DrawTop() (City, bool) {
	if len(d.cards) == 0 {
		return "", false
	}
	last := len(d.cards) - 1
	c := d.cards[last]
	d.cards = d.cards[:last]
	d.discard = append(d.discard, c)
	return c, true
}

// Intensify shuffles the discard pile and places it on top of the deck.
func (d *InfectionDeck) Intensify() {
	shuffleSlice(d.rng, d.discard)
	d.cards = append(d.cards, d.discard...)
	d.discard = nil
}

// Peek returns up to n cards in draw order without removing them.
func (d *InfectionDeck) Peek(n int) []City {
	n = min(n, len(d.cards))
	out := make([]City, n)
	for i := range n {
		out[i] = d.cards[len(d.cards)-1-i]
	}
	return out
}

// Forecast reorders the top cards. order is a permutation over Peek(ForecastSize):
// order[0] names the card that will be drawn first.
func (d *InfectionDeck) Forecast(order []int) error {
	top := d.Peek(ForecastSize)
	if !isPermutation(order, len(top)) {
		return fmt.Errorf("%w: %v is not a permutation of %d cards", ErrInvalidSelection, order, len(top))
	}
	for j, i := range order {
		d.cards[len(d.cards)-1-j] = top[i]
	}
	return nil
}

// RemoveDiscard takes card i out of the discard pile for good.
func (d *InfectionDeck) RemoveDiscard(i int) (City, error) {
	if i < 0 || i >= len(d.discard) {
		return "", fmt.Errorf("%w: discard index %d of %d", ErrInvalidSelection, i, len(d.discard))
	}
	c := d.discard[i]
	d.discard = slices.Delete(d.discard, i, i+1)
	return c, nil
}

// PlayerDeck holds the player draw pile and discard. The top of the pile is
// the end of the slice.
type PlayerDeck struct {
	cards   []PlayerCard
	discard []PlayerCard
}

// Len returns the number of cards left to draw.
func (d *PlayerDeck) Len() int {
	return len(d.cards)
}

// Cards returns the draw pile, bottom first.
func (d *PlayerDeck) Cards() []PlayerCard {
	return slices.Clone(d.cards)
}

// Discards returns a copy of the discard pile.
func (d *PlayerDeck) Discards() []PlayerCard {
	return slices.Clone(d.discard)
}

// Draw takes n cards from the top. Running out ends the game.
func (d *PlayerDeck) Draw(n int) ([]PlayerCard, error) {
	if n > len(d.cards) {
		return nil, end(OutcomePlayerDeckExhausted)
	}
	drawn := make([]PlayerCard, 0, n)
	for range n {
		last := len(d.cards) - 1
		drawn = append(drawn, d.cards[last])
		d.cards = d.cards[:last]
	}
	return drawn, nil
}

// Discard puts cards on the discard pile.
func (d *PlayerDeck) Discard(cards ...PlayerCard) {
	d.discard = append(d.discard, cards...)
}

// TakeDiscard removes and returns discard entry i.
func (d *PlayerDeck) TakeDiscard(i int) (PlayerCard, error) {
	if i < 0 || i >= len(d.discard) {
		return PlayerCard{}, fmt.Errorf("%w: discard index %d of %d", ErrInvalidSelection, i, len(d.discard))
	}
	c := d.discard[i]
	d.discard = slices.Delete(d.discard, i, i+1)
	return c, nil
}

func buildPlayerDeck(cities []City, events bool, rng *rand.Rand, shuffle bool) []PlayerCard {
	deck := make([]PlayerCard, 0, len(cities)+len(EventCards()))
	for _, c := range cities {
		deck = append(deck, CityPlayerCard(c))
	}
	if events {
		for _, e := range EventCards() {
			deck = append(deck, EventPlayerCard(e))
		}
	}
	if shuffle {
		shuffleSlice(rng, deck)
	}
	return deck
}

// EpidemicPositions computes where n epidemic cards go in a deck of length
// size. The deck is split into n segments of size/n cards, the remainder
// joining the last one; offset picks a position inside a segment of the
// given length. The returned indices already account for earlier inserts.
func EpidemicPositions(size, n int, offset func(segLen int) int) []int {
	if n <= 0 {
		return nil
	}
	seg, rem := size/n, size%n
	positions := make([]int, n)
	for i := range n {
		segLen := seg
		if i == n-1 {
			segLen += rem
		}
		off := 0
		if segLen > 0 {
			off = offset(segLen)
		}
		positions[i] = seg*i + off + i
	}
	return positions
}

// SeedEpidemics returns a copy of deck with n epidemic cards inserted at
// EpidemicPositions.
func SeedEpidemics(deck []PlayerCard, n int, offset func(segLen int) int) []PlayerCard {
	out := make([]PlayerCard, 0, len(deck)+n)
	out = append(out, deck...)
	for _, pos := range EpidemicPositions(len(deck), n, offset) {
		out = slices.Insert(out, pos, EpidemicPlayerCard())
	}
	return out
}

func shuffleSlice[T any](rng *rand.Rand, s []T) {
	rng.Shuffle(len(s), func(i, j int) {
		s[i], s[j] = s[j], s[i]
	})
}

func isPermutation(order []int, n int) bool {
	if len(order) != n {
		return false
	}
	seen := make([]bool, n)
	for _, i := range order {
		if i < 0 || i >= n || seen[i] {
			return false
		}
		seen[i] = true
	}
	return true
}
