package game

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"sort"

	"gopkg.in/yaml.v3"
)

// ErrInvalidBoard is returned when a board table is inconsistent.
var ErrInvalidBoard = errors.New("invalid board")

// Board is the static city graph and city color table of one game.
// It is never mutated once a game is built.
type Board struct {
	Adjacency map[City][]City  `yaml:"adjacency"`
	Colors    map[City]Disease `yaml:"colors"`
	Start     City             `yaml:"start"`
}

// LoadBoard reads a board from a YAML file of the form
//
//	start: atlanta
//	colors: {atlanta: blue, ...}
//	adjacency: {atlanta: [chicago, ...], ...}
func LoadBoard(path string) (*Board, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read board file: %w", err)
	}
	var b Board
	if err := yaml.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("parse board file: %w", err)
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return &b, nil
}

// Validate checks that every city has a color, adjacency is symmetric and
// only names known cities, and the start city exists.
func (b *Board) Validate() error {
	if b == nil || len(b.Adjacency) == 0 {
		return fmt.Errorf("%w: no cities", ErrInvalidBoard)
	}
	var problems []string
	for _, city := range b.Cities() {
		d, ok := b.Colors[city]
		if !ok {
			problems = append(problems, fmt.Sprintf("%s has no color", city))
		} else if !d.Valid() {
			problems = append(problems, fmt.Sprintf("%s has invalid color %d", city, d))
		}
		for _, n := range b.Adjacency[city] {
			if n == city {
				problems = append(problems, fmt.Sprintf("%s is adjacent to itself", city))
				continue
			}
			if _, ok := b.Adjacency[n]; !ok {
				problems = append(problems, fmt.Sprintf("%s links to unknown city %s", city, n))
				continue
			}
			if !slices.Contains(b.Adjacency[n], city) {
				problems = append(problems, fmt.Sprintf("%s -> %s is not symmetric", city, n))
			}
		}
	}
	for city := range b.Colors {
		if _, ok := b.Adjacency[city]; !ok {
			problems = append(problems, fmt.Sprintf("colored city %s is not on the board", city))
		}
	}
	if _, ok := b.Adjacency[b.Start]; !ok {
		problems = append(problems, fmt.Sprintf("start city %q is not on the board", b.Start))
	}
	if len(problems) > 0 {
		sort.Strings(problems)
		return fmt.Errorf("%w: %v", ErrInvalidBoard, problems)
	}
	return nil
}

// Cities returns every city sorted by name.
func (b *Board) Cities() []City {
	out := make([]City, 0, len(b.Adjacency))
	for c := range b.Adjacency {
		out = append(out, c)
	}
	slices.Sort(out)
	return out
}

// Has reports whether c is a city of this board.
func (b *Board) Has(c City) bool {
	_, ok := b.Adjacency[c]
	return ok
}

// Neighbors returns the cities adjacent to c.
func (b *Board) Neighbors(c City) []City {
	return b.Adjacency[c]
}

// Adjacent reports whether a and b share a connection.
func (b *Board) Adjacent(from, to City) bool {
	return slices.Contains(b.Adjacency[from], to)
}

// Color returns the disease color of c.
func (b *Board) Color(c City) Disease {
	return b.Colors[c]
}
