package game

import (
	"errors"
	"fmt"
)

// Outcome is the terminal result of a game, or OutcomeNone while it runs.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeWin
	OutcomePlayerDeckExhausted
	OutcomeDiseaseCubeLimit
	OutcomeOutbreakLimit
)

var outcomeNames = map[Outcome]string{
	OutcomeNone:                "none",
	OutcomeWin:                 "win",
	OutcomePlayerDeckExhausted: "player_deck_exhausted",
	OutcomeDiseaseCubeLimit:    "disease_cube_limit",
	OutcomeOutbreakLimit:       "outbreak_limit",
}

func (o Outcome) String() string {
	if s, ok := outcomeNames[o]; ok {
		return s
	}
	return "unknown"
}

// Terminal reports whether the outcome ends the game.
func (o Outcome) Terminal() bool {
	return o != OutcomeNone
}

// Won reports whether the players won.
func (o Outcome) Won() bool {
	return o == OutcomeWin
}

// EndError carries a terminal outcome up through the components that
// detect it. It is not a failure.
type EndError struct {
	Outcome Outcome
}

func (e *EndError) Error() string {
	return "game over: " + e.Outcome.String()
}

func end(o Outcome) error {
	return &EndError{Outcome: o}
}

// AsOutcome extracts the terminal outcome carried by err, if any.
func AsOutcome(err error) (Outcome, bool) {
	var ee *EndError
	if errors.As(err, &ee) {
		return ee.Outcome, true
	}
	return OutcomeNone, false
}

// Action error causes.
var (
	ErrAgentOutOfRange   = errors.New("agent index out of range")
	ErrActionOutOfRange  = errors.New("action index out of range")
	ErrRoleMismatch      = errors.New("role cannot perform this action")
	ErrMissingCard       = errors.New("required card not in hand")
	ErrNoResearchStation = errors.New("no research station")
	ErrStationExists     = errors.New("research station already built")
	ErrNotAdjacent       = errors.New("cities are not connected")
	ErrUnknownCity       = errors.New("unknown city")
	ErrNoCubes           = errors.New("no disease cubes to treat")
	ErrAlreadyCured      = errors.New("disease already cured")
	ErrInvalidTarget     = errors.New("invalid target")
	ErrInvalidSelection  = errors.New("invalid selection")
	ErrOncePerTurn       = errors.New("action already used this turn")
	ErrReserveOccupied   = errors.New("contingency reserve already holds a card")
)

// Turn and lifecycle errors.
var (
	ErrNotCurrentPlayer    = errors.New("not the current player")
	ErrWrongActionCount    = errors.New("a turn needs exactly 4 actions")
	ErrGameOver            = errors.New("game is over")
	ErrInvalidPlayerCount  = errors.New("only 2-4 players supported")
	ErrShortInfectionRates = errors.New("infection rates must have at least epidemics+1 entries")
	ErrInvalidConfig       = errors.New("invalid game config")
)

// ActionError is a recoverable rejection of one action or event.
type ActionError struct {
	Action string
	Reason string
	Err    error
}

func (e *ActionError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("invalid action %s: %v", e.Action, e.Err)
	}
	return fmt.Sprintf("invalid action %s: %v: %s", e.Action, e.Err, e.Reason)
}

func (e *ActionError) Unwrap() error {
	return e.Err
}

func actionErr(action string, cause error, format string, args ...any) error {
	return &ActionError{Action: action, Reason: fmt.Sprintf(format, args...), Err: cause}
}

// TurnError reports that a turn was aborted by an invalid action.
type TurnError struct {
	Agent  int
	Action int
	Err    error
}

func (e *TurnError) Error() string {
	return fmt.Sprintf("turn of agent %d aborted at action %d: %v", e.Agent, e.Action, e.Err)
}

func (e *TurnError) Unwrap() error {
	return e.Err
}
