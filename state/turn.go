package state

import "errors"

// Phase names one step of a player turn or a terminal game state.
type Phase string

const (
	PhaseAwaitingActions Phase = "awaiting_actions"
	PhaseActionsDone     Phase = "actions_done"
	PhaseCardsDrawn      Phase = "cards_drawn"
	PhaseInfectionDone   Phase = "infection_done"
	PhaseTurnComplete    Phase = "turn_complete"

	PhasePlayerDeckExhausted    Phase = "player_deck_exhausted"
	PhaseDiseaseCubeCapExceeded Phase = "disease_cube_cap_exceeded"
	PhaseOutbreakCapExceeded    Phase = "outbreak_cap_exceeded"
	PhaseWin                    Phase = "win"
)

// ErrUnknownPhase is returned by Advance for a phase that is not in the table.
var ErrUnknownPhase = errors.New("unknown phase")

var turnCycle = []Phase{
	PhaseAwaitingActions,
	PhaseActionsDone,
	PhaseCardsDrawn,
	PhaseInfectionDone,
	PhaseTurnComplete,
}

var terminalPhases = []Phase{
	PhasePlayerDeckExhausted,
	PhaseDiseaseCubeCapExceeded,
	PhaseOutbreakCapExceeded,
	PhaseWin,
}

// Terminal reports whether p ends the game.
func (p Phase) Terminal() bool {
	for _, t := range terminalPhases {
		if p == t {
			return true
		}
	}
	return false
}

// PhaseState adapts a Phase to the State interface.
type PhaseState struct {
	Phase   Phase
	onEnter func(Phase)
}

func (s *PhaseState) GetID() string { return string(s.Phase) }

func (s *PhaseState) OnEnter() {
	if s.onEnter != nil {
		s.onEnter(s.Phase)
	}
}

func (s *PhaseState) OnExit() {}

// TurnMachine is the turn scheduler's phase table: the five turn phases in a
// loop, and an exit from every one of them into each terminal phase.
type TurnMachine struct {
	*BaseStateMachine
	states map[Phase]*PhaseState
}

// NewTurnMachine starts in PhaseAwaitingActions. onEnter, if set, is called
// on every phase entered after construction.
func NewTurnMachine(onEnter func(Phase)) *TurnMachine {
	states := make(map[Phase]*PhaseState)
	for _, p := range append(append([]Phase{}, turnCycle...), terminalPhases...) {
		states[p] = &PhaseState{Phase: p}
	}
	m := &TurnMachine{
		BaseStateMachine: NewBaseStateMachine(states[PhaseAwaitingActions]),
		states:           states,
	}
	for i, p := range turnCycle {
		next := turnCycle[(i+1)%len(turnCycle)]
		m.AddTransition(states[p], states[next], nil)
		for _, t := range terminalPhases {
			m.AddTransition(states[p], states[t], nil)
		}
	}
	for _, s := range states {
		s.onEnter = onEnter
	}
	return m
}

// Phase returns the current phase.
func (m *TurnMachine) Phase() Phase {
	return Phase(m.GetCurrentState().GetID())
}

// Advance moves to phase to if the table allows it.
func (m *TurnMachine) Advance(to Phase) error {
	s, ok := m.states[to]
	if !ok {
		return ErrUnknownPhase
	}
	return m.ChangeState(s)
}
