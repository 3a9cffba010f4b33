package state

import (
	"errors"
	"testing"
)

// MockState is a test double for the State interface.
// It helps us track which methods have been called.
type MockState struct {
	ID            string
	OnEnterCalled bool
	OnExitCalled  bool
}

func (m *MockState) OnEnter() {
	m.OnEnterCalled = true
}

func (m *MockState) OnExit() {
	m.OnExitCalled = true
}

func (m *MockState) GetID() string {
	return m.ID
}

// reset clears the call tracking flags.
func (m *MockState) reset() {
	m.OnEnterCalled = false
	m.OnExitCalled = false
}

func TestStateMachine_InitialState(t *testing.T) {
	initialState := &MockState{ID: "initial"}
	sm := NewBaseStateMachine(initialState)

	if !initialState.OnEnterCalled {
		t.Error("Expected OnEnter to be called on the initial state")
	}

	if sm.GetCurrentState() != initialState {
		t.Error("GetCurrentState should return the initial state")
	}
}

func TestStateMachine_ChangeState(t *testing.T) {
	initialState := &MockState{ID: "initial"}
	nextState := &MockState{ID: "next"}

	sm := NewBaseStateMachine(initialState)
	sm.AddTransition(initialState, nextState, nil)
	initialState.reset() // Reset after initialization

	err := sm.ChangeState(nextState)
	if err != nil {
		t.Fatalf("ChangeState should not return an error, but got: %v", err)
	}

	if !initialState.OnExitCalled {
		t.Error("Expected OnExit to be called on the old state")
	}

	if !nextState.OnEnterCalled {
		t.Error("Expected OnEnter to be called on the new state")
	}

	if sm.GetCurrentState() != nextState {
		t.Error("GetCurrentState should return the new state")
	}
}

func TestStateMachine_UnregisteredTransition(t *testing.T) {
	stateA := &MockState{ID: "A"}
	stateB := &MockState{ID: "B"}
	sm := NewBaseStateMachine(stateA)

	if err := sm.ChangeState(stateB); !errors.Is(err, ErrTransitionNotAllowed) {
		t.Errorf("Expected ErrTransitionNotAllowed, but got: %v", err)
	}
	if sm.GetCurrentState() != stateA {
		t.Error("State should not change on an unregistered transition")
	}
}

func TestStateMachine_AddAndUseTransition(t *testing.T) {
	stateA := &MockState{ID: "A"}
	stateB := &MockState{ID: "B"}
	stateC := &MockState{ID: "C"}

	sm := NewBaseStateMachine(stateA)

	// Add a valid transition from A to B
	err := sm.AddTransition(stateA, stateB, func() bool { return true })
	if err != nil {
		t.Fatalf("AddTransition failed: %v", err)
	}

	// Add a blocked transition from B to C
	err = sm.AddTransition(stateB, stateC, func() bool { return false })
	if err != nil {
		t.Fatalf("AddTransition failed: %v", err)
	}

	// --- Test valid transition ---
	stateA.reset()
	err = sm.ChangeState(stateB)
	if err != nil {
		t.Errorf("Expected transition from A to B to be allowed, but got error: %v", err)
	}
	if sm.GetCurrentState().GetID() != "B" {
		t.Errorf("Expected current state to be B, but got %s", sm.GetCurrentState().GetID())
	}

	// --- Test blocked transition ---
	stateB.reset()
	err = sm.ChangeState(stateC)
	if err != ErrTransitionNotAllowed {
		t.Errorf("Expected ErrTransitionNotAllowed, but got: %v", err)
	}
	if sm.GetCurrentState().GetID() != "B" {
		t.Errorf("Expected current state to remain B after a blocked transition, but got %s", sm.GetCurrentState().GetID())
	}
	if stateB.OnExitCalled {
		t.Error("OnExit should not be called on the current state if transition is blocked")
	}
	if stateC.OnEnterCalled {
		t.Error("OnEnter should not be called on the new state if transition is blocked")
	}
}

// --- turn machine ---

func TestTurnMachine_FullCycle(t *testing.T) {
	var entered []Phase
	m := NewTurnMachine(func(p Phase) { entered = append(entered, p) })

	if m.Phase() != PhaseAwaitingActions {
		t.Fatalf("Expected initial phase %s, got %s", PhaseAwaitingActions, m.Phase())
	}

	cycle := []Phase{PhaseActionsDone, PhaseCardsDrawn, PhaseInfectionDone, PhaseTurnComplete, PhaseAwaitingActions}
	for _, p := range cycle {
		if err := m.Advance(p); err != nil {
			t.Fatalf("Advance to %s failed: %v", p, err)
		}
	}
	if len(entered) != len(cycle) {
		t.Errorf("Expected %d phase callbacks, got %d", len(cycle), len(entered))
	}
}

func TestTurnMachine_SkippingPhaseIsRejected(t *testing.T) {
	m := NewTurnMachine(nil)
	if err := m.Advance(PhaseCardsDrawn); !errors.Is(err, ErrTransitionNotAllowed) {
		t.Errorf("Expected ErrTransitionNotAllowed, got %v", err)
	}
	if err := m.Advance(Phase("bogus")); !errors.Is(err, ErrUnknownPhase) {
		t.Errorf("Expected ErrUnknownPhase, got %v", err)
	}
}

func TestTurnMachine_TerminalFromAnyTurnPhase(t *testing.T) {
	for _, from := range turnCycle {
		for _, term := range terminalPhases {
			m := NewTurnMachine(nil)
			for _, p := range turnCycle[1:] {
				if m.Phase() == from {
					break
				}
				if err := m.Advance(p); err != nil {
					t.Fatalf("Advance to %s failed: %v", p, err)
				}
			}
			if err := m.Advance(term); err != nil {
				t.Errorf("Expected %s -> %s to be allowed, got %v", from, term, err)
			}
			if !m.Phase().Terminal() {
				t.Errorf("Expected %s to be terminal", m.Phase())
			}
			if err := m.Advance(PhaseAwaitingActions); !errors.Is(err, ErrTransitionNotAllowed) {
				t.Errorf("Expected terminal phase %s to be final, got %v", term, err)
			}
		}
	}
}
