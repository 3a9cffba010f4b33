package state

import (
	"errors"
	"sync"
)

// StateMachine moves between registered states.
type StateMachine interface {
	ChangeState(state State) error
	GetCurrentState() State
	AddTransition(from State, to State, condition func() bool) error
}

// State is one node of a state machine.
type State interface {
	OnEnter()
	OnExit()
	GetID() string
}

// ErrTransitionNotAllowed is returned when a state transition is not allowed.
var ErrTransitionNotAllowed = errors.New("state transition not allowed")

// BaseStateMachine only follows transitions that were registered with
// AddTransition and whose condition, if any, holds.
type BaseStateMachine struct {
	currentState State
	transitions  map[string]map[string]func() bool // fromState -> toState -> condition
	mutex        sync.RWMutex
}

func NewBaseStateMachine(initialState State) *BaseStateMachine {
	machine := &BaseStateMachine{
		currentState: initialState,
		transitions:  make(map[string]map[string]func() bool),
	}
	initialState.OnEnter()
	return machine
}

// ChangeState moves to newState. OnExit and OnEnter run after the lock is
// released so they may read the machine.
func (sm *BaseStateMachine) ChangeState(newState State) error {
	sm.mutex.Lock()
	old := sm.currentState
	condition, exists := sm.transitions[old.GetID()][newState.GetID()]
	if !exists || (condition != nil && !condition()) {
		sm.mutex.Unlock()
		return ErrTransitionNotAllowed
	}
	sm.currentState = newState
	sm.mutex.Unlock()

	old.OnExit()
	newState.OnEnter()
	return nil
}

func (sm *BaseStateMachine) GetCurrentState() State {
	sm.mutex.RLock()
	defer sm.mutex.RUnlock()
	return sm.currentState
}

// CanChange reports whether a transition to the state with id to is registered
// from the current state.
func (sm *BaseStateMachine) CanChange(to string) bool {
	sm.mutex.RLock()
	defer sm.mutex.RUnlock()
	_, ok := sm.transitions[sm.currentState.GetID()][to]
	return ok
}

func (sm *BaseStateMachine) AddTransition(from State, to State, condition func() bool) error {
	sm.mutex.Lock()
	defer sm.mutex.Unlock()

	fromID := from.GetID()
	toID := to.GetID()

	if _, exists := sm.transitions[fromID]; !exists {
		sm.transitions[fromID] = make(map[string]func() bool)
	}

	sm.transitions[fromID][toID] = condition
	return nil
}
