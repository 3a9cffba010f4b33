package game

import "github.com/wfunc/outbreak/state"

// GameEventType classifies notifications published on a game's EventBus.
type GameEventType int

const (
	EventCubePlaced GameEventType = iota
	EventCubesRemoved
	EventOutbreak
	EventEpidemic
	EventCured
	EventActionDone
	EventCardPlayed
	EventPhaseChanged
	EventTurnEnded
	EventGameOver
)

// GameEvent is one notification. Only the fields relevant to Type are set.
type GameEvent struct {
	Type    GameEventType
	Turn    int
	Agent   int
	City    City
	Disease Disease
	Count   int
	Action  ActionID
	Card    EventCard
	Phase   state.Phase
	Outcome Outcome
}

type EventHandler func(GameEvent)

// EventBus delivers game events synchronously to subscribers.
type EventBus struct {
	handlers map[GameEventType][]EventHandler
	all      []EventHandler
}

func NewEventBus() *EventBus {
	return &EventBus{
		handlers: make(map[GameEventType][]EventHandler),
	}
}

func (eb *EventBus) Subscribe(t GameEventType, fn EventHandler) {
	eb.handlers[t] = append(eb.handlers[t], fn)
}

// SubscribeAll registers fn for every event type.
func (eb *EventBus) SubscribeAll(fn EventHandler) {
	eb.all = append(eb.all, fn)
}

func (eb *EventBus) Emit(e GameEvent) {
	for _, fn := range eb.handlers[e.Type] {
		fn(e)
	}
	for _, fn := range eb.all {
		fn(e)
	}
}
