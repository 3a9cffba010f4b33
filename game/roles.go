package game

import "slices"

// Role is a player role. Each role has a fixed action list.
type Role int

const (
	ContingencyPlanner Role = iota
	Dispatcher
	Medic
	OperationsExpert
	QuarantineSpecialist
	Researcher
	Scientist
)

var roleNames = map[Role]string{
	ContingencyPlanner:   "ContingencyPlanner",
	Dispatcher:           "Dispatcher",
	Medic:                "Medic",
	OperationsExpert:     "OperationsExpert",
	QuarantineSpecialist: "QuarantineSpecialist",
	Researcher:           "Researcher",
	Scientist:            "Scientist",
}

func (r Role) String() string {
	if s, ok := roleNames[r]; ok {
		return s
	}
	return "Unknown"
}

// Roles returns all roles in declaration order.
func Roles() []Role {
	return []Role{ContingencyPlanner, Dispatcher, Medic, OperationsExpert, QuarantineSpecialist, Researcher, Scientist}
}

// ActionID identifies one action implementation.
type ActionID int

const (
	Drive ActionID = iota
	DirectFlight
	CharterFlight
	ShuttleFlight
	TreatDisease
	BuildResearchStation
	ShareKnowledge
	DiscoverCure
	DispatchFlight
	DispatchMove
	OperationsMove
	ContingencyPlan
)

var actionNames = map[ActionID]string{
	Drive:                "drive",
	DirectFlight:         "direct_flight",
	CharterFlight:        "charter_flight",
	ShuttleFlight:        "shuttle_flight",
	TreatDisease:         "treat_disease",
	BuildResearchStation: "build_research_station",
	ShareKnowledge:       "share_knowledge",
	DiscoverCure:         "discover_cure",
	DispatchFlight:       "dispatch_flight",
	DispatchMove:         "dispatch_move",
	OperationsMove:       "operations_move",
	ContingencyPlan:      "contingency_plan",
}

func (a ActionID) String() string {
	if s, ok := actionNames[a]; ok {
		return s
	}
	return "unknown"
}

// IsMove reports whether a is one of the four basic movement actions.
func (a ActionID) IsMove() bool {
	switch a {
	case Drive, DirectFlight, CharterFlight, ShuttleFlight:
		return true
	}
	return false
}

var commonActions = []ActionID{
	Drive,
	DirectFlight,
	CharterFlight,
	ShuttleFlight,
	TreatDisease,
	BuildResearchStation,
	ShareKnowledge,
	DiscoverCure,
}

var roleExtras = map[Role][]ActionID{
	Dispatcher:         {DispatchFlight, DispatchMove},
	OperationsExpert:   {OperationsMove},
	ContingencyPlanner: {ContingencyPlan},
}

// ActionsFor returns the ordered action list of role r.
func ActionsFor(r Role) []ActionID {
	return append(slices.Clone(commonActions), roleExtras[r]...)
}

// Agent is a seated role and the actions it may invoke by index.
type Agent struct {
	Role    Role
	Actions []ActionID
}

func newAgent(r Role) Agent {
	return Agent{Role: r, Actions: ActionsFor(r)}
}

// ActionIndex returns the index of id in the agent's action list.
func (a Agent) ActionIndex(id ActionID) (int, bool) {
	i := slices.Index(a.Actions, id)
	return i, i >= 0
}
