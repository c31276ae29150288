package component

// StateID identifies an AI FSM state.
type StateID string

// EventID identifies an AI FSM event.
type EventID string

// AIState stores the current FSM state and the facts the behavior system
// carries from one tick to the next.
type AIState struct {
	Current    StateID
	FacingLeft bool
	// Entered is the world time the current state was entered.
	Entered float64
	// Touching records player contact on the previous tick.
	Touching bool
}

// AIConfig stores the FSM configuration reference for an entity. Spec,
// when set, overrides the archetype's built-in table.
type AIConfig struct {
	FSM  string
	Spec *AIFSMSpec
}

var AIStateComponent = NewComponent[AIState]()
var AIConfigComponent = NewComponent[AIConfig]()
