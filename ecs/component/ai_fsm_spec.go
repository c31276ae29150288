package component

// AIFSMSpec overrides an archetype's built-in behavior table. It is
// decoded from the enemy prefab and compiled once per spec pointer.
type AIFSMSpec struct {
	Initial string
	States  map[string]AIFSMStateSpec
	// Transitions maps a source state to its ordered {to, when} entries.
	Transitions map[string][]map[string]any
}

// AIFSMStateSpec lists action maps run on entry, every tick, and on exit.
type AIFSMStateSpec struct {
	OnEnter []map[string]any
	While   []map[string]any
	OnExit  []map[string]any
}
