package system

import "github.com/milk9111/lightsout/ecs/component"

const (
	stateIdle          component.StateID = "idle"
	statePursue        component.StateID = "pursue"
	stateAttack        component.StateID = "attack"
	stateRecover       component.StateID = "recover"
	stateAttacking     component.StateID = "attacking"
	stateAttackRecover component.StateID = "attack_recover"
	stateLeaping       component.StateID = "leaping"
	stateRecoiling     component.StateID = "recoiling"
)

// WalkerFSM: shamble towards the player with a sway, charge when close,
// lunge in range. Touching the player hurts once per "attack" window.
func WalkerFSM() *FSMDef {
	return &FSMDef{
		Initial: stateIdle,
		States: map[component.StateID]StateDef{
			stateIdle: {
				While: []Action{action("stop_x", nil), action("face_player", nil), action("contact_strike", nil)},
			},
			statePursue: {
				While: []Action{action("face_player", nil), action("pursue", 0.2), action("contact_strike", nil)},
			},
			stateAttack: {
				OnEnter: []Action{
					action("stop_x", nil),
					action("start_timer", "attack"),
					action("start_timer", "attack_window"),
					action("lunge", nil),
					action("attack_cue", nil),
				},
			},
			stateRecover: {
				While: []Action{action("stop_x", nil), action("face_player", nil), action("contact_strike", nil)},
			},
		},
		Transitions: map[component.StateID][]TransitionDef{
			stateIdle: {
				on(stateAttack, "in_range", "timer_ready:attack"),
				on(stateRecover, "in_range"),
				on(statePursue, "out_of_range"),
			},
			statePursue: {
				on(stateAttack, "in_range", "timer_ready:attack"),
				on(stateRecover, "in_range"),
				on(stateIdle, "loses_player"),
			},
			stateAttack: {
				on(stateRecover, "timer_ready:attack_window"),
			},
			stateRecover: {
				on(stateAttack, "in_range", "timer_ready:attack"),
				on(statePursue, "out_of_range"),
				on(stateIdle, "loses_player"),
			},
		},
	}
}

// RunnerFSM: always sprinting at the player. Contact opens an attack that
// lasts until separation, hurting on contact and again every
// "contact_damage" seconds, and shoving the player every tick.
func RunnerFSM() *FSMDef {
	return &FSMDef{
		Initial: stateIdle,
		States: map[component.StateID]StateDef{
			stateIdle: {
				While: []Action{action("stop_x", nil)},
			},
			statePursue: {
				While: []Action{action("face_player", nil), action("pursue", nil)},
			},
			stateAttack: {
				OnEnter: []Action{
					action("attack_cue", nil),
					action("clear_timer", "contact_damage"),
					action("contact_damage", nil),
					action("push", nil),
				},
				While: []Action{
					action("face_player", nil),
					action("pursue", nil),
					action("contact_damage", nil),
					action("push", nil),
				},
			},
		},
		Transitions: map[component.StateID][]TransitionDef{
			stateIdle: {
				on(statePursue, "sees_player"),
			},
			statePursue: {
				on(stateAttack, "contact"),
				on(stateIdle, "loses_player"),
			},
			stateAttack: {
				on(statePursue, "no_contact"),
			},
		},
	}
}

// JumperFSM: stalk on the ground, leap at the predicted player position
// when "jump" is ready, and in range wind up, strike, then recoil away.
// Facing only follows the player while grounded.
func JumperFSM() *FSMDef {
	return &FSMDef{
		Initial: stateIdle,
		States: map[component.StateID]StateDef{
			stateIdle: {
				While: []Action{action("face_player", "grounded"), action("stalk", nil)},
			},
			stateAttacking: {
				OnEnter: []Action{
					action("stop", nil),
					action("start_timer", "attack"),
					action("start_timer", "attack_windup"),
					action("attack_cue", nil),
				},
				While: []Action{action("face_player", "grounded")},
			},
			stateAttackRecover: {
				OnEnter: []Action{action("strike", nil), action("start_timer", "attack_recover")},
				While:   []Action{action("face_player", "grounded")},
			},
			stateRecoiling: {
				OnEnter: []Action{action("recoil", nil)},
				While:   []Action{action("face_player", "grounded")},
			},
			stateLeaping: {
				OnEnter: []Action{action("leap", nil), action("start_timer", "jump")},
				While:   []Action{action("face_player", "grounded")},
			},
		},
		Transitions: map[component.StateID][]TransitionDef{
			stateIdle: {
				on(stateAttacking, "grounded", "in_range", "timer_ready:attack"),
				on(stateLeaping, "grounded", "out_of_range", "timer_ready:jump"),
			},
			stateAttacking: {
				on(stateAttackRecover, "timer_ready:attack_windup"),
			},
			stateAttackRecover: {
				on(stateRecoiling, "timer_ready:attack_recover"),
			},
			stateRecoiling: {
				on(stateIdle, "landed"),
			},
			stateLeaping: {
				on(stateIdle, "landed"),
			},
		},
	}
}

// BruteFSM: plod into range, then a slow windup and a single strike if
// the player stayed close. "attack" gates how often that can start.
func BruteFSM() *FSMDef {
	return &FSMDef{
		Initial: stateIdle,
		States: map[component.StateID]StateDef{
			stateIdle: {
				While: []Action{action("stop_x", nil), action("face_player", nil)},
			},
			statePursue: {
				While: []Action{action("face_player", nil), action("pursue", nil)},
			},
			stateAttacking: {
				OnEnter: []Action{
					action("stop", nil),
					action("start_timer", "attack"),
					action("start_timer", "attack_windup"),
					action("attack_cue", nil),
				},
				While: []Action{action("stop_x", nil), action("face_player", nil)},
			},
			stateAttackRecover: {
				OnEnter: []Action{action("strike", nil), action("start_timer", "attack_recover")},
				While:   []Action{action("stop_x", nil), action("face_player", nil)},
			},
		},
		Transitions: map[component.StateID][]TransitionDef{
			stateIdle: {
				on(stateAttacking, "in_range", "timer_ready:attack"),
				on(statePursue, "out_of_range"),
			},
			statePursue: {
				on(stateAttacking, "in_range", "timer_ready:attack"),
				on(stateIdle, "in_range"),
				on(stateIdle, "loses_player"),
			},
			stateAttacking: {
				on(stateAttackRecover, "timer_ready:attack_windup"),
			},
			stateAttackRecover: {
				on(stateIdle, "timer_ready:attack_recover"),
			},
		},
	}
}
