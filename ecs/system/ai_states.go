package system

import (
	"fmt"
	"math"
	"sort"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/lightsout/common"
	"github.com/milk9111/lightsout/ecs"
	"github.com/milk9111/lightsout/ecs/component"
)

type Action func(ctx *AIActionContext)

type TransitionChecker func(ctx *AIActionContext) bool

// AIActionContext is what one enemy's actions and checkers see during a
// tick. Distance, DX and Contact are only meaningful when PlayerFound.
type AIActionContext struct {
	World     *ecs.World
	Entity    ecs.Entity
	Enemy     *component.Enemy
	State     *component.AIState
	Cooldowns *component.Cooldowns
	Body      *component.PhysicsBody

	PlayerFound bool
	PlayerPos   cp.Vector
	PlayerVel   cp.Vector

	Now      float64
	Distance float64
	DX       float64
	Grounded bool
	Contact  bool
}

type StateDef struct {
	OnEnter []Action
	While   []Action
	OnExit  []Action
}

// TransitionDef fires when every check passes. Transitions of a state are
// tried in order and at most one fires per tick.
type TransitionDef struct {
	To     component.StateID
	Checks []TransitionChecker
	Name   string
}

type FSMDef struct {
	Initial     component.StateID
	States      map[component.StateID]StateDef
	Transitions map[component.StateID][]TransitionDef
}

// landingGrace keeps a body that just jumped from counting as landed on
// the tick its impulse was applied.
const landingGrace = 0.1

func (ctx *AIActionContext) position() cp.Vector {
	return ctx.Body.Body.Position()
}

func (ctx *AIActionContext) setVelocityX(vx float64) {
	v := ctx.Body.Body.Velocity()
	ctx.Body.Body.SetVelocityVector(cp.Vector{X: vx, Y: v.Y})
}

func (ctx *AIActionContext) inRange() bool {
	return ctx.PlayerFound && ctx.Distance <= ctx.Enemy.AttackRange
}

func (ctx *AIActionContext) duration(name string) float64 {
	return ctx.Enemy.Durations[name]
}

func (ctx *AIActionContext) emit(t ecs.EventType, data any) {
	ctx.World.Events().Push(ecs.Event{Type: t, Entity: ctx.Entity, Data: data})
}

func (ctx *AIActionContext) hitPlayer() {
	ctx.emit(ecs.EventPlayerDamaged, ctx.Enemy.Damage)
}

func (ctx *AIActionContext) pushPlayer() {
	dir := common.Sign(ctx.DX)
	if dir == 0 {
		dir = 1
	}
	ctx.emit(ecs.EventKnockback, cp.Vector{X: dir * ctx.Enemy.PushForce})
}

func (ctx *AIActionContext) face(grounded bool) {
	if !ctx.PlayerFound || (grounded && !ctx.Grounded) {
		return
	}
	th := ctx.Enemy.FlipThreshold
	switch {
	case ctx.DX > th:
		ctx.State.FacingLeft = false
	case ctx.DX < -th:
		ctx.State.FacingLeft = true
	}
}

var actionRegistry = map[string]func(any) Action{
	"stop_x": func(_ any) Action {
		return func(ctx *AIActionContext) {
			ctx.setVelocityX(0)
		}
	},
	"stop": func(_ any) Action {
		return func(ctx *AIActionContext) {
			ctx.Body.Body.SetVelocityVector(cp.Vector{})
		}
	},
	// pursue runs at move speed, or charge speed inside close range. A
	// non-zero arg adds a sinusoidal sway of that amplitude to the heading.
	"pursue": func(arg any) Action {
		sway := asFloat(arg)
		return func(ctx *AIActionContext) {
			if !ctx.PlayerFound {
				return
			}
			speed := ctx.Enemy.MoveSpeed
			if ctx.Enemy.ChargeSpeed > 0 && ctx.Distance <= ctx.Enemy.CloseRange {
				speed = ctx.Enemy.ChargeSpeed
			}
			dir := common.Sign(ctx.DX + math.Sin(ctx.Now*3)*sway)
			ctx.setVelocityX(dir * speed)
		}
	},
	"stalk": func(_ any) Action {
		return func(ctx *AIActionContext) {
			if !ctx.PlayerFound || !ctx.Grounded {
				return
			}
			if ctx.inRange() {
				ctx.setVelocityX(0)
				return
			}
			ctx.setVelocityX(common.Sign(ctx.DX) * ctx.Enemy.MoveSpeed)
		}
	},
	"face_player": func(arg any) Action {
		grounded := fmt.Sprint(arg) == "grounded"
		return func(ctx *AIActionContext) {
			ctx.face(grounded)
		}
	},
	"start_timer": func(arg any) Action {
		name := fmt.Sprint(arg)
		return func(ctx *AIActionContext) {
			ctx.Cooldowns.Start(name, ctx.duration(name))
		}
	},
	"clear_timer": func(arg any) Action {
		name := fmt.Sprint(arg)
		return func(ctx *AIActionContext) {
			ctx.Cooldowns.Start(name, 0)
		}
	},
	"attack_cue": func(_ any) Action {
		return func(ctx *AIActionContext) {
			ctx.emit(ecs.EventEnemyAttack, nil)
		}
	},
	// strike lands only if the player is still within attack range.
	"strike": func(_ any) Action {
		return func(ctx *AIActionContext) {
			if ctx.inRange() {
				ctx.hitPlayer()
			}
		}
	},
	// contact_strike damages and shoves a touching player, once per
	// "attack" cooldown window.
	"contact_strike": func(_ any) Action {
		return func(ctx *AIActionContext) {
			if !ctx.Contact || !ctx.Cooldowns.Ready("attack") {
				return
			}
			ctx.hitPlayer()
			ctx.Cooldowns.Start("attack", ctx.duration("attack"))
			ctx.emit(ecs.EventEnemyAttack, nil)
			ctx.pushPlayer()
		}
	},
	"contact_damage": func(_ any) Action {
		return func(ctx *AIActionContext) {
			if !ctx.Contact || !ctx.Cooldowns.Ready("contact_damage") {
				return
			}
			ctx.hitPlayer()
			ctx.Cooldowns.Start("contact_damage", ctx.duration("contact_damage"))
		}
	},
	"push": func(_ any) Action {
		return func(ctx *AIActionContext) {
			if ctx.Contact {
				ctx.pushPlayer()
			}
		}
	},
	// lunge snaps the body horizontally towards the player by half the
	// attack range.
	"lunge": func(_ any) Action {
		return func(ctx *AIActionContext) {
			if !ctx.PlayerFound {
				return
			}
			pos := ctx.position()
			target := cp.Vector{X: ctx.PlayerPos.X, Y: pos.Y}
			ctx.Body.Body.SetPosition(common.MoveTowards(pos, target, ctx.Enemy.AttackRange*0.5))
		}
	},
	"leap": func(_ any) Action {
		return func(ctx *AIActionContext) {
			if !ctx.PlayerFound {
				return
			}
			ctx.Body.Body.SetVelocityVector(cp.Vector{})
			pos := ctx.position()
			impulse := LeapImpulse(pos, ctx.PlayerPos, ctx.PlayerVel, ctx.Enemy.AttackRange, ctx.Enemy.LeapForce)
			ctx.Body.Body.ApplyImpulseAtWorldPoint(impulse, pos)
		}
	},
	// recoil hops away from the facing direction.
	"recoil": func(_ any) Action {
		return func(ctx *AIActionContext) {
			dir := -1.0
			if ctx.State.FacingLeft {
				dir = 1
			}
			ctx.Body.Body.SetVelocityVector(cp.Vector{})
			impulse := cp.Vector{X: dir, Y: 1}.Mult(ctx.Enemy.JumpForce * 0.55)
			ctx.Body.Body.ApplyImpulseAtWorldPoint(impulse, ctx.position())
		}
	},
}

// LeapImpulse aims a ballistic jump from pos at where the player will be.
// A moving player is led by a distance-scaled prediction time plus a
// forward offset; a still player is targeted just inside attackRange.
func LeapImpulse(pos, player, playerVel cp.Vector, attackRange, force float64) cp.Vector {
	d := pos.Distance(player)
	var target cp.Vector
	if playerVel.Length() > 0.1 {
		predict := common.Clamp(0.8+d/10, 0.8, 1.5)
		offset := common.Clamp(d/5, 3, 10)
		target = player.Add(playerVel.Mult(predict)).Add(playerVel.Normalize().Mult(offset))
	} else {
		target = player.Add(player.Sub(pos).Normalize().Mult(attackRange - 0.1))
	}
	dir := target.Sub(pos).Normalize()
	mult := common.Clamp(1.5+d/15, 1.5, 2.5)
	return cp.Vector{X: dir.X * mult, Y: 1}.Mult(force)
}

var transitionRegistry = map[string]func(any) TransitionChecker{
	"always": func(_ any) TransitionChecker {
		return func(ctx *AIActionContext) bool { return true }
	},
	"sees_player": func(_ any) TransitionChecker {
		return func(ctx *AIActionContext) bool { return ctx.PlayerFound }
	},
	"loses_player": func(_ any) TransitionChecker {
		return func(ctx *AIActionContext) bool { return !ctx.PlayerFound }
	},
	"in_range": func(_ any) TransitionChecker {
		return func(ctx *AIActionContext) bool { return ctx.inRange() }
	},
	"out_of_range": func(_ any) TransitionChecker {
		return func(ctx *AIActionContext) bool { return ctx.PlayerFound && !ctx.inRange() }
	},
	"timer_ready": func(arg any) TransitionChecker {
		name := fmt.Sprint(arg)
		return func(ctx *AIActionContext) bool { return ctx.Cooldowns.Ready(name) }
	},
	"grounded": func(_ any) TransitionChecker {
		return func(ctx *AIActionContext) bool { return ctx.Grounded }
	},
	"airborne": func(_ any) TransitionChecker {
		return func(ctx *AIActionContext) bool { return !ctx.Grounded }
	},
	"landed": func(_ any) TransitionChecker {
		return func(ctx *AIActionContext) bool {
			return ctx.Grounded && ctx.Now-ctx.State.Entered >= landingGrace
		}
	},
	"contact": func(_ any) TransitionChecker {
		return func(ctx *AIActionContext) bool { return ctx.Contact }
	},
	"no_contact": func(_ any) TransitionChecker {
		return func(ctx *AIActionContext) bool { return !ctx.Contact }
	},
}

func asFloat(v any) float64 {
	switch t := v.(type) {
	case int:
		return float64(t)
	case int64:
		return float64(t)
	case float64:
		return t
	case float32:
		return float64(t)
	default:
		return 0
	}
}

func action(name string, arg any) Action {
	return actionRegistry[name](arg)
}

func check(name string, arg any) TransitionChecker {
	return transitionRegistry[name](arg)
}

// on builds a transition from condition names; "timer_ready:attack"
// style names carry their argument after the colon.
func on(to component.StateID, conds ...string) TransitionDef {
	td := TransitionDef{To: to}
	for _, c := range conds {
		name, arg := splitCond(c)
		td.Checks = append(td.Checks, check(name, arg))
	}
	td.Name = fmt.Sprint(conds)
	return td
}

func splitCond(c string) (string, any) {
	for i := 0; i < len(c); i++ {
		if c[i] == ':' {
			return c[:i], c[i+1:]
		}
	}
	return c, nil
}

// CompileFSM builds a table from a YAML-shaped spec. A transition entry
// is either {to: state, when: conds} where conds is a condition name, a
// {name: arg} map or a list of those, or the short form {condition: to}.
func CompileFSM(spec component.AIFSMSpec) (*FSMDef, error) {
	if spec.Initial == "" {
		return nil, fmt.Errorf("fsm: missing initial state")
	}
	if _, ok := spec.States[spec.Initial]; !ok {
		return nil, fmt.Errorf("fsm: initial state %q not defined", spec.Initial)
	}

	build := func(list []map[string]any) ([]Action, error) {
		if len(list) == 0 {
			return nil, nil
		}
		out := make([]Action, 0, len(list))
		for _, e := range list {
			for _, k := range sortedKeys(e) {
				makeAction, ok := actionRegistry[k]
				if !ok {
					return nil, fmt.Errorf("fsm: unknown action %q", k)
				}
				out = append(out, makeAction(e[k]))
			}
		}
		return out, nil
	}

	states := map[component.StateID]StateDef{}
	for name, s := range spec.States {
		onEnter, err := build(s.OnEnter)
		if err != nil {
			return nil, err
		}
		while, err := build(s.While)
		if err != nil {
			return nil, err
		}
		onExit, err := build(s.OnExit)
		if err != nil {
			return nil, err
		}
		states[component.StateID(name)] = StateDef{OnEnter: onEnter, While: while, OnExit: onExit}
	}

	transitions := map[component.StateID][]TransitionDef{}
	for from, entries := range spec.Transitions {
		if _, ok := spec.States[from]; !ok {
			return nil, fmt.Errorf("fsm: transitions from undefined state %q", from)
		}
		for i, entry := range entries {
			td, err := compileTransition(entry)
			if err != nil {
				return nil, fmt.Errorf("fsm: %s[%d]: %w", from, i, err)
			}
			if _, ok := spec.States[string(td.To)]; !ok {
				return nil, fmt.Errorf("fsm: %s[%d]: unknown target state %q", from, i, td.To)
			}
			transitions[component.StateID(from)] = append(transitions[component.StateID(from)], td)
		}
	}

	return &FSMDef{
		Initial:     component.StateID(spec.Initial),
		States:      states,
		Transitions: transitions,
	}, nil
}

func compileTransition(entry map[string]any) (TransitionDef, error) {
	if to, ok := entry["to"].(string); ok {
		checks, err := compileConds(entry["when"])
		if err != nil {
			return TransitionDef{}, err
		}
		return TransitionDef{To: component.StateID(to), Checks: checks, Name: fmt.Sprint(entry["when"])}, nil
	}
	if len(entry) != 1 {
		return TransitionDef{}, fmt.Errorf("expected one condition, got %d keys", len(entry))
	}
	for cond, val := range entry {
		maker, ok := transitionRegistry[cond]
		if !ok {
			return TransitionDef{}, fmt.Errorf("unknown condition %q", cond)
		}
		var to string
		var arg any
		switch v := val.(type) {
		case string:
			to = v
		case map[string]any:
			to, _ = v["to"].(string)
			arg = v["arg"]
		}
		if to == "" {
			return TransitionDef{}, fmt.Errorf("missing to state for %q", cond)
		}
		return TransitionDef{To: component.StateID(to), Checks: []TransitionChecker{maker(arg)}, Name: cond}, nil
	}
	return TransitionDef{}, nil
}

func compileConds(raw any) ([]TransitionChecker, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case string:
		name, arg := splitCond(v)
		maker, ok := transitionRegistry[name]
		if !ok {
			return nil, fmt.Errorf("unknown condition %q", name)
		}
		return []TransitionChecker{maker(arg)}, nil
	case map[string]any:
		var out []TransitionChecker
		for _, name := range sortedKeys(v) {
			maker, ok := transitionRegistry[name]
			if !ok {
				return nil, fmt.Errorf("unknown condition %q", name)
			}
			out = append(out, maker(v[name]))
		}
		return out, nil
	case []any:
		var out []TransitionChecker
		for _, item := range v {
			checks, err := compileConds(item)
			if err != nil {
				return nil, err
			}
			out = append(out, checks...)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("invalid condition %v", raw)
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// DefaultFSM returns the built-in table of an archetype.
func DefaultFSM(a component.Archetype) *FSMDef {
	switch a {
	case component.ArchetypeRunner:
		return RunnerFSM()
	case component.ArchetypeJumper:
		return JumperFSM()
	case component.ArchetypeBrute:
		return BruteFSM()
	default:
		return WalkerFSM()
	}
}
