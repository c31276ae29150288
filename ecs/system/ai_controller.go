package system

import (
	"math"

	"go.uber.org/zap"

	"github.com/milk9111/lightsout/ecs"
	"github.com/milk9111/lightsout/ecs/component"
)

// EnemyBehaviorSystem drives every enemy through its archetype's state
// machine once per tick: While actions first, then at most one transition.
type EnemyBehaviorSystem struct {
	tables   map[component.Archetype]*FSMDef
	fsmCache map[component.Archetype]compiledOverride
	logger   *zap.Logger
}

// compiledOverride is the last override table seen for an archetype. A
// nil fsm marks a table that failed to compile.
type compiledOverride struct {
	spec *component.AIFSMSpec
	fsm  *FSMDef
}

func NewEnemyBehaviorSystem(logger *zap.Logger) *EnemyBehaviorSystem {
	if logger == nil {
		logger = zap.NewNop()
	}
	tables := make(map[component.Archetype]*FSMDef)
	for _, a := range component.Archetypes() {
		tables[a] = DefaultFSM(a)
	}
	return &EnemyBehaviorSystem{
		tables:   tables,
		fsmCache: make(map[component.Archetype]compiledOverride),
		logger:   logger,
	}
}

// FSM returns the table an enemy runs: its compiled override when it has
// a valid one, otherwise the archetype default.
func (s *EnemyBehaviorSystem) FSM(enemy *component.Enemy, cfg *component.AIConfig) *FSMDef {
	if cfg != nil && cfg.Spec != nil {
		cached, ok := s.fsmCache[enemy.Archetype]
		if !ok || cached.spec != cfg.Spec {
			fsm, err := CompileFSM(*cfg.Spec)
			if err != nil {
				s.logger.Warn("fsm override rejected, using built-in table",
					zap.String("archetype", enemy.Archetype.String()), zap.Error(err))
			}
			cached = compiledOverride{spec: cfg.Spec, fsm: fsm}
			s.fsmCache[enemy.Archetype] = cached
		}
		if cached.fsm != nil {
			return cached.fsm
		}
	}
	if fsm, ok := s.tables[enemy.Archetype]; ok {
		return fsm
	}
	return s.tables[component.ArchetypeWalker]
}

func (s *EnemyBehaviorSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	var player component.Player
	if ent, ok := ecs.First(w, component.PlayerComponent.Kind()); ok {
		if p, ok := ecs.Get(w, ent, component.PlayerComponent.Kind()); ok {
			player = *p
		}
	}
	pw := w.PhysicsWorld()
	now := w.Elapsed()

	entities := w.Query(
		component.EnemyTagComponent.Kind(),
		component.EnemyComponent.Kind(),
		component.AIStateComponent.Kind(),
		component.CooldownsComponent.Kind(),
		component.PhysicsBodyComponent.Kind(),
	)
	for _, ent := range entities {
		enemy, _ := ecs.Get(w, ent, component.EnemyComponent.Kind())
		state, _ := ecs.Get(w, ent, component.AIStateComponent.Kind())
		cooldowns, _ := ecs.Get(w, ent, component.CooldownsComponent.Kind())
		body, _ := ecs.Get(w, ent, component.PhysicsBodyComponent.Kind())
		if enemy == nil || state == nil || cooldowns == nil || body == nil || body.Body == nil {
			continue
		}
		if h, ok := ecs.Get(w, ent, component.HealthComponent.Kind()); ok && h.Dead {
			continue
		}
		cfg, _ := ecs.Get(w, ent, component.AIConfigComponent.Kind())

		fsm := s.FSM(enemy, cfg)
		pos := body.Body.Position()
		ctx := &AIActionContext{
			World:       w,
			Entity:      ent,
			Enemy:       enemy,
			State:       state,
			Cooldowns:   cooldowns,
			Body:        body,
			PlayerFound: player.Reported,
			PlayerPos:   player.Position,
			PlayerVel:   player.Velocity,
			Now:         now,
			Grounded:    pw.Grounded(body.Body, body.Height),
		}
		if player.Reported {
			ctx.DX = player.Position.X - pos.X
			ctx.Distance = pos.Distance(player.Position)
			ctx.Contact = overlaps(pos.X, pos.Y, body.Width, body.Height,
				player.Position.X, player.Position.Y, player.Width, player.Height)
		}

		if _, ok := fsm.States[state.Current]; !ok {
			state.Current = fsm.Initial
			state.Entered = now
			applyActions(fsm.States[state.Current].OnEnter, ctx)
		}

		applyActions(fsm.States[state.Current].While, ctx)

		for _, tr := range fsm.Transitions[state.Current] {
			if !passes(tr.Checks, ctx) {
				continue
			}
			s.logger.Debug("enemy transition",
				zap.String("archetype", enemy.Archetype.String()),
				zap.String("from", string(state.Current)),
				zap.String("to", string(tr.To)))
			applyActions(fsm.States[state.Current].OnExit, ctx)
			state.Current = tr.To
			state.Entered = now
			applyActions(fsm.States[state.Current].OnEnter, ctx)
			break
		}

		state.Touching = ctx.Contact
	}
}

func passes(checks []TransitionChecker, ctx *AIActionContext) bool {
	for _, c := range checks {
		if c == nil || !c(ctx) {
			return false
		}
	}
	return true
}

func applyActions(actions []Action, ctx *AIActionContext) {
	for _, a := range actions {
		if a != nil {
			a(ctx)
		}
	}
}

// overlaps tests two center-anchored boxes; touching edges count.
func overlaps(ax, ay, aw, ah, bx, by, bw, bh float64) bool {
	const eps = 1e-6
	return math.Abs(ax-bx) <= (aw+bw)/2+eps && math.Abs(ay-by) <= (ah+bh)/2+eps
}
