package ecs

import (
	"testing"

	"github.com/milk9111/lightsout/ecs/component"
)

func TestWorldEntityLifecycle(t *testing.T) {
	cases := []struct {
		name         string
		create       int
		destroyIndex int // -1 = none
	}{
		{"single", 1, 0},
		{"three_destroy_middle", 3, 1},
		{"none_destroyed", 2, -1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := NewWorld()
			ents := make([]Entity, 0, c.create)
			for i := 0; i < c.create; i++ {
				ents = append(ents, CreateEntity(w))
			}
			if len(Entities(w)) != c.create {
				t.Fatalf("expected %d entities, got %d", c.create, len(Entities(w)))
			}
			if c.destroyIndex < 0 {
				return
			}
			if !DestroyEntity(w, ents[c.destroyIndex]) {
				t.Fatalf("DestroyEntity should return true for alive entity")
			}
			if IsAlive(w, ents[c.destroyIndex]) {
				t.Fatalf("entity should not be alive after destruction")
			}
			if DestroyEntity(w, ents[c.destroyIndex]) {
				t.Fatalf("second destroy should report false")
			}
		})
	}
}

func TestStaleHandleAfterSlotReuse(t *testing.T) {
	w := NewWorld()
	kind := component.NewComponentKind[int]()

	old := CreateEntity(w)
	if err := Add(w, old, kind, intPtr(1)); err != nil {
		t.Fatal(err)
	}
	DestroyEntity(w, old)

	fresh := CreateEntity(w)
	if fresh.id() != old.id() {
		t.Fatalf("expected slot reuse, got %v and %v", old, fresh)
	}
	if fresh == old {
		t.Fatalf("reused slot must carry a new generation")
	}
	if _, ok := Get(w, old, kind); ok {
		t.Fatalf("stale handle must not resolve")
	}
	if Has(w, fresh, kind) {
		t.Fatalf("components of the destroyed entity must not leak into the new one")
	}
}

func TestComponentAccess(t *testing.T) {
	w := NewWorld()
	health := component.NewComponentKind[float64]()
	label := component.NewComponentKind[string]()

	e1 := CreateEntity(w)
	e2 := CreateEntity(w)

	tests := []struct {
		name     string
		setup    func() error
		check    func(t *testing.T)
		teardown func() bool
	}{
		{
			name:  "add_health_to_e1",
			setup: func() error { return Add(w, e1, health, float64Ptr(50)) },
			check: func(t *testing.T) {
				v, ok := Get(w, e1, health)
				if !ok || *v != 50 {
					t.Fatalf("expected 50, got %v ok=%v", v, ok)
				}
				*v -= 10
				v, _ = Get(w, e1, health)
				if *v != 40 {
					t.Fatalf("expected mutation through pointer, got %v", *v)
				}
			},
			teardown: func() bool { return Remove(w, e1, health) },
		},
		{
			name: "label_both",
			setup: func() error {
				if err := Add(w, e1, label, stringPtr("walker")); err != nil {
					return err
				}
				return Add(w, e2, label, stringPtr("brute"))
			},
			check: func(t *testing.T) {
				if !Has(w, e1, label) || !Has(w, e2, label) {
					t.Fatalf("expected both entities to have a label")
				}
			},
			teardown: func() bool { return Remove(w, e1, label) },
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.setup(); err != nil {
				t.Fatalf("setup failed: %v", err)
			}
			tc.check(t)
			if !tc.teardown() {
				t.Fatalf("teardown failed for %s", tc.name)
			}
		})
	}
}

func TestAddErrors(t *testing.T) {
	w := NewWorld()
	kind := component.NewComponentKind[int]()
	e := CreateEntity(w)

	if err := Add(w, e, kind, nil); err != component.ErrNilComponent {
		t.Fatalf("expected ErrNilComponent, got %v", err)
	}
	if err := Add(w, e, component.ComponentKind[int]{}, intPtr(1)); err != component.ErrInvalidComponentKind {
		t.Fatalf("expected ErrInvalidComponentKind, got %v", err)
	}
	DestroyEntity(w, e)
	if err := Add(w, e, kind, intPtr(1)); err != component.ErrEntityNotAlive {
		t.Fatalf("expected ErrEntityNotAlive, got %v", err)
	}
}

func TestForEachVariants(t *testing.T) {
	tests := []struct {
		name string
		run  func(t *testing.T)
	}{
		{
			name: "single_kind",
			run: func(t *testing.T) {
				w := NewWorld()
				k := component.NewComponentKind[int]()
				e1 := CreateEntity(w)
				CreateEntity(w)
				e3 := CreateEntity(w)
				_ = Add(w, e1, k, intPtr(1))
				_ = Add(w, e3, k, intPtr(3))

				set := map[Entity]int{}
				ForEach(w, k, func(e Entity, v *int) { set[e] = *v })
				if len(set) != 2 || set[e1] != 1 || set[e3] != 3 {
					t.Fatalf("unexpected ForEach result %v", set)
				}
			},
		},
		{
			name: "intersection_of_three",
			run: func(t *testing.T) {
				w := NewWorld()
				ka := component.NewComponentKind[int]()
				kb := component.NewComponentKind[int]()
				kc := component.NewComponentKind[int]()
				e1 := CreateEntity(w)
				e2 := CreateEntity(w)
				_ = Add(w, e1, ka, intPtr(1))
				_ = Add(w, e2, ka, intPtr(2))
				_ = Add(w, e2, kb, intPtr(3))
				_ = Add(w, e2, kc, intPtr(4))

				var res []Entity
				ForEach3(w, ka, kb, kc, func(e Entity, _ *int, _ *int, _ *int) { res = append(res, e) })
				if len(res) != 1 || res[0] != e2 {
					t.Fatalf("expected only e2, got %v", res)
				}
			},
		},
		{
			name: "four_kinds_ignores_dead",
			run: func(t *testing.T) {
				w := NewWorld()
				ka := component.NewComponentKind[int]()
				kb := component.NewComponentKind[int]()
				kc := component.NewComponentKind[int]()
				kd := component.NewComponentKind[int]()
				e := CreateEntity(w)
				_ = Add(w, e, ka, intPtr(1))
				_ = Add(w, e, kb, intPtr(2))
				_ = Add(w, e, kc, intPtr(3))
				_ = Add(w, e, kd, intPtr(4))
				DestroyEntity(w, e)

				var res []Entity
				ForEach4(w, ka, kb, kc, kd, func(e Entity, _ *int, _ *int, _ *int, _ *int) { res = append(res, e) })
				if len(res) != 0 {
					t.Fatalf("expected empty result after destroy, got %v", res)
				}
			},
		},
		{
			name: "destroy_during_iteration",
			run: func(t *testing.T) {
				w := NewWorld()
				k := component.NewComponentKind[int]()
				for i := 0; i < 4; i++ {
					_ = Add(w, CreateEntity(w), k, intPtr(i))
				}
				visited := 0
				ForEach(w, k, func(e Entity, _ *int) {
					visited++
					DestroyEntity(w, e)
				})
				if visited != 4 || len(Entities(w)) != 0 {
					t.Fatalf("expected 4 visits and empty world, got %d visits and %d entities", visited, len(Entities(w)))
				}
			},
		},
		{
			name: "missing_store",
			run: func(t *testing.T) {
				w := NewWorld()
				ka := component.NewComponentKind[int]()
				kb := component.NewComponentKind[int]()
				_ = Add(w, CreateEntity(w), ka, intPtr(1))

				var res []Entity
				ForEach2(w, ka, kb, func(e Entity, _ *int, _ *int) { res = append(res, e) })
				if len(res) != 0 {
					t.Fatalf("expected empty when other store missing, got %v", res)
				}
				if _, ok := First(w, kb); ok {
					t.Fatalf("First should miss on an empty store")
				}
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, tc.run)
	}
}

func TestSchedulerRunsInOrder(t *testing.T) {
	w := NewWorld()
	var order []string
	s := NewScheduler(
		SystemFunc(func(w *World) { order = append(order, "director") }),
		nil,
		SystemFunc(func(w *World) { order = append(order, "behavior") }),
	)
	s.Add(SystemFunc(func(w *World) { order = append(order, "economy") }))
	s.Update(w, 0.25)
	s.Update(w, 0.25)

	if len(order) != 6 || order[0] != "director" || order[1] != "behavior" || order[2] != "economy" {
		t.Fatalf("unexpected order %v", order)
	}
	if w.DeltaTime() != 0.25 || w.Elapsed() != 0.5 {
		t.Fatalf("unexpected clock dt=%v elapsed=%v", w.DeltaTime(), w.Elapsed())
	}
}

func TestEventQueueDrain(t *testing.T) {
	w := NewWorld()
	w.Events().Push(Event{Type: EventEnemyAttack})
	w.Events().Push(Event{Type: EventEnemyDied})
	evs := w.Events().Drain()
	if len(evs) != 2 || evs[0].Type != EventEnemyAttack {
		t.Fatalf("unexpected drain %v", evs)
	}
	if w.Events().Drain() != nil {
		t.Fatalf("queue should be empty after drain")
	}
}

func intPtr(i int) *int {
	return &i
}

func stringPtr(s string) *string {
	return &s
}

func float64Ptr(f float64) *float64 {
	return &f
}
