package ecs

// EventType names an outbound event emitted by systems during a tick.
type EventType string

const (
	EventEnemyAttack   EventType = "enemy_attack"
	EventPlayerDamaged EventType = "player_damaged"
	EventKnockback     EventType = "knockback"
	EventEnemyDied     EventType = "enemy_died"
)

// Event is a generic ECS event payload.
type Event struct {
	Type   EventType
	Entity Entity
	Data   any
}

// EventQueue is a simple FIFO queue drained once per tick.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

// Len returns the number of pending events.
func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}
