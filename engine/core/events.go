package core

// Event represents a game event
type Event struct {
	Type    EventType
	Frame   uint64
	Payload any
}

type EventType uint16

const (
	EvtEntityDestroyed EventType = iota
	EvtEntityDamaged
	EvtPropInteracted
	EvtProjectileFired
	EvtProjectileHit
	EvtSceneLoaded
)

// EntityDestroyed is the payload of EvtEntityDestroyed
type EntityDestroyed struct {
	Entity       Entity
	Position     Vec2
	Destructible *Destructible // nil unless the entity was destructible
}

// EntityDamaged is the payload of EvtEntityDamaged
type EntityDamaged struct {
	Target, Source Entity
	Damage         int
	Remaining      int
}

// PropInteracted is the payload of EvtPropInteracted
type PropInteracted struct {
	Prop, Player Entity
}

// EventBus dispatches events to listeners. Emitted events are queued and
// delivered by Dispatch, after the frame's systems have run.
type EventBus struct {
	listeners map[EventType][]EventHandler
	queue     []Event
}

type EventHandler func(e Event)

func NewEventBus() *EventBus {
	return &EventBus{
		listeners: make(map[EventType][]EventHandler),
	}
}

// On registers a handler for an event type
func (eb *EventBus) On(t EventType, h EventHandler) {
	eb.listeners[t] = append(eb.listeners[t], h)
}

// Emit queues an event for dispatch
func (eb *EventBus) Emit(e Event) {
	eb.queue = append(eb.queue, e)
}

// Dispatch processes all queued events. Events emitted by handlers are
// delivered in the same call.
func (eb *EventBus) Dispatch() {
	for i := 0; i < len(eb.queue); i++ {
		e := eb.queue[i]
		for _, h := range eb.listeners[e.Type] {
			h(e)
		}
	}
	eb.queue = eb.queue[:0]
}

func (eb *EventBus) Pending() int { return len(eb.queue) }

// Reset drops queued events and every listener
func (eb *EventBus) Reset() {
	eb.queue = eb.queue[:0]
	clear(eb.listeners)
}
