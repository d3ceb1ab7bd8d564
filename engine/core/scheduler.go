package core

import (
	"reflect"
	"time"
)

// UpdateContext is handed to every system once per frame
type UpdateContext struct {
	DeltaTime  float64 // seconds, never negative
	Entities   *EntityRegistry
	Components *ComponentStore
	Events     *EventBus
	Player     Entity    // NoEntity when the scene has no player
	Input      ActionSet // actions held this frame
	Frame      uint64
}

// HasPlayer reports whether a live player entity is designated
func (ctx *UpdateContext) HasPlayer() bool {
	return ctx.Player != NoEntity && ctx.Entities.Has(ctx.Player)
}

// Spawn creates an entity carrying comps
func (ctx *UpdateContext) Spawn(comps ...Component) Entity {
	e := ctx.Entities.Create()
	for _, c := range comps {
		ctx.Components.Add(e, c)
	}
	return e
}

// Destroy removes e and its components immediately
func (ctx *UpdateContext) Destroy(e Entity) bool {
	return ctx.Entities.Remove(e)
}

// Emit queues an event when the context has a bus
func (ctx *UpdateContext) Emit(t EventType, payload any) {
	if ctx.Events == nil {
		return
	}
	ctx.Events.Emit(Event{Type: t, Frame: ctx.Frame, Payload: payload})
}

// System processes components each frame
type System interface {
	Update(ctx *UpdateContext)
}

// Teardowner is implemented by systems that hold resources past a frame
type Teardowner interface {
	Teardown()
}

// SystemStats provides execution statistics for a single system
type SystemStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
}

type systemStats struct {
	name     string
	count    int64
	min, max time.Duration
	total    time.Duration
	last     time.Duration
}

// Scheduler runs systems in registration order
type Scheduler struct {
	systems []System
	stats   []*systemStats
}

func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// AddSystem appends s. Registration order is execution order.
func (s *Scheduler) AddSystem(sys System) {
	if sys == nil {
		return
	}
	t := reflect.TypeOf(sys)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	s.systems = append(s.systems, sys)
	s.stats = append(s.stats, &systemStats{name: t.Name(), min: time.Duration(1<<63 - 1)})
}

// Update runs every system once, in order
func (s *Scheduler) Update(ctx *UpdateContext) {
	for i, sys := range s.systems {
		start := time.Now()
		sys.Update(ctx)
		s.stats[i].record(time.Since(start))
	}
}

// Clear tears down systems that need it and empties the list
func (s *Scheduler) Clear() {
	for _, sys := range s.systems {
		if td, ok := sys.(Teardowner); ok {
			td.Teardown()
		}
	}
	s.systems = nil
	s.stats = nil
}

func (s *Scheduler) Len() int { return len(s.systems) }

// Systems returns the registered systems in execution order
func (s *Scheduler) Systems() []System {
	return append([]System(nil), s.systems...)
}

// Stats returns per-system timing
func (s *Scheduler) Stats() []SystemStats {
	out := make([]SystemStats, len(s.stats))
	for i, st := range s.stats {
		out[i] = SystemStats{
			Name:           st.name,
			ExecutionCount: st.count,
			MaxDuration:    st.max,
			LastDuration:   st.last,
		}
		if st.count > 0 {
			out[i].MinDuration = st.min
			out[i].AvgDuration = st.total / time.Duration(st.count)
		}
	}
	return out
}

func (st *systemStats) record(d time.Duration) {
	st.count++
	st.total += d
	st.last = d
	st.min = min(st.min, d)
	st.max = max(st.max, d)
}
