package core

// World bundles the registry, store, scheduler and event bus of one scene
type World struct {
	Entities   *EntityRegistry
	Components *ComponentStore
	Scheduler  *Scheduler
	Events     *EventBus
	Player     Entity
	Source     ActionSource // polled once per tick; nil means nothing held
	Frame      uint64
}

func NewWorld() *World {
	store := NewComponentStore()
	return &World{
		Entities:   NewEntityRegistry(store),
		Components: store,
		Scheduler:  NewScheduler(),
		Events:     NewEventBus(),
	}
}

// Spawn creates an entity carrying comps
func (w *World) Spawn(comps ...Component) Entity {
	e := w.Entities.Create()
	for _, c := range comps {
		w.Components.Add(e, c)
	}
	return e
}

// Attach adds a component to a live entity
func (w *World) Attach(e Entity, c Component) {
	if w.Entities.Has(e) {
		w.Components.Add(e, c)
	}
}

// Destroy removes e and all of its components
func (w *World) Destroy(e Entity) bool {
	if e == w.Player {
		w.Player = NoEntity
	}
	return w.Entities.Remove(e)
}

func (w *World) AddSystem(s System) { w.Scheduler.AddSystem(s) }

// Context builds the update context for a frame of length dt
func (w *World) Context(dt float64) *UpdateContext {
	if dt < 0 {
		dt = 0
	}
	ctx := &UpdateContext{
		DeltaTime:  dt,
		Entities:   w.Entities,
		Components: w.Components,
		Events:     w.Events,
		Player:     w.Player,
		Frame:      w.Frame,
	}
	if w.Source != nil {
		ctx.Input = w.Source.Actions()
	}
	return ctx
}

// Tick runs all systems once and then dispatches the frame's events
func (w *World) Tick(dt float64) {
	w.Scheduler.Update(w.Context(dt))
	w.Events.Dispatch()
	if w.Player != NoEntity && !w.Entities.Has(w.Player) {
		w.Player = NoEntity
	}
	w.Frame++
}

// Clear tears down systems and drops every entity, component and listener
func (w *World) Clear() {
	w.Scheduler.Clear()
	w.Entities.Clear()
	w.Events.Reset()
	w.Player = NoEntity
}
