package core

import (
	"slices"

	"github.com/kamstrup/intmap"
)

// Entity is a unique identifier for game objects. It carries no data; its
// components live in the ComponentStore.
type Entity uint64

// NoEntity is never issued by a registry.
const NoEntity Entity = 0

// Component is implemented by every component kind
type Component interface {
	Type() ComponentType
}

// ComponentType identifies the kind of a component
type ComponentType uint32

const (
	CompTransform ComponentType = iota
	CompPhysics
	CompHealth
	CompWeapon
	CompProp
	CompInput
	CompRenderable
	CompCamera
	CompParticle
	CompProjectile
	CompDestructible
	CompEnemy
	CompMax
)

var componentNames = [CompMax]string{
	CompTransform:    "transform",
	CompPhysics:      "physics",
	CompHealth:       "health",
	CompWeapon:       "weapon",
	CompProp:         "prop",
	CompInput:        "input",
	CompRenderable:   "renderable",
	CompCamera:       "camera",
	CompParticle:     "particle",
	CompProjectile:   "projectile",
	CompDestructible: "destructible",
	CompEnemy:        "enemy",
}

func (t ComponentType) String() string {
	if t < CompMax {
		return componentNames[t]
	}
	return "unknown"
}

// ---- Entity registry ----

// EntityRegistry issues entity identifiers and tracks the live set.
// Removing an entity purges its components from the attached store.
type EntityRegistry struct {
	next  Entity
	live  *intmap.Set[Entity]
	store *ComponentStore
}

// NewEntityRegistry creates a registry that cascades removals into store
func NewEntityRegistry(store *ComponentStore) *EntityRegistry {
	if store == nil {
		panic("core: entity registry requires a component store")
	}
	return &EntityRegistry{
		live:  intmap.NewSet[Entity](256),
		store: store,
	}
}

// Create allocates the next identifier and adds it to the live set
func (r *EntityRegistry) Create() Entity {
	r.next++
	r.live.Add(r.next)
	return r.next
}

// Remove deletes e from the live set together with all of its components.
// It reports whether e was live.
func (r *EntityRegistry) Remove(e Entity) bool {
	if !r.live.Del(e) {
		return false
	}
	r.store.RemoveAll(e)
	return true
}

// Get returns the entity with the given id if it is live
func (r *EntityRegistry) Get(id Entity) (Entity, bool) {
	if !r.live.Has(id) {
		return NoEntity, false
	}
	return id, true
}

func (r *EntityRegistry) Has(e Entity) bool { return r.live.Has(e) }

func (r *EntityRegistry) Len() int { return r.live.Len() }

// Entities returns a sorted snapshot of the live set
func (r *EntityRegistry) Entities() []Entity {
	out := make([]Entity, 0, r.live.Len())
	r.live.ForEach(func(e Entity) bool {
		out = append(out, e)
		return true
	})
	slices.Sort(out)
	return out
}

// Clear forgets every live entity and empties the store. Identifiers keep
// increasing so stale handles never alias new entities.
func (r *EntityRegistry) Clear() {
	r.live.Clear()
	r.store.Clear()
}

// ---- Component store ----

// ComponentStore owns every component instance, keyed by kind and entity.
// An entity holds at most one component of each kind.
type ComponentStore struct {
	byType [CompMax]*intmap.Map[Entity, Component]
}

func NewComponentStore() *ComponentStore {
	s := &ComponentStore{}
	for i := range s.byType {
		s.byType[i] = intmap.New[Entity, Component](64)
	}
	return s
}

// Add attaches c to e, replacing any component of the same kind
func (s *ComponentStore) Add(e Entity, c Component) {
	if c == nil || c.Type() >= CompMax {
		return
	}
	s.byType[c.Type()].Put(e, c)
}

// Get returns the component of kind t attached to e
func (s *ComponentStore) Get(e Entity, t ComponentType) (Component, bool) {
	if t >= CompMax {
		return nil, false
	}
	return s.byType[t].Get(e)
}

func (s *ComponentStore) Has(e Entity, t ComponentType) bool {
	return t < CompMax && s.byType[t].Has(e)
}

// Components returns a snapshot of every component of kind t, keyed by
// owning entity. The second result is false when no entity has one.
func (s *ComponentStore) Components(t ComponentType) (map[Entity]Component, bool) {
	if t >= CompMax || s.byType[t].Len() == 0 {
		return nil, false
	}
	out := make(map[Entity]Component, s.byType[t].Len())
	s.byType[t].ForEach(func(e Entity, c Component) bool {
		out[e] = c
		return true
	})
	return out, true
}

// Owners returns the sorted entities holding a component of kind t
func (s *ComponentStore) Owners(t ComponentType) []Entity {
	if t >= CompMax {
		return nil
	}
	out := make([]Entity, 0, s.byType[t].Len())
	s.byType[t].ForEach(func(e Entity, _ Component) bool {
		out = append(out, e)
		return true
	})
	slices.Sort(out)
	return out
}

func (s *ComponentStore) Len(t ComponentType) int {
	if t >= CompMax {
		return 0
	}
	return s.byType[t].Len()
}

// Remove detaches the component of kind t from e
func (s *ComponentStore) Remove(e Entity, t ComponentType) bool {
	if t >= CompMax {
		return false
	}
	return s.byType[t].Del(e)
}

// RemoveAll detaches every component of e
func (s *ComponentStore) RemoveAll(e Entity) {
	for _, m := range s.byType {
		m.Del(e)
	}
}

// RemoveType drops every component of kind t
func (s *ComponentStore) RemoveType(t ComponentType) {
	if t < CompMax {
		s.byType[t].Clear()
	}
}

func (s *ComponentStore) Clear() {
	for _, m := range s.byType {
		m.Clear()
	}
}

// Get returns e's component of type T
func Get[T Component](s *ComponentStore, e Entity) (T, bool) {
	var zero T
	c, ok := s.Get(e, zero.Type())
	if !ok {
		return zero, false
	}
	v, ok := c.(T)
	return v, ok
}

// Entry pairs a component with its owner
type Entry[T Component] struct {
	Entity Entity
	Value  T
}

// Entries snapshots every component of type T, ordered by entity.
// Systems iterate the snapshot so removals during the pass are safe.
func Entries[T Component](s *ComponentStore) []Entry[T] {
	var zero T
	owners := s.Owners(zero.Type())
	out := make([]Entry[T], 0, len(owners))
	for _, e := range owners {
		if v, ok := Get[T](s, e); ok {
			out = append(out, Entry[T]{Entity: e, Value: v})
		}
	}
	return out
}
