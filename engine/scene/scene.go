package scene

import (
	"errors"
	"fmt"

	"github.com/1siamBot/dungeon-engine/engine/core"
	"github.com/1siamBot/dungeon-engine/engine/log"
)

// Scene populates a fresh world with entities and systems
type Scene interface {
	Name() string
	Build(w *core.World) error
}

type funcScene struct {
	name  string
	build func(w *core.World) error
}

func (s funcScene) Name() string              { return s.name }
func (s funcScene) Build(w *core.World) error { return s.build(w) }

// New adapts a build function into a Scene
func New(name string, build func(w *core.World) error) Scene {
	return funcScene{name: name, build: build}
}

var (
	ErrNilScene   = errors.New("nil scene")
	ErrNoSettings = errors.New("game scene has no settings")
)

// Manager owns the active scene and its world. A scene that fails to load
// leaves the previous one running.
type Manager struct {
	log    log.Log
	source core.ActionSource
	active Scene
	world  *core.World
}

// NewManager returns a manager whose worlds poll source for input
func NewManager(source core.ActionSource, l log.Log) *Manager {
	return &Manager{log: log.OrNop(l), source: source}
}

// Load builds s into a new world and makes it active
func (m *Manager) Load(s Scene) error {
	if s == nil {
		m.log.Error("scene load failed", log.Error(ErrNilScene))
		return ErrNilScene
	}

	w := core.NewWorld()
	w.Source = m.source
	if err := s.Build(w); err != nil {
		w.Clear()
		m.log.Error("scene load failed",
			log.String("scene", s.Name()),
			log.Error(err),
		)
		return fmt.Errorf("load scene %s: %w", s.Name(), err)
	}

	if m.active != nil {
		m.Unload()
	}
	m.active, m.world = s, w
	w.Events.Emit(core.Event{Type: core.EvtSceneLoaded, Payload: s.Name()})
	m.log.Info("scene loaded",
		log.String("scene", s.Name()),
		log.Int("entities", w.Entities.Len()),
		log.Int("systems", w.Scheduler.Len()),
	)
	return nil
}

// Update ticks the active scene; without one it does nothing
func (m *Manager) Update(dt float64) {
	if m.world == nil {
		return
	}
	m.world.Tick(dt)
}

// Unload tears down the active scene's systems and drops its entities
func (m *Manager) Unload() {
	if m.world == nil {
		return
	}
	name := m.active.Name()
	m.world.Clear()
	m.active, m.world = nil, nil
	m.log.Info("scene unloaded", log.String("scene", name))
}

// Active returns the running scene, nil when none is loaded
func (m *Manager) Active() Scene { return m.active }

// World returns the active scene's world, nil when none is loaded
func (m *Manager) World() *core.World { return m.world }

// SetSource changes the input source of the active and future worlds
func (m *Manager) SetSource(src core.ActionSource) {
	m.source = src
	if m.world != nil {
		m.world.Source = src
	}
}
