package scene_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/1siamBot/dungeon-engine/engine/config"
	"github.com/1siamBot/dungeon-engine/engine/core"
	"github.com/1siamBot/dungeon-engine/engine/log"
	"github.com/1siamBot/dungeon-engine/engine/scene"
)

type teardownSpy struct{ torn bool }

func (s *teardownSpy) Update(*core.UpdateContext) {}
func (s *teardownSpy) Teardown()                  { s.torn = true }

func TestManagerLoadAndUnload(t *testing.T) {
	m := scene.NewManager(nil, nil)
	spy := &teardownSpy{}
	var loaded []string

	err := m.Load(scene.New("first", func(w *core.World) error {
		w.AddSystem(spy)
		w.Spawn(core.NewTransform(0, 0))
		w.Events.On(core.EvtSceneLoaded, func(e core.Event) { loaded = append(loaded, e.Payload.(string)) })
		return nil
	}))
	require.NoError(t, err)
	require.NotNil(t, m.Active())
	assert.Equal(t, "first", m.Active().Name())

	m.Update(0.1)
	assert.Equal(t, []string{"first"}, loaded)
	assert.Equal(t, uint64(1), m.World().Frame)

	m.Unload()
	assert.True(t, spy.torn)
	assert.Nil(t, m.Active())
	assert.Nil(t, m.World())
	assert.NotPanics(t, func() { m.Update(0.1) })
}

func TestManagerKeepsPreviousSceneOnFailure(t *testing.T) {
	obs, logs := observer.New(zapcore.DebugLevel)
	m := scene.NewManager(nil, log.NewWithCore(obs))
	require.NoError(t, m.Load(scene.New("good", func(w *core.World) error {
		w.Spawn()
		return nil
	})))
	good := m.World()

	boom := errors.New("missing asset")
	err := m.Load(scene.New("bad", func(w *core.World) error {
		w.Spawn()
		return boom
	}))

	require.ErrorIs(t, err, boom)
	assert.Equal(t, "good", m.Active().Name())
	assert.Same(t, good, m.World())
	assert.Equal(t, 1, good.Entities.Len())

	failures := logs.FilterMessage("scene load failed").All()
	require.Len(t, failures, 1)
	assert.Equal(t, "bad", failures[0].ContextMap()["scene"])
}

func TestManagerReplacesScene(t *testing.T) {
	m := scene.NewManager(nil, nil)
	first := &teardownSpy{}
	require.NoError(t, m.Load(scene.New("a", func(w *core.World) error {
		w.AddSystem(first)
		return nil
	})))

	require.NoError(t, m.Load(scene.New("b", func(*core.World) error { return nil })))

	assert.True(t, first.torn)
	assert.Equal(t, "b", m.Active().Name())
}

func TestManagerRejectsNilScene(t *testing.T) {
	m := scene.NewManager(nil, nil)
	assert.ErrorIs(t, m.Load(nil), scene.ErrNilScene)
	assert.Nil(t, m.Active())
}

func TestManagerSetSource(t *testing.T) {
	m := scene.NewManager(nil, nil)
	require.NoError(t, m.Load(scene.New("a", func(*core.World) error { return nil })))
	src := core.ActionSourceFunc(func() core.ActionSet { return core.NewActionSet(core.ActionUp) })

	m.SetSource(src)

	assert.True(t, m.World().Context(0).Input.Has(core.ActionUp))
}

func held(actions ...core.Action) core.ActionSource {
	set := core.NewActionSet(actions...)
	return core.ActionSourceFunc(func() core.ActionSet { return set })
}

func loadGame(t *testing.T, src core.ActionSource) (*scene.Manager, *scene.GameScene) {
	t.Helper()
	gs := scene.NewGameScene(config.Default(), nil)
	gs.Seed = 7
	m := scene.NewManager(src, nil)
	require.NoError(t, m.Load(gs))
	return m, gs
}

func TestGameSceneBuild(t *testing.T) {
	m, gs := loadGame(t, nil)
	w := m.World()

	assert.Equal(t, "dungeon", gs.Name())
	assert.Equal(t, 9, w.Scheduler.Len())
	stats := w.Scheduler.Stats()
	assert.Equal(t, "InputSystem", stats[0].Name)
	assert.Equal(t, "CameraSystem", stats[8].Name)
	assert.Equal(t, gs.Spawned.Player, w.Player)
	assert.Len(t, gs.Spawned.Enemies, 1)
}

func TestGameScenePlayerWalks(t *testing.T) {
	m, gs := loadGame(t, held(core.ActionRight))

	m.Update(0.1)

	tr, ok := core.Get[*core.Transform](m.World().Components, gs.Spawned.Player)
	require.True(t, ok)
	assert.InDelta(t, 110, tr.Position.X, 1e-9)
	assert.Equal(t, 200.0, tr.Position.Y)
}

func TestGameSceneBreaksBox(t *testing.T) {
	m, gs := loadGame(t, held(core.ActionAttack))
	w := m.World()
	tr, _ := core.Get[*core.Transform](w.Components, gs.Spawned.Player)
	// next to the box at column 4
	tr.Position.X = 145
	boxes := w.Components.Owners(core.CompDestructible)
	require.Len(t, boxes, 1)

	for i := 0; i < 3; i++ {
		m.Update(1)
	}
	assert.False(t, w.Entities.Has(boxes[0]))

	m.Update(0.01)
	assert.Equal(t, 50, w.Components.Len(core.CompParticle))
}

func TestGameSceneBadLevel(t *testing.T) {
	s := config.Default()
	s.Level.Rows = []string{"###"}
	m := scene.NewManager(nil, nil)

	err := m.Load(scene.NewGameScene(s, nil))

	require.Error(t, err)
	assert.Nil(t, m.Active())
}

func TestGameSceneNeedsSettings(t *testing.T) {
	err := scene.NewManager(nil, nil).Load(&scene.GameScene{})
	assert.ErrorIs(t, err, scene.ErrNoSettings)
}
