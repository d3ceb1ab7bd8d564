package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1siamBot/dungeon-engine/engine/core"
)

type recordingSystem struct {
	name string
	log  *[]string
}

func (s *recordingSystem) Update(ctx *core.UpdateContext) {
	*s.log = append(*s.log, s.name)
}

type closingSystem struct {
	recordingSystem
	closed int
}

func (s *closingSystem) Teardown() { s.closed++ }

func TestSchedulerRunsInRegistrationOrder(t *testing.T) {
	var log []string
	s := core.NewScheduler()
	for _, name := range []string{"movement", "collision", "combat", "interaction"} {
		s.AddSystem(&recordingSystem{name: name, log: &log})
	}

	s.Update(&core.UpdateContext{})
	s.Update(&core.UpdateContext{})

	assert.Equal(t, []string{
		"movement", "collision", "combat", "interaction",
		"movement", "collision", "combat", "interaction",
	}, log)

	stats := s.Stats()
	require.Len(t, stats, 4)
	assert.Equal(t, "recordingSystem", stats[0].Name)
	assert.EqualValues(t, 2, stats[0].ExecutionCount)
}

func TestSchedulerClearTearsDown(t *testing.T) {
	var log []string
	closer := &closingSystem{recordingSystem: recordingSystem{name: "enemy", log: &log}}
	s := core.NewScheduler()
	s.AddSystem(&recordingSystem{name: "movement", log: &log})
	s.AddSystem(closer)

	s.Clear()
	s.Update(&core.UpdateContext{})

	assert.Equal(t, 1, closer.closed)
	assert.Zero(t, s.Len())
	assert.Empty(t, log)
}

func TestWorldTickDispatchesAfterSystems(t *testing.T) {
	w := core.NewWorld()
	var order []string
	w.Events.On(core.EvtPropInteracted, func(e core.Event) {
		order = append(order, "event")
	})
	w.AddSystem(systemFunc(func(ctx *core.UpdateContext) {
		ctx.Emit(core.EvtPropInteracted, core.PropInteracted{})
		order = append(order, "system")
	}))

	w.Tick(0.016)

	assert.Equal(t, []string{"system", "event"}, order)
	assert.EqualValues(t, 1, w.Frame)
}

func TestWorldContext(t *testing.T) {
	w := core.NewWorld()
	w.Player = w.Spawn(core.NewTransform(0, 0))
	w.Source = core.ActionSourceFunc(func() core.ActionSet {
		return core.NewActionSet(core.ActionAttack)
	})

	ctx := w.Context(-1)

	assert.Zero(t, ctx.DeltaTime, "negative delta clamps to zero")
	assert.True(t, ctx.HasPlayer())
	assert.True(t, ctx.Input.Has(core.ActionAttack))

	w.Destroy(w.Player)
	assert.Equal(t, core.NoEntity, w.Player)
}

func TestWorldClear(t *testing.T) {
	w := core.NewWorld()
	closer := &closingSystem{recordingSystem: recordingSystem{log: new([]string)}}
	w.AddSystem(closer)
	w.Player = w.Spawn(core.NewTransform(0, 0), &core.Health{Current: 1, Max: 1})

	w.Clear()

	assert.Equal(t, 1, closer.closed)
	assert.Zero(t, w.Entities.Len())
	assert.Zero(t, w.Components.Len(core.CompHealth))
	assert.Equal(t, core.NoEntity, w.Player)
}

type systemFunc func(ctx *core.UpdateContext)

func (f systemFunc) Update(ctx *core.UpdateContext) { f(ctx) }
