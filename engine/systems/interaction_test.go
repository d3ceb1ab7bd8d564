package systems_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/1siamBot/dungeon-engine/engine/core"
	"github.com/1siamBot/dungeon-engine/engine/systems"
)

type interactRig struct {
	w     *core.World
	held  bool
	fired int
	prop  *core.Prop
}

func newInteractRig(t *testing.T, propX float64) *interactRig {
	t.Helper()
	r := &interactRig{w: core.NewWorld()}
	r.w.Source = core.ActionSourceFunc(func() core.ActionSet {
		if r.held {
			return core.NewActionSet(core.ActionInteract)
		}
		return 0
	})
	r.w.Player = body(t, r.w, 0, 0, 50, 50, core.CollisionSolid, &core.Input{})
	r.prop = &core.Prop{OnInteract: func(*core.UpdateContext, core.Entity) { r.fired++ }}
	body(t, r.w, propX, 0, 50, 50, core.CollisionSolid, r.prop)
	r.w.AddSystem(&systems.InputSystem{})
	r.w.AddSystem(systems.NewInteractionSystem(systems.DefaultInteractionDistance, nil))
	return r
}

func TestInteractionFiresOncePerPress(t *testing.T) {
	r := newInteractRig(t, 60)

	r.held = true
	for i := 0; i < 10; i++ {
		r.w.Tick(1.0 / 60)
	}
	assert.Equal(t, 1, r.fired, "holding the key fires once")
	assert.True(t, r.prop.Fired)

	r.held = false
	r.w.Tick(1.0 / 60)
	assert.False(t, r.prop.Fired)

	r.held = true
	r.w.Tick(1.0 / 60)
	assert.Equal(t, 2, r.fired, "release then press fires again")
}

func TestInteractionOutOfReach(t *testing.T) {
	r := newInteractRig(t, 200)
	var events int
	r.w.Events.On(core.EvtPropInteracted, func(core.Event) { events++ })

	r.held = true
	r.w.Tick(1.0 / 60)

	assert.Equal(t, 0, r.fired)
	assert.Equal(t, 0, events)
	assert.False(t, r.prop.InReach)
}

func TestInteractionEmitsEvent(t *testing.T) {
	r := newInteractRig(t, 60)
	var got []core.PropInteracted
	r.w.Events.On(core.EvtPropInteracted, func(e core.Event) {
		got = append(got, e.Payload.(core.PropInteracted))
	})

	r.held = true
	r.w.Tick(1.0 / 60)

	assert.True(t, r.prop.InReach)
	if assert.Len(t, got, 1) {
		assert.Equal(t, r.w.Player, got[0].Player)
	}
}

func TestInteractionWithoutPlayer(t *testing.T) {
	r := newInteractRig(t, 60)
	r.w.Player = core.NoEntity

	r.held = true
	assert.NotPanics(t, func() { r.w.Tick(1.0 / 60) })
	assert.Equal(t, 0, r.fired)
}

func TestHealingPropCallback(t *testing.T) {
	r := newInteractRig(t, 60)
	hp := &core.Health{Current: 40, Max: 100}
	r.w.Attach(r.w.Player, hp)
	r.prop.OnInteract = func(ctx *core.UpdateContext, _ core.Entity) {
		if h, ok := core.Get[*core.Health](ctx.Components, ctx.Player); ok {
			h.Heal(10)
		}
	}

	r.held = true
	r.w.Tick(1.0 / 60)
	r.w.Tick(1.0 / 60)

	assert.Equal(t, 50, hp.Current)
}
