package systems_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1siamBot/dungeon-engine/engine/core"
	"github.com/1siamBot/dungeon-engine/engine/systems"
)

func shoot(w *core.World, source core.Entity, rng float64) core.Entity {
	return w.Spawn(core.NewTransform(0, 0), &core.Projectile{
		Source:    source,
		Direction: core.Vec2{X: 1},
		Speed:     100,
		Range:     rng,
		Damage:    7,
	})
}

func TestProjectileHitsHealthBody(t *testing.T) {
	w := core.NewWorld()
	w.AddSystem(systems.NewProjectileSystem(nil))
	archer := body(t, w, -5, -5, 10, 10, core.CollisionSolid)
	target := body(t, w, 15, -5, 10, 10, core.CollisionSolid, &core.Health{Current: 30, Max: 30})
	arrow := shoot(w, archer, 1000)
	var hits int
	w.Events.On(core.EvtProjectileHit, func(core.Event) { hits++ })

	w.Tick(0.2)

	hp, _ := core.Get[*core.Health](w.Components, target)
	assert.Equal(t, 23, hp.Current)
	assert.False(t, w.Entities.Has(arrow))
	assert.Equal(t, 1, hits)
}

func TestProjectileIgnoresItsSource(t *testing.T) {
	w := core.NewWorld()
	w.AddSystem(systems.NewProjectileSystem(nil))
	archer := body(t, w, -50, -50, 100, 100, core.CollisionSolid, &core.Health{Current: 30, Max: 30})
	arrow := shoot(w, archer, 1000)

	w.Tick(0.1)

	hp, _ := core.Get[*core.Health](w.Components, archer)
	assert.Equal(t, 30, hp.Current)
	assert.True(t, w.Entities.Has(arrow))
	assert.Equal(t, core.Vec2{X: 10}, transform(t, w, arrow).Position)
}

func TestProjectileStopsAtSolidBody(t *testing.T) {
	w := core.NewWorld()
	w.AddSystem(systems.NewProjectileSystem(nil))
	wall := body(t, w, 15, -5, 10, 10, core.CollisionSolid)
	arrow := shoot(w, core.NoEntity, 1000)

	w.Tick(0.2)

	assert.False(t, w.Entities.Has(arrow))
	assert.True(t, w.Entities.Has(wall))
}

func TestProjectilePassesSemisolid(t *testing.T) {
	w := core.NewWorld()
	w.AddSystem(systems.NewProjectileSystem(nil))
	body(t, w, 15, -5, 10, 10, core.CollisionSemisolid)
	arrow := shoot(w, core.NoEntity, 1000)

	w.Tick(0.2)

	require.True(t, w.Entities.Has(arrow))
}

func TestProjectileExpiresAtRange(t *testing.T) {
	w := core.NewWorld()
	w.AddSystem(systems.NewProjectileSystem(nil))
	arrow := shoot(w, core.NoEntity, 30)

	w.Tick(0.2)
	require.True(t, w.Entities.Has(arrow))

	w.Tick(0.2)
	assert.False(t, w.Entities.Has(arrow))
}
