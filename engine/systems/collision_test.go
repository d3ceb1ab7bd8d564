package systems_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/1siamBot/dungeon-engine/engine/core"
	"github.com/1siamBot/dungeon-engine/engine/systems"
)

func TestCollisionPushesMoverOut(t *testing.T) {
	w := core.NewWorld()
	a := body(t, w, 0, 0, 10, 10, core.CollisionSolid)
	b := body(t, w, 5, 0, 10, 10, core.CollisionSolid)
	physics(t, w, a).Velocity = core.Vec2{X: 5}

	systems.NewCollisionSystem(systems.ResolvePenetration).Update(w.Context(1))

	ra := physics(t, w, a).Bounds(transform(t, w, a).Position)
	rb := physics(t, w, b).Bounds(transform(t, w, b).Position)
	assert.False(t, ra.Overlaps(rb))
	assert.Equal(t, 0.0, physics(t, w, a).Velocity.X)
	assert.Equal(t, core.Vec2{X: 5}, transform(t, w, b).Position, "the obstacle never moves")
}

func TestCollisionResolvesAlongSmallerOverlap(t *testing.T) {
	tests := []struct {
		name    string
		bx, by  float64
		wantPos core.Vec2
		wantVel core.Vec2
	}{
		{
			// overlap 2 on x, 6 on y
			name:    "x axis",
			bx:      8,
			by:      4,
			wantPos: core.Vec2{X: -2, Y: 0},
			wantVel: core.Vec2{X: 0, Y: 3},
		},
		{
			// overlap 7 on x, 1 on y
			name:    "y axis",
			bx:      3,
			by:      9,
			wantPos: core.Vec2{X: 0, Y: -1},
			wantVel: core.Vec2{X: 3, Y: 0},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := core.NewWorld()
			a := body(t, w, 0, 0, 10, 10, core.CollisionSolid)
			body(t, w, tt.bx, tt.by, 10, 10, core.CollisionSolid)
			physics(t, w, a).Velocity = core.Vec2{X: 3, Y: 3}

			systems.NewCollisionSystem(systems.ResolvePenetration).Update(w.Context(0.1))

			assert.Equal(t, tt.wantPos, transform(t, w, a).Position)
			assert.Equal(t, tt.wantVel, physics(t, w, a).Velocity)
		})
	}
}

func TestCollisionSlidesAlongWall(t *testing.T) {
	w := core.NewWorld()
	a := body(t, w, 0, 0, 10, 10, core.CollisionSolid)
	// wall below the mover, overlapping by 2
	body(t, w, -50, 8, 100, 10, core.CollisionSolid)
	physics(t, w, a).Velocity = core.Vec2{X: 4, Y: 4}

	systems.NewCollisionSystem(systems.ResolvePenetration).Update(w.Context(0.5))

	assert.Equal(t, core.Vec2{X: 0, Y: -2}, transform(t, w, a).Position)
	assert.Equal(t, core.Vec2{X: 4, Y: 0}, physics(t, w, a).Velocity, "horizontal motion survives")
}

func TestCollisionRollback(t *testing.T) {
	w := core.NewWorld()
	a := body(t, w, 0, 0, 10, 10, core.CollisionSolid)
	body(t, w, 5, 0, 10, 10, core.CollisionSolid)
	physics(t, w, a).Velocity = core.Vec2{X: 8, Y: 2}

	systems.NewCollisionSystem(systems.ResolveRollback).Update(w.Context(0.5))

	assert.Equal(t, core.Vec2{X: -4, Y: -1}, transform(t, w, a).Position)
	assert.Equal(t, core.Vec2{}, physics(t, w, a).Velocity)
}

func TestCollisionSemisolidSlows(t *testing.T) {
	w := core.NewWorld()
	a := body(t, w, 0, 0, 10, 10, core.CollisionSolid)
	body(t, w, 5, 5, 50, 50, core.CollisionSemisolid)
	physics(t, w, a).Velocity = core.Vec2{X: 1}

	systems.NewCollisionSystem(systems.ResolvePenetration).Update(w.Context(0.1))

	assert.True(t, physics(t, w, a).Slow)
	assert.Equal(t, core.Vec2{}, transform(t, w, a).Position, "semisolid never pushes")
}

func TestCollisionIgnoresStillAndNoneBodies(t *testing.T) {
	w := core.NewWorld()
	still := body(t, w, 0, 0, 10, 10, core.CollisionSolid)
	ghost := body(t, w, 2, 2, 10, 10, core.CollisionNone)
	physics(t, w, ghost).Velocity = core.Vec2{X: 5}
	body(t, w, 4, 0, 10, 10, core.CollisionSolid)

	systems.NewCollisionSystem(systems.ResolvePenetration).Update(w.Context(0.1))

	assert.Equal(t, core.Vec2{}, transform(t, w, still).Position)
	assert.Equal(t, core.Vec2{X: 2, Y: 2}, transform(t, w, ghost).Position)
	assert.Equal(t, core.Vec2{X: 5}, physics(t, w, ghost).Velocity)
}

func TestCollisionSkipsBodiesWithoutTransform(t *testing.T) {
	w := core.NewWorld()
	a := body(t, w, 0, 0, 10, 10, core.CollisionSolid)
	phys, _ := core.NewPhysics(0, core.CollisionBox{Width: 100, Height: 100}, core.CollisionSolid)
	w.Spawn(phys)
	physics(t, w, a).Velocity = core.Vec2{X: 1}

	assert.NotPanics(t, func() {
		systems.NewCollisionSystem(systems.ResolvePenetration).Update(w.Context(0.1))
	})
	assert.Equal(t, core.Vec2{X: 1}, physics(t, w, a).Velocity)
}
