package systems

import (
	"math"

	"github.com/1siamBot/dungeon-engine/engine/core"
)

// Resolution selects how a mover is separated from a solid body
type Resolution uint8

const (
	// ResolvePenetration pushes the mover out along the axis of least
	// overlap and zeroes only that velocity component.
	ResolvePenetration Resolution = iota
	// ResolveRollback undoes the whole frame's displacement and stops the mover.
	ResolveRollback
)

// ParseResolution maps a config name to a Resolution
func ParseResolution(name string) Resolution {
	if name == "rollback" {
		return ResolveRollback
	}
	return ResolvePenetration
}

func (r Resolution) String() string {
	if r == ResolveRollback {
		return "rollback"
	}
	return "penetration"
}

// CollisionSystem separates moving bodies from solid ones and slows bodies
// crossing semisolid terrain. Only the mover is corrected.
type CollisionSystem struct {
	Resolution Resolution
}

func NewCollisionSystem(r Resolution) *CollisionSystem {
	return &CollisionSystem{Resolution: r}
}

type body struct {
	entity core.Entity
	tr     *core.Transform
	phys   *core.Physics
}

func (s *CollisionSystem) Update(ctx *core.UpdateContext) {
	// rebuilt every frame; entities removed earlier must not linger
	bodies := make([]body, 0, ctx.Components.Len(core.CompPhysics))
	for _, entry := range core.Entries[*core.Physics](ctx.Components) {
		if entry.Value.Collision == core.CollisionNone {
			continue
		}
		tr, ok := core.Get[*core.Transform](ctx.Components, entry.Entity)
		if !ok {
			continue
		}
		bodies = append(bodies, body{entity: entry.Entity, tr: tr, phys: entry.Value})
	}

	for _, a := range bodies {
		if !a.phys.Moving() {
			continue
		}
		for _, b := range bodies {
			if a.entity == b.entity {
				continue
			}
			ra := a.phys.Bounds(a.tr.Position)
			rb := b.phys.Bounds(b.tr.Position)
			if !ra.Overlaps(rb) {
				continue
			}
			switch b.phys.Collision {
			case core.CollisionSemisolid:
				a.phys.Slow = true
			case core.CollisionSolid:
				s.resolve(ctx.DeltaTime, a, ra, rb)
			}
		}
	}
}

func (s *CollisionSystem) resolve(dt float64, a body, ra, rb core.Rect) {
	if s.Resolution == ResolveRollback {
		a.tr.Position = a.tr.Position.Sub(a.phys.Velocity.Scale(dt))
		a.phys.Velocity = core.Vec2{}
		return
	}

	dx, dy := ra.Overlap(rb)
	v := a.phys.Velocity
	alongX := dx < dy || (dx == dy && math.Abs(v.X) >= math.Abs(v.Y))
	ca, cb := ra.Center(), rb.Center()
	if alongX {
		a.tr.Position.X += pushSign(v.X, ca.X-cb.X) * dx
		a.phys.Velocity.X = 0
	} else {
		a.tr.Position.Y += pushSign(v.Y, ca.Y-cb.Y) * dy
		a.phys.Velocity.Y = 0
	}
}

// pushSign points against the velocity, or away from the other box when
// the mover is still on that axis.
func pushSign(vel, centerDelta float64) float64 {
	switch {
	case vel > 0:
		return -1
	case vel < 0:
		return 1
	case centerDelta > 0:
		return 1
	default:
		return -1
	}
}
