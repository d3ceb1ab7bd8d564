package systems

import (
	"github.com/1siamBot/dungeon-engine/engine/core"
)

// DefaultSlowFactor scales speed for one frame after semisolid contact
const DefaultSlowFactor = 0.5

// MovementSystem turns held input into velocity and integrates positions
type MovementSystem struct {
	SlowFactor float64
}

func NewMovementSystem(slowFactor float64) *MovementSystem {
	return &MovementSystem{SlowFactor: slowFactor}
}

func (s *MovementSystem) Update(ctx *core.UpdateContext) {
	for _, entry := range core.Entries[*core.Physics](ctx.Components) {
		phys := entry.Value
		tr, ok := core.Get[*core.Transform](ctx.Components, entry.Entity)
		if !ok {
			continue
		}

		if in, ok := core.Get[*core.Input](ctx.Components, entry.Entity); ok {
			speed := phys.Speed
			if phys.Slow {
				speed *= s.SlowFactor
			}
			phys.Velocity = in.Held.Direction().Scale(speed)
		} else if phys.Slow {
			phys.Velocity = phys.Velocity.Scale(s.SlowFactor)
		}
		phys.Slow = false

		if !phys.Moving() {
			continue
		}
		tr.Position = tr.Position.Add(phys.Velocity.Scale(ctx.DeltaTime))
		tr.SetRotation(phys.Velocity.Angle())
	}
}
