package systems

import (
	"github.com/1siamBot/dungeon-engine/engine/core"
	"github.com/1siamBot/dungeon-engine/engine/log"
)

// ProjectileSystem moves projectiles and handles impact. A projectile
// damages the first Health body it enters, stops at solid bodies and
// expires once it has flown its range.
type ProjectileSystem struct {
	Log log.Log
}

func NewProjectileSystem(l log.Log) *ProjectileSystem {
	return &ProjectileSystem{Log: log.OrNop(l)}
}

func (s *ProjectileSystem) Update(ctx *core.UpdateContext) {
	projectiles := core.Entries[*core.Projectile](ctx.Components)
	if len(projectiles) == 0 {
		return
	}
	targets := core.Entries[*core.Physics](ctx.Components)

	for _, entry := range projectiles {
		id, proj := entry.Entity, entry.Value
		tr, ok := core.Get[*core.Transform](ctx.Components, id)
		if !ok {
			ctx.Destroy(id)
			continue
		}
		tr.Position = tr.Position.Add(proj.Advance(ctx.DeltaTime))

		if s.impact(ctx, id, proj, tr.Position, targets) {
			ctx.Destroy(id)
			continue
		}
		if proj.Hit {
			ctx.Destroy(id)
		}
	}
}

func (s *ProjectileSystem) impact(ctx *core.UpdateContext, id core.Entity, proj *core.Projectile, at core.Vec2, targets []core.Entry[*core.Physics]) bool {
	for _, t := range targets {
		if t.Entity == proj.Source || !ctx.Entities.Has(t.Entity) || t.Value.Collision == core.CollisionNone {
			continue
		}
		box, ok := bounds(ctx, t.Entity)
		if !ok || !box.Contains(at) {
			continue
		}
		if ctx.Components.Has(t.Entity, core.CompHealth) {
			ApplyDamage(ctx, t.Entity, proj.Source, proj.Damage, s.Log)
			ctx.Emit(core.EvtProjectileHit, core.EntityDamaged{Target: t.Entity, Source: proj.Source, Damage: proj.Damage})
			return true
		}
		if t.Value.Collision == core.CollisionSolid {
			return true
		}
	}
	return false
}
