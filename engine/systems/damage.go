package systems

import (
	"github.com/1siamBot/dungeon-engine/engine/core"
	"github.com/1siamBot/dungeon-engine/engine/log"
)

// ApplyDamage hurts target and removes it at once when its health runs
// out. It reports whether the target was destroyed.
func ApplyDamage(ctx *core.UpdateContext, target, source core.Entity, damage int, l log.Log) bool {
	hp, ok := core.Get[*core.Health](ctx.Components, target)
	if !ok {
		return false
	}
	hp.TakeDamage(damage)
	ctx.Emit(core.EvtEntityDamaged, core.EntityDamaged{
		Target:    target,
		Source:    source,
		Damage:    damage,
		Remaining: hp.Current,
	})
	if !hp.IsDead() {
		return false
	}
	Destroy(ctx, target, l)
	return true
}

// Destroy removes e, announcing it with EvtEntityDestroyed
func Destroy(ctx *core.UpdateContext, e core.Entity, l log.Log) {
	payload := core.EntityDestroyed{Entity: e}
	payload.Position, _ = center(ctx, e)
	if d, ok := core.Get[*core.Destructible](ctx.Components, e); ok {
		payload.Destructible = d
	}
	if !ctx.Destroy(e) {
		return
	}
	ctx.Emit(core.EvtEntityDestroyed, payload)
	if l != nil {
		l.Debug("entity destroyed",
			log.Uint64("entity", uint64(e)),
			log.Bool("player", e == ctx.Player),
		)
	}
}

// center returns the middle of e's collision box, falling back to its position
func center(ctx *core.UpdateContext, e core.Entity) (core.Vec2, bool) {
	tr, ok := core.Get[*core.Transform](ctx.Components, e)
	if !ok {
		return core.Vec2{}, false
	}
	if phys, ok := core.Get[*core.Physics](ctx.Components, e); ok {
		return phys.Bounds(tr.Position).Center(), true
	}
	return tr.Position, true
}

// bounds returns e's world-space collision box, or an empty box at its position
func bounds(ctx *core.UpdateContext, e core.Entity) (core.Rect, bool) {
	tr, ok := core.Get[*core.Transform](ctx.Components, e)
	if !ok {
		return core.Rect{}, false
	}
	if phys, ok := core.Get[*core.Physics](ctx.Components, e); ok {
		return phys.Bounds(tr.Position), true
	}
	return core.Rect{X: tr.Position.X, Y: tr.Position.Y}, true
}
