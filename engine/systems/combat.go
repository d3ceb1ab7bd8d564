package systems

import (
	"math"

	"github.com/1siamBot/dungeon-engine/engine/core"
	"github.com/1siamBot/dungeon-engine/engine/log"
)

// DefaultMeleeReach is the proximity threshold of melee strikes in pixels
const DefaultMeleeReach = 10

// CombatSystem fires every ready weapon while attack is held. Melee
// weapons strike Health entities in reach; ranged weapons spawn projectiles.
// Cooldowns tick every frame whether or not a weapon fired.
type CombatSystem struct {
	Reach float64
	// Symmetric measures reach as the gap between collision boxes. When
	// false a target is in reach if wielder minus target position is
	// below Reach on both axes, a one-sided comparison.
	Symmetric       bool
	ProjectileSpeed float64
	Log             log.Log
}

func NewCombatSystem(reach float64, symmetric bool, projectileSpeed float64, l log.Log) *CombatSystem {
	return &CombatSystem{
		Reach:           reach,
		Symmetric:       symmetric,
		ProjectileSpeed: projectileSpeed,
		Log:             log.OrNop(l),
	}
}

func (s *CombatSystem) Update(ctx *core.UpdateContext) {
	attacking := ctx.Input.Has(core.ActionAttack)
	for _, entry := range core.Entries[*core.Weapon](ctx.Components) {
		wep := entry.Value
		if attacking && wep.CanAttack() && ctx.Entities.Has(entry.Entity) {
			wep.Attack()
			if wep.IsRanged() {
				s.fire(ctx, entry.Entity, wep)
			} else {
				s.strike(ctx, entry.Entity, wep)
			}
		}
		wep.Update(ctx.DeltaTime)
	}
}

func (s *CombatSystem) strike(ctx *core.UpdateContext, wielder core.Entity, wep *core.Weapon) {
	for _, target := range core.Entries[*core.Health](ctx.Components) {
		if target.Entity == wielder || !ctx.Entities.Has(target.Entity) {
			continue
		}
		if !s.inReach(ctx, wielder, target.Entity) {
			continue
		}
		ApplyDamage(ctx, target.Entity, wielder, wep.Damage, s.Log)
	}
}

func (s *CombatSystem) inReach(ctx *core.UpdateContext, wielder, target core.Entity) bool {
	if s.Symmetric {
		wb, ok := bounds(ctx, wielder)
		if !ok {
			return false
		}
		tb, ok := bounds(ctx, target)
		if !ok {
			return false
		}
		// boxes are closed here so touching bodies count as adjacent
		grown := wb.Expand(s.Reach)
		return grown.X <= tb.X+tb.W && grown.X+grown.W >= tb.X &&
			grown.Y <= tb.Y+tb.H && grown.Y+grown.H >= tb.Y
	}

	wt, ok := core.Get[*core.Transform](ctx.Components, wielder)
	if !ok {
		return false
	}
	tt, ok := core.Get[*core.Transform](ctx.Components, target)
	if !ok {
		return false
	}
	return wt.Position.X-tt.Position.X < s.Reach && wt.Position.Y-tt.Position.Y < s.Reach
}

func (s *CombatSystem) fire(ctx *core.UpdateContext, wielder core.Entity, wep *core.Weapon) {
	origin, ok := center(ctx, wielder)
	if !ok {
		return
	}
	facing := 0.0
	if tr, ok := core.Get[*core.Transform](ctx.Components, wielder); ok {
		facing = tr.Rotation() * math.Pi / 180
	}
	color := "orange"
	if wep.IsMagic() {
		color = "mediumpurple"
	}
	p := ctx.Spawn(
		core.NewTransform(origin.X, origin.Y),
		&core.Projectile{
			Source:    wielder,
			Direction: core.Vec2{X: math.Cos(facing), Y: math.Sin(facing)},
			Speed:     s.ProjectileSpeed,
			Range:     wep.Range,
			Damage:    wep.Damage,
		},
		&core.Renderable{Shape: core.ShapeCircle, Width: 8, Height: 8, Color: color, Z: 2},
	)
	ctx.Emit(core.EvtProjectileFired, p)
}
