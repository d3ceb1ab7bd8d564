package systems

import (
	"github.com/1siamBot/dungeon-engine/engine/core"
	"github.com/1siamBot/dungeon-engine/engine/log"
	"github.com/1siamBot/dungeon-engine/engine/pathfind"
)

// EnemySystem steers enemies toward the player along grid paths. Paths are
// recomputed no more often than each enemy's PathDelay; a failed search
// keeps the enemy on its previous path.
type EnemySystem struct {
	Paths *pathfind.PathFinder
	Log   log.Log
}

func NewEnemySystem(paths *pathfind.PathFinder, l log.Log) *EnemySystem {
	return &EnemySystem{Paths: paths, Log: log.OrNop(l)}
}

type agent struct {
	entity core.Entity
	enemy  *core.Enemy
	phys   *core.Physics
	box    core.Rect
}

func (s *EnemySystem) Update(ctx *core.UpdateContext) {
	enemies := core.Entries[*core.Enemy](ctx.Components)
	if len(enemies) == 0 {
		return
	}

	agents := make([]agent, 0, len(enemies))
	for _, entry := range enemies {
		phys, ok := core.Get[*core.Physics](ctx.Components, entry.Entity)
		if !ok {
			continue
		}
		box, ok := bounds(ctx, entry.Entity)
		if !ok {
			continue
		}
		entry.Value.Cooldown -= min(entry.Value.Cooldown, ctx.DeltaTime)
		agents = append(agents, agent{entity: entry.Entity, enemy: entry.Value, phys: phys, box: box})
	}

	if !ctx.HasPlayer() {
		for _, a := range agents {
			a.enemy.Chasing = false
			a.phys.Velocity = core.Vec2{}
		}
		return
	}
	playerBox, ok := bounds(ctx, ctx.Player)
	if !ok {
		return
	}
	goal := playerBox.Center()

	var obstacles []obstacle
	for _, a := range agents {
		pos := a.box.Center()
		if pos.DistanceTo(goal) > a.enemy.AggroRange {
			a.enemy.Chasing = false
			a.phys.Velocity = core.Vec2{}
			continue
		}
		a.enemy.Chasing = true

		if ctx.DeltaTime > 0 && s.Paths.NeedsPathUpdate(a.enemy.Agent, a.enemy.PathDelay) {
			if obstacles == nil {
				obstacles = solidObstacles(ctx)
			}
			start := pathfind.Point{X: pos.X, Y: pos.Y}
			end := pathfind.Point{X: goal.X, Y: goal.Y}
			if !s.Paths.UpdatePath(a.enemy.Agent, start, end, without(obstacles, a.entity, ctx.Player)) {
				s.Log.Debug("no path to player", log.String("agent", a.enemy.Agent))
			}
		}

		target := s.nextWaypoint(a, pos, goal)
		v := pathfind.Steer(
			pathfind.Point{X: pos.X, Y: pos.Y},
			target,
			a.enemy.Speed,
			a.box.W/2,
			neighbours(agents, a.entity),
		)
		a.phys.Velocity = core.Vec2{X: v.VX, Y: v.VY}

		s.contact(ctx, a, playerBox)
	}
}

// nextWaypoint advances past waypoints inside the threshold and falls back
// to the player once the path is used up
func (s *EnemySystem) nextWaypoint(a agent, pos, goal core.Vec2) pathfind.Point {
	for {
		wp, ok := s.Paths.NextWaypoint(a.enemy.Agent)
		if !ok {
			return pathfind.Point{X: goal.X, Y: goal.Y}
		}
		if pos.DistanceTo(core.Vec2{X: wp.X, Y: wp.Y}) >= a.enemy.WaypointThreshold {
			return wp
		}
		s.Paths.AdvanceWaypoint(a.enemy.Agent)
	}
}

func (s *EnemySystem) contact(ctx *core.UpdateContext, a agent, player core.Rect) {
	if a.enemy.Damage <= 0 || a.enemy.Cooldown > 0 {
		return
	}
	if !a.box.Expand(1).Overlaps(player) {
		return
	}
	a.enemy.Cooldown = a.enemy.AttackSpeed
	ApplyDamage(ctx, ctx.Player, a.entity, a.enemy.Damage, s.Log)
}

// Teardown drops every tracked path
func (s *EnemySystem) Teardown() {
	s.Paths.Reset()
}

type obstacle struct {
	entity core.Entity
	box    pathfind.Obstacle
}

func solidObstacles(ctx *core.UpdateContext) []obstacle {
	out := []obstacle{}
	for _, entry := range core.Entries[*core.Physics](ctx.Components) {
		if entry.Value.Collision != core.CollisionSolid {
			continue
		}
		box, ok := bounds(ctx, entry.Entity)
		if !ok {
			continue
		}
		out = append(out, obstacle{
			entity: entry.Entity,
			box:    pathfind.Obstacle{X: box.X, Y: box.Y, Width: box.W, Height: box.H},
		})
	}
	return out
}

func without(obstacles []obstacle, skip ...core.Entity) []pathfind.Obstacle {
	out := make([]pathfind.Obstacle, 0, len(obstacles))
next:
	for _, o := range obstacles {
		for _, e := range skip {
			if o.entity == e {
				continue next
			}
		}
		out = append(out, o.box)
	}
	return out
}

func neighbours(agents []agent, self core.Entity) []pathfind.Body {
	var out []pathfind.Body
	for _, a := range agents {
		if a.entity == self {
			continue
		}
		c := a.box.Center()
		out = append(out, pathfind.Body{Pos: pathfind.Point{X: c.X, Y: c.Y}, Radius: a.box.W / 2})
	}
	return out
}
