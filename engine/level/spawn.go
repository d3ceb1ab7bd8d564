package level

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/1siamBot/dungeon-engine/engine/config"
	"github.com/1siamBot/dungeon-engine/engine/core"
	"github.com/1siamBot/dungeon-engine/engine/log"
	"github.com/1siamBot/dungeon-engine/engine/systems"
)

const (
	PropEffect             = 10
	BoxHealth              = 30
	DefaultCameraSmoothing = 5.0
)

// Tile colors
const (
	ColorWall   = "#555"
	ColorMud    = "#050"
	ColorHeal   = "#ff0"
	ColorHazard = "#f00"
	ColorBox    = "saddlebrown"
	ColorEnemy  = "crimson"
	ColorPlayer = "royalblue"
)

// Z order, back to front
const (
	ZTerrain = iota
	ZProp
	ZActor
)

// Spawned lists the notable entities created by Spawn
type Spawned struct {
	Player  core.Entity
	Camera  core.Entity
	Enemies []core.Entity
}

// Spawn creates one entity per non-floor tile plus the player and its
// camera, and designates the player on w
func (l *Layout) Spawn(w *core.World, s *config.Settings, lg log.Log) (Spawned, error) {
	var out Spawned
	lg = log.OrNop(lg)

	for y := 0; y < l.Height; y++ {
		for x := 0; x < l.Width; x++ {
			c := Cell{x, y}
			var err error
			switch l.At(x, y) {
			case TileWall:
				err = l.terrain(w, c, core.CollisionSolid, ColorWall, ZProp)
			case TileMud:
				err = l.terrain(w, c, core.CollisionSemisolid, ColorMud, ZTerrain)
			case TileHeal:
				err = l.prop(w, c, ColorHeal, heal(PropEffect))
			case TileHazard:
				err = l.prop(w, c, ColorHazard, hurt(PropEffect, lg))
			case TileBox:
				err = l.box(w, c)
			case TileEnemy:
				var e core.Entity
				e, err = l.enemy(w, c, s.Enemy, s.Pathfinding)
				out.Enemies = append(out.Enemies, e)
			}
			if err != nil {
				return Spawned{}, fmt.Errorf("spawn %s at %d,%d: %w", l.At(x, y), x, y, err)
			}
		}
	}

	player, err := l.player(w, s.Player, s.Movement.Speed)
	if err != nil {
		return Spawned{}, fmt.Errorf("spawn player: %w", err)
	}
	out.Player = player
	w.Player = player

	bounds := l.Bounds()
	center := l.Origin(l.Start).Add(core.Vec2{X: l.TileSize / 2, Y: l.TileSize / 2})
	out.Camera = w.Spawn(
		core.NewTransform(center.X, center.Y),
		&core.Camera{
			Target:    player,
			Zoom:      1,
			Smoothing: DefaultCameraSmoothing,
			Viewport:  core.Vec2{X: float64(s.Window.Width), Y: float64(s.Window.Height)},
			Bounds:    &bounds,
		},
	)

	lg.Info("level spawned",
		log.String("level", l.Name),
		log.Int("entities", w.Entities.Len()),
		log.Int("enemies", len(out.Enemies)),
	)
	return out, nil
}

func (l *Layout) tileBody(c Cell, flag core.CollisionFlag) (*core.Transform, *core.Physics, error) {
	o := l.Origin(c)
	phys, err := core.NewPhysics(0, core.CollisionBox{Width: l.TileSize, Height: l.TileSize}, flag)
	if err != nil {
		return nil, nil, err
	}
	return core.NewTransform(o.X, o.Y), phys, nil
}

func (l *Layout) tileShape(color string, z int) *core.Renderable {
	return &core.Renderable{Shape: core.ShapeRect, Width: l.TileSize, Height: l.TileSize, Color: color, Z: z}
}

func (l *Layout) terrain(w *core.World, c Cell, flag core.CollisionFlag, color string, z int) error {
	tr, phys, err := l.tileBody(c, flag)
	if err != nil {
		return err
	}
	w.Spawn(tr, phys, l.tileShape(color, z))
	return nil
}

func (l *Layout) prop(w *core.World, c Cell, color string, action core.PropAction) error {
	tr, phys, err := l.tileBody(c, core.CollisionSolid)
	if err != nil {
		return err
	}
	w.Spawn(tr, phys, l.tileShape(color, ZProp), &core.Prop{OnInteract: action})
	return nil
}

func (l *Layout) box(w *core.World, c Cell) error {
	tr, phys, err := l.tileBody(c, core.CollisionSolid)
	if err != nil {
		return err
	}
	hp, err := core.NewHealth(BoxHealth, BoxHealth)
	if err != nil {
		return err
	}
	w.Spawn(tr, phys, hp, l.tileShape(ColorBox, ZProp), &core.Destructible{Particles: systems.DefaultBurstSize})
	return nil
}

func (l *Layout) enemy(w *core.World, c Cell, cfg config.Enemy, pf config.Pathfinding) (core.Entity, error) {
	size := cfg.Size
	if size <= 0 || size > l.TileSize {
		size = l.TileSize
	}
	o := l.Origin(c).Add(core.Vec2{X: (l.TileSize - size) / 2, Y: (l.TileSize - size) / 2})
	phys, err := core.NewPhysics(cfg.Speed, core.CollisionBox{Width: size, Height: size}, core.CollisionSolid)
	if err != nil {
		return core.NoEntity, err
	}
	hp, err := core.NewHealth(cfg.Health, cfg.Health)
	if err != nil {
		return core.NoEntity, err
	}
	return w.Spawn(
		core.NewTransform(o.X, o.Y),
		phys,
		hp,
		&core.Enemy{
			Agent:             uuid.NewString(),
			Speed:             cfg.Speed,
			AggroRange:        cfg.AggroRange,
			PathDelay:         pf.UpdateDelay,
			WaypointThreshold: cfg.WaypointThreshold,
			Damage:            cfg.Damage,
			AttackSpeed:       cfg.AttackSpeed,
		},
		&core.Renderable{Shape: core.ShapeCircle, Width: size, Height: size, Color: ColorEnemy, Z: ZActor},
	), nil
}

func (l *Layout) player(w *core.World, cfg config.Player, speed float64) (core.Entity, error) {
	size := cfg.Size
	if size <= 0 {
		size = l.TileSize
	}
	kind, err := config.ParseWeapon(cfg.Weapon)
	if err != nil {
		return core.NoEntity, err
	}
	wep, err := core.NewWeapon(kind, cfg.Damage, cfg.AttackSpeed, cfg.Range)
	if err != nil {
		return core.NoEntity, err
	}
	hp, err := core.NewHealth(cfg.Health, cfg.MaxHealth)
	if err != nil {
		return core.NoEntity, err
	}
	phys, err := core.NewPhysics(speed, core.CollisionBox{Width: size, Height: size}, core.CollisionSolid)
	if err != nil {
		return core.NoEntity, err
	}
	o := l.Origin(l.Start)
	return w.Spawn(
		core.NewTransform(o.X, o.Y),
		phys,
		hp,
		wep,
		&core.Input{},
		&core.Renderable{Shape: core.ShapeSprite, Sprite: "player", Width: size, Height: size, Color: ColorPlayer, Z: ZActor},
	), nil
}

// heal restores n health to the player
func heal(n int) core.PropAction {
	return func(ctx *core.UpdateContext, _ core.Entity) {
		if hp, ok := core.Get[*core.Health](ctx.Components, ctx.Player); ok {
			hp.Heal(n)
		}
	}
}

// hurt damages the player by n, removing it if that kills it
func hurt(n int, lg log.Log) core.PropAction {
	return func(ctx *core.UpdateContext, prop core.Entity) {
		systems.ApplyDamage(ctx, ctx.Player, prop, n, lg)
	}
}
