package scene

import (
	"time"

	"github.com/1siamBot/dungeon-engine/engine/config"
	"github.com/1siamBot/dungeon-engine/engine/core"
	"github.com/1siamBot/dungeon-engine/engine/level"
	"github.com/1siamBot/dungeon-engine/engine/log"
	"github.com/1siamBot/dungeon-engine/engine/pathfind"
	"github.com/1siamBot/dungeon-engine/engine/systems"
)

// GameScene is the playable dungeon: the configured level plus the full
// system pipeline.
type GameScene struct {
	Settings *config.Settings
	Log      log.Log
	Seed     uint64           // particle randomness
	Clock    func() time.Time // path throttle clock, time.Now when nil

	Spawned level.Spawned
}

func NewGameScene(s *config.Settings, l log.Log) *GameScene {
	return &GameScene{Settings: s, Log: log.OrNop(l), Seed: uint64(time.Now().UnixNano())}
}

func (g *GameScene) Name() string {
	if g.Settings == nil {
		return "game"
	}
	return g.Settings.Level.Name
}

// Build spawns the level and registers systems in update order
func (g *GameScene) Build(w *core.World) error {
	s := g.Settings
	if s == nil {
		return ErrNoSettings
	}
	lg := log.OrNop(g.Log).With(log.String("scene", g.Name()))

	layout, err := level.Parse(s.Level.Name, s.Level.Rows, s.Level.TileSize)
	if err != nil {
		return err
	}
	opts := []pathfind.Option{pathfind.WithSearchLimit(s.Pathfinding.SearchLimit)}
	if g.Clock != nil {
		opts = append(opts, pathfind.WithClock(g.Clock))
	}
	if s.Pathfinding.AlignedFootprint {
		opts = append(opts, pathfind.WithAlignedFootprint())
	}
	paths := pathfind.NewPathFinder(s.Pathfinding.GridSize, opts...)
	particles := systems.NewParticleSystem(g.Seed)

	w.AddSystem(&systems.InputSystem{})
	w.AddSystem(systems.NewEnemySystem(paths, lg))
	w.AddSystem(systems.NewMovementSystem(s.Movement.SlowFactor))
	w.AddSystem(systems.NewCollisionSystem(systems.ParseResolution(s.Collision.Resolution)))
	w.AddSystem(systems.NewCombatSystem(s.Combat.MeleeReach, s.Combat.SymmetricReach, s.Combat.ProjectileSpeed, lg))
	w.AddSystem(systems.NewInteractionSystem(s.Interaction.Distance, lg))
	w.AddSystem(systems.NewProjectileSystem(lg))
	w.AddSystem(particles)
	w.AddSystem(&systems.CameraSystem{})
	w.Events.On(core.EvtEntityDestroyed, particles.OnEntityDestroyed)

	g.Spawned, err = layout.Spawn(w, s, lg)
	return err
}
