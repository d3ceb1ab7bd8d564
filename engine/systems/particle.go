package systems

import (
	"fmt"
	"math/rand/v2"

	"github.com/1siamBot/dungeon-engine/engine/core"
)

const (
	DefaultBurstSize        = 50
	DefaultParticleLifetime = 2.0
	DefaultParticleSize     = 5.0
	particleSpread          = 100.0
)

// ParticleSystem ages particles and bursts destructible entities into
// particles when they are destroyed.
type ParticleSystem struct {
	Lifetime float64
	Size     float64
	rng      *rand.Rand
	pending  []burst
}

type burst struct {
	at core.Vec2
	n  int
}

// NewParticleSystem seeds the spread and color generator with seed
func NewParticleSystem(seed uint64) *ParticleSystem {
	return &ParticleSystem{
		Lifetime: DefaultParticleLifetime,
		Size:     DefaultParticleSize,
		rng:      rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// OnEntityDestroyed queues a burst for destructible entities. Register it
// for core.EvtEntityDestroyed.
func (s *ParticleSystem) OnEntityDestroyed(e core.Event) {
	d, ok := e.Payload.(core.EntityDestroyed)
	if !ok || d.Destructible == nil {
		return
	}
	n := d.Destructible.Particles
	if n <= 0 {
		n = DefaultBurstSize
	}
	s.pending = append(s.pending, burst{at: d.Position, n: n})
}

func (s *ParticleSystem) Update(ctx *core.UpdateContext) {
	for _, b := range s.pending {
		s.Burst(ctx, b.at, b.n)
	}
	s.pending = s.pending[:0]

	for _, entry := range core.Entries[*core.Particle](ctx.Components) {
		p := entry.Value
		p.Lifetime -= ctx.DeltaTime
		if p.Lifetime <= 0 {
			ctx.Destroy(entry.Entity)
			continue
		}
		if tr, ok := core.Get[*core.Transform](ctx.Components, entry.Entity); ok {
			tr.Position = tr.Position.Add(p.Velocity.Scale(ctx.DeltaTime))
		}
	}
}

// Burst spawns n particles at a point with random velocity and color
func (s *ParticleSystem) Burst(ctx *core.UpdateContext, at core.Vec2, n int) {
	for i := 0; i < n; i++ {
		color := fmt.Sprintf("#%06x", s.rng.Uint32()&0xffffff)
		ctx.Spawn(
			core.NewTransform(at.X, at.Y),
			&core.Particle{
				Velocity: core.Vec2{
					X: (s.rng.Float64()*2 - 1) * particleSpread,
					Y: (s.rng.Float64()*2 - 1) * particleSpread,
				},
				Lifetime: s.Lifetime,
				Size:     s.Size,
				Color:    color,
			},
			&core.Renderable{Shape: core.ShapeRect, Width: s.Size, Height: s.Size, Color: color, Z: 3},
		)
	}
}

func (s *ParticleSystem) Teardown() {
	s.pending = nil
}
