package core

import (
	"math"
	"time"
)

// ---- Transform ----

// Transform places an entity in the world. Rotation is kept in [0, 360)
// degrees and neither scale component may be zero; a negative scale flips
// the entity to encode facing.
type Transform struct {
	Position Vec2
	rotation float64
	scale    Vec2
}

func (t *Transform) Type() ComponentType { return CompTransform }

// NewTransform returns a transform at (x, y) with unit scale
func NewTransform(x, y float64) *Transform {
	return &Transform{Position: Vec2{x, y}, scale: Vec2{1, 1}}
}

func (t *Transform) Rotation() float64 { return t.rotation }

// SetRotation stores deg wrapped into [0, 360)
func (t *Transform) SetRotation(deg float64) {
	t.rotation = NormalizeDegrees(deg)
}

func (t *Transform) Scale() Vec2 {
	if t.scale.IsZero() {
		return Vec2{1, 1}
	}
	return t.scale
}

// SetScale rejects a zero component and leaves the old scale in place
func (t *Transform) SetScale(s Vec2) error {
	if s.X == 0 {
		return invalid(CompTransform, "scale.x", "must not be zero")
	}
	if s.Y == 0 {
		return invalid(CompTransform, "scale.y", "must not be zero")
	}
	t.scale = s
	return nil
}

// ---- Physics ----

// CollisionFlag selects how a physics body takes part in collision
type CollisionFlag uint8

const (
	CollisionNone CollisionFlag = iota
	CollisionSolid
	CollisionSemisolid
)

func (f CollisionFlag) String() string {
	switch f {
	case CollisionSolid:
		return "solid"
	case CollisionSemisolid:
		return "semisolid"
	default:
		return "none"
	}
}

// CollisionBox is offset from the owning transform's position
type CollisionBox struct {
	Offset        Vec2
	Width, Height float64
}

// Physics carries velocity and the collision body
type Physics struct {
	Velocity  Vec2
	Speed     float64 // pixels per second at full pace
	Slow      bool    // set by semisolid contact, consumed by movement
	Box       CollisionBox
	Collision CollisionFlag
}

func (p *Physics) Type() ComponentType { return CompPhysics }

// NewPhysics validates box dimensions and speed
func NewPhysics(speed float64, box CollisionBox, flag CollisionFlag) (*Physics, error) {
	if box.Width < 0 {
		return nil, invalid(CompPhysics, "box.width", "must not be negative")
	}
	if box.Height < 0 {
		return nil, invalid(CompPhysics, "box.height", "must not be negative")
	}
	if speed < 0 {
		return nil, invalid(CompPhysics, "speed", "must not be negative")
	}
	return &Physics{Speed: speed, Box: box, Collision: flag}, nil
}

// Bounds returns the collision box in world space for an entity at pos
func (p *Physics) Bounds(pos Vec2) Rect {
	return Rect{
		X: pos.X + p.Box.Offset.X,
		Y: pos.Y + p.Box.Offset.Y,
		W: p.Box.Width,
		H: p.Box.Height,
	}
}

func (p *Physics) Moving() bool { return !p.Velocity.IsZero() }

// ---- Health ----

// Health represents hit points, always within [0, Max]
type Health struct {
	Current      int
	Max          int
	LowThreshold int
}

func (h *Health) Type() ComponentType { return CompHealth }

// NewHealth returns a health pool with the low threshold at a quarter of max
func NewHealth(current, maxHP int) (*Health, error) {
	if maxHP <= 0 {
		return nil, invalid(CompHealth, "max", "must be positive")
	}
	if current < 0 || current > maxHP {
		return nil, invalid(CompHealth, "current", "must be within [0, max]")
	}
	return &Health{Current: current, Max: maxHP, LowThreshold: maxHP / 4}, nil
}

// TakeDamage subtracts d, stopping at zero
func (h *Health) TakeDamage(d int) {
	if d <= 0 {
		return
	}
	h.Current = max(h.Current-d, 0)
}

// Heal adds n, stopping at Max
func (h *Health) Heal(n int) {
	if n <= 0 {
		return
	}
	h.Current = min(h.Current+n, h.Max)
}

func (h *Health) IsDead() bool    { return h.Current <= 0 }
func (h *Health) IsFull() bool    { return h.Current >= h.Max }
func (h *Health) IsDamaged() bool { return h.Current < h.Max }
func (h *Health) IsLow() bool     { return h.Current <= h.LowThreshold }

func (h *Health) Ratio() float64 {
	if h.Max <= 0 {
		return 0
	}
	return float64(h.Current) / float64(h.Max)
}

// ---- Weapon ----

type WeaponKind uint8

const (
	WeaponSword WeaponKind = iota
	WeaponBow
	WeaponStaff
)

func (k WeaponKind) String() string {
	switch k {
	case WeaponBow:
		return "bow"
	case WeaponStaff:
		return "staff"
	default:
		return "sword"
	}
}

// Weapon gates attacks with a cooldown of AttackSpeed seconds
type Weapon struct {
	Kind        WeaponKind
	Damage      int
	AttackSpeed float64
	Range       float64 // projectile travel for ranged kinds
	Cooldown    float64
}

func (w *Weapon) Type() ComponentType { return CompWeapon }

func NewWeapon(kind WeaponKind, damage int, attackSpeed, rng float64) (*Weapon, error) {
	if damage < 0 {
		return nil, invalid(CompWeapon, "damage", "must not be negative")
	}
	if attackSpeed < 0 {
		return nil, invalid(CompWeapon, "attackSpeed", "must not be negative")
	}
	if rng < 0 {
		return nil, invalid(CompWeapon, "range", "must not be negative")
	}
	return &Weapon{Kind: kind, Damage: damage, AttackSpeed: attackSpeed, Range: rng}, nil
}

// Attack starts the cooldown
func (w *Weapon) Attack() { w.Cooldown = w.AttackSpeed }

func (w *Weapon) CanAttack() bool { return w.Cooldown <= 0 }

// Update counts the cooldown down by dt without going below zero
func (w *Weapon) Update(dt float64) {
	if dt <= 0 {
		return
	}
	w.Cooldown -= math.Min(w.Cooldown, dt)
}

func (w *Weapon) ResetCooldown() { w.Cooldown = 0 }

func (w *Weapon) IsMelee() bool  { return w.Kind == WeaponSword }
func (w *Weapon) IsRanged() bool { return w.Kind == WeaponBow || w.Kind == WeaponStaff }
func (w *Weapon) IsMagic() bool  { return w.Kind == WeaponStaff }

// ---- Props ----

// PropAction runs when the player interacts with prop
type PropAction func(ctx *UpdateContext, prop Entity)

// Prop is an interactable object. Fired stays set while the interact key
// is held so each press triggers OnInteract once.
type Prop struct {
	OnInteract PropAction
	Fired      bool
	InReach    bool
}

func (p *Prop) Type() ComponentType { return CompProp }

// ---- Input ----

// Input holds the logical actions held this frame
type Input struct {
	Held ActionSet
}

func (i *Input) Type() ComponentType { return CompInput }

// ---- Rendering ----

type Shape uint8

const (
	ShapeRect Shape = iota
	ShapeCircle
	ShapeSprite // falls back to a rect when the sprite is missing
)

// Renderable is read by renderers only
type Renderable struct {
	Shape         Shape
	Width, Height float64
	Color         string // colornames name or #rgb / #rrggbb
	Sprite        string // sprite name for ShapeSprite
	Z             int
	Hidden        bool
}

func (r *Renderable) Type() ComponentType { return CompRenderable }

// Camera follows Target. The camera entity's Transform is the view center.
type Camera struct {
	Target    Entity
	Zoom      float64
	Smoothing float64 // fraction of the gap closed per second
	Viewport  Vec2    // screen size in pixels
	Bounds    *Rect   // world area the view must stay inside
}

func (c *Camera) Type() ComponentType { return CompCamera }

// Particle is a short-lived visual effect
type Particle struct {
	Velocity Vec2
	Lifetime float64
	Size     float64
	Color    string
}

func (p *Particle) Type() ComponentType { return CompParticle }

// ---- Projectiles ----

type Projectile struct {
	Source    Entity
	Direction Vec2
	Speed     float64
	Range     float64
	Travelled float64
	Damage    int
	Hit       bool
}

func (p *Projectile) Type() ComponentType { return CompProjectile }

// Advance records travel over dt and returns the displacement. The
// projectile is spent once it has covered its range.
func (p *Projectile) Advance(dt float64) Vec2 {
	step := p.Speed * dt
	p.Travelled += step
	if p.Travelled >= p.Range {
		p.Hit = true
	}
	return p.Direction.Scale(step)
}

// Destructible entities burst into particles when destroyed
type Destructible struct {
	Particles int
}

func (d *Destructible) Type() ComponentType { return CompDestructible }

// ---- AI ----

// Enemy chases the player along computed paths and hurts it on contact
type Enemy struct {
	Agent             string // pathfinding agent id
	Speed             float64
	AggroRange        float64
	PathDelay         time.Duration
	WaypointThreshold float64
	Damage            int
	AttackSpeed       float64 // seconds between contact hits
	Cooldown          float64
	Chasing           bool
}

func (e *Enemy) Type() ComponentType { return CompEnemy }
