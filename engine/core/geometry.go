package core

import "math"

// Vec2 is a 2D vector in world pixels
type Vec2 struct {
	X, Y float64
}

func (v Vec2) Add(o Vec2) Vec2           { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2           { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(f float64) Vec2      { return Vec2{v.X * f, v.Y * f} }
func (v Vec2) Len() float64              { return math.Hypot(v.X, v.Y) }
func (v Vec2) DistanceTo(o Vec2) float64 { return v.Sub(o).Len() }
func (v Vec2) IsZero() bool              { return v.X == 0 && v.Y == 0 }

// Normalize returns the unit vector in v's direction, or zero for a zero vector
func (v Vec2) Normalize() Vec2 {
	l := v.Len()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

// Angle returns the direction of v in degrees, normalized to [0, 360)
func (v Vec2) Angle() float64 {
	return NormalizeDegrees(math.Atan2(v.Y, v.X) * 180 / math.Pi)
}

// NormalizeDegrees wraps an angle into [0, 360)
func NormalizeDegrees(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	if deg >= 360 {
		deg = 0
	}
	return deg
}

// Rect is an axis-aligned box anchored at its top-left corner
type Rect struct {
	X, Y, W, H float64
}

// Overlaps reports whether the interiors of r and o intersect on both axes
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.X+o.W && r.X+r.W > o.X &&
		r.Y < o.Y+o.H && r.Y+r.H > o.Y
}

// Expand grows r by d on every side
func (r Rect) Expand(d float64) Rect {
	return Rect{X: r.X - d, Y: r.Y - d, W: r.W + 2*d, H: r.H + 2*d}
}

func (r Rect) Center() Vec2 {
	return Vec2{r.X + r.W/2, r.Y + r.H/2}
}

func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

// Overlap returns the penetration depth of r and o on each axis.
// Both values are positive only when the rects overlap.
func (r Rect) Overlap(o Rect) (dx, dy float64) {
	dx = math.Min(r.X+r.W, o.X+o.W) - math.Max(r.X, o.X)
	dy = math.Min(r.Y+r.H, o.Y+o.H) - math.Max(r.Y, o.Y)
	return dx, dy
}
