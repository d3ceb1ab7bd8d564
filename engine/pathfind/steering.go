package pathfind

import "math"

// SteerResult contains the computed steering velocity
type SteerResult struct {
	VX, VY float64
}

// Body is a nearby agent to keep clear of
type Body struct {
	Pos    Point
	Radius float64
}

// separationWeight scales the push away from a neighbour relative to speed
const separationWeight = 0.5

// Steer computes a velocity toward target while avoiding others.
// radius is the steering agent's own clearance.
func Steer(pos, target Point, speed, radius float64, others []Body) SteerResult {
	toTarget := Point{target.X - pos.X, target.Y - pos.Y}
	dist := math.Hypot(toTarget.X, toTarget.Y)
	if dist < 0.01 {
		return SteerResult{}
	}
	v := Point{toTarget.X / dist * speed, toTarget.Y / dist * speed}

	for _, o := range others {
		away := Point{pos.X - o.Pos.X, pos.Y - o.Pos.Y}
		d := math.Hypot(away.X, away.Y)
		clearance := o.Radius + radius
		if d <= 0.001 || d >= clearance {
			continue
		}
		push := (clearance - d) / clearance * speed * separationWeight / d
		v.X += away.X * push
		v.Y += away.Y * push
	}

	if n := math.Hypot(v.X, v.Y); n > speed {
		v.X, v.Y = v.X/n*speed, v.Y/n*speed
	}
	return SteerResult{VX: v.X, VY: v.Y}
}
