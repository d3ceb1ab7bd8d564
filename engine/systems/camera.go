package systems

import (
	"math"

	"github.com/1siamBot/dungeon-engine/engine/core"
)

// CameraSystem eases each camera toward the center of its target and keeps
// the view inside the camera's bounds
type CameraSystem struct{}

func (s *CameraSystem) Update(ctx *core.UpdateContext) {
	for _, entry := range core.Entries[*core.Camera](ctx.Components) {
		cam := entry.Value
		tr, ok := core.Get[*core.Transform](ctx.Components, entry.Entity)
		if !ok {
			continue
		}
		if target, ok := center(ctx, cam.Target); ok {
			f := 1.0
			if cam.Smoothing > 0 {
				f = math.Min(1, cam.Smoothing*ctx.DeltaTime)
			}
			tr.Position = tr.Position.Add(target.Sub(tr.Position).Scale(f))
		}
		if cam.Bounds != nil {
			tr.Position = clampView(tr.Position, cam)
		}
	}
}

func clampView(pos core.Vec2, cam *core.Camera) core.Vec2 {
	zoom := cam.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	halfW, halfH := cam.Viewport.X/2/zoom, cam.Viewport.Y/2/zoom
	b := *cam.Bounds
	return core.Vec2{
		X: clampAxis(pos.X, b.X+halfW, b.X+b.W-halfW),
		Y: clampAxis(pos.Y, b.Y+halfH, b.Y+b.H-halfH),
	}
}

// clampAxis centers between lo and hi when the view is wider than the bounds
func clampAxis(v, lo, hi float64) float64 {
	if lo > hi {
		return (lo + hi) / 2
	}
	return math.Max(lo, math.Min(hi, v))
}
