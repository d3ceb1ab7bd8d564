package render

import (
	"math"

	"github.com/1siamBot/dungeon-engine/engine/core"
)

// Camera maps world pixels to screen pixels. X, Y is the world point at
// the center of the screen.
type Camera struct {
	X, Y    float64
	Zoom    float64 // 1.0 = one world pixel per screen pixel
	MinZoom float64
	MaxZoom float64
	ScreenW int
	ScreenH int
}

// NewCamera creates a camera with default settings
func NewCamera(screenW, screenH int) *Camera {
	return &Camera{
		Zoom:    1.0,
		MinZoom: 0.25,
		MaxZoom: 3.0,
		ScreenW: screenW,
		ScreenH: screenH,
	}
}

// Follow copies the view of the world's first camera entity
func (c *Camera) Follow(w *core.World) bool {
	cams := core.Entries[*core.Camera](w.Components)
	for _, cam := range cams {
		tr, ok := core.Get[*core.Transform](w.Components, cam.Entity)
		if !ok {
			continue
		}
		c.CenterOn(tr.Position.X, tr.Position.Y)
		if cam.Value.Zoom > 0 {
			c.SetZoom(cam.Value.Zoom)
		}
		return true
	}
	return false
}

// SetZoom sets zoom level with clamping
func (c *Camera) SetZoom(z float64) {
	c.Zoom = math.Max(c.MinZoom, math.Min(c.MaxZoom, z))
}

// CenterOn centers the camera on a world position
func (c *Camera) CenterOn(wx, wy float64) {
	c.X, c.Y = wx, wy
}

// Resize updates the viewport after a window layout change
func (c *Camera) Resize(w, h int) {
	c.ScreenW, c.ScreenH = w, h
}

// WorldToScreen converts a world position to screen pixels
func (c *Camera) WorldToScreen(wx, wy float64) (float64, float64) {
	sx := (wx-c.X)*c.Zoom + float64(c.ScreenW)/2
	sy := (wy-c.Y)*c.Zoom + float64(c.ScreenH)/2
	return sx, sy
}

// ScreenToWorld converts screen pixels to a world position
func (c *Camera) ScreenToWorld(sx, sy int) (float64, float64) {
	wx := (float64(sx)-float64(c.ScreenW)/2)/c.Zoom + c.X
	wy := (float64(sy)-float64(c.ScreenH)/2)/c.Zoom + c.Y
	return wx, wy
}

// Visible returns the world rectangle currently on screen
func (c *Camera) Visible() core.Rect {
	x0, y0 := c.ScreenToWorld(0, 0)
	x1, y1 := c.ScreenToWorld(c.ScreenW, c.ScreenH)
	return core.Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}
